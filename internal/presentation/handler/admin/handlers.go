package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/events"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
)

type Handler struct {
	userRepository    domain.UserRepository
	bookingRepository domain.BookingRepository
	publisher         *events.BookingPublisher
	logger            logging.Logger
}

func NewHandler(
	userRepository domain.UserRepository,
	bookingRepository domain.BookingRepository,
	publisher *events.BookingPublisher,
	logger logging.Logger,
) *Handler {
	return &Handler{
		userRepository:    userRepository,
		bookingRepository: bookingRepository,
		publisher:         publisher,
		logger:            logger,
	}
}

// ListUsersHandler godoc
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200 {object} usersResponse "All users"
// @Security     BearerAuth
// @Router       /admin/users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepository.List(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	json.Write(w, http.StatusOK, usersResponse{Users: users})
}

// DeleteUserHandler godoc
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} deleteUserResponse "User deleted"
// @Failure      404 {object} map[string]interface{} "User not found"
// @Security     BearerAuth
// @Router       /admin/user/{userId} [delete]
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		json.WriteValidationError(w, errors.New("user ID is missing"))
		return
	}

	user, err := h.userRepository.Delete(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			json.WriteNotFoundError(w, "User not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, deleteUserResponse{Message: "User deleted", User: user})
}

// ListBookingsHandler godoc
// @Summary      List all bookings
// @Tags         admin
// @Produce      json
// @Success      200 {object} bookingsResponse "All bookings, newest first"
// @Security     BearerAuth
// @Router       /admin/bookings [get]
func (h *Handler) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingRepository.List(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	json.Write(w, http.StatusOK, bookingsResponse{Bookings: bookings})
}

// UpdateBookingStatusHandler godoc
// @Summary      Settle a booking
// @Description  Moves a pending booking to Confirmed or Declined on a participant's behalf
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        bookingId path string true "Booking ID"
// @Param        request body updateStatusRequest true "Target status"
// @Success      200 {object} updateStatusResponse "Status updated"
// @Failure      400 {object} map[string]interface{} "Invalid status or booking already settled"
// @Failure      404 {object} map[string]interface{} "Booking not found"
// @Security     BearerAuth
// @Router       /admin/booking/{bookingId}/status [put]
func (h *Handler) UpdateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingId")
	if bookingID == "" {
		json.WriteValidationError(w, errors.New("booking ID is missing"))
		return
	}

	var req updateStatusRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil || status == domain.BookingPending {
		json.WriteValidationError(w, errors.New("status must be Confirmed or Declined"))
		return
	}

	updated, err := h.bookingRepository.UpdateStatus(r.Context(), bookingID, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			json.WriteNotFoundError(w, "Booking not found")
		case errors.Is(err, domain.ErrInvalidTransition):
			json.WriteBadRequestError(w, "Booking is already settled")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	if h.publisher != nil {
		actorID := ""
		if identity, ok := auth.IdentityFromContext(r.Context()); ok {
			actorID = identity.UserID
		}
		if err := h.publisher.PublishBookingStatusChanged(r.Context(), updated, actorID); err != nil {
			h.logger.Warn(logging.RabbitMQ, logging.ExternalService, "booking.status_changed publish failed", map[logging.ExtraKey]any{
				logging.BookingID:    updated.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	json.Write(w, http.StatusOK, updateStatusResponse{Message: "Booking status updated", Booking: updated})
}

// GetStatsHandler godoc
// @Summary      Marketplace stats
// @Tags         admin
// @Produce      json
// @Success      200 {object} statsResponse "Counts"
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *Handler) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := h.userRepository.Count(r.Context(), "")
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	totalBuddies, err := h.userRepository.Count(r.Context(), domain.RoleBuddy)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	totalCustomers, err := h.userRepository.Count(r.Context(), domain.RoleCustomer)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}
	totalBookings, err := h.bookingRepository.Count(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, statsResponse{
		TotalUsers:     totalUsers,
		TotalBuddies:   totalBuddies,
		TotalCustomers: totalCustomers,
		TotalBookings:  totalBookings,
	})
}

package buddies

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

// UpdateProfileHandler godoc
// @Summary      Update buddy profile
// @Description  Replaces the calling buddy's public profile
// @Tags         buddies
// @Accept       json
// @Produce      json
// @Param        request body updateProfileRequest true "New profile"
// @Success      200 {object} buddyResponse "Profile updated"
// @Failure      400 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /buddies/profile [put]
func (h *Handler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	var req updateProfileRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.BaseRate < 0 {
		json.WriteValidationError(w, errors.New("baseRate must not be negative"))
		return
	}

	profile := &domain.BuddyProfile{
		BaseRate:       req.BaseRate,
		Expertise:      req.Expertise,
		Location:       req.Location,
		Languages:      req.Languages,
		Bio:            req.Bio,
		AvailableDates: req.AvailableDates,
	}

	buddy, err := h.userRepository.UpdateBuddyProfile(r.Context(), identity.UserID, profile)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			json.WriteNotFoundError(w, "User not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, buddyResponse{Message: "Buddy profile updated", Buddy: buddy})
}

// UpdateAvailabilityHandler godoc
// @Summary      Update availability
// @Description  Replaces the calling buddy's available dates
// @Tags         buddies
// @Accept       json
// @Produce      json
// @Param        request body updateAvailabilityRequest true "Available dates"
// @Success      200 {object} buddyResponse "Availability updated"
// @Security     BearerAuth
// @Router       /buddies/availability [put]
func (h *Handler) UpdateAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	var req updateAvailabilityRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	buddy, err := h.userRepository.UpdateAvailability(r.Context(), identity.UserID, req.AvailableDates)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			json.WriteNotFoundError(w, "User not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, buddyResponse{Message: "Availability updated", Buddy: buddy})
}

// ListBookingsHandler godoc
// @Summary      List my booking requests
// @Description  Returns bookings where the caller is the buddy, newest first
// @Tags         buddies
// @Produce      json
// @Success      200 {object} bookingsResponse "Bookings"
// @Security     BearerAuth
// @Router       /buddies/bookings [get]
func (h *Handler) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	bookings, err := h.bookingRepository.ListByBuddy(r.Context(), identity.UserID)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, bookingsResponse{Bookings: bookings})
}

// UpdateBookingStatusHandler godoc
// @Summary      Confirm or decline a booking
// @Description  Moves one of the caller's pending bookings to Confirmed or Declined
// @Tags         buddies
// @Accept       json
// @Produce      json
// @Param        bookingId path string true "Booking ID"
// @Param        request body updateStatusRequest true "Target status"
// @Success      200 {object} updateStatusResponse "Status updated"
// @Failure      400 {object} map[string]interface{} "Invalid status or booking already settled"
// @Failure      403 {object} map[string]interface{} "Not the booking's buddy"
// @Failure      404 {object} map[string]interface{} "Booking not found"
// @Security     BearerAuth
// @Router       /buddies/bookings/{bookingId}/status [put]
func (h *Handler) UpdateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

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

	booking, err := h.bookingRepository.GetByID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			json.WriteNotFoundError(w, "Booking not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if booking.BuddyID != identity.UserID {
		json.WriteForbiddenError(w, "You are not the buddy for this booking")
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
		if err := h.publisher.PublishBookingStatusChanged(r.Context(), updated, identity.UserID); err != nil {
			h.logger.Warn(logging.RabbitMQ, logging.ExternalService, "booking.status_changed publish failed", map[logging.ExtraKey]any{
				logging.BookingID:    updated.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	json.Write(w, http.StatusOK, updateStatusResponse{Message: "Booking status updated", Booking: updated})
}

// GetEarningsHandler godoc
// @Summary      View earnings
// @Description  Totals the caller's confirmed bookings at the profile base rate
// @Tags         buddies
// @Produce      json
// @Success      200 {object} earningsResponse "Earnings summary"
// @Security     BearerAuth
// @Router       /buddies/earnings [get]
func (h *Handler) GetEarningsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	buddy, err := h.userRepository.GetByID(r.Context(), identity.UserID)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	rate := 0
	if buddy.BuddyProfile != nil {
		rate = buddy.BuddyProfile.BaseRate
	}

	bookings, err := h.bookingRepository.ListByBuddy(r.Context(), identity.UserID)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	resp := earningsResponse{Transactions: []transaction{}}
	for _, b := range bookings {
		if b.Status != domain.BookingConfirmed {
			continue
		}
		resp.TotalEarnings += rate
		resp.Transactions = append(resp.Transactions, transaction{
			BookingID: b.ID,
			Amount:    rate,
			Date:      b.Date,
		})
	}

	json.Write(w, http.StatusOK, resp)
}

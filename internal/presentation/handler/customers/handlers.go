package customers

import (
	"errors"
	"net/http"
	"strings"

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

// ListBuddiesHandler godoc
// @Summary      Browse buddies
// @Description  Lists buddies, optionally filtered by location (partial match), expertise (comma-separated) and available date
// @Tags         customers
// @Produce      json
// @Param        location query string false "Location substring, case-insensitive"
// @Param        expertise query string false "Comma-separated expertise tags"
// @Param        date query string false "Required available date (YYYY-MM-DD)"
// @Success      200 {object} buddiesResponse "Matching buddies"
// @Security     BearerAuth
// @Router       /customers/buddies [get]
func (h *Handler) ListBuddiesHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.BuddyFilter{
		Location: r.URL.Query().Get("location"),
		Date:     r.URL.Query().Get("date"),
	}
	if expertise := r.URL.Query().Get("expertise"); expertise != "" {
		filter.Expertise = strings.Split(expertise, ",")
	}

	buddies, err := h.userRepository.ListBuddies(r.Context(), filter)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, buddiesResponse{Buddies: buddies})
}

// GetBuddyHandler godoc
// @Summary      View a buddy profile
// @Tags         customers
// @Produce      json
// @Param        buddyId path string true "Buddy ID"
// @Success      200 {object} buddyResponse "Buddy profile"
// @Failure      404 {object} map[string]interface{} "Buddy not found"
// @Security     BearerAuth
// @Router       /customers/buddy/{buddyId} [get]
func (h *Handler) GetBuddyHandler(w http.ResponseWriter, r *http.Request) {
	buddyID := chi.URLParam(r, "buddyId")
	if buddyID == "" {
		json.WriteValidationError(w, errors.New("buddy ID is missing"))
		return
	}

	buddy, err := h.userRepository.GetByID(r.Context(), buddyID)
	if err != nil || !buddy.IsBuddy() {
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			json.WriteInternalError(w, err)
			return
		}
		json.WriteNotFoundError(w, "Buddy not found")
		return
	}

	json.Write(w, http.StatusOK, buddyResponse{Buddy: buddy})
}

// BookBuddyHandler godoc
// @Summary      Request a booking
// @Description  Creates a Pending booking between the calling customer and the chosen buddy
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body bookBuddyRequest true "Booking details"
// @Success      201 {object} bookBuddyResponse "Booking request sent"
// @Failure      400 {object} map[string]interface{} "Validation error"
// @Failure      404 {object} map[string]interface{} "Buddy not found"
// @Security     BearerAuth
// @Router       /customers/book [post]
func (h *Handler) BookBuddyHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	var req bookBuddyRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	buddy, err := h.userRepository.GetByID(r.Context(), req.BuddyID)
	if err != nil || !buddy.IsBuddy() {
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			json.WriteInternalError(w, err)
			return
		}
		json.WriteNotFoundError(w, "Buddy not found")
		return
	}

	booking, err := domain.NewBooking(identity.UserID, buddy.ID, req.Date, req.Location)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.bookingRepository.Create(r.Context(), booking); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishBookingCreated(r.Context(), booking); err != nil {
			h.logger.Warn(logging.RabbitMQ, logging.ExternalService, "booking.created publish failed", map[logging.ExtraKey]any{
				logging.BookingID:    booking.ID,
				logging.ErrorMessage: err.Error(),
			})
		}
	}

	json.Write(w, http.StatusCreated, bookBuddyResponse{
		Message: "Booking request sent",
		Booking: booking,
	})
}

// ListBookingsHandler godoc
// @Summary      List my bookings
// @Description  Returns the calling customer's bookings, newest first
// @Tags         customers
// @Produce      json
// @Success      200 {object} bookingsResponse "Bookings"
// @Security     BearerAuth
// @Router       /customers/bookings [get]
func (h *Handler) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	bookings, err := h.bookingRepository.ListByCustomer(r.Context(), identity.UserID)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, bookingsResponse{Bookings: bookings})
}

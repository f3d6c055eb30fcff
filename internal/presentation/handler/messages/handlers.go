package messages

import (
	"errors"
	"net/http"

	"github.com/hirebuddy/hirebuddy/internal/chat"
	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/ws"
)

type Handler struct {
	chatService *chat.Service
	registry    *ws.Registry
}

func NewHandler(chatService *chat.Service, registry *ws.Registry) *Handler {
	return &Handler{
		chatService: chatService,
		registry:    registry,
	}
}

// ListMessagesHandler godoc
// @Summary      List booking messages
// @Description  Returns the booking's messages in ascending creation order. The caller must be a participant.
// @Tags         messages
// @Produce      json
// @Param        bookingId query string true "Booking ID"
// @Success      200 {object} listMessagesResponse "Messages"
// @Failure      400 {object} map[string]interface{} "Missing bookingId"
// @Failure      403 {object} map[string]interface{} "Not a participant"
// @Failure      404 {object} map[string]interface{} "Booking not found"
// @Security     BearerAuth
// @Router       /messages [get]
func (h *Handler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	bookingID := r.URL.Query().Get("bookingId")
	if bookingID == "" {
		json.WriteValidationError(w, errors.New("bookingId is required"))
		return
	}

	messages, err := h.chatService.List(r.Context(), identity.UserID, bookingID)
	if err != nil {
		writeChatError(w, err)
		return
	}

	if messages == nil {
		messages = []domain.Message{}
	}
	json.Write(w, http.StatusOK, listMessagesResponse{Messages: messages})
}

// CreateMessageHandler godoc
// @Summary      Send a booking message
// @Description  Authorizes the caller against the booking, derives the receiver, persists the message and relays it to connected sessions
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body createMessageRequest true "Message"
// @Success      201 {object} createMessageResponse "Message sent"
// @Failure      400 {object} map[string]interface{} "Missing bookingId or empty content"
// @Failure      403 {object} map[string]interface{} "Not a participant"
// @Failure      404 {object} map[string]interface{} "Booking not found"
// @Security     BearerAuth
// @Router       /messages [post]
func (h *Handler) CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	var req createMessageRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.BookingID == "" || req.Content == "" {
		json.WriteValidationError(w, errors.New("bookingId and content are required"))
		return
	}

	message, err := h.chatService.Send(r.Context(), identity.UserID, req.BookingID, req.Content)
	if err != nil {
		writeChatError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, createMessageResponse{Message: message})

	// Relay to any live sessions in the booking's room.
	if h.registry != nil {
		h.registry.Broadcast(message.BookingID, ws.NewMessageReceived(message.BookingID, message))
	}
}

func writeChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		json.WriteNotFoundError(w, "Booking not found")
	case errors.Is(err, domain.ErrNotParticipant):
		json.WriteForbiddenError(w, "You are not part of this booking")
	case errors.Is(err, domain.ErrInvalidInput):
		json.WriteValidationError(w, err)
	default:
		json.WriteInternalError(w, err)
	}
}

package messages

import "github.com/hirebuddy/hirebuddy/internal/domain"

// createMessageRequest carries the booking-scoped message to send. The
// receiver is derived server-side from the booking's participants.
type createMessageRequest struct {
	BookingID string `json:"bookingId" example:"550e8400-e29b-41d4-a716-446655440003"`
	Content   string `json:"content" example:"Are you available on June 15?" minLength:"1" maxLength:"5000"`
}

type createMessageResponse struct {
	Message *domain.Message `json:"message"`
}

type listMessagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

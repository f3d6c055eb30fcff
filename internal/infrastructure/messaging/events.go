package messaging

import "github.com/hirebuddy/hirebuddy/internal/domain"

const (
	BookingsQueue   = "bookings"
	DeadLetterQueue = "dead_letter_queue"
)

type BookingEventData struct {
	Booking domain.Booking `json:"booking"`
	ActorID string         `json:"actorId,omitempty"`
}

type MessageEventData struct {
	Message domain.Message `json:"message"`
}

package chat

import (
	"context"
	"errors"

	"github.com/hirebuddy/hirebuddy/internal/domain"
)

// Publisher emits a message-sent event after a successful send. Nil disables
// publishing.
type Publisher interface {
	PublishMessageSent(ctx context.Context, message *domain.Message) error
}

// Service is the single send/list path for booking-scoped chat. Both the REST
// message endpoints and the websocket relay go through it, so every delivered
// message is authorized and durably recorded by the same sequence.
type Service struct {
	gate      *Gate
	messages  domain.MessageRepository
	audit     domain.BookingAuditRepository
	publisher Publisher
}

func NewService(gate *Gate, messages domain.MessageRepository, audit domain.BookingAuditRepository, publisher Publisher) *Service {
	return &Service{
		gate:      gate,
		messages:  messages,
		audit:     audit,
		publisher: publisher,
	}
}

// Send authorizes actorID against the booking, derives the receiver from the
// booking's participants and persists the message.
func (s *Service) Send(ctx context.Context, actorID, bookingID, text string) (*domain.Message, error) {
	grant, err := s.gate.Authorize(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}

	message, err := domain.NewMessage(bookingID, actorID, grant.CounterpartyID, text)
	if err != nil {
		return nil, errors.Join(domain.ErrInvalidInput, err)
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	if s.audit != nil {
		// Audit failure does not fail the send.
		_ = s.audit.Log(ctx, domain.NewMessageSentLog(message))
	}

	if s.publisher != nil {
		_ = s.publisher.PublishMessageSent(ctx, message)
	}

	return message, nil
}

// List returns the booking's messages in ascending creation-time order,
// after checking that the actor is a participant.
func (s *Service) List(ctx context.Context, actorID, bookingID string) ([]domain.Message, error) {
	if _, err := s.gate.Authorize(ctx, actorID, bookingID); err != nil {
		return nil, err
	}
	return s.messages.ListByBookingID(ctx, bookingID)
}

// Gate exposes the authorization gate for callers that only need the check.
func (s *Service) Gate() *Gate {
	return s.gate
}

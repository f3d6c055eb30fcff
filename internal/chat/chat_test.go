package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hirebuddy/hirebuddy/internal/chat"
	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/persistence/repository"
)

func newBooking(t *testing.T, bookings domain.BookingRepository, customerID, buddyID string) *domain.Booking {
	t.Helper()

	booking, err := domain.NewBooking(customerID, buddyID, "2026-09-15", "Jaipur")
	if err != nil {
		t.Fatalf("NewBooking err: %v", err)
	}
	if err := bookings.Create(context.Background(), booking); err != nil {
		t.Fatalf("Create booking err: %v", err)
	}
	return booking
}

func TestGateAuthorizeParticipants(t *testing.T) {
	bookings := repository.NewInMemoryBookingRepository()
	gate := chat.NewGate(bookings)
	booking := newBooking(t, bookings, "customer-1", "buddy-1")
	ctx := context.Background()

	grant, err := gate.Authorize(ctx, "customer-1", booking.ID)
	if err != nil {
		t.Fatalf("Authorize customer err: %v", err)
	}
	if grant.CounterpartyID != "buddy-1" {
		t.Fatalf("customer counterparty: got %s want buddy-1", grant.CounterpartyID)
	}
	if grant.Role != domain.RoleCustomer {
		t.Fatalf("unexpected role: %s", grant.Role)
	}

	grant, err = gate.Authorize(ctx, "buddy-1", booking.ID)
	if err != nil {
		t.Fatalf("Authorize buddy err: %v", err)
	}
	if grant.CounterpartyID != "customer-1" {
		t.Fatalf("buddy counterparty: got %s want customer-1", grant.CounterpartyID)
	}
}

func TestGateAuthorizeStranger(t *testing.T) {
	bookings := repository.NewInMemoryBookingRepository()
	gate := chat.NewGate(bookings)
	booking := newBooking(t, bookings, "customer-1", "buddy-1")

	_, err := gate.Authorize(context.Background(), "stranger", booking.ID)
	if !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestGateAuthorizeMissingBooking(t *testing.T) {
	gate := chat.NewGate(repository.NewInMemoryBookingRepository())

	_, err := gate.Authorize(context.Background(), "customer-1", "no-such-booking")
	if !errors.Is(err, domain.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestGateAuthorizeEmptyInput(t *testing.T) {
	gate := chat.NewGate(repository.NewInMemoryBookingRepository())

	if _, err := gate.Authorize(context.Background(), "", "booking-1"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty actor, got %v", err)
	}
	if _, err := gate.Authorize(context.Background(), "actor", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty booking, got %v", err)
	}
}

func TestServiceSendDerivesReceiver(t *testing.T) {
	bookings := repository.NewInMemoryBookingRepository()
	messages := repository.NewInMemoryMessageRepository()
	audit := repository.NewInMemoryBookingAuditRepository()
	svc := chat.NewService(chat.NewGate(bookings), messages, audit, nil)
	booking := newBooking(t, bookings, "customer-1", "buddy-1")
	ctx := context.Background()

	message, err := svc.Send(ctx, "customer-1", booking.ID, "hello")
	if err != nil {
		t.Fatalf("Send err: %v", err)
	}
	if message.ReceiverID != "buddy-1" {
		t.Fatalf("receiver: got %s want buddy-1", message.ReceiverID)
	}
	if message.SenderID != "customer-1" {
		t.Fatalf("sender: got %s want customer-1", message.SenderID)
	}

	stored, err := messages.ListByBookingID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("ListByBookingID err: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored messages: got %d want 1", len(stored))
	}
	if stored[0].ID != message.ID {
		t.Fatalf("stored message ID mismatch")
	}

	logs, err := audit.GetByBookingID(ctx, booking.ID, 10)
	if err != nil {
		t.Fatalf("GetByBookingID err: %v", err)
	}
	if len(logs) != 1 || logs[0].EventType != domain.EventMessageSent {
		t.Fatalf("expected one message_sent audit entry, got %+v", logs)
	}
}

func TestServiceSendRejectsStranger(t *testing.T) {
	bookings := repository.NewInMemoryBookingRepository()
	messages := repository.NewInMemoryMessageRepository()
	svc := chat.NewService(chat.NewGate(bookings), messages, nil, nil)
	booking := newBooking(t, bookings, "customer-1", "buddy-1")
	ctx := context.Background()

	if _, err := svc.Send(ctx, "stranger", booking.ID, "hi"); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	stored, _ := messages.ListByBookingID(ctx, booking.ID)
	if len(stored) != 0 {
		t.Fatalf("denied send must not store, got %d messages", len(stored))
	}
}

func TestServiceSendRejectsEmptyText(t *testing.T) {
	bookings := repository.NewInMemoryBookingRepository()
	svc := chat.NewService(chat.NewGate(bookings), repository.NewInMemoryMessageRepository(), nil, nil)
	booking := newBooking(t, bookings, "customer-1", "buddy-1")

	if _, err := svc.Send(context.Background(), "customer-1", booking.ID, "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank text, got %v", err)
	}
}

func TestServiceListOrdersAscending(t *testing.T) {
	bookings := repository.NewInMemoryBookingRepository()
	messages := repository.NewInMemoryMessageRepository()
	svc := chat.NewService(chat.NewGate(bookings), messages, nil, nil)
	booking := newBooking(t, bookings, "customer-1", "buddy-1")
	ctx := context.Background()

	for _, text := range []string{"first", "second", "third"} {
		if _, err := svc.Send(ctx, "customer-1", booking.ID, text); err != nil {
			t.Fatalf("Send %q err: %v", text, err)
		}
	}

	listed, err := svc.List(ctx, "buddy-1", booking.ID)
	if err != nil {
		t.Fatalf("List err: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed: got %d want 3", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].CreatedAt.Before(listed[i-1].CreatedAt) {
			t.Fatalf("messages out of order at index %d", i)
		}
	}
	if listed[0].Text != "first" || listed[2].Text != "third" {
		t.Fatalf("unexpected order: %q ... %q", listed[0].Text, listed[2].Text)
	}
}

func TestServiceListRejectsStranger(t *testing.T) {
	bookings := repository.NewInMemoryBookingRepository()
	svc := chat.NewService(chat.NewGate(bookings), repository.NewInMemoryMessageRepository(), nil, nil)
	booking := newBooking(t, bookings, "customer-1", "buddy-1")

	if _, err := svc.List(context.Background(), "stranger", booking.ID); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/hirebuddy/hirebuddy/internal/domain"
)

func TestNewUserDefaults(t *testing.T) {
	user, err := domain.NewUser("Asha Rao", "Asha@Example.com", "+919876543210", domain.RoleCustomer, "hash")
	if err != nil {
		t.Fatalf("NewUser err: %v", err)
	}
	if user.Credits != domain.FreeTrialCredits {
		t.Fatalf("credits: got %d want %d", user.Credits, domain.FreeTrialCredits)
	}
	if user.Email != "asha@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if user.ID == "" {
		t.Fatal("expected generated ID")
	}
}

func TestNewUserRejectsBadPhone(t *testing.T) {
	for _, phone := range []string{"", "12345", "+0123", "9876543210", "+91 98765"} {
		if _, err := domain.NewUser("A", "a@example.com", phone, domain.RoleCustomer, "hash"); err == nil {
			t.Fatalf("expected error for phone %q", phone)
		}
	}
}

func TestNewUserRejectsUnknownRole(t *testing.T) {
	if _, err := domain.NewUser("A", "a@example.com", "+919876543210", domain.Role("ghost"), "hash"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNewBookingStartsPending(t *testing.T) {
	booking, err := domain.NewBooking("customer-1", "buddy-1", "2026-09-15", "Jaipur")
	if err != nil {
		t.Fatalf("NewBooking err: %v", err)
	}
	if booking.Status != domain.BookingPending {
		t.Fatalf("status: got %s want Pending", booking.Status)
	}
}

func TestNewBookingRejectsSelfBooking(t *testing.T) {
	if _, err := domain.NewBooking("user-1", "user-1", "2026-09-15", "Jaipur"); err == nil {
		t.Fatal("expected error when customer and buddy match")
	}
}

func TestBookingTransition(t *testing.T) {
	booking, _ := domain.NewBooking("customer-1", "buddy-1", "2026-09-15", "Jaipur")

	if err := booking.Transition(domain.BookingConfirmed); err != nil {
		t.Fatalf("Pending->Confirmed err: %v", err)
	}
	if err := booking.Transition(domain.BookingDeclined); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("Confirmed->Declined: expected ErrInvalidTransition, got %v", err)
	}

	booking, _ = domain.NewBooking("customer-1", "buddy-1", "2026-09-15", "Jaipur")
	if err := booking.Transition(domain.BookingPending); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("Pending->Pending: expected ErrInvalidTransition, got %v", err)
	}
}

func TestBookingCounterparty(t *testing.T) {
	booking, _ := domain.NewBooking("customer-1", "buddy-1", "2026-09-15", "Jaipur")

	if got := booking.Counterparty("customer-1"); got != "buddy-1" {
		t.Fatalf("counterparty of customer: got %s", got)
	}
	if got := booking.Counterparty("buddy-1"); got != "customer-1" {
		t.Fatalf("counterparty of buddy: got %s", got)
	}
	if got := booking.Counterparty("stranger"); got != "" {
		t.Fatalf("counterparty of stranger: got %s", got)
	}
	if booking.IsParticipant("stranger") {
		t.Fatal("stranger must not be a participant")
	}
}

func TestParseBookingStatus(t *testing.T) {
	if _, err := domain.ParseBookingStatus("Confirmed"); err != nil {
		t.Fatalf("Confirmed should parse: %v", err)
	}
	if _, err := domain.ParseBookingStatus("confirmed"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("lowercase must not parse, got %v", err)
	}
}

func TestNewMessageValidation(t *testing.T) {
	message, err := domain.NewMessage("booking-1", "sender-1", "receiver-1", "  hello  ")
	if err != nil {
		t.Fatalf("NewMessage err: %v", err)
	}
	if message.Text != "hello" {
		t.Fatalf("text not trimmed: %q", message.Text)
	}

	if _, err := domain.NewMessage("booking-1", "sender-1", "receiver-1", "   "); err == nil {
		t.Fatal("expected error for blank text")
	}
	if _, err := domain.NewMessage("booking-1", "same", "same", "hi"); err == nil {
		t.Fatal("expected error for sender == receiver")
	}
	if _, err := domain.NewMessage("booking-1", "sender-1", "receiver-1", strings.Repeat("x", 5001)); err == nil {
		t.Fatal("expected error for oversized text")
	}
}

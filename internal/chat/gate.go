package chat

import (
	"context"

	"github.com/hirebuddy/hirebuddy/internal/domain"
)

// Gate decides whether an actor may send or receive messages for a booking.
// It is the single authorization rule on the messaging path: the actor must be
// one of the booking's two participants, and the counterparty is derived from
// the booking rather than trusted from the client.
type Gate struct {
	bookings domain.BookingRepository
}

func NewGate(bookings domain.BookingRepository) *Gate {
	return &Gate{bookings: bookings}
}

// Grant is the result of a successful authorization check.
type Grant struct {
	Booking        *domain.Booking
	Role           domain.Role
	CounterpartyID string
}

// Authorize loads the booking and checks that actorID is a participant.
// Returns domain.ErrBookingNotFound if the booking does not exist and
// domain.ErrNotParticipant if the actor is neither customer nor buddy.
func (g *Gate) Authorize(ctx context.Context, actorID, bookingID string) (*Grant, error) {
	if actorID == "" || bookingID == "" {
		return nil, domain.ErrInvalidInput
	}

	booking, err := g.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch actorID {
	case booking.CustomerID:
		return &Grant{Booking: booking, Role: domain.RoleCustomer, CounterpartyID: booking.BuddyID}, nil
	case booking.BuddyID:
		return &Grant{Booking: booking, Role: domain.RoleBuddy, CounterpartyID: booking.CustomerID}, nil
	}

	return nil, domain.ErrNotParticipant
}

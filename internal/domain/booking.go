package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingDeclined  BookingStatus = "Declined"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrNotParticipant    = errors.New("not a participant of this booking")
)

// Booking pairs one customer with one buddy for a scheduled service.
// The two participant references are fixed at creation.
type Booking struct {
	ID         string        `bson:"_id" json:"id"`
	CustomerID string        `bson:"customer_id" json:"customerId"`
	BuddyID    string        `bson:"buddy_id" json:"buddyId"`
	Date       string        `bson:"date" json:"date"`
	Location   string        `bson:"location" json:"location"`
	Status     BookingStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"created_at" json:"createdAt"`
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Booking, error)
	ListByBuddy(ctx context.Context, buddyID string) ([]Booking, error)
	List(ctx context.Context) ([]Booking, error)
	UpdateStatus(ctx context.Context, id string, status BookingStatus) (*Booking, error)
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

func NewBooking(customerID, buddyID, date, location string) (*Booking, error) {
	if customerID == "" || buddyID == "" {
		return nil, ErrInvalidInput
	}
	if customerID == buddyID {
		return nil, errors.New("customer and buddy must be distinct")
	}
	if strings.TrimSpace(date) == "" {
		return nil, errors.New("date is required")
	}
	if strings.TrimSpace(location) == "" {
		return nil, errors.New("location is required")
	}

	return &Booking{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		BuddyID:    buddyID,
		Date:       date,
		Location:   location,
		Status:     BookingPending,
		CreatedAt:  time.Now(),
	}, nil
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingDeclined:
		return BookingStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Transition enforces the booking lifecycle: a booking only moves from
// Pending to Confirmed or Declined, driven by the buddy or an admin.
func (b *Booking) Transition(to BookingStatus) error {
	if to != BookingConfirmed && to != BookingDeclined {
		return ErrInvalidTransition
	}
	if b.Status != BookingPending {
		return ErrInvalidTransition
	}
	b.Status = to
	return nil
}

// IsParticipant reports whether userID is the booking's customer or buddy.
func (b *Booking) IsParticipant(userID string) bool {
	return userID != "" && (userID == b.CustomerID || userID == b.BuddyID)
}

// Counterparty returns the other participant, or "" if userID is neither.
func (b *Booking) Counterparty(userID string) string {
	switch userID {
	case b.CustomerID:
		return b.BuddyID
	case b.BuddyID:
		return b.CustomerID
	}
	return ""
}

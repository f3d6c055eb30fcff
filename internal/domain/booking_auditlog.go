package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking_created"
	EventBookingStatusChanged BookingEventType = "booking_status_changed"
	EventMessageSent          BookingEventType = "message_sent"
)

type BookingAuditLog struct {
	ID        string           `bson:"_id" json:"id"`
	BookingID string           `bson:"booking_id" json:"bookingId"`
	EventType BookingEventType `bson:"event_type" json:"eventType"`
	Timestamp time.Time        `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any   `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type BookingAuditRepository interface {
	Log(ctx context.Context, log *BookingAuditLog) error
	GetByBookingID(ctx context.Context, bookingID string, limit int) ([]BookingAuditLog, error)
	GetByEventType(ctx context.Context, eventType BookingEventType, from, to time.Time) ([]BookingAuditLog, error)
	DeleteOlderThan(ctx context.Context, before time.Time) error
	EnsureIndexes(ctx context.Context) error
}

func NewBookingCreatedLog(booking *Booking) *BookingAuditLog {
	return &BookingAuditLog{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		EventType: EventBookingCreated,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"customer_id": booking.CustomerID,
			"buddy_id":    booking.BuddyID,
			"date":        booking.Date,
			"location":    booking.Location,
		},
	}
}

func NewBookingStatusChangedLog(booking *Booking, actorID string) *BookingAuditLog {
	return &BookingAuditLog{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		EventType: EventBookingStatusChanged,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"status":   string(booking.Status),
			"actor_id": actorID,
		},
	}
}

func NewMessageSentLog(message *Message) *BookingAuditLog {
	return &BookingAuditLog{
		ID:        uuid.NewString(),
		BookingID: message.BookingID,
		EventType: EventMessageSent,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"message_id": message.ID,
			"sender_id":  message.SenderID,
		},
	}
}

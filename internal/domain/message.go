package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxMessageLength = 5000

var ErrMessageNotFound = errors.New("message not found")

// Message belongs to exactly one booking. Sender and receiver are always the
// booking's two participants; the receiver is derived server-side, never taken
// from the client.
type Message struct {
	ID         string    `bson:"_id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"bookingId"`
	SenderID   string    `bson:"sender_id" json:"senderId"`
	ReceiverID string    `bson:"receiver_id" json:"receiverId"`
	Text       string    `bson:"text" json:"text"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// ListByBookingID returns messages in ascending creation-time order.
	ListByBookingID(ctx context.Context, bookingID string) ([]Message, error)
	EnsureIndexes(ctx context.Context) error
}

func NewMessage(bookingID, senderID, receiverID, text string) (*Message, error) {
	if bookingID == "" || senderID == "" || receiverID == "" {
		return nil, ErrInvalidInput
	}
	if senderID == receiverID {
		return nil, errors.New("sender and receiver must be distinct")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("message text is required")
	}
	if len(text) > maxMessageLength {
		return nil, errors.New("message text is too long")
	}

	return &Message{
		ID:         uuid.NewString(),
		BookingID:  bookingID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now(),
	}, nil
}

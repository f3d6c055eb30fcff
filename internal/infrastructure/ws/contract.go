package ws

import (
	"encoding/json"
	"time"

	"github.com/hirebuddy/hirebuddy/internal/domain"
)

// Envelope is the inbound frame format. Data is decoded per event type.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type JoinRoomPayload struct {
	BookingID string `json:"bookingId"`
}

type ChatMessagePayload struct {
	BookingID string `json:"bookingId"`
	Text      string `json:"text"`
}

// Event is the outbound frame format.
type Event struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type MessagePayload struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

type JoinedPayload struct {
	BookingID string `json:"bookingId"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func NewMessageReceived(roomID string, m *domain.Message) *Event {
	return &Event{
		Type:   MessageReceived,
		RoomID: roomID,
		Data: MessagePayload{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Text:      m.Text,
			Timestamp: m.CreatedAt.Format(time.RFC3339),
		},
	}
}

func NewRoomJoined(roomID string) *Event {
	return &Event{
		Type:   RoomJoined,
		RoomID: roomID,
		Data:   JoinedPayload{BookingID: roomID},
	}
}

func NewError(roomID, message string) *Event {
	return &Event{
		Type:   ErrorEvent,
		RoomID: roomID,
		Data:   ErrorPayload{Message: message},
	}
}

func NewAuthError(roomID, message string) *Event {
	return &Event{
		Type:   AuthenticationError,
		RoomID: roomID,
		Data: ErrorPayload{
			Code:    "AUTH_FAILED",
			Message: message,
		},
	}
}

func NewJoinFailed(roomID, reason string) *Event {
	return &Event{
		Type:   JoinFailed,
		RoomID: roomID,
		Data: ErrorPayload{
			Code:    "JOIN_FAILED",
			Message: reason,
		},
	}
}

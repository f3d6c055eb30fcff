package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hirebuddy/hirebuddy/internal/chat"
	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/metrics"
)

const storeTimeout = 5 * time.Second

type inboundFrame struct {
	client   *Client
	envelope Envelope
}

// Core is the relay engine: a single control loop that serializes session
// registration, room joins and message fan-out. Joins and messages run
// through the chat service, so a relayed message is always authorized and
// persisted before any session sees it.
type Core struct {
	registry   *Registry
	chat       *chat.Service
	logger     logging.Logger
	metrics    *metrics.Metrics
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundFrame
}

func NewCore(registry *Registry, chatService *chat.Service, logger logging.Logger, m *metrics.Metrics) *Core {
	return &Core{
		registry:   registry,
		chat:       chatService,
		logger:     logger,
		metrics:    m,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundFrame, 256),
	}
}

func (c *Core) Register() chan<- *Client     { return c.register }
func (c *Core) Unregister() chan<- *Client   { return c.unregister }
func (c *Core) Inbound() chan<- inboundFrame { return c.inbound }

func (c *Core) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case <-c.register:
			if c.metrics != nil {
				c.metrics.WSSessions.Inc()
			}

		case cl := <-c.unregister:
			c.registry.Leave(cl)
			cl.closeSend()
			if c.metrics != nil {
				c.metrics.WSSessions.Dec()
				c.metrics.WSRooms.Set(float64(c.registry.RoomCount()))
			}

		case frame := <-c.inbound:
			c.handleFrame(ctx, frame)
		}
	}
}

func (c *Core) handleFrame(ctx context.Context, frame inboundFrame) {
	switch frame.envelope.Type {
	case JoinRoom:
		var payload JoinRoomPayload
		if err := json.Unmarshal(frame.envelope.Data, &payload); err != nil || payload.BookingID == "" {
			frame.client.trySend(NewError("", "bookingId is required"))
			return
		}
		c.handleJoin(ctx, frame.client, payload.BookingID)

	case ChatMessage:
		var payload ChatMessagePayload
		if err := json.Unmarshal(frame.envelope.Data, &payload); err != nil || payload.BookingID == "" {
			frame.client.trySend(NewError("", "bookingId is required"))
			return
		}
		c.handleChatMessage(ctx, frame.client, payload)

	default:
		frame.client.trySend(NewError("", "unknown event type"))
	}
}

// handleJoin admits the session only if its verified identity is a
// participant of the booking. Denials answer with an explicit event and keep
// the connection open.
func (c *Core) handleJoin(ctx context.Context, cl *Client, bookingID string) {
	opCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	_, err := c.chat.Gate().Authorize(opCtx, cl.UserID, bookingID)
	if err != nil {
		cl.trySend(c.denialEvent(bookingID, err))
		return
	}

	c.registry.Join(bookingID, cl)
	cl.trySend(NewRoomJoined(bookingID))

	if c.metrics != nil {
		c.metrics.WSRooms.Set(float64(c.registry.RoomCount()))
	}

	// Replay persisted history so a reconnecting session catches up.
	history, err := c.chat.List(opCtx, cl.UserID, bookingID)
	if err != nil {
		c.logger.Warn(logging.Relay, logging.History, "history replay failed", map[logging.ExtraKey]any{
			logging.BookingID:    bookingID,
			logging.ErrorMessage: err.Error(),
		})
		return
	}
	for i := range history {
		cl.trySend(NewMessageReceived(bookingID, &history[i]))
	}
}

// handleChatMessage runs the same authorize-then-persist sequence as the REST
// send endpoint, then fans the stored message out to every session in the
// room, the sender included.
func (c *Core) handleChatMessage(ctx context.Context, cl *Client, payload ChatMessagePayload) {
	opCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	message, err := c.chat.Send(opCtx, cl.UserID, payload.BookingID, payload.Text)
	if err != nil {
		cl.trySend(c.denialEvent(payload.BookingID, err))
		return
	}

	c.registry.Broadcast(payload.BookingID, NewMessageReceived(payload.BookingID, message))

	if c.metrics != nil {
		c.metrics.MessagesSent.Inc()
	}
}

func (c *Core) denialEvent(bookingID string, err error) *Event {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		return NewJoinFailed(bookingID, "booking not found")
	case errors.Is(err, domain.ErrNotParticipant):
		return NewAuthError(bookingID, "not a participant of this booking")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewError(bookingID, "invalid request")
	default:
		c.logger.Error(logging.Relay, logging.ExternalService, "store call failed", map[logging.ExtraKey]any{
			logging.BookingID:    bookingID,
			logging.ErrorMessage: err.Error(),
		})
		return NewError(bookingID, "internal error")
	}
}

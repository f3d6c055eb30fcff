package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write an event to the peer.
	writeWait = 10 * time.Second

	// An idle session that misses pongs for this long is evicted.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 64
)

// Client is one live websocket session. Identity comes from the verified
// access token presented on connect, never from the payload.
type Client struct {
	ID     string
	UserID string

	conn *connWrapper
	send chan *Event

	// roomID is guarded by the registry mutex.
	roomID string

	closeOnce sync.Once
	closedMu  sync.RWMutex
	closed    bool
}

func NewClient(conn *websocket.Conn, userID string) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		conn:   newConnWrapper(conn),
		send:   make(chan *Event, sendBuffer),
	}
}

// trySend queues the event without blocking. Slow sessions drop events
// instead of stalling the broadcaster.
func (c *Client) trySend(event *Event) {
	c.closedMu.RLock()
	defer c.closedMu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- event:
	default:
	}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		c.closedMu.Lock()
		c.closed = true
		c.closedMu.Unlock()
		close(c.send)
	})
}

// ReadPump parses inbound envelopes and hands them to the core. It exits on
// transport close or on a read deadline missed by the peer's pongs, then
// unregisters the session.
func (c *Client) ReadPump(core *Core) {
	defer func() {
		core.Unregister() <- c
		_ = c.conn.Close()
	}()

	_ = c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.conn.SetPongHandler(func(string) error {
		return c.conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.trySend(NewError("", "malformed frame"))
			continue
		}

		core.Inbound() <- inboundFrame{client: c, envelope: env}
	}
}

// WritePump drains the send channel and keeps the connection alive with
// periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

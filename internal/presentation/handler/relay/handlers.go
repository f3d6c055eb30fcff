package relay

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/ws"
)

type Handler struct {
	core        *ws.Core
	authManager *auth.Manager
	logger      logging.Logger
	upgrader    websocket.Upgrader
}

func NewHandler(core *ws.Core, authManager *auth.Manager, logger logging.Logger) *Handler {
	return &Handler{
		core:        core,
		authManager: authManager,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin enforcement happens at the CORS layer; the session is
			// useless without a valid token anyway.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS godoc
// @Summary      Open a relay session
// @Description  Upgrades to a websocket after verifying the session token. Rooms are joined per booking with room.join frames.
// @Tags         relay
// @Success      101 "Switching protocols"
// @Failure      401 {object} map[string]interface{} "Missing or invalid token"
// @Security     BearerAuth
// @Router       /ws [get]
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	// Identity is settled before the upgrade; an anonymous socket never
	// reaches the relay.
	token := auth.TokenFromRequest(r)
	if token == "" {
		json.WriteUnauthorizedError(w, "authentication required")
		return
	}

	claims, err := h.authManager.Parse(token)
	if err != nil {
		json.WriteUnauthorizedError(w, "invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(logging.Relay, logging.Session, "websocket upgrade failed", map[logging.ExtraKey]any{
			logging.UserID:       claims.Subject,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	client := ws.NewClient(conn, claims.Subject)
	h.core.Register() <- client

	go client.WritePump()
	go client.ReadPump(h.core)

	h.logger.Info(logging.Relay, logging.Session, "relay session opened", map[logging.ExtraKey]any{
		logging.UserID: claims.Subject,
	})
}

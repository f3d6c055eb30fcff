package health

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
)

var startTime = time.Now()

type Handler struct {
	mongoClient *mongo.Client
}

func NewHandler(mongoClient *mongo.Client) *Handler {
	return &Handler{mongoClient: mongoClient}
}

// GetHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API, including uptime and current timestamp
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is healthy"
// @Router       /health [get]
// @Router       /healthz [get]
// @Router       /live [get]
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	})
}

// GetReady godoc
// @Summary      Readiness check
// @Description  Verifies the backing document store is reachable
// @Tags         health
// @Produce      json
// @Success      200 {object} healthResponse "Service is ready"
// @Failure      503 {object} healthResponse "Document store unreachable"
// @Router       /ready [get]
func (h *Handler) GetReady(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	resp := healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	}

	if h.mongoClient != nil {
		if err := h.mongoClient.Ping(r.Context(), readpref.Primary()); err != nil {
			status = http.StatusServiceUnavailable
			resp.Status = "unhealthy"
		}
	}

	json.Write(w, status, resp)
}

package chatbot

import (
	"net/http"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/assistant"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
)

// Topics surfaced next to every answer.
var suggestedTopics = []string{
	"Find travel buddies",
	"Apartment hunting help",
	"Pricing & credits",
	"Become a buddy",
}

type Handler struct {
	service *assistant.Service
}

func NewHandler(service *assistant.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// AskHandler godoc
// @Summary      Ask BuddyBot
// @Description  Answers a platform question via the configured chat model, falling back to canned responses
// @Tags         chatbot
// @Accept       json
// @Produce      json
// @Param        request body askRequest true "Question"
// @Success      200 {object} askResponse "Answer"
// @Failure      400 {object} map[string]interface{} "Malformed body"
// @Router       /chatbot [post]
func (h *Handler) AskHandler(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	answer := h.service.Ask(r.Context(), req.Message)

	json.Write(w, http.StatusOK, askResponse{
		Reply:           answer.Reply,
		Source:          answer.Source,
		SuggestedTopics: suggestedTopics,
	})
}

// StatusHandler godoc
// @Summary      Assistant status
// @Description  Reports whether a chat model backs the assistant or only local responses are available
// @Tags         chatbot
// @Produce      json
// @Success      200 {object} statusResponse "Status"
// @Router       /chatbot/status [get]
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	configured := h.service.ModelConfigured()

	status := "local responses only"
	if configured {
		status = "chat model configured"
	}

	json.Write(w, http.StatusOK, statusResponse{
		ModelConfigured: configured,
		Status:          status,
	})
}

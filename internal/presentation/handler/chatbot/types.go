package chatbot

type askRequest struct {
	Message string `json:"message" example:"How do credits work?"`
}

type askResponse struct {
	Reply           string   `json:"reply"`
	Source          string   `json:"source" enum:"model,local,fallback"`
	SuggestedTopics []string `json:"suggestedTopics"`
}

type statusResponse struct {
	ModelConfigured bool   `json:"modelConfigured"`
	Status          string `json:"status"`
}

// Package assistant implements BuddyBot, the FAQ helper that answers
// platform questions. A configured chat model provides the answers; without
// one, or when the model call fails, canned local responses take over.
package assistant

import (
	"context"
	"regexp"
	"strings"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
)

// Provider generates a model-backed answer to a visitor question.
type Provider interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Answer sources, reported to the client so the UI can tell a model answer
// from a canned one.
const (
	SourceModel    = "model"
	SourceLocal    = "local"
	SourceFallback = "fallback"
)

type Answer struct {
	Reply  string
	Source string
}

const systemPrompt = `You are "BuddyBot", the assistant for HireBuddy, a platform connecting customers with verified local buddies.

Services: travel companions, apartment hunting help, airport and station pickups, shopping buddies, local guides.
Credits: 3 free credits on signup; every verified payment tops up 10 more.
Bookings: a customer books a buddy for a date and location, the buddy confirms or declines, and both sides chat inside the booking.

Be friendly and brief. If you are not sure, suggest contacting support.`

// Questions a model adds nothing to.
var trivialMessage = regexp.MustCompile(`(?i)^(hi|hello|hey|test|ping)\b[\s.!?]*$`)

// Service routes a question to the model when one is configured and the
// question warrants it, falling back to local responses otherwise.
type Service struct {
	provider Provider
	logger   logging.Logger
}

func NewService(provider Provider, logger logging.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// ModelConfigured reports whether answers can come from a chat model.
func (s *Service) ModelConfigured() bool {
	return s.provider != nil
}

func (s *Service) Ask(ctx context.Context, message string) Answer {
	message = strings.TrimSpace(message)
	if message == "" {
		return Answer{
			Reply:  "Hey there! I'm BuddyBot. Ask me anything about HireBuddy — bookings, credits, or finding the right buddy.",
			Source: SourceLocal,
		}
	}

	if s.provider == nil || trivialMessage.MatchString(message) {
		return Answer{Reply: localReply(message), Source: SourceLocal}
	}

	reply, err := s.provider.Reply(ctx, message)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			s.logger.Warn(logging.General, logging.ExternalService, "assistant model call failed", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
		return Answer{Reply: localReply(message), Source: SourceFallback}
	}

	return Answer{Reply: strings.TrimSpace(reply), Source: SourceModel}
}

package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
)

type nopLogger struct{}

func (nopLogger) Init()                                                                      {}
func (nopLogger) Debug(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Debugf(string, ...any)                                                      {}
func (nopLogger) Info(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Infof(string, ...any)                                                       {}
func (nopLogger) Warn(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Warnf(string, ...any)                                                       {}
func (nopLogger) Error(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Errorf(string, ...any)                                                      {}
func (nopLogger) Fatal(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Fatalf(string, ...any)                                                      {}

type stubProvider struct {
	reply func(ctx context.Context, message string) (string, error)
}

func (p *stubProvider) Reply(ctx context.Context, message string) (string, error) {
	return p.reply(ctx, message)
}

func TestAskEmptyMessageGreetsLocally(t *testing.T) {
	svc := NewService(nil, nopLogger{})

	answer := svc.Ask(context.Background(), "   ")

	if answer.Source != SourceLocal {
		t.Fatalf("expected source %q, got %q", SourceLocal, answer.Source)
	}
	if !strings.Contains(answer.Reply, "BuddyBot") {
		t.Fatalf("expected a greeting, got %q", answer.Reply)
	}
}

func TestAskTrivialMessageSkipsModel(t *testing.T) {
	provider := &stubProvider{reply: func(context.Context, string) (string, error) {
		t.Fatal("model should not be called for a greeting")
		return "", nil
	}}
	svc := NewService(provider, nopLogger{})

	answer := svc.Ask(context.Background(), "hey!")

	if answer.Source != SourceLocal {
		t.Fatalf("expected source %q, got %q", SourceLocal, answer.Source)
	}
}

func TestAskUsesModelReply(t *testing.T) {
	provider := &stubProvider{reply: func(_ context.Context, message string) (string, error) {
		if message != "how do credits work?" {
			t.Fatalf("unexpected message forwarded to model: %q", message)
		}
		return "  Credits top up with each verified payment.  ", nil
	}}
	svc := NewService(provider, nopLogger{})

	answer := svc.Ask(context.Background(), "how do credits work?")

	if answer.Source != SourceModel {
		t.Fatalf("expected source %q, got %q", SourceModel, answer.Source)
	}
	if answer.Reply != "Credits top up with each verified payment." {
		t.Fatalf("expected trimmed model reply, got %q", answer.Reply)
	}
}

func TestAskFallsBackWhenModelFails(t *testing.T) {
	provider := &stubProvider{reply: func(context.Context, string) (string, error) {
		return "", errors.New("upstream timeout")
	}}
	svc := NewService(provider, nopLogger{})

	answer := svc.Ask(context.Background(), "what does a booking cost?")

	if answer.Source != SourceFallback {
		t.Fatalf("expected source %q, got %q", SourceFallback, answer.Source)
	}
	if answer.Reply == "" {
		t.Fatal("fallback reply must not be empty")
	}
}

func TestAskFallsBackOnBlankModelReply(t *testing.T) {
	provider := &stubProvider{reply: func(context.Context, string) (string, error) {
		return "   ", nil
	}}
	svc := NewService(provider, nopLogger{})

	answer := svc.Ask(context.Background(), "which services do you offer?")

	if answer.Source != SourceFallback {
		t.Fatalf("expected source %q, got %q", SourceFallback, answer.Source)
	}
}

func TestModelConfigured(t *testing.T) {
	if NewService(nil, nopLogger{}).ModelConfigured() {
		t.Fatal("no provider should report model not configured")
	}
	provider := &stubProvider{reply: func(context.Context, string) (string, error) { return "ok", nil }}
	if !NewService(provider, nopLogger{}).ModelConfigured() {
		t.Fatal("provider present should report model configured")
	}
}

func TestLocalReplyRules(t *testing.T) {
	cases := map[string]string{
		"how much do credits cost?":       "3 free credits",
		"how do I book someone?":          "How to book",
		"help me find a travel buddy":     "Finding a buddy",
		"what services do you offer?":     "travel companions",
		"can you fix my washing machine?": "contact support",
	}

	for message, want := range cases {
		if got := localReply(message); !strings.Contains(got, want) {
			t.Errorf("localReply(%q) = %q, want it to mention %q", message, got, want)
		}
	}
}

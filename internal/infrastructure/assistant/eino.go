package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
)

// EinoProvider answers through a chat model behind an eino prompt chain.
type EinoProvider struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

func NewEinoProvider(ctx context.Context, cfg configs.AssistantConfig) (*EinoProvider, error) {
	if !cfg.Enabled() {
		return nil, errors.New("assistant model and api key are required")
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 250
	}
	temperature := float32(cfg.Temperature)
	if temperature <= 0 {
		temperature = 0.8
	}

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile assistant chain: %w", err)
	}

	return &EinoProvider{chain: runnable}, nil
}

func (p *EinoProvider) Reply(ctx context.Context, message string) (string, error) {
	response, err := p.chain.Invoke(ctx, map[string]any{
		"system": systemPrompt,
		"query":  message,
	})
	if err != nil {
		return "", fmt.Errorf("failed to run assistant chain: %w", err)
	}
	return strings.TrimSpace(response.Content), nil
}

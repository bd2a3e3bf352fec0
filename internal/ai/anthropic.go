package ai

import (
	"context"
	"errors"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/cedarpath/practice-api/internal/config"
)

type anthropicCompleter struct {
	client anthropic.Client
}

// NewAnthropicCompleter wires the hosted model API with the fixed
// model/token/temperature parameters. Returns nil when no key is set.
func NewAnthropicCompleter(apiKey string) Completer {
	if apiKey == "" {
		return nil
	}
	return &anthropicCompleter{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (a *anthropicCompleter) Complete(ctx context.Context, system string, turns []Turn) (string, error) {
	messages := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		block := anthropic.NewTextBlock(t.Content)
		if t.Role == "assistant" {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(config.AIModel),
		MaxTokens:   config.AIMaxTokens,
		Temperature: anthropic.Float(config.AITemperature),
		Messages:    messages,
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(msg.Content) == 0 {
		return "", errors.New("empty model response")
	}
	return msg.Content[0].Text, nil
}

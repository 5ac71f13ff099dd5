package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/keyfob-dev/keyfob/internal/config"
)

// The advisor answers questions about one-time password hygiene only; the
// prompt keeps a general purpose model on that topic.
const systemPrompt = `You are a security assistant embedded in a TOTP code generator.
Answer questions about one-time passwords, shared secret handling and account
security hygiene. Be concise and practical. Refuse topics unrelated to
authentication security. Never ask the user for a secret or a code.`

// Advisor produces short advisory texts via a chat completion service.
type Advisor struct {
	client    *Client
	maxTokens int
}

// NewFromConfig builds an advisor from the server configuration, or nil when
// the feature is disabled.
func NewFromConfig(cfg config.AdvisorConfig) (*Advisor, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client, err := New(Config{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, err
	}

	return &Advisor{
		client:    client,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Advise asks the configured model for advisory text on the given topic.
func (a *Advisor) Advise(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		topic = "How should I handle TOTP shared secrets safely?"
	}

	response, err := a.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: topic},
		},
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(response.Choices) == 0 {
		return "", ErrNoChoices
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// String implements fmt.Stringer for logging without leaking configuration.
func (a *Advisor) String() string {
	return fmt.Sprintf("advisor(model=%s)", a.client.model)
}

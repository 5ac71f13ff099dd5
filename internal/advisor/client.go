package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/keyfob-dev/keyfob/internal/util/rest"
)

var ErrNoChoices = errors.New("advisor: response contained no choices")

// Client talks to an OpenAI compatible chat completions API.
type Client struct {
	restClient *rest.RESTClient
	model      string
}

// Config holds configuration for the advisor client
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// New creates a new advisor client
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1/"
	}

	// Ensure BaseURL has a trailing slash for proper URL resolution
	if !strings.HasSuffix(config.BaseURL, "/") {
		config.BaseURL = config.BaseURL + "/"
	}

	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}

	restClient, err := rest.NewClient(config.BaseURL, config.APIKey, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	restClient.SetTimeout(config.Timeout)
	restClient.SetContentType(rest.ContentTypeJSON)
	restClient.SetAccept(rest.ContentTypeJSON)

	return &Client{
		restClient: restClient,
		model:      config.Model,
	}, nil
}

// ChatCompletion performs a non-streaming chat completion.
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if req.Model == "" {
		req.Model = c.model
	}
	req.Stream = false

	var response ChatCompletionResponse
	_, err := c.restClient.Post(ctx, "chat/completions", req, &response, 0)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	return &response, nil
}

package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vytor/bardspeak/internal/logger"
)

// ErrUnavailable wraps any transport, timeout, or response failure from the
// quality oracle. Callers treat it as the signal to grade on the fallback
// path; it never surfaces to API clients.
var ErrUnavailable = errors.New("oracle unavailable")

// Oracle judges the quality of a practice submission on a 1-5 scale.
type Oracle interface {
	Rate(ctx context.Context, text string) (int, error)
}

const systemPrompt = "You rate student communication practice. " +
	"Reply with a single digit from 1 to 5, where 5 is excellent and 1 is poor. " +
	"Reply with the digit only."

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewClient builds an oracle client. baseURL may be empty for the default
// OpenAI endpoint or point at any compatible server.
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		log:     logger.Default().WithPrefix("oracle"),
	}
}

func (c *Client) Rate(ctx context.Context, text string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   4,
		Temperature: 0,
	})
	if err != nil {
		c.log.Warn("chat completion failed: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	reply := resp.Choices[0].Message.Content
	rating, err := ParseRating(reply)
	if err != nil {
		c.log.Warn("unparseable oracle reply: %q", reply)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return rating, nil
}

// ParseRating extracts the first digit in 1..5 from an oracle reply.
func ParseRating(reply string) (int, error) {
	for _, r := range strings.TrimSpace(reply) {
		if r >= '1' && r <= '5' {
			return int(r - '0'), nil
		}
	}
	return 0, fmt.Errorf("no rating digit in %q", reply)
}

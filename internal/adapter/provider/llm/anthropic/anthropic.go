// Package anthropic adapts the Claude Messages API to the chat model boundary.
package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// defaultMaxTokens applies when the request leaves MaxTokens unset; the
// Messages API requires one.
const defaultMaxTokens = 1024

// Chat implements the tutor chat model boundary with Claude.
type Chat struct {
	client sdk.Client
	model  string
}

type config struct {
	baseURL string
	timeout time.Duration
}

// Option is a functional option for Chat.
type Option func(*config)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// NewChat constructs a Chat for model.
func NewChat(apiKey, model string, opts ...Option) (*Chat, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("anthropic: model must not be empty")
	}

	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{Timeout: cfg.timeout}))
	}
	return &Chat{client: sdk.NewClient(reqOpts...), model: model}, nil
}

// Complete sends the instruction and history and returns the reply text.
func (c *Chat) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	msg, err := c.client.Messages.New(ctx, c.buildParams(req))
	if err != nil {
		return "", fmt.Errorf("anthropic: messages: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("anthropic: %w", llm.ErrEmptyReply)
	}
	return b.String(), nil
}

func (c *Chat) buildParams(req domain.ModelRequest) sdk.MessageNewParams {
	turns := llm.Alternate(req.History)
	messages := make([]sdk.MessageParam, 0, len(turns))
	for _, t := range turns {
		if t.Learner {
			messages = append(messages, sdk.NewUserMessage(sdk.NewTextBlock(t.Text)))
		} else {
			messages = append(messages, sdk.NewAssistantMessage(sdk.NewTextBlock(t.Text)))
		}
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: maxTokens,
		System:    []sdk.TextBlockParam{{Text: req.Instruction}},
		Messages:  messages,
	}
	if req.Temperature != 0 {
		params.Temperature = sdk.Float(req.Temperature)
	}
	return params
}

// Package openai adapts OpenAI-compatible endpoints (Groq, OpenAI, local
// gateways) to the chat model and speech-to-text boundaries.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// config holds optional configuration shared by Chat and Transcriber.
type config struct {
	baseURL  string
	timeout  time.Duration
	jsonMode bool
}

// Option is a functional option for Chat and Transcriber.
type Option func(*config)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *config) { c.baseURL = url }
}

// WithTimeout sets a per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithJSONMode asks the endpoint for a JSON object reply.
func WithJSONMode(on bool) Option {
	return func(c *config) { c.jsonMode = on }
}

func newClient(apiKey string, opts []Option) (oai.Client, *config) {
	cfg := &config{}
	for _, o := range opts {
		o(cfg)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// One call per turn; the caller decides what a failure means.
		option.WithMaxRetries(0),
	}
	if cfg.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
	}
	if cfg.timeout > 0 {
		reqOpts = append(reqOpts, option.WithHTTPClient(&http.Client{Timeout: cfg.timeout}))
	}
	return oai.NewClient(reqOpts...), cfg
}

// Chat implements the tutor chat model boundary with Chat Completions.
type Chat struct {
	client   oai.Client
	model    string
	jsonMode bool
}

// NewChat constructs a Chat for model.
func NewChat(apiKey, model string, opts ...Option) (*Chat, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai: model must not be empty")
	}
	client, cfg := newClient(apiKey, opts)
	return &Chat{client: client, model: model, jsonMode: cfg.jsonMode}, nil
}

// Complete sends the instruction and history and returns the raw reply text.
func (c *Chat) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, c.buildParams(req))
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w: no choices", llm.ErrEmptyReply)
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("openai: %w", llm.ErrEmptyReply)
	}
	return content, nil
}

func (c *Chat) buildParams(req domain.ModelRequest) oai.ChatCompletionNewParams {
	messages := make([]oai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	messages = append(messages, oai.SystemMessage(req.Instruction))
	for _, m := range req.History {
		messages = append(messages, convertMessage(m))
	}
	if len(req.History) == 0 {
		messages = append(messages, oai.UserMessage(llm.Kickoff))
	}

	params := oai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: messages,
	}
	if req.Temperature != 0 {
		params.Temperature = param.NewOpt(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = param.NewOpt(int64(req.MaxTokens))
	}
	if c.jsonMode {
		params.ResponseFormat = oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
	return params
}

func convertMessage(m domain.ChatMessage) oai.ChatCompletionMessageParamUnion {
	if m.Role == domain.RoleTutor {
		return oai.ChatCompletionMessageParamUnion{
			OfAssistant: &oai.ChatCompletionAssistantMessageParam{
				Content: oai.ChatCompletionAssistantMessageParamContentUnion{OfString: oai.String(m.Text)},
			},
		}
	}
	return oai.UserMessage(m.Text)
}

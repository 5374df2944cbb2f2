// Package gemini adapts Google Gemini to the chat model boundary.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/provider/llm"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Chat implements the tutor chat model boundary with Gemini.
type Chat struct {
	client   *genai.Client
	model    string
	jsonMode bool
}

// NewChat dials Gemini. Close releases the client.
func NewChat(ctx context.Context, apiKey, model string, jsonMode bool) (*Chat, error) {
	apiKey = strings.TrimSpace(apiKey)
	model = strings.TrimSpace(model)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini: model must not be empty")
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Chat{client: cl, model: model, jsonMode: jsonMode}, nil
}

// Close releases the underlying client.
func (c *Chat) Close() error {
	return c.client.Close()
}

// Complete sends the instruction and history and returns the reply text.
func (c *Chat) Complete(ctx context.Context, req domain.ModelRequest) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.GenerationConfig = generationConfig(req, c.jsonMode)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.Instruction)}}

	history, last := contents(llm.Alternate(req.History))
	cs := m.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: %w", llm.ErrEmptyReply)
	}
	return text, nil
}

func generationConfig(req domain.ModelRequest, jsonMode bool) genai.GenerationConfig {
	var cfg genai.GenerationConfig
	if req.Temperature != 0 {
		cfg.Temperature = ptr(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = ptr(int32(req.MaxTokens))
	}
	if jsonMode {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

// contents splits alternating turns into chat history and the final learner
// message. turns always ends with a learner turn.
func contents(turns []llm.Turn) ([]*genai.Content, *genai.Content) {
	all := make([]*genai.Content, len(turns))
	for i, t := range turns {
		role := "user"
		if !t.Learner {
			role = "model"
		}
		all[i] = &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Text)}}
	}
	return all[:len(all)-1], all[len(all)-1]
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func ptr[T any](v T) *T { return &v }

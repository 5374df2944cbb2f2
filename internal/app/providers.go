package app

import (
	"context"
	"fmt"

	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/provider/llm/anthropic"
	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/provider/llm/gemini"
	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/provider/llm/openai"
	"github.com/heartmarshall/lingua-tutor-backend/internal/config"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// chatModel is the completion boundary handed to the tutor service.
type chatModel interface {
	Complete(ctx context.Context, req domain.ModelRequest) (string, error)
}

// transcriber is the speech-to-text boundary handed to the tutor service.
type transcriber interface {
	Transcribe(ctx context.Context, audio domain.Audio, language string) (string, error)
}

func (a *App) newChatModel(ctx context.Context) (chatModel, error) {
	cfg := a.cfg.LLM

	switch cfg.Provider {
	case "groq", "openai":
		return openai.NewChat(cfg.APIKey, cfg.Model,
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithTimeout(cfg.Timeout),
			openai.WithJSONMode(cfg.JSONMode),
		)
	case "anthropic":
		opts := []anthropic.Option{anthropic.WithTimeout(cfg.Timeout)}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		return anthropic.NewChat(cfg.APIKey, cfg.Model, opts...)
	case "gemini":
		chat, err := gemini.NewChat(ctx, cfg.APIKey, cfg.Model, cfg.JSONMode)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, chat.Close)
		return chat, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// newTranscriber builds the speech-to-text client. STT always speaks the
// OpenAI-compatible transcription API.
func newTranscriber(cfg config.STTConfig) (*openai.Transcriber, error) {
	return openai.NewTranscriber(cfg.APIKey, cfg.Model,
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithTimeout(cfg.Timeout),
	)
}

package openai

import (
	"context"
	"fmt"
	"strings"

	oai "github.com/openai/openai-go"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Transcriber implements speech-to-text with the audio transcription
// endpoint (Whisper on Groq or OpenAI).
type Transcriber struct {
	client oai.Client
	model  string
}

// NewTranscriber constructs a Transcriber for model.
func NewTranscriber(apiKey, model string, opts ...Option) (*Transcriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai stt: apiKey must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("openai stt: model must not be empty")
	}
	client, _ := newClient(apiKey, opts)
	return &Transcriber{client: client, model: model}, nil
}

// Transcribe returns the trimmed transcript of audio. language is an
// ISO-639-1 hint such as "es"; empty lets the endpoint detect it.
func (t *Transcriber) Transcribe(ctx context.Context, audio domain.Audio, language string) (string, error) {
	filename := audio.Filename
	if filename == "" {
		filename = "audio.webm"
	}
	contentType := audio.ContentType
	if contentType == "" {
		contentType = "audio/webm"
	}

	params := oai.AudioTranscriptionNewParams{
		File:  oai.File(audio.Data, filename, contentType),
		Model: oai.AudioModel(t.model),
	}
	if language != "" {
		params.Language = oai.String(language)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai stt: transcription: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

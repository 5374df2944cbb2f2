//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lingua-tutor-backend/internal/app"
	"github.com/heartmarshall/lingua-tutor-backend/internal/config"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// scriptedModel replays canned completions in order and records requests.
type scriptedModel struct {
	mu       sync.Mutex
	replies  []string
	requests []domain.ModelRequest
	err      error
}

func (m *scriptedModel) Complete(_ context.Context, req domain.ModelRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return `{"conversationMessage":"…"}`, nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *scriptedModel) script(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

func (m *scriptedModel) lastRequest() domain.ModelRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

type fixedTranscriber struct {
	text     string
	language string
}

func (f *fixedTranscriber) Transcribe(_ context.Context, audio domain.Audio, language string) (string, error) {
	if _, err := io.ReadAll(audio.Data); err != nil {
		return "", err
	}
	f.language = language
	return f.text, nil
}

type testServer struct {
	URL    string
	Client *http.Client
	Model  *scriptedModel
	STT    *fixedTranscriber
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			ShutdownTimeout: 5 * time.Second,
			MaxUploadBytes:  1 << 20,
		},
		Database: config.DatabaseConfig{
			DSN:             testhelper.DSN(),
			MaxConns:        5,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: time.Minute,
		},
		Auth: config.AuthConfig{
			SessionSecret:    "e2e-session-secret-with-32-characters!",
			Issuer:           "lingua-tutor-e2e",
			SessionTTL:       time.Hour,
			PasswordHashCost: 4,
		},
		LLM: config.LLMConfig{
			Provider:         "groq",
			Temperature:      0.3,
			MaxTokens:        500,
			VoiceTemperature: 0.7,
			VoiceMaxTokens:   300,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         600,
		},
		RateLimit: config.RateLimitConfig{ChatPerMinute: 1000, AuthPerMinute: 1000},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Log:       config.LogConfig{Level: "error", Format: "text"},
	}
}

// setupTestServer starts the full application on a shared test database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// Starts the container and applies migrations once per binary.
	testhelper.SetupTestDB(t)

	model := &scriptedModel{}
	stt := &fixedTranscriber{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, testConfig(), logger, app.WithChatModel(model), app.WithTranscriber(stt))
	require.NoError(t, err)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Shutdown(shutdownCtx)
	})

	return &testServer{URL: srv.URL, Client: srv.Client(), Model: model, STT: stt}
}

type learner struct {
	ID    uuid.UUID
	Email string
	Token string
}

func (ts *testServer) signup(t *testing.T) learner {
	t.Helper()

	email := fmt.Sprintf("learner-%s@example.com", uuid.NewString()[:8])
	status, body := ts.postJSON(t, "/api/auth/signup", "", map[string]any{
		"email":    email,
		"password": "correct-horse",
		"name":     "E2E Learner",
	})
	require.Equal(t, http.StatusCreated, status, "signup: %v", body)

	user := body["user"].(map[string]any)
	session := body["session"].(map[string]any)
	return learner{
		ID:    uuid.MustParse(user["id"].(string)),
		Email: email,
		Token: session["token"].(string),
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body io.Reader, contentType string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(bytes.TrimSpace(raw)) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	}
	return resp.StatusCode, out
}

func (ts *testServer) postJSON(t *testing.T, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	return ts.do(t, http.MethodPost, path, token, bytes.NewReader(b), "application/json")
}

func (ts *testServer) get(t *testing.T, path, token string) (int, map[string]any) {
	t.Helper()
	return ts.do(t, http.MethodGet, path, token, nil, "")
}

func (ts *testServer) chat(t *testing.T, l learner, lessonID any, messages ...map[string]string) (int, map[string]any) {
	t.Helper()
	return ts.postJSON(t, "/api/llm/chat", "", map[string]any{
		"messages":     messages,
		"languageId":   "spanish",
		"lessonId":     lessonID,
		"userId":       l.ID.String(),
		"sessionToken": l.Token,
	})
}

func msg(role, content string) map[string]string {
	return map[string]string{"role": role, "content": content}
}

func wordsByText(t *testing.T, body map[string]any) map[string]map[string]any {
	t.Helper()

	out := map[string]map[string]any{}
	for _, w := range body["words"].([]any) {
		m := w.(map[string]any)
		out[m["word"].(string)] = m
	}
	return out
}

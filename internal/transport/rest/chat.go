package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/tutor"
	"github.com/heartmarshall/lingua-tutor-backend/pkg/ctxutil"
)

// tutorService defines the conversation operations needed by ChatHandler.
type tutorService interface {
	Turn(ctx context.Context, input tutor.TurnInput) (*domain.TurnOutcome, error)
	VoiceTurn(ctx context.Context, input tutor.VoiceTurnInput) (*domain.TurnOutcome, error)
}

// ChatHandler serves the text and voice conversation endpoints.
type ChatHandler struct {
	svc       tutorService
	log       *slog.Logger
	maxUpload int64
}

// NewChatHandler creates a ChatHandler. maxUpload bounds voice uploads.
func NewChatHandler(svc tutorService, logger *slog.Logger, maxUpload int64) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat"), maxUpload: maxUpload}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages     []chatMessage `json:"messages"`
	LanguageID   string        `json:"languageId"`
	LessonID     flexInt       `json:"lessonId"`
	UserID       string        `json:"userId"`
	SessionToken string        `json:"sessionToken"`
}

type correctionResponse struct {
	OriginalWord string `json:"originalWord"`
	Correction   string `json:"correction"`
	Explanation  string `json:"explanation"`
}

type newWordResponse struct {
	Word        string  `json:"word"`
	Translation *string `json:"translation,omitempty"`
	Romaji      *string `json:"romaji,omitempty"`
}

type turnResponse struct {
	UserText            string               `json:"userText,omitempty"`
	ConversationMessage string               `json:"conversationMessage"`
	SystemMessage       string               `json:"systemMessage"`
	LessonComplete      bool                 `json:"lessonComplete"`
	Message             string               `json:"message"`
	Corrections         []correctionResponse `json:"corrections"`
	NewWords            []newWordResponse    `json:"newWords"`
}

// Chat handles POST /api/llm/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Turn(r.Context(), tutor.TurnInput{
		History:      toHistory(req.Messages),
		LanguageID:   req.LanguageID,
		LessonID:     int(req.LessonID),
		LearnerID:    learnerID(r, req.UserID),
		SessionToken: firstNonEmpty(req.SessionToken, sessionToken(r)),
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTurnResponse(out))
}

// Voice handles POST /api/llm/voice (multipart/form-data).
func (h *ChatHandler) Voice(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "audio too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	var history []chatMessage
	if raw := strings.TrimSpace(r.FormValue("conversationHistory")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			writeError(w, http.StatusBadRequest, "invalid conversationHistory")
			return
		}
	}

	lessonID, err := strconv.Atoi(strings.TrimSpace(r.FormValue("lessonId")))
	if err != nil {
		lessonID = 0 // rejected by validation
	}

	input := tutor.VoiceTurnInput{
		TurnInput: tutor.TurnInput{
			History:      toHistory(history),
			LanguageID:   r.FormValue("languageId"),
			LessonID:     lessonID,
			LearnerID:    learnerID(r, r.FormValue("userId")),
			SessionToken: firstNonEmpty(r.FormValue("sessionToken"), sessionToken(r)),
		},
	}

	file, header, err := r.FormFile("audio")
	if err == nil {
		defer file.Close()
		input.Audio = domain.Audio{
			Data:        file,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, "invalid audio upload")
		return
	}

	out, err := h.svc.VoiceTurn(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toTurnResponse(out))
}

// toHistory maps the web client's chat roles. Unknown roles pass through so
// validation can report them.
func toHistory(msgs []chatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		role := domain.Role(m.Role)
		switch m.Role {
		case "user":
			role = domain.RoleLearner
		case "assistant":
			role = domain.RoleTutor
		}
		out = append(out, domain.ChatMessage{Role: role, Text: m.Content})
	}
	return out
}

// learnerID prefers the explicit userId field and falls back to the learner
// resolved from the bearer token.
func learnerID(r *http.Request, raw string) uuid.UUID {
	if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
		return id
	}
	id, _ := ctxutil.UserIDFromCtx(r.Context())
	return id
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func toTurnResponse(out *domain.TurnOutcome) turnResponse {
	resp := turnResponse{
		UserText:            out.UserText,
		ConversationMessage: out.ConversationMessage,
		SystemMessage:       out.SystemMessage,
		LessonComplete:      out.LessonComplete,
		Message:             out.ConversationMessage,
		Corrections:         make([]correctionResponse, 0, len(out.Corrections)),
		NewWords:            make([]newWordResponse, 0, len(out.NewWords)),
	}
	for _, c := range out.Corrections {
		resp.Corrections = append(resp.Corrections, correctionResponse{
			OriginalWord: c.OriginalWord,
			Correction:   c.Correction,
			Explanation:  c.Explanation,
		})
	}
	for _, nw := range out.NewWords {
		resp.NewWords = append(resp.NewWords, newWordResponse{
			Word:        nw.Word,
			Translation: nw.Translation,
			Romaji:      nw.Romaji,
		})
	}
	return resp
}

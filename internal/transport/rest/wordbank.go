package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/wordbank"
	"github.com/heartmarshall/lingua-tutor-backend/pkg/ctxutil"
)

type wordBankService interface {
	List(ctx context.Context, input wordbank.ListInput) (*wordbank.ListResult, error)
}

// WordBankHandler serves a learner's vocabulary.
type WordBankHandler struct {
	svc wordBankService
	log *slog.Logger
}

// NewWordBankHandler creates a WordBankHandler.
func NewWordBankHandler(svc wordBankService, logger *slog.Logger) *WordBankHandler {
	return &WordBankHandler{svc: svc, log: logger.With("handler", "wordbank")}
}

type wordResponse struct {
	ID          string    `json:"id"`
	Word        string    `json:"word"`
	Translation *string   `json:"translation"`
	Romaji      *string   `json:"romaji"`
	Status      string    `json:"status"`
	TimesSeen   int       `json:"timesSeen"`
	TimesUsed   int       `json:"timesUsed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// List handles GET /api/wordbank/{languageId}?status=&limit=&offset=.
func (h *WordBankHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	input := wordbank.ListInput{
		UserID:     userID,
		LanguageID: r.PathValue("languageId"),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status := domain.WordStatus(strings.ToLower(raw))
		input.Status = &status
	}

	var err error
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}
	if input.Offset, err = queryInt(r, "offset"); err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	result, err := h.svc.List(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	out := make([]wordResponse, 0, len(result.Words))
	for _, wk := range result.Words {
		out = append(out, wordResponse{
			ID:          wk.ID.String(),
			Word:        wk.Word,
			Translation: wk.Translation,
			Romaji:      wk.Romaji,
			Status:      wk.Status.String(),
			TimesSeen:   wk.TimesSeen,
			TimesUsed:   wk.TimesUsed,
			CreatedAt:   wk.CreatedAt,
			UpdatedAt:   wk.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": out, "total": result.Total})
}

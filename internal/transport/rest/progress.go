package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/progress"
	"github.com/heartmarshall/lingua-tutor-backend/pkg/ctxutil"
)

type progressService interface {
	Update(ctx context.Context, input progress.UpdateInput) (*domain.LessonProgress, error)
	List(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error)
}

// ProgressHandler serves lesson progress.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

type updateProgressRequest struct {
	LessonID flexInt `json:"lessonId"`
	Status   string  `json:"status"`
	Score    *int    `json:"score"`
}

type progressResponse struct {
	LessonID    int        `json:"lessonId"`
	Status      string     `json:"status"`
	Score       *int       `json:"score"`
	CompletedAt *time.Time `json:"completedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// List handles GET /api/progress/{languageId}.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	items, err := h.svc.List(r.Context(), userID, r.PathValue("languageId"))
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	out := make([]progressResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toProgressResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": out})
}

// Update handles POST /api/progress/{languageId}.
func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req updateProgressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.svc.Update(r.Context(), progress.UpdateInput{
		UserID:     userID,
		LanguageID: r.PathValue("languageId"),
		LessonID:   int(req.LessonID),
		Status:     domain.ProgressStatus(req.Status),
		Score:      req.Score,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"progress": toProgressResponse(*p)})
}

func toProgressResponse(p domain.LessonProgress) progressResponse {
	return progressResponse{
		LessonID:    p.LessonID,
		Status:      p.Status.String(),
		Score:       p.Score,
		CompletedAt: p.CompletedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

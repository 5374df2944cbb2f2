package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/course"
	"github.com/heartmarshall/lingua-tutor-backend/pkg/ctxutil"
)

type courseService interface {
	Enroll(ctx context.Context, input course.EnrollInput) (*domain.Course, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
}

// CourseHandler serves course enrollment.
type CourseHandler struct {
	svc courseService
	log *slog.Logger
}

// NewCourseHandler creates a CourseHandler.
func NewCourseHandler(svc courseService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{svc: svc, log: logger.With("handler", "course")}
}

type enrollRequest struct {
	LanguageID string `json:"languageId"`
	Level      string `json:"level"`
}

type courseResponse struct {
	ID         string    `json:"id"`
	LanguageID string    `json:"languageId"`
	Level      string    `json:"level"`
	EnrolledAt time.Time `json:"enrolledAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// List handles GET /api/courses.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	courses, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	out := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": out})
}

// Enroll handles POST /api/courses.
func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req enrollRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.svc.Enroll(r.Context(), course.EnrollInput{
		UserID:     userID,
		LanguageID: req.LanguageID,
		Level:      req.Level,
	})
	if err != nil {
		writeServiceError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"course": toCourseResponse(*c)})
}

func toCourseResponse(c domain.Course) courseResponse {
	return courseResponse{
		ID:         c.ID.String(),
		LanguageID: c.LanguageID,
		Level:      c.Level,
		EnrolledAt: c.EnrolledAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

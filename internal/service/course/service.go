// Package course manages learner enrollments in catalog languages.
package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

type courseRepo interface {
	Upsert(ctx context.Context, userID uuid.UUID, languageID, level string) (*domain.Course, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)
}

type languageCatalog interface {
	Lessons(languageID, level string) ([]domain.Lesson, error)
}

// Service implements course enrollment.
type Service struct {
	log     *slog.Logger
	repo    courseRepo
	catalog languageCatalog
}

// NewService creates a new course service instance.
func NewService(logger *slog.Logger, repo courseRepo, catalog languageCatalog) *Service {
	return &Service{
		log:     logger.With("service", "course"),
		repo:    repo,
		catalog: catalog,
	}
}

// EnrollInput holds parameters for enrolling in a language.
type EnrollInput struct {
	UserID     uuid.UUID
	LanguageID string
	Level      string
}

// Enroll starts, or changes the level of, a course. The language and level
// must exist in the catalog.
func (s *Service) Enroll(ctx context.Context, input EnrollInput) (*domain.Course, error) {
	input.LanguageID = strings.TrimSpace(input.LanguageID)
	input.Level = strings.ToLower(strings.TrimSpace(input.Level))
	if input.Level == "" {
		input.Level = domain.LevelBeginner
	}

	if input.LanguageID == "" {
		return nil, domain.NewValidationError("languageId", "required")
	}
	if _, err := s.catalog.Lessons(input.LanguageID, input.Level); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("languageId", "unknown language or level")
		}
		return nil, fmt.Errorf("course.Enroll: %w", err)
	}

	c, err := s.repo.Upsert(ctx, input.UserID, input.LanguageID, input.Level)
	if err != nil {
		return nil, fmt.Errorf("course.Enroll: %w", err)
	}

	s.log.InfoContext(ctx, "course enrolled",
		slog.String("user_id", input.UserID.String()),
		slog.String("language_id", input.LanguageID),
		slog.String("level", input.Level))

	return c, nil
}

// List returns the learner's courses, most recent enrollment first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	courses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("course.List: %w", err)
	}
	return courses, nil
}

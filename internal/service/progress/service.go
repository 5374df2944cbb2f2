// Package progress tracks which lessons a learner has completed.
package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// progressRepo defines the persistence needed by the progress service.
type progressRepo interface {
	Upsert(ctx context.Context, p domain.LessonProgress) (*domain.LessonProgress, error)
	List(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error)
}

// Service implements lesson progress operations.
type Service struct {
	log  *slog.Logger
	repo progressRepo
}

// NewService creates a new progress service instance.
func NewService(logger *slog.Logger, repo progressRepo) *Service {
	return &Service{
		log:  logger.With("service", "progress"),
		repo: repo,
	}
}

// UpsertCompletion marks a lesson completed without touching its score.
func (s *Service) UpsertCompletion(ctx context.Context, userID uuid.UUID, languageID string, lessonID int) error {
	_, err := s.Update(ctx, UpdateInput{
		UserID:     userID,
		LanguageID: languageID,
		LessonID:   lessonID,
		Status:     domain.ProgressStatusCompleted,
	})
	return err
}

// Update sets the status, and optionally the score, of one lesson.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.LessonProgress, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.Upsert(ctx, domain.LessonProgress{
		UserID:     input.UserID,
		LanguageID: input.LanguageID,
		LessonID:   input.LessonID,
		Status:     input.Status,
		Score:      input.Score,
	})
	if err != nil {
		return nil, fmt.Errorf("progress.Update: %w", err)
	}

	s.log.InfoContext(ctx, "lesson progress updated",
		slog.String("user_id", input.UserID.String()),
		slog.String("language_id", input.LanguageID),
		slog.Int("lesson_id", input.LessonID),
		slog.String("status", input.Status.String()))

	return p, nil
}

// List returns the learner's progress in a language ordered by lesson id.
func (s *Service) List(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error) {
	if languageID == "" {
		return nil, domain.NewValidationError("languageId", "required")
	}

	items, err := s.repo.List(ctx, userID, languageID)
	if err != nil {
		return nil, fmt.Errorf("progress.List: %w", err)
	}
	return items, nil
}

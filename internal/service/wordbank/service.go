// Package wordbank maintains per-learner word knowledge: what the tutor has
// shown (seen) and what the learner has produced (used).
package wordbank

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// wordRepo is the word bank persistence. Upserts must be atomic per
// (user, language, word) key.
type wordRepo interface {
	UpsertSeen(ctx context.Context, s domain.WordSighting) (*domain.WordKnowledge, error)
	UpsertUsed(ctx context.Context, userID uuid.UUID, languageID, word string) (*domain.WordKnowledge, error)
	GetByWords(ctx context.Context, userID uuid.UUID, languageID string, words []string) ([]domain.WordKnowledge, error)
	List(ctx context.Context, userID uuid.UUID, languageID string, filter domain.WordBankFilter) ([]domain.WordKnowledge, int, error)
}

// segmenter splits text into morphemes for languages written without spaces.
type segmenter interface {
	Segment(text string) []string
}

// writeMetrics counts upserts.
type writeMetrics interface {
	RecordWordWrite(ctx context.Context, signal, status string)
}

// Service implements word bank operations.
type Service struct {
	log       *slog.Logger
	words     wordRepo
	segmenter segmenter
	metrics   writeMetrics
}

// NewService creates a new word bank service. seg may be nil, in which case
// every language is tokenized on non-word characters.
func NewService(logger *slog.Logger, words wordRepo, seg segmenter, metrics writeMetrics) *Service {
	return &Service{
		log:       logger.With("service", "wordbank"),
		words:     words,
		segmenter: seg,
		metrics:   metrics,
	}
}

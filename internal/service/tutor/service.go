// Package tutor runs conversation turns: it calls the model, recovers a
// structured tutoring response from the completion, filters the proposed
// vocabulary and merges it into the learner's word bank.
package tutor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// sessionResolver resolves a session credential to a learner identity.
type sessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.Session, error)
}

// lessonCatalog looks up languages and lessons.
type lessonCatalog interface {
	Language(id string) (domain.Language, error)
	GetLesson(languageID, level string, lessonID int) (domain.Lesson, error)
}

// chatModel is the model boundary. It returns the raw completion text.
type chatModel interface {
	Complete(ctx context.Context, req domain.ModelRequest) (string, error)
}

// transcriber turns learner audio into text.
type transcriber interface {
	Transcribe(ctx context.Context, audio domain.Audio, language string) (string, error)
}

// wordBank persists per-learner word knowledge.
type wordBank interface {
	RecordSeen(ctx context.Context, s domain.WordSighting) (*domain.WordKnowledge, error)
	RecordUsed(ctx context.Context, userID uuid.UUID, languageID, utterance string) ([]domain.WordKnowledge, error)
	Lookup(ctx context.Context, userID uuid.UUID, languageID string, words []string) (map[string]domain.WordKnowledge, error)
}

// progressStore records lesson completion.
type progressStore interface {
	UpsertCompletion(ctx context.Context, userID uuid.UUID, languageID string, lessonID int) error
}

// turnMetrics receives pipeline observations.
type turnMetrics interface {
	RecordTurn(ctx context.Context, kind, outcome string, d time.Duration)
	RecordUpstream(ctx context.Context, kind, status string, d time.Duration)
	RecordParse(ctx context.Context, stage string)
	RecordVocab(ctx context.Context, admitted int, rejectReasons []string)
}

// Config tunes the model call per turn kind.
type Config struct {
	Temperature       float64
	MaxTokens         int
	VoiceTemperature  float64
	VoiceMaxTokens    int
	SideEffectTimeout time.Duration
}

// Service implements the turn pipeline.
type Service struct {
	log       *slog.Logger
	sessions  sessionResolver
	catalog   lessonCatalog
	model     chatModel
	stt       transcriber
	words     wordBank
	progress  progressStore
	metrics   turnMetrics
	prompts   *PromptBuilder
	extractor Extractor
	cfg       Config
	now       func() time.Time

	bg sync.WaitGroup
}

// NewService creates a new tutor service instance.
func NewService(
	logger *slog.Logger,
	sessions sessionResolver,
	catalog lessonCatalog,
	model chatModel,
	stt transcriber,
	words wordBank,
	progress progressStore,
	metrics turnMetrics,
	prompts *PromptBuilder,
	cfg Config,
) *Service {
	if cfg.SideEffectTimeout <= 0 {
		cfg.SideEffectTimeout = 10 * time.Second
	}
	return &Service{
		log:       logger.With("service", "tutor"),
		sessions:  sessions,
		catalog:   catalog,
		model:     model,
		stt:       stt,
		words:     words,
		progress:  progress,
		metrics:   metrics,
		prompts:   prompts,
		extractor: Extractor{Policy: Policy{}},
		cfg:       cfg,
		now:       time.Now,
	}
}

// Wait blocks until background side effects of finished turns are done.
func (s *Service) Wait() {
	s.bg.Wait()
}

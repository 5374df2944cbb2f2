package wordbank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

const (
	signalSeen = "seen"
	signalUsed = "used"
)

// RecordSeen records that the tutor showed a word. A new record starts
// passive; an existing one gets timesSeen+1 and the latest translation and
// romaji while keeping its status.
func (s *Service) RecordSeen(ctx context.Context, sighting domain.WordSighting) (*domain.WordKnowledge, error) {
	sighting.Word = domain.NormalizeWord(sighting.Word)
	sighting.Translation = strings.TrimSpace(sighting.Translation)
	if sighting.Romaji != nil {
		r := strings.TrimSpace(*sighting.Romaji)
		if r == "" {
			sighting.Romaji = nil
		} else {
			sighting.Romaji = &r
		}
	}

	if err := validateSighting(sighting); err != nil {
		return nil, err
	}

	rec, err := s.words.UpsertSeen(ctx, sighting)
	if err != nil {
		s.metrics.RecordWordWrite(ctx, signalSeen, "error")
		return nil, fmt.Errorf("wordbank.RecordSeen %q: %w", sighting.Word, err)
	}
	s.metrics.RecordWordWrite(ctx, signalSeen, "ok")
	return rec, nil
}

// RecordUsed records every word the learner produced in utterance. Each
// word is upserted on its own: a failure is logged and skipped, and the
// joined failures are returned next to the records that were written.
func (s *Service) RecordUsed(ctx context.Context, userID uuid.UUID, languageID, utterance string) ([]domain.WordKnowledge, error) {
	tokens := s.tokens(languageID, utterance)
	if len(tokens) == 0 {
		return nil, nil
	}

	records := make([]domain.WordKnowledge, 0, len(tokens))
	var errs []error

	for _, word := range tokens {
		rec, err := s.words.UpsertUsed(ctx, userID, languageID, word)
		if err != nil {
			s.metrics.RecordWordWrite(ctx, signalUsed, "error")
			s.log.WarnContext(ctx, "record used word failed",
				slog.String("word", word),
				slog.String("language_id", languageID),
				slog.String("error", err.Error()),
			)
			errs = append(errs, fmt.Errorf("%q: %w", word, err))
			continue
		}
		s.metrics.RecordWordWrite(ctx, signalUsed, "ok")
		records = append(records, *rec)
	}

	return records, errors.Join(errs...)
}

// Lookup returns the stored records of words, keyed by normalized word.
// Missing words are absent from the map.
func (s *Service) Lookup(ctx context.Context, userID uuid.UUID, languageID string, words []string) (map[string]domain.WordKnowledge, error) {
	keys := make([]string, 0, len(words))
	for _, w := range words {
		if k := domain.NormalizeWord(w); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return map[string]domain.WordKnowledge{}, nil
	}

	recs, err := s.words.GetByWords(ctx, userID, languageID, keys)
	if err != nil {
		return nil, fmt.Errorf("wordbank.Lookup: %w", err)
	}

	out := make(map[string]domain.WordKnowledge, len(recs))
	for _, r := range recs {
		out[r.Word] = r
	}
	return out, nil
}

func validateSighting(s domain.WordSighting) error {
	var errs []domain.FieldError

	if s.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "required"})
	}
	if s.LanguageID == "" {
		errs = append(errs, domain.FieldError{Field: "languageId", Message: "required"})
	}
	if s.Word == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

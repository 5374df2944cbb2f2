package wordbank

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// ListInput holds parameters for listing a learner's word bank.
type ListInput struct {
	UserID     uuid.UUID
	LanguageID string
	Status     *domain.WordStatus
	Limit      int
	Offset     int
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "required"})
	}
	if i.LanguageID == "" {
		errs = append(errs, domain.FieldError{Field: "languageId", Message: "required"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be passive or active"})
	}
	if i.Limit < 0 || i.Limit > maxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("must be between 0 and %d", maxListLimit)})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListResult is one page of a word bank.
type ListResult struct {
	Words []domain.WordKnowledge
	Total int
}

// List returns the learner's words, active first, then by usage and recency.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	words, total, err := s.words.List(ctx, input.UserID, input.LanguageID, domain.WordBankFilter{
		Status: input.Status,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("wordbank.List: %w", err)
	}

	return &ListResult{Words: words, Total: total}, nil
}

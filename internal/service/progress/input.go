package progress

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// UpdateInput holds parameters for a progress update.
type UpdateInput struct {
	UserID     uuid.UUID
	LanguageID string
	LessonID   int
	Status     domain.ProgressStatus
	Score      *int
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "required"})
	}
	if i.LanguageID == "" {
		errs = append(errs, domain.FieldError{Field: "languageId", Message: "required"})
	}
	if i.LessonID <= 0 {
		errs = append(errs, domain.FieldError{Field: "lessonId", Message: "must be positive"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "must be locked, current or completed"})
	}
	if i.Score != nil && (*i.Score < 0 || *i.Score > 100) {
		errs = append(errs, domain.FieldError{Field: "score", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

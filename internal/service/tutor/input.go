package tutor

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

const (
	maxHistoryEntries = 200
	maxMessageRunes   = 4000
)

// TurnInput holds parameters for a text conversation turn.
type TurnInput struct {
	History      []domain.ChatMessage
	LanguageID   string
	LessonID     int
	LearnerID    uuid.UUID
	SessionToken string
}

// Validate validates the turn input. A text turn needs at least one history
// entry: either the turn-start sentinel or the learner's latest message.
func (i TurnInput) Validate() error {
	errs := i.validateCommon()

	if len(i.History) == 0 {
		errs = append(errs, domain.FieldError{Field: "messages", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i TurnInput) validateCommon() []domain.FieldError {
	var errs []domain.FieldError

	if i.LanguageID == "" {
		errs = append(errs, domain.FieldError{Field: "languageId", Message: "required"})
	}
	if i.LessonID <= 0 {
		errs = append(errs, domain.FieldError{Field: "lessonId", Message: "must be positive"})
	}
	if i.LearnerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "userId", Message: "required"})
	}
	if i.SessionToken == "" {
		errs = append(errs, domain.FieldError{Field: "sessionToken", Message: "required"})
	}

	if len(i.History) > maxHistoryEntries {
		errs = append(errs, domain.FieldError{Field: "messages", Message: "too many messages"})
	}
	for idx, m := range i.History {
		field := fmt.Sprintf("messages[%d]", idx)
		if !m.Role.IsValid() {
			errs = append(errs, domain.FieldError{Field: field + ".role", Message: "invalid role"})
		}
		if domain.RuneLen(m.Text) > maxMessageRunes {
			errs = append(errs, domain.FieldError{Field: field + ".content", Message: "too long"})
		}
	}

	return errs
}

// VoiceTurnInput holds parameters for a spoken turn. History carries the
// conversation before the recording.
type VoiceTurnInput struct {
	TurnInput
	Audio domain.Audio
}

// Validate validates the voice turn input.
func (i VoiceTurnInput) Validate() error {
	errs := i.validateCommon()

	if i.Audio.Data == nil {
		errs = append(errs, domain.FieldError{Field: "audio", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

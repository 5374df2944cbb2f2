package domain

import (
	"time"

	"github.com/google/uuid"
)

// WordKnowledge is a learner's persistent record of one word in one language.
// The key (UserID, LanguageID, Word) is unique; Word is stored normalized.
type WordKnowledge struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	LanguageID  string
	Word        string
	Translation *string
	Romaji      *string
	Status      WordStatus
	TimesSeen   int
	TimesUsed   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Mastered reports whether the learner has produced the word themselves.
func (w WordKnowledge) Mastered() bool {
	return w.TimesUsed > 0
}

// WordSighting is a tutor emission of an admissible word.
type WordSighting struct {
	UserID      uuid.UUID
	LanguageID  string
	Word        string
	Translation string
	Romaji      *string
}

// WordBankFilter narrows a word bank listing.
type WordBankFilter struct {
	Status *WordStatus
	Limit  int
	Offset int
}

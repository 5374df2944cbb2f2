package domain

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgress is a learner's state for one lesson of a course.
type LessonProgress struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	LanguageID  string
	LessonID    int
	Status      ProgressStatus
	Score       *int
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Course is a learner's enrollment in a language.
type Course struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	LanguageID string
	Level      string
	EnrolledAt time.Time
	UpdatedAt  time.Time
}

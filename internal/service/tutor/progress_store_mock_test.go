package tutor

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ progressStore = &progressStoreMock{}

type progressStoreMock struct {
	UpsertCompletionFunc func(ctx context.Context, userID uuid.UUID, languageID string, lessonID int) error

	calls struct {
		UpsertCompletion []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
			LessonID   int
		}
	}
	lockUpsertCompletion sync.RWMutex
}

func (mock *progressStoreMock) UpsertCompletion(ctx context.Context, userID uuid.UUID, languageID string, lessonID int) error {
	if mock.UpsertCompletionFunc == nil {
		panic("progressStoreMock.UpsertCompletionFunc: method is nil but progressStore.UpsertCompletion was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		LessonID   int
	}{
		Ctx:        ctx,
		UserID:     userID,
		LanguageID: languageID,
		LessonID:   lessonID,
	}
	mock.lockUpsertCompletion.Lock()
	mock.calls.UpsertCompletion = append(mock.calls.UpsertCompletion, callInfo)
	mock.lockUpsertCompletion.Unlock()
	return mock.UpsertCompletionFunc(ctx, userID, languageID, lessonID)
}

func (mock *progressStoreMock) UpsertCompletionCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	LanguageID string
	LessonID   int
} {
	var calls []struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		LessonID   int
	}
	mock.lockUpsertCompletion.RLock()
	calls = mock.calls.UpsertCompletion
	mock.lockUpsertCompletion.RUnlock()
	return calls
}

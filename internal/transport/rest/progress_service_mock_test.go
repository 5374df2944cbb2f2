package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/progress"
	"sync"
)

var _ progressService = &progressServiceMock{}

type progressServiceMock struct {
	ListFunc   func(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error)
	UpdateFunc func(ctx context.Context, input progress.UpdateInput) (*domain.LessonProgress, error)

	calls struct {
		List []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
		}
		Update []struct {
			Ctx   context.Context
			Input progress.UpdateInput
		}
	}
	lockList   sync.RWMutex
	lockUpdate sync.RWMutex
}

func (mock *progressServiceMock) List(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error) {
	if mock.ListFunc == nil {
		panic("progressServiceMock.ListFunc: method is nil but progressService.List was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
	}{
		Ctx:        ctx,
		UserID:     userID,
		LanguageID: languageID,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, languageID)
}

func (mock *progressServiceMock) ListCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	LanguageID string
} {
	var calls []struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *progressServiceMock) Update(ctx context.Context, input progress.UpdateInput) (*domain.LessonProgress, error) {
	if mock.UpdateFunc == nil {
		panic("progressServiceMock.UpdateFunc: method is nil but progressService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input progress.UpdateInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *progressServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input progress.UpdateInput
} {
	var calls []struct {
		Ctx   context.Context
		Input progress.UpdateInput
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

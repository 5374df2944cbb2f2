package progress

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ progressRepo = &progressRepoMock{}

type progressRepoMock struct {
	ListFunc   func(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error)
	UpsertFunc func(ctx context.Context, p domain.LessonProgress) (*domain.LessonProgress, error)

	calls struct {
		List []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
		}
		Upsert []struct {
			Ctx context.Context
			P   domain.LessonProgress
		}
	}
	lockList   sync.RWMutex
	lockUpsert sync.RWMutex
}

func (mock *progressRepoMock) List(ctx context.Context, userID uuid.UUID, languageID string) ([]domain.LessonProgress, error) {
	if mock.ListFunc == nil {
		panic("progressRepoMock.ListFunc: method is nil but progressRepo.List was just called")
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

func (mock *progressRepoMock) ListCalls() []struct {
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

func (mock *progressRepoMock) Upsert(ctx context.Context, p domain.LessonProgress) (*domain.LessonProgress, error) {
	if mock.UpsertFunc == nil {
		panic("progressRepoMock.UpsertFunc: method is nil but progressRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   domain.LessonProgress
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *progressRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   domain.LessonProgress
} {
	var calls []struct {
		Ctx context.Context
		P   domain.LessonProgress
	}
	mock.lockUpsert.RLock()
	calls = mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

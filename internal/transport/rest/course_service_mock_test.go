package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/course"
	"sync"
)

var _ courseService = &courseServiceMock{}

type courseServiceMock struct {
	EnrollFunc func(ctx context.Context, input course.EnrollInput) (*domain.Course, error)
	ListFunc   func(ctx context.Context, userID uuid.UUID) ([]domain.Course, error)

	calls struct {
		Enroll []struct {
			Ctx   context.Context
			Input course.EnrollInput
		}
		List []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockEnroll sync.RWMutex
	lockList   sync.RWMutex
}

func (mock *courseServiceMock) Enroll(ctx context.Context, input course.EnrollInput) (*domain.Course, error) {
	if mock.EnrollFunc == nil {
		panic("courseServiceMock.EnrollFunc: method is nil but courseService.Enroll was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input course.EnrollInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockEnroll.Lock()
	mock.calls.Enroll = append(mock.calls.Enroll, callInfo)
	mock.lockEnroll.Unlock()
	return mock.EnrollFunc(ctx, input)
}

func (mock *courseServiceMock) EnrollCalls() []struct {
	Ctx   context.Context
	Input course.EnrollInput
} {
	var calls []struct {
		Ctx   context.Context
		Input course.EnrollInput
	}
	mock.lockEnroll.RLock()
	calls = mock.calls.Enroll
	mock.lockEnroll.RUnlock()
	return calls
}

func (mock *courseServiceMock) List(ctx context.Context, userID uuid.UUID) ([]domain.Course, error) {
	if mock.ListFunc == nil {
		panic("courseServiceMock.ListFunc: method is nil but courseService.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID)
}

func (mock *courseServiceMock) ListCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

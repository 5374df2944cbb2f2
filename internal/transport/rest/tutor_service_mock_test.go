package rest

import (
	"context"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/tutor"
	"sync"
)

var _ tutorService = &tutorServiceMock{}

type tutorServiceMock struct {
	TurnFunc      func(ctx context.Context, input tutor.TurnInput) (*domain.TurnOutcome, error)
	VoiceTurnFunc func(ctx context.Context, input tutor.VoiceTurnInput) (*domain.TurnOutcome, error)

	calls struct {
		Turn []struct {
			Ctx   context.Context
			Input tutor.TurnInput
		}
		VoiceTurn []struct {
			Ctx   context.Context
			Input tutor.VoiceTurnInput
		}
	}
	lockTurn      sync.RWMutex
	lockVoiceTurn sync.RWMutex
}

func (mock *tutorServiceMock) Turn(ctx context.Context, input tutor.TurnInput) (*domain.TurnOutcome, error) {
	if mock.TurnFunc == nil {
		panic("tutorServiceMock.TurnFunc: method is nil but tutorService.Turn was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tutor.TurnInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockTurn.Lock()
	mock.calls.Turn = append(mock.calls.Turn, callInfo)
	mock.lockTurn.Unlock()
	return mock.TurnFunc(ctx, input)
}

func (mock *tutorServiceMock) TurnCalls() []struct {
	Ctx   context.Context
	Input tutor.TurnInput
} {
	var calls []struct {
		Ctx   context.Context
		Input tutor.TurnInput
	}
	mock.lockTurn.RLock()
	calls = mock.calls.Turn
	mock.lockTurn.RUnlock()
	return calls
}

func (mock *tutorServiceMock) VoiceTurn(ctx context.Context, input tutor.VoiceTurnInput) (*domain.TurnOutcome, error) {
	if mock.VoiceTurnFunc == nil {
		panic("tutorServiceMock.VoiceTurnFunc: method is nil but tutorService.VoiceTurn was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input tutor.VoiceTurnInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockVoiceTurn.Lock()
	mock.calls.VoiceTurn = append(mock.calls.VoiceTurn, callInfo)
	mock.lockVoiceTurn.Unlock()
	return mock.VoiceTurnFunc(ctx, input)
}

func (mock *tutorServiceMock) VoiceTurnCalls() []struct {
	Ctx   context.Context
	Input tutor.VoiceTurnInput
} {
	var calls []struct {
		Ctx   context.Context
		Input tutor.VoiceTurnInput
	}
	mock.lockVoiceTurn.RLock()
	calls = mock.calls.VoiceTurn
	mock.lockVoiceTurn.RUnlock()
	return calls
}

package tutor

import (
	"context"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ sessionResolver = &sessionResolverMock{}

type sessionResolverMock struct {
	ResolveSessionFunc func(ctx context.Context, token string) (*domain.Session, error)

	calls struct {
		ResolveSession []struct {
			Ctx   context.Context
			Token string
		}
	}
	lockResolveSession sync.RWMutex
}

func (mock *sessionResolverMock) ResolveSession(ctx context.Context, token string) (*domain.Session, error) {
	if mock.ResolveSessionFunc == nil {
		panic("sessionResolverMock.ResolveSessionFunc: method is nil but sessionResolver.ResolveSession was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{
		Ctx:   ctx,
		Token: token,
	}
	mock.lockResolveSession.Lock()
	mock.calls.ResolveSession = append(mock.calls.ResolveSession, callInfo)
	mock.lockResolveSession.Unlock()
	return mock.ResolveSessionFunc(ctx, token)
}

func (mock *sessionResolverMock) ResolveSessionCalls() []struct {
	Ctx   context.Context
	Token string
} {
	var calls []struct {
		Ctx   context.Context
		Token string
	}
	mock.lockResolveSession.RLock()
	calls = mock.calls.ResolveSession
	mock.lockResolveSession.RUnlock()
	return calls
}

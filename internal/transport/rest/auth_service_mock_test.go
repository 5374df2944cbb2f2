package rest

import (
	"context"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/auth"
	"sync"
)

var _ authService = &authServiceMock{}

type authServiceMock struct {
	LoginFunc   func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	LogoutFunc  func(ctx context.Context, token string) error
	SessionFunc func(ctx context.Context, token string) (*domain.User, *domain.Session, error)
	SignupFunc  func(ctx context.Context, input auth.SignupInput) (*auth.AuthResult, error)

	calls struct {
		Login []struct {
			Ctx   context.Context
			Input auth.LoginInput
		}
		Logout []struct {
			Ctx   context.Context
			Token string
		}
		Session []struct {
			Ctx   context.Context
			Token string
		}
		Signup []struct {
			Ctx   context.Context
			Input auth.SignupInput
		}
	}
	lockLogin   sync.RWMutex
	lockLogout  sync.RWMutex
	lockSession sync.RWMutex
	lockSignup  sync.RWMutex
}

func (mock *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	if mock.LoginFunc == nil {
		panic("authServiceMock.LoginFunc: method is nil but authService.Login was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.LoginInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockLogin.Lock()
	mock.calls.Login = append(mock.calls.Login, callInfo)
	mock.lockLogin.Unlock()
	return mock.LoginFunc(ctx, input)
}

func (mock *authServiceMock) LoginCalls() []struct {
	Ctx   context.Context
	Input auth.LoginInput
} {
	var calls []struct {
		Ctx   context.Context
		Input auth.LoginInput
	}
	mock.lockLogin.RLock()
	calls = mock.calls.Login
	mock.lockLogin.RUnlock()
	return calls
}

func (mock *authServiceMock) Logout(ctx context.Context, token string) error {
	if mock.LogoutFunc == nil {
		panic("authServiceMock.LogoutFunc: method is nil but authService.Logout was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{
		Ctx:   ctx,
		Token: token,
	}
	mock.lockLogout.Lock()
	mock.calls.Logout = append(mock.calls.Logout, callInfo)
	mock.lockLogout.Unlock()
	return mock.LogoutFunc(ctx, token)
}

func (mock *authServiceMock) LogoutCalls() []struct {
	Ctx   context.Context
	Token string
} {
	var calls []struct {
		Ctx   context.Context
		Token string
	}
	mock.lockLogout.RLock()
	calls = mock.calls.Logout
	mock.lockLogout.RUnlock()
	return calls
}

func (mock *authServiceMock) Session(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	if mock.SessionFunc == nil {
		panic("authServiceMock.SessionFunc: method is nil but authService.Session was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Token string
	}{
		Ctx:   ctx,
		Token: token,
	}
	mock.lockSession.Lock()
	mock.calls.Session = append(mock.calls.Session, callInfo)
	mock.lockSession.Unlock()
	return mock.SessionFunc(ctx, token)
}

func (mock *authServiceMock) SessionCalls() []struct {
	Ctx   context.Context
	Token string
} {
	var calls []struct {
		Ctx   context.Context
		Token string
	}
	mock.lockSession.RLock()
	calls = mock.calls.Session
	mock.lockSession.RUnlock()
	return calls
}

func (mock *authServiceMock) Signup(ctx context.Context, input auth.SignupInput) (*auth.AuthResult, error) {
	if mock.SignupFunc == nil {
		panic("authServiceMock.SignupFunc: method is nil but authService.Signup was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input auth.SignupInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockSignup.Lock()
	mock.calls.Signup = append(mock.calls.Signup, callInfo)
	mock.lockSignup.Unlock()
	return mock.SignupFunc(ctx, input)
}

func (mock *authServiceMock) SignupCalls() []struct {
	Ctx   context.Context
	Input auth.SignupInput
} {
	var calls []struct {
		Ctx   context.Context
		Input auth.SignupInput
	}
	mock.lockSignup.RLock()
	calls = mock.calls.Signup
	mock.lockSignup.RUnlock()
	return calls
}

package auth

import (
	"github.com/google/uuid"
	"github.com/heartmarshall/lingua-tutor-backend/internal/auth"
	"sync"
	"time"
)

var _ tokenManager = &tokenManagerMock{}

type tokenManagerMock struct {
	GenerateSessionTokenFunc func(sessionID uuid.UUID, userID uuid.UUID, expiresAt time.Time) (string, error)
	ValidateSessionTokenFunc func(token string) (auth.SessionClaims, error)

	calls struct {
		GenerateSessionToken []struct {
			SessionID uuid.UUID
			UserID    uuid.UUID
			ExpiresAt time.Time
		}
		ValidateSessionToken []struct {
			Token string
		}
	}
	lockGenerateSessionToken sync.RWMutex
	lockValidateSessionToken sync.RWMutex
}

func (mock *tokenManagerMock) GenerateSessionToken(sessionID uuid.UUID, userID uuid.UUID, expiresAt time.Time) (string, error) {
	if mock.GenerateSessionTokenFunc == nil {
		panic("tokenManagerMock.GenerateSessionTokenFunc: method is nil but tokenManager.GenerateSessionToken was just called")
	}
	callInfo := struct {
		SessionID uuid.UUID
		UserID    uuid.UUID
		ExpiresAt time.Time
	}{
		SessionID: sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	mock.lockGenerateSessionToken.Lock()
	mock.calls.GenerateSessionToken = append(mock.calls.GenerateSessionToken, callInfo)
	mock.lockGenerateSessionToken.Unlock()
	return mock.GenerateSessionTokenFunc(sessionID, userID, expiresAt)
}

func (mock *tokenManagerMock) GenerateSessionTokenCalls() []struct {
	SessionID uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
} {
	var calls []struct {
		SessionID uuid.UUID
		UserID    uuid.UUID
		ExpiresAt time.Time
	}
	mock.lockGenerateSessionToken.RLock()
	calls = mock.calls.GenerateSessionToken
	mock.lockGenerateSessionToken.RUnlock()
	return calls
}

func (mock *tokenManagerMock) ValidateSessionToken(token string) (auth.SessionClaims, error) {
	if mock.ValidateSessionTokenFunc == nil {
		panic("tokenManagerMock.ValidateSessionTokenFunc: method is nil but tokenManager.ValidateSessionToken was just called")
	}
	callInfo := struct {
		Token string
	}{
		Token: token,
	}
	mock.lockValidateSessionToken.Lock()
	mock.calls.ValidateSessionToken = append(mock.calls.ValidateSessionToken, callInfo)
	mock.lockValidateSessionToken.Unlock()
	return mock.ValidateSessionTokenFunc(token)
}

func (mock *tokenManagerMock) ValidateSessionTokenCalls() []struct {
	Token string
} {
	var calls []struct {
		Token string
	}
	mock.lockValidateSessionToken.RLock()
	calls = mock.calls.ValidateSessionToken
	mock.lockValidateSessionToken.RUnlock()
	return calls
}

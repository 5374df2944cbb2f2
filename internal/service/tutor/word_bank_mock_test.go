package tutor

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ wordBank = &wordBankMock{}

type wordBankMock struct {
	LookupFunc     func(ctx context.Context, userID uuid.UUID, languageID string, words []string) (map[string]domain.WordKnowledge, error)
	RecordSeenFunc func(ctx context.Context, s domain.WordSighting) (*domain.WordKnowledge, error)
	RecordUsedFunc func(ctx context.Context, userID uuid.UUID, languageID string, utterance string) ([]domain.WordKnowledge, error)

	calls struct {
		Lookup []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
			Words      []string
		}
		RecordSeen []struct {
			Ctx context.Context
			S   domain.WordSighting
		}
		RecordUsed []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
			Utterance  string
		}
	}
	lockLookup     sync.RWMutex
	lockRecordSeen sync.RWMutex
	lockRecordUsed sync.RWMutex
}

func (mock *wordBankMock) Lookup(ctx context.Context, userID uuid.UUID, languageID string, words []string) (map[string]domain.WordKnowledge, error) {
	if mock.LookupFunc == nil {
		panic("wordBankMock.LookupFunc: method is nil but wordBank.Lookup was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Words      []string
	}{
		Ctx:        ctx,
		UserID:     userID,
		LanguageID: languageID,
		Words:      words,
	}
	mock.lockLookup.Lock()
	mock.calls.Lookup = append(mock.calls.Lookup, callInfo)
	mock.lockLookup.Unlock()
	return mock.LookupFunc(ctx, userID, languageID, words)
}

func (mock *wordBankMock) LookupCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	LanguageID string
	Words      []string
} {
	var calls []struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Words      []string
	}
	mock.lockLookup.RLock()
	calls = mock.calls.Lookup
	mock.lockLookup.RUnlock()
	return calls
}

func (mock *wordBankMock) RecordSeen(ctx context.Context, s domain.WordSighting) (*domain.WordKnowledge, error) {
	if mock.RecordSeenFunc == nil {
		panic("wordBankMock.RecordSeenFunc: method is nil but wordBank.RecordSeen was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.WordSighting
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockRecordSeen.Lock()
	mock.calls.RecordSeen = append(mock.calls.RecordSeen, callInfo)
	mock.lockRecordSeen.Unlock()
	return mock.RecordSeenFunc(ctx, s)
}

func (mock *wordBankMock) RecordSeenCalls() []struct {
	Ctx context.Context
	S   domain.WordSighting
} {
	var calls []struct {
		Ctx context.Context
		S   domain.WordSighting
	}
	mock.lockRecordSeen.RLock()
	calls = mock.calls.RecordSeen
	mock.lockRecordSeen.RUnlock()
	return calls
}

func (mock *wordBankMock) RecordUsed(ctx context.Context, userID uuid.UUID, languageID string, utterance string) ([]domain.WordKnowledge, error) {
	if mock.RecordUsedFunc == nil {
		panic("wordBankMock.RecordUsedFunc: method is nil but wordBank.RecordUsed was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Utterance  string
	}{
		Ctx:        ctx,
		UserID:     userID,
		LanguageID: languageID,
		Utterance:  utterance,
	}
	mock.lockRecordUsed.Lock()
	mock.calls.RecordUsed = append(mock.calls.RecordUsed, callInfo)
	mock.lockRecordUsed.Unlock()
	return mock.RecordUsedFunc(ctx, userID, languageID, utterance)
}

func (mock *wordBankMock) RecordUsedCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	LanguageID string
	Utterance  string
} {
	var calls []struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Utterance  string
	}
	mock.lockRecordUsed.RLock()
	calls = mock.calls.RecordUsed
	mock.lockRecordUsed.RUnlock()
	return calls
}

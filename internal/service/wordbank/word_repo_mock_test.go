package wordbank

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ wordRepo = &wordRepoMock{}

type wordRepoMock struct {
	GetByWordsFunc func(ctx context.Context, userID uuid.UUID, languageID string, words []string) ([]domain.WordKnowledge, error)
	ListFunc       func(ctx context.Context, userID uuid.UUID, languageID string, filter domain.WordBankFilter) ([]domain.WordKnowledge, int, error)
	UpsertSeenFunc func(ctx context.Context, s domain.WordSighting) (*domain.WordKnowledge, error)
	UpsertUsedFunc func(ctx context.Context, userID uuid.UUID, languageID string, word string) (*domain.WordKnowledge, error)

	calls struct {
		GetByWords []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
			Words      []string
		}
		List []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
			Filter     domain.WordBankFilter
		}
		UpsertSeen []struct {
			Ctx context.Context
			S   domain.WordSighting
		}
		UpsertUsed []struct {
			Ctx        context.Context
			UserID     uuid.UUID
			LanguageID string
			Word       string
		}
	}
	lockGetByWords sync.RWMutex
	lockList       sync.RWMutex
	lockUpsertSeen sync.RWMutex
	lockUpsertUsed sync.RWMutex
}

func (mock *wordRepoMock) GetByWords(ctx context.Context, userID uuid.UUID, languageID string, words []string) ([]domain.WordKnowledge, error) {
	if mock.GetByWordsFunc == nil {
		panic("wordRepoMock.GetByWordsFunc: method is nil but wordRepo.GetByWords was just called")
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
	mock.lockGetByWords.Lock()
	mock.calls.GetByWords = append(mock.calls.GetByWords, callInfo)
	mock.lockGetByWords.Unlock()
	return mock.GetByWordsFunc(ctx, userID, languageID, words)
}

func (mock *wordRepoMock) GetByWordsCalls() []struct {
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
	mock.lockGetByWords.RLock()
	calls = mock.calls.GetByWords
	mock.lockGetByWords.RUnlock()
	return calls
}

func (mock *wordRepoMock) List(ctx context.Context, userID uuid.UUID, languageID string, filter domain.WordBankFilter) ([]domain.WordKnowledge, int, error) {
	if mock.ListFunc == nil {
		panic("wordRepoMock.ListFunc: method is nil but wordRepo.List was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Filter     domain.WordBankFilter
	}{
		Ctx:        ctx,
		UserID:     userID,
		LanguageID: languageID,
		Filter:     filter,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, userID, languageID, filter)
}

func (mock *wordRepoMock) ListCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	LanguageID string
	Filter     domain.WordBankFilter
} {
	var calls []struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Filter     domain.WordBankFilter
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *wordRepoMock) UpsertSeen(ctx context.Context, s domain.WordSighting) (*domain.WordKnowledge, error) {
	if mock.UpsertSeenFunc == nil {
		panic("wordRepoMock.UpsertSeenFunc: method is nil but wordRepo.UpsertSeen was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   domain.WordSighting
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockUpsertSeen.Lock()
	mock.calls.UpsertSeen = append(mock.calls.UpsertSeen, callInfo)
	mock.lockUpsertSeen.Unlock()
	return mock.UpsertSeenFunc(ctx, s)
}

func (mock *wordRepoMock) UpsertSeenCalls() []struct {
	Ctx context.Context
	S   domain.WordSighting
} {
	var calls []struct {
		Ctx context.Context
		S   domain.WordSighting
	}
	mock.lockUpsertSeen.RLock()
	calls = mock.calls.UpsertSeen
	mock.lockUpsertSeen.RUnlock()
	return calls
}

func (mock *wordRepoMock) UpsertUsed(ctx context.Context, userID uuid.UUID, languageID string, word string) (*domain.WordKnowledge, error) {
	if mock.UpsertUsedFunc == nil {
		panic("wordRepoMock.UpsertUsedFunc: method is nil but wordRepo.UpsertUsed was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Word       string
	}{
		Ctx:        ctx,
		UserID:     userID,
		LanguageID: languageID,
		Word:       word,
	}
	mock.lockUpsertUsed.Lock()
	mock.calls.UpsertUsed = append(mock.calls.UpsertUsed, callInfo)
	mock.lockUpsertUsed.Unlock()
	return mock.UpsertUsedFunc(ctx, userID, languageID, word)
}

func (mock *wordRepoMock) UpsertUsedCalls() []struct {
	Ctx        context.Context
	UserID     uuid.UUID
	LanguageID string
	Word       string
} {
	var calls []struct {
		Ctx        context.Context
		UserID     uuid.UUID
		LanguageID string
		Word       string
	}
	mock.lockUpsertUsed.RLock()
	calls = mock.calls.UpsertUsed
	mock.lockUpsertUsed.RUnlock()
	return calls
}

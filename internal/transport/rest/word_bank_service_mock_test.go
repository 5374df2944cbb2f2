package rest

import (
	"context"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/wordbank"
	"sync"
)

var _ wordBankService = &wordBankServiceMock{}

type wordBankServiceMock struct {
	ListFunc func(ctx context.Context, input wordbank.ListInput) (*wordbank.ListResult, error)

	calls struct {
		List []struct {
			Ctx   context.Context
			Input wordbank.ListInput
		}
	}
	lockList sync.RWMutex
}

func (mock *wordBankServiceMock) List(ctx context.Context, input wordbank.ListInput) (*wordbank.ListResult, error) {
	if mock.ListFunc == nil {
		panic("wordBankServiceMock.ListFunc: method is nil but wordBankService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input wordbank.ListInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, input)
}

func (mock *wordBankServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Input wordbank.ListInput
} {
	var calls []struct {
		Ctx   context.Context
		Input wordbank.ListInput
	}
	mock.lockList.RLock()
	calls = mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

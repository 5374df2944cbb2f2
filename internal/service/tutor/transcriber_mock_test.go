package tutor

import (
	"context"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ transcriber = &transcriberMock{}

type transcriberMock struct {
	TranscribeFunc func(ctx context.Context, audio domain.Audio, language string) (string, error)

	calls struct {
		Transcribe []struct {
			Ctx      context.Context
			Audio    domain.Audio
			Language string
		}
	}
	lockTranscribe sync.RWMutex
}

func (mock *transcriberMock) Transcribe(ctx context.Context, audio domain.Audio, language string) (string, error) {
	if mock.TranscribeFunc == nil {
		panic("transcriberMock.TranscribeFunc: method is nil but transcriber.Transcribe was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Audio    domain.Audio
		Language string
	}{
		Ctx:      ctx,
		Audio:    audio,
		Language: language,
	}
	mock.lockTranscribe.Lock()
	mock.calls.Transcribe = append(mock.calls.Transcribe, callInfo)
	mock.lockTranscribe.Unlock()
	return mock.TranscribeFunc(ctx, audio, language)
}

func (mock *transcriberMock) TranscribeCalls() []struct {
	Ctx      context.Context
	Audio    domain.Audio
	Language string
} {
	var calls []struct {
		Ctx      context.Context
		Audio    domain.Audio
		Language string
	}
	mock.lockTranscribe.RLock()
	calls = mock.calls.Transcribe
	mock.lockTranscribe.RUnlock()
	return calls
}

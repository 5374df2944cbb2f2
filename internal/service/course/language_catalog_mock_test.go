package course

import (
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ languageCatalog = &languageCatalogMock{}

type languageCatalogMock struct {
	LessonsFunc func(languageID string, level string) ([]domain.Lesson, error)

	calls struct {
		Lessons []struct {
			LanguageID string
			Level      string
		}
	}
	lockLessons sync.RWMutex
}

func (mock *languageCatalogMock) Lessons(languageID string, level string) ([]domain.Lesson, error) {
	if mock.LessonsFunc == nil {
		panic("languageCatalogMock.LessonsFunc: method is nil but languageCatalog.Lessons was just called")
	}
	callInfo := struct {
		LanguageID string
		Level      string
	}{
		LanguageID: languageID,
		Level:      level,
	}
	mock.lockLessons.Lock()
	mock.calls.Lessons = append(mock.calls.Lessons, callInfo)
	mock.lockLessons.Unlock()
	return mock.LessonsFunc(languageID, level)
}

func (mock *languageCatalogMock) LessonsCalls() []struct {
	LanguageID string
	Level      string
} {
	var calls []struct {
		LanguageID string
		Level      string
	}
	mock.lockLessons.RLock()
	calls = mock.calls.Lessons
	mock.lockLessons.RUnlock()
	return calls
}

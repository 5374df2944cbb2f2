package rest

import (
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ lessonCatalog = &lessonCatalogMock{}

type lessonCatalogMock struct {
	LanguagesFunc func() []domain.Language
	LessonsFunc   func(languageID string, level string) ([]domain.Lesson, error)

	calls struct {
		Languages []struct{}
		Lessons   []struct {
			LanguageID string
			Level      string
		}
	}
	lockLanguages sync.RWMutex
	lockLessons   sync.RWMutex
}

func (mock *lessonCatalogMock) Languages() []domain.Language {
	if mock.LanguagesFunc == nil {
		panic("lessonCatalogMock.LanguagesFunc: method is nil but lessonCatalog.Languages was just called")
	}
	mock.lockLanguages.Lock()
	mock.calls.Languages = append(mock.calls.Languages, struct{}{})
	mock.lockLanguages.Unlock()
	return mock.LanguagesFunc()
}

func (mock *lessonCatalogMock) LanguagesCalls() []struct{} {
	var calls []struct{}
	mock.lockLanguages.RLock()
	calls = mock.calls.Languages
	mock.lockLanguages.RUnlock()
	return calls
}

func (mock *lessonCatalogMock) Lessons(languageID string, level string) ([]domain.Lesson, error) {
	if mock.LessonsFunc == nil {
		panic("lessonCatalogMock.LessonsFunc: method is nil but lessonCatalog.Lessons was just called")
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

func (mock *lessonCatalogMock) LessonsCalls() []struct {
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

package tutor

import (
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"sync"
)

var _ lessonCatalog = &lessonCatalogMock{}

type lessonCatalogMock struct {
	GetLessonFunc func(languageID string, level string, lessonID int) (domain.Lesson, error)
	LanguageFunc  func(id string) (domain.Language, error)

	calls struct {
		GetLesson []struct {
			LanguageID string
			Level      string
			LessonID   int
		}
		Language []struct {
			Id string
		}
	}
	lockGetLesson sync.RWMutex
	lockLanguage  sync.RWMutex
}

func (mock *lessonCatalogMock) GetLesson(languageID string, level string, lessonID int) (domain.Lesson, error) {
	if mock.GetLessonFunc == nil {
		panic("lessonCatalogMock.GetLessonFunc: method is nil but lessonCatalog.GetLesson was just called")
	}
	callInfo := struct {
		LanguageID string
		Level      string
		LessonID   int
	}{
		LanguageID: languageID,
		Level:      level,
		LessonID:   lessonID,
	}
	mock.lockGetLesson.Lock()
	mock.calls.GetLesson = append(mock.calls.GetLesson, callInfo)
	mock.lockGetLesson.Unlock()
	return mock.GetLessonFunc(languageID, level, lessonID)
}

func (mock *lessonCatalogMock) GetLessonCalls() []struct {
	LanguageID string
	Level      string
	LessonID   int
} {
	var calls []struct {
		LanguageID string
		Level      string
		LessonID   int
	}
	mock.lockGetLesson.RLock()
	calls = mock.calls.GetLesson
	mock.lockGetLesson.RUnlock()
	return calls
}

func (mock *lessonCatalogMock) Language(id string) (domain.Language, error) {
	if mock.LanguageFunc == nil {
		panic("lessonCatalogMock.LanguageFunc: method is nil but lessonCatalog.Language was just called")
	}
	callInfo := struct {
		Id string
	}{
		Id: id,
	}
	mock.lockLanguage.Lock()
	mock.calls.Language = append(mock.calls.Language, callInfo)
	mock.lockLanguage.Unlock()
	return mock.LanguageFunc(id)
}

func (mock *lessonCatalogMock) LanguageCalls() []struct {
	Id string
} {
	var calls []struct {
		Id string
	}
	mock.lockLanguage.RLock()
	calls = mock.calls.Language
	mock.lockLanguage.RUnlock()
	return calls
}

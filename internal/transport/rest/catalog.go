package rest

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

type lessonCatalog interface {
	Languages() []domain.Language
	Lessons(languageID, level string) ([]domain.Lesson, error)
}

// CatalogHandler serves the static language and lesson catalog.
type CatalogHandler struct {
	catalog lessonCatalog
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalog lessonCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

type languageResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NativeName  string `json:"nativeName"`
	Flag        string `json:"flag"`
	CountryCode string `json:"countryCode"`
	Locale      string `json:"locale"`
}

type lessonResponse struct {
	ID       int    `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Topic    string `json:"topic"`
	Scenario string `json:"scenario"`
	Goal     string `json:"goal,omitempty"`
}

// Languages handles GET /api/languages.
func (h *CatalogHandler) Languages(w http.ResponseWriter, r *http.Request) {
	langs := h.catalog.Languages()
	out := make([]languageResponse, 0, len(langs))
	for _, l := range langs {
		out = append(out, languageResponse{
			ID:          l.ID,
			Name:        l.Name,
			NativeName:  l.NativeName,
			Flag:        l.Flag,
			CountryCode: l.CountryCode,
			Locale:      l.Locale,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"languages": out})
}

// Lessons handles GET /api/languages/{languageId}/lessons?level=.
func (h *CatalogHandler) Lessons(w http.ResponseWriter, r *http.Request) {
	level := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("level")))
	if level == "" {
		level = domain.LevelBeginner
	}

	lessons, err := h.catalog.Lessons(r.PathValue("languageId"), level)
	if err != nil {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	out := make([]lessonResponse, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, lessonResponse{
			ID:       l.ID,
			Type:     l.Type.String(),
			Title:    l.Title,
			Topic:    l.Topic,
			Scenario: l.Scenario,
			Goal:     l.Goal,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"lessons": out})
}

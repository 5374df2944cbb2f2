// Package catalog serves the languages and lessons offered by the tutor. The
// catalog is static YAML, embedded at build time and optionally replaced by a
// file at startup.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

//go:embed catalog.yaml
var embedded []byte

type fileLanguage struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	NativeName  string `yaml:"native_name"`
	Locale      string `yaml:"locale"`
	Flag        string `yaml:"flag"`
	CountryCode string `yaml:"country_code"`
	Romanized   bool   `yaml:"romanized"`
}

type fileLesson struct {
	ID       int    `yaml:"id"`
	Type     string `yaml:"type"`
	Topic    string `yaml:"topic"`
	Title    string `yaml:"title"`
	Scenario string `yaml:"scenario"`
}

type file struct {
	FallbackGoal string                  `yaml:"fallback_goal"`
	Languages    []fileLanguage          `yaml:"languages"`
	Goals        map[string]string       `yaml:"goals"`
	Levels       map[string][]fileLesson `yaml:"levels"`
}

// Catalog is an immutable, concurrency-safe lesson catalog.
type Catalog struct {
	languages []domain.Language
	byID      map[string]domain.Language
	levels    map[string][]domain.Lesson
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		byID:   make(map[string]domain.Language, len(f.Languages)),
		levels: make(map[string][]domain.Lesson, len(f.Levels)),
	}

	for _, l := range f.Languages {
		if l.ID == "" || l.Name == "" {
			return nil, fmt.Errorf("catalog: language needs id and name")
		}
		if _, dup := c.byID[l.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate language %q", l.ID)
		}
		lang := domain.Language{
			ID:          l.ID,
			Name:        l.Name,
			NativeName:  l.NativeName,
			Locale:      l.Locale,
			Flag:        l.Flag,
			CountryCode: l.CountryCode,
			Romanized:   l.Romanized,
		}
		c.byID[l.ID] = lang
		c.languages = append(c.languages, lang)
	}

	for level, lessons := range f.Levels {
		seen := make(map[int]struct{}, len(lessons))
		out := make([]domain.Lesson, 0, len(lessons))
		for _, l := range lessons {
			if l.ID <= 0 {
				return nil, fmt.Errorf("catalog: %s: lesson id must be positive", level)
			}
			if _, dup := seen[l.ID]; dup {
				return nil, fmt.Errorf("catalog: %s: duplicate lesson %d", level, l.ID)
			}
			seen[l.ID] = struct{}{}

			typ := domain.LessonType(l.Type)
			if !typ.IsValid() {
				return nil, fmt.Errorf("catalog: %s: lesson %d: invalid type %q", level, l.ID, l.Type)
			}

			goal, ok := f.Goals[l.Topic]
			if !ok {
				goal = f.FallbackGoal
			}
			out = append(out, domain.Lesson{
				ID:       l.ID,
				Type:     typ,
				Title:    l.Title,
				Topic:    l.Topic,
				Scenario: l.Scenario,
				Goal:     goal,
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		c.levels[level] = out
	}

	return c, nil
}

// Languages returns all languages in catalog order.
func (c *Catalog) Languages() []domain.Language {
	out := make([]domain.Language, len(c.languages))
	copy(out, c.languages)
	return out
}

// Language returns the language with id.
func (c *Catalog) Language(id string) (domain.Language, error) {
	l, ok := c.byID[id]
	if !ok {
		return domain.Language{}, domain.ErrNotFound
	}
	return l, nil
}

// Lessons returns the lessons of a level. Every language shares the same
// progression.
func (c *Catalog) Lessons(languageID, level string) ([]domain.Lesson, error) {
	if _, err := c.Language(languageID); err != nil {
		return nil, err
	}
	lessons, ok := c.levels[level]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.Lesson, len(lessons))
	copy(out, lessons)
	return out, nil
}

// GetLesson returns one lesson with its goal resolved.
func (c *Catalog) GetLesson(languageID, level string, lessonID int) (domain.Lesson, error) {
	lessons, err := c.Lessons(languageID, level)
	if err != nil {
		return domain.Lesson{}, err
	}
	for _, l := range lessons {
		if l.ID == lessonID {
			return l, nil
		}
	}
	return domain.Lesson{}, domain.ErrNotFound
}

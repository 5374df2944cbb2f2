package tutor

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

//go:embed prompt.tmpl
var defaultPrompt string

// promptData is the template context of the tutoring instruction.
type promptData struct {
	Language   string
	NativeName string
	Scenario   string
	Goal       string
	Romanized  bool
	Opening    bool
	Voice      bool
}

// PromptBuilder renders the instruction sent ahead of the conversation history.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the template at path, or the built-in one when
// path is empty.
func NewPromptBuilder(path string) (*PromptBuilder, error) {
	text := defaultPrompt
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prompt template: %w", err)
		}
		text = string(b)
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &PromptBuilder{tmpl: tmpl}, nil
}

// Build renders the instruction for one turn.
func (b *PromptBuilder) Build(lang domain.Language, lesson domain.Lesson, opening, voice bool) (string, error) {
	name := lang.Name
	if name == "" {
		name = "the target language"
	}
	native := lang.NativeName
	if native == "" {
		native = name
	}

	var sb strings.Builder
	err := b.tmpl.Execute(&sb, promptData{
		Language:   name,
		NativeName: native,
		Scenario:   lesson.Prompt(),
		Goal:       lesson.Goal,
		Romanized:  lang.Romanized,
		Opening:    opening,
		Voice:      voice,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}

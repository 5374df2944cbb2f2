package tutor

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// ParseStage reports which step of the fallback chain produced a response.
type ParseStage string

const (
	// ParseStrict: the cleaned completion was valid JSON.
	ParseStrict ParseStage = "strict"
	// ParseExtracted: JSON was recovered from the outermost {...} span.
	ParseExtracted ParseStage = "extracted"
	// ParseDegraded: no JSON could be recovered; the text became the reply.
	ParseDegraded ParseStage = "degraded"
)

func (s ParseStage) String() string { return string(s) }

var codeFence = regexp.MustCompile("```(?:json)?\\s*")

var quoteNormalizer = strings.NewReplacer(
	`"""`, `"`,
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
)

// Parse turns a raw model completion into a TutoringResponse. It never
// fails: text that cannot be decoded becomes a reply without vocabulary.
func Parse(raw string) (domain.TutoringResponse, ParseStage) {
	cleaned := codeFence.ReplaceAllString(strings.TrimSpace(raw), "")

	if w, ok := decodeLenient(cleaned); ok {
		return w.toDomain(), ParseStrict
	}

	if start, end, ok := objectSpan(raw); ok {
		if w, ok := decodeLenient(raw[start : end+1]); ok {
			return w.toDomain(), ParseExtracted
		}
	}

	return degraded(raw), ParseDegraded
}

// objectSpan locates the leftmost '{' and the rightmost '}' after it.
func objectSpan(s string) (start, end int, ok bool) {
	start = strings.IndexByte(s, '{')
	if start < 0 {
		return 0, 0, false
	}
	end = strings.LastIndexByte(s, '}')
	if end < start {
		return 0, 0, false
	}
	return start, end, true
}

func degraded(raw string) domain.TutoringResponse {
	text := raw
	if start, end, ok := objectSpan(raw); ok {
		text = raw[:start] + raw[end+1:]
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = raw
	}
	if strings.TrimSpace(text) == "" {
		text = domain.FallbackConversationMessage
	}
	return domain.TutoringResponse{
		ConversationMessage: text,
		Corrections:         []domain.Correction{},
		NewWords:            []domain.VocabularyCandidate{},
	}
}

// decodeLenient decodes s as-is and retries with typographic quotes replaced.
// Quotes inside valid string values must survive, so normalization is only
// the second attempt.
func decodeLenient(s string) (wireResponse, bool) {
	if w, ok := decode(s); ok {
		return w, true
	}
	normalized := quoteNormalizer.Replace(s)
	if normalized == s {
		return wireResponse{}, false
	}
	return decode(normalized)
}

func decode(s string) (wireResponse, bool) {
	var w wireResponse
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return w, false
	}
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return w, false
	}
	return w, true
}

// ---------------------------------------------------------------------------
// Wire format
// ---------------------------------------------------------------------------

// wireResponse mirrors the JSON contract given to the model. Field decoders
// are lenient so that one malformed field does not discard the whole reply.
type wireResponse struct {
	ConversationMessage looseString               `json:"conversationMessage"`
	Message             looseString               `json:"message"`
	SystemMessage       looseString               `json:"systemMessage"`
	LessonComplete      looseBool                 `json:"lessonComplete"`
	Corrections         looseList[wireCorrection] `json:"corrections"`
	NewWords            looseList[wireCandidate]  `json:"newWords"`
}

func (w wireResponse) toDomain() domain.TutoringResponse {
	msg := strings.TrimSpace(string(w.ConversationMessage))
	if msg == "" {
		msg = strings.TrimSpace(string(w.Message))
	}
	if msg == "" {
		msg = domain.FallbackConversationMessage
	}

	corrections := make([]domain.Correction, 0, len(w.Corrections))
	for _, c := range w.Corrections {
		if c.skip {
			continue
		}
		corrections = append(corrections, domain.Correction{
			OriginalWord: string(c.OriginalWord),
			Correction:   string(c.Correction),
			Explanation:  string(c.Explanation),
		})
	}

	words := make([]domain.VocabularyCandidate, 0, len(w.NewWords))
	for _, c := range w.NewWords {
		if c.skip {
			continue
		}
		words = append(words, c.candidate)
	}

	return domain.TutoringResponse{
		ConversationMessage: msg,
		SystemMessage:       strings.TrimSpace(string(w.SystemMessage)),
		LessonComplete:      bool(w.LessonComplete),
		Corrections:         corrections,
		NewWords:            words,
	}
}

// looseString decodes a JSON string; any other JSON value decodes as "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = looseString(v)
	return nil
}

// looseBool decodes a JSON boolean; any other JSON value decodes as false.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		*b = false
		return nil
	}
	*b = looseBool(v)
	return nil
}

// looseList decodes a JSON array. A lone object decodes as a one-element
// list; any other value decodes as empty.
type looseList[T any] []T

func (l *looseList[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		*l = nil
	case trimmed[0] == '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			*l = nil
			return nil
		}
		*l = items
	case trimmed[0] == '{':
		var item T
		if err := json.Unmarshal(trimmed, &item); err != nil {
			*l = nil
			return nil
		}
		*l = looseList[T]{item}
	default:
		*l = nil
	}
	return nil
}

type wireCorrection struct {
	OriginalWord looseString
	Correction   looseString
	Explanation  looseString
	skip         bool
}

func (c *wireCorrection) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		c.skip = true
		return nil
	}
	var v struct {
		OriginalWord looseString `json:"originalWord"`
		Correction   looseString `json:"correction"`
		Explanation  looseString `json:"explanation"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.skip = true
		return nil
	}
	c.OriginalWord, c.Correction, c.Explanation = v.OriginalWord, v.Correction, v.Explanation
	return nil
}

// wireCandidate accepts both the legacy bare-string shape and the
// {word, translation, romaji} object.
type wireCandidate struct {
	candidate domain.VocabularyCandidate
	skip      bool
}

func (c *wireCandidate) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		c.skip = true
		return nil
	}
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		c.candidate = domain.VocabularyCandidate{Word: bare}
		return nil
	}

	var v struct {
		Word        looseString `json:"word"`
		Translation looseString `json:"translation"`
		Romaji      looseString `json:"romaji"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		c.skip = true
		return nil
	}
	c.candidate = domain.VocabularyCandidate{
		Word:        string(v.Word),
		Translation: optional(string(v.Translation)),
		Romaji:      optional(string(v.Romaji)),
	}
	return nil
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

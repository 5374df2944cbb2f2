package wordbank

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

const (
	minUsedRunes      = 3
	minMorphemeRunes  = 2
	segmentedLanguage = "japanese"
)

// tokens returns the distinct word forms of a learner utterance in order of
// first appearance.
func (s *Service) tokens(languageID, utterance string) []string {
	if s.segmenter != nil && languageID == segmentedLanguage {
		return dedupe(s.segmenter.Segment(utterance), minMorphemeRunes)
	}
	return Tokenize(utterance)
}

// Tokenize lowercases text, splits it on non-word characters and drops
// tokens shorter than three characters. Letters of every script, combining
// marks, digits and '_' are word characters.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	return dedupe(fields, minUsedRunes)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func dedupe(tokens []string, minRunes int) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(t)
		if domain.RuneLen(t) < minRunes {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

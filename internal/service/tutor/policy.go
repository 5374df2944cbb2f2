package tutor

import (
	"strings"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// RejectReason names the rule a vocabulary candidate failed.
type RejectReason string

const (
	RejectAbsent      RejectReason = "absent_from_message"
	RejectDuplicate   RejectReason = "duplicate"
	RejectLength      RejectReason = "length"
	RejectTranslation RejectReason = "translation"
	RejectParticle    RejectReason = "particle"
	RejectSentence    RejectReason = "sentence"
	RejectSymbol      RejectReason = "symbol"
	RejectReserved    RejectReason = "reserved_term"
)

const (
	minWordRunes  = 2
	maxWordRunes  = 50
	maxWordTokens = 3
	structuralSet = "_{}()[]<>"
)

var placeholderTranslations = map[string]struct{}{
	"[check dictionary]":   {},
	"[translation needed]": {},
	"unknown":              {},
}

var particles = map[string]struct{}{
	"は": {}, "が": {}, "を": {}, "に": {}, "へ": {}, "と": {}, "で": {},
	"の": {}, "か": {}, "も": {}, "や": {}, "よ": {}, "ね": {},
}

var reservedTerms = map[string]struct{}{
	"start_conversation": {},
	"system":             {},
	"function":           {},
	"const":              {},
	"let":                {},
	"var":                {},
}

// Policy decides whether a vocabulary candidate is admissible for storage
// and display. The zero value is ready to use.
type Policy struct{}

// IsAdmissible reports whether c passes every rule.
func (p Policy) IsAdmissible(c domain.VocabularyCandidate) bool {
	return p.Reason(c) == ""
}

// Reason returns the first rule c fails, or "" when c is admissible.
func (Policy) Reason(c domain.VocabularyCandidate) RejectReason {
	word := strings.TrimSpace(c.Word)

	if _, ok := particles[word]; ok {
		return RejectParticle
	}

	if n := domain.RuneLen(word); n < minWordRunes || n > maxWordRunes {
		return RejectLength
	}

	tr := c.TranslationText()
	if tr == "" {
		return RejectTranslation
	}
	if _, ok := placeholderTranslations[strings.ToLower(tr)]; ok {
		return RejectTranslation
	}

	if len(strings.Fields(word)) > maxWordTokens {
		return RejectSentence
	}

	if strings.ContainsAny(word, structuralSet) {
		return RejectSymbol
	}

	if _, ok := reservedTerms[strings.ToLower(word)]; ok {
		return RejectReserved
	}

	return ""
}

package domain

import "strings"

// FallbackConversationMessage replaces a missing in-character reply.
const FallbackConversationMessage = "ごめんなさい (Sorry, I had trouble responding)"

// Correction is tutor feedback on one error in the learner's last utterance.
type Correction struct {
	OriginalWord string
	Correction   string
	Explanation  string
}

// VocabularyCandidate is a word the tutor proposes to teach. Legacy bare
// string entries arrive with no translation.
type VocabularyCandidate struct {
	Word        string
	Translation *string
	Romaji      *string
}

// TranslationText returns the trimmed translation or "" if absent.
func (c VocabularyCandidate) TranslationText() string {
	if c.Translation == nil {
		return ""
	}
	return strings.TrimSpace(*c.Translation)
}

// TutoringResponse is the structured reply the model is asked to produce.
// ConversationMessage is the character's dialogue; SystemMessage is English
// teaching feedback about the learner's previous utterance.
type TutoringResponse struct {
	ConversationMessage string
	SystemMessage       string
	LessonComplete      bool
	Corrections         []Correction
	NewWords            []VocabularyCandidate
}

package domain

import (
	"io"

	"github.com/google/uuid"
)

// TurnStartSentinel is sent as the only history entry to request the
// tutor's opening line.
const TurnStartSentinel = "START_CONVERSATION"

// ChatMessage is one entry of the conversation history.
type ChatMessage struct {
	Role Role
	Text string
}

// IsOpeningTurn reports whether history only carries the turn-start sentinel.
func IsOpeningTurn(history []ChatMessage) bool {
	return len(history) == 1 && history[0].Text == TurnStartSentinel
}

// LatestLearnerText returns the text of the last history entry when it was
// written by the learner.
func LatestLearnerText(history []ChatMessage) (string, bool) {
	if len(history) == 0 {
		return "", false
	}
	last := history[len(history)-1]
	if last.Role != RoleLearner || last.Text == TurnStartSentinel {
		return "", false
	}
	return last.Text, true
}

// ModelRequest is one call to the model boundary. Zero Temperature and
// MaxTokens leave the provider defaults in place.
type ModelRequest struct {
	Instruction string
	History     []ChatMessage
	Temperature float64
	MaxTokens   int
}

// Audio is a recorded learner utterance awaiting transcription.
type Audio struct {
	Data        io.Reader
	Filename    string
	ContentType string
}

// TurnOutcome is the API-facing result of one processed turn.
type TurnOutcome struct {
	ConversationMessage string
	SystemMessage       string
	LessonComplete      bool
	Corrections         []Correction
	NewWords            []VocabularyCandidate
	// UserText is the transcript of a voice turn.
	UserText string
}

// TurnContext identifies who is talking about which lesson.
type TurnContext struct {
	LearnerID  uuid.UUID
	LanguageID string
	LessonID   int
}

// Package llm holds helpers shared by the chat model adapters.
package llm

import (
	"errors"
	"strings"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Kickoff is sent as the learner line when the vendor needs one and the
// history does not provide it (opening turns, history ending with the tutor).
const Kickoff = "Start the conversation."

// ErrEmptyReply is returned when a vendor answers without any text.
var ErrEmptyReply = errors.New("empty model reply")

// Turn is one message of a strictly alternating conversation.
type Turn struct {
	Learner bool
	Text    string
}

// Alternate converts history into turns that start and end with the learner
// and never repeat a role. Consecutive entries of one role are joined with a
// blank line. Vendors with strict role ordering (Claude, Gemini) need this.
func Alternate(history []domain.ChatMessage) []Turn {
	turns := make([]Turn, 0, len(history)+2)
	for _, m := range history {
		text := strings.TrimSpace(m.Text)
		if text == "" || text == domain.TurnStartSentinel {
			continue
		}
		learner := m.Role == domain.RoleLearner
		if n := len(turns); n > 0 && turns[n-1].Learner == learner {
			turns[n-1].Text += "\n\n" + text
			continue
		}
		turns = append(turns, Turn{Learner: learner, Text: text})
	}

	if len(turns) == 0 || !turns[0].Learner {
		turns = append([]Turn{{Learner: true, Text: Kickoff}}, turns...)
	}
	if !turns[len(turns)-1].Learner {
		turns = append(turns, Turn{Learner: true, Text: Kickoff})
	}
	return turns
}

package wordbank

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Parts of speech that never count as vocabulary the learner produced.
var skippedPOS = map[string]struct{}{
	"助詞":  {}, // particle
	"助動詞": {}, // auxiliary verb
	"記号":  {}, // symbol
}

// JapaneseSegmenter splits Japanese text into morphemes with the IPA dictionary.
type JapaneseSegmenter struct {
	t *tokenizer.Tokenizer
}

// NewJapaneseSegmenter loads the dictionary. It is slow enough that callers
// should build one segmenter per process.
func NewJapaneseSegmenter() (*JapaneseSegmenter, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &JapaneseSegmenter{t: t}, nil
}

// Segment returns the surface forms of content morphemes in text.
func (s *JapaneseSegmenter) Segment(text string) []string {
	var out []string
	for _, token := range s.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		surface := strings.TrimSpace(token.Surface)
		if surface == "" {
			continue
		}
		if features := token.Features(); len(features) > 0 {
			if _, skip := skippedPOS[features[0]]; skip {
				continue
			}
		}
		out = append(out, surface)
	}
	return out
}

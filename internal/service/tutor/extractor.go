package tutor

import (
	"strings"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

// Rejection records a candidate dropped by the extractor and why.
type Rejection struct {
	Candidate domain.VocabularyCandidate
	Reason    RejectReason
}

// Extraction is the admissible subset of a turn's vocabulary candidates in
// their original order, plus what was dropped.
type Extraction struct {
	Admitted []domain.VocabularyCandidate
	Rejected []Rejection
}

// Extractor filters parsed vocabulary against the reply text and a Policy.
type Extractor struct {
	Policy Policy
}

// Extract keeps candidates whose surface word occurs literally in message
// and that pass the policy. Later duplicates of a normalized word are dropped.
func (e Extractor) Extract(candidates []domain.VocabularyCandidate, message string) Extraction {
	out := Extraction{Admitted: make([]domain.VocabularyCandidate, 0, len(candidates))}
	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		if !strings.Contains(message, c.Word) {
			out.Rejected = append(out.Rejected, Rejection{Candidate: c, Reason: RejectAbsent})
			continue
		}
		if reason := e.Policy.Reason(c); reason != "" {
			out.Rejected = append(out.Rejected, Rejection{Candidate: c, Reason: reason})
			continue
		}
		key := domain.NormalizeWord(c.Word)
		if _, dup := seen[key]; dup {
			out.Rejected = append(out.Rejected, Rejection{Candidate: c, Reason: RejectDuplicate})
			continue
		}
		seen[key] = struct{}{}
		out.Admitted = append(out.Admitted, c)
	}

	return out
}

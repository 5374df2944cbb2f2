package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/tutor"
)

type parseOutput struct {
	Stage               string           `json:"stage"`
	ConversationMessage string           `json:"conversationMessage"`
	SystemMessage       string           `json:"systemMessage"`
	LessonComplete      bool             `json:"lessonComplete"`
	Corrections         []correctionJSON `json:"corrections"`
	Admitted            []wordJSON       `json:"admitted"`
	Rejected            []rejectedJSON   `json:"rejected"`
}

type correctionJSON struct {
	OriginalWord string `json:"originalWord"`
	Correction   string `json:"correction"`
	Explanation  string `json:"explanation"`
}

type wordJSON struct {
	Word        string  `json:"word"`
	Translation *string `json:"translation,omitempty"`
	Romaji      *string `json:"romaji,omitempty"`
}

type rejectedJSON struct {
	Word   string `json:"word"`
	Reason string `json:"reason"`
}

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a raw model reply",
		Long:  "Parse a raw model completion (a file, or stdin when no file is given) and print the tutoring response, the parse stage and the vocabulary the extractor keeps.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return writeParse(cmd.OutOrStdout(), opts, analyze(raw))
		},
	}
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("read completion: %w", err)
	}
	return string(data), nil
}

// analyze runs the parse and extraction steps of a turn on raw.
func analyze(raw string) parseOutput {
	resp, stage := tutor.Parse(raw)
	extraction := tutor.Extractor{}.Extract(resp.NewWords, resp.ConversationMessage)

	out := parseOutput{
		Stage:               stage.String(),
		ConversationMessage: resp.ConversationMessage,
		SystemMessage:       resp.SystemMessage,
		LessonComplete:      resp.LessonComplete,
		Corrections:         make([]correctionJSON, 0, len(resp.Corrections)),
		Admitted:            toWordJSON(extraction.Admitted),
		Rejected:            make([]rejectedJSON, 0, len(extraction.Rejected)),
	}
	for _, c := range resp.Corrections {
		out.Corrections = append(out.Corrections, correctionJSON(c))
	}
	for _, r := range extraction.Rejected {
		out.Rejected = append(out.Rejected, rejectedJSON{Word: r.Candidate.Word, Reason: string(r.Reason)})
	}
	return out
}

func toWordJSON(cands []domain.VocabularyCandidate) []wordJSON {
	out := make([]wordJSON, 0, len(cands))
	for _, c := range cands {
		out = append(out, wordJSON{Word: c.Word, Translation: c.Translation, Romaji: c.Romaji})
	}
	return out
}

func writeParse(w io.Writer, opts *options, out parseOutput) error {
	if opts.jsonOutput() {
		return printJSON(w, out)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "stage:     %s\n", out.Stage)
	fmt.Fprintf(&b, "reply:     %s\n", out.ConversationMessage)
	if out.SystemMessage != "" {
		fmt.Fprintf(&b, "feedback:  %s\n", out.SystemMessage)
	}
	fmt.Fprintf(&b, "complete:  %t\n", out.LessonComplete)
	for _, c := range out.Corrections {
		fmt.Fprintf(&b, "fix:       %s -> %s (%s)\n", c.OriginalWord, c.Correction, c.Explanation)
	}
	for _, wd := range out.Admitted {
		fmt.Fprintf(&b, "word:      %s", wd.Word)
		if wd.Translation != nil {
			fmt.Fprintf(&b, " = %s", *wd.Translation)
		}
		if wd.Romaji != nil {
			fmt.Fprintf(&b, " [%s]", *wd.Romaji)
		}
		b.WriteByte('\n')
	}
	for _, r := range out.Rejected {
		fmt.Fprintf(&b, "rejected:  %s (%s)\n", r.Word, r.Reason)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

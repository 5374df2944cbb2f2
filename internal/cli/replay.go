package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	sqlitewords "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/sqlite/wordbank"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
	"github.com/heartmarshall/lingua-tutor-backend/internal/observe"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/tutor"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/wordbank"
)

// replayLearner owns every word recorded by a replay unless --learner is set.
var replayLearner = uuid.MustParse("00000000-0000-4000-8000-000000000001")

// recordedTurn is one line of a replay file.
type recordedTurn struct {
	LanguageID  string `json:"languageId"`
	LearnerText string `json:"learnerText"`
	Completion  string `json:"completion"`
}

type replaySummary struct {
	RunID    string               `json:"runId"`
	Source   string               `json:"source"`
	Turns    int                  `json:"turns"`
	Degraded int                  `json:"degraded"`
	Admitted int                  `json:"admitted"`
	Rejected map[string]int       `json:"rejected"`
	Words    map[string][]wordRow `json:"words"`
}

type wordRow struct {
	Word        string  `json:"word"`
	Translation *string `json:"translation,omitempty"`
	Romaji      *string `json:"romaji,omitempty"`
	Status      string  `json:"status"`
	TimesSeen   int     `json:"timesSeen"`
	TimesUsed   int     `json:"timesUsed"`
}

func newReplayCmd(opts *options) *cobra.Command {
	var (
		dbPath   string
		learner  string
		japanese bool
	)

	cmd := &cobra.Command{
		Use:   "replay <turns.jsonl>",
		Short: "Replay recorded turns into a local word bank",
		Long: `Replay a JSONL file of recorded turns through the parser, the extractor and
the word bank into a SQLite database, then print the resulting word bank.
Each line is {"languageId": "...", "learnerText": "...", "completion": "..."}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			learnerID := replayLearner
			if learner != "" {
				id, err := uuid.Parse(learner)
				if err != nil {
					return fmt.Errorf("--learner: %w", err)
				}
				learnerID = id
			}
			if dbPath == "" {
				dbPath = defaultReplayDB()
			}

			store, err := sqlitewords.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open word bank: %w", err)
			}
			defer store.Close()

			var seg interface{ Segment(string) []string }
			if japanese {
				js, err := wordbank.NewJapaneseSegmenter()
				if err != nil {
					return fmt.Errorf("japanese segmenter: %w", err)
				}
				seg = js
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open turns: %w", err)
			}
			defer f.Close()

			r := &replayer{
				log:     opts.logger(cmd),
				store:   store,
				words:   wordbank.NewService(opts.logger(cmd), store, seg, observe.Noop()),
				learner: learnerID,
			}
			summary, err := r.run(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return writeReplay(cmd.OutOrStdout(), opts, summary)
		},
	}

	cmd.Flags().StringVarP(&dbPath, "db", "d", "", "SQLite word bank path (default: $TUTORCTL_DB or ~/.lingua-tutor/replay.db)")
	cmd.Flags().StringVar(&learner, "learner", "", "Learner UUID owning the replayed words")
	cmd.Flags().BoolVar(&japanese, "japanese-segmentation", false, "Segment Japanese learner text into morphemes")
	return cmd
}

type replayer struct {
	log     *slog.Logger
	store   *sqlitewords.Store
	words   *wordbank.Service
	learner uuid.UUID
}

func (r *replayer) run(ctx context.Context, source string, in io.Reader) (*replaySummary, error) {
	runID, err := r.store.StartRun(ctx, source)
	if err != nil {
		return nil, err
	}

	summary := &replaySummary{
		RunID:    runID,
		Source:   source,
		Rejected: map[string]int{},
		Words:    map[string][]wordRow{},
	}
	languages := map[string]struct{}{}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		var turn recordedTurn
		if err := json.Unmarshal([]byte(text), &turn); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if turn.LanguageID == "" {
			return nil, fmt.Errorf("line %d: languageId is required", line)
		}
		languages[turn.LanguageID] = struct{}{}

		r.replayTurn(ctx, turn, summary)
		summary.Turns++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read turns: %w", err)
	}

	if err := r.store.FinishRun(ctx, runID, summary.Turns); err != nil {
		return nil, err
	}

	for lang := range languages {
		res, err := r.words.List(ctx, wordbank.ListInput{UserID: r.learner, LanguageID: lang, Limit: 500})
		if err != nil {
			return nil, err
		}
		rows := make([]wordRow, 0, len(res.Words))
		for _, w := range res.Words {
			rows = append(rows, wordRow{
				Word:        w.Word,
				Translation: w.Translation,
				Romaji:      w.Romaji,
				Status:      w.Status.String(),
				TimesSeen:   w.TimesSeen,
				TimesUsed:   w.TimesUsed,
			})
		}
		summary.Words[lang] = rows
	}
	return summary, nil
}

// replayTurn mirrors the persisting stage of a live turn.
func (r *replayer) replayTurn(ctx context.Context, turn recordedTurn, summary *replaySummary) {
	resp, stage := tutor.Parse(turn.Completion)
	if stage == tutor.ParseDegraded {
		summary.Degraded++
	}

	extraction := tutor.Extractor{}.Extract(resp.NewWords, resp.ConversationMessage)
	summary.Admitted += len(extraction.Admitted)
	for _, rej := range extraction.Rejected {
		summary.Rejected[string(rej.Reason)]++
	}

	for _, c := range extraction.Admitted {
		_, err := r.words.RecordSeen(ctx, domain.WordSighting{
			UserID:      r.learner,
			LanguageID:  turn.LanguageID,
			Word:        c.Word,
			Translation: c.TranslationText(),
			Romaji:      c.Romaji,
		})
		if err != nil {
			r.log.WarnContext(ctx, "record seen word failed", slog.String("word", c.Word), slog.String("error", err.Error()))
		}
	}

	text := strings.TrimSpace(turn.LearnerText)
	if text == "" || text == domain.TurnStartSentinel {
		return
	}
	if _, err := r.words.RecordUsed(ctx, r.learner, turn.LanguageID, text); err != nil {
		r.log.WarnContext(ctx, "record used words partially failed", slog.String("error", err.Error()))
	}
}

func writeReplay(w io.Writer, opts *options, s *replaySummary) error {
	if opts.jsonOutput() {
		return printJSON(w, s)
	}

	fmt.Fprintf(w, "run %s: %d turns from %s (%d degraded), %d words admitted\n",
		s.RunID, s.Turns, s.Source, s.Degraded, s.Admitted)

	reasons := make([]string, 0, len(s.Rejected))
	for reason := range s.Rejected {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(w, "  rejected %-12s %d\n", reason, s.Rejected[reason])
	}

	langs := make([]string, 0, len(s.Words))
	for lang := range s.Words {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, lang := range langs {
		fmt.Fprintf(tw, "\n[%s]\nWORD\tTRANSLATION\tSTATUS\tSEEN\tUSED\n", lang)
		for _, row := range s.Words[lang] {
			translation := ""
			if row.Translation != nil {
				translation = *row.Translation
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", row.Word, translation, row.Status, row.TimesSeen, row.TimesUsed)
		}
	}
	return tw.Flush()
}

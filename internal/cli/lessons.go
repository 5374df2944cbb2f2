package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingua-tutor-backend/internal/catalog"
	"github.com/heartmarshall/lingua-tutor-backend/internal/domain"
)

func newLessonsCmd(opts *options) *cobra.Command {
	var (
		path  string
		level string
	)

	cmd := &cobra.Command{
		Use:   "lessons [languageId]",
		Short: "Print the language and lesson catalog",
		Long:  "Without arguments, list the catalog's languages. With a language id, list its lessons with their resolved goals.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(path)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				return writeLanguages(w, opts, cat.Languages())
			}
			lessons, err := cat.Lessons(args[0], level)
			if err != nil {
				return err
			}
			return writeLessons(w, opts, lessons)
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "Catalog YAML replacing the embedded one")
	cmd.Flags().StringVar(&level, "level", domain.LevelBeginner, "Course level")
	return cmd
}

func writeLanguages(w io.Writer, opts *options, langs []domain.Language) error {
	if opts.jsonOutput() {
		out := make([]map[string]any, 0, len(langs))
		for _, l := range langs {
			out = append(out, map[string]any{
				"id": l.ID, "name": l.Name, "nativeName": l.NativeName,
				"locale": l.Locale, "flag": l.Flag, "countryCode": l.CountryCode,
				"romanized": l.Romanized,
			})
		}
		return printJSON(w, out)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNATIVE\tLOCALE\tROMANIZED")
	for _, l := range langs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", l.ID, l.Name, l.NativeName, l.Locale, l.Romanized)
	}
	return tw.Flush()
}

func writeLessons(w io.Writer, opts *options, lessons []domain.Lesson) error {
	if opts.jsonOutput() {
		out := make([]map[string]any, 0, len(lessons))
		for _, l := range lessons {
			out = append(out, map[string]any{
				"id": l.ID, "type": l.Type.String(), "title": l.Title,
				"topic": l.Topic, "scenario": l.Scenario, "goal": l.Goal,
			})
		}
		return printJSON(w, out)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tGOAL")
	for _, l := range lessons {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", l.ID, l.Type, l.Title, l.Goal)
	}
	return tw.Flush()
}

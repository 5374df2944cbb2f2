// Package cli implements the tutorctl admin commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

type options struct {
	format  string
	verbose bool
}

// NewRootCmd builds the tutorctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "tutorctl",
		Short:         "Admin tools for the lingua-tutor backend",
		Long:          "Offline tools for the tutor pipeline: parse model replies, replay recorded turns into a local word bank, inspect the lesson catalog and prune sessions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format: json or text")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline warnings to stderr")

	root.AddCommand(
		newParseCmd(opts),
		newReplayCmd(opts),
		newLessonsCmd(opts),
		newCleanupSessionsCmd(opts),
	)
	return root
}

// logger writes warnings to stderr with --verbose and discards them otherwise.
func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *options) jsonOutput() bool {
	return o.format == "json"
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func defaultReplayDB() string {
	if env := os.Getenv("TUTORCTL_DB"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lingua-tutor", "replay.db")
}

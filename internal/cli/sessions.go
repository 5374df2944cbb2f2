package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres"
	sessionrepo "github.com/heartmarshall/lingua-tutor-backend/internal/adapter/postgres/session"
	"github.com/heartmarshall/lingua-tutor-backend/internal/config"
	"github.com/heartmarshall/lingua-tutor-backend/internal/service/auth"
)

func newCleanupSessionsCmd(opts *options) *cobra.Command {
	var (
		dsn     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "cleanup-sessions",
		Short: "Delete expired login sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				dsn = os.Getenv("DATABASE_DSN")
			}
			if dsn == "" {
				return fmt.Errorf("--dsn or DATABASE_DSN is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, config.DatabaseConfig{
				DSN:             dsn,
				MaxConns:        2,
				MinConns:        1,
				MaxConnLifetime: time.Hour,
				MaxConnIdleTime: time.Minute,
			})
			if err != nil {
				return err
			}
			defer pool.Close()

			// Pruning needs only the session store.
			svc := auth.NewService(opts.logger(cmd), nil, sessionrepo.New(pool), nil, nil, config.AuthConfig{})
			n, err := svc.CleanupExpired(ctx)
			if err != nil {
				return err
			}

			if opts.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), map[string]int64{"deleted": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired sessions.\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (default: $DATABASE_DSN)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout")
	return cmd
}

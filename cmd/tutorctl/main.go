// Command tutorctl is the admin CLI for the lingua-tutor backend.
//
// Usage:
//
//	tutorctl parse reply.txt
//	tutorctl replay --db ./replay.db turns.jsonl
//	tutorctl lessons ja
//	tutorctl cleanup-sessions --dsn postgres://...
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/lingua-tutor-backend/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// Where: cmd/fieldsync/main.go
// What: CLI entrypoint.
// Why: Execute fieldsync commands with configured dependencies.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/poruru-code/fieldsync/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := command.Run(os.Args[1:], buildDependencies(ctx))
	stop()
	os.Exit(code)
}

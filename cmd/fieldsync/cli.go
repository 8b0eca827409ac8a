// Where: cmd/fieldsync/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/poruru-code/fieldsync/internal/command"
	"github.com/poruru-code/fieldsync/internal/infra/config"
	"github.com/poruru-code/fieldsync/internal/infra/interaction"
	"github.com/poruru-code/fieldsync/internal/infra/optionfile"
)

const httpTimeout = 60 * time.Second

// buildDependencies constructs the runtime dependencies used by command.Run.
func buildDependencies(ctx context.Context) command.Dependencies {
	return command.Dependencies{
		Context:     ctx,
		In:          os.Stdin,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Prompter:    interaction.NewPrompter(os.Getenv, os.Stdin, os.Stderr),
		Interactive: interaction.IsInteractive,
		Getenv:      os.Getenv,
		ConfigPath:  config.DefaultPath,
		HTTPClient:  &http.Client{Timeout: httpTimeout},
		Files:       optionfile.NewStore(),
	}
}

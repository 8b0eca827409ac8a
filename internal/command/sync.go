// Where: internal/command/sync.go
// What: sync command adapter.
// Why: Translate flags into a fieldsync.Request and report the result.
package command

import (
	"errors"
	"fmt"

	"github.com/poruru-code/fieldsync/internal/infra/logging"
	"github.com/poruru-code/fieldsync/internal/infra/optionfile"
	"github.com/poruru-code/fieldsync/internal/usecase/fieldsync"
)

func runSync(cli CLI, deps Dependencies) int {
	interactive := deps.Interactive()
	ui := consoleUI(deps.Out, interactive && !cli.NoEmoji)
	cmd := cli.Sync

	if (cmd.Input == "") == (cmd.Export == "") {
		return exitWithError(deps.ErrOut, usageError{err: errors.New("exactly one of --input-file or --export-file is required")})
	}

	debug, closer := logging.NewDebugLogger(logging.Options{Debug: cli.Debug, LogFile: cli.LogFile, Stderr: deps.ErrOut})
	defer closer.Close()

	profile, profileName, err := resolveConnection(cli, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	backend, err := newBackend(profile, deps, debug)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	exportPath := cmd.Export
	if exportPath != "" {
		exportPath, err = optionfile.RenderPath(exportPath, optionfile.PathData{
			Field:   cmd.Field,
			Backend: backend.Name(),
			Profile: profileName,
		})
		if err != nil {
			return exitWithError(deps.ErrOut, usageError{err: err})
		}
	}

	files := deps.Files
	if files == nil {
		files = optionfile.NewStore()
	}
	req := fieldsync.Request{
		FieldKey:   cmd.Field,
		InputPath:  cmd.Input,
		ExportPath: exportPath,
		DryRun:     cmd.DryRun,
	}
	if cmd.Input != "" && !cmd.DryRun && !cmd.Yes && interactive {
		req.Confirm = func(summary fieldsync.Result) (bool, error) {
			return deps.Prompter.Confirm(
				fmt.Sprintf("Write %d options to %s?", summary.Merged, summary.FieldKey),
				fmt.Sprintf("%d new, %d already on %s", len(summary.Added), summary.Remote, summary.Backend),
			)
		}
	}

	result, err := fieldsync.NewWorkflow(backend, files, ui).Run(deps.Context, req)
	if errors.Is(err, fieldsync.ErrAborted) {
		ui.Warn("Aborted, nothing was written")
		return exitFailure
	}
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	fieldsync.Report(ui, result)
	return exitOK
}

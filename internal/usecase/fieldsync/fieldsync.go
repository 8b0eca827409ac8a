// Where: internal/usecase/fieldsync/fieldsync.go
// What: Import/export workflow for one remote field's option set.
// Why: Keep the fetch, gate, merge, and write sequence independent of the CLI.
package fieldsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/fieldport"
	"github.com/poruru-code/fieldsync/internal/domain/option"
	"github.com/poruru-code/fieldsync/internal/infra/ui"
)

var (
	errBackendNotConfigured = errors.New("backend is not configured")
	errFilesNotConfigured   = errors.New("option file store is not configured")
	// ErrAborted is returned when the user declines the write.
	ErrAborted = errors.New("aborted by user")
)

// Files reads and writes option files.
type Files interface {
	Read(ctx context.Context, location string) (option.Collection, error)
	Write(ctx context.Context, location string, records option.Collection) error
}

// Request captures one run. Exactly one of InputPath and ExportPath is set.
type Request struct {
	FieldKey   string
	InputPath  string
	ExportPath string
	DryRun     bool
	// Confirm is asked before the write; nil means proceed.
	Confirm func(summary Result) (bool, error)
}

// Result summarizes a run.
type Result struct {
	Backend   string
	FieldKey  string
	FieldType string
	Variant   field.Variant
	Remote    int
	Local     int
	Merged    int
	Added     option.Collection
	Exported  string
	Written   bool
}

// Workflow executes import and export runs against one backend.
type Workflow struct {
	Backend fieldport.Backend
	Files   Files
	UI      ui.UserInterface
}

// NewWorkflow wires a workflow.
func NewWorkflow(backend fieldport.Backend, files Files, userInterface ui.UserInterface) Workflow {
	return Workflow{Backend: backend, Files: files, UI: userInterface}
}

// Run fetches the field, checks the allow-list, and then either exports the
// current options or merges the local file into them and writes the result.
func (w Workflow) Run(ctx context.Context, req Request) (Result, error) {
	if w.Backend == nil {
		return Result{}, errBackendNotConfigured
	}
	if w.Files == nil {
		return Result{}, errFilesNotConfigured
	}
	if err := req.validate(); err != nil {
		return Result{}, err
	}

	desc, err := w.Backend.Describe(ctx, req.FieldKey)
	if err != nil {
		return Result{}, err
	}
	result := Result{
		Backend:   w.Backend.Name(),
		FieldKey:  desc.Key,
		FieldType: desc.Type,
		Variant:   desc.Variant,
	}
	if err := w.Backend.AllowList().CheckWritable(desc); err != nil {
		return result, err
	}

	adapter, err := w.Backend.Adapter(desc.Variant)
	if err != nil {
		return result, err
	}
	desc, err = adapter.Fetch(ctx, desc)
	if err != nil {
		return result, err
	}
	result.Remote = len(desc.Options)

	if req.ExportPath != "" {
		return w.export(ctx, req, desc, result)
	}
	return w.sync(ctx, req, desc, adapter, result)
}

func (w Workflow) export(ctx context.Context, req Request, desc field.Descriptor, result Result) (Result, error) {
	if err := w.Files.Write(ctx, req.ExportPath, desc.Options); err != nil {
		return result, fmt.Errorf("export %s: %w", req.ExportPath, err)
	}
	result.Exported = req.ExportPath
	w.info(fmt.Sprintf("Exported %d options of %s to %s", result.Remote, desc.Key, req.ExportPath))
	return result, nil
}

func (w Workflow) sync(
	ctx context.Context,
	req Request,
	desc field.Descriptor,
	adapter fieldport.FieldAdapter,
	result Result,
) (Result, error) {
	local, err := w.Files.Read(ctx, req.InputPath)
	if err != nil {
		return result, err
	}
	merged := option.Merge(local, desc.Options)
	result.Local = len(local)
	result.Merged = len(merged)
	result.Added = option.Added(merged, desc.Options)

	body, err := adapter.Encode(merged, desc)
	if err != nil {
		return result, err
	}
	if req.DryRun {
		w.info(fmt.Sprintf("Dry run: %d options would be added to %s", len(result.Added), desc.Key))
		return result, nil
	}
	if req.Confirm != nil {
		ok, err := req.Confirm(result)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, ErrAborted
		}
	}
	if err := adapter.Write(ctx, desc.Key, body); err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}

func (w Workflow) info(msg string) {
	if w.UI != nil {
		w.UI.Info(msg)
	}
}

func (r Request) validate() error {
	if strings.TrimSpace(r.FieldKey) == "" {
		return fmt.Errorf("field key is required")
	}
	hasInput := strings.TrimSpace(r.InputPath) != ""
	hasExport := strings.TrimSpace(r.ExportPath) != ""
	if hasInput == hasExport {
		return fmt.Errorf("exactly one of input file or export file is required")
	}
	return nil
}

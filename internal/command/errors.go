// Where: internal/command/errors.go
// What: Error to exit code mapping.
// Why: Every failure reaches one handler that picks the message and code.
package command

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/infra/config"
	"github.com/poruru-code/fieldsync/internal/infra/ui"
)

const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInput       = 3
	exitUnsupported = 4
	exitNotFound    = 5
	exitRemote      = 6
)

// usageError marks errors caused by flags or configuration.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage),
		errors.Is(err, config.ErrInvalidSettings),
		errors.Is(err, config.ErrProfileRequired):
		return exitUsage
	case errors.Is(err, field.ErrFileNotFound),
		errors.Is(err, field.ErrMalformedRow),
		errors.Is(err, field.ErrParseFailure):
		return exitInput
	case errors.Is(err, field.ErrUnsupportedFieldType):
		return exitUnsupported
	case errors.Is(err, field.ErrFieldNotFound):
		return exitNotFound
	case errors.Is(err, field.ErrRemote), isTransportError(err):
		return exitRemote
	default:
		return exitFailure
	}
}

func isTransportError(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// exitWithError prints err and returns its exit code.
func exitWithError(out io.Writer, err error) int {
	ui.NewWithEmoji(out, false).Error(fmt.Sprint(err))
	return exitCodeFor(err)
}

// Where: internal/domain/field/errors.go
// What: Error taxonomy for local input and remote interaction.
// Why: Let one top-level handler map every failure to an exit code.
package field

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileNotFound is returned when the option source does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedRow is returned for rows with zero or more than two fields.
	ErrMalformedRow = errors.New("malformed row")
	// ErrParseFailure is returned when the option source cannot be read or decoded.
	ErrParseFailure = errors.New("parse failure")
	// ErrFieldNotFound is returned when the backend has no usable field document.
	ErrFieldNotFound = errors.New("field not found")
	// ErrUnsupportedFieldType is returned when the field type is not in the allow-list.
	ErrUnsupportedFieldType = errors.New("field type not supported")
	// ErrRemote matches every *RemoteError.
	ErrRemote = errors.New("remote error")
)

// RowError reports a malformed input row.
type RowError struct {
	Line   int
	Fields int
}

func (e *RowError) Error() string {
	if e.Fields == 0 {
		return fmt.Sprintf("line %d: empty row, expected 1 or 2 fields", e.Line)
	}
	return fmt.Sprintf("line %d: %d fields, expected 1 or 2 (label,value)", e.Line, e.Fields)
}

func (e *RowError) Unwrap() error { return ErrMalformedRow }

// RemoteError is a non-success response from the backend.
type RemoteError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, body)
}

func (e *RemoteError) Is(target error) bool { return target == ErrRemote }

// IsRemote returns the RemoteError inside err, if any.
func IsRemote(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}

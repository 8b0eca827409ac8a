// Where: internal/infra/optionfile/parse.go
// What: Option record parser for local CSV / line-delimited files.
// Why: Turn user-supplied option lists into canonical records before merging.
package optionfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poruru-code/fieldsync/internal/domain/field"
	"github.com/poruru-code/fieldsync/internal/domain/option"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile parses the option file at path.
func ReadFile(path string) (option.Collection, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", field.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", field.ErrParseFailure, path, err)
	}
	return ParseBytes(payload)
}

// Parse reads every row of r. The whole input is materialized; any malformed
// row aborts the parse and no records are returned.
func Parse(r io.Reader) (option.Collection, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", field.ErrParseFailure, err)
	}
	return ParseBytes(payload)
}

// ParseBytes parses an in-memory option file.
//
// Rows with two fields map to {Slugify(f0), rstrip(f1)}; rows with one field
// map to {Slugify(f0), rstrip(f0)}. Blank rows and rows with three or more
// fields are malformed. A double quote is only special at the start of a
// field; elsewhere it is literal text, as in `Size,12" Vinyl`.
func ParseBytes(payload []byte) (option.Collection, error) {
	payload = bytes.TrimPrefix(payload, utf8BOM)
	if !utf8.Valid(payload) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", field.ErrParseFailure)
	}

	reader := csv.NewReader(bytes.NewReader(payload))
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		records  option.Collection
		nextLine = 1
	)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", field.ErrParseFailure, err)
		}

		// encoding/csv silently skips blank lines; surface them as empty rows.
		startLine, _ := reader.FieldPos(0)
		if startLine > nextLine {
			return nil, &field.RowError{Line: nextLine}
		}

		record, rowErr := recordFromRow(row, startLine)
		if rowErr != nil {
			return nil, rowErr
		}
		records = append(records, record)

		lastLine, _ := reader.FieldPos(len(row) - 1)
		nextLine = lastLine + strings.Count(row[len(row)-1], "\n") + 1
	}

	if totalLines := countLines(payload); nextLine <= totalLines {
		return nil, &field.RowError{Line: nextLine}
	}
	return records, nil
}

func recordFromRow(row []string, line int) (option.Record, error) {
	switch len(row) {
	case 1:
		return option.Record{Label: option.Slugify(row[0]), Value: rstrip(row[0])}, nil
	case 2:
		return option.Record{Label: option.Slugify(row[0]), Value: rstrip(row[1])}, nil
	default:
		return option.Record{}, &field.RowError{Line: line, Fields: len(row)}
	}
}

func rstrip(s string) string {
	return strings.TrimRightFunc(s, isTrailingSpace)
}

// isTrailingSpace treats the ASCII separators 0x1c-0x1f as whitespace too.
func isTrailingSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// countLines returns the number of lines in payload, ignoring a final
// line terminator.
func countLines(payload []byte) int {
	if len(payload) == 0 {
		return 0
	}
	lines := bytes.Count(payload, []byte{'\n'})
	if payload[len(payload)-1] != '\n' {
		lines++
	}
	return lines
}

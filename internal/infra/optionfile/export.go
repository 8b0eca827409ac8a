// Where: internal/infra/optionfile/export.go
// What: CSV rendering of remote option collections.
// Why: Export mode writes the authoritative remote options to a file.
package optionfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/poruru-code/fieldsync/internal/domain/option"
)

// Write renders records as two-column CSV rows (key, value), one per record.
// No header row is written so the output can be fed back as input unchanged.
func Write(w io.Writer, records option.Collection) error {
	writer := csv.NewWriter(w)
	for _, record := range records {
		if err := writer.Write([]string{record.Label, record.Value}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// Render returns the CSV bytes for records.
func Render(records option.Collection) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

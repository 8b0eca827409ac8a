// Where: internal/usecase/fieldsync/summary.go
// What: Summary block for a finished run.
package fieldsync

import (
	"fmt"

	"github.com/poruru-code/fieldsync/internal/infra/ui"
)

// Report prints the run summary.
func Report(userInterface ui.UserInterface, result Result) {
	if userInterface == nil {
		return
	}
	rows := []ui.KeyValue{
		{Key: "Backend", Value: result.Backend},
		{Key: "Type", Value: fmt.Sprintf("%s (%s)", result.FieldType, result.Variant)},
		{Key: "Remote options", Value: result.Remote},
	}
	if result.Exported != "" {
		rows = append(rows, ui.KeyValue{Key: "Exported to", Value: result.Exported})
		userInterface.Block("📤", result.FieldKey, rows)
		return
	}
	rows = append(rows,
		ui.KeyValue{Key: "Local options", Value: result.Local},
		ui.KeyValue{Key: "Merged options", Value: result.Merged},
		ui.KeyValue{Key: "Added", Value: len(result.Added)},
	)
	userInterface.Block("🔄", result.FieldKey, rows)
	for _, record := range result.Added {
		userInterface.Info(fmt.Sprintf("   + %s = %s", record.Label, record.Value))
	}
	if result.Written {
		userInterface.Success(fmt.Sprintf("Updated %s", result.FieldKey))
	}
}

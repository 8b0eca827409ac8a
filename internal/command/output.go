// Where: internal/command/output.go
// What: Output helpers for command adapters.
// Why: Centralize UserInterface construction.
package command

import (
	"io"

	"github.com/poruru-code/fieldsync/internal/infra/ui"
)

func consoleUI(out io.Writer, emoji bool) ui.UserInterface {
	return ui.NewConsoleUI(out, emoji)
}

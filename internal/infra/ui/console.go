// Where: internal/infra/ui/console.go
// What: Console output helpers for consistent CLI UX.
// Why: Keep status lines and summary blocks uniform across commands.
package ui

import (
	"fmt"
	"io"
	"strings"
)

// Console provides helper methods for formatted output.
type Console struct {
	Out          io.Writer
	EmojiEnabled bool
}

// New creates a Console writing to out with emoji enabled.
func New(out io.Writer) *Console {
	return &Console{Out: out, EmojiEnabled: true}
}

// NewWithEmoji creates a Console with explicit emoji settings.
func NewWithEmoji(out io.Writer, enabled bool) *Console {
	return &Console{Out: out, EmojiEnabled: enabled}
}

// Header prints a section title.
// Example: 🔄 genre (portal, dropdown).
func (c *Console) Header(emoji, title string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.emojiPrefix(emoji), title)
}

// BlockStart separates a summary block from preceding output.
func (c *Console) BlockStart(emoji, title string) {
	fmt.Fprintln(c.Out)
	c.Header(emoji, title)
}

// BlockEnd ends a summary block.
func (c *Console) BlockEnd() {
	fmt.Fprintln(c.Out)
}

// Item prints an indented key/value row.
func (c *Console) Item(key string, value any) {
	fmt.Fprintf(c.Out, "   %-20s %v\n", key+":", value)
}

// Success prints a success line.
func (c *Console) Success(msg string) {
	c.status("✅", "[ok] ", msg)
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	c.status("⚠️", "[warn] ", msg)
}

// Error prints a failure line.
func (c *Console) Error(msg string) {
	c.status("❌", "[error] ", msg)
}

// Info prints a plain line.
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.Out, msg)
}

func (c *Console) status(emoji, fallback, msg string) {
	prefix := c.emojiPrefix(emoji)
	if prefix == "" {
		prefix = fallback
	}
	fmt.Fprintf(c.Out, "%s%s\n", prefix, msg)
}

func (c *Console) emojiPrefix(emoji string) string {
	if !c.EmojiEnabled || strings.TrimSpace(emoji) == "" {
		return ""
	}
	return emoji + " "
}

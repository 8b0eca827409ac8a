// Where: internal/infra/interaction/interaction.go
// What: Interactive primitives for CLI prompts and TTY detection.
// Why: Keep command handlers free of terminal handling.
package interaction

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Prompter asks the user for missing input.
type Prompter interface {
	Input(title string, suggestions []string) (string, error)
	Secret(title string) (string, error)
	Select(title string, options []string) (string, error)
	Confirm(title, description string) (bool, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether both stdin and stderr are terminals.
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stderr)
}

// NewPrompter returns the huh prompter, or a LinePrompter on in/out when
// TERM is "dumb" and the TUI cannot draw.
func NewPrompter(getenv func(string) string, in io.Reader, out io.Writer) Prompter {
	if getenv != nil && getenv("TERM") == "dumb" {
		return &LinePrompter{In: in, Out: out}
	}
	return HuhPrompter{}
}

// readPassword reads a line from a terminal without echo.
var readPassword = term.ReadPassword

// LinePrompter is a Prompter for terminals where the huh TUI cannot run,
// such as dumb terminals. Secrets typed on a terminal are not echoed.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

func (p *LinePrompter) readLine(prompt string) (string, error) {
	if p.reader == nil {
		in := p.In
		if in == nil {
			in = os.Stdin
		}
		p.reader = bufio.NewReader(in)
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = fmt.Fprint(out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *LinePrompter) Input(title string, suggestions []string) (string, error) {
	prompt := title + ": "
	if len(suggestions) > 0 {
		prompt = fmt.Sprintf("%s [%s]: ", title, suggestions[0])
	}
	line, err := p.readLine(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" && len(suggestions) > 0 {
		return suggestions[0], nil
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Secret(title string) (string, error) {
	file, ok := p.In.(*os.File)
	if p.In == nil {
		file, ok = os.Stdin, true
	}
	if !ok || !IsTerminal(file) {
		return p.readLine(title + ": ")
	}
	out := p.Out
	if out == nil {
		out = os.Stderr
	}
	_, _ = fmt.Fprint(out, title+": ")
	secret, err := readPassword(int(file.Fd()))
	_, _ = fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimRight(string(secret), "\r\n"), nil
}

func (p *LinePrompter) Select(title string, options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	prompt := fmt.Sprintf("%s (%s) [%s]: ", title, strings.Join(options, ", "), options[0])
	line, err := p.readLine(prompt)
	if err != nil {
		return "", err
	}
	choice := strings.TrimSpace(line)
	if choice == "" {
		return options[0], nil
	}
	for _, opt := range options {
		if opt == choice {
			return opt, nil
		}
	}
	return "", fmt.Errorf("invalid choice %q", choice)
}

func (p *LinePrompter) Confirm(title, description string) (bool, error) {
	message := title
	if description != "" {
		message = title + " (" + description + ")"
	}
	line, err := p.readLine(message + " [y/N]: ")
	if err != nil {
		return false, err
	}
	trimmed := strings.TrimSpace(strings.ToLower(line))
	return trimmed == "y" || trimmed == "yes", nil
}

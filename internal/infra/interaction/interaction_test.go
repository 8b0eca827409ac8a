// What: Tests for terminal detection and line prompts.
// Why: Keep non-interactive detection deterministic in tests.
package interaction

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestIsTerminalNilAndPipe(t *testing.T) {
	if IsTerminal(nil) {
		t.Fatal("IsTerminal(nil) must be false")
	}
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()
	if IsTerminal(r) {
		t.Fatal("IsTerminal(pipe) must be false")
	}
}

func TestLinePrompterSequence(t *testing.T) {
	var out bytes.Buffer
	p := &LinePrompter{In: strings.NewReader("\nhunter2\nstudio\ny\n"), Out: &out}

	user, err := p.Input("Username", []string{"admin"})
	if err != nil || user != "admin" {
		t.Fatalf("Input() = %q, %v", user, err)
	}
	secret, err := p.Secret("Password")
	if err != nil || secret != "hunter2" {
		t.Fatalf("Secret() = %q, %v", secret, err)
	}
	profile, err := p.Select("Profile", []string{"cloud", "studio"})
	if err != nil || profile != "studio" {
		t.Fatalf("Select() = %q, %v", profile, err)
	}
	ok, err := p.Confirm("Write genre?", "2 added")
	if err != nil || !ok {
		t.Fatalf("Confirm() = %v, %v", ok, err)
	}
	if !strings.Contains(out.String(), "Write genre? (2 added) [y/N]: ") {
		t.Fatalf("unexpected prompts %q", out.String())
	}
}

func TestLinePrompterSelectRejectsUnknown(t *testing.T) {
	p := &LinePrompter{In: strings.NewReader("other\n"), Out: &bytes.Buffer{}}
	if _, err := p.Select("Profile", []string{"cloud"}); err == nil {
		t.Fatal("expected error for unknown choice")
	}
}

func TestNewPrompterFallsBackOnDumbTerminal(t *testing.T) {
	dumb := func(key string) string {
		if key == "TERM" {
			return "dumb"
		}
		return ""
	}
	if _, ok := NewPrompter(dumb, strings.NewReader(""), &bytes.Buffer{}).(*LinePrompter); !ok {
		t.Fatal("expected LinePrompter for TERM=dumb")
	}
	xterm := func(string) string { return "xterm-256color" }
	if _, ok := NewPrompter(xterm, nil, nil).(HuhPrompter); !ok {
		t.Fatal("expected HuhPrompter for a capable terminal")
	}
}

func TestLinePrompterSecretOnTerminalDoesNotEcho(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	defer func() {
		_ = r.Close()
		_ = w.Close()
	}()

	origTerminal, origRead := IsTerminal, readPassword
	t.Cleanup(func() {
		IsTerminal = origTerminal
		readPassword = origRead
	})
	IsTerminal = func(file *os.File) bool { return file == r }
	var gotFD int
	readPassword = func(fd int) ([]byte, error) {
		gotFD = fd
		return []byte("hunter2"), nil
	}

	var out bytes.Buffer
	p := &LinePrompter{In: r, Out: &out}
	secret, err := p.Secret("Password")
	if err != nil || secret != "hunter2" {
		t.Fatalf("Secret() = %q, %v", secret, err)
	}
	if gotFD != int(r.Fd()) {
		t.Fatalf("readPassword fd = %d, want %d", gotFD, r.Fd())
	}
	if strings.Contains(out.String(), "hunter2") {
		t.Fatalf("secret echoed: %q", out.String())
	}
}

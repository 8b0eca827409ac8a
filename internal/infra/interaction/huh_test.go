package interaction

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
)

func TestHuhPrompterInputFallsBackToSuggestion(t *testing.T) {
	orig := runInputPrompt
	t.Cleanup(func() { runInputPrompt = orig })

	var gotTitle string
	runInputPrompt = func(title string, _ []string, input *string) error {
		gotTitle = title
		*input = ""
		return nil
	}

	got, err := (HuhPrompter{}).Input("Username", []string{"admin"})
	if err != nil {
		t.Fatalf("Input() error = %v", err)
	}
	if got != "admin" {
		t.Fatalf("Input() = %q, want %q", got, "admin")
	}
	if gotTitle != "Username" {
		t.Fatalf("title = %q", gotTitle)
	}
}

func TestHuhPrompterSecretWrapsError(t *testing.T) {
	orig := runSecretPrompt
	t.Cleanup(func() { runSecretPrompt = orig })
	runSecretPrompt = func(string, *string) error {
		return errors.New("tty unavailable")
	}

	_, err := (HuhPrompter{}).Secret("Password")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "prompt secret: tty unavailable" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHuhPrompterSelectUsesRunner(t *testing.T) {
	orig := runSelectPrompt
	t.Cleanup(func() { runSelectPrompt = orig })

	var gotOptions int
	runSelectPrompt = func(_ string, options []huh.Option[string], selected *string) error {
		gotOptions = len(options)
		*selected = "studio"
		return nil
	}

	got, err := (HuhPrompter{}).Select("Profile", []string{"cloud", "studio"})
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got != "studio" || gotOptions != 2 {
		t.Fatalf("Select() = %q with %d options", got, gotOptions)
	}
}

func TestHuhPrompterSelectEmptyOptionsSkipsRunner(t *testing.T) {
	orig := runSelectPrompt
	t.Cleanup(func() { runSelectPrompt = orig })
	called := false
	runSelectPrompt = func(string, []huh.Option[string], *string) error {
		called = true
		return nil
	}

	got, err := (HuhPrompter{}).Select("Profile", nil)
	if err != nil || got != "" {
		t.Fatalf("Select() = %q, %v", got, err)
	}
	if called {
		t.Fatal("runner must not be called for empty options")
	}
}

func TestHuhPrompterConfirm(t *testing.T) {
	orig := runConfirmPrompt
	t.Cleanup(func() { runConfirmPrompt = orig })

	var gotDescription string
	runConfirmPrompt = func(_ string, description string, confirmed *bool) error {
		gotDescription = description
		*confirmed = true
		return nil
	}

	ok, err := (HuhPrompter{}).Confirm("Write genre?", "3 options added")
	if err != nil || !ok {
		t.Fatalf("Confirm() = %v, %v", ok, err)
	}
	if gotDescription != "3 options added" {
		t.Fatalf("description = %q", gotDescription)
	}
}

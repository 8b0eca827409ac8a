// Where: internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable command dispatcher.
package command

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/poruru-code/fieldsync/internal/infra/config"
	"github.com/poruru-code/fieldsync/internal/infra/interaction"
	"github.com/poruru-code/fieldsync/internal/meta"
	"github.com/poruru-code/fieldsync/internal/usecase/fieldsync"
	"github.com/poruru-code/fieldsync/internal/version"
)

// Dependencies holds everything Run needs from the process environment.
// Tests replace the fields to run commands hermetically.
type Dependencies struct {
	Context     context.Context
	In          io.Reader
	Out         io.Writer
	ErrOut      io.Writer
	Prompter    interaction.Prompter
	Interactive func() bool
	Getenv      func(string) string
	ConfigPath  func() (string, error)
	HTTPClient  *http.Client
	Files       fieldsync.Files
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	Profile   string `help:"Connection profile from the config file"`
	Backend   string `help:"Backend type (iconik or portal)"`
	Address   string `short:"a" help:"Backend address (iconik URL, or Portal host)"`
	Port      int    `help:"Portal API port (default 8080)"`
	AppID     string `name:"app-id" help:"iconik App ID"`
	AuthToken string `name:"auth-token" help:"iconik auth token"`
	Username  string `short:"u" help:"Portal username (default admin)"`
	Password  string `short:"p" help:"Portal password"`
	Config    string `name:"config" help:"Path to config file (default ~/.fieldsync/config.yaml)"`
	EnvFile   string `name:"env-file" help:"Path to .env file"`
	Debug     bool   `help:"Trace HTTP requests and responses"`
	LogFile   string `name:"log-file" help:"Write debug trace to a rotating log file"`
	NoEmoji   bool   `name:"no-emoji" help:"Disable emoji output"`

	Sync     SyncCmd     `cmd:"" help:"Merge a local option file into a field, or export its options"`
	Profiles ProfilesCmd `cmd:"" name:"profile" help:"Manage connection profiles"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

type (
	// SyncCmd defines the sync command flags.
	SyncCmd struct {
		Field  string `short:"f" required:"" help:"Metadata field key"`
		Input  string `short:"i" name:"input-file" xor:"source" help:"Option file to merge (local path or s3://bucket/key)"`
		Export string `short:"e" name:"export-file" xor:"source" help:"Export current options to this path (template allowed)"`
		DryRun bool   `name:"dry-run" help:"Show what would change without writing"`
		Yes    bool   `short:"y" help:"Write without asking for confirmation"`
	}

	ProfilesCmd struct {
		List ProfileListCmd `cmd:"" help:"List configured profiles"`
		Save ProfileSaveCmd `cmd:"" help:"Save the connection flags as a profile"`
	}

	ProfileListCmd struct{}

	ProfileSaveCmd struct {
		Name    string `arg:"" help:"Profile name"`
		Default bool   `help:"Make this the default profile"`
	}

	VersionCmd struct{}
)

// Run is the main entry point for CLI command execution.
// It parses the command-line arguments and dispatches to the handler.
// The return value is the process exit code.
func Run(args []string, deps Dependencies) int {
	deps = withDefaults(deps)
	out := deps.Out

	if len(args) == 0 {
		return runNoArgs(out)
	}

	cli := CLI{}
	parser, err := kong.New(&cli,
		kong.Name(meta.AppName),
		kong.Description("Synchronize metadata field options with iconik or Portal."),
		kong.Writers(deps.Out, deps.ErrOut),
	)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return exitWithError(deps.ErrOut, usageError{err: err})
	}

	loadEnvFile(cli.EnvFile, deps)

	switch ctx.Command() {
	case "sync":
		return runSync(cli, deps)
	case "profile list":
		return runProfileList(cli, deps)
	case "profile save <name>":
		return runProfileSave(cli, deps)
	case "version":
		return runVersion(out)
	}

	consoleUI(deps.ErrOut, false).Warn("unknown command")
	return exitUsage
}

func withDefaults(deps Dependencies) Dependencies {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.In == nil {
		deps.In = os.Stdin
	}
	if deps.Getenv == nil {
		deps.Getenv = os.Getenv
	}
	if deps.Prompter == nil {
		deps.Prompter = interaction.NewPrompter(deps.Getenv, deps.In, deps.ErrOut)
	}
	if deps.Interactive == nil {
		deps.Interactive = interaction.IsInteractive
	}
	if deps.ConfigPath == nil {
		deps.ConfigPath = config.DefaultPath
	}
	return deps
}

// loadEnvFile loads --env-file, or ./.env when present. Existing variables
// are never overridden.
func loadEnvFile(path string, deps Dependencies) {
	ui := consoleUI(deps.ErrOut, false)
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			ui.Warn(fmt.Sprintf("failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			ui.Warn(fmt.Sprintf("failed to load .env: %v", err))
		}
	}
}

func runVersion(out io.Writer) int {
	consoleUI(out, false).Info(version.GetVersion())
	return exitOK
}

func runNoArgs(out io.Writer) int {
	ui := consoleUI(out, false)
	ui.Info("Usage:")
	ui.Info(fmt.Sprintf("  %s sync -f <field> -i <file>      merge options from a file", meta.AppName))
	ui.Info(fmt.Sprintf("  %s sync -f <field> -e <file>      export current options", meta.AppName))
	ui.Info("")
	ui.Info(fmt.Sprintf("Try: %s --help", meta.AppName))
	return exitOK
}

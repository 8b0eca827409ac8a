// Where: internal/command/profile.go
// What: profile list/save command adapters.
package command

import (
	"fmt"
	"strings"

	"github.com/poruru-code/fieldsync/internal/infra/config"
)

func runProfileList(cli CLI, deps Dependencies) int {
	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	ui := consoleUI(deps.Out, false)
	names := cfg.ProfileNames()
	if len(names) == 0 {
		ui.Info("No profiles configured.")
		return exitOK
	}
	for _, name := range names {
		marker := " "
		if name == cfg.DefaultProfile {
			marker = "*"
		}
		profile := cfg.Profiles[name]
		ui.Info(strings.TrimRight(fmt.Sprintf("%s %-16s %-8s %s", marker, name, profile.Backend, profile.Address), " "))
	}
	return exitOK
}

// runProfileSave merges the connection flags into the named profile.
func runProfileSave(cli CLI, deps Dependencies) int {
	name := strings.TrimSpace(cli.Profiles.Save.Name)
	if name == "" {
		return exitWithError(deps.ErrOut, usageError{err: fmt.Errorf("profile name is required")})
	}
	path, _, err := configPath(cli, deps)
	if err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return exitWithError(deps.ErrOut, usageError{err: err})
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]config.Profile{}
	}

	profile := config.Overlay(cfg.Profiles[name], cli.flagProfile())
	if err := profile.Validate(); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	cfg.Profiles[name] = profile
	if cli.Profiles.Save.Default || len(cfg.Profiles) == 1 {
		cfg.DefaultProfile = name
	}
	if err := config.Save(path, cfg); err != nil {
		return exitWithError(deps.ErrOut, err)
	}
	consoleUI(deps.Out, false).Success(fmt.Sprintf("Saved profile %s to %s", name, path))
	return exitOK
}

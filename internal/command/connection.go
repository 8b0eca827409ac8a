// Where: internal/command/connection.go
// What: Connection settings resolution and backend construction.
// Why: Turn flags, env, profile, and prompts into one authenticated backend.
package command

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/poruru-code/fieldsync/internal/domain/fieldport"
	"github.com/poruru-code/fieldsync/internal/infra/config"
	"github.com/poruru-code/fieldsync/internal/infra/envutil"
	"github.com/poruru-code/fieldsync/internal/infra/iconik"
	"github.com/poruru-code/fieldsync/internal/infra/portal"
	"github.com/poruru-code/fieldsync/internal/infra/transport"
)

func (c CLI) flagProfile() config.Profile {
	return config.Profile{
		Backend:   strings.TrimSpace(c.Backend),
		Address:   strings.TrimSpace(c.Address),
		Port:      c.Port,
		AppID:     c.AppID,
		AuthToken: c.AuthToken,
		Username:  c.Username,
		Password:  c.Password,
	}
}

func configPath(cli CLI, deps Dependencies) (string, bool, error) {
	if path := strings.TrimSpace(cli.Config); path != "" {
		return path, true, nil
	}
	path, err := deps.ConfigPath()
	if err != nil {
		return "", false, usageError{err: err}
	}
	return path, false, nil
}

func loadConfig(cli CLI, deps Dependencies) (config.File, error) {
	path, explicit, err := configPath(cli, deps)
	if err != nil {
		return config.File{}, err
	}
	var cfg config.File
	if explicit {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(path)
	}
	if err != nil {
		return config.File{}, usageError{err: err}
	}
	return cfg, nil
}

// resolveConnection returns the effective settings and the profile name
// they came from.
func resolveConnection(cli CLI, deps Dependencies) (config.Profile, string, error) {
	cfg, err := loadConfig(cli, deps)
	if err != nil {
		return config.Profile{}, "", err
	}

	requested := strings.TrimSpace(cli.Profile)
	if requested == "" {
		requested = envutil.Lookup(deps.Getenv)(envutil.SuffixProfile)
	}
	name, err := config.SelectProfile(cfg, requested)
	if errors.Is(err, config.ErrProfileRequired) && deps.Interactive() {
		name, err = deps.Prompter.Select("Connection profile", cfg.ProfileNames())
	}
	if err != nil {
		return config.Profile{}, "", err
	}

	env, err := config.FromEnv(deps.Getenv)
	if err != nil {
		return config.Profile{}, "", err
	}
	resolved := config.Resolve(cfg.Profiles[name], env, cli.flagProfile())
	if err := resolved.Validate(); err != nil {
		return config.Profile{}, "", err
	}
	resolved, err = promptSecrets(resolved, deps)
	if err != nil {
		return config.Profile{}, "", err
	}
	return resolved, name, nil
}

func promptSecrets(profile config.Profile, deps Dependencies) (config.Profile, error) {
	missing := profile.MissingSecrets()
	if len(missing) == 0 {
		return profile, nil
	}
	if !deps.Interactive() {
		return config.Profile{}, fmt.Errorf("%w: missing %s for %s", config.ErrInvalidSettings, strings.Join(missing, ", "), profile.Backend)
	}

	var err error
	for _, name := range missing {
		switch name {
		case "app_id":
			profile.AppID, err = deps.Prompter.Input("iconik App ID", nil)
		case "auth_token":
			profile.AuthToken, err = deps.Prompter.Secret("iconik auth token")
		case "password":
			user := profile.Username
			if user == "" {
				user = portal.DefaultUsername
			}
			profile.Password, err = deps.Prompter.Secret(fmt.Sprintf("Portal password for %s", user))
		}
		if err != nil {
			return config.Profile{}, err
		}
	}
	if still := profile.MissingSecrets(); len(still) > 0 {
		return config.Profile{}, fmt.Errorf("%w: missing %s for %s", config.ErrInvalidSettings, strings.Join(still, ", "), profile.Backend)
	}
	return profile, nil
}

func newBackend(profile config.Profile, deps Dependencies, debug *log.Logger) (fieldport.Backend, error) {
	opts := []transport.Option{
		transport.WithHTTPClient(deps.HTTPClient),
		transport.WithDebugLogger(debug),
	}
	switch profile.Backend {
	case config.BackendIconik:
		session, err := iconik.NewSession(profile.Address, profile.AppID, profile.AuthToken, opts...)
		if err != nil {
			return nil, usageError{err: err}
		}
		return iconik.New(session), nil
	case config.BackendPortal:
		session, err := portal.NewSession(profile.Address, profile.Port, profile.Username, profile.Password, opts...)
		if err != nil {
			return nil, usageError{err: err}
		}
		return portal.New(session), nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalidSettings, profile.Backend)
	}
}

// Where: internal/infra/config/resolve.go
// What: Layered connection settings resolution.
// Why: Flags override FIELDSYNC_* env, env overrides the profile.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/poruru-code/fieldsync/internal/infra/envutil"
)

var (
	// ErrProfileRequired is returned when several profiles exist and none
	// was chosen.
	ErrProfileRequired = errors.New("profile is required")
	// ErrInvalidSettings is returned for incomplete or contradictory settings.
	ErrInvalidSettings = errors.New("invalid connection settings")
)

// SelectProfile picks the profile name to use. An explicit name must exist.
// Without one, the default profile or the only profile is used.
func SelectProfile(cfg File, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		if _, ok := cfg.Profiles[name]; !ok {
			return "", fmt.Errorf("%w: profile %q not found (available: %v)", ErrInvalidSettings, name, cfg.ProfileNames())
		}
		return name, nil
	}
	if cfg.DefaultProfile != "" {
		if _, ok := cfg.Profiles[cfg.DefaultProfile]; !ok {
			return "", fmt.Errorf("%w: default profile %q not found", ErrInvalidSettings, cfg.DefaultProfile)
		}
		return cfg.DefaultProfile, nil
	}
	switch len(cfg.Profiles) {
	case 0:
		return "", nil
	case 1:
		return cfg.ProfileNames()[0], nil
	default:
		return "", fmt.Errorf("%w: choose one of %v", ErrProfileRequired, cfg.ProfileNames())
	}
}

// FromEnv reads the FIELDSYNC_* connection variables through getenv.
func FromEnv(getenv func(string) string) (Profile, error) {
	lookup := envutil.Lookup(getenv)
	profile := Profile{
		Backend:   lookup(envutil.SuffixBackend),
		Address:   lookup(envutil.SuffixAddress),
		AppID:     lookup(envutil.SuffixAppID),
		AuthToken: lookup(envutil.SuffixAuthToken),
		Username:  lookup(envutil.SuffixUsername),
		Password:  lookup(envutil.SuffixPassword),
	}
	if raw := lookup(envutil.SuffixPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Profile{}, fmt.Errorf("%w: %s=%q is not a port", ErrInvalidSettings, envutil.HostEnvKey(envutil.SuffixPort), raw)
		}
		profile.Port = port
	}
	return profile, nil
}

// Overlay returns base with every non-empty field of top applied.
func Overlay(base, top Profile) Profile {
	if top.Backend != "" {
		base.Backend = top.Backend
	}
	if top.Address != "" {
		base.Address = top.Address
	}
	if top.Port != 0 {
		base.Port = top.Port
	}
	if top.AppID != "" {
		base.AppID = top.AppID
	}
	if top.AuthToken != "" {
		base.AuthToken = top.AuthToken
	}
	if top.Username != "" {
		base.Username = top.Username
	}
	if top.Password != "" {
		base.Password = top.Password
	}
	return base
}

// Resolve layers profile, env, and flags, lowest precedence first.
func Resolve(profile, env, flags Profile) Profile {
	return Overlay(Overlay(profile, env), flags)
}

// Validate checks the fields every backend needs. Credentials are checked
// later because they may still be prompted for.
func (p Profile) Validate() error {
	switch p.Backend {
	case BackendIconik:
	case BackendPortal:
		if strings.TrimSpace(p.Address) == "" {
			return fmt.Errorf("%w: portal requires an address", ErrInvalidSettings)
		}
	case "":
		return fmt.Errorf("%w: backend is required (%s or %s)", ErrInvalidSettings, BackendIconik, BackendPortal)
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidSettings, p.Backend)
	}
	if p.Port < 0 || p.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidSettings, p.Port)
	}
	return nil
}

// MissingSecrets lists the credential fields still empty for the backend.
func (p Profile) MissingSecrets() []string {
	var missing []string
	switch p.Backend {
	case BackendIconik:
		if p.AppID == "" {
			missing = append(missing, "app_id")
		}
		if p.AuthToken == "" {
			missing = append(missing, "auth_token")
		}
	case BackendPortal:
		if p.Password == "" {
			missing = append(missing, "password")
		}
	}
	return missing
}

// Where: internal/infra/config/profile.go
// What: Connection profile file load/save.
// Why: Keep backend addresses and credentials out of every command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poruru-code/fieldsync/internal/infra/envutil"
	"github.com/poruru-code/fieldsync/internal/infra/fileops"
	"github.com/poruru-code/fieldsync/internal/meta"
	"gopkg.in/yaml.v3"
)

// Backend names accepted in profiles, env, and flags.
const (
	BackendIconik = "iconik"
	BackendPortal = "portal"
)

// File is the ~/.fieldsync/config.yaml document.
type File struct {
	DefaultProfile string             `yaml:"default_profile,omitempty"`
	Profiles       map[string]Profile `yaml:"profiles,omitempty"`
}

// Profile holds connection settings for one backend instance. Empty fields
// fall through to the next layer during Resolve.
type Profile struct {
	Backend   string `yaml:"backend,omitempty"`
	Address   string `yaml:"address,omitempty"`
	Port      int    `yaml:"port,omitempty"`
	AppID     string `yaml:"app_id,omitempty"`
	AuthToken string `yaml:"auth_token,omitempty"`
	Username  string `yaml:"username,omitempty"`
	Password  string `yaml:"password,omitempty"`
}

// ProfileNames returns the profile names in sorted order.
func (f File) ProfileNames() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPath returns FIELDSYNC_CONFIG or ~/.fieldsync/config.yaml.
func DefaultPath() (string, error) {
	if path := envutil.GetHostEnv(envutil.SuffixConfig); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFileName), nil
}

// Load reads and validates the config file at path.
func Load(path string) (File, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	if strings.TrimSpace(string(payload)) == "" {
		return File{}, nil
	}
	if err := validateDocument(payload); err != nil {
		return File{}, fmt.Errorf("validate config %s: %w", path, err)
	}

	var cfg File
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return File{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields an empty File.
func LoadOptional(path string) (File, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return File{}, nil
	}
	return cfg, err
}

// Save writes cfg to path with owner-only permissions since profiles may
// contain credentials.
func Save(path string, cfg File) error {
	payload, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := fileops.WritePrivateFile(path, payload); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Where: internal/infra/config/config_test.go
// What: Tests for profile loading and layered resolution.
// Why: Keep precedence and schema errors stable.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadProfiles(t *testing.T) {
	path := writeConfig(t, `
default_profile: studio
profiles:
  studio:
    backend: portal
    address: 10.0.0.5
    port: 8080
    username: editor
  cloud:
    backend: iconik
    app_id: app
    auth_token: token
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultProfile != "studio" || len(cfg.Profiles) != 2 {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if got := cfg.Profiles["studio"]; got.Address != "10.0.0.5" || got.Port != 8080 || got.Username != "editor" {
		t.Fatalf("unexpected studio profile: %#v", got)
	}
	if names := cfg.ProfileNames(); !reflect.DeepEqual(names, []string{"cloud", "studio"}) {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown key":     "profiles:\n  a:\n    backend: iconik\n    token: x\n",
		"unknown backend": "profiles:\n  a:\n    backend: s3\n",
		"port type":       "profiles:\n  a:\n    backend: portal\n    port: high\n",
		"top level":       "profile: a\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil || !strings.Contains(err.Error(), "validate config") {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load optional: %v", err)
	}
	if len(cfg.Profiles) != 0 {
		t.Fatalf("expected empty config")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist from Load, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := File{
		DefaultProfile: "cloud",
		Profiles:       map[string]Profile{"cloud": {Backend: BackendIconik, AppID: "a", AuthToken: "t"}},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Fatalf("config mismatch: expected %#v, got %#v", cfg, loaded)
	}
}

func TestSelectProfile(t *testing.T) {
	two := File{Profiles: map[string]Profile{"a": {}, "b": {}}}
	if _, err := SelectProfile(two, ""); !errors.Is(err, ErrProfileRequired) {
		t.Fatalf("expected ErrProfileRequired, got %v", err)
	}
	if got, err := SelectProfile(two, "b"); err != nil || got != "b" {
		t.Fatalf("SelectProfile(b) = %q, %v", got, err)
	}
	if _, err := SelectProfile(two, "c"); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	two.DefaultProfile = "a"
	if got, _ := SelectProfile(two, ""); got != "a" {
		t.Fatalf("expected default profile, got %q", got)
	}
	one := File{Profiles: map[string]Profile{"only": {}}}
	if got, _ := SelectProfile(one, ""); got != "only" {
		t.Fatalf("expected single profile, got %q", got)
	}
	if got, err := SelectProfile(File{}, ""); err != nil || got != "" {
		t.Fatalf("empty config: %q, %v", got, err)
	}
}

func TestResolvePrecedence(t *testing.T) {
	profile := Profile{Backend: BackendPortal, Address: "profile-host", Port: 8080, Username: "profile-user", Password: "profile-pass"}
	env, err := FromEnv(func(key string) string {
		return map[string]string{
			"FIELDSYNC_ADDRESS":  "env-host",
			"FIELDSYNC_PORT":     "9090",
			"FIELDSYNC_USERNAME": "env-user",
		}[key]
	})
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	flags := Profile{Username: "flag-user"}

	got := Resolve(profile, env, flags)
	want := Profile{Backend: BackendPortal, Address: "env-host", Port: 9090, Username: "flag-user", Password: "profile-pass"}
	if got != want {
		t.Fatalf("Resolve() = %#v, want %#v", got, want)
	}
}

func TestFromEnvRejectsBadPort(t *testing.T) {
	_, err := FromEnv(func(key string) string {
		if key == "FIELDSYNC_PORT" {
			return "eighty"
		}
		return ""
	})
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestValidateAndMissingSecrets(t *testing.T) {
	if err := (Profile{}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected missing backend error, got %v", err)
	}
	if err := (Profile{Backend: BackendPortal}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected missing address error, got %v", err)
	}
	if err := (Profile{Backend: "ftp"}).Validate(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
	if err := (Profile{Backend: BackendIconik}).Validate(); err != nil {
		t.Fatalf("iconik needs no address: %v", err)
	}
	missing := Profile{Backend: BackendIconik, AppID: "a"}.MissingSecrets()
	if !reflect.DeepEqual(missing, []string{"auth_token"}) {
		t.Fatalf("unexpected missing secrets: %v", missing)
	}
	if got := (Profile{Backend: BackendPortal, Password: "x"}).MissingSecrets(); len(got) != 0 {
		t.Fatalf("unexpected missing secrets: %v", got)
	}
}

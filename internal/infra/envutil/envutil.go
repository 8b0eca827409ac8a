// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru-code/fieldsync/internal/meta"
)

// Env suffixes read by fieldsync.
const (
	SuffixProfile     = "PROFILE"
	SuffixConfig      = "CONFIG"
	SuffixBackend     = "BACKEND"
	SuffixAddress     = "ADDRESS"
	SuffixPort        = "PORT"
	SuffixAppID       = "APP_ID"
	SuffixAuthToken   = "AUTH_TOKEN"
	SuffixUsername    = "USERNAME"
	SuffixPassword    = "PASSWORD"
	SuffixS3Endpoint  = "S3_ENDPOINT"
	SuffixS3AccessKey = "S3_ACCESS_KEY"
	SuffixS3SecretKey = "S3_SECRET_KEY"
)

// HostEnvKey constructs a prefixed environment variable name.
// Example: HostEnvKey("ADDRESS") returns "FIELDSYNC_ADDRESS".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a prefixed environment variable with surrounding
// whitespace removed.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// Lookup adapts a lookup function to the prefixed naming scheme. A nil
// lookup reads the process environment.
func Lookup(getenv func(string) string) func(suffix string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	return func(suffix string) string {
		return strings.TrimSpace(getenv(HostEnvKey(suffix)))
	}
}

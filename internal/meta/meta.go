// Where: internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep the binary name, env prefix, and home directory in one place.
package meta

const (
	// Project Identity
	AppName   = "fieldsync"
	EnvPrefix = "FIELDSYNC"

	// Directory Layout
	HomeDir        = ".fieldsync"
	ConfigFileName = "config.yaml"
	LogFileName    = "fieldsync.log"
)

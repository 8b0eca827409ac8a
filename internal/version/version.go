// Where: internal/version/version.go
// What: Version information retrieval.
// Why: Report a release tag when stamped, otherwise the VCS revision.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is stamped at release time:
//
//	go build -ldflags "-X github.com/poruru-code/fieldsync/internal/version.Version=v1.2.0"
var Version string

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the stamped Version, else the short VCS revision with a
// "(dirty)" suffix for modified trees, else "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}

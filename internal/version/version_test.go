package version

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, ok }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestGetVersionPrefersStamp(t *testing.T) {
	prev := Version
	Version = "v1.4.0"
	t.Cleanup(func() { Version = prev })
	if got := GetVersion(); got != "v1.4.0" {
		t.Fatalf("unexpected version: %q", got)
	}
}

func TestGetVersionRevision(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
	}}, true)
	if got := GetVersion(); got != "0123456 (dirty)" {
		t.Fatalf("unexpected version: %q", got)
	}
}

func TestGetVersionDev(t *testing.T) {
	stubBuildInfo(t, nil, false)
	if got := GetVersion(); got != "dev" {
		t.Fatalf("unexpected version: %q", got)
	}
	stubBuildInfo(t, &debug.BuildInfo{}, true)
	if got := GetVersion(); got != "dev" {
		t.Fatalf("unexpected version: %q", got)
	}
}

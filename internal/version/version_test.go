package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()

	origVersion, origCommit, origDate, origRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = origVersion, origCommit, origDate, origRead
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestGetFromLdflags(t *testing.T) {
	stubBuildInfo(t, nil)
	Version, Commit, Date = "1.2.3", "0123456789abcdef", "2025-01-01T00:00:00Z"

	info := Get()
	if info.Version != "1.2.3" || info.ShortCommit() != "01234567" {
		t.Errorf("Get() = %+v", info)
	}
	if got := info.String(); !strings.HasPrefix(got, "vencordbg 1.2.3 (commit 01234567, built 2025-01-01T00:00:00Z, go") {
		t.Errorf("String() = %q", got)
	}
}

func TestGetFromBuildInfo(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "fedcba9876543210"},
			{Key: "vcs.time", Value: "2025-02-03T04:05:06Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})
	Version, Commit, Date = "dev", "", ""

	info := Get()
	if info.Version != "0.4.0" {
		t.Errorf("Version = %q, want 0.4.0", info.Version)
	}
	if !strings.Contains(info.String(), "commit fedcba98-dirty, built 2025-02-03T04:05:06Z") {
		t.Errorf("String() = %q", info.String())
	}
}

func TestGetLdflagsWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffffff"}},
	})
	Version, Commit, Date = "dev", "abc", ""

	info := Get()
	if info.Version != "dev" || info.Commit != "abc" {
		t.Errorf("Get() = %+v", info)
	}
}

func TestStringWithoutVCS(t *testing.T) {
	stubBuildInfo(t, nil)
	Version, Commit, Date = "dev", "", ""

	got := String()
	if !strings.HasPrefix(got, "vencordbg dev (go") {
		t.Errorf("String() = %q", got)
	}
}

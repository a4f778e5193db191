package version

import (
	"strings"
	"testing"
)

func stashBuildVars(t *testing.T) {
	t.Helper()
	origVersion, origCommit, origBranch, origTime := Version, GitCommit, GitBranch, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime = origVersion, origCommit, origBranch, origTime
	})
}

func TestCurrent_DevDefaults(t *testing.T) {
	stashBuildVars(t)
	Version, GitCommit, GitBranch, BuildTime = "dev", "", "", ""

	info := Current()
	if info.Version != "dev" {
		t.Errorf("Version = %q", info.Version)
	}
	if info.IsRelease {
		t.Error("dev must not be a release")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should come from build info")
	}
}

func TestCurrent_LdflagsWin(t *testing.T) {
	stashBuildVars(t)
	Version, GitCommit, GitBranch, BuildTime = "1.2.0", "ab3f9c1", "main", "2026-08-01T00:00:00Z"

	info := Current()
	if !info.IsRelease {
		t.Error("1.2.0 should be a release")
	}
	if info.GitCommit != "ab3f9c1" {
		t.Errorf("GitCommit = %q, ldflags value must not be overwritten", info.GitCommit)
	}
	if info.BuildTime != "2026-08-01T00:00:00Z" {
		t.Errorf("BuildTime = %q", info.BuildTime)
	}
}

func TestCurrent_DirtyVersionIsNotRelease(t *testing.T) {
	stashBuildVars(t)
	Version = "1.2.0-dirty"

	if Current().IsRelease {
		t.Error("a dirty version must not be a release")
	}
}

func TestShort(t *testing.T) {
	stashBuildVars(t)
	Version, GitCommit, GitBranch, BuildTime = "1.2.0", "ab3f9c1", "", ""

	s := Short()
	if !strings.HasPrefix(s, "1.2.0-ab3f9c1") {
		t.Errorf("Short() = %q", s)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("ab3f9c1de4567890"); got != "ab3f9c1" {
		t.Errorf("shortCommit = %q", got)
	}
	if got := shortCommit("ab3f"); got != "ab3f" {
		t.Errorf("short input must pass through, got %q", got)
	}
}

package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuild(t *testing.T, version, commit, built string) {
	t.Helper()
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	t.Cleanup(func() {
		Version, GitCommit, BuildTime = origVersion, origCommit, origBuildTime
	})
	Version, GitCommit, BuildTime = version, commit, built
}

func TestString(t *testing.T) {
	setBuild(t, "1.2.3", "abc123def", "2026-01-15T10:30:00Z")

	assert.Equal(t,
		"graphchat 1.2.3 (commit: abc123def, built: 2026-01-15T10:30:00Z, go: "+runtime.Version()+")",
		String())
}

func TestInfo(t *testing.T) {
	setBuild(t, "2.0.0", "fedcba987", "2026-02-20T15:45:30Z")

	assert.Equal(t, BuildInfo{
		Version:   "2.0.0",
		Commit:    "fedcba987",
		BuildTime: "2026-02-20T15:45:30Z",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}, Info())
}

func TestDefaultValues(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, GitCommit)
	assert.NotEmpty(t, BuildTime)
}

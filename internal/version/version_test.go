package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	noInfo := func() (*debug.BuildInfo, bool) { return nil, false }
	installed := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Path: "github.com/cristianoliveira/railsql", Version: "v0.3.1"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "4f2a9c1e8b7d"}},
		}, true
	}
	devel := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}

	tests := []struct {
		name    string
		version string
		commit  string
		info    func() (*debug.BuildInfo, bool)
		want    string
	}{
		{"development without build info", "development", "unknown", noInfo, "development"},
		{"ldflags win", "1.0.0", "abc1234", installed, "1.0.0+abc1234"},
		{"go install build", "development", "unknown", installed, "v0.3.1+4f2a9c1"},
		{"ldflags version, vcs commit", "2.0.0", "unknown", installed, "2.0.0+4f2a9c1"},
		{"local devel build", "development", "unknown", devel, "development"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit, origRead := Version, Commit, readBuildInfo
			t.Cleanup(func() { Version, Commit, readBuildInfo = origVersion, origCommit, origRead })

			Version, Commit, readBuildInfo = tt.version, tt.commit, tt.info
			assert.Equal(t, tt.want, String())
		})
	}
}

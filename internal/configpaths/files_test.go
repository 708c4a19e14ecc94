package configpaths

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePathsUserFirst(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		wantJSON bool
		wantYAML bool
		wantTOML bool
	}{
		{name: "json", user: "/tmp/a.json", wantJSON: true},
		{name: "yaml", user: "/tmp/a.yaml", wantYAML: true},
		{name: "yml", user: "/tmp/a.yml", wantYAML: true},
		{name: "toml", user: "/tmp/a.toml", wantTOML: true},
		{name: "no extension goes to json", user: "/tmp/a", wantJSON: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, y, to := ConfigCandidatePaths(tt.user)
			assert.Equal(t, tt.wantJSON, j[0] == tt.user)
			assert.Equal(t, tt.wantYAML, y[0] == tt.user)
			assert.Equal(t, tt.wantTOML, to[0] == tt.user)
		})
	}
}

func TestConfigCandidatePathsIncludesConfigHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	_, _, tomlPaths := ConfigCandidatePaths("")
	assert.Contains(t, tomlPaths, filepath.Join(dir, "vtouch", "run.toml"))
	assert.Contains(t, tomlPaths, "/etc/vtouch/replay.toml")
}

func TestDefaultNamedConfigPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG only")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	p, err := DefaultNamedConfigPath("run", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vtouch", "run.yaml"), p)
}

func TestFindUserConfig(t *testing.T) {
	t.Setenv(EnvConfig, "/env/vtouch.toml")
	assert.Equal(t, "/a.json", FindUserConfig([]string{"run", "--config=/a.json"}))
	assert.Equal(t, "/b.yaml", FindUserConfig([]string{"--config", "/b.yaml", "run"}))
	assert.Equal(t, "/env/vtouch.toml", FindUserConfig([]string{"run"}))
}

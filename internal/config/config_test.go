package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mineplex-ops/fleet-scheduler/internal/region"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultRedisConfig(), cfg.RedisConn)
	assert.Equal(t, Linux, cfg.SysInfo.System)
	assert.Empty(t, cfg.DedicatedServers.Servers)
}

// chdir points Load/writeDefault's fixed "config.toml" path at a scratch
// directory for the duration of the test, since the path is not
// parameterized (matching the original's fixed-path Config::get_config).
func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestLoad_MissingFileWritesDefault(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := Load()
	assert.Equal(t, Default(), cfg)

	_, err := os.Stat("config.toml")
	assert.NoError(t, err)
}

func TestLoad_UnparseableFileWritesDefault(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not valid toml +++ ["), 0o644))

	cfg := Load()
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	written := Config{
		RedisConn: RedisConfig{Address: "10.0.0.1", Port: "6380"},
		SysInfo:   System{System: Mac},
		MonitorInfo: MonitorInfo{
			ScriptsPath: "/srv/scripts",
			WorldsPath:  "/srv/worlds",
			ConfigPath:  "/srv/configs",
		},
		DedicatedServers: DedicatedServersConfig{
			Servers: []DedicatedServerConfig{
				{Name: "node-1", Region: region.US, CPU: 4, RAM: 2048},
			},
		},
	}
	f, err := os.Create(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	require.NoError(t, toml.NewEncoder(f).Encode(written))
	require.NoError(t, f.Close())

	cfg := Load()
	assert.Equal(t, written, cfg)
}

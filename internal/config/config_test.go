package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	cfg, err := Load(dir, nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err, "default config.yaml is created on first run")

	assert.Equal(t, dir, cfg.Dir)
	assert.Equal(t, filepath.Join(dir, "tables"), cfg.TablesDir)
	assert.Equal(t, filepath.Join(dir, "gocube.db"), cfg.DBPath)
	assert.Equal(t, uint64(2<<30), cfg.MemoryLimit)
	assert.Equal(t, uint8(4), cfg.Width)
	assert.Equal(t, []int{6, 6}, cfg.EdgeGroups)
	assert.Equal(t, 20, cfg.MaxDepth)
	assert.Equal(t, "idastar", cfg.Algorithm)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "memory_limit: 512MB\nwidth: 8\nedge_groups: [7, 5]\nalgorithm: astar\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(512_000_000), cfg.MemoryLimit)
	assert.Equal(t, uint8(8), cfg.Width)
	assert.Equal(t, []int{7, 5}, cfg.EdgeGroups)
	assert.Equal(t, "astar", cfg.Algorithm)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("workers: 2\n"), 0o644))
	t.Setenv("GOCUBE_WORKERS", "6")
	t.Setenv("GOCUBE_EDGE_GROUPS", "4,4,4")

	cfg, err := Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, []int{4, 4, 4}, cfg.EdgeGroups)
}

func TestFlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GOCUBE_MAX_DEPTH", "12")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-depth", 20, "")
	flags.String("memory-limit", "2GiB", "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--max-depth", "9", "--memory-limit", "1GiB"}))

	cfg, err := Load(dir, flags)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.MaxDepth)
	assert.Equal(t, uint64(1<<30), cfg.MemoryLimit)
}

func TestUnsetFlagKeepsLowerLayers(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GOCUBE_MAX_DEPTH", "12")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-depth", 20, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(dir, flags)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.MaxDepth)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for _, yaml := range []string{
		"width: 5\n",
		"memory_limit: lots\n",
		"workers: -1\n",
		"edge_groups: [six]\n",
	} {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
		_, err := Load(dir, nil)
		assert.Error(t, err, yaml)
	}
}

func TestDefaultDirHonoursEnv(t *testing.T) {
	t.Setenv(EnvHome, "/srv/gocube")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/srv/gocube", dir)
}

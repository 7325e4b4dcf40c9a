package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 16, cfg.Analysis.BlockSize)
	assert.Equal(t, 100, cfg.Analysis.MaxShift)
	assert.Equal(t, 10, cfg.Analysis.Window)
	assert.Equal(t, 5, cfg.Analysis.TopK)
	assert.True(t, cfg.Render.Color)
	assert.False(t, cfg.History.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[analysis]
block_size = 32
max_shift = 200

[render]
color = false
group_width = 4

[history]
enabled = true
path = "/tmp/binview-test.db"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 32, cfg.Analysis.BlockSize)
	assert.Equal(t, 200, cfg.Analysis.MaxShift)
	// Unset keys keep their defaults.
	assert.Equal(t, 10, cfg.Analysis.Window)
	assert.False(t, cfg.Render.Color)
	assert.Equal(t, 4, cfg.Render.GroupWidth)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/binview-test.db", cfg.History.Path)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Analysis, cfg.Analysis)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[analysis]
block_size = -1

[logging]
level = "shout"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis.block_size")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("BINVIEW_BLOCK_SIZE", "64")
	t.Setenv("BINVIEW_TOP_K", "not-a-number")
	t.Setenv("NO_COLOR", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, 64, cfg.Analysis.BlockSize)
	// Unparseable values are ignored.
	assert.Equal(t, 5, cfg.Analysis.TopK)
	assert.False(t, cfg.Render.Color)
}

func TestValidationErrors_Message(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "bad"},
		{Field: "b", Message: "worse"},
	}
	assert.Equal(t, "config: a: bad; config: b: worse", errs.Error())
	assert.Empty(t, ValidationErrors{}.Error())
}

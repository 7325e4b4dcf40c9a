// Package config handles configuration loading and validation for binview.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/justuswilhelm/binview/internal/analysis"
)

// Config holds the complete binview configuration.
type Config struct {
	// Analysis parameters for the core engines.
	Analysis AnalysisConfig `toml:"analysis" json:"analysis" yaml:"analysis"`

	// Render configuration for terminal output.
	Render RenderConfig `toml:"render" json:"render" yaml:"render"`

	// History configuration for the scan store.
	History HistoryConfig `toml:"history" json:"history" yaml:"history"`

	// Logging configuration.
	Logging LoggingConfig `toml:"logging" json:"logging" yaml:"logging"`
}

// AnalysisConfig holds the core analysis parameters.
type AnalysisConfig struct {
	// BlockSize is the chunk width in bytes for entropy and hexdump
	// analysis.
	BlockSize int `toml:"block_size" json:"block_size" yaml:"block_size"`

	// MaxShift is the upper bound on autocorrelation shifts evaluated.
	MaxShift int `toml:"max_shift" json:"max_shift" yaml:"max_shift"`

	// Window is the number of byte comparisons per shift.
	Window int `toml:"window" json:"window" yaml:"window"`

	// TopK is the number of periodicity candidates reported.
	TopK int `toml:"top_k" json:"top_k" yaml:"top_k"`
}

// Params converts the section into analysis parameters.
func (a AnalysisConfig) Params() analysis.Params {
	return analysis.Params{
		BlockSize: a.BlockSize,
		MaxShift:  a.MaxShift,
		Window:    a.Window,
		TopK:      a.TopK,
	}
}

// RenderConfig holds terminal output configuration.
type RenderConfig struct {
	// Color enables ANSI color output. The NO_COLOR environment
	// variable and the -no-color flag both override this.
	Color bool `toml:"color" json:"color" yaml:"color"`

	// GroupWidth is the number of bytes per spaced hex group.
	GroupWidth int `toml:"group_width" json:"group_width" yaml:"group_width"`
}

// HistoryConfig holds scan-history store configuration.
type HistoryConfig struct {
	// Enabled records every completed analysis in the scan store.
	Enabled bool `toml:"enabled" json:"enabled" yaml:"enabled"`

	// Path is the SQLite database path. Empty means the platform
	// default under the binview data directory.
	Path string `toml:"path" json:"path" yaml:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error".
	Level string `toml:"level" json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format" json:"format" yaml:"format"`

	// Output is "stderr" or "stdout".
	Output string `toml:"output" json:"output" yaml:"output"`
}

// Load reads the configuration file at path, falling back to defaults
// when the file does not exist. Environment overrides are applied and
// the result validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides overlays BINVIEW_* environment variables onto the
// configuration. Unparseable values are ignored in favor of the file
// value.
func (c *Config) ApplyEnvOverrides() {
	if v, ok := envInt("BINVIEW_BLOCK_SIZE"); ok {
		c.Analysis.BlockSize = v
	}
	if v, ok := envInt("BINVIEW_MAX_SHIFT"); ok {
		c.Analysis.MaxShift = v
	}
	if v, ok := envInt("BINVIEW_WINDOW"); ok {
		c.Analysis.Window = v
	}
	if v, ok := envInt("BINVIEW_TOP_K"); ok {
		c.Analysis.TopK = v
	}
	if v := os.Getenv("BINVIEW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BINVIEW_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		c.Render.Color = false
	}
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/justuswilhelm/binview/internal/analysis"
)

// Default returns the default configuration. The analysis defaults are
// the canonical fixed values; no terminal-derived heuristics apply.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			BlockSize: analysis.DefaultBlockSize,
			MaxShift:  analysis.DefaultMaxShift,
			Window:    analysis.DefaultWindow,
			TopK:      analysis.DefaultTopK,
		},
		Render: RenderConfig{
			Color:      true,
			GroupWidth: 8,
		},
		History: HistoryConfig{
			Enabled: false,
			Path:    filepath.Join(PlatformDataDir(), "history.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// DefaultPath returns the platform-specific default config file path.
func DefaultPath() string {
	return filepath.Join(PlatformConfigDir(), "config.toml")
}

// PlatformDataDir returns the platform-specific data directory.
//
// Platform paths:
//   - macOS:   ~/Library/Application Support/binview/
//   - Linux:   ~/.local/share/binview/ (or $XDG_DATA_HOME)
//   - Windows: %APPDATA%\binview\
//
// Falls back to ~/.binview if platform detection fails.
func PlatformDataDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "binview")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "binview")
		}
		return fallbackDir()
	default:
		if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
			return filepath.Join(dataHome, "binview")
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return fallbackDir()
		}
		return filepath.Join(home, ".local", "share", "binview")
	}
}

// PlatformConfigDir returns the platform-specific config directory.
//
// Platform paths:
//   - macOS:   ~/Library/Application Support/binview/
//   - Linux:   ~/.config/binview/ (or $XDG_CONFIG_HOME)
//   - Windows: %APPDATA%\binview\
func PlatformConfigDir() string {
	switch runtime.GOOS {
	case "darwin", "windows":
		return PlatformDataDir()
	default:
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "binview")
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return fallbackDir()
		}
		return filepath.Join(home, ".config", "binview")
	}
}

func fallbackDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".binview"
	}
	return filepath.Join(home, ".binview")
}

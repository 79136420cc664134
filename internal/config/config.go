// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/zim/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger      logger.Config `toml:"logger"`       // [logger] table
	Editor      EditorConfig  `toml:"editor"`       // Editor-specific settings
	Theme       ThemeConfig   `toml:"theme"`        // UI colours
	KeyBindings KeyBindings   `toml:"key_bindings"` // Per-mode binding tables
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	MaxHistory      int  `toml:"max_history"`
	LineNumbers     bool `toml:"line_numbers"`
	PollIntervalMs  int  `toml:"poll_interval_ms"`
	// StartInFinder opens the file finder when no path is given.
	StartInFinder bool `toml:"start_in_finder"`
}

// ThemeConfig holds UI colours as "#rrggbb" strings or tcell colour names.
type ThemeConfig struct {
	Background        string `toml:"background"`
	Foreground        string `toml:"foreground"`
	Selection         string `toml:"selection"`
	Cursor            string `toml:"cursor"`
	LineNumber        string `toml:"line_number"`
	StatusLineBg      string `toml:"status_line_bg"`
	StatusLineFg      string `toml:"status_line_fg"`
	Modified          string `toml:"modified"`
	DiagnosticError   string `toml:"diagnostic_error"`
	DiagnosticWarning string `toml:"diagnostic_warning"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			MaxHistory:      DefaultMaxHistory,
			LineNumbers:     true,
			PollIntervalMs:  DefaultPollIntervalMs,
			StartInFinder:   true,
		},
		Theme:       DefaultTheme(),
		KeyBindings: DefaultKeyBindings(),
	}
}

// DefaultTheme is a dark palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		Background:        "#1e1e2e",
		Foreground:        "#d4d4d4",
		Selection:         "#3a3d5c",
		Cursor:            "#f5e0dc",
		LineNumber:        "#6c7086",
		StatusLineBg:      "#313244",
		StatusLineFg:      "#cdd6f4",
		Modified:          "#f9e2af",
		DiagnosticError:   "#f38ba8",
		DiagnosticWarning: "#fab387",
	}
}

// DefaultConfigPath returns ~/.config/zim/config.toml, or "" when the user
// config directory is unknown.
func DefaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	// Binding tables are decoded on their own so a file can rebind a single
	// command without dropping the rest of the defaults.
	defaults := cfg.KeyBindings
	cfg.KeyBindings = KeyBindings{}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		cfg.KeyBindings = defaults
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	cfg.KeyBindings = defaults.Merge(cfg.KeyBindings)
	logger.Infof("Loaded configuration from: %s", filePath)
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.PollIntervalMs <= 0 {
		c.Editor.PollIntervalMs = defaults.Editor.PollIntervalMs
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		logger.Warnf("Unknown log level '%s', using '%s'", c.Logger.LogLevel, defaults.Logger.LogLevel)
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	c.Theme.fillFrom(defaults.Theme)
}

func (t *ThemeConfig) fillFrom(d ThemeConfig) {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&t.Background, d.Background)
	fill(&t.Foreground, d.Foreground)
	fill(&t.Selection, d.Selection)
	fill(&t.Cursor, d.Cursor)
	fill(&t.LineNumber, d.LineNumber)
	fill(&t.StatusLineBg, d.StatusLineBg)
	fill(&t.StatusLineFg, d.StatusLineFg)
	fill(&t.Modified, d.Modified)
	fill(&t.DiagnosticError, d.DiagnosticError)
	fill(&t.DiagnosticWarning, d.DiagnosticWarning)
}

// LoadConfig loads defaults, then the file, then flag overrides, and
// validates the result. An empty configFilePath means DefaultConfigPath.
// On a file error the returned config still holds usable values.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultConfigPath()
	}

	var loadErr error
	if effectivePath != "" {
		loadErr = loadFromFile(effectivePath, cfg)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, loadErr
}

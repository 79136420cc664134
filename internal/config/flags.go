// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/zim/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	TabWidth        *int
	ScrollOff       *int
	EnableTags      *string
	DisableTags     *string
	DisablePkgs     *string
	SystemClipboard *bool

	fs *flag.FlagSet
}

// DefineFlags sets up the flags on fs (flag.CommandLine when nil).
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.TabWidth = fs.Int("tabwidth", 0, "Number of spaces per tab - Overrides config file")               // 0 means unset
	f.ScrollOff = fs.Int("scrolloff", -1, "Lines of context above/below cursor - Overrides config file") // -1 means unset
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", SystemClipboard, "Mirror yanks to the system clipboard")
}

// ParseFlags defines and parses the process flags.
// It returns the remaining non-flag arguments (e.g., the file path).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(nil)
	flag.Parse()
	return flag.Args()
}

// ParseArgs defines flags on a fresh set and parses args. Used by tests.
func (f *Flags) ParseArgs(args []string) ([]string, error) {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	f.DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // "-" is valid
		case "tabwidth":
			if *f.TabWidth > 0 {
				cfg.Editor.TabWidth = *f.TabWidth
			}
		case "scrolloff":
			if *f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = *f.ScrollOff
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			if tags := splitCommaList(*f.EnableTags); tags != nil {
				cfg.Logger.EnabledTags = tags
			}
		case "log-disable-tags":
			if tags := splitCommaList(*f.DisableTags); tags != nil {
				cfg.Logger.DisabledTags = tags
			}
		case "log-disable-packages":
			if pkgs := splitCommaList(*f.DisablePkgs); pkgs != nil {
				cfg.Logger.DisabledPackages = pkgs
			}
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// cmd/zim/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // for fatal errors before the logger is ready
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/bethropolis/zim/internal/app"
	"github.com/bethropolis/zim/internal/config"
	"github.com/bethropolis/zim/internal/logger"
)

func main() {
	var flags config.Flags
	args := flags.ParseFlags()

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if cfgErr != nil {
		stlog.Printf("Warning: %v (using defaults)", cfgErr)
	}

	logOutput, closeLog, err := openLogOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s", config.AppName, config.Version)
	if cfgErr != nil {
		logger.Warnf("Config: %v", cfgErr)
	}
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting empty.")
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		logger.Errorf("stdout is not a terminal")
		fmt.Fprintf(os.Stderr, "%s: stdout is not a terminal\n", config.AppName)
		os.Exit(1)
	}

	zimApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}

	if err := zimApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// openLogOutput opens path for appending. "-" is stderr and an empty path
// means zim.log in the user cache directory.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return io.Discard, func() {}, nil
		}
		dir := filepath.Join(cacheDir, config.ConfigDirName)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory '%s': %w", dir, err)
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file '%s': %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

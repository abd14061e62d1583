package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/pfxdev/pfx/internal/catalog"
	"github.com/pfxdev/pfx/internal/config"
	"github.com/pfxdev/pfx/internal/engine"
	"github.com/pfxdev/pfx/internal/fsops"
	"github.com/pfxdev/pfx/internal/mounter"
	"github.com/pfxdev/pfx/internal/prefs"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	// Ensure the opt directory and its reserved entries exist
	if err := settings.Paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	logger := newLogger()

	// Create real implementations
	fs := fsops.NewRealFS()
	cat := catalog.New(fs, settings.Paths.Opt)
	store := prefs.NewFileStore(fs, settings.Paths.Record)
	m := mounter.NewOverlayMounter(settings.MountBinary, settings.UnmountBinary, logger)
	orch := mounter.NewOrchestrator(m, settings.Paths.Base, settings.Paths.Work, settings.Paths.Prefix, logger)

	return engine.New(fs, cat, store, orch, settings.Paths, logger), nil
}

// newLogger creates the CLI logger; --verbose raises it to debug.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

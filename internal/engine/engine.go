// Package engine provides the core business logic for pfx operations.
//
// The engine package acts as the orchestration layer between CLI
// commands and lower-level operations. Every command follows the same
// sequence: load the persisted record, optionally mutate it, resolve
// the layer set, remount the prefix, and save the record.
package engine

import (
	"github.com/charmbracelet/log"

	"github.com/pfxdev/pfx/internal/catalog"
	"github.com/pfxdev/pfx/internal/config"
	"github.com/pfxdev/pfx/internal/fsops"
	"github.com/pfxdev/pfx/internal/mounter"
	"github.com/pfxdev/pfx/internal/prefs"
)

// Engine orchestrates all pfx operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs      fsops.FS
	catalog *catalog.Catalog
	store   prefs.Store
	orch    *mounter.Orchestrator
	paths   config.Paths
	logger  *log.Logger
}

// New creates a new Engine with the given dependencies.
func New(
	fs fsops.FS,
	cat *catalog.Catalog,
	store prefs.Store,
	orch *mounter.Orchestrator,
	paths config.Paths,
	logger *log.Logger,
) *Engine {
	return &Engine{
		fs:      fs,
		catalog: cat,
		store:   store,
		orch:    orch,
		paths:   paths,
		logger:  logger,
	}
}

// Prefix returns the live prefix mount point path.
func (e *Engine) Prefix() string {
	return e.paths.Prefix
}

// snapshot loads the persisted record and scans the catalog, the common
// preamble of every operation.
func (e *Engine) snapshot() (*prefs.Config, []catalog.Program, error) {
	cfg, err := e.store.Load()
	if err != nil {
		return nil, nil, err
	}

	programs, err := e.catalog.All()
	if err != nil {
		return nil, nil, err
	}

	return cfg, programs, nil
}

// hasProgram reports whether any version of the named program exists in
// the catalog snapshot.
func hasProgram(programs []catalog.Program, name string) bool {
	for _, p := range programs {
		if p.Name == name {
			return true
		}
	}
	return false
}

// hasVersion reports whether the exact name/version pair exists in the
// catalog snapshot.
func hasVersion(programs []catalog.Program, name, version string) bool {
	for _, p := range programs {
		if p.Name == name && p.Version == version {
			return true
		}
	}
	return false
}

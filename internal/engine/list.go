package engine

import (
	"context"
	"fmt"

	"github.com/pfxdev/pfx/internal/resolver"
)

// ProgramStatus describes one discovered program/version and how it
// participates in the current composition.
type ProgramStatus struct {
	// Name is the program name
	Name string `json:"name"`

	// Version is the discovered version
	Version string `json:"version"`

	// Path is the program directory
	Path string `json:"path"`

	// Mounted indicates this exact version is a chosen lower layer
	Mounted bool `json:"mounted"`

	// Pinned indicates a persisted override selects this exact version
	Pinned bool `json:"pinned"`

	// Excluded indicates the program name is excluded from the prefix
	Excluded bool `json:"excluded"`

	// Shadowed indicates this version lost to another: an earlier
	// catalog entry for the same name, or a pin on a different version
	Shadowed bool `json:"shadowed"`
}

// List reports every discovered program/version and its composition
// status, optionally filtered to a single program name. Read-only: no
// remount, no save.
func (e *Engine) List(ctx context.Context, name string) ([]ProgramStatus, error) {
	cfg, programs, err := e.snapshot()
	if err != nil {
		return nil, err
	}

	if name != "" && !hasProgram(programs, name) {
		return nil, fmt.Errorf("%w: %s", ErrProgramNotFound, name)
	}

	set := resolver.Resolve(programs, cfg, nil)
	mounted := make(map[string]string, len(set.Lower))
	for _, p := range set.Lower {
		mounted[p.Name] = p.Version
	}

	statuses := make([]ProgramStatus, 0, len(programs))
	for _, p := range programs {
		if name != "" && p.Name != name {
			continue
		}

		pinned, hasPin := cfg.Override(p.Name)
		isMounted := mounted[p.Name] == p.Version
		excluded := cfg.IsExcluded(p.Name)
		statuses = append(statuses, ProgramStatus{
			Name:     p.Name,
			Version:  p.Version,
			Path:     p.Path,
			Mounted:  isMounted,
			Pinned:   hasPin && pinned == p.Version,
			Excluded: excluded,
			Shadowed: !isMounted && !excluded,
		})
	}

	return statuses, nil
}

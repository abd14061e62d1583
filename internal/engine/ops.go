package engine

import (
	"context"
	"fmt"

	"github.com/pfxdev/pfx/internal/catalog"
	"github.com/pfxdev/pfx/internal/resolver"
)

// Mount recomposes the prefix from the current catalog and record.
// The record is saved even though nothing changed, to keep the on-disk
// form canonical.
func (e *Engine) Mount(ctx context.Context) error {
	cfg, programs, err := e.snapshot()
	if err != nil {
		return err
	}

	set := resolver.Resolve(programs, cfg, nil)
	e.logger.Debug("resolved layer set", "lower", len(set.Lower))
	if err := e.orch.Remount(set); err != nil {
		return err
	}

	return e.store.Save(cfg)
}

// Install remounts the prefix so that new files land in the given
// program/version directory, creating it if needed, and makes that
// version the persisted default.
func (e *Engine) Install(ctx context.Context, name, version string) error {
	if err := catalog.ValidateIdentifier(name); err != nil {
		return err
	}
	if err := catalog.ValidateIdentifier(version); err != nil {
		return err
	}

	cfg, programs, err := e.snapshot()
	if err != nil {
		return err
	}

	path := e.catalog.Path(name, version)
	if err := e.fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create program directory: %w", err)
	}

	cfg.SetOverride(name, version)
	cfg.Include(name)

	upper := &catalog.Program{Name: name, Version: version, Path: path}
	set := resolver.Resolve(programs, cfg, upper)
	if err := e.orch.Remount(set); err != nil {
		return err
	}

	return e.store.Save(cfg)
}

// Uninstall excludes the named program from the prefix and remounts
// without it. Referencing a program absent from the catalog is an
// error and leaves the record untouched.
func (e *Engine) Uninstall(ctx context.Context, name string) error {
	cfg, programs, err := e.snapshot()
	if err != nil {
		return err
	}

	if !hasProgram(programs, name) {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, name)
	}

	cfg.Exclude(name)
	cfg.UnsetOverride(name)

	set := resolver.Resolve(programs, cfg, nil)
	if err := e.orch.Remount(set); err != nil {
		return err
	}

	return e.store.Save(cfg)
}

// Set pins the named program to a version present in the catalog and
// remounts. The exact name/version pair must exist on disk.
func (e *Engine) Set(ctx context.Context, name, version string) error {
	cfg, programs, err := e.snapshot()
	if err != nil {
		return err
	}

	if !hasVersion(programs, name, version) {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, catalog.EncodeDirName(name, version))
	}

	cfg.SetOverride(name, version)
	cfg.Include(name)

	set := resolver.Resolve(programs, cfg, nil)
	if err := e.orch.Remount(set); err != nil {
		return err
	}

	return e.store.Save(cfg)
}

// Unset removes a persisted version pin and remounts. A name with no
// pin is reported without touching the record.
func (e *Engine) Unset(ctx context.Context, name string) error {
	cfg, programs, err := e.snapshot()
	if err != nil {
		return err
	}

	if !cfg.UnsetOverride(name) {
		return fmt.Errorf("%w: %s", ErrNoOverride, name)
	}

	set := resolver.Resolve(programs, cfg, nil)
	if err := e.orch.Remount(set); err != nil {
		return err
	}

	return e.store.Save(cfg)
}

// Use remounts with a temporary selection without persisting it: with a
// version, a transient pin; without, a transient lift of any exclusion
// or pin for the name. The record on disk is never written.
func (e *Engine) Use(ctx context.Context, name, version string) error {
	cfg, programs, err := e.snapshot()
	if err != nil {
		return err
	}

	if version != "" {
		if !hasVersion(programs, name, version) {
			return fmt.Errorf("%w: %s", ErrProgramNotFound, catalog.EncodeDirName(name, version))
		}
		cfg.SetOverride(name, version)
	} else {
		if !hasProgram(programs, name) {
			return fmt.Errorf("%w: %s", ErrProgramNotFound, name)
		}
		cfg.UnsetOverride(name)
	}
	cfg.Include(name)

	set := resolver.Resolve(programs, cfg, nil)
	return e.orch.Remount(set)
}

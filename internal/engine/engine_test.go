package engine

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pfxdev/pfx/internal/catalog"
	"github.com/pfxdev/pfx/internal/config"
	"github.com/pfxdev/pfx/internal/fsops"
	"github.com/pfxdev/pfx/internal/mounter"
	"github.com/pfxdev/pfx/internal/prefs"
)

// newTestEngine builds an engine over a temp opt directory seeded with
// the given program directories, backed by a FakeMounter.
func newTestEngine(t *testing.T, dirs ...string) (*Engine, *mounter.FakeMounter, config.Paths) {
	t.Helper()

	opt := t.TempDir()
	for _, d := range dirs {
		if err := os.Mkdir(filepath.Join(opt, d), 0755); err != nil {
			t.Fatalf("Mkdir(%q) error = %v", d, err)
		}
	}

	paths := config.PathsIn(opt, filepath.Join(opt, ".prefix"))
	if err := paths.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories() error = %v", err)
	}

	fs := fsops.NewRealFS()
	logger := log.New(io.Discard)
	fake := mounter.NewFakeMounter()
	orch := mounter.NewOrchestrator(fake, paths.Base, paths.Work, paths.Prefix, logger)
	eng := New(fs, catalog.New(fs, opt), prefs.NewFileStore(fs, paths.Record), orch, paths, logger)

	return eng, fake, paths
}

func loadRecord(t *testing.T, paths config.Paths) *prefs.Config {
	t.Helper()
	cfg, err := prefs.NewFileStore(fsops.NewRealFS(), paths.Record).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

func TestMount_EmptyCatalog(t *testing.T) {
	eng, fake, paths := newTestEngine(t)

	if err := eng.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	call, ok := fake.LastMount()
	if !ok {
		t.Fatal("no mount call recorded")
	}
	if !reflect.DeepEqual(call.LowerDirs, []string{paths.Base}) {
		t.Errorf("lower dirs = %v, want just the base layer", call.LowerDirs)
	}

	// Record is normalized to disk even with no mutation.
	if _, err := os.Stat(paths.Record); err != nil {
		t.Errorf("expected record file to be written: %v", err)
	}
}

func TestMount_ComposesCatalog(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21", "go|1.22", "node|20.11")

	if err := eng.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	call, _ := fake.LastMount()
	want := []string{
		paths.Base,
		filepath.Join(paths.Opt, "go|1.21"),
		filepath.Join(paths.Opt, "node|20.11"),
	}
	if !reflect.DeepEqual(call.LowerDirs, want) {
		t.Errorf("lower dirs = %v, want %v", call.LowerDirs, want)
	}
}

func TestMount_MalformedCatalogFatal(t *testing.T) {
	eng, fake, _ := newTestEngine(t, "broken-entry")

	err := eng.Mount(context.Background())
	if !errors.Is(err, catalog.ErrMalformedEntry) {
		t.Fatalf("expected ErrMalformedEntry, got %v", err)
	}
	if len(fake.MountCalls) != 0 {
		t.Error("expected no mount after catalog error")
	}
}

func TestInstall(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21")

	if err := eng.Install(context.Background(), "rust", "1.79"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	// Program directory was created.
	dir := filepath.Join(paths.Opt, "rust|1.79")
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected program directory: %v", err)
	}

	// Upper layer and work dir supplied to the mount.
	call, _ := fake.LastMount()
	if call.UpperDir != dir {
		t.Errorf("upper dir = %q, want %q", call.UpperDir, dir)
	}
	if call.WorkDir != paths.Work {
		t.Errorf("work dir = %q, want %q", call.WorkDir, paths.Work)
	}
	// The installed program is not duplicated in the lower set.
	want := []string{paths.Base, filepath.Join(paths.Opt, "go|1.21")}
	if !reflect.DeepEqual(call.LowerDirs, want) {
		t.Errorf("lower dirs = %v, want %v", call.LowerDirs, want)
	}

	// The version became the persisted default.
	cfg := loadRecord(t, paths)
	if v, _ := cfg.Override("rust"); v != "1.79" {
		t.Errorf("override = %q, want 1.79", v)
	}
}

func TestInstall_ClearsExclusion(t *testing.T) {
	eng, _, paths := newTestEngine(t, "go|1.21")

	if err := eng.Uninstall(context.Background(), "go"); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if err := eng.Install(context.Background(), "go", "1.22"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	cfg := loadRecord(t, paths)
	if cfg.IsExcluded("go") {
		t.Error("install should clear the exclusion")
	}
}

func TestInstall_InvalidIdentifier(t *testing.T) {
	eng, fake, _ := newTestEngine(t)

	err := eng.Install(context.Background(), "bad|name", "1.0")
	if !errors.Is(err, catalog.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
	if len(fake.MountCalls) != 0 {
		t.Error("expected no mount for invalid identifier")
	}
}

func TestInstall_ReservedName(t *testing.T) {
	eng, fake, paths := newTestEngine(t)

	err := eng.Install(context.Background(), ".hidden", "1.0")
	if !errors.Is(err, catalog.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
	if len(fake.MountCalls) != 0 {
		t.Error("expected no mount for reserved name")
	}
	// Nothing created: no program directory, no record.
	if _, statErr := os.Stat(filepath.Join(paths.Opt, ".hidden|1.0")); !os.IsNotExist(statErr) {
		t.Error("expected no directory for reserved name")
	}
	if _, statErr := os.Stat(paths.Record); !os.IsNotExist(statErr) {
		t.Error("expected record to be left untouched")
	}
}

func TestUninstall(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21", "node|20.11")

	if err := eng.Set(context.Background(), "go", "1.21"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := eng.Uninstall(context.Background(), "go"); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}

	call, _ := fake.LastMount()
	want := []string{paths.Base, filepath.Join(paths.Opt, "node|20.11")}
	if !reflect.DeepEqual(call.LowerDirs, want) {
		t.Errorf("lower dirs = %v, want %v", call.LowerDirs, want)
	}

	cfg := loadRecord(t, paths)
	if !cfg.IsExcluded("go") {
		t.Error("expected go to be excluded")
	}
	if _, ok := cfg.Override("go"); ok {
		t.Error("uninstall should drop the override")
	}
}

func TestUninstall_UnknownProgram(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21")

	err := eng.Uninstall(context.Background(), "node")
	if !errors.Is(err, ErrProgramNotFound) {
		t.Fatalf("expected ErrProgramNotFound, got %v", err)
	}
	if len(fake.MountCalls) != 0 {
		t.Error("expected no remount on unknown program")
	}
	// Record untouched: never created.
	if _, err := os.Stat(paths.Record); !os.IsNotExist(err) {
		t.Error("expected record to be left untouched")
	}
}

func TestSet(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21", "go|1.22")

	if err := eng.Set(context.Background(), "go", "1.22"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	call, _ := fake.LastMount()
	want := []string{paths.Base, filepath.Join(paths.Opt, "go|1.22")}
	if !reflect.DeepEqual(call.LowerDirs, want) {
		t.Errorf("lower dirs = %v, want %v", call.LowerDirs, want)
	}

	cfg := loadRecord(t, paths)
	if v, _ := cfg.Override("go"); v != "1.22" {
		t.Errorf("override = %q, want 1.22", v)
	}
}

func TestSet_UnknownVersion(t *testing.T) {
	eng, fake, _ := newTestEngine(t, "go|1.21")

	err := eng.Set(context.Background(), "go", "9.99")
	if !errors.Is(err, ErrProgramNotFound) {
		t.Fatalf("expected ErrProgramNotFound, got %v", err)
	}
	if len(fake.MountCalls) != 0 {
		t.Error("expected no remount on unknown version")
	}
}

func TestUnset(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21", "go|1.22")

	if err := eng.Set(context.Background(), "go", "1.22"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := eng.Unset(context.Background(), "go"); err != nil {
		t.Fatalf("Unset() error = %v", err)
	}

	// Back to first-in-catalog-order.
	call, _ := fake.LastMount()
	want := []string{paths.Base, filepath.Join(paths.Opt, "go|1.21")}
	if !reflect.DeepEqual(call.LowerDirs, want) {
		t.Errorf("lower dirs = %v, want %v", call.LowerDirs, want)
	}

	cfg := loadRecord(t, paths)
	if _, ok := cfg.Override("go"); ok {
		t.Error("expected override to be removed")
	}
}

func TestUnset_NoOverride(t *testing.T) {
	eng, fake, _ := newTestEngine(t, "go|1.21")

	err := eng.Unset(context.Background(), "go")
	if !errors.Is(err, ErrNoOverride) {
		t.Fatalf("expected ErrNoOverride, got %v", err)
	}
	if len(fake.MountCalls) != 0 {
		t.Error("expected no remount when nothing was unset")
	}
}

func TestUse_DoesNotPersist(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21", "go|1.22")

	if err := eng.Use(context.Background(), "go", "1.22"); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	call, _ := fake.LastMount()
	want := []string{paths.Base, filepath.Join(paths.Opt, "go|1.22")}
	if !reflect.DeepEqual(call.LowerDirs, want) {
		t.Errorf("lower dirs = %v, want %v", call.LowerDirs, want)
	}

	// The temporary selection must not be written to disk.
	if _, err := os.Stat(paths.Record); !os.IsNotExist(err) {
		t.Error("expected record to be left unwritten by use")
	}
}

func TestUse_WithoutVersionLiftsExclusion(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21")

	if err := eng.Uninstall(context.Background(), "go"); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if err := eng.Use(context.Background(), "go", ""); err != nil {
		t.Fatalf("Use() error = %v", err)
	}

	call, _ := fake.LastMount()
	want := []string{paths.Base, filepath.Join(paths.Opt, "go|1.21")}
	if !reflect.DeepEqual(call.LowerDirs, want) {
		t.Errorf("lower dirs = %v, want %v", call.LowerDirs, want)
	}

	// The persisted exclusion survives.
	cfg := loadRecord(t, paths)
	if !cfg.IsExcluded("go") {
		t.Error("expected persisted exclusion to survive use")
	}
}

func TestMountFailureSurfaced(t *testing.T) {
	eng, fake, paths := newTestEngine(t, "go|1.21")
	fake.MountErr = errors.New("fuse: device not found")

	err := eng.Mount(context.Background())
	if err == nil {
		t.Fatal("expected mount failure to surface")
	}
	if !errors.Is(err, fake.MountErr) {
		t.Errorf("expected wrapped mount error, got %v", err)
	}
	// Failure aborts before the save step.
	if _, statErr := os.Stat(paths.Record); !os.IsNotExist(statErr) {
		t.Error("expected no record save after mount failure")
	}
}

func TestList(t *testing.T) {
	eng, _, _ := newTestEngine(t, "go|1.21", "go|1.22", "node|20.11", "zsh|5.9")

	if err := eng.Set(context.Background(), "go", "1.22"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := eng.Uninstall(context.Background(), "zsh"); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}

	statuses, err := eng.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	byKey := map[string]ProgramStatus{}
	for _, s := range statuses {
		byKey[s.Name+"|"+s.Version] = s
	}

	if s := byKey["go|1.21"]; s.Mounted || s.Pinned || !s.Shadowed {
		t.Errorf("go|1.21 should be shadowed by the pin: %+v", s)
	}
	if s := byKey["go|1.22"]; !s.Mounted || !s.Pinned || s.Shadowed {
		t.Errorf("go|1.22 should be mounted and pinned: %+v", s)
	}
	if s := byKey["node|20.11"]; !s.Mounted || s.Pinned || s.Excluded || s.Shadowed {
		t.Errorf("node|20.11 should be mounted only: %+v", s)
	}
	if s := byKey["zsh|5.9"]; s.Mounted || !s.Excluded || s.Shadowed {
		t.Errorf("zsh|5.9 should be excluded, not shadowed: %+v", s)
	}
}

func TestList_FilterAndUnknown(t *testing.T) {
	eng, _, _ := newTestEngine(t, "go|1.21", "go|1.22", "node|20.11")

	statuses, err := eng.List(context.Background(), "go")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(statuses) != 2 {
		t.Errorf("expected 2 go entries, got %d", len(statuses))
	}

	_, err = eng.List(context.Background(), "rust")
	if !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("expected ErrProgramNotFound, got %v", err)
	}
}

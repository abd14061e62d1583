// Package mounter drives the external overlay mount mechanism.
//
// The Mounter interface abstracts the mount/unmount capability;
// OverlayMounter shells out to fuse-overlayfs (or whatever binaries the
// settings name), and FakeMounter records calls for tests. The
// Orchestrator on top realizes a resolved LayerSet as the live prefix.
package mounter

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Mounter provides an abstraction for overlay mount operations.
type Mounter interface {
	// Mount composes lowerDirs (first entry has highest precedence) at
	// target. upperDir and workDir are either both empty (read-only
	// composition) or both set (writable composition).
	Mount(lowerDirs []string, upperDir, workDir, target string) error

	// Unmount detaches whatever is mounted at target.
	Unmount(target string) error
}

// OverlayMounter implements Mounter by invoking external binaries.
// The mount binary must accept `-o <options> <target>` and the unmount
// binary `-u <target>` (fuse-overlayfs and fusermount3 conventions).
type OverlayMounter struct {
	mountBin   string
	unmountBin string
	logger     *log.Logger
}

// NewOverlayMounter creates a new OverlayMounter.
func NewOverlayMounter(mountBin, unmountBin string, logger *log.Logger) *OverlayMounter {
	return &OverlayMounter{
		mountBin:   mountBin,
		unmountBin: unmountBin,
		logger:     logger,
	}
}

// Mount invokes the mount binary with a colon-joined lowerdir option and
// optional upperdir/workdir options.
func (m *OverlayMounter) Mount(lowerDirs []string, upperDir, workDir, target string) error {
	opts := "lowerdir=" + strings.Join(lowerDirs, ":")
	if upperDir != "" {
		opts += ",upperdir=" + upperDir + ",workdir=" + workDir
	}

	m.logger.Debug("mounting overlay", "bin", m.mountBin, "opts", opts, "target", target)

	cmd := exec.Command(m.mountBin, "-o", opts, target)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %s: %w", m.mountBin, strings.TrimSpace(string(out)), err)
	}

	return nil
}

// Unmount invokes the unmount binary against the target.
func (m *OverlayMounter) Unmount(target string) error {
	m.logger.Debug("unmounting", "bin", m.unmountBin, "target", target)

	cmd := exec.Command(m.unmountBin, "-u", target)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %s: %w", m.unmountBin, strings.TrimSpace(string(out)), err)
	}

	return nil
}

// MountCall records the arguments of one FakeMounter.Mount invocation.
type MountCall struct {
	LowerDirs []string
	UpperDir  string
	WorkDir   string
	Target    string
}

// FakeMounter implements Mounter by recording calls, for testing.
type FakeMounter struct {
	MountCalls   []MountCall
	UnmountCalls []string

	// MountErr is returned by every Mount call when set.
	MountErr error

	// UnmountErr is returned by every Unmount call when set.
	UnmountErr error
}

// NewFakeMounter creates a new FakeMounter.
func NewFakeMounter() *FakeMounter {
	return &FakeMounter{}
}

// Mount records the call and returns the configured error.
func (m *FakeMounter) Mount(lowerDirs []string, upperDir, workDir, target string) error {
	call := MountCall{
		LowerDirs: append([]string{}, lowerDirs...),
		UpperDir:  upperDir,
		WorkDir:   workDir,
		Target:    target,
	}
	m.MountCalls = append(m.MountCalls, call)
	return m.MountErr
}

// Unmount records the call and returns the configured error.
func (m *FakeMounter) Unmount(target string) error {
	m.UnmountCalls = append(m.UnmountCalls, target)
	return m.UnmountErr
}

// LastMount returns the most recent recorded mount call.
func (m *FakeMounter) LastMount() (MountCall, bool) {
	if len(m.MountCalls) == 0 {
		return MountCall{}, false
	}
	return m.MountCalls[len(m.MountCalls)-1], true
}

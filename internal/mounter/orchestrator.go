package mounter

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/pfxdev/pfx/internal/resolver"
)

// Orchestrator realizes a resolved LayerSet as the live prefix mount.
// Every Remount transitions the target through unmounted to mounted;
// there is no partially-mounted state exposed to callers.
type Orchestrator struct {
	m      Mounter
	base   string
	work   string
	target string
	logger *log.Logger
}

// NewOrchestrator creates an Orchestrator over a Mounter and the
// reserved base/work directories and prefix target.
func NewOrchestrator(m Mounter, base, work, target string, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		m:      m,
		base:   base,
		work:   work,
		target: target,
		logger: logger,
	}
}

// Remount replaces the live prefix with the given layer set. The
// preceding unmount is best-effort: an already-unmounted target is not
// an error. A failed mount is surfaced verbatim and leaves the target
// unmounted; there is no retry.
func (o *Orchestrator) Remount(set resolver.LayerSet) error {
	if err := o.m.Unmount(o.target); err != nil {
		o.logger.Debug("ignoring unmount failure", "target", o.target, "error", err)
	}

	// The overlay mechanism requires at least one lower directory even
	// when zero programs are installed; the dummy base layer is always
	// listed first.
	lowers := make([]string, 0, len(set.Lower)+1)
	lowers = append(lowers, o.base)
	for _, p := range set.Lower {
		lowers = append(lowers, p.Path)
	}

	upper, work := "", ""
	if set.Upper != nil {
		upper = set.Upper.Path
		work = o.work
	}

	if err := o.m.Mount(lowers, upper, work, o.target); err != nil {
		return fmt.Errorf("failed to mount prefix: %w", err)
	}

	return nil
}

// Target returns the prefix mount point path.
func (o *Orchestrator) Target() string {
	return o.target
}

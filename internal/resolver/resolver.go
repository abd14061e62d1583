// Package resolver computes which program directories compose the
// prefix mount.
//
// Resolution is a pure function of a catalog snapshot, a config
// snapshot, and an optional upper program. It performs no I/O, so the
// same inputs always produce the same layer set.
package resolver

import (
	"github.com/pfxdev/pfx/internal/catalog"
	"github.com/pfxdev/pfx/internal/prefs"
)

// LayerSet is the resolved composition of the prefix mount: the ordered
// read-only lower layers plus an optional writable upper layer.
type LayerSet struct {
	// Lower is the ordered sequence of read-only layers. No two entries
	// share a program name.
	Lower []catalog.Program

	// Upper is the single directory receiving writes while a program is
	// being installed, or nil.
	Upper *catalog.Program
}

// Resolve computes the LayerSet for a catalog snapshot, a config, and an
// optional upper program.
//
// Programs are considered in catalog order. For each name the first
// version encountered wins unless an override pins a different one.
// Excluded names never contribute a layer; exclusion dominates any
// override. A program matching the upper's name is represented solely by
// the upper layer. An override pointing at a version absent from the
// catalog yields no layer for that name.
func Resolve(programs []catalog.Program, cfg *prefs.Config, upper *catalog.Program) LayerSet {
	chosen := make(map[string]struct{}, len(programs))
	lower := []catalog.Program{}

	for _, p := range programs {
		if upper != nil && p.Name == upper.Name {
			continue
		}
		if _, ok := chosen[p.Name]; ok {
			continue
		}
		if cfg.IsExcluded(p.Name) {
			continue
		}
		if pinned, ok := cfg.Override(p.Name); ok && p.Version != pinned {
			continue
		}

		chosen[p.Name] = struct{}{}
		lower = append(lower, p)
	}

	return LayerSet{Lower: lower, Upper: upper}
}

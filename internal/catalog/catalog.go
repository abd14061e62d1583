// Package catalog discovers installed program/version directories.
//
// The catalog home (the "opt" directory) holds one directory per
// installed program/version, named <name>|<version>. Entries starting
// with the reserved dot marker are bookkeeping (base layer, work area,
// prefix mount point, persisted record) and are never scanned.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pfxdev/pfx/internal/config"
	"github.com/pfxdev/pfx/internal/fsops"
)

// Catalog lists the programs installed under an opt directory.
type Catalog struct {
	fs  fsops.FS
	opt string
}

// New creates a Catalog over the given opt directory.
func New(fs fsops.FS, opt string) *Catalog {
	return &Catalog{fs: fs, opt: opt}
}

// All returns every discovered program in lexicographic directory-name
// order, so repeated scans resolve identically. Reserved entries and
// plain files are skipped; a directory name that does not parse as
// name|version is a malformed-catalog error.
func (c *Catalog) All() ([]Program, error) {
	entries, err := c.fs.ReadDir(c.opt)
	if err != nil {
		return nil, fmt.Errorf("failed to read opt directory: %w", err)
	}

	programs := make([]Program, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), config.ReservedPrefix) {
			continue
		}
		if !entry.IsDir() {
			continue
		}

		name, version, err := ParseDirName(entry.Name())
		if err != nil {
			return nil, err
		}

		programs = append(programs, Program{
			Name:    name,
			Version: version,
			Path:    filepath.Join(c.opt, entry.Name()),
		})
	}

	return programs, nil
}

// Path returns the directory a program name/version pair maps to,
// whether or not it exists on disk yet.
func (c *Catalog) Path(name, version string) string {
	return filepath.Join(c.opt, EncodeDirName(name, version))
}

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfxdev/pfx/internal/config"
)

// Separator joins a program name and version into a directory name.
const Separator = "|"

var (
	// ErrMalformedEntry indicates a catalog directory name that does not
	// parse as name|version.
	ErrMalformedEntry = errors.New("malformed catalog entry")

	// ErrInvalidIdentifier indicates a program name or version that cannot
	// be encoded as a directory name.
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

// Program is the identity of a discovered install: a name, a version,
// and the directory holding its files. Programs are derived from
// directory names and never persisted.
type Program struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// String returns the name|version form of the program.
func (p Program) String() string {
	return p.Name + Separator + p.Version
}

// ValidateIdentifier checks that a name or version component can be
// round-tripped through a directory name. A leading dot would collide
// with the reserved bookkeeping entries and hide the program from
// catalog scans, so it is rejected outright.
func ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	}
	if strings.HasPrefix(id, config.ReservedPrefix) {
		return fmt.Errorf("%w: %q must not start with the reserved marker %q", ErrInvalidIdentifier, id, config.ReservedPrefix)
	}
	if strings.Contains(id, Separator) {
		return fmt.Errorf("%w: %q must not contain %q", ErrInvalidIdentifier, id, Separator)
	}
	if strings.ContainsAny(id, "/\\") {
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidIdentifier, id)
	}
	return nil
}

// EncodeDirName returns the directory name for a program name and version.
func EncodeDirName(name, version string) string {
	return name + Separator + version
}

// ParseDirName splits a catalog directory name into its name and version
// components. The name must contain exactly one separator with non-empty
// components on both sides.
func ParseDirName(dirName string) (name, version string, err error) {
	parts := strings.Split(dirName, Separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q does not split into name%sversion", ErrMalformedEntry, dirName, Separator)
	}
	return parts[0], parts[1], nil
}

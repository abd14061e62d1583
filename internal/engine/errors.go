package engine

import "errors"

var (
	// ErrProgramNotFound indicates an operation referenced a program
	// name or version absent from the catalog.
	ErrProgramNotFound = errors.New("program not found")

	// ErrNoOverride indicates unset was called for a program with no
	// pinned version.
	ErrNoOverride = errors.New("no override set")
)

//go:build mage

// Package main provides build targets for the pfx project using Mage.
//
// Usage:
//
//	mage build     Compile pfx binary to bin/
//	mage test      Run all tests
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install pfx to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "pfx"
	binaryDir  = "bin"
	cmdDir     = "./cmd/pfx"
)

// Build compiles the pfx binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm(binaryDir)
}

// Install installs the pfx binary to GOPATH/bin.
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", cmdDir)
}

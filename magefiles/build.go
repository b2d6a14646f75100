//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the storyboard module using Mage.
//
// Usage:
//
//	mage build          Compile the storyboard binary to bin/
//	mage buildCGO       Compile with the cgo sqlite driver
//	mage test:all       Run every test
//	mage test:unit      Run tests with -short
//	mage test:backends  Run the storage backend suites under both drivers
//	mage test:cover     Write coverage.out and print the summary
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install storyboard to GOPATH/bin
//	mage stats          Print Go line counts and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "storyboard"
	binaryDir  = "bin"
	cmdDir     = "./cmd/storyboard"

	// cgoTag selects the mattn/go-sqlite3 driver over modernc.org/sqlite.
	cgoTag = "cgo_sqlite"
)

// Build compiles the storyboard binary to bin/ with the pure Go sqlite driver.
func Build() error {
	return build(map[string]string{"CGO_ENABLED": "0"})
}

// BuildCGO compiles the storyboard binary with the cgo sqlite driver.
func BuildCGO() error {
	return build(map[string]string{"CGO_ENABLED": "1"}, "-tags", cgoTag)
}

func build(env map[string]string, extra ...string) error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := append([]string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}, extra...)
	return sh.RunWithV(env, binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{binaryDir, coverProfile} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

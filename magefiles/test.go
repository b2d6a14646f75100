//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// backendPkgs are the packages that exercise a storage engine directly.
var backendPkgs = []string{
	"./internal/docstore/...",
	"./internal/sqlite/...",
	"./pkg/storyboard/...",
}

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Unit runs the tests in short mode.
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-short", "./...")
}

// Backends runs the storage suites once per sqlite driver.
func (Test) Backends() error {
	if err := sh.RunWithV(map[string]string{"CGO_ENABLED": "0"}, binGo, append([]string{"test", "-count=1"}, backendPkgs...)...); err != nil {
		return err
	}
	args := append([]string{"test", "-count=1", "-tags", cgoTag}, backendPkgs...)
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, binGo, args...)
}

// Cover writes a coverage profile and prints the per-function summary.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}

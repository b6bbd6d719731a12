//go:build mage

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import "github.com/magefile/mage/mg"

type Test mg.Namespace

// Unit runs the full unit test suite with the race detector enabled.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Cover runs the test suite with coverage profiling.
func (Test) Cover() error {
	_, err := executeCmd("go", withArgs("test", "-coverprofile=coverage.out", "./..."), withStream())
	return err
}

// Vet runs go vet across the module.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Lint runs staticcheck if it is installed, skipping quietly otherwise -
// developer machines vary in which linters they've installed locally.
func Lint() error {
	if _, err := executeCmd("staticcheck", withArgs("./...")); err != nil {
		return err
	}
	return nil
}

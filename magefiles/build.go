//go:build mage

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import "github.com/magefile/mage/mg"

type Build mg.Namespace

// Effectc builds the effectc CLI binary.
func (Build) Effectc() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/effectc", "./cmd/effectc"), withStream())
	return err
}

// All builds every command in the module.
func (Build) All() error {
	mg.Deps(Build{}.Effectc)
	return nil
}

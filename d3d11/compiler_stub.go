// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build !windows

package d3d11

// newPlatformCompiler has no vendor DLL to load outside Windows; the
// package still builds and links everywhere so Linker's platform-neutral
// logic can be unit tested against a fake Device/HLSLCompiler pair.
func newPlatformCompiler() (HLSLCompiler, error) {
	return nil, ErrPlatformUnsupported
}

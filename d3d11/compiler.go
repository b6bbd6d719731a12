// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package d3d11

import "github.com/pkg/errors"

// ErrPlatformUnsupported is returned by NewCompiler on a GOOS other
// than windows, and by compiler_windows.go's loader when neither
// vendor DLL can be loaded (spec §4.4 step 1, §7 "environment error").
var ErrPlatformUnsupported = errors.New("d3d11: no d3dcompiler library available on this platform")

// HLSLCompiler invokes the vendor HLSL compiler to produce shader
// bytecode. Compile returns the compiled bytes, the compiler's raw
// error/warning log (non-empty even on success if the shader produced
// warnings), and a non-nil error only on a hard compile failure.
type HLSLCompiler interface {
	Compile(src []byte, entryPoint, target string) (bytecode []byte, log string, err error)
}

// NewCompiler loads the best available d3dcompiler library, preferring
// version 47 and falling back to 43 (spec §4.4 step 1). On a non-Windows
// GOOS this always fails with ErrPlatformUnsupported - compiler_stub.go
// supplies that implementation so the package still builds everywhere.
func NewCompiler() (HLSLCompiler, error) {
	return newPlatformCompiler()
}

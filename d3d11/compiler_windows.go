// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build windows

package d3d11

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// dllNames lists the vendor compiler libraries to try, in preference
// order (spec §4.4 step 1: "prefer version 47, fall back to 43").
var dllNames = []string{"d3dcompiler_47.dll", "d3dcompiler_43.dll"}

// newPlatformCompiler loads the first available d3dcompiler DLL and
// resolves its D3DCompile entry point.
func newPlatformCompiler() (HLSLCompiler, error) {
	var lastErr error
	for _, name := range dllNames {
		dll := windows.NewLazySystemDLL(name)
		if err := dll.Load(); err != nil {
			lastErr = err
			continue
		}
		proc := dll.NewProc("D3DCompile")
		if err := proc.Find(); err != nil {
			lastErr = err
			continue
		}
		return &windowsCompiler{dll: name, compile: proc}, nil
	}
	return nil, errors.Wrap(ErrPlatformUnsupported, lastErr.Error())
}

type windowsCompiler struct {
	dll     string
	compile *windows.LazyProc
}

type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type id3dBlob struct {
	vtbl *struct {
		iUnknownVtbl
		GetBufferPointer uintptr
		GetBufferSize    uintptr
	}
}

func (b *id3dBlob) bufferPointer() uintptr {
	ptr, _, _ := syscall.Syscall(b.vtbl.GetBufferPointer, 1, uintptr(unsafe.Pointer(b)), 0, 0)
	return ptr
}

func (b *id3dBlob) bufferSize() uintptr {
	sz, _, _ := syscall.Syscall(b.vtbl.GetBufferSize, 1, uintptr(unsafe.Pointer(b)), 0, 0)
	return sz
}

func (b *id3dBlob) bytes() []byte {
	n := int(b.bufferSize())
	ptr := b.bufferPointer()
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
}

func (b *id3dBlob) release() {
	syscall.Syscall(b.vtbl.Release, 1, uintptr(unsafe.Pointer(b)), 0, 0)
}

// Compile invokes D3DCompile with strictness enabled (spec §4.4 step 2),
// following the same vtable-call shape Gio's Direct3D backend uses to
// drive the same entry point.
func (c *windowsCompiler) Compile(src []byte, entryPoint, target string) ([]byte, string, error) {
	if len(src) == 0 {
		return nil, "", errors.New("d3d11: empty HLSL source")
	}
	var code, compileErrors *id3dBlob
	entry0 := append([]byte(entryPoint), 0)
	target0 := append([]byte(target), 0)

	const d3dcompileEnableStrictness = 1 << 11
	r, _, _ := c.compile.Call(
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(len(src)),
		0, // pSourceName
		0, // pDefines
		0, // pInclude
		uintptr(unsafe.Pointer(&entry0[0])),
		uintptr(unsafe.Pointer(&target0[0])),
		d3dcompileEnableStrictness,
		0, // Flags2
		uintptr(unsafe.Pointer(&code)),
		uintptr(unsafe.Pointer(&compileErrors)),
	)

	var log string
	if compileErrors != nil {
		log = string(compileErrors.bytes())
		compileErrors.release()
	}
	if r != 0 {
		return nil, log, fmt.Errorf("d3d11: D3DCompile(%s): %#x: %s", entryPoint, uint32(r), log)
	}
	out := append([]byte(nil), code.bytes()...)
	code.release()
	return out, log, nil
}

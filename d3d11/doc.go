// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package d3d11 links a compiled effect module onto a Direct3D 11 device:
// it compiles HLSL entry points to bytecode, allocates/reuses textures,
// SRVs, RTVs, samplers and a dynamic constant buffer, and builds
// per-pass state objects. The device itself is never touched directly -
// every operation goes through the small Device/Texture interfaces in
// resources.go, so Linker runs (and is tested) on any GOOS; only
// compiler_windows.go talks to a real Windows DLL.
package d3d11

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl lowers a compiled effect module (package ir) into HLSL
// source text, implementing codegen.Generator.
//
// Backend walks a module the same way spirv.Backend does, in the order
// codegen.Lower drives it: structs, textures, samplers and uniforms are
// declared first, then every function is rendered to a block of HLSL
// text, then each technique's entry points are wrapped in a stub
// carrying the semantics DirectX expects.
//
//	backend := hlsl.NewBackend(hlsl.DefaultOptions())
//	result, err := codegen.Lower(module, backend)
//	source := result.HLSL
//
// Unlike the SPIR-V backend, HLSL is driven purely by text assembly:
// each function body is built by buffering every block's rendered
// statements and, once the whole function has been walked, recursively
// re-assembling them into nested if/else, for (;;) and switch constructs following
// the SelectionHint/LoopHint/SwitchHint merge points the IR announces
// (see statements.go). Resource binding follows HLSL's
// register(t#/s#/b#, space#) convention, with Binding.Group mapping to
// the register space and Binding.Slot to the register index.
//
// # Shader Model
//
// Options.ShaderModel selects the target profile string (vs_5_1,
// ps_6_0, ...) and nothing else; the package emits Shader Model 5.1
// compatible syntax regardless, since the generated code never uses a
// 6.0+-only feature.
package hlsl

// Package spirv lowers a compiled effect module (package ir) into a
// binary SPIR-V module, implementing codegen.Generator.
//
// Backend walks a module one function at a time, in the order
// codegen.Lower drives it: every struct, texture, sampler and uniform is
// declared first, then each function's blocks are emitted with a
// handle->id table keeping track of where every ir.ValueHandle ended up,
// then every technique's entry points are wrapped with the interface
// globals a stage needs (Input/Output variables decorated by semantic).
//
//	backend := spirv.NewBackend(spirv.DefaultOptions())
//	result, err := codegen.Lower(module, backend)
//
// The package also exposes a low-level binary writer, ModuleBuilder, for
// constructing SPIR-V modules instruction by instruction:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_3)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingLogical, spirv.MemoryModelGLSL450)
//	floatType := builder.AddTypeFloat(32)
//	vec4Type := builder.AddTypeVector(floatType, 4)
//	binary := builder.Build()
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv

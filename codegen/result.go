package codegen

import "github.com/gogpu/effectc/ir"

// Result is the backend-neutral output of a lowering pass: at most one of
// HLSL/SPIRV is populated, selected by which Generator produced it, plus
// the resource descriptors copied through unchanged so a caller (the
// d3d11 linker, a disassembler, a test) never has to re-derive them from
// the source ir.Module.
type Result struct {
	HLSL  string
	SPIRV []byte

	Textures []ir.Texture
	Samplers []ir.Sampler
	Uniforms []ir.Uniform

	Diagnostics Diagnostics
}

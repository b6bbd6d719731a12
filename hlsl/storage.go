// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/effectc/ir"
)

func (b *Backend) writeStructDecls(out *strings.Builder) {
	for _, def := range b.structs {
		fmt.Fprintf(out, "struct %s {\n", b.structName(def.ID))
		for _, m := range def.Members {
			interp := InterpolationToHLSL(m.Type.Qualifiers)
			if interp != "" {
				interp += " "
			}
			if m.Semantic != "" {
				fmt.Fprintf(out, "    %s%s %s : %s;\n", interp, b.typeString(m.Type), Escape(m.Name), m.Semantic)
			} else {
				fmt.Fprintf(out, "    %s%s %s;\n", interp, b.typeString(m.Type), Escape(m.Name))
			}
		}
		out.WriteString("};\n\n")
	}
}

// writeResourceDecls declares every texture and sampler as a HLSL
// resource variable bound to a register. Textures carry no explicit
// binding in the IR (spec §3 "Texture") so they're assigned sequential
// t# registers in declaration order; samplers carry a real (group, slot)
// Binding that maps directly to (space, register) - falling back to the
// next free slot on a collision when Options.FakeMissingBindings is set.
func (b *Backend) writeResourceDecls(out *strings.Builder) {
	for i, tex := range b.textures {
		bt := BindTarget{Space: 0, Register: uint32(i)}
		reg := Register(RegisterTypeT, bt)
		fmt.Fprintf(out, "%s %s : register(%s);\n", TypeToHLSL(ir.Type{Base: ir.BaseTexture}, b.structName), tex.Name, reg)
		b.registerBindings[tex.Name] = reg
		b.usedFeatures |= FeatureTexturing
	}
	if len(b.textures) > 0 {
		out.WriteString("\n")
	}

	used := make(map[string]bool, len(b.samplers))
	next := uint32(0)
	for _, samp := range b.samplers {
		bt := FromBinding(samp.Binding)
		reg := Register(RegisterTypeS, bt)
		if used[reg] && b.opts.FakeMissingBindings {
			for {
				candidate := Register(RegisterTypeS, BindTarget{Space: 0, Register: next})
				next++
				if !used[candidate] {
					reg = candidate
					break
				}
			}
		}
		used[reg] = true
		fmt.Fprintf(out, "%s %s : register(%s);\n", SamplerToHLSL(), samp.Name, reg)
		b.registerBindings[samp.Name] = reg
	}
	if len(b.samplers) > 0 {
		out.WriteString("\n")
	}
}

// writeUniformBlock declares the effect's single global uniform block as
// a Shader-Model-5.1-style ConstantBuffer<T>, so member access reads as
// an ordinary struct field (_globals.Tint) rather than needing a
// separate cbuffer-body member list repeated at every use site.
func (b *Backend) writeUniformBlock(out *strings.Builder) {
	if len(b.uniforms) == 0 {
		return
	}
	uniformLayout(b.uniforms)

	fmt.Fprintf(out, "struct %s {\n", UniformBlockName)
	for _, u := range b.uniforms {
		fmt.Fprintf(out, "    %s %s;\n", b.typeString(u.Type), u.Name)
	}
	out.WriteString("};\n")

	reg := Register(RegisterTypeB, BindTarget{Space: 0, Register: 0})
	fmt.Fprintf(out, "ConstantBuffer<%s> %s : register(%s);\n\n", UniformBlockName, UniformBlockVar, reg)
	b.registerBindings[UniformBlockVar] = reg
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import "github.com/gogpu/effectc/ir"

// buildSmokeModule constructs a small but representative ir.Module from
// a manifest: one uniform-tinted, single-texture pixel shader wired
// through a technique with one pass. There is no text-shader front end
// in this tree (effectc consumes an already-built ir.Module, the way a
// content pipeline would hand one to it); this lets effectc exercise
// both backends without one.
func buildSmokeModule(m *Manifest) *ir.Module {
	mod := &ir.Module{}

	for i, name := range m.Textures {
		mod.Textures = append(mod.Textures, ir.Texture{
			Name:   name,
			Width:  512,
			Height: 512,
			Levels: 1,
			Format: ir.FormatRGBA8,
		})
		_ = i
	}
	for i, name := range m.Samplers {
		tex := ""
		if i < len(m.Textures) {
			tex = m.Textures[i]
		}
		mod.Samplers = append(mod.Samplers, ir.Sampler{
			Name:     name,
			Texture:  tex,
			Filter:   ir.FilterLinear,
			AddressU: ir.AddressWrap,
			AddressV: ir.AddressWrap,
		})
	}

	var offset uint32
	for _, name := range m.Uniforms {
		u := ir.Uniform{Name: name, Type: ir.VectorType(ir.BaseFloat, 4), Offset: offset, Size: 16}
		mod.Uniforms = append(mod.Uniforms, u)
		offset += 16
	}

	mod.Functions = append(mod.Functions, buildPixelEntry(m))
	if m.Technique.VSEntry != "" {
		mod.Functions = append(mod.Functions, buildVertexEntry(m))
	}

	mod.Techniques = append(mod.Techniques, ir.Technique{
		Name: m.Technique.Name,
		Passes: []ir.Pass{{
			Name:          "p0",
			VSEntry:       m.Technique.VSEntry,
			PSEntry:       m.Technique.PSEntry,
			RenderTargets: [ir.MaxRenderTargets]string{"COLOR"},
		}},
	})
	mod.Textures = append(mod.Textures, ir.Texture{Name: "COLOR", Width: 0, Height: 0, Levels: 1, Format: ir.FormatRGBA8})
	return mod
}

// buildPixelEntry samples the first configured texture/sampler pair
// (when any were configured) and returns the sampled color, otherwise
// it just returns the module's first uniform, otherwise white.
func buildPixelEntry(m *Manifest) ir.Function {
	fn := ir.Function{
		Name:   m.Technique.PSEntry,
		Params: []ir.Parameter{{Name: "uv", Type: ir.VectorType(ir.BaseFloat, 2), Semantic: "TEXCOORD0"}},
		Result: ir.Result{Type: ir.VectorType(ir.BaseFloat, 4), Semantic: "SV_TARGET"},
	}

	switch {
	case len(m.Textures) > 0 && len(m.Samplers) > 0:
		fn.Locals = []ir.LocalVar{
			{Name: m.Textures[0], Type: ir.Type{Base: ir.BaseTexture}},
			{Name: m.Samplers[0], Type: ir.Type{Base: ir.BaseSampler}},
			{Name: "uv", Type: ir.VectorType(ir.BaseFloat, 2)},
		}
		fn.Blocks = []ir.Block{{
			ID: 0,
			Statements: []ir.Statement{{
				CallIntrinsic: &ir.StmtCallIntrinsic{
					Result:    4,
					Intrinsic: ir.IntrinsicSampleTexture,
					Type:      ir.VectorType(ir.BaseFloat, 4),
					Args:      []ir.ValueHandle{1, 2, 0},
				},
			}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: handlePtr(4)}},
		}}
	case len(m.Uniforms) > 0:
		fn.Locals = []ir.LocalVar{{Name: m.Uniforms[0], Type: ir.VectorType(ir.BaseFloat, 4)}}
		fn.Blocks = []ir.Block{{
			ID: 0,
			Statements: []ir.Statement{{
				Load: &ir.StmtLoad{Result: 2, Chain: ir.Expression{Base: 1, IsLValue: true}},
			}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: handlePtr(2)}},
		}}
	default:
		white := ir.Constant{Type: ir.VectorType(ir.BaseFloat, 4)}
		for i := 0; i < 4; i++ {
			white.SetFloat(i, 1)
		}
		fn.Blocks = []ir.Block{{
			ID:         0,
			Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 1, Value: white}}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: handlePtr(1)}},
		}}
	}
	return fn
}

// buildVertexEntry produces a fullscreen-triangle vertex shader: pure
// position output, no resource reads, to pair with buildPixelEntry.
func buildVertexEntry(m *Manifest) ir.Function {
	zero := ir.Constant{Type: ir.VectorType(ir.BaseFloat, 4)}
	return ir.Function{
		Name:   m.Technique.VSEntry,
		Params: []ir.Parameter{{Name: "vertexID", Type: ir.ScalarType(ir.BaseUint), Semantic: "SV_VertexID"}},
		Result: ir.Result{Type: ir.VectorType(ir.BaseFloat, 4), Semantic: "SV_POSITION"},
		Blocks: []ir.Block{{
			ID:         0,
			Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 1, Value: zero}}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: handlePtr(1)}},
		}},
	}
}

func handlePtr(v ir.ValueHandle) *ir.ValueHandle { return &v }

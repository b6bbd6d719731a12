// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "github.com/gogpu/effectc/ir"

// std140Align/std140Size/uniformLayout duplicate the SPIR-V backend's
// packing rules (see spirv/layout.go) rather than sharing them: each
// target package in this module computes its own resource layout
// independently, and HLSL's cbuffer packing already follows the same
// vec3/vec4-alignment rule std140 does, so the two algorithms would
// otherwise have to be kept in lockstep through an import neither target
// needs for any other reason.
func std140Align(t ir.Type) uint32 {
	if t.IsArray() {
		return 16
	}
	if t.IsMatrix() {
		return 16
	}
	if t.IsVector() {
		switch t.Rows {
		case 2:
			return 8
		default:
			return 16
		}
	}
	return 4
}

func std140Size(t ir.Type) uint32 {
	if t.IsArray() {
		n := t.ArrayLength
		if n < 1 {
			n = 1
		}
		elem := t.Elem()
		stride := alignUp32(std140Size(elem), 16)
		return stride * uint32(n)
	}
	if t.IsMatrix() {
		return 16 * uint32(t.Cols)
	}
	if t.IsVector() {
		switch t.Rows {
		case 2:
			return 8
		case 3:
			return 12
		default:
			return 16
		}
	}
	return 4
}

func alignUp32(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// uniformLayout assigns Offset/Size to each uniform in place, in
// declaration order, following std140 packing rules.
func uniformLayout(uniforms []ir.Uniform) uint32 {
	var offset uint32
	for i := range uniforms {
		align := std140Align(uniforms[i].Type)
		size := std140Size(uniforms[i].Type)
		offset = alignUp32(offset, align)
		uniforms[i].Offset = offset
		uniforms[i].Size = size
		offset += size
	}
	return alignUp32(offset, 16)
}

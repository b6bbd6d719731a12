// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"

	"github.com/gogpu/effectc/ir"
)

// ScalarToHLSL returns the HLSL type name for a scalar base type.
// Ref: https://docs.microsoft.com/en-us/windows/win32/direct3dhlsl/dx-graphics-hlsl-scalar
func ScalarToHLSL(base ir.TypeBase) string {
	switch base {
	case ir.BaseBool:
		return "bool"
	case ir.BaseInt:
		return "int"
	case ir.BaseUint:
		return "uint"
	case ir.BaseFloat:
		return "float"
	case ir.BaseSampler:
		return "SamplerState"
	default:
		return "float"
	}
}

// TypeToHLSL returns the HLSL spelling of t. structName resolves a
// StructHandle to its declared name for BaseStruct types.
func TypeToHLSL(t ir.Type, structName func(ir.StructHandle) string) string {
	base := elemTypeToHLSL(t, structName)
	if t.IsArray() && !t.IsUnsizedArray() {
		return fmt.Sprintf("%s[%d]", base, t.ArrayLength)
	}
	return base
}

func elemTypeToHLSL(t ir.Type, structName func(ir.StructHandle) string) string {
	switch {
	case t.Base == ir.BaseStruct:
		return structName(t.Struct)
	case t.Base == ir.BaseTexture:
		return "Texture2D"
	case t.IsMatrix():
		return fmt.Sprintf("%s%dx%d", ScalarToHLSL(t.Base), t.Rows, t.Cols)
	case t.IsVector():
		return fmt.Sprintf("%s%d", ScalarToHLSL(t.Base), t.Rows)
	default:
		return ScalarToHLSL(t.Base)
	}
}

// ScalarCast returns the HLSL bit-reinterpretation function (asfloat,
// asint, asuint) for a target base type.
func ScalarCast(base ir.TypeBase) string {
	switch base {
	case ir.BaseInt:
		return "asint"
	case ir.BaseUint:
		return "asuint"
	default:
		return "asfloat"
	}
}

// InterpolationToHLSL returns the HLSL interpolation modifier implied by a
// Type's qualifier bits. Returns "" for the default perspective
// interpolation.
func InterpolationToHLSL(q ir.Qualifier) string {
	switch {
	case q.Has(ir.QualNoInterpolation):
		return "nointerpolation"
	case q.Has(ir.QualNoPerspective) && q.Has(ir.QualCentroid):
		return "noperspective centroid"
	case q.Has(ir.QualNoPerspective):
		return "noperspective"
	case q.Has(ir.QualCentroid):
		return "centroid"
	default:
		return ""
	}
}

// SamplerToHLSL returns the HLSL sampler object type name.
func SamplerToHLSL() string { return "SamplerState" }

// ShaderProfile returns an HLSL shader profile string, e.g. "vs_5_0".
func ShaderProfile(stage string, sm ShaderModel) string {
	return fmt.Sprintf("%s_%s", stage, sm.ProfileSuffix())
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package d3d11

import "github.com/gogpu/effectc/ir"

// Handle is an opaque device-assigned resource id. The zero Handle is
// never returned by a successful Device call, so it doubles as "no
// resource" in the linker's own bookkeeping (e.g. a not-yet-created
// RTV cached on a texture).
type Handle uint64

// TextureDesc describes a 2-D texture to create or reuse, the
// dimension-matching subset of ir.Texture the linker compares on
// redeclaration (spec §3 "Texture names are globally unique...").
type TextureDesc struct {
	Name   string
	Width  uint32
	Height uint32
	Levels uint32
	Format ir.TextureFormat
}

// Matches reports whether d and other describe the same physical
// texture (spec §4.4 step 3's reuse rule).
func (d TextureDesc) Matches(other TextureDesc) bool {
	return d.Width == other.Width && d.Height == other.Height &&
		d.Levels == other.Levels && d.Format == other.Format
}

// SamplerDesc is the filtering-relevant subset of a D3D11_SAMPLER_DESC
// the linker hashes to intern device sampler-state objects (spec §6).
type SamplerDesc struct {
	Filter                       ir.FilterMode
	AddressU, AddressV, AddressW ir.AddressMode
	MinLOD, MaxLOD, LODBias      float32
}

// SamplerDescFrom builds the descriptor a Sampler's filtering state
// reduces to, independent of which texture/binding it was declared
// against - two otherwise-identical samplers share one device object.
func SamplerDescFrom(s ir.Sampler) SamplerDesc {
	return SamplerDesc{
		Filter:   s.Filter,
		AddressU: s.AddressU,
		AddressV: s.AddressV,
		AddressW: s.AddressW,
		MinLOD:   s.MinLOD,
		MaxLOD:   s.MaxLOD,
		LODBias:  s.LODBias,
	}
}

// BlendStateDesc is the Device-facing encoding of an ir.BlendState.
type BlendStateDesc struct {
	Enable                          bool
	SrcBlend, DestBlend             ir.BlendFactor
	BlendOp                         ir.BlendOp
	SrcBlendAlpha, DestBlendAlpha   ir.BlendFactor
	BlendOpAlpha                    ir.BlendOp
	ColorWriteMask                  [ir.MaxRenderTargets]uint8
}

// DepthStencilDesc is the Device-facing encoding of an ir.StencilState.
type DepthStencilDesc struct {
	Enable                         bool
	ReadMask, WriteMask             uint8
	FailOp, DepthFailOp, PassOp     ir.StencilOp
	Func                            ir.CompareFunc
	Reference                       uint32
}

// Device is the runtime collaborator the linker drives (spec §1 "the
// runtime ... provides a GPU device handle, backbuffer views, a
// uniform-value byte arena, and a texture registry"). A production
// implementation wraps real D3D11 device calls; tests use an in-memory
// fake (see linker_test.go).
type Device interface {
	// Backbuffer returns the implicit back-buffer texture bound by the
	// COLOR render-target semantic.
	Backbuffer() (Handle, error)
	// DepthBuffer returns the implicit depth-stencil texture bound by
	// the DEPTH render-target semantic.
	DepthBuffer() (Handle, error)
	// BackbufferSRV returns a shader-resource view of the back buffer,
	// in its sRGB format variant when srgb is true, so a pass can
	// sample the COLOR semantic without the linker allocating a texture.
	BackbufferSRV(srgb bool) (Handle, error)
	// DepthSRV returns a shader-resource view of the depth-stencil
	// buffer, in its sRGB format variant when srgb is true, so a pass
	// can sample the DEPTH semantic without the linker allocating a texture.
	DepthSRV(srgb bool) (Handle, error)
	// FramebufferSize returns the back buffer's current dimensions,
	// the fallback viewport when a pass binds no render target.
	FramebufferSize() (width, height uint32)

	// CreateTexture allocates a Default-usage 2-D texture with
	// ShaderResource|RenderTarget bind flags and GenerateMips set.
	CreateTexture(desc TextureDesc) (Handle, error)
	// TextureDesc looks up the descriptor a previously created/bound
	// texture handle was built from, for the reuse-matching rule.
	TextureDesc(h Handle) (TextureDesc, bool)
	// CreateSRV creates a shader-resource view of tex, in its sRGB
	// format variant when srgb is true.
	CreateSRV(tex Handle, srgb bool) (Handle, error)
	// CreateRTV creates a render-target view of tex.
	CreateRTV(tex Handle) (Handle, error)

	// CreateSampler creates one D3D11 sampler-state object.
	CreateSampler(desc SamplerDesc) (Handle, error)

	// CreateConstantBuffer allocates one dynamic, CPU-write/GPU-read
	// constant buffer of size bytes, initialized from data.
	CreateConstantBuffer(size uint32, data []byte) (Handle, error)

	// CreateBlendState and CreateDepthStencilState build pass state
	// objects from the flags an ir.Pass carries.
	CreateBlendState(desc BlendStateDesc) (Handle, error)
	CreateDepthStencilState(desc DepthStencilDesc) (Handle, error)

	// CreateTimestampQuery and CreateDisjointQuery allocate the GPU
	// timing queries a technique uses to measure its own cost.
	CreateTimestampQuery() (Handle, error)
	CreateDisjointQuery() (Handle, error)
}

// HasSRGBVariant reports whether format has a distinct sRGB view
// format; formats without one reuse the same SRV for both the linear
// and sRGB request (spec §4.4 step 3 "deduplicating when the format
// has no sRGB variant").
func HasSRGBVariant(f ir.TextureFormat) bool {
	switch f {
	case ir.FormatRGBA8, ir.FormatRGB10A2:
		return true
	default:
		return false
	}
}

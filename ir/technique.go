package ir

// Blend factors and operations, numbered after the D3D11 blend enum
// since the linker forwards them to the device unchanged (spec §4.4).
type BlendFactor uint32

// Blend factors.
const (
	BlendZero BlendFactor = iota + 1
	BlendOne
	BlendSrcColor
	BlendInvSrcColor
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDestAlpha
	BlendInvDestAlpha
	BlendDestColor
	BlendInvDestColor
)

// BlendOp is a blend combine operation.
type BlendOp uint32

// Blend operations.
const (
	BlendOpAdd BlendOp = iota + 1
	BlendOpSubtract
	BlendOpRevSubtract
	BlendOpMin
	BlendOpMax
)

// StencilOp is a stencil update operation.
type StencilOp uint32

// Stencil operations.
const (
	StencilKeep StencilOp = iota + 1
	StencilZero
	StencilReplace
	StencilIncrSat
	StencilDecrSat
	StencilInvert
	StencilIncr
	StencilDecr
)

// CompareFunc is a depth/stencil comparison function.
type CompareFunc uint32

// Comparison functions.
const (
	CompareNever CompareFunc = iota + 1
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// BlendState is a pass's output-merger blend configuration.
type BlendState struct {
	Enable bool

	SrcBlend      BlendFactor
	DestBlend     BlendFactor
	BlendOp       BlendOp
	SrcBlendAlpha BlendFactor
	DestBlendAlpha BlendFactor
	BlendOpAlpha  BlendOp
}

// StencilState is a pass's depth-stencil stage configuration.
type StencilState struct {
	Enable bool

	ReadMask  uint8
	WriteMask uint8

	FailOp      StencilOp
	DepthFailOp StencilOp
	PassOp      StencilOp
	Func        CompareFunc
	Reference   uint32
}

// Viewport is an explicit render-target viewport override; nil means
// "size to the bound render target".
type Viewport struct {
	Width  uint32
	Height uint32
}

// MaxRenderTargets is the number of simultaneous render targets a pass
// may bind, matching D3D11's MRT limit.
const MaxRenderTargets = 8

// Pass is one rendering pass of a Technique: a vertex/pixel entry point
// pair plus output-merger and rasterizer state (spec §3 "Pass").
type Pass struct {
	Name string

	VSEntry string // Function.Name of the vertex stage entry point
	PSEntry string // Function.Name of the pixel stage entry point

	// RenderTargets names the bound color targets by Texture.Name; ""
	// at index 0 means "the implicit back buffer", and a run of
	// render targets must otherwise be contiguous from index 0.
	RenderTargets [MaxRenderTargets]string
	SRGBWrite     bool
	ClearRenderTargets bool

	Blend   BlendState
	Stencil StencilState

	ColorWriteMask [MaxRenderTargets]uint8

	Viewport *Viewport
}

// Technique groups an ordered sequence of Passes under one user-facing
// name, with UI annotations.
type Technique struct {
	Name        string
	Annotations map[string]Variant
	Passes      []Pass
}

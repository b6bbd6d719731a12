package ir

// Binding is a (group, slot) resource binding pair, assigned by the
// frontend and carried through unchanged by both backends.
type Binding struct {
	Group uint32
	Slot  uint32
}

// TextureFormat is a render/sample format for a Texture.
type TextureFormat uint8

// Texture formats.
const (
	FormatUnknown TextureFormat = iota
	FormatR8
	FormatRG8
	FormatRGBA8
	FormatR16F
	FormatRG16F
	FormatRGBA16F
	FormatR32F
	FormatRG32F
	FormatRGBA32F
	FormatRGB10A2
)

// FilterMode selects a sampler's minification/magnification filter.
type FilterMode uint8

// Filter modes.
const (
	FilterPoint FilterMode = iota
	FilterLinear
	FilterAnisotropic
)

// AddressMode selects a sampler's texture-coordinate wrapping behavior.
type AddressMode uint8

// Address modes.
const (
	AddressWrap AddressMode = iota
	AddressMirror
	AddressClamp
	AddressBorder
)

// VariantKind tags the payload held by a Variant.
type VariantKind uint8

// Variant kinds.
const (
	VariantBool VariantKind = iota
	VariantInt
	VariantFloat
	VariantString
)

// Variant holds one annotation value. Annotations are untyped key/value
// metadata attached to textures, samplers, uniforms and techniques (e.g.
// "ui_type" = "slider"); they never affect code generation, only the
// values the linker/runtime exposes alongside the compiled module.
type Variant struct {
	Kind   VariantKind
	Bool   bool
	Int    int64
	Float  float64
	String string
}

// TextureHandle references a Texture in Module.Textures.
type TextureHandle uint32

// Texture is a render-target/sampled-image descriptor.
type Texture struct {
	ID     TextureHandle
	Name   string // unique within the module
	Width  uint32
	Height uint32
	Levels uint32
	Format TextureFormat

	// RenderTarget marks a texture written by a pass's output merger,
	// as opposed to one only ever sampled.
	RenderTarget bool

	Annotations map[string]Variant
}

// SamplerHandle references a Sampler in Module.Samplers.
type SamplerHandle uint32

// Sampler is a sampler-state descriptor bound to a texture by name.
type Sampler struct {
	ID      SamplerHandle
	Name    string
	Texture string // referenced Texture.Name
	Binding Binding

	Filter                       FilterMode
	AddressU, AddressV, AddressW AddressMode
	MinLOD, MaxLOD, LODBias      float32
	SRGB                         bool

	Annotations map[string]Variant
}

// Key returns a descriptor hash suitable for sampler-state interning at
// link time (spec §4.4): two samplers with identical filtering state
// (but possibly different Name/Texture/Binding) share one D3D11 sampler
// state object.
func (s Sampler) Key() SamplerStateKey {
	return SamplerStateKey{
		Filter:   s.Filter,
		AddressU: s.AddressU,
		AddressV: s.AddressV,
		AddressW: s.AddressW,
		MinLOD:   s.MinLOD,
		MaxLOD:   s.MaxLOD,
		LODBias:  s.LODBias,
		SRGB:     s.SRGB,
	}
}

// SamplerStateKey is the filtering-relevant subset of a Sampler used to
// deduplicate device sampler-state objects.
type SamplerStateKey struct {
	Filter                       FilterMode
	AddressU, AddressV, AddressW AddressMode
	MinLOD, MaxLOD, LODBias      float32
	SRGB                         bool
}

// UniformHandle references a Uniform in Module.Uniforms.
type UniformHandle uint32

// Uniform is one member of the effect's global constant buffer. Offset
// and Size are assigned by the backend's layout pass (spec §4.2 std140
// layout rule), not by the frontend.
type Uniform struct {
	ID          UniformHandle
	Name        string
	Type        Type
	Offset      uint32
	Size        uint32
	Initializer *Constant

	Annotations map[string]Variant
}

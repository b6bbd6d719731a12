package ir

import "fmt"

// TypeBase is the base tag of a Type.
type TypeBase uint8

// Base type tags.
const (
	BaseVoid TypeBase = iota
	BaseBool
	BaseInt
	BaseUint
	BaseFloat
	BaseStruct
	BaseTexture
	BaseSampler
	BaseString
)

// String returns a human-readable base type name.
func (b TypeBase) String() string {
	switch b {
	case BaseVoid:
		return "void"
	case BaseBool:
		return "bool"
	case BaseInt:
		return "int"
	case BaseUint:
		return "uint"
	case BaseFloat:
		return "float"
	case BaseStruct:
		return "struct"
	case BaseTexture:
		return "texture"
	case BaseSampler:
		return "sampler"
	case BaseString:
		return "string"
	default:
		return fmt.Sprintf("base(%d)", uint8(b))
	}
}

// Qualifier is a bitset of storage/interpolation qualifiers.
type Qualifier uint32

// Qualifier bits.
const (
	QualStatic Qualifier = 1 << iota
	QualUniform
	QualExtern
	QualIn
	QualOut
	QualInOut
	QualConst
	QualPrecise
	QualNoPerspective
	QualCentroid
	QualNoInterpolation
)

// Has reports whether q contains every bit in mask.
func (q Qualifier) Has(mask Qualifier) bool { return q&mask == mask }

// StructHandle references a StructDef in Module.Structs by its 0-based
// index. It is only meaningful when the type's Base is BaseStruct.
type StructHandle uint32

// Type is a value type: base tag, shape, array-ness, qualifiers and
// stage-interface flags.
//
// Invariants (see package ir doc and spec §3):
//   - scalar:  Rows == 1 && Cols == 1
//   - vector:  Rows >  1 && Cols == 1
//   - matrix:  Rows >  1 && Cols >  1
//   - texture/sampler/void: Rows == 0 && Cols == 0
//   - IsPointer is only meaningful to the SPIR-V backend.
type Type struct {
	Base   TypeBase
	Rows   uint8
	Cols   uint8
	// ArrayLength is 0 for a non-array type, -1 for an unsized
	// (runtime) array, and a positive element count otherwise.
	ArrayLength int32
	Qualifiers  Qualifier
	IsPointer   bool
	IsInput     bool
	IsOutput    bool
	Struct      StructHandle
}

// IsScalar reports whether t is a scalar (non-array) type.
func (t Type) IsScalar() bool { return t.Rows == 1 && t.Cols == 1 && !t.IsArray() }

// IsVector reports whether t is a vector (non-array) type.
func (t Type) IsVector() bool { return t.Rows > 1 && t.Cols == 1 }

// IsMatrix reports whether t is a matrix type.
func (t Type) IsMatrix() bool { return t.Rows > 1 && t.Cols > 1 }

// IsArray reports whether t is an array (fixed or unsized).
func (t Type) IsArray() bool { return t.ArrayLength != 0 }

// IsUnsizedArray reports whether t is a runtime-sized array.
func (t Type) IsUnsizedArray() bool { return t.ArrayLength == -1 }

// IsOpaque reports whether t is a texture or sampler handle type.
func (t Type) IsOpaque() bool { return t.Base == BaseTexture || t.Base == BaseSampler }

// ComponentCount returns the number of scalar lanes of a scalar, vector
// or matrix type (ignoring array length).
func (t Type) ComponentCount() int { return int(t.Rows) * int(t.Cols) }

// WithArray returns a copy of t turned into an array of the given length
// (-1 for unsized).
func (t Type) WithArray(length int32) Type {
	t.ArrayLength = length
	return t
}

// Elem returns the element type of an array type (array-ness stripped).
func (t Type) Elem() Type {
	t.ArrayLength = 0
	return t
}

// Scalar constructors used pervasively by both backends and by tests.
func ScalarType(base TypeBase) Type      { return Type{Base: base, Rows: 1, Cols: 1} }
func VectorType(base TypeBase, n uint8) Type {
	return Type{Base: base, Rows: n, Cols: 1}
}
func MatrixType(base TypeBase, rows, cols uint8) Type {
	return Type{Base: base, Rows: rows, Cols: cols}
}

// StructMember is one field of a StructDef.
type StructMember struct {
	Name     string
	Type     Type
	Semantic string // e.g. "SV_POSITION"; empty if none
}

// StructDef is a struct type definition.
type StructDef struct {
	ID      StructHandle
	Name    string // optional display name
	Members []StructMember
}

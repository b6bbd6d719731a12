package ir

// UnaryOp is a unary operator.
type UnaryOp uint8

// Unary operators.
const (
	UnaryNegate UnaryOp = iota
	UnaryNot
	UnaryBitwiseNot
	UnaryPostIncrement
	UnaryPostDecrement
	UnaryPreIncrement
	UnaryPreDecrement
)

// BinaryOp is a binary operator. The codegen backends pick an opcode
// family (float/signed/unsigned/logical) by the operand Type, not by a
// separate signedness field on the operator itself (spec §4.2).
type BinaryOp uint8

// Binary operators.
const (
	BinaryAdd BinaryOp = iota
	BinarySubtract
	BinaryMultiply
	BinaryDivide
	BinaryModulo

	BinaryEqual
	BinaryNotEqual
	BinaryLess
	BinaryLessEqual
	BinaryGreater
	BinaryGreaterEqual

	BinaryAnd
	BinaryXor
	BinaryOr

	BinaryLogicalAnd
	BinaryLogicalOr

	BinaryShiftLeft
	BinaryShiftRight
)

// SelectionFlags / LoopFlags are optimization hints announced alongside
// structure-merge information (spec §4.1).
type SelectionFlags uint8

const (
	SelectionNone SelectionFlags = iota
	SelectionFlatten
	SelectionDontFlatten
)

// LoopFlags are optimization hints for loop statements.
type LoopFlags uint8

const (
	LoopNone LoopFlags = iota
	LoopUnroll
	LoopDontUnroll
)

// Intrinsic identifies a built-in function dispatched via
// emit_call_intrinsic. The numbering is shared between the SPIR-V
// backend (GLSL.std.450 instruction selection) and the HLSL backend
// (intrinsic spelling table); only the generated code differs.
type Intrinsic uint16

// Intrinsic functions.
const (
	IntrinsicAbs Intrinsic = iota
	IntrinsicMin
	IntrinsicMax
	IntrinsicClamp
	IntrinsicSaturate

	IntrinsicCos
	IntrinsicCosh
	IntrinsicSin
	IntrinsicSinh
	IntrinsicTan
	IntrinsicTanh
	IntrinsicAcos
	IntrinsicAsin
	IntrinsicAtan
	IntrinsicAtan2

	IntrinsicRadians
	IntrinsicDegrees

	IntrinsicCeil
	IntrinsicFloor
	IntrinsicRound
	IntrinsicFrac
	IntrinsicTrunc

	IntrinsicExp
	IntrinsicExp2
	IntrinsicLog
	IntrinsicLog2
	IntrinsicPow

	IntrinsicDot
	IntrinsicCross
	IntrinsicDistance
	IntrinsicLength
	IntrinsicNormalize
	IntrinsicReflect
	IntrinsicRefract

	IntrinsicSign
	IntrinsicMad
	IntrinsicLerp
	IntrinsicStep
	IntrinsicSmoothstep
	IntrinsicSqrt
	IntrinsicRsqrt
	IntrinsicTranspose
	IntrinsicDeterminant

	IntrinsicDdx
	IntrinsicDdy
	IntrinsicFwidth

	IntrinsicSampleTexture
	IntrinsicSampleTextureLevel
	IntrinsicSampleTextureGrad
	IntrinsicSampleTextureBias
	IntrinsicLoadTexture
	IntrinsicGetTextureDimensions
)

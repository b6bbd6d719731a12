// Package spirv lowers an effect module (package ir) into a binary
// SPIR-V module, implementing codegen.Generator.
package spirv

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions.
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_5 = Version{1, 5}
)

// Options configures SPIR-V generation.
type Options struct {
	Version Version
	Debug   bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{Version: Version1_3}
}

// SPIR-V magic number and constants.
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator
)

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes used by this package.
const (
	OpNop               OpCode = 0
	OpUndef             OpCode = 1
	OpSourceContinued   OpCode = 2
	OpSource            OpCode = 3
	OpName              OpCode = 5
	OpMemberName        OpCode = 6
	OpString            OpCode = 7
	OpExtension         OpCode = 10
	OpExtInstImport     OpCode = 11
	OpExtInst           OpCode = 12
	OpMemoryModel       OpCode = 14
	OpEntryPoint        OpCode = 15
	OpExecutionMode     OpCode = 16
	OpCapability        OpCode = 17
	OpTypeVoid          OpCode = 19
	OpTypeBool          OpCode = 20
	OpTypeInt           OpCode = 21
	OpTypeFloat         OpCode = 22
	OpTypeVector        OpCode = 23
	OpTypeMatrix        OpCode = 24
	OpTypeImage         OpCode = 25
	OpTypeSampler       OpCode = 26
	OpTypeSampledImage  OpCode = 27
	OpTypeArray         OpCode = 28
	OpTypeRuntimeArray  OpCode = 29
	OpTypeStruct        OpCode = 30
	OpTypePointer       OpCode = 32
	OpTypeFunction      OpCode = 33
	OpConstantTrue      OpCode = 41
	OpConstantFalse     OpCode = 42
	OpConstant          OpCode = 43
	OpConstantComposite OpCode = 44
	OpFunction          OpCode = 54
	OpFunctionParameter OpCode = 55
	OpFunctionEnd       OpCode = 56
	OpFunctionCall      OpCode = 57
	OpVariable          OpCode = 59
	OpLoad              OpCode = 61
	OpStore             OpCode = 62
	OpAccessChain       OpCode = 65
	OpDecorate          OpCode = 71
	OpMemberDecorate    OpCode = 72
	OpVectorShuffle     OpCode = 79
	OpCompositeConstruct OpCode = 80
	OpCompositeExtract  OpCode = 81
	OpCompositeInsert   OpCode = 82
	OpSampledImage      OpCode = 86
	OpImageSampleImplicitLod    OpCode = 87
	OpImageSampleExplicitLod    OpCode = 88
	OpImageFetch        OpCode = 95
	OpImageQuerySizeLod OpCode = 103
	OpConvertFToU       OpCode = 109
	OpConvertFToS       OpCode = 110
	OpConvertSToF       OpCode = 111
	OpConvertUToF       OpCode = 112
	OpBitcast           OpCode = 124
	OpSNegate           OpCode = 126
	OpFNegate           OpCode = 127
	OpIAdd              OpCode = 128
	OpFAdd              OpCode = 129
	OpISub              OpCode = 130
	OpFSub              OpCode = 131
	OpIMul              OpCode = 132
	OpFMul              OpCode = 133
	OpUDiv              OpCode = 134
	OpSDiv              OpCode = 135
	OpFDiv              OpCode = 136
	OpUMod              OpCode = 137
	OpSRem              OpCode = 139
	OpFRem              OpCode = 140
	OpVectorTimesScalar OpCode = 142
	OpMatrixTimesScalar OpCode = 143
	OpVectorTimesMatrix OpCode = 144
	OpMatrixTimesVector OpCode = 145
	OpMatrixTimesMatrix OpCode = 146
	OpDot               OpCode = 148
	OpLogicalEqual      OpCode = 164
	OpLogicalNotEqual   OpCode = 165
	OpLogicalOr         OpCode = 166
	OpLogicalAnd        OpCode = 167
	OpLogicalNot        OpCode = 168
	OpSelect            OpCode = 169
	OpIEqual            OpCode = 170
	OpINotEqual         OpCode = 171
	OpUGreaterThan      OpCode = 172
	OpSGreaterThan      OpCode = 173
	OpUGreaterThanEqual OpCode = 174
	OpSGreaterThanEqual OpCode = 175
	OpULessThan         OpCode = 176
	OpSLessThan         OpCode = 177
	OpULessThanEqual    OpCode = 178
	OpSLessThanEqual    OpCode = 179
	OpFOrdEqual         OpCode = 180
	OpFOrdNotEqual      OpCode = 182
	OpFOrdLessThan      OpCode = 184
	OpFOrdGreaterThan   OpCode = 186
	OpFOrdLessThanEqual OpCode = 188
	OpFOrdGreaterThanEqual OpCode = 190
	OpShiftRightLogical    OpCode = 194
	OpShiftRightArithmetic OpCode = 195
	OpShiftLeftLogical     OpCode = 196
	OpBitwiseOr            OpCode = 197
	OpBitwiseXor           OpCode = 198
	OpBitwiseAnd           OpCode = 199
	OpNot                  OpCode = 200
	OpPhi               OpCode = 245
	OpLoopMerge         OpCode = 246
	OpSelectionMerge    OpCode = 247
	OpLabel             OpCode = 248
	OpBranch            OpCode = 249
	OpBranchConditional OpCode = 250
	OpSwitch            OpCode = 251
	OpKill              OpCode = 252
	OpReturn            OpCode = 253
	OpReturnValue       OpCode = 254
	OpNoLine            OpCode = 317
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Decorations used by this package.
const (
	DecorationBlock         Decoration = 2
	DecorationRowMajor      Decoration = 4
	DecorationColMajor      Decoration = 5
	DecorationArrayStride   Decoration = 6
	DecorationMatrixStride  Decoration = 7
	DecorationBuiltIn       Decoration = 11
	DecorationNoContraction Decoration = 17
	DecorationLocation      Decoration = 30
	DecorationNoPerspective Decoration = 13
	DecorationFlat          Decoration = 14
	DecorationCentroid      Decoration = 16
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
)

// Capability represents a SPIR-V capability.
type Capability uint32

// Capabilities used by this package.
const (
	CapabilityShader Capability = 1
)

// AddressingModel is the OpMemoryModel addressing model.
type AddressingModel uint32

const AddressingLogical AddressingModel = 0

// MemoryModel is the OpMemoryModel memory model.
type MemoryModel uint32

const MemoryModelGLSL450 MemoryModel = 1

// ExecutionModel selects the shader stage of an entry point.
type ExecutionModel uint32

// Execution models.
const (
	ExecutionModelVertex   ExecutionModel = 0
	ExecutionModelFragment ExecutionModel = 4
)

// ExecutionMode is an OpExecutionMode value.
type ExecutionMode uint32

// Execution modes.
const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeDepthReplacing  ExecutionMode = 12
)

// StorageClass is the SPIR-V pointer/variable storage class.
type StorageClass uint32

// Storage classes used by this package.
const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassFunction        StorageClass = 7
)

// BuiltIn identifies a SPIR-V built-in decoration value.
type BuiltIn uint32

// Built-ins used by this package.
const (
	BuiltInPosition   BuiltIn = 0
	BuiltInPointSize  BuiltIn = 1
	BuiltInVertexId   BuiltIn = 5
	BuiltInFragCoord  BuiltIn = 15
	BuiltInFragDepth  BuiltIn = 22
	BuiltInVertexIndex BuiltIn = 42
)

// SelectionControl is an OpSelectionMerge control mask.
type SelectionControl uint32

// Selection control masks.
const (
	SelectionControlNone         SelectionControl = 0
	SelectionControlFlatten      SelectionControl = 1
	SelectionControlDontFlatten  SelectionControl = 2
)

// LoopControl is an OpLoopMerge control mask.
type LoopControl uint32

// Loop control masks.
const (
	LoopControlNone       LoopControl = 0
	LoopControlUnroll     LoopControl = 1
	LoopControlDontUnroll LoopControl = 2
)

// FunctionControl is an OpFunction control mask.
type FunctionControl uint32

const FunctionControlNone FunctionControl = 0

// GLSLExtInst identifies a GLSL.std.450 extended instruction.
type GLSLExtInst uint32

// GLSL.std.450 instructions used by the intrinsic dispatch table.
const (
	GLSLRound       GLSLExtInst = 1
	GLSLTrunc       GLSLExtInst = 3
	GLSLFAbs        GLSLExtInst = 4
	GLSLSAbs        GLSLExtInst = 5
	GLSLFSign       GLSLExtInst = 6
	GLSLSSign       GLSLExtInst = 7
	GLSLFloor       GLSLExtInst = 8
	GLSLCeil        GLSLExtInst = 9
	GLSLFract       GLSLExtInst = 10
	GLSLRadians     GLSLExtInst = 11
	GLSLDegrees     GLSLExtInst = 12
	GLSLSin         GLSLExtInst = 13
	GLSLCos         GLSLExtInst = 14
	GLSLTan         GLSLExtInst = 15
	GLSLAsin        GLSLExtInst = 16
	GLSLAcos        GLSLExtInst = 17
	GLSLAtan        GLSLExtInst = 18
	GLSLSinh        GLSLExtInst = 19
	GLSLCosh        GLSLExtInst = 20
	GLSLTanh        GLSLExtInst = 21
	GLSLAtan2       GLSLExtInst = 25
	GLSLPow         GLSLExtInst = 26
	GLSLExp         GLSLExtInst = 27
	GLSLLog         GLSLExtInst = 28
	GLSLExp2        GLSLExtInst = 29
	GLSLLog2        GLSLExtInst = 30
	GLSLSqrt        GLSLExtInst = 31
	GLSLInverseSqrt GLSLExtInst = 32
	GLSLDeterminant GLSLExtInst = 33
	GLSLFMin        GLSLExtInst = 37
	GLSLUMin        GLSLExtInst = 38
	GLSLSMin        GLSLExtInst = 39
	GLSLFMax        GLSLExtInst = 40
	GLSLUMax        GLSLExtInst = 41
	GLSLSMax        GLSLExtInst = 42
	GLSLFClamp      GLSLExtInst = 43
	GLSLUClamp      GLSLExtInst = 44
	GLSLSClamp      GLSLExtInst = 45
	GLSLFMix        GLSLExtInst = 46
	GLSLStep        GLSLExtInst = 48
	GLSLSmoothStep  GLSLExtInst = 49
	GLSLLength      GLSLExtInst = 66
	GLSLDistance    GLSLExtInst = 67
	GLSLCross       GLSLExtInst = 68
	GLSLNormalize   GLSLExtInst = 69
	GLSLReflect     GLSLExtInst = 71
	GLSLRefract     GLSLExtInst = 72
)

// OpTranspose is a dedicated core opcode, not a GLSL.std.450 ext inst.
const OpTranspose OpCode = 84

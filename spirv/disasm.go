package spirv

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Disassemble renders a compiled SPIR-V module as .spvasm-style text, the
// same instruction-by-instruction walk cmd/effectc's -dis flag drives
// over a Result.SPIRV to let a reviewer inspect what a technique's entry
// points actually lowered to without a separate vendor tool.
func Disassemble(data []byte) (string, error) {
	if len(data) < 20 {
		return "", errors.New("spirv: module too small to contain a header")
	}
	magic := binary.LittleEndian.Uint32(data[0:4])
	if magic != MagicNumber {
		return "", fmt.Errorf("spirv: invalid magic number 0x%08X", magic)
	}

	var out strings.Builder
	version := binary.LittleEndian.Uint32(data[4:8])
	fmt.Fprintf(&out, "; SPIR-V\n")
	fmt.Fprintf(&out, "; Version: %d.%d\n", (version>>16)&0xFF, (version>>8)&0xFF)
	fmt.Fprintf(&out, "; Generator: 0x%08X\n", binary.LittleEndian.Uint32(data[8:12]))
	fmt.Fprintf(&out, "; Bound: %d\n", binary.LittleEndian.Uint32(data[12:16]))
	fmt.Fprintf(&out, "; Schema: %d\n", binary.LittleEndian.Uint32(data[16:20]))
	fmt.Fprintln(&out)

	offset := 20
	for offset < len(data) {
		if offset+4 > len(data) {
			break
		}
		word := binary.LittleEndian.Uint32(data[offset:])
		opcode := uint16(word & 0xFFFF)
		wordCount := int(word >> 16)

		if wordCount == 0 || offset+wordCount*4 > len(data) {
			fmt.Fprintf(&out, "; ERROR: invalid word count %d at offset 0x%X\n", wordCount, offset)
			break
		}

		ops := make([]uint32, wordCount-1)
		for i := range ops {
			ops[i] = binary.LittleEndian.Uint32(data[offset+4+i*4:])
		}

		name := disasmOpcodeNames[opcode]
		if name == "" {
			name = fmt.Sprintf("Op%d", opcode)
		}
		writeInstruction(&out, name, opcode, ops, data, offset)
		offset += wordCount * 4
	}
	return out.String(), nil
}

func disasmID(n uint32) string { return fmt.Sprintf("%%_%d", n) }

func disasmLookup(m map[uint32]string, v uint32) string {
	if s, ok := m[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", v)
}

func disasmReadString(data []byte, offset int, maxWords int) (string, int) {
	var sb strings.Builder
	words := 0
	for i := 0; i < maxWords*4; i++ {
		if offset+i >= len(data) {
			break
		}
		b := data[offset+i]
		if b == 0 {
			words = (i / 4) + 1
			break
		}
		sb.WriteByte(b)
	}
	return sb.String(), words
}

//nolint:gocognit,gocyclo,cyclop,funlen // dev tool: one case per SPIR-V opcode it knows how to format
func writeInstruction(out *strings.Builder, name string, opcode uint16, ops []uint32, data []byte, offset int) {
	switch opcode {
	case 17: // OpCapability
		fmt.Fprintf(out, "               %s %s\n", name, disasmLookup(disasmCapabilities, ops[0]))

	case 11: // OpExtInstImport
		str, _ := disasmReadString(data, offset+8, len(ops)-1)
		fmt.Fprintf(out, "         %s = %s %q\n", disasmID(ops[0]), name, str)

	case 14: // OpMemoryModel
		addrModels := map[uint32]string{0: "Logical", 1: "Physical32", 2: "Physical64", 5348: "PhysicalStorageBuffer64"}
		memModels := map[uint32]string{0: "Simple", 1: "GLSL450", 2: "OpenCL", 3: "Vulkan"}
		fmt.Fprintf(out, "               %s %s %s\n", name, disasmLookup(addrModels, ops[0]), disasmLookup(memModels, ops[1]))

	case 15: // OpEntryPoint
		model := disasmLookup(disasmExecutionModels, ops[0])
		str, strWords := disasmReadString(data, offset+12, len(ops)-2)
		fmt.Fprintf(out, "               %s %s %s %q", name, model, disasmID(ops[1]), str)
		for i := 2 + strWords; i < len(ops); i++ {
			fmt.Fprintf(out, " %s", disasmID(ops[i]))
		}
		fmt.Fprintln(out)

	case 16: // OpExecutionMode
		fmt.Fprintf(out, "               %s %s %s", name, disasmID(ops[0]), disasmLookup(disasmExecutionModes, ops[1]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(out, " %d", ops[i])
		}
		fmt.Fprintln(out)

	case 5: // OpName
		str, _ := disasmReadString(data, offset+8, len(ops)-1)
		fmt.Fprintf(out, "               %s %s %q\n", name, disasmID(ops[0]), str)

	case 6: // OpMemberName
		str, _ := disasmReadString(data, offset+12, len(ops)-2)
		fmt.Fprintf(out, "               %s %s %d %q\n", name, disasmID(ops[0]), ops[1], str)

	case 71: // OpDecorate
		dec := disasmLookup(disasmDecorations, ops[1])
		fmt.Fprintf(out, "               %s %s %s", name, disasmID(ops[0]), dec)
		if ops[1] == 11 && len(ops) > 2 { // BuiltIn
			fmt.Fprintf(out, " %s", disasmLookup(disasmBuiltins, ops[2]))
		} else {
			for i := 2; i < len(ops); i++ {
				fmt.Fprintf(out, " %d", ops[i])
			}
		}
		fmt.Fprintln(out)

	case 72: // OpMemberDecorate
		dec := disasmLookup(disasmDecorations, ops[2])
		fmt.Fprintf(out, "               %s %s %d %s", name, disasmID(ops[0]), ops[1], dec)
		for i := 3; i < len(ops); i++ {
			fmt.Fprintf(out, " %d", ops[i])
		}
		fmt.Fprintln(out)

	case 19, 20, 26: // OpTypeVoid, OpTypeBool, OpTypeSampler
		fmt.Fprintf(out, "         %s = %s\n", disasmID(ops[0]), name)

	case 21: // OpTypeInt
		sign := "0"
		if ops[2] == 1 {
			sign = "1"
		}
		fmt.Fprintf(out, "         %s = %s %d %s\n", disasmID(ops[0]), name, ops[1], sign)

	case 22: // OpTypeFloat
		fmt.Fprintf(out, "         %s = %s %d\n", disasmID(ops[0]), name, ops[1])

	case 23, 24: // OpTypeVector, OpTypeMatrix
		fmt.Fprintf(out, "         %s = %s %s %d\n", disasmID(ops[0]), name, disasmID(ops[1]), ops[2])

	case 25: // OpTypeImage
		dim := disasmLookup(disasmDims, ops[2])
		fmt.Fprintf(out, "         %s = %s %s %s %d %d %d %d Unknown", disasmID(ops[0]), name, disasmID(ops[1]), dim, ops[3], ops[4], ops[5], ops[6])
		if ops[6] != 1 && len(ops) > 7 {
			fmt.Fprintf(out, " %d", ops[7])
		}
		fmt.Fprintln(out)

	case 27: // OpTypeSampledImage
		fmt.Fprintf(out, "         %s = %s %s\n", disasmID(ops[0]), name, disasmID(ops[1]))

	case 28: // OpTypeArray
		fmt.Fprintf(out, "         %s = %s %s %s\n", disasmID(ops[0]), name, disasmID(ops[1]), disasmID(ops[2]))

	case 30: // OpTypeStruct
		fmt.Fprintf(out, "         %s = %s", disasmID(ops[0]), name)
		for i := 1; i < len(ops); i++ {
			fmt.Fprintf(out, " %s", disasmID(ops[i]))
		}
		fmt.Fprintln(out)

	case 32: // OpTypePointer
		fmt.Fprintf(out, "         %s = %s %s %s\n", disasmID(ops[0]), name, disasmLookup(disasmStorageClasses, ops[1]), disasmID(ops[2]))

	case 33: // OpTypeFunction
		fmt.Fprintf(out, "         %s = %s %s", disasmID(ops[0]), name, disasmID(ops[1]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(out, " %s", disasmID(ops[i]))
		}
		fmt.Fprintln(out)

	case 43: // OpConstant
		fmt.Fprintf(out, "         %s = %s %s %d\n", disasmID(ops[1]), name, disasmID(ops[0]), ops[2])

	case 44: // OpConstantComposite
		fmt.Fprintf(out, "         %s = %s %s", disasmID(ops[1]), name, disasmID(ops[0]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(out, " %s", disasmID(ops[i]))
		}
		fmt.Fprintln(out)

	case 54: // OpFunction
		fmt.Fprintf(out, "         %s = %s %s None %s\n", disasmID(ops[1]), name, disasmID(ops[0]), disasmID(ops[3]))

	case 55: // OpFunctionParameter
		fmt.Fprintf(out, "         %s = %s %s\n", disasmID(ops[1]), name, disasmID(ops[0]))

	case 56: // OpFunctionEnd
		fmt.Fprintf(out, "               %s\n", name)

	case 59: // OpVariable
		fmt.Fprintf(out, "         %s = %s %s %s\n", disasmID(ops[1]), name, disasmID(ops[0]), disasmLookup(disasmStorageClasses, ops[2]))

	case 61: // OpLoad
		fmt.Fprintf(out, "         %s = %s %s %s\n", disasmID(ops[1]), name, disasmID(ops[0]), disasmID(ops[2]))

	case 62: // OpStore
		fmt.Fprintf(out, "               %s %s %s\n", name, disasmID(ops[0]), disasmID(ops[1]))

	case 65: // OpAccessChain
		fmt.Fprintf(out, "         %s = %s %s %s", disasmID(ops[1]), name, disasmID(ops[0]), disasmID(ops[2]))
		for i := 3; i < len(ops); i++ {
			fmt.Fprintf(out, " %s", disasmID(ops[i]))
		}
		fmt.Fprintln(out)

	case 79: // OpVectorShuffle
		fmt.Fprintf(out, "         %s = %s %s %s %s", disasmID(ops[1]), name, disasmID(ops[0]), disasmID(ops[2]), disasmID(ops[3]))
		for i := 4; i < len(ops); i++ {
			fmt.Fprintf(out, " %d", ops[i])
		}
		fmt.Fprintln(out)

	case 80: // OpCompositeConstruct
		fmt.Fprintf(out, "         %s = %s %s", disasmID(ops[1]), name, disasmID(ops[0]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(out, " %s", disasmID(ops[i]))
		}
		fmt.Fprintln(out)

	case 81: // OpCompositeExtract
		fmt.Fprintf(out, "         %s = %s %s %s", disasmID(ops[1]), name, disasmID(ops[0]), disasmID(ops[2]))
		for i := 3; i < len(ops); i++ {
			fmt.Fprintf(out, " %d", ops[i])
		}
		fmt.Fprintln(out)

	case 86, 87: // OpSampledImage, OpImageSampleImplicitLod
		fmt.Fprintf(out, "         %s = %s %s %s %s\n", disasmID(ops[1]), name, disasmID(ops[0]), disasmID(ops[2]), disasmID(ops[3]))

	case 248: // OpLabel
		fmt.Fprintf(out, "         %s = %s\n", disasmID(ops[0]), name)

	case 249: // OpBranch
		fmt.Fprintf(out, "               %s %s\n", name, disasmID(ops[0]))

	case 253: // OpReturn
		fmt.Fprintf(out, "               %s\n", name)

	case 254: // OpReturnValue
		fmt.Fprintf(out, "               %s %s\n", name, disasmID(ops[0]))

	default:
		writeGenericInstruction(out, name, opcode, ops)
	}
}

func writeGenericInstruction(out *strings.Builder, name string, opcode uint16, ops []uint32) {
	fmt.Fprintf(out, "         ")
	switch {
	case len(ops) >= 2 && opcode >= 126 && opcode <= 200:
		fmt.Fprintf(out, "%s = %s %s", disasmID(ops[1]), name, disasmID(ops[0]))
		for i := 2; i < len(ops); i++ {
			fmt.Fprintf(out, " %s", disasmID(ops[i]))
		}
	case len(ops) >= 1:
		fmt.Fprintf(out, "%s", name)
		for _, op := range ops {
			fmt.Fprintf(out, " %s", disasmID(op))
		}
	default:
		fmt.Fprintf(out, "%s", name)
	}
	fmt.Fprintln(out)
}

var disasmOpcodeNames = map[uint16]string{
	0: "OpNop", 1: "OpUndef", 2: "OpSourceContinued", 3: "OpSource",
	4: "OpSourceExtension", 5: "OpName", 6: "OpMemberName", 7: "OpString",
	10: "OpExtension", 11: "OpExtInstImport", 12: "OpExtInst",
	14: "OpMemoryModel", 15: "OpEntryPoint", 16: "OpExecutionMode",
	17: "OpCapability", 19: "OpTypeVoid", 20: "OpTypeBool",
	21: "OpTypeInt", 22: "OpTypeFloat", 23: "OpTypeVector",
	24: "OpTypeMatrix", 25: "OpTypeImage", 26: "OpTypeSampler",
	27: "OpTypeSampledImage", 28: "OpTypeArray", 29: "OpTypeRuntimeArray",
	30: "OpTypeStruct", 31: "OpTypeOpaque", 32: "OpTypePointer",
	33: "OpTypeFunction", 41: "OpConstantTrue", 42: "OpConstantFalse",
	43: "OpConstant", 44: "OpConstantComposite", 45: "OpConstantSampler",
	46: "OpConstantNull", 54: "OpFunction", 55: "OpFunctionParameter",
	56: "OpFunctionEnd", 57: "OpFunctionCall", 59: "OpVariable",
	61: "OpLoad", 62: "OpStore", 65: "OpAccessChain",
	71: "OpDecorate", 72: "OpMemberDecorate",
	79: "OpVectorShuffle", 80: "OpCompositeConstruct", 81: "OpCompositeExtract",
	86: "OpSampledImage", 87: "OpImageSampleImplicitLod",
	126: "OpSNegate", 127: "OpFNegate", 128: "OpIAdd", 129: "OpFAdd",
	130: "OpISub", 131: "OpFSub", 132: "OpIMul", 133: "OpFMul",
	134: "OpUDiv", 135: "OpSDiv", 136: "OpFDiv",
	148: "OpDot", 179: "OpSelect", 180: "OpIEqual", 181: "OpINotEqual",
	190: "OpFOrdEqual", 245: "OpPhi", 246: "OpLoopMerge",
	247: "OpSelectionMerge", 248: "OpLabel", 249: "OpBranch",
	250: "OpBranchConditional", 251: "OpSwitch", 252: "OpKill",
	253: "OpReturn", 254: "OpReturnValue", 255: "OpUnreachable",
}

var disasmCapabilities = map[uint32]string{
	0: "Matrix", 1: "Shader", 31: "ClipDistance", 32: "CullDistance",
}

var disasmStorageClasses = map[uint32]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
	4: "Workgroup", 6: "Private", 7: "Function", 9: "PushConstant",
	12: "StorageBuffer",
}

var disasmDecorations = map[uint32]string{
	2: "Block", 6: "ArrayStride", 11: "BuiltIn", 14: "Flat",
	30: "Location", 33: "Binding", 34: "DescriptorSet", 35: "Offset",
}

var disasmBuiltins = map[uint32]string{
	0: "Position", 15: "FragCoord", 22: "FragDepth", 42: "VertexIndex", 43: "InstanceIndex",
}

var disasmExecutionModes = map[uint32]string{
	7: "OriginUpperLeft", 8: "OriginLowerLeft", 9: "EarlyFragmentTests",
}

var disasmExecutionModels = map[uint32]string{
	0: "Vertex", 4: "Fragment", 5: "GLCompute",
}

var disasmDims = map[uint32]string{
	0: "1D", 1: "2D", 2: "3D", 3: "Cube", 4: "Rect", 5: "Buffer", 6: "SubpassData",
}

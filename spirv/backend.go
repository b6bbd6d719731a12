package spirv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/effectc/codegen"
	"github.com/gogpu/effectc/ir"
)

// valueInfo binds an ir.ValueHandle to the SPIR-V id and type that
// represent it, mirroring the handle->id table an expression emitter
// keeps while walking a function body in flat block order.
type valueInfo struct {
	id      uint32
	typeID  uint32
	irType  ir.Type
	pointer bool
	storage StorageClass
}

type pendingLocal struct {
	result ir.ValueHandle
	name   string
	t      ir.Type
}

type entryRequest struct {
	fn    ir.FunctionHandle
	pixel bool
}

type functionState struct {
	handle        ir.FunctionHandle
	sig           ir.Function
	blockIDs      map[ir.BlockHandle]uint32
	values        map[ir.ValueHandle]valueInfo
	pendingLocals []pendingLocal
	localsFlushed bool
}

// Backend lowers an ir.Module into a binary SPIR-V module. It implements
// codegen.Generator.
type Backend struct {
	opts    Options
	builder *ModuleBuilder

	typeCache  map[string]uint32
	constCache map[string]uint32
	extInstSet uint32

	// semanticLocations caches the auto-assigned interface location for
	// a semantic string this package doesn't otherwise recognize, so
	// repeated parameters/results sharing a semantic land on the same
	// location instead of each claiming a fresh one.
	semanticLocations    map[string]uint32
	nextSemanticLocation uint32

	structs []ir.StructDef

	textures    []ir.Texture
	textureVars []uint32
	samplers    []ir.Sampler
	samplerVars []uint32

	uniforms        []ir.Uniform
	uniformBlockVar uint32
	uniformPtrType  uint32

	funcSigs          []ir.Function
	funcIDs           []uint32
	funcTypeIDs       []uint32
	funcReturnTypeIDs []uint32

	cur *functionState

	techniques []ir.Technique
	entries    []entryRequest

	diags codegen.Diagnostics
}

// NewBackend creates a Backend ready to receive Generator calls.
func NewBackend(opts Options) *Backend {
	b := &Backend{
		opts:              opts,
		builder:           NewModuleBuilder(opts.Version),
		typeCache:         make(map[string]uint32),
		constCache:        make(map[string]uint32),
		semanticLocations: make(map[string]uint32),
	}
	b.builder.AddCapability(CapabilityShader)
	b.builder.SetMemoryModel(AddressingLogical, MemoryModelGLSL450)
	b.extInstSet = b.builder.AddExtInstImport("GLSL.std.450")
	return b
}

// --- entity registration ---------------------------------------------

func (b *Backend) DefineStruct(def ir.StructDef) ir.StructHandle {
	h := ir.StructHandle(len(b.structs))
	def.ID = h
	b.structs = append(b.structs, def)
	return h
}

func (b *Backend) DefineTexture(tex ir.Texture) ir.TextureHandle {
	h := ir.TextureHandle(len(b.textures))
	tex.ID = h
	b.textures = append(b.textures, tex)

	imageType := b.builder.AddTypeImage(b.typeID(ir.ScalarType(ir.BaseFloat)))
	ptrType := b.builder.AddTypePointer(StorageClassUniformConstant, imageType)
	v := b.builder.AddVariable(ptrType, StorageClassUniformConstant)
	b.builder.AddName(v, tex.Name)
	b.builder.AddDecorate(v, DecorationDescriptorSet, 0)
	b.builder.AddDecorate(v, DecorationBinding, uint32(len(b.textureVars)))
	b.textureVars = append(b.textureVars, v)
	return h
}

func (b *Backend) DefineSampler(samp ir.Sampler) ir.SamplerHandle {
	h := ir.SamplerHandle(len(b.samplers))
	samp.ID = h
	b.samplers = append(b.samplers, samp)

	samplerType := b.builder.AddTypeSampler()
	ptrType := b.builder.AddTypePointer(StorageClassUniformConstant, samplerType)
	v := b.builder.AddVariable(ptrType, StorageClassUniformConstant)
	b.builder.AddName(v, samp.Name)
	b.builder.AddDecorate(v, DecorationDescriptorSet, 1)
	b.builder.AddDecorate(v, DecorationBinding, uint32(len(b.samplerVars)))
	b.samplerVars = append(b.samplerVars, v)
	return h
}

func (b *Backend) DefineUniform(u ir.Uniform) ir.UniformHandle {
	h := ir.UniformHandle(len(b.uniforms))
	u.ID = h
	b.uniforms = append(b.uniforms, u)
	return h
}

func (b *Backend) DefineVariable(result ir.ValueHandle, name string, t ir.Type) {
	b.cur.pendingLocals = append(b.cur.pendingLocals, pendingLocal{result: result, name: name, t: t})
}

func (b *Backend) DefineParameter(result ir.ValueHandle, p ir.Parameter) {
	tid := b.typeID(p.Type)
	id := b.builder.AddFunctionParameter(tid)
	b.builder.AddName(id, p.Name)
	b.cur.values[result] = valueInfo{id: id, typeID: tid, irType: p.Type}
}

func (b *Backend) DefineFunction(sig ir.Function) ir.FunctionHandle {
	h := ir.FunctionHandle(len(b.funcSigs))
	sig.ID = h
	b.funcSigs = append(b.funcSigs, sig)

	retType := b.typeID(sig.Result.Type)
	paramTypes := make([]uint32, len(sig.Params))
	for i, p := range sig.Params {
		paramTypes[i] = b.typeID(p.Type)
	}
	funcType := b.builder.AddTypeFunction(retType, paramTypes...)

	id := b.builder.PreallocateID()
	b.builder.AddName(id, sig.Name)

	b.funcIDs = append(b.funcIDs, id)
	b.funcTypeIDs = append(b.funcTypeIDs, funcType)
	b.funcReturnTypeIDs = append(b.funcReturnTypeIDs, retType)
	return h
}

func (b *Backend) DefineTechnique(tech ir.Technique) {
	b.techniques = append(b.techniques, tech)
}

func (b *Backend) CreateEntryPoint(fn ir.FunctionHandle, isPixelStage bool) ir.FunctionHandle {
	b.entries = append(b.entries, entryRequest{fn: fn, pixel: isPixelStage})
	return fn
}

// --- function scoping --------------------------------------------------

func (b *Backend) EnterFunction(fn ir.FunctionHandle) {
	sig := b.funcSigs[fn]
	cur := &functionState{
		handle:   fn,
		sig:      sig,
		blockIDs: make(map[ir.BlockHandle]uint32, len(sig.Blocks)),
		values:   make(map[ir.ValueHandle]valueInfo),
	}
	for i := range sig.Blocks {
		cur.blockIDs[sig.Blocks[i].ID] = b.builder.PreallocateID()
	}
	b.cur = cur
	b.builder.AddFunctionWithID(b.funcIDs[fn], b.funcReturnTypeIDs[fn], b.funcTypeIDs[fn], FunctionControlNone)
}

func (b *Backend) LeaveFunction() {
	b.builder.AddFunctionEnd()
	b.cur = nil
}

// --- block structure -----------------------------------------------------

func (b *Backend) SetBlock(bh ir.BlockHandle) {}

func (b *Backend) EnterBlock(bh ir.BlockHandle) {
	id := b.cur.blockIDs[bh]
	b.builder.AddLabelWithID(id)
	if !b.cur.localsFlushed {
		b.cur.localsFlushed = true
		// Function-storage OpVariable instructions must be the first
		// instructions in a function's first block, right after its
		// label, so locals are flushed here rather than when declared.
		for _, l := range b.cur.pendingLocals {
			elem := b.typeID(l.t)
			ptrType := b.builder.AddTypePointer(StorageClassFunction, elem)
			v := b.builder.AddFunctionVariable(ptrType, StorageClassFunction)
			b.builder.AddName(v, l.name)
			b.cur.values[l.result] = valueInfo{id: v, typeID: elem, irType: l.t, pointer: true, storage: StorageClassFunction}
		}
	}
}

func (b *Backend) LeaveBlockAndBranch(target ir.BlockHandle) {
	b.builder.AddBranch(b.cur.blockIDs[target])
}

func (b *Backend) LeaveBlockAndBranchConditional(cond ir.ValueHandle, trueBlock, falseBlock ir.BlockHandle) {
	b.builder.AddBranchConditional(b.cur.values[cond].id, b.cur.blockIDs[trueBlock], b.cur.blockIDs[falseBlock])
}

func (b *Backend) LeaveBlockAndSwitch(selector ir.ValueHandle, cases []ir.SwitchCase, def ir.BlockHandle) {
	literals := make([]uint32, len(cases))
	labels := make([]uint32, len(cases))
	for i, c := range cases {
		literals[i] = uint32(c.Value)
		labels[i] = b.cur.blockIDs[c.Target]
	}
	b.builder.AddSwitch(b.cur.values[selector].id, b.cur.blockIDs[def], literals, labels)
}

func (b *Backend) LeaveBlockAndReturn(value *ir.ValueHandle) {
	if value == nil {
		b.builder.AddReturn()
		return
	}
	b.builder.AddReturnValue(b.cur.values[*value].id)
}

func (b *Backend) LeaveBlockAndKill() {
	b.builder.AddKill()
}

// --- structure hints, emitted right before a block's terminator -------

func (b *Backend) EmitIf(hint ir.SelectionHint) {
	b.builder.AddSelectionMerge(b.cur.blockIDs[hint.Merge], selectionControl(hint.Flags))
}

func (b *Backend) EmitLoop(hint ir.LoopHint) {
	b.builder.AddLoopMerge(b.cur.blockIDs[hint.Merge], b.cur.blockIDs[hint.Continue], loopControl(hint.Flags))
}

func (b *Backend) EmitSwitch(hint ir.SwitchHint) {
	b.builder.AddSelectionMerge(b.cur.blockIDs[hint.Merge], selectionControl(hint.Flags))
}

func selectionControl(f ir.SelectionFlags) SelectionControl {
	switch f {
	case ir.SelectionFlatten:
		return SelectionControlFlatten
	case ir.SelectionDontFlatten:
		return SelectionControlDontFlatten
	default:
		return SelectionControlNone
	}
}

func loopControl(f ir.LoopFlags) LoopControl {
	switch f {
	case ir.LoopUnroll:
		return LoopControlUnroll
	case ir.LoopDontUnroll:
		return LoopControlDontUnroll
	default:
		return LoopControlNone
	}
}

// --- value-producing statements -----------------------------------------

func (b *Backend) EmitConstant(result ir.ValueHandle, c ir.Constant) {
	id := b.internConstant(c)
	b.cur.values[result] = valueInfo{id: id, typeID: b.typeID(c.Type), irType: c.Type}
}

func (b *Backend) EmitUnaryOp(result ir.ValueHandle, op ir.UnaryOp, t ir.Type, operand ir.ValueHandle) {
	resultType := b.typeID(t)
	operandID := b.cur.values[operand].id
	var id uint32
	switch op {
	case ir.UnaryNegate:
		if t.Base == ir.BaseFloat {
			id = b.builder.AddUnaryOp(OpFNegate, resultType, operandID)
		} else {
			id = b.builder.AddUnaryOp(OpSNegate, resultType, operandID)
		}
	case ir.UnaryNot:
		id = b.builder.AddUnaryOp(OpLogicalNot, resultType, operandID)
	case ir.UnaryBitwiseNot:
		id = b.builder.AddUnaryOp(OpNot, resultType, operandID)
	case ir.UnaryPreIncrement, ir.UnaryPostIncrement:
		id = b.builder.AddBinaryOp(binaryOpcode(ir.BinaryAdd, t.Base), resultType, operandID, b.constOne(t))
	case ir.UnaryPreDecrement, ir.UnaryPostDecrement:
		id = b.builder.AddBinaryOp(binaryOpcode(ir.BinarySubtract, t.Base), resultType, operandID, b.constOne(t))
	}
	b.cur.values[result] = valueInfo{id: id, typeID: resultType, irType: t}
}

func (b *Backend) EmitBinaryOp(result ir.ValueHandle, op ir.BinaryOp, t ir.Type, left, right ir.ValueHandle) {
	resultType := binaryResultType(op, t)
	opcode := binaryOpcode(op, t.Base)
	id := b.builder.AddBinaryOp(opcode, b.typeID(resultType), b.cur.values[left].id, b.cur.values[right].id)
	b.cur.values[result] = valueInfo{id: id, typeID: b.typeID(resultType), irType: resultType}
}

func (b *Backend) EmitTernaryOp(result ir.ValueHandle, t ir.Type, cond, accept, reject ir.ValueHandle) {
	resultType := b.typeID(t)
	id := b.builder.AddSelect(resultType, b.cur.values[cond].id, b.cur.values[accept].id, b.cur.values[reject].id)
	b.cur.values[result] = valueInfo{id: id, typeID: resultType, irType: t}
}

func (b *Backend) EmitPhi(result ir.ValueHandle, t ir.Type, incoming []ir.PhiEdge) {
	values := make([]uint32, len(incoming))
	blocks := make([]uint32, len(incoming))
	for i, e := range incoming {
		values[i] = b.cur.values[e.Value].id
		blocks[i] = b.cur.blockIDs[e.Block]
	}
	resultType := b.typeID(t)
	id := b.builder.AddPhi(resultType, values, blocks)
	b.cur.values[result] = valueInfo{id: id, typeID: resultType, irType: t}
}

func (b *Backend) EmitCall(result *ir.ValueHandle, fn ir.FunctionHandle, args []ir.ValueHandle) {
	argIDs := make([]uint32, len(args))
	for i, a := range args {
		argIDs[i] = b.cur.values[a].id
	}
	resultType := b.funcReturnTypeIDs[fn]
	id := b.builder.AddFunctionCall(resultType, b.funcIDs[fn], argIDs...)
	if result != nil {
		b.cur.values[*result] = valueInfo{id: id, typeID: resultType, irType: b.funcSigs[fn].Result.Type}
	}
}

func (b *Backend) EmitCallIntrinsic(result ir.ValueHandle, intr ir.Intrinsic, t ir.Type, args []ir.ValueHandle) {
	argIDs := make([]uint32, len(args))
	for i, a := range args {
		argIDs[i] = b.cur.values[a].id
	}
	resultType := b.typeID(t)
	id := b.emitIntrinsic(intr, t, resultType, argIDs)
	b.cur.values[result] = valueInfo{id: id, typeID: resultType, irType: t}
}

func (b *Backend) emitIntrinsic(intr ir.Intrinsic, t ir.Type, resultType uint32, args []uint32) uint32 {
	switch intr {
	case ir.IntrinsicDot:
		return b.builder.AddBinaryOp(OpDot, resultType, args[0], args[1])
	case ir.IntrinsicTranspose:
		return b.builder.AddUnaryOp(OpTranspose, resultType, args[0])
	case ir.IntrinsicMad:
		mul := b.builder.AddBinaryOp(binaryOpcode(ir.BinaryMultiply, t.Base), resultType, args[0], args[1])
		return b.builder.AddBinaryOp(binaryOpcode(ir.BinaryAdd, t.Base), resultType, mul, args[2])
	case ir.IntrinsicSaturate:
		zero, one := b.constZeroOne(t)
		return b.builder.AddExtInst(resultType, b.extInstSet, uint32(glslClamp(t.Base)), args[0], zero, one)
	case ir.IntrinsicSampleTexture, ir.IntrinsicSampleTextureBias, ir.IntrinsicSampleTextureLevel, ir.IntrinsicSampleTextureGrad:
		sampled := b.builder.AddSampledImage(b.sampledImageType(), args[0], args[1])
		return b.builder.AddImageSampleImplicitLod(resultType, sampled, args[2])
	case ir.IntrinsicLoadTexture:
		return b.builder.AddImageFetch(resultType, args[0], args[1])
	case ir.IntrinsicGetTextureDimensions:
		lod := args[len(args)-1]
		return b.builder.AddBinaryOp(OpImageQuerySizeLod, resultType, args[0], lod)
	case ir.IntrinsicDdx, ir.IntrinsicDdy, ir.IntrinsicFwidth:
		b.diags.Warning("", "derivative intrinsics are not supported by this target and pass through unchanged")
		return args[0]
	}
	if ext, ok := glslExtInstFor(intr, t.Base); ok {
		return b.builder.AddExtInst(resultType, b.extInstSet, uint32(ext), args...)
	}
	b.diags.Error("", fmt.Sprintf("unsupported intrinsic %d", intr))
	return args[0]
}

func glslClamp(base ir.TypeBase) GLSLExtInst {
	switch base {
	case ir.BaseFloat:
		return GLSLFClamp
	case ir.BaseUint:
		return GLSLUClamp
	default:
		return GLSLSClamp
	}
}

func glslExtInstFor(intr ir.Intrinsic, base ir.TypeBase) (GLSLExtInst, bool) {
	switch intr {
	case ir.IntrinsicAbs:
		if base == ir.BaseFloat {
			return GLSLFAbs, true
		}
		return GLSLSAbs, true
	case ir.IntrinsicMin:
		if base == ir.BaseFloat {
			return GLSLFMin, true
		} else if base == ir.BaseUint {
			return GLSLUMin, true
		}
		return GLSLSMin, true
	case ir.IntrinsicMax:
		if base == ir.BaseFloat {
			return GLSLFMax, true
		} else if base == ir.BaseUint {
			return GLSLUMax, true
		}
		return GLSLSMax, true
	case ir.IntrinsicClamp:
		return glslClamp(base), true
	case ir.IntrinsicCos:
		return GLSLCos, true
	case ir.IntrinsicCosh:
		return GLSLCosh, true
	case ir.IntrinsicSin:
		return GLSLSin, true
	case ir.IntrinsicSinh:
		return GLSLSinh, true
	case ir.IntrinsicTan:
		return GLSLTan, true
	case ir.IntrinsicTanh:
		return GLSLTanh, true
	case ir.IntrinsicAcos:
		return GLSLAcos, true
	case ir.IntrinsicAsin:
		return GLSLAsin, true
	case ir.IntrinsicAtan:
		return GLSLAtan, true
	case ir.IntrinsicAtan2:
		return GLSLAtan2, true
	case ir.IntrinsicRadians:
		return GLSLRadians, true
	case ir.IntrinsicDegrees:
		return GLSLDegrees, true
	case ir.IntrinsicCeil:
		return GLSLCeil, true
	case ir.IntrinsicFloor:
		return GLSLFloor, true
	case ir.IntrinsicRound:
		return GLSLRound, true
	case ir.IntrinsicFrac:
		return GLSLFract, true
	case ir.IntrinsicTrunc:
		return GLSLTrunc, true
	case ir.IntrinsicExp:
		return GLSLExp, true
	case ir.IntrinsicExp2:
		return GLSLExp2, true
	case ir.IntrinsicLog:
		return GLSLLog, true
	case ir.IntrinsicLog2:
		return GLSLLog2, true
	case ir.IntrinsicPow:
		return GLSLPow, true
	case ir.IntrinsicCross:
		return GLSLCross, true
	case ir.IntrinsicDistance:
		return GLSLDistance, true
	case ir.IntrinsicLength:
		return GLSLLength, true
	case ir.IntrinsicNormalize:
		return GLSLNormalize, true
	case ir.IntrinsicReflect:
		return GLSLReflect, true
	case ir.IntrinsicRefract:
		return GLSLRefract, true
	case ir.IntrinsicSign:
		if base == ir.BaseFloat {
			return GLSLFSign, true
		}
		return GLSLSSign, true
	case ir.IntrinsicLerp:
		return GLSLFMix, true
	case ir.IntrinsicStep:
		return GLSLStep, true
	case ir.IntrinsicSmoothstep:
		return GLSLSmoothStep, true
	case ir.IntrinsicSqrt:
		return GLSLSqrt, true
	case ir.IntrinsicRsqrt:
		return GLSLInverseSqrt, true
	case ir.IntrinsicDeterminant:
		return GLSLDeterminant, true
	}
	return 0, false
}

func (b *Backend) EmitConstruct(result ir.ValueHandle, t ir.Type, components []ir.ValueHandle) {
	ids := make([]uint32, len(components))
	for i, c := range components {
		ids[i] = b.cur.values[c].id
	}
	resultType := b.typeID(t)
	id := b.builder.AddCompositeConstruct(resultType, ids...)
	b.cur.values[result] = valueInfo{id: id, typeID: resultType, irType: t}
}

// --- access-chain load/store --------------------------------------------

func (b *Backend) EmitLoad(result ir.ValueHandle, chain ir.Expression) {
	base := b.cur.values[chain.Base]
	indices, rest := chain.Leading()

	ptr := base.id
	curType := base.irType
	if len(indices) > 0 {
		idxIDs := make([]uint32, len(indices))
		for i, op := range indices {
			idxIDs[i] = b.cur.values[op.IndexValue].id
			curType = op.IndexTarget
		}
		elem := b.typeID(curType)
		ptrType := b.builder.AddTypePointer(base.storage, elem)
		ptr = b.builder.AddAccessChain(ptrType, base.id, idxIDs...)
	}

	val := b.builder.AddLoad(b.typeID(curType), ptr)
	val, curType = b.applyTrailingOps(val, curType, rest)
	b.cur.values[result] = valueInfo{id: val, typeID: b.typeID(curType), irType: curType}
}

func (b *Backend) EmitStore(chain ir.Expression, value ir.ValueHandle, valueType ir.Type) {
	base := b.cur.values[chain.Base]
	indices, rest := chain.Leading()

	ptr := base.id
	curType := base.irType
	if len(indices) > 0 {
		idxIDs := make([]uint32, len(indices))
		for i, op := range indices {
			idxIDs[i] = b.cur.values[op.IndexValue].id
			curType = op.IndexTarget
		}
		elem := b.typeID(curType)
		ptrType := b.builder.AddTypePointer(base.storage, elem)
		ptr = b.builder.AddAccessChain(ptrType, base.id, idxIDs...)
	}

	valID := b.cur.values[value].id
	if len(rest) == 0 {
		b.builder.AddStore(ptr, valID)
		return
	}

	// A swizzled store (e.g. "color.rgb = ...") reads the current
	// composite, inserts the new lanes, and writes the whole value back.
	current := b.builder.AddLoad(b.typeID(curType), ptr)
	for _, op := range rest {
		if op.Kind != ir.OpSwizzle {
			continue
		}
		w := op.SwizzleWidth()
		if w == 1 {
			current = b.builder.AddCompositeInsert(b.typeID(curType), valID, current, uint32(op.SwizzlePattern[0]))
			continue
		}
		for i := 0; i < w; i++ {
			lane := uint32(op.SwizzlePattern[i])
			laneType := b.typeID(ir.ScalarType(curType.Base))
			laneVal := b.builder.AddCompositeExtract(laneType, valID, uint32(i))
			current = b.builder.AddCompositeInsert(b.typeID(curType), laneVal, current, lane)
		}
	}
	b.builder.AddStore(ptr, current)
}

func (b *Backend) applyTrailingOps(val uint32, curType ir.Type, ops []ir.AccessOp) (uint32, ir.Type) {
	for _, op := range ops {
		switch op.Kind {
		case ir.OpCast:
			val = b.emitCast(op.CastFrom, op.CastTo, val)
			curType = op.CastTo
		case ir.OpSwizzle:
			w := op.SwizzleWidth()
			if w == 1 {
				val = b.builder.AddCompositeExtract(b.typeID(ir.ScalarType(curType.Base)), val, uint32(op.SwizzlePattern[0]))
				curType = ir.ScalarType(curType.Base)
				continue
			}
			comps := make([]uint32, w)
			for i := 0; i < w; i++ {
				comps[i] = uint32(op.SwizzlePattern[i])
			}
			resultType := ir.VectorType(curType.Base, uint8(w))
			val = b.builder.AddVectorShuffle(b.typeID(resultType), val, val, comps)
			curType = resultType
		case ir.OpIndex:
			b.diags.Warning("", "dynamic index on an rvalue composite is not supported; value passed through unchanged")
		}
	}
	return val, curType
}

func (b *Backend) emitCast(from, to ir.Type, val uint32) uint32 {
	toType := b.typeID(to)
	switch {
	case from.Base == ir.BaseFloat && to.Base == ir.BaseInt:
		return b.builder.AddUnaryOp(OpConvertFToS, toType, val)
	case from.Base == ir.BaseFloat && to.Base == ir.BaseUint:
		return b.builder.AddUnaryOp(OpConvertFToU, toType, val)
	case from.Base == ir.BaseInt && to.Base == ir.BaseFloat:
		return b.builder.AddUnaryOp(OpConvertSToF, toType, val)
	case from.Base == ir.BaseUint && to.Base == ir.BaseFloat:
		return b.builder.AddUnaryOp(OpConvertUToF, toType, val)
	case from.Base == ir.BaseInt && to.Base == ir.BaseUint, from.Base == ir.BaseUint && to.Base == ir.BaseInt:
		return b.builder.AddUnaryOp(OpBitcast, toType, val)
	default:
		return val
	}
}

// --- type/opcode helpers --------------------------------------------------

func binaryOpcode(op ir.BinaryOp, base ir.TypeBase) OpCode {
	isFloat := base == ir.BaseFloat
	isUint := base == ir.BaseUint
	isBool := base == ir.BaseBool
	switch op {
	case ir.BinaryAdd:
		if isFloat {
			return OpFAdd
		}
		return OpIAdd
	case ir.BinarySubtract:
		if isFloat {
			return OpFSub
		}
		return OpISub
	case ir.BinaryMultiply:
		if isFloat {
			return OpFMul
		}
		return OpIMul
	case ir.BinaryDivide:
		if isFloat {
			return OpFDiv
		} else if isUint {
			return OpUDiv
		}
		return OpSDiv
	case ir.BinaryModulo:
		if isFloat {
			return OpFRem
		} else if isUint {
			return OpUMod
		}
		return OpSRem
	case ir.BinaryEqual:
		if isFloat {
			return OpFOrdEqual
		} else if isBool {
			return OpLogicalEqual
		}
		return OpIEqual
	case ir.BinaryNotEqual:
		if isFloat {
			return OpFOrdNotEqual
		} else if isBool {
			return OpLogicalNotEqual
		}
		return OpINotEqual
	case ir.BinaryLess:
		if isFloat {
			return OpFOrdLessThan
		} else if isUint {
			return OpULessThan
		}
		return OpSLessThan
	case ir.BinaryLessEqual:
		if isFloat {
			return OpFOrdLessThanEqual
		} else if isUint {
			return OpULessThanEqual
		}
		return OpSLessThanEqual
	case ir.BinaryGreater:
		if isFloat {
			return OpFOrdGreaterThan
		} else if isUint {
			return OpUGreaterThan
		}
		return OpSGreaterThan
	case ir.BinaryGreaterEqual:
		if isFloat {
			return OpFOrdGreaterThanEqual
		} else if isUint {
			return OpUGreaterThanEqual
		}
		return OpSGreaterThanEqual
	case ir.BinaryAnd:
		return OpBitwiseAnd
	case ir.BinaryXor:
		return OpBitwiseXor
	case ir.BinaryOr:
		return OpBitwiseOr
	case ir.BinaryLogicalAnd:
		return OpLogicalAnd
	case ir.BinaryLogicalOr:
		return OpLogicalOr
	case ir.BinaryShiftLeft:
		return OpShiftLeftLogical
	case ir.BinaryShiftRight:
		if isUint {
			return OpShiftRightLogical
		}
		return OpShiftRightArithmetic
	}
	return OpNop
}

func binaryResultType(op ir.BinaryOp, t ir.Type) ir.Type {
	switch op {
	case ir.BinaryEqual, ir.BinaryNotEqual, ir.BinaryLess, ir.BinaryLessEqual,
		ir.BinaryGreater, ir.BinaryGreaterEqual, ir.BinaryLogicalAnd, ir.BinaryLogicalOr:
		if t.Rows > 1 {
			return ir.VectorType(ir.BaseBool, t.Rows)
		}
		return ir.ScalarType(ir.BaseBool)
	default:
		return t
	}
}

// typeID interns t into the module's type section, returning its id.
func (b *Backend) typeID(t ir.Type) uint32 {
	key := typeKey(t)
	if id, ok := b.typeCache[key]; ok {
		return id
	}
	id := b.buildType(t)
	b.typeCache[key] = id
	return id
}

func (b *Backend) buildType(t ir.Type) uint32 {
	if t.IsArray() && !t.IsUnsizedArray() {
		elem := b.typeID(t.Elem())
		var length ir.Constant
		length.Type = ir.ScalarType(ir.BaseUint)
		length.SetUint(0, uint32(t.ArrayLength))
		return b.builder.AddTypeArray(elem, b.internConstant(length))
	}
	switch t.Base {
	case ir.BaseVoid:
		return b.builder.AddTypeVoid()
	case ir.BaseBool:
		return b.builder.AddTypeBool()
	case ir.BaseInt:
		scalar := b.builder.AddTypeInt(32, true)
		return b.wrapShape(scalar, t)
	case ir.BaseUint:
		scalar := b.builder.AddTypeInt(32, false)
		return b.wrapShape(scalar, t)
	case ir.BaseFloat:
		scalar := b.builder.AddTypeFloat(32)
		return b.wrapShape(scalar, t)
	case ir.BaseStruct:
		return b.buildStructType(t.Struct)
	case ir.BaseTexture:
		return b.builder.AddTypeImage(b.typeID(ir.ScalarType(ir.BaseFloat)))
	case ir.BaseSampler:
		return b.builder.AddTypeSampler()
	}
	return b.builder.AddTypeVoid()
}

func (b *Backend) wrapShape(scalar uint32, t ir.Type) uint32 {
	if t.IsMatrix() {
		col := b.builder.AddTypeVector(scalar, uint32(t.Rows))
		return b.builder.AddTypeMatrix(col, uint32(t.Cols))
	}
	if t.IsVector() {
		return b.builder.AddTypeVector(scalar, uint32(t.Rows))
	}
	return scalar
}

func (b *Backend) buildStructType(h ir.StructHandle) uint32 {
	def := b.structs[h]
	memberTypes := make([]uint32, len(def.Members))
	for i, m := range def.Members {
		memberTypes[i] = b.typeID(m.Type)
	}
	id := b.builder.AddTypeStruct(memberTypes...)
	b.builder.AddDecorate(id, DecorationBlock)
	for i, m := range def.Members {
		b.builder.AddMemberName(id, uint32(i), m.Name)
	}
	return id
}

func (b *Backend) sampledImageType() uint32 {
	img := b.builder.AddTypeImage(b.typeID(ir.ScalarType(ir.BaseFloat)))
	return b.builder.AddTypeSampledImage(img)
}

func typeKey(t ir.Type) string {
	return fmt.Sprintf("%d:%d:%d:%d:%d", t.Base, t.Rows, t.Cols, t.ArrayLength, t.Struct)
}

func (b *Backend) internConstant(c ir.Constant) uint32 {
	key := fmt.Sprintf("%s|%v|%s", typeKey(c.Type), c.Bits, c.String)
	if id, ok := b.constCache[key]; ok {
		return id
	}
	tid := b.typeID(c.Type)
	var id uint32
	n := c.Type.ComponentCount()
	if n <= 1 {
		id = b.builder.AddConstant(tid, c.Bits[0])
	} else {
		lanes := make([]uint32, n)
		scalarType := b.typeID(ir.ScalarType(c.Type.Base))
		for i := 0; i < n; i++ {
			lanes[i] = b.builder.AddConstant(scalarType, c.Bits[i])
		}
		id = b.builder.AddConstantComposite(tid, lanes...)
	}
	b.constCache[key] = id
	return id
}

func (b *Backend) constOne(t ir.Type) uint32 {
	var c ir.Constant
	c.Type = ir.ScalarType(t.Base)
	if t.Base == ir.BaseFloat {
		c.SetFloat(0, 1)
	} else {
		c.SetInt(0, 1)
	}
	return b.internConstant(c)
}

func (b *Backend) constZeroOne(t ir.Type) (uint32, uint32) {
	var zero, one ir.Constant
	zero.Type = t
	one.Type = t
	n := t.ComponentCount()
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		one.SetFloat(i, 1)
	}
	return b.internConstant(zero), b.internConstant(one)
}

// --- result assembly -----------------------------------------------------

// WriteResult finalizes the uniform block layout and every requested
// entry point, then assembles the module into binary SPIR-V.
func (b *Backend) WriteResult() (codegen.Result, error) {
	b.finalizeUniformBlock()
	for _, req := range b.entries {
		b.emitEntryPoint(req)
	}

	res := codegen.Result{
		SPIRV:       b.builder.Build(),
		Textures:    b.textures,
		Samplers:    b.samplers,
		Uniforms:    b.uniforms,
		Diagnostics: b.diags,
	}
	return res, b.diags.Err()
}

func (b *Backend) finalizeUniformBlock() {
	if len(b.uniforms) == 0 {
		return
	}
	uniformLayout(b.uniforms)

	memberTypes := make([]uint32, len(b.uniforms))
	for i, u := range b.uniforms {
		memberTypes[i] = b.typeID(u.Type)
	}
	blockType := b.builder.AddTypeStruct(memberTypes...)
	b.builder.AddDecorate(blockType, DecorationBlock)
	for i, u := range b.uniforms {
		b.builder.AddMemberName(blockType, uint32(i), u.Name)
		b.builder.AddMemberDecorate(blockType, uint32(i), DecorationOffset, u.Offset)
	}
	ptrType := b.builder.AddTypePointer(StorageClassUniform, blockType)
	b.uniformBlockVar = b.builder.AddVariable(ptrType, StorageClassUniform)
	b.uniformPtrType = ptrType
	b.builder.AddDecorate(b.uniformBlockVar, DecorationDescriptorSet, 0)
	b.builder.AddDecorate(b.uniformBlockVar, DecorationBinding, 0)
}

// semanticInterface maps an HLSL-style semantic string to either a
// SPIR-V built-in or an explicit interface location. pixel reports
// whether the entry point under construction is the pixel stage, which
// disambiguates SV_POSITION: a vertex shader's SV_POSITION is its
// clip-space output (BuiltIn Position), while a pixel shader's
// SV_POSITION is the rasterized fragment coordinate it reads as input
// (BuiltIn FragCoord) - the common case for a post-processing effect
// sampling its own screen position.
//
// COLORn, SV_TARGETn and TEXCOORDn carry their location in a numeric
// suffix and are honored verbatim. Anything else gets a monotonically
// increasing location starting at 10, keyed by the semantic string so
// repeated uses agree on one slot.
func (b *Backend) semanticInterface(semantic string, pixel bool) (bi BuiltIn, isBuiltin bool, location uint32) {
	switch semantic {
	case "SV_POSITION":
		if pixel {
			return BuiltInFragCoord, true, 0
		}
		return BuiltInPosition, true, 0
	case "SV_VERTEXID":
		return BuiltInVertexIndex, true, 0
	case "SV_DEPTH":
		return BuiltInFragDepth, true, 0
	case "SV_POINTSIZE":
		return BuiltInPointSize, true, 0
	}
	for _, prefix := range []string{"SV_TARGET", "COLOR", "TEXCOORD"} {
		if n, ok := semanticLocationSuffix(semantic, prefix); ok {
			return 0, false, n
		}
	}
	return 0, false, b.autoSemanticLocation(semantic)
}

// semanticLocationSuffix reports the numeric suffix of semantic after
// prefix, e.g. ("TEXCOORD3", "TEXCOORD") -> (3, true).
func semanticLocationSuffix(semantic, prefix string) (uint32, bool) {
	if !strings.HasPrefix(semantic, prefix) {
		return 0, false
	}
	digits := semantic[len(prefix):]
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

func (b *Backend) autoSemanticLocation(semantic string) uint32 {
	if loc, ok := b.semanticLocations[semantic]; ok {
		return loc
	}
	if b.nextSemanticLocation == 0 {
		b.nextSemanticLocation = 10
	}
	loc := b.nextSemanticLocation
	b.nextSemanticLocation++
	b.semanticLocations[semantic] = loc
	return loc
}

// interfaceBinding records the Input/Output variable(s) backing one
// entry-point parameter or result: a single id for a scalar/vector
// value, or one id per member (in declaration order) for a struct.
type interfaceBinding struct {
	vars []uint32
}

// emitEntryPoint builds the input/output interface globals for fn and
// wraps it in a stage entry-point stub that loads inputs, calls fn, and
// stores its result. A struct-typed parameter or result is split into
// one interface variable per member and assembled/disassembled with
// OpCompositeConstruct/OpCompositeExtract around the call, since SPIR-V
// has no notion of a struct crossing the Input/Output interface as one
// variable.
func (b *Backend) emitEntryPoint(req entryRequest) {
	sig := b.funcSigs[req.fn]

	var ifaces []uint32
	paramTypeIDs := make([]uint32, len(sig.Params))
	inputs := make([]interfaceBinding, len(sig.Params))

	for i, p := range sig.Params {
		paramTypeIDs[i] = b.typeID(p.Type)
		if p.Type.Base == ir.BaseStruct {
			def := b.structs[p.Type.Struct]
			vars := make([]uint32, len(def.Members))
			for mi, m := range def.Members {
				v := b.addInterfaceVar(StorageClassInput, m.Type, p.Name+"_"+m.Name, m.Semantic, req.pixel)
				vars[mi] = v
				ifaces = append(ifaces, v)
			}
			inputs[i] = interfaceBinding{vars: vars}
			continue
		}
		v := b.addInterfaceVar(StorageClassInput, p.Type, p.Name, p.Semantic, req.pixel)
		inputs[i] = interfaceBinding{vars: []uint32{v}}
		ifaces = append(ifaces, v)
	}

	hasOutput := sig.Result.Type.Base != ir.BaseVoid
	outputIsStruct := hasOutput && sig.Result.Type.Base == ir.BaseStruct
	var outputStruct ir.StructDef
	var outputs interfaceBinding
	if outputIsStruct {
		outputStruct = b.structs[sig.Result.Type.Struct]
		outputs.vars = make([]uint32, len(outputStruct.Members))
		for mi, m := range outputStruct.Members {
			v := b.addInterfaceVar(StorageClassOutput, m.Type, sig.Name+"_out_"+m.Name, m.Semantic, req.pixel)
			outputs.vars[mi] = v
			ifaces = append(ifaces, v)
		}
	} else if hasOutput {
		v := b.addInterfaceVar(StorageClassOutput, sig.Result.Type, sig.Name+"_out", sig.Result.Semantic, req.pixel)
		outputs.vars = []uint32{v}
		ifaces = append(ifaces, v)
	}

	voidType := b.typeID(ir.ScalarType(ir.BaseVoid))
	stubType := b.builder.AddTypeFunction(voidType)
	stubID := b.builder.PreallocateID()
	stage := "vs_main"
	if req.pixel {
		stage = "ps_main"
	}
	b.builder.AddName(stubID, sig.Name+"_"+stage)

	b.builder.AddFunctionWithID(stubID, voidType, stubType, FunctionControlNone)
	b.builder.AddLabelWithID(b.builder.PreallocateID())

	argIDs := make([]uint32, len(sig.Params))
	for i, p := range sig.Params {
		if p.Type.Base == ir.BaseStruct {
			def := b.structs[p.Type.Struct]
			parts := make([]uint32, len(def.Members))
			for mi, m := range def.Members {
				parts[mi] = b.builder.AddLoad(b.typeID(m.Type), inputs[i].vars[mi])
			}
			argIDs[i] = b.builder.AddCompositeConstruct(paramTypeIDs[i], parts...)
			continue
		}
		argIDs[i] = b.builder.AddLoad(paramTypeIDs[i], inputs[i].vars[0])
	}

	retType := b.funcReturnTypeIDs[req.fn]
	callID := b.builder.AddFunctionCall(retType, b.funcIDs[req.fn], argIDs...)
	if outputIsStruct {
		for mi, m := range outputStruct.Members {
			part := b.builder.AddCompositeExtract(b.typeID(m.Type), callID, uint32(mi))
			b.builder.AddStore(outputs.vars[mi], part)
		}
	} else if hasOutput {
		b.builder.AddStore(outputs.vars[0], callID)
	}
	b.builder.AddReturn()
	b.builder.AddFunctionEnd()

	execModel := ExecutionModelVertex
	if req.pixel {
		execModel = ExecutionModelFragment
	}
	b.builder.AddEntryPoint(execModel, stubID, sig.Name+"_"+stage, ifaces)
	if req.pixel {
		b.builder.AddExecutionMode(stubID, ExecutionModeOriginUpperLeft)
	}
}

// addInterfaceVar declares one Input/Output interface variable of type
// t, decorated per semantic's builtin/location mapping. A location
// variable also carries the NoPerspective, Centroid and Flat decorations
// matching t's interpolation qualifiers.
func (b *Backend) addInterfaceVar(storage StorageClass, t ir.Type, name, semantic string, pixel bool) uint32 {
	tid := b.typeID(t)
	ptrType := b.builder.AddTypePointer(storage, tid)
	v := b.builder.AddVariable(ptrType, storage)
	b.builder.AddName(v, name)
	if bi, ok, loc := b.semanticInterface(semantic, pixel); ok {
		b.builder.AddDecorate(v, DecorationBuiltIn, uint32(bi))
	} else {
		b.builder.AddDecorate(v, DecorationLocation, loc)
		if t.Qualifiers.Has(ir.QualNoPerspective) {
			b.builder.AddDecorate(v, DecorationNoPerspective)
		}
		if t.Qualifiers.Has(ir.QualCentroid) {
			b.builder.AddDecorate(v, DecorationCentroid)
		}
		if t.Qualifiers.Has(ir.QualNoInterpolation) {
			b.builder.AddDecorate(v, DecorationFlat)
		}
	}
	return v
}

package codegen

import "github.com/gogpu/effectc/ir"

// Generator is the backend-neutral contract a frontend drives a lowering
// pass through. spirv.Backend and hlsl.Backend both implement it.
//
// Every ir.ValueHandle passed to a "produces a value" method is the
// handle the IR itself already assigned that value (the Result field of
// the originating ir.StmtXxx); the Generator's job is to bind that handle
// to whatever internal representation it uses (a SPIR-V result id, an
// HLSL "const T _id = expr;" name) so later calls addressing the same
// handle — as an operand, or as the Base of an access-chain Expression —
// resolve to the same emitted value. This mirrors how each backend's
// expression emitter keeps a handle→id table while walking a function
// body in flat block order.
type Generator interface {
	// Entity registration. Each returns an id the caller references later.
	DefineStruct(def ir.StructDef) ir.StructHandle
	DefineTexture(tex ir.Texture) ir.TextureHandle
	DefineSampler(samp ir.Sampler) ir.SamplerHandle
	DefineUniform(u ir.Uniform) ir.UniformHandle
	DefineVariable(result ir.ValueHandle, name string, t ir.Type)
	DefineParameter(result ir.ValueHandle, p ir.Parameter)
	DefineFunction(sig ir.Function) ir.FunctionHandle
	DefineTechnique(tech ir.Technique)

	// CreateEntryPoint wraps fn as a stage entry point. isPixelStage
	// selects the pixel/fragment stage over the vertex stage.
	CreateEntryPoint(fn ir.FunctionHandle, isPixelStage bool) ir.FunctionHandle

	// Value-producing expression ops. result is the handle the IR
	// already assigned; these bind it rather than allocate a new one.
	EmitConstant(result ir.ValueHandle, c ir.Constant)
	EmitUnaryOp(result ir.ValueHandle, op ir.UnaryOp, t ir.Type, operand ir.ValueHandle)
	EmitBinaryOp(result ir.ValueHandle, op ir.BinaryOp, t ir.Type, left, right ir.ValueHandle)
	EmitTernaryOp(result ir.ValueHandle, t ir.Type, cond, accept, reject ir.ValueHandle)
	EmitPhi(result ir.ValueHandle, t ir.Type, incoming []ir.PhiEdge)
	EmitCall(result *ir.ValueHandle, fn ir.FunctionHandle, args []ir.ValueHandle)
	EmitCallIntrinsic(result ir.ValueHandle, intr ir.Intrinsic, t ir.Type, args []ir.ValueHandle)
	EmitConstruct(result ir.ValueHandle, t ir.Type, components []ir.ValueHandle)

	// Access-chain load/store.
	EmitLoad(result ir.ValueHandle, chain ir.Expression)
	EmitStore(chain ir.Expression, value ir.ValueHandle, valueType ir.Type)

	// Block structure.
	SetBlock(b ir.BlockHandle)
	EnterBlock(b ir.BlockHandle)
	LeaveBlockAndBranch(target ir.BlockHandle)
	LeaveBlockAndBranchConditional(cond ir.ValueHandle, trueBlock, falseBlock ir.BlockHandle)
	LeaveBlockAndSwitch(selector ir.ValueHandle, cases []ir.SwitchCase, def ir.BlockHandle)
	LeaveBlockAndReturn(value *ir.ValueHandle)
	LeaveBlockAndKill()

	// Structure hints.
	EmitIf(hint ir.SelectionHint)
	EmitLoop(hint ir.LoopHint)
	EmitSwitch(hint ir.SwitchHint)

	// Function scoping.
	EnterFunction(fn ir.FunctionHandle)
	LeaveFunction()

	// WriteResult assembles everything emitted so far into a Result.
	WriteResult() (Result, error)
}

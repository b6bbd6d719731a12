package codegen

import "github.com/gogpu/effectc/ir"

// Lower drives gen through an entire module: every struct, texture,
// sampler and uniform is defined first, then every function body is
// walked block by block in declaration order, then every technique's
// passes are registered and their entry points wrapped. It stands in for
// the external parser/analyzer the spec assumes calls these operations
// directly while type-checking source text.
func Lower(m *ir.Module, gen Generator) (Result, error) {
	for _, s := range m.Structs {
		gen.DefineStruct(s)
	}
	for _, t := range m.Textures {
		gen.DefineTexture(t)
	}
	for _, s := range m.Samplers {
		gen.DefineSampler(s)
	}
	for _, u := range m.Uniforms {
		gen.DefineUniform(u)
	}

	// Registering every signature before any body is emitted lets a call
	// target a function declared later in the module.
	for i := range m.Functions {
		gen.DefineFunction(m.Functions[i])
	}
	for i := range m.Functions {
		lowerFunction(gen, ir.FunctionHandle(i), &m.Functions[i])
	}

	entries := make(map[string]ir.FunctionHandle, len(m.Functions))
	for i, f := range m.Functions {
		entries[f.Name] = ir.FunctionHandle(i)
	}

	for _, tech := range m.Techniques {
		gen.DefineTechnique(tech)
		for _, pass := range tech.Passes {
			if h, ok := entries[pass.VSEntry]; ok {
				gen.CreateEntryPoint(h, false)
			}
			if h, ok := entries[pass.PSEntry]; ok {
				gen.CreateEntryPoint(h, true)
			}
		}
	}

	return gen.WriteResult()
}

func lowerFunction(gen Generator, handle ir.FunctionHandle, fn *ir.Function) {
	gen.EnterFunction(handle)

	base := ir.ValueHandle(0)
	for i, p := range fn.Params {
		gen.DefineParameter(base+ir.ValueHandle(i), p)
	}
	localBase := base + ir.ValueHandle(len(fn.Params))
	for i, l := range fn.Locals {
		gen.DefineVariable(localBase+ir.ValueHandle(i), l.Name, l.Type)
	}

	for i := range fn.Blocks {
		b := &fn.Blocks[i]
		gen.EnterBlock(b.ID)
		for _, stmt := range b.Statements {
			lowerStatement(gen, stmt)
		}
		lowerHints(gen, fn, b.ID)
		lowerTerminator(gen, b.Terminator)
	}

	gen.LeaveFunction()
}

func lowerHints(gen Generator, fn *ir.Function, header ir.BlockHandle) {
	if h, ok := fn.SelectionAt(header); ok {
		gen.EmitIf(h)
	}
	if h, ok := fn.LoopAt(header); ok {
		gen.EmitLoop(h)
	}
	if h, ok := fn.SwitchAt(header); ok {
		gen.EmitSwitch(h)
	}
}

func lowerStatement(gen Generator, stmt ir.Statement) {
	switch {
	case stmt.Constant != nil:
		gen.EmitConstant(stmt.Constant.Result, stmt.Constant.Value)
	case stmt.Unary != nil:
		s := stmt.Unary
		gen.EmitUnaryOp(s.Result, s.Op, s.Type, s.Operand)
	case stmt.Binary != nil:
		s := stmt.Binary
		gen.EmitBinaryOp(s.Result, s.Op, s.Type, s.Left, s.Right)
	case stmt.Ternary != nil:
		s := stmt.Ternary
		gen.EmitTernaryOp(s.Result, s.Type, s.Cond, s.Accept, s.Reject)
	case stmt.Phi != nil:
		s := stmt.Phi
		gen.EmitPhi(s.Result, s.Type, s.Incoming)
	case stmt.Call != nil:
		s := stmt.Call
		gen.EmitCall(s.Result, s.Function, s.Args)
	case stmt.CallIntrinsic != nil:
		s := stmt.CallIntrinsic
		gen.EmitCallIntrinsic(s.Result, s.Intrinsic, s.Type, s.Args)
	case stmt.Construct != nil:
		s := stmt.Construct
		gen.EmitConstruct(s.Result, s.Type, s.Components)
	case stmt.Load != nil:
		s := stmt.Load
		gen.EmitLoad(s.Result, s.Chain)
	case stmt.Store != nil:
		s := stmt.Store
		gen.EmitStore(s.Chain, s.Value, s.ValueType)
	}
}

func lowerTerminator(gen Generator, t ir.Terminator) {
	switch {
	case t.Branch != nil:
		gen.LeaveBlockAndBranch(t.Branch.Target)
	case t.BranchConditional != nil:
		gen.LeaveBlockAndBranchConditional(t.BranchConditional.Condition, t.BranchConditional.True, t.BranchConditional.False)
	case t.Switch != nil:
		gen.LeaveBlockAndSwitch(t.Switch.Selector, t.Switch.Cases, t.Switch.Default)
	case t.Return != nil:
		gen.LeaveBlockAndReturn(t.Return.Value)
	case t.Kill:
		gen.LeaveBlockAndKill()
	}
}

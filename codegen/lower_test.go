package codegen

import (
	"reflect"
	"testing"

	"github.com/gogpu/effectc/ir"
)

type recordingGenerator struct {
	calls []string
}

func (g *recordingGenerator) record(name string) { g.calls = append(g.calls, name) }

func (g *recordingGenerator) DefineStruct(ir.StructDef) ir.StructHandle    { g.record("DefineStruct"); return 0 }
func (g *recordingGenerator) DefineTexture(ir.Texture) ir.TextureHandle   { g.record("DefineTexture"); return 0 }
func (g *recordingGenerator) DefineSampler(ir.Sampler) ir.SamplerHandle   { g.record("DefineSampler"); return 0 }
func (g *recordingGenerator) DefineUniform(ir.Uniform) ir.UniformHandle  { g.record("DefineUniform"); return 0 }
func (g *recordingGenerator) DefineVariable(ir.ValueHandle, string, ir.Type) { g.record("DefineVariable") }
func (g *recordingGenerator) DefineParameter(ir.ValueHandle, ir.Parameter)   { g.record("DefineParameter") }
func (g *recordingGenerator) DefineFunction(ir.Function) ir.FunctionHandle  { g.record("DefineFunction"); return 0 }
func (g *recordingGenerator) DefineTechnique(ir.Technique)                  { g.record("DefineTechnique") }
func (g *recordingGenerator) CreateEntryPoint(ir.FunctionHandle, bool) ir.FunctionHandle {
	g.record("CreateEntryPoint")
	return 0
}
func (g *recordingGenerator) EmitConstant(ir.ValueHandle, ir.Constant) { g.record("EmitConstant") }
func (g *recordingGenerator) EmitUnaryOp(ir.ValueHandle, ir.UnaryOp, ir.Type, ir.ValueHandle) {
	g.record("EmitUnaryOp")
}
func (g *recordingGenerator) EmitBinaryOp(ir.ValueHandle, ir.BinaryOp, ir.Type, ir.ValueHandle, ir.ValueHandle) {
	g.record("EmitBinaryOp")
}
func (g *recordingGenerator) EmitTernaryOp(ir.ValueHandle, ir.Type, ir.ValueHandle, ir.ValueHandle, ir.ValueHandle) {
	g.record("EmitTernaryOp")
}
func (g *recordingGenerator) EmitPhi(ir.ValueHandle, ir.Type, []ir.PhiEdge) { g.record("EmitPhi") }
func (g *recordingGenerator) EmitCall(*ir.ValueHandle, ir.FunctionHandle, []ir.ValueHandle) {
	g.record("EmitCall")
}
func (g *recordingGenerator) EmitCallIntrinsic(ir.ValueHandle, ir.Intrinsic, ir.Type, []ir.ValueHandle) {
	g.record("EmitCallIntrinsic")
}
func (g *recordingGenerator) EmitConstruct(ir.ValueHandle, ir.Type, []ir.ValueHandle) {
	g.record("EmitConstruct")
}
func (g *recordingGenerator) EmitLoad(ir.ValueHandle, ir.Expression)            { g.record("EmitLoad") }
func (g *recordingGenerator) EmitStore(ir.Expression, ir.ValueHandle, ir.Type) { g.record("EmitStore") }
func (g *recordingGenerator) SetBlock(ir.BlockHandle)                          { g.record("SetBlock") }
func (g *recordingGenerator) EnterBlock(ir.BlockHandle)                        { g.record("EnterBlock") }
func (g *recordingGenerator) LeaveBlockAndBranch(ir.BlockHandle)               { g.record("LeaveBlockAndBranch") }
func (g *recordingGenerator) LeaveBlockAndBranchConditional(ir.ValueHandle, ir.BlockHandle, ir.BlockHandle) {
	g.record("LeaveBlockAndBranchConditional")
}
func (g *recordingGenerator) LeaveBlockAndSwitch(ir.ValueHandle, []ir.SwitchCase, ir.BlockHandle) {
	g.record("LeaveBlockAndSwitch")
}
func (g *recordingGenerator) LeaveBlockAndReturn(*ir.ValueHandle) { g.record("LeaveBlockAndReturn") }
func (g *recordingGenerator) LeaveBlockAndKill()                 { g.record("LeaveBlockAndKill") }
func (g *recordingGenerator) EmitIf(ir.SelectionHint)            { g.record("EmitIf") }
func (g *recordingGenerator) EmitLoop(ir.LoopHint)               { g.record("EmitLoop") }
func (g *recordingGenerator) EmitSwitch(ir.SwitchHint)           { g.record("EmitSwitch") }
func (g *recordingGenerator) EnterFunction(ir.FunctionHandle)    { g.record("EnterFunction") }
func (g *recordingGenerator) LeaveFunction()                    { g.record("LeaveFunction") }
func (g *recordingGenerator) WriteResult() (Result, error)       { g.record("WriteResult"); return Result{}, nil }

func TestLowerVisitsInOrder(t *testing.T) {
	m := &ir.Module{
		Textures: []ir.Texture{{Name: "ColorTex"}},
		Functions: []ir.Function{{
			Name: "PSMain",
			Blocks: []ir.Block{
				{
					ID:         0,
					Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 0, Value: ir.Constant{Type: ir.ScalarType(ir.BaseFloat)}}}},
					Terminator: ir.Terminator{Return: &ir.TermReturn{}},
				},
			},
		}},
		Techniques: []ir.Technique{{
			Name:   "Main",
			Passes: []ir.Pass{{Name: "p0", PSEntry: "PSMain"}},
		}},
	}

	g := &recordingGenerator{}
	if _, err := Lower(m, g); err != nil {
		t.Fatalf("Lower() error = %v", err)
	}

	want := []string{
		"DefineTexture",
		"DefineFunction",
		"EnterFunction", "EnterBlock", "EmitConstant", "LeaveBlockAndReturn", "LeaveFunction",
		"DefineTechnique", "CreateEntryPoint",
		"WriteResult",
	}
	if !reflect.DeepEqual(g.calls, want) {
		t.Errorf("call order = %v, want %v", g.calls, want)
	}
}

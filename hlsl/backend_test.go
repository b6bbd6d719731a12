package hlsl

import (
	"strings"
	"testing"

	"github.com/gogpu/effectc/codegen"
	"github.com/gogpu/effectc/ir"
)

func valuePtr(v ir.ValueHandle) *ir.ValueHandle { return &v }

func TestBackendReturnsConstant(t *testing.T) {
	one := ir.Constant{Type: ir.ScalarType(ir.BaseFloat)}
	one.SetFloat(0, 1)

	fn := ir.Function{
		Name:   "PSMain",
		Result: ir.Result{Type: ir.ScalarType(ir.BaseFloat), Semantic: "SV_TARGET"},
		Blocks: []ir.Block{{
			ID:         0,
			Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 0, Value: one}}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: valuePtr(0)}},
		}},
	}
	m := &ir.Module{
		Functions: []ir.Function{fn},
		Techniques: []ir.Technique{{
			Name:   "Main",
			Passes: []ir.Pass{{Name: "p0", PSEntry: "PSMain"}},
		}},
	}

	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if !strings.Contains(res.HLSL, "float PSMain()") {
		t.Errorf("HLSL missing PSMain declaration:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, "1.0") {
		t.Errorf("HLSL missing folded literal:\n%s", res.HLSL)
	}
}

func TestBackendRoutesUniformThroughConstantBuffer(t *testing.T) {
	fn := ir.Function{
		Name:   "PSMain",
		Result: ir.Result{Type: ir.VectorType(ir.BaseFloat, 3), Semantic: "SV_TARGET"},
		Locals: []ir.LocalVar{{Name: "tint", Type: ir.VectorType(ir.BaseFloat, 3)}},
		Blocks: []ir.Block{{
			ID: 0,
			Statements: []ir.Statement{{
				Load: &ir.StmtLoad{Result: 1, Chain: ir.Expression{Base: 0, IsLValue: true}},
			}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: valuePtr(1)}},
		}},
	}
	m := &ir.Module{
		Uniforms:  []ir.Uniform{{Name: "tint", Type: ir.VectorType(ir.BaseFloat, 3)}},
		Functions: []ir.Function{fn},
		Techniques: []ir.Technique{{
			Name:   "Main",
			Passes: []ir.Pass{{Name: "p0", PSEntry: "PSMain"}},
		}},
	}

	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if !strings.Contains(res.HLSL, "ConstantBuffer<_Globals>") {
		t.Errorf("HLSL missing constant buffer declaration:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, "_globals.tint") {
		t.Errorf("HLSL does not read the uniform through its accessor:\n%s", res.HLSL)
	}
	if len(res.Uniforms) != 1 || res.Uniforms[0].Offset != 0 {
		t.Errorf("unexpected uniform layout: %+v", res.Uniforms)
	}
}

func TestBackendGeneratesIfElse(t *testing.T) {
	cond := ir.Constant{Type: ir.ScalarType(ir.BaseBool)}
	cond.SetInt(0, 1)

	fn := ir.Function{
		Name:   "Main",
		Result: ir.Result{Type: ir.ScalarType(ir.BaseVoid)},
		Blocks: []ir.Block{
			{
				ID:         0,
				Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 0, Value: cond}}},
				Terminator: ir.Terminator{BranchConditional: &ir.TermBranchConditional{Condition: 0, True: 1, False: 2}},
			},
			{ID: 1, Terminator: ir.Terminator{Branch: &ir.TermBranch{Target: 3}}},
			{ID: 2, Terminator: ir.Terminator{Branch: &ir.TermBranch{Target: 3}}},
			{ID: 3, Terminator: ir.Terminator{Return: &ir.TermReturn{}}},
		},
		Selections: []ir.SelectionHint{{Header: 0, Merge: 3}},
	}
	m := &ir.Module{Functions: []ir.Function{fn}}

	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if !strings.Contains(res.HLSL, "if (") || !strings.Contains(res.HLSL, "else {") {
		t.Errorf("HLSL missing if/else structure:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, "return;") {
		t.Errorf("HLSL missing merged return:\n%s", res.HLSL)
	}
}

func TestBackendGeneratesLoop(t *testing.T) {
	cond := ir.Constant{Type: ir.ScalarType(ir.BaseBool)}
	cond.SetInt(0, 1)

	fn := ir.Function{
		Name:   "Main",
		Result: ir.Result{Type: ir.ScalarType(ir.BaseVoid)},
		Blocks: []ir.Block{
			{ID: 0, Terminator: ir.Terminator{Branch: &ir.TermBranch{Target: 1}}},
			{
				ID:         1,
				Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 0, Value: cond}}},
				Terminator: ir.Terminator{BranchConditional: &ir.TermBranchConditional{Condition: 0, True: 2, False: 3}},
			},
			{ID: 2, Terminator: ir.Terminator{Branch: &ir.TermBranch{Target: 1}}},
			{ID: 3, Terminator: ir.Terminator{Return: &ir.TermReturn{}}},
		},
		Loops: []ir.LoopHint{{Header: 1, Continue: 1, Merge: 3}},
	}
	m := &ir.Module{Functions: []ir.Function{fn}}

	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if !strings.Contains(res.HLSL, "for (;;) {") {
		t.Errorf("HLSL missing loop structure:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, "break;") {
		t.Errorf("HLSL missing loop break guard:\n%s", res.HLSL)
	}
}

func TestBackendGeneratesSwitch(t *testing.T) {
	sel := ir.Constant{Type: ir.ScalarType(ir.BaseInt)}
	sel.SetInt(0, 1)

	fn := ir.Function{
		Name:   "Main",
		Result: ir.Result{Type: ir.ScalarType(ir.BaseVoid)},
		Blocks: []ir.Block{
			{
				ID:         0,
				Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 0, Value: sel}}},
				Terminator: ir.Terminator{Switch: &ir.TermSwitch{
					Selector: 0,
					Cases: []ir.SwitchCase{
						{Value: 1, Target: 1},
						{Value: 2, Target: 2},
					},
					Default: 3,
				}},
			},
			{ID: 1, Terminator: ir.Terminator{Branch: &ir.TermBranch{Target: 4}}},
			{ID: 2, Terminator: ir.Terminator{Branch: &ir.TermBranch{Target: 4}}},
			{ID: 3, Terminator: ir.Terminator{Branch: &ir.TermBranch{Target: 4}}},
			{ID: 4, Terminator: ir.Terminator{Return: &ir.TermReturn{}}},
		},
		Switches: []ir.SwitchHint{{Header: 0, Merge: 4}},
	}
	m := &ir.Module{Functions: []ir.Function{fn}}

	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	for _, want := range []string{"switch (", "case 1:", "case 2:", "default:"} {
		if !strings.Contains(res.HLSL, want) {
			t.Errorf("HLSL missing %q:\n%s", want, res.HLSL)
		}
	}
}

func TestBackendSamplesTexture(t *testing.T) {
	fn := ir.Function{
		Name:   "PSMain",
		Result: ir.Result{Type: ir.VectorType(ir.BaseFloat, 4), Semantic: "SV_TARGET"},
		Locals: []ir.LocalVar{
			{Name: "baseColor", Type: ir.Type{Base: ir.BaseTexture}},
			{Name: "baseSampler", Type: ir.Type{Base: ir.BaseSampler}},
			{Name: "uv", Type: ir.VectorType(ir.BaseFloat, 2)},
		},
		Blocks: []ir.Block{{
			ID: 0,
			Statements: []ir.Statement{{
				CallIntrinsic: &ir.StmtCallIntrinsic{
					Result:    3,
					Intrinsic: ir.IntrinsicSampleTexture,
					Type:      ir.VectorType(ir.BaseFloat, 4),
					Args:      []ir.ValueHandle{0, 1, 2},
				},
			}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: valuePtr(3)}},
		}},
	}
	m := &ir.Module{
		Textures:  []ir.Texture{{Name: "baseColor"}},
		Samplers:  []ir.Sampler{{Name: "baseSampler", Texture: "baseColor"}},
		Functions: []ir.Function{fn},
		Techniques: []ir.Technique{{
			Name:   "Main",
			Passes: []ir.Pass{{Name: "p0", PSEntry: "PSMain"}},
		}},
	}

	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if !strings.Contains(res.HLSL, "Texture2D baseColor : register(t0)") {
		t.Errorf("HLSL missing texture declaration:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, "SamplerState baseSampler") {
		t.Errorf("HLSL missing sampler declaration:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, "baseColor.Sample(baseSampler, uv)") {
		t.Errorf("HLSL missing Sample() call:\n%s", res.HLSL)
	}
}

func TestBackendWrapsPixelEntryPoint(t *testing.T) {
	white := ir.Constant{Type: ir.VectorType(ir.BaseFloat, 4)}
	for i := 0; i < 4; i++ {
		white.SetFloat(i, 1)
	}

	fn := ir.Function{
		Name:   "PSMain",
		Params: []ir.Parameter{{Name: "uv", Type: ir.VectorType(ir.BaseFloat, 2), Semantic: "TEXCOORD0"}},
		Result: ir.Result{Type: ir.VectorType(ir.BaseFloat, 4), Semantic: "SV_TARGET"},
		Blocks: []ir.Block{{
			ID:         0,
			Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 1, Value: white}}},
			Terminator: ir.Terminator{Return: &ir.TermReturn{Value: valuePtr(1)}},
		}},
	}
	m := &ir.Module{
		Functions: []ir.Function{fn},
		Techniques: []ir.Technique{{
			Name:   "Unlit",
			Passes: []ir.Pass{{Name: "p0", PSEntry: "PSMain"}},
		}},
	}

	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if !strings.Contains(res.HLSL, "_ps_main(") {
		t.Errorf("HLSL missing pixel entry stub:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, ": SV_TARGET") {
		t.Errorf("HLSL entry stub missing SV_TARGET semantic:\n%s", res.HLSL)
	}
	if !strings.Contains(res.HLSL, "return PSMain(") {
		t.Errorf("HLSL entry stub does not call through to PSMain:\n%s", res.HLSL)
	}
}

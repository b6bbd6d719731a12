package spirv

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/gogpu/effectc/codegen"
	"github.com/gogpu/effectc/ir"
)

// buildModule builds a module holding a trivial float PSMain() function
// that returns a constant, used as the pixel entry of one technique pass.
func buildModule() *ir.Module {
	one := ir.Constant{Type: ir.ScalarType(ir.BaseFloat)}
	one.SetFloat(0, 1)

	fn := ir.Function{
		Name:   "PSMain",
		Result: ir.Result{Type: ir.ScalarType(ir.BaseFloat), Semantic: "SV_TARGET"},
		Blocks: []ir.Block{
			{
				ID:         0,
				Statements: []ir.Statement{{Constant: &ir.StmtConstant{Result: 0, Value: one}}},
				Terminator: ir.Terminator{Return: &ir.TermReturn{Value: valuePtr(0)}},
			},
		},
	}

	return &ir.Module{
		Functions: []ir.Function{fn},
		Techniques: []ir.Technique{{
			Name:   "Main",
			Passes: []ir.Pass{{Name: "p0", PSEntry: "PSMain"}},
		}},
	}
}

func valuePtr(v ir.ValueHandle) *ir.ValueHandle { return &v }

func TestBackendProducesValidMagicNumber(t *testing.T) {
	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(buildModule(), b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if len(res.SPIRV) < 20 {
		t.Fatalf("SPIRV output too short: %d bytes", len(res.SPIRV))
	}
	magic := binary.LittleEndian.Uint32(res.SPIRV[0:4])
	if magic != MagicNumber {
		t.Errorf("magic number = %#x, want %#x", magic, MagicNumber)
	}
}

// buildStructEntryModule builds a vertex entry point returning
// struct { float4 pos : SV_POSITION; float2 uv : TEXCOORD0; }, the
// struct-splitting scenario entry points must assemble/disassemble via
// per-member interface variables rather than a single struct variable.
func buildStructEntryModule() *ir.Module {
	members := []ir.StructMember{
		{Name: "pos", Type: ir.VectorType(ir.BaseFloat, 4), Semantic: "SV_POSITION"},
		{Name: "uv", Type: ir.VectorType(ir.BaseFloat, 2), Semantic: "TEXCOORD0"},
	}
	structType := ir.Type{Base: ir.BaseStruct, Struct: 0}

	pos := ir.Constant{Type: ir.VectorType(ir.BaseFloat, 4)}
	pos.SetFloat(3, 1)
	uv := ir.Constant{Type: ir.VectorType(ir.BaseFloat, 2)}

	fn := ir.Function{
		Name:   "VSMain",
		Result: ir.Result{Type: structType},
		Blocks: []ir.Block{
			{
				ID: 0,
				Statements: []ir.Statement{
					{Constant: &ir.StmtConstant{Result: 0, Value: pos}},
					{Constant: &ir.StmtConstant{Result: 1, Value: uv}},
					{Construct: &ir.StmtConstruct{Result: 2, Type: structType, Components: []ir.ValueHandle{0, 1}}},
				},
				Terminator: ir.Terminator{Return: &ir.TermReturn{Value: valuePtr(2)}},
			},
		},
	}

	return &ir.Module{
		Structs:   []ir.StructDef{{ID: 0, Name: "VSOut", Members: members}},
		Functions: []ir.Function{fn},
		Techniques: []ir.Technique{{
			Name:   "Main",
			Passes: []ir.Pass{{Name: "p0", VSEntry: "VSMain"}},
		}},
	}
}

func TestBackendSplitsStructResultIntoPerMemberOutputs(t *testing.T) {
	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(buildStructEntryModule(), b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	disasm, err := Disassemble(res.SPIRV)
	if err != nil {
		t.Fatalf("Disassemble() error = %v", err)
	}
	if got := strings.Count(disasm, "OpEntryPoint"); got != 1 {
		t.Fatalf("OpEntryPoint count = %d, want 1", got)
	}
	// Two Output interface variables (one per struct member), each
	// decorated individually instead of one variable for the whole struct.
	if got := strings.Count(disasm, "Output"); got < 2 {
		t.Errorf("expected at least 2 Output-storage declarations, disasm:\n%s", disasm)
	}
	if !strings.Contains(disasm, "BuiltIn Position") {
		t.Errorf("expected the pos member to decorate BuiltIn Position, disasm:\n%s", disasm)
	}
	if !strings.Contains(disasm, "Location") {
		t.Errorf("expected the uv member to decorate a Location, disasm:\n%s", disasm)
	}
}

func TestBackendAssignsUniformOffsets(t *testing.T) {
	m := buildModule()
	m.Uniforms = []ir.Uniform{
		{Name: "tint", Type: ir.VectorType(ir.BaseFloat, 3)},
		{Name: "opacity", Type: ir.ScalarType(ir.BaseFloat)},
	}
	b := NewBackend(DefaultOptions())
	res, err := codegen.Lower(m, b)
	if err != nil {
		t.Fatalf("Lower() error = %v", err)
	}
	if res.Uniforms[0].Offset != 0 {
		t.Errorf("tint.Offset = %d, want 0", res.Uniforms[0].Offset)
	}
	if res.Uniforms[1].Offset != 12 {
		t.Errorf("opacity.Offset = %d, want 12", res.Uniforms[1].Offset)
	}
}

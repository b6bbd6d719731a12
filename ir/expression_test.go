package ir

import "testing"

func TestSwizzleWidth(t *testing.T) {
	xy := Swizzle(0, 1)
	if got, want := xy.SwizzleWidth(), 2; got != want {
		t.Errorf("SwizzleWidth() = %d, want %d", got, want)
	}

	xyzw := Swizzle(0, 1, 2, 3)
	if got, want := xyzw.SwizzleWidth(), 4; got != want {
		t.Errorf("SwizzleWidth() = %d, want %d", got, want)
	}
}

func TestExpressionLeadingSplitsIndexRun(t *testing.T) {
	f32 := ScalarType(BaseFloat)
	e := Expression{
		Base: 1,
		Ops: []AccessOp{
			Index(2, f32, f32),
			Index(3, f32, f32),
			Swizzle(0, 2),
			Cast(f32, ScalarType(BaseInt)),
		},
	}

	indices, rest := e.Leading()
	if len(indices) != 2 {
		t.Fatalf("Leading() returned %d index ops, want 2", len(indices))
	}
	if len(rest) != 2 {
		t.Fatalf("Leading() returned %d remaining ops, want 2", len(rest))
	}
	if rest[0].Kind != OpSwizzle || rest[1].Kind != OpCast {
		t.Errorf("Leading() split at wrong boundary: rest = %+v", rest)
	}
}

func TestExpressionLeadingNoIndices(t *testing.T) {
	e := Expression{Base: 1, Ops: []AccessOp{Swizzle(0)}}
	indices, rest := e.Leading()
	if len(indices) != 0 {
		t.Errorf("Leading() returned %d index ops, want 0", len(indices))
	}
	if len(rest) != 1 {
		t.Errorf("Leading() returned %d remaining ops, want 1", len(rest))
	}
}

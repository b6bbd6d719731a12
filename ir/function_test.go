package ir

import "testing"

func TestFunctionIsEntryCandidate(t *testing.T) {
	entry := Function{
		Params: []Parameter{{Name: "uv", Type: VectorType(BaseFloat, 2), Semantic: "TEXCOORD0"}},
		Result: Result{Type: VectorType(BaseFloat, 4), Semantic: "SV_TARGET"},
	}
	if !entry.IsEntryCandidate() {
		t.Errorf("IsEntryCandidate() = false for a fully-semantic signature")
	}

	helper := Function{
		Params: []Parameter{{Name: "x", Type: ScalarType(BaseFloat)}},
		Result: Result{Type: ScalarType(BaseFloat)},
	}
	if helper.IsEntryCandidate() {
		t.Errorf("IsEntryCandidate() = true for a signature with no semantics")
	}
}

func TestFunctionHintLookup(t *testing.T) {
	f := Function{
		Selections: []SelectionHint{{Header: 1, Merge: 3}},
		Loops:      []LoopHint{{Header: 2, Continue: 4, Merge: 5}},
	}
	if _, ok := f.SelectionAt(1); !ok {
		t.Errorf("SelectionAt(1) not found")
	}
	if _, ok := f.SelectionAt(9); ok {
		t.Errorf("SelectionAt(9) unexpectedly found")
	}
	if _, ok := f.LoopAt(2); !ok {
		t.Errorf("LoopAt(2) not found")
	}
}

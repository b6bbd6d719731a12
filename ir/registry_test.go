package ir

import "testing"

func TestRegistryInternStructDeduplicates(t *testing.T) {
	r := NewRegistry()
	members := []StructMember{
		{Name: "position", Type: VectorType(BaseFloat, 4), Semantic: "SV_POSITION"},
		{Name: "uv", Type: VectorType(BaseFloat, 2), Semantic: "TEXCOORD0"},
	}

	h1 := r.InternStruct("VSOutput", members)
	h2 := r.InternStruct("VSOutput", members)
	if h1 != h2 {
		t.Errorf("identical struct shapes got different handles: %d vs %d", h1, h2)
	}
	if got := len(r.Structs()); got != 1 {
		t.Errorf("len(Structs()) = %d, want 1", got)
	}
}

func TestRegistryInternStructDistinguishesShape(t *testing.T) {
	r := NewRegistry()
	a := r.InternStruct("A", []StructMember{{Name: "x", Type: ScalarType(BaseFloat)}})
	b := r.InternStruct("B", []StructMember{{Name: "x", Type: ScalarType(BaseInt)}})
	if a == b {
		t.Errorf("structurally different structs got the same handle")
	}
}

func TestRegistryInternConstantDeduplicates(t *testing.T) {
	r := NewRegistry()
	c := Constant{Type: ScalarType(BaseFloat)}
	c.SetFloat(0, 2.0)

	h1 := r.InternConstant(c)
	h2 := r.InternConstant(c)
	if h1 != h2 {
		t.Errorf("identical constants got different handles: %d vs %d", h1, h2)
	}
	if got := len(r.Constants()); got != 1 {
		t.Errorf("len(Constants()) = %d, want 1", got)
	}
}

func TestRegistryInternConstantDistinguishesValue(t *testing.T) {
	r := NewRegistry()
	a := Constant{Type: ScalarType(BaseFloat)}
	a.SetFloat(0, 1.0)
	b := Constant{Type: ScalarType(BaseFloat)}
	b.SetFloat(0, 2.0)

	if r.InternConstant(a) == r.InternConstant(b) {
		t.Errorf("distinct constant values got the same handle")
	}
}

package ir

import "testing"

func TestConstantFloatRoundTrip(t *testing.T) {
	var c Constant
	c.Type = VectorType(BaseFloat, 3)
	c.SetFloat(0, 1.5)
	c.SetFloat(1, -2.25)
	c.SetFloat(2, 0)

	if got := c.AsFloat(0); got != 1.5 {
		t.Errorf("AsFloat(0) = %v, want 1.5", got)
	}
	if got := c.AsFloat(1); got != -2.25 {
		t.Errorf("AsFloat(1) = %v, want -2.25", got)
	}
}

func TestConstantIntUintRoundTrip(t *testing.T) {
	var c Constant
	c.Type = ScalarType(BaseInt)
	c.SetInt(0, -7)
	if got := c.AsInt(0); got != -7 {
		t.Errorf("AsInt(0) = %d, want -7", got)
	}

	var u Constant
	u.Type = ScalarType(BaseUint)
	u.SetUint(0, 0xffffffff)
	if got := u.AsUint(0); got != 0xffffffff {
		t.Errorf("AsUint(0) = %d, want 0xffffffff", got)
	}
}

func TestConstantKeyEquality(t *testing.T) {
	a := Constant{Type: ScalarType(BaseFloat)}
	a.SetFloat(0, 3.0)
	b := Constant{Type: ScalarType(BaseFloat)}
	b.SetFloat(0, 3.0)
	c := Constant{Type: ScalarType(BaseFloat)}
	c.SetFloat(0, 4.0)

	if a.key() != b.key() {
		t.Errorf("identical constants produced different keys: %q vs %q", a.key(), b.key())
	}
	if a.key() == c.key() {
		t.Errorf("distinct constants produced the same key: %q", a.key())
	}
}

func TestConstantKeyArrayRecursion(t *testing.T) {
	elem := ScalarType(BaseInt)
	one := Constant{Type: elem}
	one.SetInt(0, 1)
	two := Constant{Type: elem}
	two.SetInt(0, 2)

	arr1 := Constant{Type: elem.WithArray(2), Array: []Constant{one, two}}
	arr2 := Constant{Type: elem.WithArray(2), Array: []Constant{one, two}}
	arr3 := Constant{Type: elem.WithArray(2), Array: []Constant{two, one}}

	if arr1.key() != arr2.key() {
		t.Errorf("identical array constants produced different keys")
	}
	if arr1.key() == arr3.key() {
		t.Errorf("reordered array constants produced the same key")
	}
}

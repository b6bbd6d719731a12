package ir

import "testing"

func TestTypeShapePredicates(t *testing.T) {
	scalar := ScalarType(BaseFloat)
	vector := VectorType(BaseFloat, 3)
	matrix := MatrixType(BaseFloat, 4, 4)

	if !scalar.IsScalar() || scalar.IsVector() || scalar.IsMatrix() {
		t.Errorf("scalar type misclassified: %+v", scalar)
	}
	if !vector.IsVector() || vector.IsScalar() || vector.IsMatrix() {
		t.Errorf("vector type misclassified: %+v", vector)
	}
	if !matrix.IsMatrix() || matrix.IsScalar() || matrix.IsVector() {
		t.Errorf("matrix type misclassified: %+v", matrix)
	}
	if got, want := matrix.ComponentCount(), 16; got != want {
		t.Errorf("matrix ComponentCount() = %d, want %d", got, want)
	}
}

func TestTypeArrayHelpers(t *testing.T) {
	elem := ScalarType(BaseInt)
	arr := elem.WithArray(4)

	if !arr.IsArray() {
		t.Fatalf("WithArray(4) did not produce an array type: %+v", arr)
	}
	if arr.IsUnsizedArray() {
		t.Errorf("fixed-length array reported as unsized")
	}
	if got := arr.Elem(); got.IsArray() {
		t.Errorf("Elem() still reports array-ness: %+v", got)
	}

	unsized := elem.WithArray(-1)
	if !unsized.IsUnsizedArray() {
		t.Errorf("WithArray(-1) not reported as unsized")
	}
}

func TestQualifierHas(t *testing.T) {
	q := QualUniform | QualConst
	if !q.Has(QualUniform) {
		t.Errorf("Has(QualUniform) = false, want true")
	}
	if q.Has(QualExtern) {
		t.Errorf("Has(QualExtern) = true, want false")
	}
	if !q.Has(QualUniform | QualConst) {
		t.Errorf("Has(combined mask) = false, want true")
	}
}

func TestTypeBaseString(t *testing.T) {
	if got, want := BaseFloat.String(), "float"; got != want {
		t.Errorf("BaseFloat.String() = %q, want %q", got, want)
	}
	if got := TypeBase(200).String(); got == "" {
		t.Errorf("unknown TypeBase.String() returned empty string")
	}
}

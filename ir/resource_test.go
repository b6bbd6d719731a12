package ir

import "testing"

func TestSamplerKeyIgnoresNameAndTexture(t *testing.T) {
	a := Sampler{Name: "LinearWrapA", Texture: "TexA", Filter: FilterLinear, AddressU: AddressWrap, AddressV: AddressWrap}
	b := Sampler{Name: "LinearWrapB", Texture: "TexB", Filter: FilterLinear, AddressU: AddressWrap, AddressV: AddressWrap}
	c := Sampler{Name: "PointClamp", Texture: "TexA", Filter: FilterPoint, AddressU: AddressClamp, AddressV: AddressClamp}

	if a.Key() != b.Key() {
		t.Errorf("samplers with identical filtering state produced different keys")
	}
	if a.Key() == c.Key() {
		t.Errorf("samplers with different filtering state produced the same key")
	}
}

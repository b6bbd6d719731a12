package ir

import "testing"

func TestModuleLookupByName(t *testing.T) {
	m := &Module{
		Functions: []Function{{Name: "main"}},
		Textures:  []Texture{{Name: "ColorTex"}},
		Samplers:  []Sampler{{Name: "ColorSampler", Texture: "ColorTex"}},
	}

	if h, ok := m.FunctionByName("main"); !ok || h != 0 {
		t.Errorf("FunctionByName(main) = (%d, %v), want (0, true)", h, ok)
	}
	if _, ok := m.FunctionByName("missing"); ok {
		t.Errorf("FunctionByName(missing) found a function that doesn't exist")
	}
	if h, ok := m.TextureByName("ColorTex"); !ok || h != 0 {
		t.Errorf("TextureByName(ColorTex) = (%d, %v), want (0, true)", h, ok)
	}
	if h, ok := m.SamplerByName("ColorSampler"); !ok || h != 0 {
		t.Errorf("SamplerByName(ColorSampler) = (%d, %v), want (0, true)", h, ok)
	}
}

func TestModuleUniformBlockSizeRoundsUpTo16(t *testing.T) {
	m := &Module{
		Uniforms: []Uniform{
			{Name: "a", Offset: 0, Size: 4},
			{Name: "b", Offset: 16, Size: 12},
		},
	}
	if got, want := m.UniformBlockSize(), uint32(32); got != want {
		t.Errorf("UniformBlockSize() = %d, want %d", got, want)
	}
}

func TestModuleUniformBlockSizeEmpty(t *testing.T) {
	m := &Module{}
	if got := m.UniformBlockSize(); got != 0 {
		t.Errorf("UniformBlockSize() on empty module = %d, want 0", got)
	}
}

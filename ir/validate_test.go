package ir

import "testing"

func singleBlockFunction(name string) Function {
	return Function{
		Name:       name,
		EntryBlock: 0,
		Blocks: []Block{
			{ID: 0, Terminator: Terminator{Return: &TermReturn{}}},
		},
	}
}

func TestValidateAcceptsWellFormedModule(t *testing.T) {
	m := &Module{
		Textures:  []Texture{{Name: "ColorTex"}},
		Samplers:  []Sampler{{Name: "ColorSampler", Texture: "ColorTex"}},
		Uniforms:  []Uniform{{Name: "Time", Offset: 0, Size: 4}},
		Functions: []Function{singleBlockFunction("VSMain"), singleBlockFunction("PSMain")},
		Techniques: []Technique{{
			Name:   "Main",
			Passes: []Pass{{Name: "p0", VSEntry: "VSMain", PSEntry: "PSMain"}},
		}},
	}

	if err := Validate(m); err != nil {
		t.Fatalf("Validate() on well-formed module returned error: %v", err)
	}
}

func TestValidateRejectsDuplicateFunctionNames(t *testing.T) {
	m := &Module{
		Functions: []Function{singleBlockFunction("main"), singleBlockFunction("main")},
	}
	if err := Validate(m); err == nil {
		t.Fatalf("Validate() accepted duplicate function names")
	}
}

func TestValidateRejectsOverlappingUniforms(t *testing.T) {
	m := &Module{
		Uniforms: []Uniform{
			{Name: "a", Offset: 0, Size: 16},
			{Name: "b", Offset: 8, Size: 16},
		},
	}
	if err := Validate(m); err == nil {
		t.Fatalf("Validate() accepted overlapping uniform ranges")
	}
}

func TestValidateRejectsOutOfRangeBranch(t *testing.T) {
	fn := Function{
		Name:       "main",
		EntryBlock: 0,
		Blocks: []Block{
			{ID: 0, Terminator: Terminator{Branch: &TermBranch{Target: 5}}},
		},
	}
	m := &Module{Functions: []Function{fn}}
	if err := Validate(m); err == nil {
		t.Fatalf("Validate() accepted a branch to an out-of-range block")
	}
}

func TestValidateRejectsMissingBlockTerminator(t *testing.T) {
	fn := Function{
		Name:       "main",
		EntryBlock: 0,
		Blocks:     []Block{{ID: 0}},
	}
	m := &Module{Functions: []Function{fn}}
	if err := Validate(m); err == nil {
		t.Fatalf("Validate() accepted a block with no terminator")
	}
}

func TestValidateRejectsUndefinedPassEntry(t *testing.T) {
	m := &Module{
		Techniques: []Technique{{
			Name:   "Main",
			Passes: []Pass{{Name: "p0", VSEntry: "MissingVS"}},
		}},
	}
	if err := Validate(m); err == nil {
		t.Fatalf("Validate() accepted a pass referencing an undefined entry point")
	}
}

func TestValidateRejectsSamplerWithoutTexture(t *testing.T) {
	m := &Module{
		Samplers: []Sampler{{Name: "s", Texture: "Missing"}},
	}
	if err := Validate(m); err == nil {
		t.Fatalf("Validate() accepted a sampler referencing an undefined texture")
	}
}

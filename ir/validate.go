package ir

import (
	"fmt"

	"go.uber.org/multierr"
)

// ValidationError is one structural defect found by Validate, tagged with
// the function (if any) it was found in.
type ValidationError struct {
	Function string
	Message  string
}

// Error implements error.
func (e ValidationError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("in function %s: %s", e.Function, e.Message)
	}
	return e.Message
}

// Validate checks a Module for the structural invariants spec §3 and §4
// assume hold before lowering: unique names, in-range handles, a block
// graph every block belongs to, and a uniform layout free of overlaps.
// Every defect found is accumulated via multierr rather than stopping at
// the first one, so a single run reports everything wrong with a module.
func Validate(m *Module) error {
	var err error

	err = multierr.Append(err, validateNames(m))
	err = multierr.Append(err, validateUniformLayout(m))
	for i := range m.Functions {
		err = multierr.Append(err, validateFunction(m, &m.Functions[i]))
	}
	for i := range m.Techniques {
		err = multierr.Append(err, validateTechnique(m, &m.Techniques[i]))
	}

	return err
}

func validateNames(m *Module) error {
	var err error

	seen := make(map[string]bool, len(m.Functions))
	for _, f := range m.Functions {
		if f.Name == "" {
			err = multierr.Append(err, ValidationError{Message: "function with empty name"})
			continue
		}
		if seen[f.Name] {
			err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("duplicate function name %q", f.Name)})
		}
		seen[f.Name] = true
	}

	seenTex := make(map[string]bool, len(m.Textures))
	for _, t := range m.Textures {
		if seenTex[t.Name] {
			err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("duplicate texture name %q", t.Name)})
		}
		seenTex[t.Name] = true
	}

	seenSamp := make(map[string]bool, len(m.Samplers))
	for _, s := range m.Samplers {
		if seenSamp[s.Name] {
			err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("duplicate sampler name %q", s.Name)})
		}
		if s.Texture != "" {
			if _, ok := m.TextureByName(s.Texture); !ok {
				err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("sampler %q references undefined texture %q", s.Name, s.Texture)})
			}
		}
		seenSamp[s.Name] = true
	}

	return err
}

// validateUniformLayout checks that no two uniforms' [Offset, Offset+Size)
// ranges overlap, per the std140-equivalent packing rule in spec §4.2.
func validateUniformLayout(m *Module) error {
	var err error

	type span struct {
		name  string
		start uint32
		end   uint32
	}
	spans := make([]span, 0, len(m.Uniforms))
	for _, u := range m.Uniforms {
		spans = append(spans, span{u.Name, u.Offset, u.Offset + u.Size})
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.start < b.end && b.start < a.end {
				err = multierr.Append(err, ValidationError{
					Message: fmt.Sprintf("uniform %q [%d,%d) overlaps uniform %q [%d,%d)", a.name, a.start, a.end, b.name, b.start, b.end),
				})
			}
		}
	}
	return err
}

func validateFunction(m *Module, f *Function) error {
	var err error

	if len(f.Blocks) == 0 {
		return ValidationError{Function: f.Name, Message: "function has no blocks"}
	}
	if int(f.EntryBlock) >= len(f.Blocks) {
		err = multierr.Append(err, ValidationError{Function: f.Name, Message: "entry block out of range"})
	}

	for i, b := range f.Blocks {
		if int(b.ID) != i {
			err = multierr.Append(err, ValidationError{Function: f.Name, Message: fmt.Sprintf("block %d has mismatched ID %d", i, b.ID)})
		}
		if !hasTerminator(b.Terminator) {
			err = multierr.Append(err, ValidationError{Function: f.Name, Message: fmt.Sprintf("block %d has no terminator", i)})
			continue
		}
		err = multierr.Append(err, validateTerminator(f, b.ID, b.Terminator))
	}

	return err
}

func hasTerminator(t Terminator) bool {
	return t.Branch != nil || t.BranchConditional != nil || t.Switch != nil || t.Return != nil || t.Kill
}

func validateTerminator(f *Function, from BlockHandle, t Terminator) error {
	var err error
	check := func(target BlockHandle) {
		if int(target) >= len(f.Blocks) {
			err = multierr.Append(err, ValidationError{
				Function: f.Name,
				Message:  fmt.Sprintf("block %d branches to out-of-range block %d", from, target),
			})
		}
	}
	switch {
	case t.Branch != nil:
		check(t.Branch.Target)
	case t.BranchConditional != nil:
		check(t.BranchConditional.True)
		check(t.BranchConditional.False)
	case t.Switch != nil:
		check(t.Switch.Default)
		for _, c := range t.Switch.Cases {
			check(c.Target)
		}
	}
	return err
}

func validateTechnique(m *Module, tech *Technique) error {
	var err error
	if len(tech.Passes) == 0 {
		err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("technique %q has no passes", tech.Name)})
	}
	for _, p := range tech.Passes {
		if p.VSEntry != "" {
			if _, ok := m.FunctionByName(p.VSEntry); !ok {
				err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("pass %q references undefined vertex entry %q", p.Name, p.VSEntry)})
			}
		}
		if p.PSEntry != "" {
			if _, ok := m.FunctionByName(p.PSEntry); !ok {
				err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("pass %q references undefined pixel entry %q", p.Name, p.PSEntry)})
			}
		}
		for _, rt := range p.RenderTargets {
			if rt == "" {
				continue
			}
			if _, ok := m.TextureByName(rt); !ok {
				err = multierr.Append(err, ValidationError{Message: fmt.Sprintf("pass %q references undefined render target %q", p.Name, rt)})
			}
		}
	}
	return err
}

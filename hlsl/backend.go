// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"

	"github.com/gogpu/effectc/codegen"
	"github.com/gogpu/effectc/ir"
)

// Options configures HLSL code generation.
type Options struct {
	// ShaderModel selects the target profile string (vs_5_1, ps_6_0, ...).
	ShaderModel ShaderModel

	// FakeMissingBindings moves a sampler whose s# register collides with
	// an earlier sampler's onto the next free s# register in space 0.
	// Without it a colliding register is emitted unchanged. Textures get
	// sequential t# registers either way.
	FakeMissingBindings bool
}

// DefaultOptions returns sensible default options for HLSL generation.
func DefaultOptions() *Options {
	return &Options{
		ShaderModel:         ShaderModel5_1,
		FakeMissingBindings: true,
	}
}

// FeatureFlags indicates which HLSL features the generated code used.
type FeatureFlags uint32

const (
	FeatureNone FeatureFlags = 0

	// FeatureDerivatives marks a shader using ddx/ddy/fwidth.
	FeatureDerivatives FeatureFlags = 1 << iota

	// FeatureTexturing marks a shader sampling or loading from a texture.
	FeatureTexturing
)

// Has reports whether f contains every bit in feature.
func (f FeatureFlags) Has(feature FeatureFlags) bool { return f&feature == feature }

// String returns a human-readable list of enabled features.
func (f FeatureFlags) String() string {
	if f == FeatureNone {
		return "none"
	}
	var names []string
	if f.Has(FeatureDerivatives) {
		names = append(names, "Derivatives")
	}
	if f.Has(FeatureTexturing) {
		names = append(names, "Texturing")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// TranslationInfo carries metadata about a completed HLSL translation,
// for a caller that wants more than the raw source text.
type TranslationInfo struct {
	// EntryPointNames maps an effect function name to the generated
	// HLSL stub name that actually carries the stage's entry point.
	EntryPointNames map[string]string

	UsedFeatures FeatureFlags

	// RegisterBindings maps a resource name to the register string used
	// inside its register(...) clause, such as "t0" or "s1, space2".
	RegisterBindings map[string]string
}

// entryRequest records a CreateEntryPoint call until WriteResult wraps
// every requested function in a stage stub.
type entryRequest struct {
	fn    ir.FunctionHandle
	pixel bool
}

// functionState holds everything being built for the function currently
// between EnterFunction/LeaveFunction.
type functionState struct {
	handle ir.FunctionHandle
	sig    ir.Function

	// names binds every value handle (parameter, local, or statement
	// result) to the HLSL identifier that holds it.
	names map[ir.ValueHandle]string

	// types binds every value handle to the ir.Type it carries, so an
	// access chain can tell a struct index (field name) from an array or
	// vector index ([n]) and know which base type a trailing swizzle cuts
	// down from.
	types map[ir.ValueHandle]ir.Type

	localDecls []string

	// blockText accumulates the rendered statements of each block, in
	// the flat order EnterBlock/EmitXxx calls arrive in. renderRegion
	// stitches these back into nested control flow once the whole
	// function has been walked.
	blockText   map[ir.BlockHandle]string
	terminators map[ir.BlockHandle]ir.Terminator
	curBlock    ir.BlockHandle

	// constInts remembers every integer-valued constant bound in this
	// function, so an access chain indexing into a struct (which HLSL
	// can only do by field name, never by a runtime-computed index) can
	// recover the literal it was built from.
	constInts map[ir.ValueHandle]int64

	tempCounter int
}

func (fs *functionState) emit(line string) {
	fs.blockText[fs.curBlock] += line
}

func (fs *functionState) newTemp() string {
	fs.tempCounter++
	return fmt.Sprintf("_e%d", fs.tempCounter)
}

// Backend lowers an ir.Module into HLSL source text. It implements
// codegen.Generator.
type Backend struct {
	opts *Options

	structs     []ir.StructDef
	structNames map[ir.StructHandle]string

	textures []ir.Texture
	samplers []ir.Sampler
	uniforms []ir.Uniform

	// textureNames/samplerNames map a resource's original (pre-escape)
	// name to the HLSL identifier it was registered under, so a
	// texture/sampler-typed local variable can resolve to the already
	// declared global object instead of allocating a new one.
	textureNames map[string]string
	samplerNames map[string]string

	// uniformAccessors maps a uniform's original name to the
	// ConstantBuffer member expression ("_globals.Tint") a function body
	// reads it through.
	uniformAccessors map[string]string

	funcSigs  []ir.Function
	funcNames []string
	funcDecls []string

	techniques []ir.Technique
	entries    []entryRequest

	entryPointNames  map[string]string
	registerBindings map[string]string
	usedFeatures     FeatureFlags

	names *namer

	cur *functionState

	diags codegen.Diagnostics
}

// NewBackend creates a Backend ready to receive Generator calls.
func NewBackend(opts *Options) *Backend {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Backend{
		opts:             opts,
		structNames:      make(map[ir.StructHandle]string),
		textureNames:     make(map[string]string),
		samplerNames:     make(map[string]string),
		uniformAccessors: make(map[string]string),
		entryPointNames:  make(map[string]string),
		registerBindings: make(map[string]string),
		names:            newNamer(),
	}
}

func (b *Backend) structName(h ir.StructHandle) string {
	if n, ok := b.structNames[h]; ok {
		return n
	}
	return fmt.Sprintf("_struct_%d", h)
}

func (b *Backend) typeString(t ir.Type) string {
	return TypeToHLSL(t, b.structName)
}

// --- entity registration -------------------------------------------------

func (b *Backend) DefineStruct(def ir.StructDef) ir.StructHandle {
	h := ir.StructHandle(len(b.structs))
	def.ID = h
	name := def.Name
	if name == "" {
		name = fmt.Sprintf("_struct_%d", h)
	}
	b.structNames[h] = b.names.call(name)
	b.structs = append(b.structs, def)
	return h
}

func (b *Backend) DefineTexture(tex ir.Texture) ir.TextureHandle {
	h := ir.TextureHandle(len(b.textures))
	tex.ID = h
	orig := tex.Name
	tex.Name = b.names.call(tex.Name)
	b.textureNames[orig] = tex.Name
	b.textures = append(b.textures, tex)
	return h
}

func (b *Backend) DefineSampler(samp ir.Sampler) ir.SamplerHandle {
	h := ir.SamplerHandle(len(b.samplers))
	samp.ID = h
	orig := samp.Name
	samp.Name = b.names.call(samp.Name)
	b.samplerNames[orig] = samp.Name
	b.samplers = append(b.samplers, samp)
	return h
}

func (b *Backend) DefineUniform(u ir.Uniform) ir.UniformHandle {
	h := ir.UniformHandle(len(b.uniforms))
	u.ID = h
	orig := u.Name
	u.Name = b.names.call(u.Name)
	b.uniformAccessors[orig] = UniformBlockVar + "." + u.Name
	b.uniforms = append(b.uniforms, u)
	return h
}

func (b *Backend) DefineVariable(result ir.ValueHandle, name string, t ir.Type) {
	// A texture/sampler-typed local refers to an already declared global
	// resource by name; it never allocates storage of its own.
	if t.Base == ir.BaseTexture {
		if n, ok := b.textureNames[name]; ok {
			b.cur.names[result] = n
			b.cur.types[result] = t
			return
		}
	}
	if t.Base == ir.BaseSampler {
		if n, ok := b.samplerNames[name]; ok {
			b.cur.names[result] = n
			b.cur.types[result] = t
			return
		}
	}
	if acc, ok := b.uniformAccessors[name]; ok {
		b.cur.names[result] = acc
		b.cur.types[result] = t
		return
	}
	local := b.names.call(name)
	b.cur.names[result] = local
	b.cur.types[result] = t
	b.cur.localDecls = append(b.cur.localDecls, fmt.Sprintf("%s %s;\n", b.typeString(t), local))
}

func (b *Backend) DefineParameter(result ir.ValueHandle, p ir.Parameter) {
	b.cur.names[result] = b.names.call(p.Name)
	b.cur.types[result] = p.Type
}

func (b *Backend) DefineFunction(sig ir.Function) ir.FunctionHandle {
	h := ir.FunctionHandle(len(b.funcSigs))
	sig.ID = h
	b.funcSigs = append(b.funcSigs, sig)
	b.funcNames = append(b.funcNames, b.names.call(sig.Name))
	b.funcDecls = append(b.funcDecls, "")
	return h
}

func (b *Backend) DefineTechnique(tech ir.Technique) {
	b.techniques = append(b.techniques, tech)
}

func (b *Backend) CreateEntryPoint(fn ir.FunctionHandle, isPixelStage bool) ir.FunctionHandle {
	b.entries = append(b.entries, entryRequest{fn: fn, pixel: isPixelStage})
	return fn
}

// --- function scoping -----------------------------------------------------

func (b *Backend) EnterFunction(fn ir.FunctionHandle) {
	sig := b.funcSigs[fn]
	cur := &functionState{
		handle:      fn,
		sig:         sig,
		names:       make(map[ir.ValueHandle]string),
		types:       make(map[ir.ValueHandle]ir.Type),
		blockText:   make(map[ir.BlockHandle]string, len(sig.Blocks)),
		terminators: make(map[ir.BlockHandle]ir.Terminator, len(sig.Blocks)),
		constInts:   make(map[ir.ValueHandle]int64),
	}
	for i := range sig.Blocks {
		cur.blockText[sig.Blocks[i].ID] = ""
	}
	b.cur = cur
}

func (b *Backend) LeaveFunction() {
	body := renderFunctionBody(b.cur)
	params := make([]string, len(b.cur.sig.Params))
	for i, p := range b.cur.sig.Params {
		params[i] = fmt.Sprintf("%s %s", b.typeString(p.Type), b.cur.names[ir.ValueHandle(i)])
	}
	retType := b.typeString(b.cur.sig.Result.Type)
	if b.cur.sig.Result.Type.Base == ir.BaseVoid {
		retType = "void"
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s %s(%s) {\n", retType, b.funcNames[b.cur.handle], strings.Join(params, ", "))
	for _, decl := range b.cur.localDecls {
		out.WriteString(indentText(decl, "    "))
	}
	out.WriteString(indentText(body, "    "))
	out.WriteString("}\n")
	b.funcDecls[b.cur.handle] = out.String()
	b.cur = nil
}

func indentText(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	var out strings.Builder
	for _, l := range lines {
		if l == "" {
			out.WriteByte('\n')
			continue
		}
		out.WriteString(prefix)
		out.WriteString(l)
		out.WriteByte('\n')
	}
	return out.String()
}

// --- result assembly -------------------------------------------------------

// WriteResult assembles every declared struct/resource/uniform and
// function body, wraps the requested entry points, and returns the
// complete HLSL source text.
func (b *Backend) WriteResult() (codegen.Result, error) {
	var out strings.Builder

	b.writeStructDecls(&out)
	b.writeResourceDecls(&out)
	b.writeUniformBlock(&out)

	for _, decl := range b.funcDecls {
		out.WriteString(decl)
		out.WriteString("\n")
	}

	for _, req := range b.entries {
		b.writeEntryStub(&out, req)
	}

	res := codegen.Result{
		HLSL:        out.String(),
		Textures:    b.textures,
		Samplers:    b.samplers,
		Uniforms:    b.uniforms,
		Diagnostics: b.diags,
	}
	return res, b.diags.Err()
}

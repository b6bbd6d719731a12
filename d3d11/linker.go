// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package d3d11

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gogpu/effectc/codegen"
	"github.com/gogpu/effectc/ir"
)

// arenaAlign is the byte alignment the uniform arena grows by after
// every module link (spec §4.4 step 5 "padded to 16 bytes per buffer").
const arenaAlign = 16

// linkedTexture is the linker's own record of a texture it has bound
// to the device, keyed by Texture.Name in Linker.textures (spec §5
// "the runtime owns ... the texture registry (keyed by unique name)").
type linkedTexture struct {
	desc      TextureDesc
	handle    Handle
	linearSRV Handle
	srgbSRV   Handle
	rtv       Handle // created lazily, the first time a pass targets it
}

// Linker consumes a compiled effect module and binds its resources onto
// a Device. One Linker instance is meant to outlive many Link calls: its
// texture registry, sampler cache and uniform arena offset persist
// across compiles, matching the "linker only appends" rule of spec §5.
type Linker struct {
	dev      Device
	compiler HLSLCompiler

	textures  map[string]*linkedTexture
	samplers  map[uint32]Handle
	arenaSize uint32

	diags codegen.Diagnostics
	failed bool
}

// NewLinker creates a Linker bound to dev, loading the vendor HLSL
// compiler (spec §4.4 step 1). A load failure is an environment error
// and is always fatal (spec §7 taxonomy 4).
func NewLinker(dev Device) (*Linker, error) {
	compiler, err := NewCompiler()
	if err != nil {
		return nil, errors.Wrap(err, "d3d11: loading vendor HLSL compiler")
	}
	return NewLinkerWithCompiler(dev, compiler), nil
}

// NewLinkerWithCompiler creates a Linker bound to an already-loaded
// compiler, bypassing the platform DLL lookup NewLinker performs. This
// is how tests exercise Linker's platform-neutral logic against a fake
// HLSLCompiler on any GOOS.
func NewLinkerWithCompiler(dev Device, compiler HLSLCompiler) *Linker {
	return &Linker{
		dev:      dev,
		compiler: compiler,
		textures: make(map[string]*linkedTexture),
		samplers: make(map[uint32]Handle),
	}
}

// CompiledEntryPoint is one stage entry point's compiled bytecode,
// keyed by the HLSL function name the backend wrapped it as.
type CompiledEntryPoint struct {
	Name     string
	Pixel    bool
	Bytecode []byte
}

// LinkedPass is one technique pass with every state object and view
// resolved onto the device.
type LinkedPass struct {
	Name string

	DepthStencilState Handle
	BlendState        Handle

	ViewportWidth, ViewportHeight uint32

	// RenderTargets holds the RTV handle bound at each output-merger
	// slot (zero = unused), mirroring ir.Pass.RenderTargets by index.
	RenderTargets [ir.MaxRenderTargets]Handle

	// ShaderResources holds the SRV handle a pass may sample from,
	// keyed by texture name; a texture also bound as one of this
	// pass's render targets is omitted (spec §4.4 step 6 hazard rule).
	ShaderResources map[string]Handle
}

// LinkedTechnique is one technique with every pass linked and GPU
// timing queries allocated.
type LinkedTechnique struct {
	Name            string
	TimestampQuery  Handle
	DisjointQuery   Handle
	Passes          []LinkedPass
}

// LinkedEffect is the complete runtime-ready output of a Link call.
type LinkedEffect struct {
	EntryPoints      []CompiledEntryPoint
	Samplers         map[string]Handle
	ConstantBuffer   Handle
	UniformOffsets   map[string]uint32
	Techniques       []LinkedTechnique
}

// Failed reports whether the link accumulated a fatal error (spec §7
// "the module is marked failed only on categories 1, 3-fatal, and 4").
func (l *Linker) Failed() bool { return l.failed }

// Diagnostics returns every accumulated error/warning from the most
// recent Link call.
func (l *Linker) Diagnostics() *codegen.Diagnostics { return &l.diags }

// Link binds mod's compiled resources onto the device and returns the
// runtime-ready effect, following spec §4.4 steps 2-6. Step 1 (compiler
// load) already happened in NewLinker. Errors accumulate in l.diags
// rather than aborting, per spec §7's policy; Link still returns a
// non-nil error when Failed() would report true, for callers that only
// want pass/fail.
func (l *Linker) Link(mod *ir.Module, compiled *codegen.Result) (*LinkedEffect, error) {
	l.diags = codegen.Diagnostics{}
	l.failed = false

	entries := l.compileEntryPoints(mod, compiled)
	for _, t := range compiled.Textures {
		l.linkTexture(t)
	}
	samplerHandles := make(map[string]Handle, len(compiled.Samplers))
	for _, s := range compiled.Samplers {
		samplerHandles[s.Name] = l.linkSampler(s)
	}
	cb, offsets := l.linkUniforms(compiled.Uniforms)

	techniques := make([]LinkedTechnique, 0, len(mod.Techniques))
	for _, tech := range mod.Techniques {
		techniques = append(techniques, l.linkTechnique(tech))
	}

	effect := &LinkedEffect{
		EntryPoints:    entries,
		Samplers:       samplerHandles,
		ConstantBuffer: cb,
		UniformOffsets: offsets,
		Techniques:     techniques,
	}
	if l.failed {
		return effect, l.diags.Err()
	}
	return effect, nil
}

// compileEntryPoints compiles every VS/PS entry point referenced by any
// pass to SM 5.0 bytecode (spec §4.4 step 2). A compile failure for one
// entry point is recorded and the remaining entry points still compile.
func (l *Linker) compileEntryPoints(mod *ir.Module, compiled *codegen.Result) []CompiledEntryPoint {
	seen := make(map[string]bool)
	var out []CompiledEntryPoint
	for _, tech := range mod.Techniques {
		for _, pass := range tech.Passes {
			for _, e := range []struct {
				name    string
				pixel   bool
				profile string
			}{
				{pass.VSEntry, false, "vs_5_0"},
				{pass.PSEntry, true, "ps_5_0"},
			} {
				if e.name == "" || seen[e.name] {
					continue
				}
				seen[e.name] = true
				code, log, err := l.compiler.Compile([]byte(compiled.HLSL), e.name, e.profile)
				if err != nil {
					l.diags.Error(e.name, err.Error())
					l.failed = true
					continue
				}
				if log != "" {
					l.diags.Warning(e.name, log)
				}
				out = append(out, CompiledEntryPoint{Name: e.name, Pixel: e.pixel, Bytecode: code})
			}
		}
	}
	return out
}

// linkTexture implements spec §4.4 step 3: reuse a same-named texture
// whose dimensions match, fail on a mismatch, bind COLOR/DEPTH without
// allocating, and otherwise create a fresh 2-D texture plus its linear
// and (if the format has one) sRGB shader-resource views.
func (l *Linker) linkTexture(t ir.Texture) {
	if existing, ok := l.textures[t.Name]; ok {
		want := TextureDesc{Name: t.Name, Width: t.Width, Height: t.Height, Levels: t.Levels, Format: t.Format}
		if !existing.desc.Matches(want) {
			l.diags.Error("", fmt.Sprintf("texture %q redeclared with mismatching dimensions", t.Name))
			l.failed = true
		}
		return
	}

	switch t.Name {
	case "COLOR":
		h, err := l.dev.Backbuffer()
		if err != nil {
			l.diags.Error("", fmt.Sprintf("binding backbuffer: %s", err))
			l.failed = true
			return
		}
		lt := &linkedTexture{handle: h}
		if lt.linearSRV, err = l.dev.BackbufferSRV(false); err != nil {
			l.diags.Error("", fmt.Sprintf("binding backbuffer SRV: %s", err))
			l.failed = true
			return
		}
		if lt.srgbSRV, err = l.dev.BackbufferSRV(true); err != nil {
			l.diags.Error("", fmt.Sprintf("binding backbuffer sRGB SRV: %s", err))
			l.failed = true
			return
		}
		l.textures[t.Name] = lt
		return
	case "DEPTH":
		h, err := l.dev.DepthBuffer()
		if err != nil {
			l.diags.Error("", fmt.Sprintf("binding depth buffer: %s", err))
			l.failed = true
			return
		}
		lt := &linkedTexture{handle: h}
		if lt.linearSRV, err = l.dev.DepthSRV(false); err != nil {
			l.diags.Error("", fmt.Sprintf("binding depth buffer SRV: %s", err))
			l.failed = true
			return
		}
		if lt.srgbSRV, err = l.dev.DepthSRV(true); err != nil {
			l.diags.Error("", fmt.Sprintf("binding depth buffer sRGB SRV: %s", err))
			l.failed = true
			return
		}
		l.textures[t.Name] = lt
		return
	}

	desc := TextureDesc{Name: t.Name, Width: t.Width, Height: t.Height, Levels: t.Levels, Format: t.Format}
	h, err := l.dev.CreateTexture(desc)
	if err != nil {
		l.diags.Error("", fmt.Sprintf("creating texture %q: %s", t.Name, err))
		l.failed = true
		return
	}
	lt := &linkedTexture{desc: desc, handle: h}
	if lt.linearSRV, err = l.dev.CreateSRV(h, false); err != nil {
		l.diags.Error("", fmt.Sprintf("creating SRV for %q: %s", t.Name, err))
		l.failed = true
		return
	}
	if HasSRGBVariant(t.Format) {
		if lt.srgbSRV, err = l.dev.CreateSRV(h, true); err != nil {
			l.diags.Error("", fmt.Sprintf("creating sRGB SRV for %q: %s", t.Name, err))
			l.failed = true
			return
		}
	} else {
		lt.srgbSRV = lt.linearSRV
	}
	l.textures[t.Name] = lt
}

// linkSampler implements spec §4.4 step 4: hash the sampler's filtering
// state and intern one device object per distinct descriptor.
func (l *Linker) linkSampler(s ir.Sampler) Handle {
	key := hashSamplerDesc(SamplerDescFrom(s))
	if h, ok := l.samplers[key]; ok {
		return h
	}
	h, err := l.dev.CreateSampler(SamplerDescFrom(s))
	if err != nil {
		// Sampler creation failures are downgraded to warnings: the
		// failure is recorded and this sampler gets handle 0, while
		// linking of the module carries on (spec §7 taxonomy 3).
		l.diags.Warning("", fmt.Sprintf("creating sampler: %s", err))
		return 0
	}
	l.samplers[key] = h
	return h
}

// linkUniforms implements spec §4.4 step 5: assign each uniform an
// offset into the running arena, then grow the arena by the 16-byte-
// rounded block size and create one dynamic constant buffer.
func (l *Linker) linkUniforms(uniforms []ir.Uniform) (Handle, map[string]uint32) {
	if len(uniforms) == 0 {
		return 0, nil
	}
	base := l.arenaSize
	offsets := make(map[string]uint32, len(uniforms))

	var blockEnd uint32
	data := make([]byte, 0, 64)
	for _, u := range uniforms {
		offset := base + u.Offset
		offsets[u.Name] = offset
		if end := u.Offset + u.Size; end > blockEnd {
			blockEnd = end
		}
		for uint32(len(data)) < u.Offset+u.Size {
			data = append(data, 0)
		}
		if u.Initializer != nil {
			n := int(u.Size)
			if n > len(u.Initializer.Bits)*4 {
				n = len(u.Initializer.Bits) * 4
			}
			for i := 0; i < n; i++ {
				data[int(u.Offset)+i] = byte(u.Initializer.Bits[i/4] >> (8 * (i % 4)))
			}
		}
	}
	blockSize := alignUp(blockEnd, arenaAlign)
	l.arenaSize = base + blockSize

	cb, err := l.dev.CreateConstantBuffer(blockSize, data)
	if err != nil {
		l.diags.Error("", fmt.Sprintf("creating constant buffer: %s", err))
		l.failed = true
		return 0, offsets
	}
	return cb, offsets
}

func alignUp(v, align uint32) uint32 {
	if align == 0 {
		return v
	}
	return (v + align - 1) / align * align
}

// linkTechnique implements spec §4.4 step 6.
func (l *Linker) linkTechnique(tech ir.Technique) LinkedTechnique {
	lt := LinkedTechnique{Name: tech.Name}
	if h, err := l.dev.CreateTimestampQuery(); err != nil {
		l.diags.Warning(tech.Name, fmt.Sprintf("creating timestamp query: %s", err))
	} else {
		lt.TimestampQuery = h
	}
	if h, err := l.dev.CreateDisjointQuery(); err != nil {
		l.diags.Warning(tech.Name, fmt.Sprintf("creating disjoint query: %s", err))
	} else {
		lt.DisjointQuery = h
	}

	for _, pass := range tech.Passes {
		lt.Passes = append(lt.Passes, l.linkPass(pass))
	}
	return lt
}

func (l *Linker) linkPass(pass ir.Pass) LinkedPass {
	lp := LinkedPass{Name: pass.Name, ShaderResources: make(map[string]Handle)}

	if h, err := l.dev.CreateDepthStencilState(depthStencilDesc(pass.Stencil)); err != nil {
		l.diags.Warning(pass.Name, fmt.Sprintf("creating depth-stencil state: %s", err))
	} else {
		lp.DepthStencilState = h
	}
	if h, err := l.dev.CreateBlendState(blendStateDesc(pass.Blend, pass.ColorWriteMask)); err != nil {
		l.diags.Warning(pass.Name, fmt.Sprintf("creating blend state: %s", err))
	} else {
		lp.BlendState = h
	}

	lp.ViewportWidth, lp.ViewportHeight = l.resolveViewport(pass)

	rtNames := make(map[string]bool)
	for i, name := range pass.RenderTargets {
		if name == "" {
			continue
		}
		rtNames[name] = true
		lt, ok := l.textures[name]
		if !ok {
			l.diags.Error(pass.Name, fmt.Sprintf("unknown render target %q", name))
			l.failed = true
			continue
		}
		if lt.rtv == 0 {
			h, err := l.dev.CreateRTV(lt.handle)
			if err != nil {
				l.diags.Warning(pass.Name, fmt.Sprintf("creating RTV for %q: %s", name, err))
				continue
			}
			lt.rtv = h
		}
		lp.RenderTargets[i] = lt.rtv
	}

	// ir.Pass carries no explicit per-pass "textures this pass samples"
	// list (that's implicit in the compiled shader's resource
	// declarations), so every texture the module has linked so far is
	// exposed here; the hazard rule below is what actually matters.
	for name, lt := range l.textures {
		if rtNames[name] {
			// Bound as both an RT and a sample source in the same pass:
			// null the SRV to avoid a read/write hazard (spec §4.4 step 6).
			continue
		}
		srv := lt.linearSRV
		if pass.SRGBWrite && lt.srgbSRV != 0 {
			srv = lt.srgbSRV
		}
		if srv != 0 {
			lp.ShaderResources[name] = srv
		}
	}
	return lp
}

// resolveViewport implements the viewport-size rule of spec §4.4 step 6
// and §8 property "if two RTs are bound, their textures have equal
// (Width, Height)": the first non-empty render target's dimensions win,
// falling back to the framebuffer size when the pass binds none.
func (l *Linker) resolveViewport(pass ir.Pass) (uint32, uint32) {
	if pass.Viewport != nil {
		return pass.Viewport.Width, pass.Viewport.Height
	}
	var width, height uint32
	have := false
	for _, name := range pass.RenderTargets {
		if name == "" {
			continue
		}
		lt, ok := l.textures[name]
		if !ok || lt.desc.Width == 0 {
			continue
		}
		if !have {
			width, height, have = lt.desc.Width, lt.desc.Height, true
			continue
		}
		if lt.desc.Width != width || lt.desc.Height != height {
			l.diags.Error(pass.Name, fmt.Sprintf("render targets differ in size: %dx%d vs %dx%d", width, height, lt.desc.Width, lt.desc.Height))
			l.failed = true
		}
	}
	if have {
		return width, height
	}
	return l.dev.FramebufferSize()
}

func depthStencilDesc(s ir.StencilState) DepthStencilDesc {
	return DepthStencilDesc{
		Enable:      s.Enable,
		ReadMask:    s.ReadMask,
		WriteMask:   s.WriteMask,
		FailOp:      s.FailOp,
		DepthFailOp: s.DepthFailOp,
		PassOp:      s.PassOp,
		Func:        s.Func,
		Reference:   s.Reference,
	}
}

func blendStateDesc(b ir.BlendState, mask [ir.MaxRenderTargets]uint8) BlendStateDesc {
	return BlendStateDesc{
		Enable:         b.Enable,
		SrcBlend:       b.SrcBlend,
		DestBlend:      b.DestBlend,
		BlendOp:        b.BlendOp,
		SrcBlendAlpha:  b.SrcBlendAlpha,
		DestBlendAlpha: b.DestBlendAlpha,
		BlendOpAlpha:   b.BlendOpAlpha,
		ColorWriteMask: mask,
	}
}

package d3d11

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/effectc/codegen"
	"github.com/gogpu/effectc/ir"
)

// fakeCompiler records every Compile call instead of invoking a real
// vendor DLL, so Linker's orchestration logic can be tested on any GOOS.
type fakeCompiler struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeCompiler) Compile(src []byte, entryPoint, target string) ([]byte, string, error) {
	f.calls = append(f.calls, entryPoint+"/"+target)
	if f.fail[entryPoint] {
		return nil, "error X3004: undeclared identifier", fmt.Errorf("compile failed")
	}
	return []byte("bytecode:" + entryPoint), "", nil
}

// fakeDevice is an in-memory Device fake: every Create call returns a
// fresh sequential Handle and records its inputs for assertions.
type fakeDevice struct {
	next      Handle
	texDescs  map[Handle]TextureDesc
	fbW, fbH  uint32
	failCreate map[string]bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{next: 1, texDescs: make(map[Handle]TextureDesc), fbW: 1920, fbH: 1080, failCreate: map[string]bool{}}
}

func (d *fakeDevice) handle() Handle {
	h := d.next
	d.next++
	return h
}

func (d *fakeDevice) Backbuffer() (Handle, error)  { return d.handle(), nil }
func (d *fakeDevice) DepthBuffer() (Handle, error) { return d.handle(), nil }
func (d *fakeDevice) BackbufferSRV(srgb bool) (Handle, error) { return d.handle(), nil }
func (d *fakeDevice) DepthSRV(srgb bool) (Handle, error)      { return d.handle(), nil }
func (d *fakeDevice) FramebufferSize() (uint32, uint32) { return d.fbW, d.fbH }

func (d *fakeDevice) CreateTexture(desc TextureDesc) (Handle, error) {
	if d.failCreate["texture"] {
		return 0, fmt.Errorf("device lost")
	}
	h := d.handle()
	d.texDescs[h] = desc
	return h, nil
}

func (d *fakeDevice) TextureDesc(h Handle) (TextureDesc, bool) {
	desc, ok := d.texDescs[h]
	return desc, ok
}

func (d *fakeDevice) CreateSRV(tex Handle, srgb bool) (Handle, error) { return d.handle(), nil }
func (d *fakeDevice) CreateRTV(tex Handle) (Handle, error)            { return d.handle(), nil }
func (d *fakeDevice) CreateSampler(desc SamplerDesc) (Handle, error)  { return d.handle(), nil }

func (d *fakeDevice) CreateConstantBuffer(size uint32, data []byte) (Handle, error) {
	return d.handle(), nil
}

func (d *fakeDevice) CreateBlendState(desc BlendStateDesc) (Handle, error) { return d.handle(), nil }
func (d *fakeDevice) CreateDepthStencilState(desc DepthStencilDesc) (Handle, error) {
	return d.handle(), nil
}
func (d *fakeDevice) CreateTimestampQuery() (Handle, error) { return d.handle(), nil }
func (d *fakeDevice) CreateDisjointQuery() (Handle, error)  { return d.handle(), nil }

func TestLinkerReusesMatchingTexture(t *testing.T) {
	dev := newFakeDevice()
	l := NewLinkerWithCompiler(dev, &fakeCompiler{})

	tex := ir.Texture{Name: "scene", Width: 256, Height: 256, Levels: 1, Format: ir.FormatRGBA8}
	mod := &ir.Module{Textures: []ir.Texture{tex}}
	res := &codegen.Result{Textures: mod.Textures}

	if _, err := l.Link(mod, res); err != nil {
		t.Fatalf("first link: %v", err)
	}
	firstHandle := l.textures["scene"].handle

	if _, err := l.Link(mod, res); err != nil {
		t.Fatalf("second link: %v", err)
	}
	if l.textures["scene"].handle != firstHandle {
		t.Errorf("texture was recreated instead of reused: %v != %v", l.textures["scene"].handle, firstHandle)
	}
}

func TestLinkerBindsColorAndDepthSRVs(t *testing.T) {
	dev := newFakeDevice()
	l := NewLinkerWithCompiler(dev, &fakeCompiler{})

	mod := &ir.Module{Textures: []ir.Texture{
		{Name: "COLOR"},
		{Name: "DEPTH"},
	}}
	res := &codegen.Result{Textures: mod.Textures}

	if _, err := l.Link(mod, res); err != nil {
		t.Fatalf("Link() error = %v", err)
	}

	pass := l.linkPass(ir.Pass{Name: "p0"})
	if _, ok := pass.ShaderResources["COLOR"]; !ok {
		t.Errorf("COLOR produced no ShaderResources entry: %+v", pass.ShaderResources)
	}
	if _, ok := pass.ShaderResources["DEPTH"]; !ok {
		t.Errorf("DEPTH produced no ShaderResources entry: %+v", pass.ShaderResources)
	}
}

func TestLinkerFailsOnMismatchedRedeclaration(t *testing.T) {
	dev := newFakeDevice()
	l := NewLinkerWithCompiler(dev, &fakeCompiler{})

	mod := &ir.Module{Textures: []ir.Texture{{Name: "scene", Width: 256, Height: 256, Levels: 1}}}
	if _, err := l.Link(mod, &codegen.Result{Textures: mod.Textures}); err != nil {
		t.Fatalf("first link: %v", err)
	}

	mod2 := &ir.Module{Textures: []ir.Texture{{Name: "scene", Width: 512, Height: 512, Levels: 1}}}
	if _, err := l.Link(mod2, &codegen.Result{Textures: mod2.Textures}); err == nil {
		t.Fatalf("expected an error for mismatched texture redeclaration")
	}
	if !l.Failed() {
		t.Errorf("Failed() = false, want true")
	}
}

func TestLinkerDedupesIdenticalSamplers(t *testing.T) {
	dev := newFakeDevice()
	l := NewLinkerWithCompiler(dev, &fakeCompiler{})

	a := ir.Sampler{Name: "pointClamp", Filter: ir.FilterPoint, AddressU: ir.AddressClamp, AddressV: ir.AddressClamp}
	b := ir.Sampler{Name: "pointClampAgain", Filter: ir.FilterPoint, AddressU: ir.AddressClamp, AddressV: ir.AddressClamp}
	c := ir.Sampler{Name: "linearWrap", Filter: ir.FilterLinear, AddressU: ir.AddressWrap, AddressV: ir.AddressWrap}

	mod := &ir.Module{Samplers: []ir.Sampler{a, b, c}}
	res := &codegen.Result{Samplers: mod.Samplers}

	effect, err := l.Link(mod, res)
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	if effect.Samplers["pointClamp"] != effect.Samplers["pointClampAgain"] {
		t.Errorf("identical sampler descriptors were not deduplicated")
	}
	if effect.Samplers["linearWrap"] == effect.Samplers["pointClamp"] {
		t.Errorf("distinct sampler descriptors collided")
	}
}

func TestLinkerAssignsUniformOffsets(t *testing.T) {
	dev := newFakeDevice()
	l := NewLinkerWithCompiler(dev, &fakeCompiler{})

	uniforms := []ir.Uniform{
		{Name: "a", Type: ir.ScalarType(ir.BaseFloat), Offset: 0, Size: 4},
		{Name: "b", Type: ir.VectorType(ir.BaseFloat, 3), Offset: 16, Size: 12},
		{Name: "c", Type: ir.ScalarType(ir.BaseFloat), Offset: 28, Size: 4},
	}
	mod := &ir.Module{}
	res := &codegen.Result{Uniforms: uniforms}

	effect, err := l.Link(mod, res)
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	want := map[string]uint32{"a": 0, "b": 16, "c": 28}
	if diff := cmp.Diff(want, effect.UniformOffsets); diff != "" {
		t.Errorf("unexpected uniform offsets (-want +got):\n%s", diff)
	}
	if effect.ConstantBuffer == 0 {
		t.Errorf("constant buffer handle not assigned")
	}

	// A second link's uniforms land after the first block (arena only
	// ever grows; the linker never mutates a previous compile's range).
	effect2, err := l.Link(mod, res)
	if err != nil {
		t.Fatalf("second Link() error = %v", err)
	}
	if effect2.UniformOffsets["a"] == effect.UniformOffsets["a"] {
		t.Errorf("second link's uniforms did not advance past the first block")
	}
}

func TestLinkerNullsSRVForRenderTargetHazard(t *testing.T) {
	dev := newFakeDevice()
	l := NewLinkerWithCompiler(dev, &fakeCompiler{})

	feedback := ir.Texture{Name: "feedback", Width: 128, Height: 128, Levels: 1, Format: ir.FormatRGBA8}
	mod := &ir.Module{
		Textures: []ir.Texture{feedback},
		Techniques: []ir.Technique{{
			Name: "Blur",
			Passes: []ir.Pass{{
				Name:          "p0",
				RenderTargets: [ir.MaxRenderTargets]string{"feedback"},
			}},
		}},
	}
	res := &codegen.Result{Textures: mod.Textures}

	effect, err := l.Link(mod, res)
	if err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	pass := effect.Techniques[0].Passes[0]
	if _, sampled := pass.ShaderResources["feedback"]; sampled {
		t.Errorf("feedback texture's SRV was not nulled despite also being this pass's render target")
	}
	if pass.RenderTargets[0] == 0 {
		t.Errorf("render target 0 was not bound")
	}
}

func TestLinkerFailsOnMismatchedRenderTargetSizes(t *testing.T) {
	dev := newFakeDevice()
	l := NewLinkerWithCompiler(dev, &fakeCompiler{})

	small := ir.Texture{Name: "small", Width: 128, Height: 128, Levels: 1}
	big := ir.Texture{Name: "big", Width: 256, Height: 256, Levels: 1}
	mod := &ir.Module{
		Textures: []ir.Texture{small, big},
		Techniques: []ir.Technique{{
			Name: "MRT",
			Passes: []ir.Pass{{
				Name:          "p0",
				RenderTargets: [ir.MaxRenderTargets]string{"small", "big"},
			}},
		}},
	}
	res := &codegen.Result{Textures: mod.Textures}

	if _, err := l.Link(mod, res); err == nil {
		t.Fatalf("expected an error for mismatched render target sizes")
	}
}

func TestLinkerCompilesEntryPointsAndReportsFailure(t *testing.T) {
	dev := newFakeDevice()
	compiler := &fakeCompiler{fail: map[string]bool{"PSMain": true}}
	l := NewLinkerWithCompiler(dev, compiler)

	fn := ir.Function{Name: "VSMain"}
	mod := &ir.Module{
		Functions: []ir.Function{fn},
		Techniques: []ir.Technique{{
			Name:   "Main",
			Passes: []ir.Pass{{Name: "p0", VSEntry: "VSMain", PSEntry: "PSMain"}},
		}},
	}
	res := &codegen.Result{HLSL: "/* generated */"}

	_, err := l.Link(mod, res)
	if err == nil {
		t.Fatalf("expected an error from the failing pixel entry point")
	}
	if !l.Failed() {
		t.Errorf("Failed() = false, want true")
	}
	if len(compiler.calls) != 2 {
		t.Errorf("expected both entry points to attempt compilation, got %v", compiler.calls)
	}
}

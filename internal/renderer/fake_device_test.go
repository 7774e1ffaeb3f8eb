package renderer

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

var _ Device = (*fakeDevice)(nil)

// drawCall is the state a draw saw when it was issued.
type drawCall struct {
	program   uint32
	fbo       uint32
	viewport  [4]int32
	depthFunc DepthFunc
	depthMask bool
	units     map[uint32]uint32
	mode      Primitive
	va        VertexArray
}

type clearCall struct {
	fbo      uint32
	viewport [4]int32
	mask     ClearMask
}

type uniformRef struct {
	program uint32
	name    string
}

// fakeDevice records every call instead of talking to a GPU. Uniform writes
// land in the program that owns the location.
type fakeDevice struct {
	nextID uint32

	fbo       uint32
	viewport  [4]int32
	program   uint32
	depthFunc DepthFunc
	depthMask bool
	units     map[uint32]uint32

	draws    []drawCall
	clears   []clearCall
	deleted  map[uint32]bool
	sources  map[uint32]string
	uniforms map[uint32]map[string]interface{}
	lookups  int

	locations map[uniformRef]int32
	refs      map[int32]uniformRef

	// incomplete makes every framebuffer report incomplete.
	incomplete bool
	// failCompile rejects programs whose sources contain this marker.
	failCompile string
	// missingUniforms are reported as -1 by UniformLocation.
	missingUniforms map[string]bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		nextID:          100,
		depthMask:       true,
		units:           map[uint32]uint32{},
		deleted:         map[uint32]bool{},
		sources:         map[uint32]string{},
		uniforms:        map[uint32]map[string]interface{}{},
		locations:       map[uniformRef]int32{},
		refs:            map[int32]uniformRef{},
		missingUniforms: map[string]bool{},
	}
}

func (d *fakeDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDevice) CreateFramebuffer() uint32 { return d.id() }
func (d *fakeDevice) BindFramebuffer(fbo uint32) { d.fbo = fbo }
func (d *fakeDevice) AttachColorTexture(int, int32, int32) uint32 {
	return d.id()
}
func (d *fakeDevice) AttachDepthTexture(int32, int32) uint32 { return d.id() }
func (d *fakeDevice) AttachDepthRenderbuffer(int32, int32) uint32 { return d.id() }
func (d *fakeDevice) SetDrawBuffers(int) {}

func (d *fakeDevice) FramebufferStatus() (bool, uint32) {
	if d.incomplete {
		return false, 0x8CD6
	}
	return true, 0x8CD5
}

func (d *fakeDevice) DeleteFramebuffer(fbo uint32) { d.deleted[fbo] = true }
func (d *fakeDevice) DeleteRenderbuffer(rbo uint32) { d.deleted[rbo] = true }

func (d *fakeDevice) Viewport(x, y, width, height int32) {
	d.viewport = [4]int32{x, y, width, height}
}

func (d *fakeDevice) SetClearColor(r, g, b, a float32) {}

func (d *fakeDevice) Clear(mask ClearMask) {
	d.clears = append(d.clears, clearCall{fbo: d.fbo, viewport: d.viewport, mask: mask})
}

func (d *fakeDevice) EnableDepthTest(f DepthFunc) { d.depthFunc = f }
func (d *fakeDevice) SetDepthFunc(f DepthFunc) { d.depthFunc = f }
func (d *fakeDevice) SetDepthMask(write bool) { d.depthMask = write }
func (d *fakeDevice) EnableAlphaBlending() {}

func (d *fakeDevice) CreateTexture2D(*image.RGBA) uint32 { return d.id() }
func (d *fakeDevice) CreateCubemap([6]*image.RGBA) uint32 { return d.id() }

func (d *fakeDevice) BindTexture(unit uint32, kind TextureKind, tex uint32) {
	d.units[unit] = tex
}

func (d *fakeDevice) DeleteTexture(tex uint32) { d.deleted[tex] = true }

func (d *fakeDevice) CreateVertexArray(vertices []float32, indices []uint32, layout []int32) VertexArray {
	stride := int32(0)
	for _, n := range layout {
		stride += n
	}
	va := VertexArray{VAO: d.id(), VBO: d.id(), Count: int32(len(vertices)) / stride}
	if len(indices) > 0 {
		va.EBO = d.id()
		va.Count = int32(len(indices))
		va.Indexed = true
	}
	return va
}

func (d *fakeDevice) Draw(va VertexArray, mode Primitive) {
	units := make(map[uint32]uint32, len(d.units))
	for k, v := range d.units {
		units[k] = v
	}
	d.draws = append(d.draws, drawCall{
		program:   d.program,
		fbo:       d.fbo,
		viewport:  d.viewport,
		depthFunc: d.depthFunc,
		depthMask: d.depthMask,
		units:     units,
		mode:      mode,
		va:        va,
	})
}

func (d *fakeDevice) DeleteVertexArray(va VertexArray) { d.deleted[va.VAO] = true }

func (d *fakeDevice) CompileProgram(vertexSource, fragmentSource string) (uint32, error) {
	if d.failCompile != "" && (strings.Contains(vertexSource, d.failCompile) || strings.Contains(fragmentSource, d.failCompile)) {
		return 0, errors.New("0:1(1): error: syntax error")
	}
	program := d.id()
	d.sources[program] = vertexSource + "\n" + fragmentSource
	d.uniforms[program] = map[string]interface{}{}
	return program, nil
}

func (d *fakeDevice) UseProgram(program uint32) { d.program = program }
func (d *fakeDevice) DeleteProgram(program uint32) { d.deleted[program] = true }

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	d.lookups++
	if d.missingUniforms[name] {
		return -1
	}
	ref := uniformRef{program, name}
	if loc, ok := d.locations[ref]; ok {
		return loc
	}
	loc := int32(len(d.locations))
	d.locations[ref] = loc
	d.refs[loc] = ref
	return loc
}

func (d *fakeDevice) set(location int32, v interface{}) {
	ref, ok := d.refs[location]
	if !ok {
		panic(fmt.Sprintf("fake device: unknown uniform location %d", location))
	}
	d.uniforms[ref.program][ref.name] = v
}

func (d *fakeDevice) Uniform1i(location int32, v int32) { d.set(location, v) }
func (d *fakeDevice) Uniform1f(location int32, v float32) { d.set(location, v) }
func (d *fakeDevice) Uniform3f(location int32, v mgl32.Vec3) { d.set(location, v) }
func (d *fakeDevice) UniformMat4(location int32, m mgl32.Mat4) { d.set(location, m) }

// drawsInto returns the draws issued while fbo was bound.
func (d *fakeDevice) drawsInto(fbo uint32) []drawCall {
	var out []drawCall
	for _, dc := range d.draws {
		if dc.fbo == fbo {
			out = append(out, dc)
		}
	}
	return out
}

func (d *fakeDevice) reset() {
	d.draws = nil
	d.clears = nil
}

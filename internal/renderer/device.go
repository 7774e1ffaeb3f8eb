package renderer

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// ClearMask selects which buffers Clear resets.
type ClearMask uint32

const (
	ClearColorBit ClearMask = 1 << iota
	ClearDepthBit
)

type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLessEqual
)

func (f DepthFunc) String() string {
	if f == DepthLessEqual {
		return "LEQUAL"
	}
	return "LESS"
}

type TextureKind int

const (
	Texture2D TextureKind = iota
	TextureCube
)

type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// VertexArray is an uploaded vertex buffer with an optional index buffer.
type VertexArray struct {
	VAO   uint32
	VBO   uint32
	EBO   uint32
	Count int32
	// Indexed draws Count indices from EBO, otherwise Count vertices.
	Indexed bool
}

// Device is the render context every pass goes through. It owns the global
// GPU state: bound framebuffer, viewport, texture units and the current
// program. GLDevice issues real OpenGL calls; tests substitute a recorder.
type Device interface {
	// Framebuffers. Attach* calls act on the framebuffer bound last.
	CreateFramebuffer() uint32
	BindFramebuffer(fbo uint32)
	AttachColorTexture(index int, width, height int32) uint32
	AttachDepthTexture(width, height int32) uint32
	AttachDepthRenderbuffer(width, height int32) uint32
	SetDrawBuffers(count int)
	FramebufferStatus() (complete bool, status uint32)
	DeleteFramebuffer(fbo uint32)
	DeleteRenderbuffer(rbo uint32)

	// Fixed-function state.
	Viewport(x, y, width, height int32)
	SetClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	EnableDepthTest(f DepthFunc)
	SetDepthFunc(f DepthFunc)
	SetDepthMask(write bool)
	EnableAlphaBlending()

	// Textures.
	CreateTexture2D(img *image.RGBA) uint32
	CreateCubemap(faces [6]*image.RGBA) uint32
	BindTexture(unit uint32, kind TextureKind, tex uint32)
	DeleteTexture(tex uint32)

	// Geometry. layout lists the component count of each float attribute.
	CreateVertexArray(vertices []float32, indices []uint32, layout []int32) VertexArray
	Draw(va VertexArray, mode Primitive)
	DeleteVertexArray(va VertexArray)

	// Programs and uniforms.
	CompileProgram(vertexSource, fragmentSource string) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v mgl32.Vec3)
	UniformMat4(location int32, m mgl32.Mat4)
}

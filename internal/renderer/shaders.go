package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a linked program plus the sources it was built from. Setting a
// uniform the program does not declare is a no-op.
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	dev            Device
}

// NewShader compiles and links a program.
func NewShader(dev Device, name, vertexSource, fragmentSource string) (*Shader, error) {
	program, err := dev.CompileProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	return &Shader{
		Name:           name,
		vertexSource:   vertexSource,
		fragmentSource: fragmentSource,
		program:        program,
		uniforms:       NewUniformCache(dev, program),
		dev:            dev,
	}, nil
}

func (shader *Shader) Program() uint32 {
	return shader.program
}

func (shader *Shader) Use() {
	shader.dev.UseProgram(shader.program)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	shader.uniforms.SetInt(name, v)
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

// Reload swaps in new sources. On failure the previous program stays active
// and the error is returned.
func (shader *Shader) Reload(vertexSource, fragmentSource string) error {
	program, err := shader.dev.CompileProgram(vertexSource, fragmentSource)
	if err != nil {
		return fmt.Errorf("shader %s: %w", shader.Name, err)
	}
	shader.dev.DeleteProgram(shader.program)
	shader.program = program
	shader.vertexSource = vertexSource
	shader.fragmentSource = fragmentSource
	shader.uniforms.Reset(program)
	return nil
}

func (shader *Shader) Delete() {
	if shader.program != 0 {
		shader.dev.DeleteProgram(shader.program)
		shader.program = 0
	}
}

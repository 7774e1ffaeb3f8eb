package renderer

import (
	"Seascape/internal/loader"

	"github.com/go-gl/mathgl/mgl32"
)

// meshLayout matches loader.FloatsPerVertex: position, uv, normal.
var meshLayout = []int32{3, 2, 3}

// Mesh is an uploaded model with its material parameters.
type Mesh struct {
	Name          string
	DiffuseColor  mgl32.Vec3
	SpecularColor mgl32.Vec3
	Shininess     float32
	// Diffuse is nil when the material has no texture.
	Diffuse *Texture

	va       VertexArray
	dev      Device
	textures *TextureManager
}

// UploadMesh creates the GPU buffers for data. The diffuse texture, if any,
// is shared through textures.
func UploadMesh(dev Device, textures *TextureManager, data *loader.MeshData) *Mesh {
	mat := loader.DefaultMaterial
	if data.Material != nil {
		mat = *data.Material
	}

	m := &Mesh{
		Name:          data.Name,
		DiffuseColor:  mgl32.Vec3(mat.DiffuseColor),
		SpecularColor: mgl32.Vec3(mat.SpecularColor),
		Shininess:     mat.Shininess,
		va:            dev.CreateVertexArray(data.Interleaved, data.Indices, meshLayout),
		dev:           dev,
		textures:      textures,
	}
	if mat.Texture != nil && textures != nil {
		key := mat.TexturePath
		if key == "" {
			key = data.SourcePath + "#" + mat.Name
		}
		m.Diffuse = textures.Acquire(key, mat.Texture)
	}
	return m
}

// Draw binds the mesh's own vertex data and material and issues the draw
// with whatever other uniforms the shader currently holds.
func (m *Mesh) Draw(shader *Shader) {
	if m.Diffuse != nil {
		m.dev.BindTexture(UnitDiffuse, Texture2D, m.Diffuse.ID)
		shader.SetInt("texture_diffuse1", int32(UnitDiffuse))
	}
	shader.SetBool("hasTexture", m.Diffuse != nil)
	shader.SetVec3("diffuseColor", m.DiffuseColor)
	shader.SetVec3("specularColor", m.SpecularColor)
	shader.SetFloat("shininess", m.Shininess)
	m.dev.Draw(m.va, Triangles)
}

func (m *Mesh) VertexArray() VertexArray {
	return m.va
}

func (m *Mesh) Delete() {
	m.dev.DeleteVertexArray(m.va)
	if m.textures != nil {
		m.textures.Release(m.Diffuse)
	}
	m.Diffuse = nil
}

package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"Seascape/internal/logger"

	"go.uber.org/zap"
)

// FloatsPerVertex is the interleaved layout: position(3), uv(2), normal(3).
const FloatsPerVertex = 8

// ProceduralWater names the generated water surface in place of a file path.
const ProceduralWater = "procedural:water"

var ErrUnsupportedFormat = errors.New("unsupported model format")

// MeshData is a CPU-side mesh ready for upload.
type MeshData struct {
	Name        string
	SourcePath  string
	Interleaved []float32
	Indices     []uint32
	Material    *Material
}

func (m *MeshData) VertexCount() int {
	return len(m.Interleaved) / FloatsPerVertex
}

// Bounds returns the axis-aligned box enclosing every vertex position.
func (m *MeshData) Bounds() (min, max [3]float32) {
	for i := 0; i+2 < len(m.Interleaved); i += FloatsPerVertex {
		for a := 0; a < 3; a++ {
			v := m.Interleaved[i+a]
			if i == 0 || v < min[a] {
				min[a] = v
			}
			if i == 0 || v > max[a] {
				max[a] = v
			}
		}
	}
	return min, max
}

// LoadModel picks a decoder from the path. Wavefront OBJ, glTF/GLB and the
// procedural water surface are supported.
func LoadModel(path string) (*MeshData, error) {
	var (
		mesh *MeshData
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == ProceduralWater:
		mesh, err = LoadWaterSurface(DefaultWaterParams())
	case ext == ".obj":
		mesh, err = LoadOBJ(path, false)
	case ext == ".gltf" || ext == ".glb":
		mesh, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}

	if mesh.Material == nil {
		mat := DefaultMaterial
		mesh.Material = &mat
	}
	loadMaterialTexture(path, mesh.Material)

	logger.Log.Info("Model loaded",
		zap.String("path", path),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", len(mesh.Indices)/3))
	return mesh, nil
}

// loadMaterialTexture decodes mat's diffuse texture if it names one. A
// texture that cannot be read leaves the material color in use.
func loadMaterialTexture(model string, mat *Material) {
	if mat.TexturePath == "" || mat.Texture != nil {
		return
	}
	img, err := LoadImage(mat.TexturePath)
	if err != nil {
		logger.Log.Warn("Diffuse texture unavailable, using material color",
			zap.String("model", model), zap.Error(err))
		return
	}
	mat.Texture = img
}

package loader

import (
	"fmt"

	"Seascape/internal/logger"

	"github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

// WaterParams shapes the generated water surface. Heights come from 2D Perlin
// noise sampled at (x, z) * NoiseScale and multiplied by Amplitude.
type WaterParams struct {
	Size       float32
	Resolution int
	Amplitude  float32
	NoiseScale float32
	Seed       int64
	// UVRepeat tiles the texture coordinates across the surface.
	UVRepeat float32
}

func DefaultWaterParams() WaterParams {
	return WaterParams{
		Size:       20,
		Resolution: 128,
		Amplitude:  0.04,
		NoiseScale: 0.6,
		Seed:       7,
		UVRepeat:   8,
	}
}

// LoadWaterSurface builds a square grid centred on the origin at y = 0 with
// noise-displaced heights.
func LoadWaterSurface(p WaterParams) (*MeshData, error) {
	if p.Resolution < 2 {
		return nil, fmt.Errorf("water resolution %d must be at least 2", p.Resolution)
	}
	if p.Size <= 0 {
		return nil, fmt.Errorf("water size %g must be positive", p.Size)
	}

	noise := perlin.NewPerlin(2, 2, 3, p.Seed)
	res := p.Resolution
	step := p.Size / float32(res-1)
	start := -p.Size * 0.5

	mesh := &MeshData{
		Name:        "water",
		SourcePath:  ProceduralWater,
		Interleaved: make([]float32, 0, res*res*FloatsPerVertex),
		Indices:     make([]uint32, 0, (res-1)*(res-1)*6),
	}
	for x := 0; x < res; x++ {
		for z := 0; z < res; z++ {
			px := start + float32(x)*step
			pz := start + float32(z)*step
			h := float32(noise.Noise2D(float64(px*p.NoiseScale), float64(pz*p.NoiseScale))) * p.Amplitude
			u := float32(x) / float32(res-1) * p.UVRepeat
			v := float32(z) / float32(res-1) * p.UVRepeat
			mesh.Interleaved = append(mesh.Interleaved, px, h, pz, u, v, 0, 1, 0)
		}
	}

	for x := 0; x < res-1; x++ {
		for z := 0; z < res-1; z++ {
			topLeft := uint32(x*res + z)
			topRight := topLeft + 1
			bottomLeft := uint32((x+1)*res + z)
			bottomRight := bottomLeft + 1
			mesh.Indices = append(mesh.Indices,
				topLeft, topRight, bottomRight,
				topLeft, bottomRight, bottomLeft)
		}
	}
	RecalculateNormals(mesh.Interleaved, mesh.Indices)

	mat := DefaultMaterial
	mat.Name = "water"
	mat.DiffuseColor = [3]float32{0.05, 0.22, 0.35}
	mat.SpecularColor = [3]float32{0.9, 0.9, 0.9}
	mat.Shininess = 96
	mesh.Material = &mat

	logger.Log.Debug("Water surface created",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", len(mesh.Indices)/3),
		zap.Float32("size", p.Size),
		zap.Int("resolution", res))
	return mesh, nil
}

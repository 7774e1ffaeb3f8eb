package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWaterSurfaceGrid(t *testing.T) {
	p := DefaultWaterParams()
	p.Resolution = 4
	p.Size = 3

	mesh, err := LoadWaterSurface(p)
	require.NoError(t, err)

	assert.Equal(t, 16, mesh.VertexCount())
	assert.Len(t, mesh.Indices, 3*3*6)
	for _, idx := range mesh.Indices {
		assert.Less(t, int(idx), 16)
	}

	min, max := mesh.Bounds()
	assert.InDelta(t, -1.5, min[0], 1e-6)
	assert.InDelta(t, 1.5, max[0], 1e-6)
	assert.InDelta(t, -1.5, min[2], 1e-6)
	assert.InDelta(t, 1.5, max[2], 1e-6)
	assert.Equal(t, "water", mesh.Material.Name)
}

func TestLoadWaterSurfaceFlatFacesUp(t *testing.T) {
	p := DefaultWaterParams()
	p.Resolution = 5
	p.Amplitude = 0

	mesh, err := LoadWaterSurface(p)
	require.NoError(t, err)

	for i := 0; i < mesh.VertexCount(); i++ {
		o := i * FloatsPerVertex
		assert.Equal(t, float32(0), mesh.Interleaved[o+1])
		assert.InDeltaSlice(t, []float32{0, 1, 0}, mesh.Interleaved[o+5:o+8], 1e-6)
	}
}

func TestLoadWaterSurfaceDeterministic(t *testing.T) {
	p := DefaultWaterParams()
	p.Resolution = 8

	a, err := LoadWaterSurface(p)
	require.NoError(t, err)
	b, err := LoadWaterSurface(p)
	require.NoError(t, err)
	assert.Equal(t, a.Interleaved, b.Interleaved)
}

func TestLoadWaterSurfaceRejectsBadParams(t *testing.T) {
	p := DefaultWaterParams()
	p.Resolution = 1
	_, err := LoadWaterSurface(p)
	assert.Error(t, err)

	p = DefaultWaterParams()
	p.Size = 0
	_, err = LoadWaterSurface(p)
	assert.Error(t, err)
}

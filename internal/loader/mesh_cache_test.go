package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshEncoding(t *testing.T) {
	mesh := &MeshData{
		Name:        "hull",
		Interleaved: []float32{0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 1, 0},
		Indices:     []uint32{0, 1, 2},
		Material: &Material{
			Name:          "wood",
			DiffuseColor:  [3]float32{0.6, 0.4, 0.2},
			SpecularColor: [3]float32{0.1, 0.1, 0.1},
			Shininess:     16,
			Alpha:         1,
			TexturePath:   "boat/wood.png",
		},
	}
	stamp := cacheStamp{ModTime: 42, Size: 7}

	data, err := EncodeMesh(mesh, stamp)
	require.NoError(t, err)
	decoded, gotStamp, err := DecodeMesh(data)
	require.NoError(t, err)

	assert.Equal(t, stamp, gotStamp)
	assert.Equal(t, mesh.Name, decoded.Name)
	assert.Equal(t, mesh.Interleaved, decoded.Interleaved)
	assert.Equal(t, mesh.Indices, decoded.Indices)
	assert.Equal(t, *mesh.Material, *decoded.Material)
}

func TestDecodeMeshRejectsGarbage(t *testing.T) {
	_, _, err := DecodeMesh([]byte("not a mesh"))
	assert.Error(t, err)
}

func TestLoadModelCached(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	writeFile(t, dir, "quad.mtl", quadMTL)
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	first, err := LoadModelCached(path, cacheDir)
	require.NoError(t, err)
	entry := cachePath(cacheDir, path)
	require.FileExists(t, entry)

	second, err := LoadModelCached(path, cacheDir)
	require.NoError(t, err)
	assert.Equal(t, first.Interleaved, second.Interleaved)
	assert.Equal(t, first.Indices, second.Indices)
	assert.Equal(t, first.Material.DiffuseColor, second.Material.DiffuseColor)
	assert.Equal(t, path, second.SourcePath)

	// Touching the source invalidates the entry.
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	stamp, err := stampOf(path)
	require.NoError(t, err)
	_, err = readCacheEntry(entry, stamp)
	assert.ErrorIs(t, err, ErrStaleCache)

	_, err = LoadModelCached(path, cacheDir)
	require.NoError(t, err)
	_, err = readCacheEntry(entry, stamp)
	assert.NoError(t, err, "entry is rewritten after a stale hit")
}

func TestLoadModelCachedBypass(t *testing.T) {
	mesh, err := LoadModelCached(ProceduralWater, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ProceduralWater, mesh.SourcePath)

	_, err = LoadModelCached(filepath.Join(t.TempDir(), "absent.obj"), t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

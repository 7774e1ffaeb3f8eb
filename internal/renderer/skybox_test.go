package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFace(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func facePaths(dir string) [6]string {
	var paths [6]string
	for i, name := range CubemapFaceNames {
		paths[i] = filepath.Join(dir, name+".png")
	}
	return paths
}

func TestDecodeCubemapFaces(t *testing.T) {
	dir := t.TempDir()
	paths := facePaths(dir)
	for _, p := range paths {
		writeFace(t, p)
	}

	faces, err := DecodeCubemapFaces(paths)
	require.NoError(t, err)
	for i, face := range faces {
		require.NotNil(t, face, CubemapFaceNames[i])
		assert.Equal(t, 2, face.Rect.Dx())
	}
}

func TestDecodeCubemapFacesMissingFace(t *testing.T) {
	dir := t.TempDir()
	paths := facePaths(dir)
	for i, p := range paths {
		if i == 2 {
			continue
		}
		writeFace(t, p)
	}

	faces, err := DecodeCubemapFaces(paths)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top face")
	assert.Nil(t, faces[2])
	for i, face := range faces {
		if i != 2 {
			assert.NotNil(t, face, CubemapFaceNames[i])
		}
	}
}

func TestLoadCubemapUploadsPartialFaces(t *testing.T) {
	dev := newFakeDevice()
	paths := facePaths(t.TempDir())

	tex, err := LoadCubemap(dev, paths)

	assert.Error(t, err)
	assert.NotZero(t, tex, "the cubemap exists even when faces are missing")
}

func TestSkyboxDraw(t *testing.T) {
	dev := newFakeDevice()
	sky := NewSkybox(dev, 42)

	sky.Draw()

	require.Len(t, dev.draws, 1)
	assert.Equal(t, uint32(42), dev.draws[0].units[UnitSkybox])
	assert.Equal(t, int32(36), dev.draws[0].va.Count)
	assert.False(t, dev.draws[0].va.Indexed)

	sky.Cleanup()
	assert.True(t, dev.deleted[42])
}

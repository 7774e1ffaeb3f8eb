package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadModelUnsupportedFormat(t *testing.T) {
	_, err := LoadModel("boat.fbx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadModelProceduralWater(t *testing.T) {
	mesh, err := LoadModel(ProceduralWater)
	require.NoError(t, err)
	assert.Equal(t, DefaultWaterParams().Resolution*DefaultWaterParams().Resolution, mesh.VertexCount())
}

func TestLoadModelKeepsMeshWhenTextureMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.mtl", quadMTL)
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	mesh, err := LoadModel(path)
	require.NoError(t, err)
	assert.Nil(t, mesh.Material.Texture)
	assert.Equal(t, 4, mesh.VertexCount())
}

func TestLoadModelDecodesDiffuseTexture(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.mtl", quadMTL)
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	writeFile(t, dir, filepath.Join("textures", "hull.png"), buf.String())

	mesh, err := LoadModel(path)
	require.NoError(t, err)
	require.NotNil(t, mesh.Material.Texture)
	assert.Equal(t, 2, mesh.Material.Texture.Bounds().Dx())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, mesh.Material.Texture.RGBAAt(1, 1))
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "nothing.obj"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

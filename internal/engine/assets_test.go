package engine

import (
	"os"
	"path/filepath"
	"testing"

	"Seascape/internal/config"
	"Seascape/internal/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`

func testAssets(t *testing.T) config.AssetsConfig {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sun.obj"), []byte(triangleOBJ), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "boat.obj"), []byte(triangleOBJ), 0o644))

	assets := config.Default().Assets
	assets.Root = root
	assets.SunModel = "sun.obj"
	assets.ShipModel = "boat.obj"
	assets.WaterModel = loader.ProceduralWater
	return assets
}

func TestLoadSceneAssets(t *testing.T) {
	scene, err := LoadSceneAssets(testAssets(t))
	require.NoError(t, err)

	assert.Equal(t, 3, scene.Sun.VertexCount())
	assert.Equal(t, 3, scene.Ship.VertexCount())
	assert.Greater(t, scene.Water.VertexCount(), 3)
	for _, face := range scene.SkyboxFaces {
		assert.Nil(t, face, "no skybox images in the fixture")
	}
}

func TestLoadSceneAssetsMissingModel(t *testing.T) {
	assets := testAssets(t)
	assets.ShipModel = "missing.obj"
	assets.SunModel = "missing.gltf"

	_, err := LoadSceneAssets(assets)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ship model")
	assert.Contains(t, err.Error(), "sun model")
}

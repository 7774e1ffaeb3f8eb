package engine

import (
	"fmt"
	"image"

	"Seascape/internal/config"
	"Seascape/internal/loader"
	"Seascape/internal/logger"
	"Seascape/internal/renderer"

	"github.com/alitto/pond/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// SceneAssets is everything decoded from disk before the GPU sees it.
type SceneAssets struct {
	SkyboxFaces [6]*image.RGBA
	Sun         *loader.MeshData
	Ship        *loader.MeshData
	Water       *loader.MeshData
}

// LoadSceneAssets parses the three models on a worker pool while the cubemap
// faces decode on their own pool. Models go through the mesh cache when one
// is configured. Missing skybox faces are logged and the scene loads without
// them; a model that fails to load is returned as an error.
func LoadSceneAssets(assets config.AssetsConfig) (*SceneAssets, error) {
	out := &SceneAssets{}

	facesDone := make(chan struct{})
	go func() {
		defer close(facesDone)
		var err error
		out.SkyboxFaces, err = renderer.DecodeCubemapFaces(assets.SkyboxPaths())
		if err != nil {
			logger.Log.Warn("Skybox incomplete", zap.Error(err))
		}
	}()

	models := []struct {
		name string
		path string
		dst  **loader.MeshData
	}{
		{"sun", assets.Path(assets.SunModel), &out.Sun},
		{"ship", assets.Path(assets.ShipModel), &out.Ship},
		{"water", assets.Path(assets.WaterModel), &out.Water},
	}
	errs := make([]error, len(models))

	pool := pond.NewPool(len(models))
	for i, m := range models {
		i, m := i, m
		pool.Submit(func() {
			mesh, err := loader.LoadModelCached(m.path, assets.MeshCache)
			if err != nil {
				errs[i] = fmt.Errorf("%s model: %w", m.name, err)
				return
			}
			*m.dst = mesh
		})
	}
	pool.StopAndWait()
	<-facesDone

	var err error
	for _, e := range errs {
		err = multierr.Append(err, e)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UploadScene creates the GPU side of the scene on the render thread.
func UploadScene(dev renderer.Device, textures *renderer.TextureManager, assets *SceneAssets) *renderer.Scene {
	return &renderer.Scene{
		Skybox: renderer.NewSkybox(dev, dev.CreateCubemap(assets.SkyboxFaces)),
		Sun:    renderer.UploadMesh(dev, textures, assets.Sun),
		Ship:   renderer.UploadMesh(dev, textures, assets.Ship),
		Water:  renderer.UploadMesh(dev, textures, assets.Water),
	}
}

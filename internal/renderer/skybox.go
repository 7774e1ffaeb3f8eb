package renderer

import (
	"fmt"
	"image"

	"Seascape/internal/loader"
	"Seascape/internal/logger"

	"github.com/alitto/pond/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// CubemapFaceNames lists faces in upload order: +X, -X, +Y, -Y, +Z, -Z.
var CubemapFaceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

var skyboxVertices = []float32{
	-1, 1, -1,
	-1, -1, -1,
	1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,

	-1, -1, 1,
	-1, -1, -1,
	-1, 1, -1,
	-1, 1, -1,
	-1, 1, 1,
	-1, -1, 1,

	1, -1, -1,
	1, -1, 1,
	1, 1, 1,
	1, 1, 1,
	1, 1, -1,
	1, -1, -1,

	-1, -1, 1,
	-1, 1, 1,
	1, 1, 1,
	1, 1, 1,
	1, -1, 1,
	-1, -1, 1,

	-1, 1, -1,
	1, 1, -1,
	1, 1, 1,
	1, 1, 1,
	-1, 1, 1,
	-1, 1, -1,

	-1, -1, -1,
	-1, -1, 1,
	1, -1, -1,
	1, -1, -1,
	-1, -1, 1,
	1, -1, 1,
}

// Skybox is a unit cube sampled through a cubemap.
type Skybox struct {
	VA      VertexArray
	Cubemap uint32
	dev     Device
}

func NewSkybox(dev Device, cubemap uint32) *Skybox {
	return &Skybox{
		VA:      dev.CreateVertexArray(skyboxVertices, nil, []int32{3}),
		Cubemap: cubemap,
		dev:     dev,
	}
}

// Draw binds the cubemap and issues the cube. Depth state is the caller's.
func (s *Skybox) Draw() {
	s.dev.BindTexture(UnitSkybox, TextureCube, s.Cubemap)
	s.dev.Draw(s.VA, Triangles)
}

// Cleanup cleans up skybox resources
func (s *Skybox) Cleanup() {
	s.dev.DeleteVertexArray(s.VA)
	s.dev.DeleteTexture(s.Cubemap)
}

// DecodeCubemapFaces decodes the six faces on a worker pool. A face that
// fails is logged and left nil; the failures come back as one multierr.
func DecodeCubemapFaces(paths [6]string) ([6]*image.RGBA, error) {
	var (
		faces [6]*image.RGBA
		errs  [6]error
	)
	pool := pond.NewPool(len(paths))
	for i, path := range paths {
		i, path := i, path
		pool.Submit(func() {
			faces[i], errs[i] = loader.LoadImage(path)
		})
	}
	pool.StopAndWait()

	var err error
	for i, faceErr := range errs {
		if faceErr == nil {
			continue
		}
		logger.Log.Error("Cubemap face failed to load",
			zap.String("face", CubemapFaceNames[i]),
			zap.String("path", paths[i]),
			zap.Error(faceErr))
		err = multierr.Append(err, fmt.Errorf("%s face: %w", CubemapFaceNames[i], faceErr))
	}
	return faces, err
}

// LoadCubemap decodes off the render thread and uploads on it. The texture
// is always created; err lists the faces that are missing from it.
func LoadCubemap(dev Device, paths [6]string) (uint32, error) {
	faces, err := DecodeCubemapFaces(paths)
	return dev.CreateCubemap(faces), err
}

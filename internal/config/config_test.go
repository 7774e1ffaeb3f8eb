package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Pipeline.ColorAttachments)
	assert.Equal(t, 10, cfg.Pipeline.BlurIterations)
	assert.Equal(t, 4, cfg.Pipeline.ShadowMultiplier)
	assert.True(t, cfg.Pipeline.DebugPassEnabled)
	assert.Equal(t, mgl32.Vec3{0.829116, 2.7817, -4.29651}, cfg.Scene.SunPos())
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, cfg.Scene.CameraPos())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seascape.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[pipeline]
color_attachments = 1
blur_iterations = 4

[scene]
sun_position = [1.0, 2.0, 3.0]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Pipeline.ColorAttachments)
	assert.Equal(t, 4, cfg.Pipeline.BlurIterations)
	assert.Equal(t, 4, cfg.Pipeline.ShadowMultiplier, "missing keys keep defaults")
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.Scene.SunPos())
	assert.Equal(t, 1500, cfg.Window.Width)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[pipeline]
color_attachments = 3
shadow_multiplier = 0

[scene]
light_near = 8.0
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(unwrapAll(err)), 3)
	assert.Contains(t, err.Error(), "color_attachments")
	assert.Contains(t, err.Error(), "shadow_multiplier")
	assert.Contains(t, err.Error(), "light_near")
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		next := u.Unwrap()
		if next == nil {
			return err
		}
		err = next
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pipeline\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	cfg := Default()
	cfg.Controls.MoveSpeed = 5

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg, loaded)
}

func TestAssetPath(t *testing.T) {
	assets := AssetsConfig{Root: "assets"}

	assert.Equal(t, filepath.Join("assets", "boat", "boat_new.obj"), assets.Path("boat/boat_new.obj"))
	assert.Equal(t, "procedural:water", assets.Path("procedural:water"))
	assert.Equal(t, "/abs/sun.obj", assets.Path("/abs/sun.obj"))

	paths := Default().Assets.SkyboxPaths()
	assert.Equal(t, filepath.Join("assets", "skybox", "right.jpg"), paths[0])
	assert.Equal(t, filepath.Join("assets", "skybox", "back.jpg"), paths[5])
}

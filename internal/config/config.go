package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
)

// WindowConfig holds the initial window size and swap behaviour.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

// PipelineConfig selects the frame pipeline variant.
type PipelineConfig struct {
	// ColorAttachments is 2 for scene color + bright-pass, 1 for scene color only.
	ColorAttachments int `toml:"color_attachments"`
	BlurIterations   int `toml:"blur_iterations"`
	// ShadowMultiplier scales the 1024 base resolution of the shadow map.
	ShadowMultiplier int `toml:"shadow_multiplier"`
	// DebugPassEnabled allows the shadow map overlay; B toggles it at runtime.
	DebugPassEnabled bool `toml:"debug_pass_enabled"`
}

// SceneConfig holds the fixed scene layout.
type SceneConfig struct {
	SunPosition    [3]float32 `toml:"sun_position"`
	ShipPosition   [3]float32 `toml:"ship_position"`
	CameraPosition [3]float32 `toml:"camera_position"`
	LightNear      float32    `toml:"light_near"`
	LightFar       float32    `toml:"light_far"`
	LightExtent    float32    `toml:"light_extent"`
}

// AssetsConfig lists the files loaded at startup.
type AssetsConfig struct {
	// Root is prepended to every relative asset path.
	Root        string    `toml:"root"`
	SkyboxFaces [6]string `toml:"skybox_faces"`
	ShipModel   string    `toml:"ship_model"`
	WaterModel  string    `toml:"water_model"`
	SunModel    string    `toml:"sun_model"`
	// ShaderDir overrides the built-in GLSL when set; files are watched.
	ShaderDir string `toml:"shader_dir"`
	// MeshCache keeps parsed model files in binary form when set.
	MeshCache string `toml:"mesh_cache"`
}

// ControlsConfig tunes the input response.
type ControlsConfig struct {
	MoveSpeed        float32 `toml:"move_speed"`
	MouseSensitivity float32 `toml:"mouse_sensitivity"`
	ExposureStep     float32 `toml:"exposure_step"`
	InitialExposure  float32 `toml:"initial_exposure"`
	InitialBloom     bool    `toml:"initial_bloom"`
}

type Config struct {
	Window   WindowConfig   `toml:"window"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Scene    SceneConfig    `toml:"scene"`
	Assets   AssetsConfig   `toml:"assets"`
	Controls ControlsConfig `toml:"controls"`
}

// Default returns the configuration the scene was tuned with.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1500,
			Height: 1000,
			Title:  "Seascape",
			VSync:  true,
		},
		Pipeline: PipelineConfig{
			ColorAttachments: 2,
			BlurIterations:   10,
			ShadowMultiplier: 4,
			DebugPassEnabled: true,
		},
		Scene: SceneConfig{
			SunPosition:    [3]float32{0.829116, 2.7817, -4.29651},
			ShipPosition:   [3]float32{0, 0, 0},
			CameraPosition: [3]float32{0, 0, 3},
			LightNear:      1.0,
			LightFar:       7.5,
			LightExtent:    10.0,
		},
		Assets: AssetsConfig{
			Root: "assets",
			SkyboxFaces: [6]string{
				"skybox/right.jpg",
				"skybox/left.jpg",
				"skybox/top.jpg",
				"skybox/bottom.jpg",
				"skybox/front.jpg",
				"skybox/back.jpg",
			},
			ShipModel:  "boat/boat_new.obj",
			WaterModel: "water/water.obj",
			SunModel:   "sun/sun.obj",
		},
		Controls: ControlsConfig{
			MoveSpeed:        2.5,
			MouseSensitivity: 0.1,
			ExposureStep:     0.001,
			InitialExposure:  1.0,
			InitialBloom:     true,
		},
	}
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports every setting that would make startup fail.
func (c Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Pipeline.ColorAttachments < 1 || c.Pipeline.ColorAttachments > 2 {
		err = multierr.Append(err, fmt.Errorf("color_attachments %d must be 1 or 2", c.Pipeline.ColorAttachments))
	}
	if c.Pipeline.BlurIterations < 0 {
		err = multierr.Append(err, fmt.Errorf("blur_iterations %d must not be negative", c.Pipeline.BlurIterations))
	}
	if c.Pipeline.ShadowMultiplier < 1 {
		err = multierr.Append(err, fmt.Errorf("shadow_multiplier %d must be at least 1", c.Pipeline.ShadowMultiplier))
	}
	if c.Scene.LightNear >= c.Scene.LightFar {
		err = multierr.Append(err, fmt.Errorf("light_near %g must be below light_far %g", c.Scene.LightNear, c.Scene.LightFar))
	}
	if c.Scene.LightExtent <= 0 {
		err = multierr.Append(err, fmt.Errorf("light_extent %g must be positive", c.Scene.LightExtent))
	}
	if c.Controls.ExposureStep <= 0 {
		err = multierr.Append(err, fmt.Errorf("exposure_step %g must be positive", c.Controls.ExposureStep))
	}
	for i, face := range c.Assets.SkyboxFaces {
		if face == "" {
			err = multierr.Append(err, fmt.Errorf("skybox_faces[%d] is empty", i))
		}
	}
	if c.Assets.ShipModel == "" || c.Assets.WaterModel == "" || c.Assets.SunModel == "" {
		err = multierr.Append(err, fmt.Errorf("ship_model, water_model and sun_model must be set"))
	}
	if c.Controls.InitialExposure < 0 {
		err = multierr.Append(err, fmt.Errorf("initial_exposure %g must not be negative", c.Controls.InitialExposure))
	}
	return err
}

// Path resolves an asset path against Root. Absolute paths and procedural
// sources are returned unchanged.
func (a AssetsConfig) Path(p string) string {
	if p == "" || filepath.IsAbs(p) || strings.Contains(p, ":") || a.Root == "" {
		return p
	}
	return filepath.Join(a.Root, p)
}

// SkyboxPaths resolves all six faces.
func (a AssetsConfig) SkyboxPaths() [6]string {
	var paths [6]string
	for i, face := range a.SkyboxFaces {
		paths[i] = a.Path(face)
	}
	return paths
}

// SunPos returns the configured sun position as a vector.
func (s SceneConfig) SunPos() mgl32.Vec3 { return mgl32.Vec3(s.SunPosition) }

func (s SceneConfig) ShipPos() mgl32.Vec3 { return mgl32.Vec3(s.ShipPosition) }

func (s SceneConfig) CameraPos() mgl32.Vec3 { return mgl32.Vec3(s.CameraPosition) }

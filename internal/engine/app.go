package engine

import (
	"fmt"

	"Seascape/internal/config"
	"Seascape/internal/input"
	"Seascape/internal/logger"
	"Seascape/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// App owns the window, the GL device and the frame pipeline. Every method
// must run on the locked main thread.
type App struct {
	cfg      config.Config
	window   *glfw.Window
	dev      renderer.Device
	textures *renderer.TextureManager
	pipeline *renderer.Pipeline
	watcher  *renderer.ShaderWatcher
	state    *input.State
	layout   renderer.SceneLayout

	width  int32
	height int32
	// fatal is set by callbacks that cannot return an error.
	fatal error
}

// Run opens the window, renders until the user quits and tears everything
// down. Startup failures are returned before the first frame.
func Run(cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Loop()
}

// NewApp decodes the assets, creates the window and builds the pipeline.
// glfw must already be initialised.
func NewApp(cfg config.Config) (app *App, err error) {
	logger.Log.Info("Seascape initializing...",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height))

	assets, err := LoadSceneAssets(cfg.Assets)
	if err != nil {
		return nil, err
	}

	app = &App{
		cfg: cfg,
		layout: renderer.SceneLayout{
			SunPos:      cfg.Scene.SunPos(),
			ShipPos:     cfg.Scene.ShipPos(),
			LightExtent: cfg.Scene.LightExtent,
			LightNear:   cfg.Scene.LightNear,
			LightFar:    cfg.Scene.LightFar,
		},
	}
	defer func() {
		if err != nil {
			app.Close()
			app = nil
		}
	}()

	if err = app.createWindow(); err != nil {
		return app, err
	}

	app.dev = renderer.NewGLDevice()
	app.textures = renderer.NewTextureManager(app.dev)

	shaders, err := renderer.LoadShaderLibrary(app.dev, cfg.Assets.ShaderDir)
	if err != nil {
		return app, fmt.Errorf("compile shaders: %w", err)
	}
	scene := UploadScene(app.dev, app.textures, assets)

	app.pipeline, err = renderer.NewPipeline(app.dev, renderer.PipelineConfig{
		ColorAttachments: cfg.Pipeline.ColorAttachments,
		BlurIterations:   cfg.Pipeline.BlurIterations,
		DebugPassEnabled: cfg.Pipeline.DebugPassEnabled,
		ShadowMultiplier: cfg.Pipeline.ShadowMultiplier,
		Layout:           app.layout,
	}, app.width, app.height, shaders, scene)
	if err != nil {
		scene.Delete()
		shaders.Delete()
		return app, fmt.Errorf("create pipeline: %w", err)
	}

	if cfg.Assets.ShaderDir != "" {
		app.watcher, err = renderer.WatchShaders(cfg.Assets.ShaderDir)
		if err != nil {
			logger.Log.Warn("Shader hot reload disabled", zap.Error(err))
			err = nil
		}
	}

	camera := renderer.NewCamera(cfg.Scene.CameraPos())
	camera.Speed = cfg.Controls.MoveSpeed
	camera.Sensitivity = cfg.Controls.MouseSensitivity
	app.state = input.NewState(camera, input.Settings{
		Exposure:     cfg.Controls.InitialExposure,
		ExposureStep: cfg.Controls.ExposureStep,
		Bloom:        cfg.Controls.InitialBloom,
	})

	app.window.SetFramebufferSizeCallback(app.onFramebufferSize)
	app.window.SetCursorPosCallback(app.onCursor)
	app.window.SetScrollCallback(app.onScroll)
	return app, nil
}

func (a *App) createWindow() error {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	a.window = window
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize OpenGL: %w", err)
	}
	logger.Log.Info("OpenGL context ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	if a.cfg.Window.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	applyTitleBarTheme(window)

	// The framebuffer can be larger than the window on HiDPI displays.
	w, h := window.GetFramebufferSize()
	a.width, a.height = int32(w), int32(h)
	return nil
}

// Loop renders frames until ESC, the window closing or a fatal callback
// error.
func (a *App) Loop() error {
	keys := input.WindowPoller{Window: a.window}
	lastTime := glfw.GetTime()

	for !a.window.ShouldClose() && !a.state.QuitRequested {
		currentTime := glfw.GetTime()
		deltaTime := float32(currentTime - lastTime)
		lastTime = currentTime

		a.step(keys, deltaTime)

		if a.height > 0 {
			a.pipeline.RenderFrame(a.frameParams())
		}
		a.window.SwapBuffers()
		glfw.PollEvents()

		if a.fatal != nil {
			return a.fatal
		}
	}
	return nil
}

func (a *App) step(keys input.KeyPoller, deltaTime float32) {
	result := a.state.Step(keys, deltaTime)
	if result.PrintPosition {
		pos := a.state.Camera.Position
		logger.Log.Info("Camera position",
			zap.Float32("x", pos.X()),
			zap.Float32("y", pos.Y()),
			zap.Float32("z", pos.Z()))
	}
	if result.BloomChanged {
		logger.Log.Debug("Bloom toggled", zap.Bool("bloom", a.state.Settings.Bloom))
	}
	if result.DebugChanged {
		logger.Log.Debug("Debug overlay toggled", zap.Bool("debug", a.state.Settings.Debug))
	}
	if a.watcher != nil {
		a.pipeline.Shaders.ApplyChanges(a.watcher.Changes())
	}
}

func (a *App) frameParams() renderer.FrameParams {
	frame := renderer.NewFrameParams(a.state.Camera, float32(a.width)/float32(a.height), a.layout)
	frame.Exposure = a.state.Settings.Exposure
	frame.Bloom = a.state.Settings.Bloom
	frame.Debug = a.state.Settings.Debug
	return frame
}

func (a *App) onFramebufferSize(_ *glfw.Window, width, height int) {
	if width == 0 || height == 0 {
		a.height = 0
		return
	}
	a.width, a.height = int32(width), int32(height)
	if err := a.pipeline.Resize(a.width, a.height); err != nil {
		logger.Log.Error("Resizing render targets failed", zap.Error(err))
		a.fatal = fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
}

func (a *App) onCursor(_ *glfw.Window, xpos, ypos float64) {
	a.state.OnCursor(xpos, ypos)
}

func (a *App) onScroll(_ *glfw.Window, _, yoffset float64) {
	a.state.OnScroll(yoffset)
}

// Close releases GPU objects while the context is still current, then the
// window.
func (a *App) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			logger.Log.Warn("Closing shader watcher", zap.Error(err))
		}
		a.watcher = nil
	}
	if a.pipeline != nil {
		if err := a.pipeline.Close(); err != nil {
			logger.Log.Error("Releasing pipeline", zap.Error(err))
		}
		a.pipeline = nil
	}
	if a.textures != nil {
		a.textures.LogStats()
		a.textures.Clear()
		a.textures = nil
	}
	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}
}

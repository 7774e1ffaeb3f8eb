package renderer

import (
	"fmt"

	"Seascape/internal/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Pass names one state of the frame.
type Pass string

const (
	PassClear     Pass = "CLEAR"
	PassShadow    Pass = "SHADOW_PASS"
	PassColor     Pass = "COLOR_PASS"
	PassBlur      Pass = "BLUR_PASS"
	PassComposite Pass = "COMPOSITE_PASS"
	PassDebug     Pass = "DEBUG_PASS"
)

// PipelineConfig selects the pipeline variant.
type PipelineConfig struct {
	// ColorAttachments is 2 for scene color plus bright pass. With 1 there is
	// no bright pass, the blur is skipped and bloom is forced off.
	ColorAttachments int
	BlurIterations   int
	// DebugPassEnabled makes the shadow map overlay available; the runtime
	// debug flag decides whether a given frame draws it.
	DebugPassEnabled bool
	ShadowMultiplier int
	Layout           SceneLayout
}

// FrameReport describes what a frame did.
type FrameReport struct {
	Passes       []Pass
	BloomApplied bool
	// BloomSource is the texture the composite read for bloom, nil without a
	// bright pass.
	BloomSource *Texture
}

// Pipeline owns the render targets and runs the passes in a fixed order:
// clear, shadow, color, blur, composite, then the optional debug overlay.
type Pipeline struct {
	Targets *TargetManager
	Shadow  *RenderTarget
	Color   *RenderTarget
	Post    *PostProcess
	Shaders *ShaderLibrary
	Scene   *Scene

	dev Device
	cfg PipelineConfig
}

// NewPipeline applies the global GPU state and creates every render
// target. An incomplete framebuffer is
// returned as ErrIncompleteFramebuffer and should abort startup.
func NewPipeline(dev Device, cfg PipelineConfig, width, height int32, shaders *ShaderLibrary, scene *Scene) (*Pipeline, error) {
	if cfg.ColorAttachments < 1 || cfg.ColorAttachments > 2 {
		return nil, fmt.Errorf("pipeline: %d color attachments, want 1 or 2", cfg.ColorAttachments)
	}
	if cfg.BlurIterations < 0 {
		return nil, fmt.Errorf("pipeline: negative blur iterations %d", cfg.BlurIterations)
	}

	targets := NewTargetManager(dev, width, height)
	p := &Pipeline{
		Targets: targets,
		Shaders: shaders,
		Scene:   scene,
		dev:     dev,
		cfg:     cfg,
	}
	p.ApplyGlobalState()

	var err error
	if p.Shadow, err = targets.CreateShadowTarget(cfg.ShadowMultiplier); err != nil {
		targets.Close()
		return nil, err
	}
	if p.Color, err = targets.CreateColorTarget("color", width, height, cfg.ColorAttachments); err != nil {
		targets.Close()
		return nil, err
	}
	var pingPong [2]*RenderTarget
	if cfg.ColorAttachments > 1 {
		if pingPong, err = targets.CreatePingPongPair(width, height); err != nil {
			targets.Close()
			return nil, err
		}
	}
	p.Post = NewPostProcess(dev, targets, shaders, pingPong)

	logger.Log.Info("Pipeline ready",
		zap.Int("colorAttachments", cfg.ColorAttachments),
		zap.Int("blurIterations", cfg.BlurIterations),
		zap.Int32("shadowResolution", p.Shadow.Width),
		zap.Bool("debugPass", cfg.DebugPassEnabled))
	return p, nil
}

func (p *Pipeline) Config() PipelineConfig {
	return p.cfg
}

// ApplyGlobalState sets the state every pass assumes: alpha blending, depth
// testing with LESS and the clear color.
func (p *Pipeline) ApplyGlobalState() {
	p.dev.EnableAlphaBlending()
	p.dev.EnableDepthTest(DepthLess)
	p.dev.SetClearColor(0.05, 0.05, 0.05, 1.0)
}

// RenderFrame runs one complete frame. Every pass binds its own target and
// viewport before clearing.
func (p *Pipeline) RenderFrame(frame FrameParams) FrameReport {
	report := FrameReport{Passes: make([]Pass, 0, 6)}

	p.Targets.Unbind()
	p.dev.Clear(ClearColorBit | ClearDepthBit)
	report.Passes = append(report.Passes, PassClear)

	depthShader := p.Shaders.Get(ShaderDepthMap)
	p.Targets.With(p.Shadow, func() {
		p.dev.Clear(ClearDepthBit)
		DrawShip(frame, depthShader, p.Scene.Ship, DepthOnly)
		DrawWater(frame, depthShader, p.Scene.Water, DepthOnly)
	})
	report.Passes = append(report.Passes, PassShadow)

	objectShader := p.Shaders.Get(ShaderObject)
	p.Targets.With(p.Color, func() {
		p.dev.Clear(ClearColorBit | ClearDepthBit)
		DrawSkybox(frame, p.Shaders.Get(ShaderSkybox), p.Scene.Skybox, Lit)
		DrawSun(frame, p.Shaders.Get(ShaderSun), p.Scene.Sun, Lit)
		p.dev.BindTexture(UnitShadowMap, Texture2D, p.Shadow.Depth.ID)
		DrawShip(frame, objectShader, p.Scene.Ship, Lit)
		DrawWater(frame, objectShader, p.Scene.Water, Lit)
	})
	report.Passes = append(report.Passes, PassColor)

	bloomOn := frame.Bloom
	if len(p.Color.Color) > 1 {
		report.BloomSource = p.Post.Blur(p.Color.Color[1], p.cfg.BlurIterations)
		report.Passes = append(report.Passes, PassBlur)
	} else {
		bloomOn = false
	}

	p.Post.Composite(p.Color.Color[0], report.BloomSource, frame.Exposure, bloomOn)
	report.BloomApplied = bloomOn
	report.Passes = append(report.Passes, PassComposite)

	if p.cfg.DebugPassEnabled && frame.Debug {
		p.Post.DebugDepth(p.Shadow.Depth, p.cfg.Layout.LightNear, p.cfg.Layout.LightFar)
		report.Passes = append(report.Passes, PassDebug)
	}
	return report
}

// Resize recreates the window-sized targets.
func (p *Pipeline) Resize(width, height int32) error {
	return p.Targets.Resize(width, height)
}

// Close releases targets, the screen quad, programs and scene geometry.
func (p *Pipeline) Close() error {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = multierr.Append(err, fmt.Errorf("pipeline close: %v", r))
			}
		}()
		p.Post.Close()
		p.Targets.Close()
		if p.Scene != nil {
			p.Scene.Delete()
		}
		if p.Shaders != nil {
			p.Shaders.Delete()
		}
	}()
	return err
}

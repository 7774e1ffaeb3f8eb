package renderer

// quadVertices is a clip-space triangle strip: position(3), uv(2).
var quadVertices = []float32{
	-1.0, 1.0, 0.0, 0.0, 1.0,
	-1.0, -1.0, 0.0, 0.0, 0.0,
	1.0, 1.0, 0.0, 1.0, 1.0,
	1.0, -1.0, 0.0, 1.0, 0.0,
}

// debugInsetDivisor sizes the debug overlay as a fraction of the window.
const debugInsetDivisor = 3

// PostProcess runs the full-screen passes: ping-pong blur, HDR composite
// and the shadow map overlay.
type PostProcess struct {
	PingPong [2]*RenderTarget

	dev     Device
	targets *TargetManager
	shaders *ShaderLibrary
	quad    *VertexArray
}

func NewPostProcess(dev Device, targets *TargetManager, shaders *ShaderLibrary, pingPong [2]*RenderTarget) *PostProcess {
	return &PostProcess{
		PingPong: pingPong,
		dev:      dev,
		targets:  targets,
		shaders:  shaders,
	}
}

// ScreenQuad returns the full-screen quad, creating it on first use.
func (p *PostProcess) ScreenQuad() VertexArray {
	if p.quad == nil {
		va := p.dev.CreateVertexArray(quadVertices, nil, []int32{3, 2})
		p.quad = &va
	}
	return *p.quad
}

func (p *PostProcess) drawQuad() {
	p.dev.Draw(p.ScreenQuad(), TriangleStrip)
}

// Blur applies iterations separable passes, alternating direction starting
// horizontal. The first pass reads source, every later pass reads the other
// target's output. It returns the texture written last, or source when
// iterations is zero.
func (p *PostProcess) Blur(source *Texture, iterations int) *Texture {
	if iterations <= 0 {
		return source
	}
	shader := p.shaders.Get(ShaderBlur)
	horizontal := true
	input := source
	var written *Texture

	for i := 0; i < iterations; i++ {
		dst := p.PingPong[pingPongIndex(horizontal)]
		p.targets.With(dst, func() {
			shader.Use()
			shader.SetInt("image", int32(UnitBlurSource))
			shader.SetBool("horizontal", horizontal)
			p.dev.BindTexture(UnitBlurSource, Texture2D, input.ID)
			p.drawQuad()
		})
		written = dst.Color[0]
		input = written
		horizontal = !horizontal
	}
	return written
}

func pingPongIndex(horizontal bool) int {
	if horizontal {
		return 1
	}
	return 0
}

// Composite tone-maps scene onto the default surface, adding bloom when
// bloomOn is set. bloom may be nil when there is no bright pass.
func (p *PostProcess) Composite(scene, bloom *Texture, exposure float32, bloomOn bool) {
	shader := p.shaders.Get(ShaderHDR)
	p.targets.With(nil, func() {
		shader.Use()
		shader.SetInt("scene", int32(UnitScene))
		shader.SetInt("bloomBlur", int32(UnitBloom))
		p.dev.BindTexture(UnitScene, Texture2D, scene.ID)
		if bloom != nil {
			p.dev.BindTexture(UnitBloom, Texture2D, bloom.ID)
		}
		shader.SetBool("bloom", bloomOn && bloom != nil)
		shader.SetFloat("exposure", exposure)
		p.drawQuad()
	})
}

// DebugDepth shows the raw shadow map in the lower left corner of the
// default surface so the composite stays visible around it.
func (p *PostProcess) DebugDepth(depth *Texture, near, far float32) {
	shader := p.shaders.Get(ShaderDebug)
	p.targets.With(nil, func() {
		w, h := p.targets.WindowSize()
		p.dev.Viewport(0, 0, w/debugInsetDivisor, h/debugInsetDivisor)
		shader.Use()
		shader.SetInt("depthMap", 0)
		shader.SetFloat("near_plane", near)
		shader.SetFloat("far_plane", far)
		shader.SetBool("perspective", false)
		p.dev.BindTexture(0, Texture2D, depth.ID)
		p.drawQuad()
	})
}

func (p *PostProcess) Close() {
	if p.quad != nil {
		p.dev.DeleteVertexArray(*p.quad)
		p.quad = nil
	}
}

package renderer

import "github.com/go-gl/mathgl/mgl32"

// PassMode selects which uniforms a draw routine uploads.
type PassMode int

const (
	// DepthOnly sets model and lightSpaceMatrix only.
	DepthOnly PassMode = iota
	// Lit adds camera matrices, the object id and the light set.
	Lit
)

func (m PassMode) String() string {
	if m == Lit {
		return "lit"
	}
	return "depth"
}

// Object ids select per-object shading in the object shader.
const (
	ObjectShip  int32 = 1
	ObjectWater int32 = 2
)

// SceneLayout is the fixed placement of the sun, the ship and the shadow
// frustum.
type SceneLayout struct {
	SunPos      mgl32.Vec3
	ShipPos     mgl32.Vec3
	LightExtent float32
	LightNear   float32
	LightFar    float32
}

// FrameParams is everything a frame reads. It is built once after the input
// step and is not modified while the frame renders.
type FrameParams struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	LightSpace mgl32.Mat4
	Lights     LightSet
	SunPos     mgl32.Vec3
	ShipPos    mgl32.Vec3

	Exposure float32
	Bloom    bool
	Debug    bool
}

// NewFrameParams derives the per-frame matrices. The light-space matrix and
// light directions are recomputed on every call.
func NewFrameParams(cam *Camera, aspect float32, layout SceneLayout) FrameParams {
	return FrameParams{
		View:       cam.ViewMatrix(),
		Projection: cam.ProjectionMatrix(aspect),
		CameraPos:  cam.Position,
		LightSpace: LightSpaceMatrix(layout.SunPos, layout.LightExtent, layout.LightNear, layout.LightFar),
		Lights:     DefaultLightSet(layout.SunPos),
		SunPos:     layout.SunPos,
		ShipPos:    layout.ShipPos,
	}
}

// Scene holds the four drawables.
type Scene struct {
	Skybox *Skybox
	Sun    *Mesh
	Ship   *Mesh
	Water  *Mesh
}

func (s *Scene) Delete() {
	if s.Skybox != nil {
		s.Skybox.Cleanup()
	}
	for _, m := range []*Mesh{s.Sun, s.Ship, s.Water} {
		if m != nil {
			m.Delete()
		}
	}
}

// DrawSkybox draws the cube with a rotation-only view at the far plane. The
// depth test is switched to LEQUAL with writes off for the draw and restored
// to LESS with writes on afterwards. The skybox casts no shadow, so DepthOnly
// draws nothing.
func DrawSkybox(frame FrameParams, shader *Shader, sky *Skybox, mode PassMode) {
	if mode == DepthOnly {
		return
	}
	shader.Use()
	shader.SetMat4("view", SkyboxView(frame.View))
	shader.SetMat4("projection", frame.Projection)
	shader.SetInt("skyboxTexture", int32(UnitSkybox))

	sky.dev.SetDepthFunc(DepthLessEqual)
	sky.dev.SetDepthMask(false)
	sky.Draw()
	sky.dev.SetDepthMask(true)
	sky.dev.SetDepthFunc(DepthLess)
}

// DrawSun draws the unlit sun marker. Like the skybox it is skipped in the
// depth pass.
func DrawSun(frame FrameParams, shader *Shader, mesh *Mesh, mode PassMode) {
	if mode == DepthOnly {
		return
	}
	shader.Use()
	shader.SetMat4("model", SunModel(frame.SunPos))
	shader.SetMat4("view", frame.View)
	shader.SetMat4("projection", frame.Projection)
	mesh.Draw(shader)
}

func DrawShip(frame FrameParams, shader *Shader, mesh *Mesh, mode PassMode) {
	drawObject(frame, shader, mesh, mode, ShipModel(frame.ShipPos), ObjectShip)
}

func DrawWater(frame FrameParams, shader *Shader, mesh *Mesh, mode PassMode) {
	drawObject(frame, shader, mesh, mode, WaterModel(), ObjectWater)
}

func drawObject(frame FrameParams, shader *Shader, mesh *Mesh, mode PassMode, model mgl32.Mat4, objectNum int32) {
	shader.Use()
	shader.SetMat4("model", model)
	shader.SetMat4("lightSpaceMatrix", frame.LightSpace)
	if mode == Lit {
		shader.SetMat4("view", frame.View)
		shader.SetMat4("projection", frame.Projection)
		shader.SetInt("objectNum", objectNum)
		shader.SetInt("shadowMap", int32(UnitShadowMap))
		frame.Lights.UploadLights(shader, frame.CameraPos, frame.ShipPos)
	}
	mesh.Draw(shader)
}

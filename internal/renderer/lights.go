package renderer

import "github.com/go-gl/mathgl/mgl32"

// PhongTerms are the ambient, diffuse and specular intensities of a light.
type PhongTerms struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// SunLight is the positional key light that also casts the shadow map.
type SunLight struct {
	Position mgl32.Vec3
	PhongTerms
}

// LocalLight is a fixed anchor that lights the object from its side. The
// direction is anchor-to-object and is recomputed whenever lights are
// uploaded.
type LocalLight struct {
	Uniform string
	Anchor  mgl32.Vec3
	PhongTerms
}

// Direction points from the anchor toward the object.
func (l LocalLight) Direction(object mgl32.Vec3) mgl32.Vec3 {
	return object.Sub(l.Anchor)
}

// LightSet is the fixed scene lighting: one sun and three local lights.
type LightSet struct {
	Sun   SunLight
	Local [3]LocalLight
}

func sunTerms() PhongTerms {
	return PhongTerms{
		Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
		Diffuse:  mgl32.Vec3{0.8, 0.8, 0.8},
		Specular: mgl32.Vec3{1.0, 1.0, 1.0},
	}
}

func localTerms() PhongTerms {
	return PhongTerms{
		Ambient:  mgl32.Vec3{0.05, 0.05, 0.05},
		Diffuse:  mgl32.Vec3{0.5, 0.5, 0.5},
		Specular: mgl32.Vec3{0.7, 0.7, 0.7},
	}
}

// DefaultLightSet places the sun and the right, left and back lights.
func DefaultLightSet(sunPos mgl32.Vec3) LightSet {
	return LightSet{
		Sun: SunLight{Position: sunPos, PhongTerms: sunTerms()},
		Local: [3]LocalLight{
			{Uniform: "rightLight", Anchor: mgl32.Vec3{2.04, 0.72, 2.35}, PhongTerms: localTerms()},
			{Uniform: "leftLight", Anchor: mgl32.Vec3{3.36, 0.72, 0.224}, PhongTerms: localTerms()},
			{Uniform: "backLight", Anchor: mgl32.Vec3{-3.17, 0.77, -1.82}, PhongTerms: localTerms()},
		},
	}
}

// UploadLights sets viewPos, the sunLight struct and one struct per local
// light. Uniforms the shader does not declare are skipped silently.
func (ls LightSet) UploadLights(shader *Shader, cameraPos, objectAnchor mgl32.Vec3) {
	shader.SetVec3("viewPos", cameraPos)

	shader.SetVec3("sunLight.position", ls.Sun.Position)
	shader.SetVec3("sunLight.ambient", ls.Sun.Ambient)
	shader.SetVec3("sunLight.diffuse", ls.Sun.Diffuse)
	shader.SetVec3("sunLight.specular", ls.Sun.Specular)

	for _, l := range ls.Local {
		shader.SetVec3(l.Uniform+".direction", l.Direction(objectAnchor))
		shader.SetVec3(l.Uniform+".ambient", l.Ambient)
		shader.SetVec3(l.Uniform+".diffuse", l.Diffuse)
		shader.SetVec3(l.Uniform+".specular", l.Specular)
	}
}

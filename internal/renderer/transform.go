package renderer

import "github.com/go-gl/mathgl/mgl32"

// Transform helpers are pure and recomputed every frame; nothing here caches.

func Perspective(fovYDegrees, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovYDegrees), aspect, near, far)
}

func LookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, target, up)
}

// LightSpaceMatrix is ortho(-extent, extent, -extent, extent, near, far)
// times a view from lightPos toward the world origin with +Y up.
func LightSpaceMatrix(lightPos mgl32.Vec3, extent, near, far float32) mgl32.Mat4 {
	projection := mgl32.Ortho(-extent, extent, -extent, extent, near, far)
	view := mgl32.LookAtV(lightPos, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	return projection.Mul4(view)
}

// SkyboxView keeps only the rotation of a view matrix.
func SkyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// ShipModel rotates 60 degrees about +Y, translates to position and scales
// down to scene units, in that order.
func ShipModel(position mgl32.Vec3) mgl32.Mat4 {
	model := mgl32.Ident4()
	model = model.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(60)))
	model = model.Mul4(mgl32.Translate3D(position.X(), position.Y(), position.Z()))
	model = model.Mul4(mgl32.Scale3D(0.001, 0.001, 0.001))
	return model
}

func SunModel(position mgl32.Vec3) mgl32.Mat4 {
	model := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	return model.Mul4(mgl32.Scale3D(0.05, 0.05, 0.05))
}

func WaterModel() mgl32.Mat4 {
	return mgl32.Ident4()
}

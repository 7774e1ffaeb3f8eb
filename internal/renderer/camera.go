// camera.go
package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraMovement abstracts the movement keys away from the windowing layer.
type CameraMovement int

const (
	Forward CameraMovement = iota
	Backward
	Left
	Right
)

const (
	minFov = 1.0
	maxFov = 45.0
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position mgl32.Vec3 // Camera position in world space
	Front    mgl32.Vec3 // Forward direction vector
	Up       mgl32.Vec3 // Up direction vector
	Right    mgl32.Vec3 // Right direction vector
	Pitch    float32    // Pitch angle (vertical rotation)
	Yaw      float32    // Yaw angle (horizontal rotation)

	// COLD DATA - Configuration, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Speed       float32    // Movement speed in units per second
	Sensitivity float32    // Mouse sensitivity
	Fov         float32    // Field of view in degrees, zoomed by scroll
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	InvertMouse bool       // Invert mouse Y axis
}

// NewCamera places a camera at position looking down -Z.
func NewCamera(position mgl32.Vec3) *Camera {
	camera := Camera{
		Position:    position,
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Pitch:       0.0,
		Yaw:         -90.0,
		Speed:       2.5,
		Sensitivity: 0.1,
		Fov:         maxFov,
		Near:        0.1,
		Far:         100.0,
	}
	camera.updateCameraVectors()
	return &camera
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return Perspective(c.Fov, aspect, c.Near, c.Far)
}

func (c *Camera) ProcessKeyboard(direction CameraMovement, deltaTime float32) {
	velocity := c.Speed * deltaTime
	switch direction {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	xoffset *= c.Sensitivity
	yoffset *= c.Sensitivity

	c.Yaw += xoffset
	if c.InvertMouse {
		c.Pitch -= yoffset
	} else {
		c.Pitch += yoffset
	}
	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -89.0, 89.0) // Prevent flipping at the poles
	}
	c.updateCameraVectors()
}

// ProcessMouseScroll zooms by narrowing the field of view.
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Fov = mgl32.Clamp(c.Fov-yoffset, minFov, maxFov)
}

func (c *Camera) updateCameraVectors() {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)

	front := mgl32.Vec3{
		math32.Cos(yawRad) * math32.Cos(pitchRad),
		math32.Sin(pitchRad),
		math32.Sin(yawRad) * math32.Cos(pitchRad),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

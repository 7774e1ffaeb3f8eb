package input

import (
	"testing"

	"Seascape/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newTestState() *State {
	cam := renderer.NewCamera(mgl32.Vec3{0, 0, 3})
	return NewState(cam, Settings{Exposure: 1, ExposureStep: 0.001, Bloom: true})
}

func TestStateMovesCameraForward(t *testing.T) {
	s := newTestState()
	res := s.Step(keySet{glfw.KeyW: true}, 1)

	assert.InDelta(t, 3-s.Camera.Speed, s.Camera.Position.Z(), 1e-4)
	assert.InDelta(t, 0, s.Camera.Position.X(), 1e-4)
	assert.False(t, res.PrintPosition)
}

func TestStateFirstCursorEventOnlySeeds(t *testing.T) {
	s := newTestState()
	yaw := s.Camera.Yaw

	s.OnCursor(750, 500)
	s.Step(keySet{}, 0.016)
	assert.Equal(t, yaw, s.Camera.Yaw)

	s.OnCursor(760, 500)
	s.Step(keySet{}, 0.016)
	assert.InDelta(t, yaw+10*s.Camera.Sensitivity, s.Camera.Yaw, 1e-5)
}

func TestStateCursorUpRaisesPitch(t *testing.T) {
	s := newTestState()
	s.OnCursor(0, 100)
	s.OnCursor(0, 90)
	s.Step(keySet{}, 0.016)
	assert.Greater(t, s.Camera.Pitch, float32(0))
}

func TestStateScrollZoom(t *testing.T) {
	s := newTestState()
	s.OnScroll(5)
	s.Step(keySet{}, 0.016)
	assert.Equal(t, float32(40), s.Camera.Fov)

	s.OnScroll(-100)
	s.Step(keySet{}, 0.016)
	assert.Equal(t, float32(45), s.Camera.Fov)
}

func TestStateReportsEdges(t *testing.T) {
	s := newTestState()

	res := s.Step(keySet{glfw.KeyP: true, glfw.KeySpace: true}, 0.016)
	assert.True(t, res.PrintPosition)
	assert.True(t, res.BloomChanged)
	assert.False(t, s.Settings.Bloom)

	res = s.Step(keySet{glfw.KeyP: true, glfw.KeySpace: true}, 0.016)
	assert.False(t, res.PrintPosition)
	assert.False(t, res.BloomChanged)
}

func TestStateQuit(t *testing.T) {
	s := newTestState()
	s.Step(keySet{}, 0.016)
	assert.False(t, s.QuitRequested)
	s.Step(keySet{glfw.KeyEscape: true}, 0.016)
	assert.True(t, s.QuitRequested)
}

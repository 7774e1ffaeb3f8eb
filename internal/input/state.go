package input

import (
	"Seascape/internal/renderer"
)

// State is the application frame state. Callbacks only queue cursor and
// scroll deltas; Step applies everything at the start of a frame so the rest
// of the frame reads a stable snapshot.
type State struct {
	Camera   *renderer.Camera
	Settings Settings
	Input    *Manager

	// QuitRequested latches once the quit action is seen.
	QuitRequested bool

	lastX, lastY float64
	firstMouse   bool
	pendingX     float32
	pendingY     float32
	pendingZoom  float32
}

// StepResult reports one-shot actions triggered during Step.
type StepResult struct {
	PrintPosition bool
	BloomChanged  bool
	DebugChanged  bool
}

func NewState(camera *renderer.Camera, settings Settings) *State {
	return &State{
		Camera:     camera,
		Settings:   settings,
		Input:      NewManager(),
		firstMouse: true,
	}
}

// OnCursor records a cursor position from the windowing callback. The first
// event only seeds the last position.
func (s *State) OnCursor(x, y float64) {
	if s.firstMouse {
		s.lastX, s.lastY = x, y
		s.firstMouse = false
		return
	}
	s.pendingX += float32(x - s.lastX)
	// Screen y grows downwards.
	s.pendingY += float32(s.lastY - y)
	s.lastX, s.lastY = x, y
}

func (s *State) OnScroll(yoffset float64) {
	s.pendingZoom += float32(yoffset)
}

// Step polls keys and applies all queued input for one frame.
func (s *State) Step(keys KeyPoller, deltaTime float32) StepResult {
	s.Input.Poll(keys)

	if s.Input.Held(ActionQuit) {
		s.QuitRequested = true
	}
	if s.Input.Held(ActionMoveForward) {
		s.Camera.ProcessKeyboard(renderer.Forward, deltaTime)
	}
	if s.Input.Held(ActionMoveBackward) {
		s.Camera.ProcessKeyboard(renderer.Backward, deltaTime)
	}
	if s.Input.Held(ActionMoveLeft) {
		s.Camera.ProcessKeyboard(renderer.Left, deltaTime)
	}
	if s.Input.Held(ActionMoveRight) {
		s.Camera.ProcessKeyboard(renderer.Right, deltaTime)
	}

	if s.pendingX != 0 || s.pendingY != 0 {
		s.Camera.ProcessMouseMovement(s.pendingX, s.pendingY, true)
		s.pendingX, s.pendingY = 0, 0
	}
	if s.pendingZoom != 0 {
		s.Camera.ProcessMouseScroll(s.pendingZoom)
		s.pendingZoom = 0
	}

	bloom, debug := s.Settings.Bloom, s.Settings.Debug
	s.Settings.Apply(s.Input)

	return StepResult{
		PrintPosition: s.Input.JustPressed(ActionPrintPosition),
		BloomChanged:  bloom != s.Settings.Bloom,
		DebugChanged:  debug != s.Settings.Debug,
	}
}

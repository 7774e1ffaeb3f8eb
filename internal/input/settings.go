package input

// Settings are the runtime-tunable parameters. They are not persisted.
type Settings struct {
	Exposure     float32
	ExposureStep float32
	Bloom        bool
	Debug        bool
}

// AdjustExposure adds delta and clamps the result at zero. There is no upper
// bound.
func (s *Settings) AdjustExposure(delta float32) {
	s.Exposure += delta
	if s.Exposure < 0 {
		s.Exposure = 0
	}
}

// Apply reads the toggles and the held exposure keys for one frame.
func (s *Settings) Apply(m *Manager) {
	if m.JustPressed(ActionToggleBloom) {
		s.Bloom = !s.Bloom
	}
	if m.JustPressed(ActionToggleDebug) {
		s.Debug = !s.Debug
	}
	if m.Held(ActionExposureDown) {
		s.AdjustExposure(-s.ExposureStep)
	}
	if m.Held(ActionExposureUp) {
		s.AdjustExposure(s.ExposureStep)
	}
}

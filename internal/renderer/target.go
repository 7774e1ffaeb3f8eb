package renderer

import (
	"errors"
	"fmt"

	"Seascape/internal/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ShadowBaseResolution is multiplied by the configured shadow multiplier.
const ShadowBaseResolution = 1024

var ErrIncompleteFramebuffer = errors.New("incomplete framebuffer")

// Texture is a GPU texture with its size.
type Texture struct {
	ID     uint32
	Width  int32
	Height int32
}

type targetKind int

const (
	shadowTarget targetKind = iota
	colorTarget
)

// RenderTarget is an off-screen framebuffer and its attachments.
type RenderTarget struct {
	Name   string
	FBO    uint32
	Width  int32
	Height int32
	// Color holds the floating point color attachments in attachment order.
	Color []*Texture
	// Depth is the sampleable depth map of a shadow target.
	Depth *Texture

	kind        targetKind
	windowSized bool
	depthRBO    uint32
}

// TargetManager creates render targets and tracks which one is bound.
// Window-sized targets are recreated by Resize.
type TargetManager struct {
	dev          Device
	windowWidth  int32
	windowHeight int32
	current      *RenderTarget
	targets      []*RenderTarget
}

func NewTargetManager(dev Device, windowWidth, windowHeight int32) *TargetManager {
	return &TargetManager{
		dev:          dev,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
}

func (m *TargetManager) WindowSize() (int32, int32) {
	return m.windowWidth, m.windowHeight
}

// Current returns the bound target, or nil for the default surface.
func (m *TargetManager) Current() *RenderTarget {
	return m.current
}

// CreateShadowTarget allocates a depth-only square target of
// ShadowBaseResolution*multiplier texels per side.
func (m *TargetManager) CreateShadowTarget(multiplier int) (*RenderTarget, error) {
	if multiplier < 1 {
		return nil, fmt.Errorf("shadow multiplier %d must be at least 1", multiplier)
	}
	size := int32(ShadowBaseResolution * multiplier)
	t := &RenderTarget{
		Name:   "shadow",
		Width:  size,
		Height: size,
		kind:   shadowTarget,
	}
	if err := m.allocate(t, 0); err != nil {
		return nil, err
	}
	m.targets = append(m.targets, t)
	return t, nil
}

// CreateColorTarget allocates one or two RGB16F color attachments plus a
// depth renderbuffer. Attachment 0 is the scene color and attachment 1 the
// bright pass.
func (m *TargetManager) CreateColorTarget(name string, width, height int32, attachments int) (*RenderTarget, error) {
	if attachments < 1 || attachments > 2 {
		return nil, fmt.Errorf("target %s: %d color attachments, want 1 or 2", name, attachments)
	}
	t := &RenderTarget{
		Name:        name,
		Width:       width,
		Height:      height,
		kind:        colorTarget,
		windowSized: true,
	}
	if err := m.allocate(t, attachments); err != nil {
		return nil, err
	}
	m.targets = append(m.targets, t)
	return t, nil
}

// CreatePingPongPair allocates two single-attachment targets for blurring.
func (m *TargetManager) CreatePingPongPair(width, height int32) ([2]*RenderTarget, error) {
	var pair [2]*RenderTarget
	for i := range pair {
		t := &RenderTarget{
			Name:        fmt.Sprintf("pingpong%d", i),
			Width:       width,
			Height:      height,
			kind:        colorTarget,
			windowSized: true,
		}
		if err := m.allocate(t, 1); err != nil {
			if pair[0] != nil {
				m.Release(pair[0])
			}
			return pair, err
		}
		pair[i] = t
		m.targets = append(m.targets, t)
	}
	return pair, nil
}

// allocate builds the framebuffer for t and verifies completeness. The
// previous binding is restored either way.
func (m *TargetManager) allocate(t *RenderTarget, colorAttachments int) error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("target %s: invalid size %dx%d", t.Name, t.Width, t.Height)
	}

	t.FBO = m.dev.CreateFramebuffer()
	m.dev.BindFramebuffer(t.FBO)
	defer m.rebindCurrent()

	switch t.kind {
	case shadowTarget:
		t.Depth = &Texture{
			ID:     m.dev.AttachDepthTexture(t.Width, t.Height),
			Width:  t.Width,
			Height: t.Height,
		}
	case colorTarget:
		t.Color = make([]*Texture, colorAttachments)
		for i := range t.Color {
			t.Color[i] = &Texture{
				ID:     m.dev.AttachColorTexture(i, t.Width, t.Height),
				Width:  t.Width,
				Height: t.Height,
			}
		}
		m.dev.SetDrawBuffers(colorAttachments)
		t.depthRBO = m.dev.AttachDepthRenderbuffer(t.Width, t.Height)
	}

	if complete, status := m.dev.FramebufferStatus(); !complete {
		m.free(t)
		return fmt.Errorf("target %s (status 0x%x): %w", t.Name, status, ErrIncompleteFramebuffer)
	}

	logger.Log.Debug("Render target created",
		zap.String("name", t.Name),
		zap.Int32("width", t.Width),
		zap.Int32("height", t.Height),
		zap.Int("colorAttachments", len(t.Color)))
	return nil
}

func (m *TargetManager) rebindCurrent() {
	if m.current != nil {
		m.dev.BindFramebuffer(m.current.FBO)
		return
	}
	m.dev.BindFramebuffer(0)
}

func (m *TargetManager) free(t *RenderTarget) {
	for _, tex := range t.Color {
		m.dev.DeleteTexture(tex.ID)
	}
	if t.Depth != nil {
		m.dev.DeleteTexture(t.Depth.ID)
	}
	if t.depthRBO != 0 {
		m.dev.DeleteRenderbuffer(t.depthRBO)
	}
	m.dev.DeleteFramebuffer(t.FBO)
	t.Color, t.Depth, t.depthRBO, t.FBO = nil, nil, 0, 0
}

// Bind makes t the draw destination and sets the viewport to its size.
// Nothing is cleared.
func (m *TargetManager) Bind(t *RenderTarget) {
	m.current = t
	m.dev.BindFramebuffer(t.FBO)
	m.dev.Viewport(0, 0, t.Width, t.Height)
}

// Unbind restores the default surface with the window viewport.
func (m *TargetManager) Unbind() {
	m.current = nil
	m.dev.BindFramebuffer(0)
	m.dev.Viewport(0, 0, m.windowWidth, m.windowHeight)
}

// With binds t for the duration of fn and then restores whatever was bound
// before, viewport included. A nil t scopes the default surface.
func (m *TargetManager) With(t *RenderTarget, fn func()) {
	previous := m.current
	if t == nil {
		m.Unbind()
	} else {
		m.Bind(t)
	}
	defer func() {
		if previous == nil {
			m.Unbind()
		} else {
			m.Bind(previous)
		}
	}()
	fn()
}

// Resize records the new window size and recreates every window-sized
// target at that size. Target pointers stay valid.
func (m *TargetManager) Resize(width, height int32) error {
	if width <= 0 || height <= 0 {
		// Minimised windows report 0x0; keep the old targets.
		return nil
	}
	if width == m.windowWidth && height == m.windowHeight {
		return nil
	}
	m.windowWidth, m.windowHeight = width, height

	var errs error
	for _, t := range m.targets {
		if !t.windowSized {
			continue
		}
		attachments := len(t.Color)
		m.free(t)
		t.Width, t.Height = width, height
		errs = multierr.Append(errs, m.allocate(t, attachments))
	}
	if m.current == nil {
		m.dev.Viewport(0, 0, width, height)
	}
	return errs
}

// Release frees one target and forgets it.
func (m *TargetManager) Release(t *RenderTarget) {
	for i, tracked := range m.targets {
		if tracked == t {
			m.targets = append(m.targets[:i], m.targets[i+1:]...)
			break
		}
	}
	if m.current == t {
		m.Unbind()
	}
	m.free(t)
}

// Close frees every target created by the manager.
func (m *TargetManager) Close() {
	m.Unbind()
	for _, t := range m.targets {
		m.free(t)
	}
	m.targets = nil
}

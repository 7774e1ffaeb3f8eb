package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer action, not a physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionToggleBloom
	ActionExposureDown
	ActionExposureUp
	ActionToggleDebug
	ActionPrintPosition
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// KeyPoller reports whether a physical key is currently held.
// *glfw.Window satisfies it through WindowPoller.
type KeyPoller interface {
	Pressed(key glfw.Key) bool
}

// WindowPoller adapts a glfw window to KeyPoller.
type WindowPoller struct {
	Window *glfw.Window
}

func (w WindowPoller) Pressed(key glfw.Key) bool {
	return w.Window.GetKey(key) == glfw.Press
}

// EdgeDetector compares the previous and current held state of every action.
type EdgeDetector struct {
	prev [ActionCount]bool
	cur  [ActionCount]bool
}

// Update shifts the current state into the previous one and records held.
func (e *EdgeDetector) Update(held [ActionCount]bool) {
	e.prev = e.cur
	e.cur = held
}

func (e *EdgeDetector) Held(a Action) bool {
	return a >= 0 && a < ActionCount && e.cur[a]
}

// JustPressed is true only on the first update an action is seen held.
func (e *EdgeDetector) JustPressed(a Action) bool {
	return a >= 0 && a < ActionCount && e.cur[a] && !e.prev[a]
}

func (e *EdgeDetector) JustReleased(a Action) bool {
	return a >= 0 && a < ActionCount && !e.cur[a] && e.prev[a]
}

// Manager maps physical keys to actions and tracks their edges per frame.
type Manager struct {
	bindings map[Action][]glfw.Key
	edges    EdgeDetector
}

func NewManager() *Manager {
	m := &Manager{bindings: make(map[Action][]glfw.Key)}
	m.Bind(ActionMoveForward, glfw.KeyW)
	m.Bind(ActionMoveBackward, glfw.KeyS)
	m.Bind(ActionMoveLeft, glfw.KeyA)
	m.Bind(ActionMoveRight, glfw.KeyD)
	m.Bind(ActionToggleBloom, glfw.KeySpace)
	m.Bind(ActionExposureDown, glfw.KeyQ)
	m.Bind(ActionExposureUp, glfw.KeyE)
	m.Bind(ActionToggleDebug, glfw.KeyB)
	m.Bind(ActionPrintPosition, glfw.KeyP)
	m.Bind(ActionQuit, glfw.KeyEscape)
	return m
}

// Bind adds a key for an action. Several keys may share one action.
func (m *Manager) Bind(a Action, key glfw.Key) {
	if a < 0 || a >= ActionCount {
		return
	}
	m.bindings[a] = append(m.bindings[a], key)
}

// Poll samples every bound key once. Call it once per frame before reading.
func (m *Manager) Poll(keys KeyPoller) {
	var held [ActionCount]bool
	for a, ks := range m.bindings {
		for _, k := range ks {
			if keys.Pressed(k) {
				held[a] = true
				break
			}
		}
	}
	m.edges.Update(held)
}

func (m *Manager) Held(a Action) bool        { return m.edges.Held(a) }
func (m *Manager) JustPressed(a Action) bool { return m.edges.JustPressed(a) }

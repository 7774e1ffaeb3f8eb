package renderer

import "github.com/go-gl/mathgl/mgl32"

// UniformCache caches uniform locations to avoid repeated lookups
type UniformCache struct {
	locations map[string]int32
	program   uint32
	dev       Device
}

// NewUniformCache creates a new uniform cache for a shader program
func NewUniformCache(dev Device, program uint32) *UniformCache {
	return &UniformCache{
		locations: make(map[string]int32),
		program:   program,
		dev:       dev,
	}
}

// GetLocation returns the cached uniform location or fetches and caches it.
// Unknown names cache -1.
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}

	loc := uc.dev.UniformLocation(uc.program, name)
	uc.locations[name] = loc
	return loc
}

func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.dev.Uniform1f(loc, value)
	}
}

func (uc *UniformCache) SetVec3(name string, value mgl32.Vec3) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.dev.Uniform3f(loc, value)
	}
}

func (uc *UniformCache) SetInt(name string, value int32) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.dev.Uniform1i(loc, value)
	}
}

func (uc *UniformCache) SetMat4(name string, value mgl32.Mat4) {
	if loc := uc.GetLocation(name); loc != -1 {
		uc.dev.UniformMat4(loc, value)
	}
}

// Reset points the cache at a new program and drops every cached location.
func (uc *UniformCache) Reset(program uint32) {
	uc.program = program
	uc.Clear()
}

// Clear clears the cache (call when shader program changes)
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}

package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostProcess(t *testing.T, dev *fakeDevice) (*PostProcess, *ShaderLibrary) {
	t.Helper()
	lib, err := LoadShaderLibrary(dev, "")
	require.NoError(t, err)
	targets := NewTargetManager(dev, 800, 600)
	pair, err := targets.CreatePingPongPair(800, 600)
	require.NoError(t, err)
	return NewPostProcess(dev, targets, lib, pair), lib
}

func TestBlurAlternatesTargets(t *testing.T) {
	for _, iterations := range []int{1, 2, 3, 10} {
		dev := newFakeDevice()
		post, lib := newTestPostProcess(t, dev)
		source := &Texture{ID: 7, Width: 800, Height: 600}

		got := post.Blur(source, iterations)

		require.Len(t, dev.draws, iterations)
		input := source.ID
		for i, dc := range dev.draws {
			dst := post.PingPong[pingPongIndex(i%2 == 0)]
			assert.Equal(t, dst.FBO, dc.fbo, "iteration %d", i)
			assert.Equal(t, input, dc.units[UnitBlurSource], "iteration %d reads the previous output", i)
			assert.Equal(t, lib.Get(ShaderBlur).Program(), dc.program)
			assert.Equal(t, TriangleStrip, dc.mode)
			input = dst.Color[0].ID
		}

		want := post.PingPong[1].Color[0]
		if iterations%2 == 0 {
			want = post.PingPong[0].Color[0]
		}
		assert.Same(t, want, got, "iterations %d", iterations)
		assert.Equal(t, uint32(0), dev.fbo)
	}
}

func TestBlurLastDirection(t *testing.T) {
	dev := newFakeDevice()
	post, lib := newTestPostProcess(t, dev)

	post.Blur(&Texture{ID: 7}, 3)

	assert.Equal(t, int32(1), dev.uniforms[lib.Get(ShaderBlur).Program()]["horizontal"])
}

func TestBlurZeroIterationsReturnsSource(t *testing.T) {
	dev := newFakeDevice()
	post, _ := newTestPostProcess(t, dev)
	source := &Texture{ID: 7}

	assert.Same(t, source, post.Blur(source, 0))
	assert.Empty(t, dev.draws)
}

func TestCompositeBloomFlag(t *testing.T) {
	tests := []struct {
		name    string
		bloom   *Texture
		bloomOn bool
		want    int32
	}{
		{"bloom on", &Texture{ID: 9}, true, 1},
		{"bloom off", &Texture{ID: 9}, false, 0},
		{"no bright pass", nil, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := newFakeDevice()
			post, lib := newTestPostProcess(t, dev)
			program := lib.Get(ShaderHDR).Program()

			post.Composite(&Texture{ID: 8}, tt.bloom, 1.5, tt.bloomOn)

			require.Len(t, dev.draws, 1)
			dc := dev.draws[0]
			assert.Equal(t, uint32(0), dc.fbo)
			assert.Equal(t, [4]int32{0, 0, 800, 600}, dc.viewport)
			assert.Equal(t, uint32(8), dc.units[UnitScene])
			assert.Equal(t, tt.want, dev.uniforms[program]["bloom"])
			assert.Equal(t, float32(1.5), dev.uniforms[program]["exposure"])
			assert.Equal(t, int32(UnitBloom), dev.uniforms[program]["bloomBlur"])
			if tt.bloom != nil {
				assert.Equal(t, tt.bloom.ID, dc.units[UnitBloom])
			}
		})
	}
}

func TestDebugDepthDrawsInset(t *testing.T) {
	dev := newFakeDevice()
	post, lib := newTestPostProcess(t, dev)
	program := lib.Get(ShaderDebug).Program()

	post.DebugDepth(&Texture{ID: 11}, 1, 7.5)

	require.Len(t, dev.draws, 1)
	assert.Equal(t, [4]int32{0, 0, 266, 200}, dev.draws[0].viewport)
	assert.Equal(t, uint32(11), dev.draws[0].units[0])
	assert.Equal(t, float32(1), dev.uniforms[program]["near_plane"])
	assert.Equal(t, float32(7.5), dev.uniforms[program]["far_plane"])
	assert.Equal(t, int32(0), dev.uniforms[program]["perspective"])
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.viewport, "window viewport is restored")
}

func TestScreenQuadCreatedOnce(t *testing.T) {
	dev := newFakeDevice()
	post, _ := newTestPostProcess(t, dev)

	first := post.ScreenQuad()
	second := post.ScreenQuad()

	assert.Equal(t, first, second)
	assert.Equal(t, int32(4), first.Count)

	post.Close()
	assert.True(t, dev.deleted[first.VAO])
}

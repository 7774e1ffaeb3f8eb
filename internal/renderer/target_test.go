package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorTargetMatchesWindow(t *testing.T) {
	dev := newFakeDevice()
	targets := NewTargetManager(dev, 800, 600)

	color, err := targets.CreateColorTarget("color", 800, 600, 2)
	require.NoError(t, err)

	require.Len(t, color.Color, 2)
	for _, tex := range color.Color {
		assert.Equal(t, int32(800), tex.Width)
		assert.Equal(t, int32(600), tex.Height)
	}
	assert.NotEqual(t, color.Color[0].ID, color.Color[1].ID)
	assert.Equal(t, uint32(0), dev.fbo, "allocation must restore the default surface")
}

func TestColorTargetRejectsAttachmentCount(t *testing.T) {
	targets := NewTargetManager(newFakeDevice(), 800, 600)

	_, err := targets.CreateColorTarget("color", 800, 600, 3)
	assert.Error(t, err)
	_, err = targets.CreateColorTarget("color", 800, 600, 0)
	assert.Error(t, err)
}

func TestShadowTargetResolution(t *testing.T) {
	targets := NewTargetManager(newFakeDevice(), 800, 600)

	shadow, err := targets.CreateShadowTarget(4)
	require.NoError(t, err)

	assert.Equal(t, int32(4096), shadow.Width)
	assert.Equal(t, int32(4096), shadow.Height)
	require.NotNil(t, shadow.Depth)
	assert.Empty(t, shadow.Color)

	_, err = targets.CreateShadowTarget(0)
	assert.Error(t, err)
}

func TestIncompleteFramebufferIsFatal(t *testing.T) {
	dev := newFakeDevice()
	dev.incomplete = true
	targets := NewTargetManager(dev, 800, 600)

	_, err := targets.CreateColorTarget("color", 800, 600, 2)
	require.ErrorIs(t, err, ErrIncompleteFramebuffer)
	assert.Contains(t, err.Error(), "color")

	_, err = targets.CreateShadowTarget(1)
	assert.ErrorIs(t, err, ErrIncompleteFramebuffer)
	assert.Equal(t, uint32(0), dev.fbo)
}

func TestWithRestoresPreviousTarget(t *testing.T) {
	dev := newFakeDevice()
	targets := NewTargetManager(dev, 800, 600)
	shadow, err := targets.CreateShadowTarget(1)
	require.NoError(t, err)
	color, err := targets.CreateColorTarget("color", 800, 600, 1)
	require.NoError(t, err)

	targets.Bind(color)
	targets.With(shadow, func() {
		assert.Equal(t, shadow.FBO, dev.fbo)
		assert.Equal(t, [4]int32{0, 0, 1024, 1024}, dev.viewport)
		assert.Same(t, shadow, targets.Current())
	})

	assert.Equal(t, color.FBO, dev.fbo)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.viewport)
	assert.Same(t, color, targets.Current())

	targets.With(nil, func() {
		assert.Equal(t, uint32(0), dev.fbo)
		assert.Nil(t, targets.Current())
	})
	assert.Same(t, color, targets.Current())
}

func TestResizeRecreatesWindowSizedTargets(t *testing.T) {
	dev := newFakeDevice()
	targets := NewTargetManager(dev, 800, 600)
	shadow, err := targets.CreateShadowTarget(2)
	require.NoError(t, err)
	color, err := targets.CreateColorTarget("color", 800, 600, 2)
	require.NoError(t, err)
	pair, err := targets.CreatePingPongPair(800, 600)
	require.NoError(t, err)

	oldColor := color.Color[0].ID
	oldShadow := shadow.Depth.ID

	require.NoError(t, targets.Resize(1280, 720))

	assert.True(t, dev.deleted[oldColor])
	assert.False(t, dev.deleted[oldShadow])
	assert.Equal(t, int32(2048), shadow.Width)
	for _, target := range []*RenderTarget{color, pair[0], pair[1]} {
		assert.Equal(t, int32(1280), target.Width)
		assert.Equal(t, int32(720), target.Height)
		for _, tex := range target.Color {
			assert.Equal(t, int32(1280), tex.Width)
		}
	}
	assert.Len(t, color.Color, 2)
	assert.Equal(t, [4]int32{0, 0, 1280, 720}, dev.viewport)

	w, h := targets.WindowSize()
	assert.Equal(t, int32(1280), w)
	assert.Equal(t, int32(720), h)
}

func TestResizeIgnoresMinimisedWindow(t *testing.T) {
	targets := NewTargetManager(newFakeDevice(), 800, 600)
	color, err := targets.CreateColorTarget("color", 800, 600, 1)
	require.NoError(t, err)

	require.NoError(t, targets.Resize(0, 0))

	assert.Equal(t, int32(800), color.Width)
	w, h := targets.WindowSize()
	assert.Equal(t, int32(800), w)
	assert.Equal(t, int32(600), h)
}

func TestCloseFreesEveryTarget(t *testing.T) {
	dev := newFakeDevice()
	targets := NewTargetManager(dev, 800, 600)
	shadow, err := targets.CreateShadowTarget(1)
	require.NoError(t, err)
	color, err := targets.CreateColorTarget("color", 800, 600, 2)
	require.NoError(t, err)
	shadowFBO, colorFBO := shadow.FBO, color.FBO

	targets.Close()

	assert.True(t, dev.deleted[shadowFBO])
	assert.True(t, dev.deleted[colorFBO])
}

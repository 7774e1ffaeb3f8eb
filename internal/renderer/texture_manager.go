package renderer

import (
	"image"

	"Seascape/internal/logger"

	"go.uber.org/zap"
)

// TextureStats provides debugging information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
	TotalMemoryMB  float64
}

// TextureManager uploads material textures once per key and reference
// counts them. It must only be used from the render thread.
type TextureManager struct {
	dev      Device
	cache    map[string]*Texture
	refCount map[uint32]int
	keys     map[uint32]string
	stats    TextureStats
}

func NewTextureManager(dev Device) *TextureManager {
	return &TextureManager{
		dev:      dev,
		cache:    make(map[string]*Texture),
		refCount: make(map[uint32]int),
		keys:     make(map[uint32]string),
	}
}

// Acquire returns the texture cached under key, uploading img on a miss.
func (tm *TextureManager) Acquire(key string, img *image.RGBA) *Texture {
	if tex, ok := tm.cache[key]; ok {
		tm.refCount[tex.ID]++
		tm.stats.CacheHits++
		logger.Log.Debug("Texture cache hit",
			zap.String("key", key),
			zap.Uint32("textureID", tex.ID),
			zap.Int("refCount", tm.refCount[tex.ID]))
		return tex
	}

	tm.stats.CacheMisses++
	size := img.Rect.Size()
	tex := &Texture{
		ID:     tm.dev.CreateTexture2D(img),
		Width:  int32(size.X),
		Height: int32(size.Y),
	}
	tm.cache[key] = tex
	tm.refCount[tex.ID] = 1
	tm.keys[tex.ID] = key
	tm.stats.TotalTextures++
	tm.stats.ActiveTextures++
	tm.stats.TotalMemoryMB += float64(size.X*size.Y*4) / (1024 * 1024)

	logger.Log.Info("Texture loaded and cached",
		zap.String("key", key),
		zap.Uint32("textureID", tex.ID),
		zap.Int("width", size.X),
		zap.Int("height", size.Y))
	return tex
}

// Release drops one reference and deletes the texture at zero.
func (tm *TextureManager) Release(tex *Texture) {
	if tex == nil {
		return
	}
	count, ok := tm.refCount[tex.ID]
	if !ok {
		return
	}
	if count > 1 {
		tm.refCount[tex.ID] = count - 1
		return
	}

	key := tm.keys[tex.ID]
	delete(tm.cache, key)
	delete(tm.refCount, tex.ID)
	delete(tm.keys, tex.ID)
	tm.dev.DeleteTexture(tex.ID)
	tm.stats.ActiveTextures--
	tm.stats.TotalMemoryMB -= float64(tex.Width*tex.Height*4) / (1024 * 1024)
}

func (tm *TextureManager) Stats() TextureStats {
	return tm.stats
}

func (tm *TextureManager) LogStats() {
	logger.Log.Info("Texture manager stats",
		zap.Int("totalTextures", tm.stats.TotalTextures),
		zap.Int("activeTextures", tm.stats.ActiveTextures),
		zap.Int("cacheHits", tm.stats.CacheHits),
		zap.Int("cacheMisses", tm.stats.CacheMisses),
		zap.Float64("memoryMB", tm.stats.TotalMemoryMB))
}

// Clear deletes every cached texture regardless of references.
func (tm *TextureManager) Clear() {
	for id := range tm.refCount {
		tm.dev.DeleteTexture(id)
	}
	tm.cache = make(map[string]*Texture)
	tm.refCount = make(map[uint32]int)
	tm.keys = make(map[uint32]string)
	tm.stats.ActiveTextures = 0
	tm.stats.TotalMemoryMB = 0
}

package loader

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"Seascape/internal/logger"

	"go.uber.org/zap"
)

const (
	meshMagic   uint32 = 0x4D455348 // "MESH"
	meshVersion uint32 = 2
)

// ErrStaleCache is returned when a cache entry no longer matches its source.
var ErrStaleCache = errors.New("mesh cache entry is stale")

// cacheStamp identifies the source file a cache entry was built from.
type cacheStamp struct {
	ModTime int64
	Size    int64
}

func stampOf(path string) (cacheStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return cacheStamp{}, err
	}
	return cacheStamp{ModTime: info.ModTime().UnixNano(), Size: info.Size()}, nil
}

// EncodeMesh writes mesh geometry and material parameters as gzip-compressed
// little-endian binary. Decoded textures are not stored; TexturePath is, so
// the texture is decoded again on load.
func EncodeMesh(mesh *MeshData, stamp cacheStamp) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)

	header := []interface{}{meshMagic, meshVersion, stamp.ModTime, stamp.Size}
	for _, v := range header {
		if err := binary.Write(gz, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	if err := writeString(gz, mesh.Name); err != nil {
		return nil, err
	}
	if err := writeSlice(gz, mesh.Interleaved); err != nil {
		return nil, err
	}
	if err := writeSlice(gz, mesh.Indices); err != nil {
		return nil, err
	}

	mat := DefaultMaterial
	if mesh.Material != nil {
		mat = *mesh.Material
	}
	if err := writeString(gz, mat.Name); err != nil {
		return nil, err
	}
	for _, v := range []interface{}{mat.DiffuseColor, mat.SpecularColor, mat.Shininess, mat.Alpha} {
		if err := binary.Write(gz, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	if err := writeString(gz, mat.TexturePath); err != nil {
		return nil, err
	}

	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeMesh reads data written by EncodeMesh and returns the stamp it was
// written with.
func DecodeMesh(data []byte) (*MeshData, cacheStamp, error) {
	var stamp cacheStamp
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, stamp, fmt.Errorf("mesh cache: %w", err)
	}
	defer gz.Close()

	var magic, version uint32
	if err := binary.Read(gz, binary.LittleEndian, &magic); err != nil {
		return nil, stamp, err
	}
	if magic != meshMagic {
		return nil, stamp, fmt.Errorf("invalid mesh file magic: %x", magic)
	}
	if err := binary.Read(gz, binary.LittleEndian, &version); err != nil {
		return nil, stamp, err
	}
	if version != meshVersion {
		return nil, stamp, fmt.Errorf("unsupported mesh version: %d", version)
	}
	if err := binary.Read(gz, binary.LittleEndian, &stamp); err != nil {
		return nil, stamp, err
	}

	mesh := &MeshData{}
	if mesh.Name, err = readString(gz); err != nil {
		return nil, stamp, err
	}
	if mesh.Interleaved, err = readSlice[float32](gz); err != nil {
		return nil, stamp, err
	}
	if mesh.Indices, err = readSlice[uint32](gz); err != nil {
		return nil, stamp, err
	}

	mat := DefaultMaterial
	if mat.Name, err = readString(gz); err != nil {
		return nil, stamp, err
	}
	for _, v := range []interface{}{&mat.DiffuseColor, &mat.SpecularColor, &mat.Shininess, &mat.Alpha} {
		if err := binary.Read(gz, binary.LittleEndian, v); err != nil {
			return nil, stamp, err
		}
	}
	if mat.TexturePath, err = readString(gz); err != nil {
		return nil, stamp, err
	}
	mesh.Material = &mat
	return mesh, stamp, nil
}

// cachePath maps a source model to its entry in dir.
func cachePath(dir, source string) string {
	clean := filepath.ToSlash(filepath.Clean(source))
	name := strings.NewReplacer("/", "_", ":", "_").Replace(clean)
	return filepath.Join(dir, name+".mesh")
}

// LoadModelCached behaves like LoadModel but keeps parsed file models in
// dir. An entry is used only while the source file's size and modification
// time are unchanged. Procedural sources and an empty dir bypass the cache.
func LoadModelCached(path, dir string) (*MeshData, error) {
	if dir == "" || path == ProceduralWater {
		return LoadModel(path)
	}
	stamp, err := stampOf(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}

	entry := cachePath(dir, path)
	if mesh, err := readCacheEntry(entry, stamp); err == nil {
		mesh.SourcePath = path
		loadMaterialTexture(path, mesh.Material)
		logger.Log.Info("Model loaded from cache",
			zap.String("path", path),
			zap.String("cache", entry),
			zap.Int("vertices", mesh.VertexCount()))
		return mesh, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Log.Debug("Mesh cache miss", zap.String("cache", entry), zap.Error(err))
	}

	mesh, err := LoadModel(path)
	if err != nil {
		return nil, err
	}
	if err := writeCacheEntry(entry, mesh, stamp); err != nil {
		logger.Log.Warn("Could not write mesh cache", zap.String("cache", entry), zap.Error(err))
	}
	return mesh, nil
}

func readCacheEntry(entry string, want cacheStamp) (*MeshData, error) {
	data, err := os.ReadFile(entry)
	if err != nil {
		return nil, err
	}
	mesh, stamp, err := DecodeMesh(data)
	if err != nil {
		return nil, err
	}
	if stamp != want {
		return nil, ErrStaleCache
	}
	return mesh, nil
}

func writeCacheEntry(entry string, mesh *MeshData, stamp cacheStamp) error {
	data, err := EncodeMesh(mesh, stamp)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		return err
	}
	return os.WriteFile(entry, data, 0o644)
}

func writeString(w io.Writer, s string) error {
	return writeSlice(w, []byte(s))
}

func readString(r io.Reader) (string, error) {
	b, err := readSlice[byte](r)
	return string(b), err
}

func writeSlice[T float32 | uint32 | byte](w io.Writer, data []T) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func readSlice[T float32 | uint32 | byte](r io.Reader) ([]T, error) {
	var length int32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("invalid slice length %d", length)
	}
	data := make([]T, length)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}

package loader

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"

	"Seascape/internal/logger"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// LoadGLTF reads a .gltf or .glb file. Every primitive of every mesh is merged
// into one MeshData; the material of the first primitive that has one is kept.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	mesh := &MeshData{
		Name:       filepath.Base(path),
		SourcePath: path,
	}
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if err := appendPrimitive(doc, mesh, prim); err != nil {
				logger.Log.Warn("Skipping glTF primitive",
					zap.String("path", path), zap.Int("mesh", mi), zap.Int("primitive", pi), zap.Error(err))
				continue
			}
			if mesh.Material == nil && prim.Material != nil && *prim.Material < len(doc.Materials) {
				mesh.Material = gltfMaterial(doc, filepath.Dir(path), *prim.Material)
			}
		}
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangle geometry", path)
	}
	return mesh, nil
}

func appendPrimitive(doc *gltf.Document, mesh *MeshData, prim *gltf.Primitive) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return fmt.Errorf("primitive mode %v is not triangles", prim.Mode)
	}
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	base := uint32(mesh.VertexCount())
	for i, p := range positions {
		uv := [2]float32{}
		if i < len(uvs) {
			uv = uvs[i]
		}
		n := [3]float32{0, 1, 0}
		if i < len(normals) {
			n = normals[i]
		}
		mesh.Interleaved = append(mesh.Interleaved, p[0], p[1], p[2], uv[0], uv[1], n[0], n[1], n[2])
	}

	if prim.Indices == nil {
		for i := range positions {
			mesh.Indices = append(mesh.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		mesh.Indices = append(mesh.Indices, base+idx)
	}
	return nil
}

// gltfMaterial maps a metallic-roughness material onto the Phong parameters
// the object shader uses.
func gltfMaterial(doc *gltf.Document, dir string, index int) *Material {
	gm := doc.Materials[index]
	mat := DefaultMaterial
	mat.Name = gm.Name

	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return &mat
	}
	cf := pbr.BaseColorFactorOrDefault()
	mat.DiffuseColor = [3]float32{float32(cf[0]), float32(cf[1]), float32(cf[2])}
	mat.Alpha = float32(cf[3])

	roughness := float32(pbr.RoughnessFactorOrDefault())
	metallic := float32(pbr.MetallicFactorOrDefault())
	mat.Shininess = (1.0-roughness)*(1.0-roughness)*128.0 + 1.0
	s := metallic*0.7 + 0.1
	mat.SpecularColor = [3]float32{s, s, s}

	if pbr.BaseColorTexture != nil {
		img, err := gltfImage(doc, dir, pbr.BaseColorTexture.Index)
		if err != nil {
			logger.Log.Warn("glTF base color texture unavailable", zap.String("material", gm.Name), zap.Error(err))
		} else {
			mat.Texture = img
		}
	}
	return &mat
}

func gltfImage(doc *gltf.Document, dir string, textureIndex int) (*image.RGBA, error) {
	if textureIndex >= len(doc.Textures) || doc.Textures[textureIndex].Source == nil {
		return nil, fmt.Errorf("texture %d has no image", textureIndex)
	}
	img := doc.Images[*doc.Textures[textureIndex].Source]

	switch {
	case img.BufferView != nil:
		raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, err
		}
		return DecodeImage(bytes.NewReader(raw))
	case img.URI != "" && !img.IsEmbeddedResource():
		return LoadImage(filepath.Join(dir, img.URI))
	default:
		raw, err := img.MarshalData()
		if err != nil {
			return nil, err
		}
		return DecodeImage(bytes.NewReader(raw))
	}
}

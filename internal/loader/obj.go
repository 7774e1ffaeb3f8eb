package loader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Seascape/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// LoadOBJ parses a Wavefront OBJ file and its first referenced material.
// Every distinct v/vt/vn triplet becomes one interleaved vertex.
func LoadOBJ(filename string, recalculateNormals bool) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		positions     []float32
		textureCoords []float32
		normals       []float32
		faces         []FaceVertex
		materials     map[string]*Material
		material      *Material
	)

	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "v":
			vertex, err := parseVertex(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if len(vertex) < 3 {
				return nil, fmt.Errorf("line %d: vertex needs 3 components, got %d", lineNo, len(vertex))
			}
			positions = append(positions, vertex[:3]...)
		case "vn":
			normal, err := parseVertex(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if len(normal) < 3 {
				return nil, fmt.Errorf("line %d: normal needs 3 components, got %d", lineNo, len(normal))
			}
			normals = append(normals, normal[:3]...)
		case "vt":
			texCoord, err := parseTextureCoordinate(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			for len(texCoord) < 2 {
				texCoord = append(texCoord, 0)
			}
			textureCoords = append(textureCoords, texCoord[0], texCoord[1])
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			faceVertices, err := parseFace(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			faces = append(faces, faceVertices...)
		case "mtllib":
			if len(parts) < 2 {
				continue
			}
			mtlPath := filepath.Join(filepath.Dir(filename), parts[1])
			materials, err = LoadMaterials(mtlPath)
			if err != nil {
				logger.Log.Warn("Material library unavailable", zap.String("path", mtlPath), zap.Error(err))
			}
		case "usemtl":
			// Meshes carry a single material; the first one used wins.
			if len(parts) >= 2 && material == nil {
				if m, ok := materials[parts[1]]; ok {
					material = m
				} else {
					logger.Log.Debug("Material not found", zap.String("material", parts[1]))
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	mesh := &MeshData{
		Name:       strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		SourcePath: filename,
		Material:   material,
	}
	if err := unifyIndices(mesh, positions, textureCoords, normals, faces); err != nil {
		return nil, err
	}
	if recalculateNormals || len(normals) == 0 {
		RecalculateNormals(mesh.Interleaved, mesh.Indices)
	}
	return mesh, nil
}

// unifyIndices converts separate v/vt/vn indices into one index buffer.
func unifyIndices(mesh *MeshData, positions, textureCoords, normals []float32, faces []FaceVertex) error {
	type vertexKey struct{ v, vt, vn int32 }

	vertexMap := make(map[vertexKey]uint32, len(faces))
	mesh.Interleaved = make([]float32, 0, len(faces)*FloatsPerVertex)
	mesh.Indices = make([]uint32, 0, len(faces))

	for _, fv := range faces {
		key := vertexKey{fv.VertexIdx, fv.TexCoordIdx, fv.NormalIdx}
		if idx, ok := vertexMap[key]; ok {
			mesh.Indices = append(mesh.Indices, idx)
			continue
		}
		if fv.VertexIdx < 0 || int(fv.VertexIdx)*3+2 >= len(positions) {
			return fmt.Errorf("vertex index %d out of range (%d vertices)", fv.VertexIdx+1, len(positions)/3)
		}

		idx := uint32(len(mesh.Interleaved) / FloatsPerVertex)
		vertexMap[key] = idx

		p := fv.VertexIdx * 3
		mesh.Interleaved = append(mesh.Interleaved, positions[p], positions[p+1], positions[p+2])

		if fv.TexCoordIdx >= 0 && int(fv.TexCoordIdx)*2+1 < len(textureCoords) {
			t := fv.TexCoordIdx * 2
			mesh.Interleaved = append(mesh.Interleaved, textureCoords[t], textureCoords[t+1])
		} else {
			mesh.Interleaved = append(mesh.Interleaved, 0, 0)
		}

		if fv.NormalIdx >= 0 && int(fv.NormalIdx)*3+2 < len(normals) {
			n := fv.NormalIdx * 3
			mesh.Interleaved = append(mesh.Interleaved, normals[n], normals[n+1], normals[n+2])
		} else {
			mesh.Interleaved = append(mesh.Interleaved, 0, 1, 0)
		}

		mesh.Indices = append(mesh.Indices, idx)
	}
	return nil
}

func parseVertex(parts []string) ([]float32, error) {
	vertex := make([]float32, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex value %q: %w", part, err)
		}
		vertex = append(vertex, float32(val))
	}
	return vertex, nil
}

func parseTextureCoordinate(parts []string) ([]float32, error) {
	texCoord := make([]float32, 0, len(parts))
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid texture coordinate value %q: %w", part, err)
		}
		texCoord = append(texCoord, float32(val))
	}
	return texCoord, nil
}

// parseFace reads one face and triangulates polygons as a fan from the first
// vertex. Indices are converted from 1-based to 0-based.
func parseFace(parts []string) ([]FaceVertex, error) {
	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")

		vertexIdx, err := strconv.ParseInt(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %q: %w", vals[0], err)
		}

		var texCoordIdx int32 = -1
		if len(vals) > 1 && vals[1] != "" {
			texIdx, err := strconv.ParseInt(vals[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid texture coordinate index %q: %w", vals[1], err)
			}
			texCoordIdx = int32(texIdx - 1)
		}

		var normalIdx int32 = -1
		if len(vals) > 2 && vals[2] != "" {
			normIdx, err := strconv.ParseInt(vals[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid normal index %q: %w", vals[2], err)
			}
			normalIdx = int32(normIdx - 1)
		}

		face = append(face, FaceVertex{
			VertexIdx:   int32(vertexIdx - 1),
			TexCoordIdx: texCoordIdx,
			NormalIdx:   normalIdx,
		})
	}

	if len(face) == 3 {
		return face, nil
	}
	triangulated := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangulated = append(triangulated, face[0], face[i], face[i+1])
	}
	return triangulated, nil
}

// RecalculateNormals overwrites the normals of an interleaved buffer with
// area-weighted face normals.
func RecalculateNormals(interleaved []float32, indices []uint32) {
	vertexCount := len(interleaved) / FloatsPerVertex
	if vertexCount == 0 || len(indices) < 3 {
		return
	}

	accum := make([]mgl32.Vec3, vertexCount)
	position := func(i uint32) mgl32.Vec3 {
		o := int(i) * FloatsPerVertex
		return mgl32.Vec3{interleaved[o], interleaved[o+1], interleaved[o+2]}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= vertexCount || int(i1) >= vertexCount || int(i2) >= vertexCount {
			continue
		}
		v0 := position(i0)
		normal := position(i1).Sub(v0).Cross(position(i2).Sub(v0))
		accum[i0] = accum[i0].Add(normal)
		accum[i1] = accum[i1].Add(normal)
		accum[i2] = accum[i2].Add(normal)
	}

	for v, n := range accum {
		if n.Len() == 0 {
			n = mgl32.Vec3{0, 1, 0}
		} else {
			n = n.Normalize()
		}
		o := v*FloatsPerVertex + 5
		interleaved[o], interleaved[o+1], interleaved[o+2] = n[0], n[1], n[2]
	}
}

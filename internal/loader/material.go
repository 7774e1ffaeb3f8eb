package loader

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"Seascape/internal/logger"

	"go.uber.org/zap"
)

type Material struct {
	Name          string
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Shininess     float32
	Alpha         float32
	// TexturePath is resolved relative to the .mtl file.
	TexturePath string
	Texture     *image.RGBA
}

var DefaultMaterial = Material{
	Name:          "default",
	DiffuseColor:  [3]float32{0.8, 0.8, 0.8},
	SpecularColor: [3]float32{0.5, 0.5, 0.5},
	Shininess:     32,
	Alpha:         1,
}

// LoadMaterials loads material properties from a .mtl file. A missing file
// yields only the default material.
func LoadMaterials(filename string) (map[string]*Material, error) {
	file, err := os.Open(filename)
	if err != nil {
		mat := DefaultMaterial
		return map[string]*Material{"default": &mat}, err
	}
	defer file.Close()

	var current *Material
	materials := make(map[string]*Material)
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				logger.Log.Warn("Malformed material line", zap.String("file", filename), zap.Int("line", lineNo))
				continue
			}
			current = &Material{
				Name:      fields[1],
				Alpha:     1.0,
				Shininess: DefaultMaterial.Shininess,
			}
			materials[fields[1]] = current
			continue
		}
		if current == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if len(fields) == 4 {
				current.DiffuseColor = parseColor(fields[1:])
			}
		case "Ks":
			if len(fields) == 4 {
				current.SpecularColor = parseColor(fields[1:])
			}
		case "Ns":
			if len(fields) == 2 {
				current.Shininess = parseFloat(fields[1])
			}
		case "d":
			if len(fields) == 2 {
				current.Alpha = parseFloat(fields[1])
			}
		case "map_Kd":
			if len(fields) >= 2 {
				// Options may precede the path.
				texturePath := fields[len(fields)-1]
				if !filepath.IsAbs(texturePath) {
					texturePath = filepath.Join(filepath.Dir(filename), texturePath)
				}
				current.TexturePath = texturePath
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return materials, fmt.Errorf("read %s: %w", filename, err)
	}
	return materials, nil
}

func parseColor(fields []string) [3]float32 {
	var color [3]float32
	for i, field := range fields {
		if i > 2 {
			break
		}
		color[i] = parseFloat(field)
	}
	return color
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Debug("Bad float in material", zap.String("value", s), zap.Error(err))
		return 0
	}
	return float32(f)
}

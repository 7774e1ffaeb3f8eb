package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"Seascape/internal/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ShaderLibrary owns every program the pipeline uses. Sources come from the
// built-in set unless dir holds a <name>.vs or <name>.fs override.
type ShaderLibrary struct {
	dev     Device
	dir     string
	shaders map[string]*Shader
}

// LoadShaderLibrary compiles all programs. Every failing program is reported.
func LoadShaderLibrary(dev Device, dir string) (*ShaderLibrary, error) {
	lib := &ShaderLibrary{
		dev:     dev,
		dir:     dir,
		shaders: make(map[string]*Shader, len(builtinShaders)),
	}

	var errs error
	for _, name := range ShaderNames() {
		vs, fsrc, err := lib.sources(name)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		shader, err := NewShader(dev, name, vs, fsrc)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		lib.shaders[name] = shader
	}
	if errs != nil {
		lib.Delete()
		return nil, errs
	}
	return lib, nil
}

// ShaderNames lists the built-in program names in a stable order.
func ShaderNames() []string {
	names := make([]string, 0, len(builtinShaders))
	for name := range builtinShaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named program. The set is fixed, so an unknown name is a
// programming error.
func (l *ShaderLibrary) Get(name string) *Shader {
	shader, ok := l.shaders[name]
	if !ok {
		panic(fmt.Sprintf("renderer: unknown shader %q", name))
	}
	return shader
}

func (l *ShaderLibrary) Dir() string {
	return l.dir
}

func (l *ShaderLibrary) sources(name string) (string, string, error) {
	builtin := builtinShaders[name]
	vs, err := l.override(name+".vs", builtin.vertex)
	if err != nil {
		return "", "", err
	}
	fsrc, err := l.override(name+".fs", builtin.fragment)
	if err != nil {
		return "", "", err
	}
	return vs, fsrc, nil
}

func (l *ShaderLibrary) override(file, fallback string) (string, error) {
	if l.dir == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(filepath.Join(l.dir, file))
	if errors.Is(err, fs.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", file, err)
	}
	return string(data), nil
}

// Reload recompiles one program from its current sources. The old program
// is kept when compilation fails.
func (l *ShaderLibrary) Reload(name string) error {
	shader, ok := l.shaders[name]
	if !ok {
		return fmt.Errorf("unknown shader %q", name)
	}
	vs, fsrc, err := l.sources(name)
	if err != nil {
		return err
	}
	return shader.Reload(vs, fsrc)
}

// ApplyChanges drains pending change notifications without blocking and
// reloads each named program once.
func (l *ShaderLibrary) ApplyChanges(changes <-chan string) int {
	pending := map[string]struct{}{}
	for {
		select {
		case name, ok := <-changes:
			if !ok {
				return l.reloadAll(pending)
			}
			pending[name] = struct{}{}
		default:
			return l.reloadAll(pending)
		}
	}
}

func (l *ShaderLibrary) reloadAll(pending map[string]struct{}) int {
	reloaded := 0
	for name := range pending {
		if err := l.Reload(name); err != nil {
			logger.Log.Error("Shader reload failed, keeping previous program",
				zap.String("shader", name), zap.Error(err))
			continue
		}
		logger.Log.Info("Shader reloaded", zap.String("shader", name))
		reloaded++
	}
	return reloaded
}

func (l *ShaderLibrary) Delete() {
	for _, shader := range l.shaders {
		shader.Delete()
	}
}

// shaderNameForPath maps an override file back to its program name.
func shaderNameForPath(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != ".vs" && ext != ".fs" {
		return "", false
	}
	name := strings.TrimSuffix(base, ext)
	_, ok := builtinShaders[name]
	return name, ok
}

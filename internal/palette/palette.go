package palette

import (
	"slices"
	"sort"
	"sync"

	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// Built-in palette names.
const (
	Default  = "default"
	Contrast = "contrast"
	Mono     = "mono"
)

// Palette is a named layer presentation.
type Palette struct {
	Name        string
	Author      string
	Description string
	Layers      rose.LayerSet
	// Path is the file the palette was loaded from; empty for built-ins.
	Path string
}

// BuiltinNames returns the names of the built-in palettes.
func BuiltinNames() []string {
	return []string{Default, Contrast, Mono}
}

// IsBuiltin reports whether name is a built-in palette.
func IsBuiltin(name string) bool {
	return slices.Contains(BuiltinNames(), name)
}

func builtin(name string) *Palette {
	switch name {
	case Default:
		return &Palette{
			Name:        Default,
			Description: "Blue, magenta and yellow ramps with alpha falling toward the surface",
			Layers:      rose.DefaultLayers(),
		}
	case Contrast:
		layers := rose.DefaultLayers()
		for l := range layers {
			layers[l].Blend = rose.BlendMultiply
		}
		return &Palette{
			Name:        Contrast,
			Description: "Default hues multiplied so overlapping layers darken",
			Layers:      layers,
		}
	case Mono:
		return &Palette{
			Name:        Mono,
			Description: "Grey ramps screened together, for monochrome terminals",
			Layers:      monoLayers(),
		}
	}
	return nil
}

func monoLayers() rose.LayerSet {
	layers := rose.DefaultLayers()
	starts := [rose.NumLayers]int{240, 220, 200}
	alphas := [rose.NumLayers]float64{0.6, 0.5, 0.4}
	for l := range layers {
		for b := range layers[l].Colors {
			v := uint8(starts[l] - 20*b)
			layers[l].Colors[b] = rose.RGBA(v, v, v, alphas[l])
		}
		layers[l].Blend = rose.BlendScreen
	}
	return layers
}

// Registry resolves palette names to palettes. Built-ins are always
// present; custom palettes are added by Discover or Register and may be
// replaced while the registry is in use.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]*Palette
}

// NewRegistry returns a registry holding only the built-ins.
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]*Palette)}
}

// Get returns the palette called name.
func (r *Registry) Get(name string) (*Palette, error) {
	if p := builtin(name); p != nil {
		return p, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.custom[name]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("palette", name).WithCause(errors.ErrPaletteNotFound)
}

// Register adds or replaces a custom palette. Built-in names are reserved.
func (r *Registry) Register(p *Palette) error {
	if IsBuiltin(p.Name) {
		return errors.NewPaletteError("cannot override built-in palette", errors.ErrPaletteInvalid).
			WithPalette(p.Name).
			WithPath(p.Path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[p.Name] = p
	return nil
}

// Unregister removes a custom palette. It reports whether one was removed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.custom[name]; !ok {
		return false
	}
	delete(r.custom, name)
	return true
}

// Names returns the built-in names followed by the custom names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	custom := make([]string, 0, len(r.custom))
	for name := range r.custom {
		custom = append(custom, name)
	}
	r.mu.RUnlock()

	sort.Strings(custom)
	return append(BuiltinNames(), custom...)
}

// IsValid reports whether name resolves to a palette.
func (r *Registry) IsValid(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

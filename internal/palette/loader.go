package palette

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// FileVersion is the only palette file format version understood.
const FileVersion = "1"

// File is a palette definition as stored in YAML.
type File struct {
	// Name is the palette's display name
	Name string `yaml:"name"`
	// Author is the palette creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Description provides details about the palette (optional)
	Description string `yaml:"description,omitempty"`
	// Version is the file format version (currently "1")
	Version string `yaml:"version"`
	// Layers maps layer ids ("850mb", "925mb", "10m") to their presentation.
	// Missing layers and fields inherit from the default palette.
	Layers map[string]LayerFile `yaml:"layers"`
}

// LayerFile is the presentation of one layer in a palette file.
type LayerFile struct {
	Name   string   `yaml:"name,omitempty"`
	Colors []string `yaml:"colors,omitempty"`
	Blend  string   `yaml:"blend,omitempty"`
}

// LoadFile loads and validates a palette file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewPaletteError("reading palette file", err).WithPath(path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewPaletteError("parsing palette file", fmt.Errorf("%w: %v", errors.ErrPaletteInvalid, err)).
			WithPath(path)
	}

	if err := f.Validate(); err != nil {
		return nil, errors.NewPaletteError("invalid palette", err).WithPalette(f.Name).WithPath(path)
	}
	return &f, nil
}

// Validate checks that the file is well-formed.
func (f *File) Validate() error {
	if f.Name == "" {
		return invalid("palette name is required")
	}
	if f.Version == "" {
		return invalid("palette version is required")
	}
	if f.Version != FileVersion {
		return invalid(fmt.Sprintf("unsupported palette version: %s (supported: %s)", f.Version, FileVersion))
	}

	for id, layer := range f.Layers {
		if _, err := rose.ParseLayer(id); err != nil {
			return invalid(fmt.Sprintf("unknown layer '%s' (expected one of %s)", id, strings.Join(rose.LayerIDs(), ", ")))
		}
		if len(layer.Colors) != 0 && len(layer.Colors) != rose.NumSpeedBins {
			return invalid(fmt.Sprintf("layer '%s' has %d colors, want %d", id, len(layer.Colors), rose.NumSpeedBins))
		}
		for i, c := range layer.Colors {
			if _, err := ParseColor(c); err != nil {
				return invalid(fmt.Sprintf("layer '%s' color %d: %v", id, i, err))
			}
		}
		if layer.Blend != "" && !rose.BlendMode(layer.Blend).Valid() {
			return invalid(fmt.Sprintf("layer '%s' has unknown blend mode '%s'", id, layer.Blend))
		}
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", errors.ErrPaletteInvalid, msg)
}

// ToPalette converts a validated file into a palette named name, filling
// gaps from the default palette.
func (f *File) ToPalette(name string) *Palette {
	p := &Palette{
		Name:        name,
		Author:      f.Author,
		Description: f.Description,
		Layers:      rose.DefaultLayers(),
	}
	if p.Description == "" {
		p.Description = f.Name
	}

	for id, lf := range f.Layers {
		l, err := rose.ParseLayer(id)
		if err != nil {
			continue
		}
		if lf.Name != "" {
			p.Layers[l].Name = lf.Name
		}
		if lf.Blend != "" {
			p.Layers[l].Blend = rose.BlendMode(lf.Blend)
		}
		for i, s := range lf.Colors {
			if i >= rose.NumSpeedBins {
				break
			}
			if c, err := ParseColor(s); err == nil {
				p.Layers[l].Colors[i] = c
			}
		}
	}
	return p
}

// FromPalette converts a palette into its file form for export.
func FromPalette(p *Palette) *File {
	f := &File{
		Name:        p.Name,
		Author:      p.Author,
		Description: p.Description,
		Version:     FileVersion,
		Layers:      make(map[string]LayerFile, rose.NumLayers),
	}
	for _, l := range rose.Layers() {
		spec := p.Layers.Spec(l)
		colors := make([]string, 0, rose.NumSpeedBins)
		for _, c := range spec.Colors {
			colors = append(colors, FormatColor(c))
		}
		f.Layers[l.ID()] = LayerFile{
			Name:   p.Layers.Name(l),
			Colors: colors,
			Blend:  string(p.Layers.Blend(l)),
		}
	}
	return f
}

// dirFn returns the palettes directory. Overridden in tests.
var dirFn = defaultDir

func defaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "windrose", "palettes")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".windrose", "palettes")
	}
	return filepath.Join(home, ".config", "windrose", "palettes")
}

// Dir returns the default directory where custom palettes are stored.
func Dir() string {
	return dirFn()
}

// SetDirFunc replaces the function used by Dir and returns the previous one.
func SetDirFunc(fn func() string) func() string {
	prev := dirFn
	dirFn = fn
	return prev
}

// NameFromPath derives a palette name from its file name.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

func isPaletteFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

// LoadPath loads the palette file at path and registers it under the
// name derived from its file name.
func (r *Registry) LoadPath(path string) (string, error) {
	name := NameFromPath(path)
	if IsBuiltin(name) {
		return name, errors.NewPaletteError("cannot override built-in palette", errors.ErrPaletteInvalid).
			WithPalette(name).
			WithPath(path)
	}

	f, err := LoadFile(path)
	if err != nil {
		return name, err
	}

	p := f.ToPalette(name)
	p.Path = path
	return name, r.Register(p)
}

// Discover loads every palette file in dir. Invalid files are skipped and
// reported in errs; a missing directory is not an error.
func (r *Registry) Discover(dir string) (loaded []string, errs []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{errors.NewPaletteError("reading palettes directory", err).WithPath(dir)}
	}

	for _, entry := range entries {
		if entry.IsDir() || !isPaletteFile(entry.Name()) {
			continue
		}
		name, err := r.LoadPath(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		loaded = append(loaded, name)
	}
	return loaded, errs
}

// Export renders the named palette as a YAML palette file.
func (r *Registry) Export(name string) ([]byte, error) {
	p, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(FromPalette(p))
	if err != nil {
		return nil, errors.NewPaletteError("marshaling palette", err).WithPalette(name)
	}
	return data, nil
}

// Save writes f to dir/name.yaml, creating dir if needed.
func Save(dir, name string, f *File) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewPaletteError("creating palettes directory", err).WithPath(dir)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return "", errors.NewPaletteError("marshaling palette", err).WithPalette(name)
	}

	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.NewPaletteError("writing palette file", err).WithPath(path)
	}
	return path, nil
}

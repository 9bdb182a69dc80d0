package rose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Iron-Ham/windrose/internal/errors"
)

// Layer is one of the atmospheric height layers. The set is closed; layer
// data lives in arrays indexed by Layer.
type Layer int

// Height layers in defined order. The first-defined layer is drawn on top.
const (
	Layer850mb Layer = iota
	Layer925mb
	Layer10m
)

// NumLayers is the number of height layers.
const NumLayers = 3

var layerIDs = [NumLayers]string{"850mb", "925mb", "10m"}

// Layers returns all height layers in defined order.
func Layers() []Layer {
	layers := make([]Layer, NumLayers)
	for i := range layers {
		layers[i] = Layer(i)
	}
	return layers
}

// LayerIDs returns the ids of all layers in defined order.
func LayerIDs() []string {
	return append([]string(nil), layerIDs[:]...)
}

// ParseLayer resolves a layer id such as "925mb" (case-insensitive).
func ParseLayer(id string) (Layer, error) {
	want := strings.ToLower(strings.TrimSpace(id))
	for i, l := range layerIDs {
		if l == want {
			return Layer(i), nil
		}
	}
	return 0, errors.NewNotFoundError("layer", id).WithCause(errors.ErrUnknownLayer)
}

// Valid reports whether l is a known layer.
func (l Layer) Valid() bool {
	return l >= 0 && l < NumLayers
}

// ID returns the short layer id used in config, URLs and palette files.
func (l Layer) ID() string {
	if !l.Valid() {
		return "?"
	}
	return layerIDs[l]
}

// String returns the layer id.
func (l Layer) String() string {
	return l.ID()
}

// MarshalText encodes the layer as its id.
func (l Layer) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, errors.ErrUnknownLayer
	}
	return []byte(l.ID()), nil
}

// UnmarshalText decodes a layer id.
func (l *Layer) UnmarshalText(text []byte) error {
	parsed, err := ParseLayer(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// BlendMode is the compositing rule used when a layer's regions overlap what
// is already drawn.
type BlendMode string

// Supported blend modes.
const (
	BlendNormal   BlendMode = "normal"
	BlendMultiply BlendMode = "multiply"
	BlendScreen   BlendMode = "screen"
	BlendOverlay  BlendMode = "overlay"
	BlendDarken   BlendMode = "darken"
	BlendLighten  BlendMode = "lighten"
)

// BlendModes returns every supported blend mode.
func BlendModes() []BlendMode {
	return []BlendMode{BlendNormal, BlendMultiply, BlendScreen, BlendOverlay, BlendDarken, BlendLighten}
}

// Valid reports whether m is a supported blend mode.
func (m BlendMode) Valid() bool {
	for _, known := range BlendModes() {
		if m == known {
			return true
		}
	}
	return false
}

// Color is a straight (non-premultiplied) RGB color with fractional alpha.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGBA builds a Color.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// String formats the color as CSS "rgba(r, g, b, a)".
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// MarshalText encodes the color in its rgba() form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// LayerSpec is the presentation of one height layer: display name, one fill
// color per speed bin and the blend mode for its regions.
type LayerSpec struct {
	Name   string              `json:"name"`
	Colors [NumSpeedBins]Color `json:"colors"`
	Blend  BlendMode           `json:"blend"`
}

// LayerSet holds the presentation of every layer, indexed by Layer.
type LayerSet [NumLayers]LayerSpec

// Spec returns the presentation of layer l.
func (s LayerSet) Spec(l Layer) LayerSpec {
	return s[l]
}

// Name returns the display name of layer l, falling back to its id.
func (s LayerSet) Name(l Layer) string {
	if s[l].Name == "" {
		return l.ID()
	}
	return s[l].Name
}

// Fill returns the fill color of the (layer, bin) region.
func (s LayerSet) Fill(l Layer, b SpeedBin) Color {
	return s[l].Colors[b]
}

// Blend returns the blend mode of layer l, defaulting to normal.
func (s LayerSet) Blend(l Layer) BlendMode {
	if s[l].Blend == "" {
		return BlendNormal
	}
	return s[l].Blend
}

// DefaultLayers returns the stock layer presentation: a blue ramp for
// 850mb, magenta for 925mb and yellow for the surface layer, with alpha
// decreasing toward the ground.
func DefaultLayers() LayerSet {
	return LayerSet{
		Layer850mb: {
			Name:   "850mb (~1500m)",
			Colors: [NumSpeedBins]Color{
				RGBA(230, 240, 255, 0.6),
				RGBA(200, 220, 255, 0.6),
				RGBA(170, 200, 255, 0.6),
				RGBA(140, 180, 255, 0.6),
				RGBA(110, 160, 255, 0.6),
				RGBA(80, 140, 255, 0.6),
				RGBA(50, 120, 255, 0.6),
				RGBA(20, 100, 255, 0.6),
				RGBA(0, 80, 255, 0.6),
			},
			Blend: BlendNormal,
		},
		Layer925mb: {
			Name:   "925mb (~750m)",
			Colors: [NumSpeedBins]Color{
				RGBA(255, 230, 255, 0.5),
				RGBA(255, 200, 255, 0.5),
				RGBA(255, 170, 255, 0.5),
				RGBA(255, 140, 255, 0.5),
				RGBA(255, 110, 255, 0.5),
				RGBA(255, 80, 255, 0.5),
				RGBA(255, 50, 255, 0.5),
				RGBA(255, 20, 255, 0.5),
				RGBA(255, 0, 255, 0.5),
			},
			Blend: BlendNormal,
		},
		Layer10m: {
			Name:   "10m (Surface)",
			Colors: [NumSpeedBins]Color{
				RGBA(255, 255, 230, 0.4),
				RGBA(255, 255, 200, 0.4),
				RGBA(255, 255, 170, 0.4),
				RGBA(255, 255, 140, 0.4),
				RGBA(255, 255, 110, 0.4),
				RGBA(255, 255, 80, 0.4),
				RGBA(255, 255, 50, 0.4),
				RGBA(255, 255, 20, 0.4),
				RGBA(255, 255, 0, 0.4),
			},
			Blend: BlendNormal,
		},
	}
}

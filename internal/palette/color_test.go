package palette

import (
	"errors"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	roseerrors "github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/rose"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    rose.Color
		wantErr bool
	}{
		{"hex", "#0050FF", rose.RGBA(0, 80, 255, 1), false},
		{"hex lowercase", "#e6f0ff", rose.RGBA(230, 240, 255, 1), false},
		{"hex with alpha", "#FF00FF80", rose.RGBA(255, 0, 255, 0.502), false},
		{"rgba", "rgba(230, 240, 255, 0.6)", rose.RGBA(230, 240, 255, 0.6), false},
		{"rgba compact", "rgba(1,2,3,.5)", rose.RGBA(1, 2, 3, 0.5), false},
		{"rgb", "rgb(10, 20, 30)", rose.RGBA(10, 20, 30, 1), false},
		{"padded", "  #000000 ", rose.RGBA(0, 0, 0, 1), false},
		{"short hex", "#ABC", rose.Color{}, true},
		{"no hash", "0050FF", rose.Color{}, true},
		{"channel overflow", "rgb(256, 0, 0)", rose.Color{}, true},
		{"alpha overflow", "rgba(0, 0, 0, 1.5)", rose.Color{}, true},
		{"rgba without alpha", "rgba(0, 0, 0)", rose.Color{}, true},
		{"rgb with alpha", "rgb(0, 0, 0, 0.5)", rose.Color{}, true},
		{"named", "red", rose.Color{}, true},
		{"empty", "", rose.Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, roseerrors.ErrPaletteInvalid) {
					t.Errorf("error = %v, want ErrPaletteInvalid", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatColor(t *testing.T) {
	if got := FormatColor(rose.RGBA(0, 80, 255, 1)); got != "#0050ff" {
		t.Errorf("FormatColor(opaque) = %q", got)
	}
	if got := FormatColor(rose.RGBA(0, 80, 255, 0.6)); got != "rgba(0, 80, 255, 0.6)" {
		t.Errorf("FormatColor(translucent) = %q", got)
	}

	for _, c := range rose.DefaultLayers()[rose.Layer925mb].Colors {
		back, err := ParseColor(FormatColor(c))
		if err != nil || back != c {
			t.Errorf("round trip of %v = %v, %v", c, back, err)
		}
	}
}

func approx(a, b colorful.Color) bool {
	const eps = 1e-6
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps && math.Abs(a.B-b.B) < eps
}

func TestComposite(t *testing.T) {
	grey := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	white := rose.RGBA(255, 255, 255, 1)
	black := rose.RGBA(0, 0, 0, 1)

	tests := []struct {
		name string
		dst  colorful.Color
		src  rose.Color
		mode rose.BlendMode
		want colorful.Color
	}{
		{"normal opaque", grey, white, rose.BlendNormal, colorful.Color{R: 1, G: 1, B: 1}},
		{"normal half", colorful.Color{}, rose.RGBA(255, 255, 255, 0.5), rose.BlendNormal, colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
		{"transparent", grey, rose.RGBA(255, 0, 0, 0), rose.BlendNormal, grey},
		{"multiply white", grey, white, rose.BlendMultiply, grey},
		{"multiply black", grey, black, rose.BlendMultiply, colorful.Color{}},
		{"screen black", grey, black, rose.BlendScreen, grey},
		{"screen white", grey, white, rose.BlendScreen, colorful.Color{R: 1, G: 1, B: 1}},
		{"darken", grey, white, rose.BlendDarken, grey},
		{"lighten", grey, black, rose.BlendLighten, grey},
		{"overlay dark backdrop", colorful.Color{R: 0.25, G: 0.25, B: 0.25}, white, rose.BlendOverlay, colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
		{"overlay light backdrop", colorful.Color{R: 0.75, G: 0.75, B: 0.75}, black, rose.BlendOverlay, colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Composite(tt.dst, tt.src, tt.mode)
			if !approx(got, tt.want) {
				t.Errorf("Composite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromColorful(t *testing.T) {
	got := FromColorful(colorful.Color{R: 1.2, G: 0.5, B: -0.1})
	if got.R != 255 || got.B != 0 || got.A != 1 {
		t.Errorf("FromColorful() = %v, want clamped opaque color", got)
	}
}

func TestBlendOver(t *testing.T) {
	grey := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	src := rose.RGBA(255, 255, 255, 0.4)

	if got := BlendOver(grey, src, rose.BlendNormal); got != src {
		t.Errorf("normal should pass through, got %v", got)
	}
	got := BlendOver(grey, src, rose.BlendMultiply)
	if got.R != 128 || got.G != 128 || got.B != 128 || got.A != 0.4 {
		t.Errorf("BlendOver(multiply) = %v, want grey at 0.4", got)
	}
}

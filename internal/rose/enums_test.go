package rose

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	roseerrors "github.com/Iron-Ham/windrose/internal/errors"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"N", North, false},
		{"ne", NorthEast, false},
		{" sw ", SouthWest, false},
		{"NW", NorthWest, false},
		{"NNE", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v", tt.in, err)
			}
			if tt.wantErr {
				if !errors.Is(err, roseerrors.ErrUnknownDirection) {
					t.Errorf("error = %v, want ErrUnknownDirection", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDirectionNavigation(t *testing.T) {
	if North.Next() != NorthEast || NorthWest.Next() != North {
		t.Error("Next() should wrap clockwise")
	}
	if North.Prev() != NorthWest || East.Prev() != NorthEast {
		t.Error("Prev() should wrap counter-clockwise")
	}
	if math.Abs(East.Angle()-math.Pi/2) > 1e-9 {
		t.Errorf("East.Angle() = %v, want pi/2", East.Angle())
	}
	if Direction(-1).String() != "?" {
		t.Error("invalid direction should print as ?")
	}
}

func TestParseLayerAndBin(t *testing.T) {
	if l, err := ParseLayer("925MB"); err != nil || l != Layer925mb {
		t.Errorf("ParseLayer(925MB) = %v, %v", l, err)
	}
	if _, err := ParseLayer("500mb"); !errors.Is(err, roseerrors.ErrUnknownLayer) {
		t.Errorf("ParseLayer(500mb) error = %v", err)
	}
	if b, err := ParseSpeedBin("16-18"); err != nil || b != SpeedBin(8) {
		t.Errorf("ParseSpeedBin(16-18) = %v, %v", b, err)
	}
	if _, err := ParseSpeedBin("18-20"); !errors.Is(err, roseerrors.ErrUnknownSpeedBin) {
		t.Errorf("ParseSpeedBin(18-20) error = %v", err)
	}
	if got := SpeedBin(2).String(); got != "4-6 km/h" {
		t.Errorf("SpeedBin(2).String() = %q", got)
	}
}

func TestTextRoundTrip(t *testing.T) {
	type doc struct {
		Direction Direction `json:"direction"`
		Layer     Layer     `json:"layer"`
		Speed     SpeedBin  `json:"speed"`
	}
	in := doc{Direction: SouthEast, Layer: Layer10m, Speed: SpeedBin(4)}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"direction":"SE","layer":"10m","speed":"8-10"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var out doc
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestLayerSetDefaults(t *testing.T) {
	var empty LayerSet
	if empty.Name(Layer925mb) != "925mb" {
		t.Errorf("Name() fallback = %q", empty.Name(Layer925mb))
	}
	if empty.Blend(Layer10m) != BlendNormal {
		t.Errorf("Blend() fallback = %q", empty.Blend(Layer10m))
	}

	layers := DefaultLayers()
	if got := layers.Fill(Layer850mb, 8).String(); got != "rgba(0, 80, 255, 0.6)" {
		t.Errorf("850mb top color = %s", got)
	}
	for _, m := range BlendModes() {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if BlendMode("dodge").Valid() {
		t.Error("dodge should not be a valid blend mode")
	}
}

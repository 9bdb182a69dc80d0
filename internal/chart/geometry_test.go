package chart

import (
	"math"
	"testing"
	"time"

	"github.com/Iron-Ham/windrose/internal/rose"
)

// uniformDataset gives every direction the same totals: 2 for 850mb,
// nothing for 925mb and 4 for the surface layer.
func uniformDataset(t *testing.T) *rose.Dataset {
	t.Helper()

	var raw rose.RawMagnitudes
	for _, d := range rose.Directions() {
		raw[d][rose.Layer850mb][0] = 2
		raw[d][rose.Layer10m][0] = 1
		raw[d][rose.Layer10m][3] = 3
	}
	ds, err := rose.FromRaw(raw, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}
	return ds
}

func TestNearestDirection(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rose.Direction
	}{
		{0, -1, rose.North},
		{1, -1, rose.NorthEast},
		{1, 0, rose.East},
		{1, 1, rose.SouthEast},
		{0, 1, rose.South},
		{-1, 1, rose.SouthWest},
		{-1, 0, rose.West},
		{-1, -1, rose.NorthWest},
		{-0.1, -1, rose.North},
		{0.3, -1, rose.North},
	}

	for _, tt := range tests {
		if got := NearestDirection(tt.dx, tt.dy); got != tt.want {
			t.Errorf("NearestDirection(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestPolar(t *testing.T) {
	p := Polar(10, 10, 5, rose.East.Angle())
	if math.Abs(p.X-15) > 1e-9 || math.Abs(p.Y-10) > 1e-9 {
		t.Errorf("Polar(east) = %+v, want (15, 10)", p)
	}
	p = Polar(10, 10, 5, rose.North.Angle())
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Errorf("Polar(north) = %+v, want (10, 5)", p)
	}
}

func TestPolygonContains(t *testing.T) {
	square := Polygon{{0, 0}, {4, 0}, {4, 4}, {0, 4}}

	tests := []struct {
		p    Point
		want bool
	}{
		{Point{2, 2}, true},
		{Point{0.5, 3.5}, true},
		{Point{5, 2}, false},
		{Point{-1, -1}, false},
	}
	for _, tt := range tests {
		if got := square.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	var radii [rose.NumDirections]float64
	if !RegionPolygon(radii, 0, 0, 1).Empty() {
		t.Error("all-zero radii should give an empty polygon")
	}
	if Polygon(nil).Contains(Point{}) {
		t.Error("nil polygon contains nothing")
	}
}

func TestScale(t *testing.T) {
	d := uniformDataset(t)

	if got := Scale(d, nil); got != 4 {
		t.Errorf("Scale(all) = %v, want 4", got)
	}
	if got := Scale(d, rose.NewVisibility(rose.Layer10m)); got != 2 {
		t.Errorf("Scale(no 10m) = %v, want 2", got)
	}
	if got := Scale(d, rose.NewVisibility(rose.Layer850mb, rose.Layer10m)); got != 1 {
		t.Errorf("Scale(only empty layer) = %v, want 1", got)
	}
	if got := Scale(nil, nil); got != 1 {
		t.Errorf("Scale(nil) = %v, want 1", got)
	}

	regions := rose.Plan(d, nil, rose.DefaultLayers())
	if regionsScale(regions) != Scale(d, nil) {
		t.Error("scale from regions should match the dataset scale")
	}
}

package chart

import (
	"math"

	"github.com/Iron-Ham/windrose/internal/rose"
)

// Point is a position in chart space: x grows east, y grows south.
type Point struct {
	X, Y float64
}

// Polygon is a closed outline.
type Polygon []Point

// RegionPolygon traces radii around the compass, one vertex per direction,
// scaled by unit per value and centered on (cx, cy).
func RegionPolygon(radii [rose.NumDirections]float64, cx, cy, unit float64) Polygon {
	poly := make(Polygon, rose.NumDirections)
	for _, d := range rose.Directions() {
		poly[d] = Polar(cx, cy, radii[d]*unit, d.Angle())
	}
	return poly
}

// Polar returns the point at distance r and bearing angle (clockwise from
// north) from (cx, cy).
func Polar(cx, cy, r, angle float64) Point {
	return Point{X: cx + r*math.Sin(angle), Y: cy - r*math.Cos(angle)}
}

// Contains reports whether p lies inside the polygon (even-odd rule).
func (poly Polygon) Contains(p Point) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Empty reports whether every vertex sits on the same point.
func (poly Polygon) Empty() bool {
	if len(poly) == 0 {
		return true
	}
	for _, p := range poly[1:] {
		if p != poly[0] {
			return false
		}
	}
	return true
}

// NearestDirection returns the compass point closest to the bearing of
// the offset (dx, dy) from the center.
func NearestDirection(dx, dy float64) rose.Direction {
	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	step := 2 * math.Pi / rose.NumDirections
	return rose.Direction(int(math.Round(angle/step)) % rose.NumDirections)
}

// Scale returns the outermost value the chart must fit: the largest
// cumulative value among visible layers, at least 1.
func Scale(d *rose.Dataset, vis *rose.Visibility) float64 {
	if d == nil {
		return 1
	}
	return math.Max(1, float64(d.Max(vis)))
}

func regionsScale(regions []rose.Region) float64 {
	outer := 1.0
	for _, r := range regions {
		for _, v := range r.Radii {
			outer = math.Max(outer, v)
		}
	}
	return outer
}

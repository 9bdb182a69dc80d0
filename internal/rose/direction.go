package rose

import (
	"math"
	"strings"

	"github.com/Iron-Ham/windrose/internal/errors"
)

// Direction is one of the 8 compass points. Its ordinal defines the angular
// position on the chart: North at 0, then clockwise in 45 degree steps.
type Direction int

// Compass points in chart order.
const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// NumDirections is the number of compass points on the rose.
const NumDirections = 8

var directionLabels = [NumDirections]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Directions returns all compass points in chart order.
func Directions() []Direction {
	dirs := make([]Direction, NumDirections)
	for i := range dirs {
		dirs[i] = Direction(i)
	}
	return dirs
}

// ParseDirection resolves a compass label ("n", "NE", ...) case-insensitively.
func ParseDirection(label string) (Direction, error) {
	want := strings.ToUpper(strings.TrimSpace(label))
	for i, l := range directionLabels {
		if l == want {
			return Direction(i), nil
		}
	}
	return 0, errors.NewNotFoundError("direction", label).WithCause(errors.ErrUnknownDirection)
}

// Valid reports whether d is one of the 8 compass points.
func (d Direction) Valid() bool {
	return d >= 0 && d < NumDirections
}

// String returns the compass label, e.g. "NE".
func (d Direction) String() string {
	if !d.Valid() {
		return "?"
	}
	return directionLabels[d]
}

// Angle returns the direction's bearing in radians, clockwise from north.
func (d Direction) Angle() float64 {
	return float64(d) * 2 * math.Pi / NumDirections
}

// Next returns the next direction clockwise.
func (d Direction) Next() Direction {
	return (d + 1) % NumDirections
}

// Prev returns the next direction counter-clockwise.
func (d Direction) Prev() Direction {
	return (d + NumDirections - 1) % NumDirections
}

// MarshalText encodes the direction as its compass label.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errors.ErrUnknownDirection
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a compass label.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

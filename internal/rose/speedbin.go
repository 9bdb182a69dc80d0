package rose

import "github.com/Iron-Ham/windrose/internal/errors"

// SpeedBin is one of the 9 labelled wind speed ranges. Bins stack from slow
// to fast, so a higher index always draws over every lower one.
type SpeedBin int

// NumSpeedBins is the number of speed ranges per (direction, layer).
const NumSpeedBins = 9

// SpeedUnit is the unit the bin labels are expressed in.
const SpeedUnit = "km/h"

var speedBinLabels = [NumSpeedBins]string{
	"0-2", "2-4", "4-6", "6-8", "8-10", "10-12", "12-14", "14-16", "16-18",
}

// SpeedBins returns all bins in stacking order.
func SpeedBins() []SpeedBin {
	bins := make([]SpeedBin, NumSpeedBins)
	for i := range bins {
		bins[i] = SpeedBin(i)
	}
	return bins
}

// ParseSpeedBin resolves a bin label such as "4-6".
func ParseSpeedBin(label string) (SpeedBin, error) {
	for i, l := range speedBinLabels {
		if l == label {
			return SpeedBin(i), nil
		}
	}
	return 0, errors.NewNotFoundError("speed bin", label).WithCause(errors.ErrUnknownSpeedBin)
}

// Valid reports whether b is one of the 9 bins.
func (b SpeedBin) Valid() bool {
	return b >= 0 && b < NumSpeedBins
}

// Label returns the range label without unit, e.g. "4-6".
func (b SpeedBin) Label() string {
	if !b.Valid() {
		return "?"
	}
	return speedBinLabels[b]
}

// String returns the label with its unit, e.g. "4-6 km/h".
func (b SpeedBin) String() string {
	return b.Label() + " " + SpeedUnit
}

// MarshalText encodes the bin as its label.
func (b SpeedBin) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, errors.ErrUnknownSpeedBin
	}
	return []byte(b.Label()), nil
}

// UnmarshalText decodes a bin label.
func (b *SpeedBin) UnmarshalText(text []byte) error {
	parsed, err := ParseSpeedBin(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

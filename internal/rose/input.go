package rose

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Iron-Ham/windrose/internal/errors"
)

// ReadRaw decodes raw magnitudes keyed by direction label then layer id:
//
//	{"N": {"10m": [1, 0, 2, 0, 0, 0, 0, 0, 0]}, "NE": {...}}
//
// Missing directions or layers are all-zero. Unknown keys, short or long
// arrays, and negative values are rejected.
func ReadRaw(r io.Reader) (RawMagnitudes, error) {
	var raw RawMagnitudes

	var doc map[string]map[string][]int
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return raw, errors.NewValidationError("malformed magnitude document").WithCause(err)
	}

	for dirLabel, layers := range doc {
		dir, err := ParseDirection(dirLabel)
		if err != nil {
			return raw, err
		}
		for id, values := range layers {
			l, err := ParseLayer(id)
			if err != nil {
				return raw, err
			}
			if len(values) != NumSpeedBins {
				return raw, errors.NewValidationError(
					fmt.Sprintf("expected %d speed bins, got %d", NumSpeedBins, len(values))).
					WithField(dir.String() + "." + l.ID())
			}
			for b, v := range values {
				if v < 0 {
					return raw, errors.NewValidationError("magnitudes must be non-negative").
						WithField(fmt.Sprintf("%s.%s[%d]", dir, l.ID(), b)).
						WithValue(v)
				}
				raw[dir][l][b] = v
			}
		}
	}
	return raw, nil
}

// LoadDataset reads raw magnitudes from r and accumulates them.
func LoadDataset(r io.Reader, at time.Time) (*Dataset, error) {
	raw, err := ReadRaw(r)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw, at)
}

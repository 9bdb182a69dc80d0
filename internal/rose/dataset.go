package rose

import (
	"encoding/json"
	"math"
	"time"

	"github.com/Iron-Ham/windrose/internal/errors"
)

// Row holds the cumulative sequences of every layer for one direction.
type Row struct {
	Direction Direction
	Layers    [NumLayers]Sequence
}

// Sequence returns the cumulative sequence of layer l.
func (r Row) Sequence(l Layer) Sequence {
	return r.Layers[l]
}

// MarshalJSON encodes the row keyed by layer id:
//
//	{"direction":"N","850mb":[{"speed":"0-2","value":3},...],...}
func (r Row) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, NumLayers+1)
	out["direction"] = r.Direction
	for _, l := range Layers() {
		out[l.ID()] = r.Layers[l]
	}
	return json.Marshal(out)
}

// RawMagnitudes are per-bin magnitudes indexed [direction][layer][bin].
type RawMagnitudes [NumDirections][NumLayers][NumSpeedBins]int

// Dataset is the immutable chart data: exactly one row per direction in
// compass order. Accessors return copies.
type Dataset struct {
	rows        [NumDirections]Row
	generatedAt time.Time
	seed        int64
}

// FromRaw builds a dataset from explicit raw magnitudes. Negative
// magnitudes and sequences whose running sum overflows int are rejected.
func FromRaw(raw RawMagnitudes, generatedAt time.Time) (*Dataset, error) {
	d := &Dataset{generatedAt: generatedAt}
	for _, dir := range Directions() {
		d.rows[dir].Direction = dir
		for _, l := range Layers() {
			sum := 0
			for _, v := range raw[dir][l] {
				if v < 0 {
					return nil, errors.NewDatasetError("negative magnitude", errors.ErrInvalidInput).
						WithDirection(dir.String()).
						WithLayer(l.ID())
				}
				if v > math.MaxInt-sum {
					return nil, errors.NewDatasetError("cumulative magnitude overflows", errors.ErrInvalidInput).
						WithDirection(dir.String()).
						WithLayer(l.ID())
				}
				sum += v
			}
			d.rows[dir].Layers[l] = Accumulate(raw[dir][l])
		}
	}
	return d, nil
}

// Rows returns a copy of all rows in compass order.
func (d *Dataset) Rows() []Row {
	rows := make([]Row, NumDirections)
	copy(rows, d.rows[:])
	return rows
}

// Row returns the row for dir. ok is false for an invalid direction.
func (d *Dataset) Row(dir Direction) (Row, bool) {
	if d == nil || !dir.Valid() {
		return Row{}, false
	}
	return d.rows[dir], true
}

// GeneratedAt returns when the dataset was produced.
func (d *Dataset) GeneratedAt() time.Time {
	return d.generatedAt
}

// Seed returns the seed the dataset was drawn with, or 0 for datasets
// built from explicit magnitudes.
func (d *Dataset) Seed() int64 {
	return d.seed
}

// Raw decodes the dataset back into per-bin magnitudes.
func (d *Dataset) Raw() RawMagnitudes {
	var raw RawMagnitudes
	for _, row := range d.rows {
		for _, l := range Layers() {
			raw[row.Direction][l] = row.Layers[l].Decode()
		}
	}
	return raw
}

// Max returns the largest cumulative value among visible layers, i.e. the
// outermost radius the chart must accommodate.
func (d *Dataset) Max(vis *Visibility) int {
	outer := 0
	for _, row := range d.rows {
		for _, l := range vis.Visible() {
			if t := row.Layers[l].Total(); t > outer {
				outer = t
			}
		}
	}
	return outer
}

// Validate checks every row for the cumulative invariants.
func (d *Dataset) Validate() error {
	for i, row := range d.rows {
		if row.Direction != Direction(i) {
			return errors.NewDatasetError("row out of compass order", errors.ErrUnknownDirection).
				WithDirection(row.Direction.String())
		}
		for _, l := range Layers() {
			if err := row.Layers[l].Validate(); err != nil {
				return errors.NewDatasetError("invalid sequence", err).
					WithDirection(row.Direction.String()).
					WithLayer(l.ID())
			}
		}
	}
	return nil
}

// MarshalJSON encodes the dataset with its generation metadata.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		GeneratedAt time.Time `json:"generated_at"`
		Seed        int64     `json:"seed,omitempty"`
		Rows        []Row     `json:"rows"`
	}{
		GeneratedAt: d.generatedAt,
		Seed:        d.seed,
		Rows:        d.rows[:],
	})
}

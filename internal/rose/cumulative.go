package rose

import (
	"fmt"

	"github.com/Iron-Ham/windrose/internal/errors"
)

// Cell is one stored observation: a speed bin and the cumulative value of
// every bin up to and including it.
type Cell struct {
	Speed SpeedBin `json:"speed"`
	Value int      `json:"value"`
}

// Sequence is the cumulative form of the 9 raw magnitudes of one
// (direction, layer) pair, in speed-bin order.
type Sequence [NumSpeedBins]Cell

// Accumulate converts raw per-bin magnitudes into their running sum.
func Accumulate(raw [NumSpeedBins]int) Sequence {
	var seq Sequence
	sum := 0
	for i, v := range raw {
		sum += v
		seq[i] = Cell{Speed: SpeedBin(i), Value: sum}
	}
	return seq
}

// Decode recovers the raw magnitudes by backward differencing.
func (s Sequence) Decode() [NumSpeedBins]int {
	var raw [NumSpeedBins]int
	prev := 0
	for i, c := range s {
		raw[i] = c.Value - prev
		prev = c.Value
	}
	return raw
}

// Values returns the cumulative values in bin order.
func (s Sequence) Values() [NumSpeedBins]int {
	var out [NumSpeedBins]int
	for i, c := range s {
		out[i] = c.Value
	}
	return out
}

// Total returns the cumulative value of the last bin.
func (s Sequence) Total() int {
	return s[NumSpeedBins-1].Value
}

// Validate checks that every cell carries its own bin label and that values
// never decrease, so that every decoded magnitude is non-negative.
func (s Sequence) Validate() error {
	prev := 0
	for i, c := range s {
		if c.Speed != SpeedBin(i) {
			return errors.NewDatasetError(
				fmt.Sprintf("cell %d labelled %s", i, c.Speed.Label()), errors.ErrUnknownSpeedBin)
		}
		if c.Value < prev {
			return errors.NewDatasetError(
				fmt.Sprintf("bin %s drops from %d to %d", c.Speed.Label(), prev, c.Value), errors.ErrCorruptSequence)
		}
		prev = c.Value
	}
	return nil
}

package rose

import (
	"fmt"
	"math/rand/v2"

	"github.com/jonboulle/clockwork"

	"github.com/Iron-Ham/windrose/internal/errors"
)

// Default draw range for synthetic magnitudes: [0, 10).
const (
	DefaultMinMagnitude = 0
	DefaultMaxMagnitude = 10
)

// MaxMagnitudeLimit bounds the synthetic draw range so that nine draws
// always sum without overflowing int.
const MaxMagnitudeLimit = 1_000_000

// SynthOptions configures a Synthesizer.
type SynthOptions struct {
	// Seed makes the draw reproducible. Zero picks a random seed.
	Seed int64
	// Min is the inclusive lower bound of each raw magnitude.
	Min int
	// Max is the exclusive upper bound of each raw magnitude.
	Max int
	// Clock stamps generated datasets. Defaults to the real clock.
	Clock clockwork.Clock
}

// DefaultSynthOptions returns a random-seeded [0, 10) configuration.
func DefaultSynthOptions() SynthOptions {
	return SynthOptions{Min: DefaultMinMagnitude, Max: DefaultMaxMagnitude}
}

// Synthesizer draws demo datasets of independent uniform magnitudes.
type Synthesizer struct {
	rng   *rand.Rand
	seed  int64
	min   int
	max   int
	clock clockwork.Clock
}

// NewSynthesizer validates the draw range and seeds the generator.
func NewSynthesizer(opts SynthOptions) (*Synthesizer, error) {
	if opts.Min < 0 || opts.Max <= opts.Min {
		return nil, errors.NewValidationError(
			fmt.Sprintf("magnitude range [%d, %d) is empty or negative", opts.Min, opts.Max)).
			WithField("data.max_magnitude").
			WithValue(opts.Max).
			WithCause(errors.ErrInvalidRange)
	}
	if opts.Max > MaxMagnitudeLimit {
		return nil, errors.NewValidationError(
			fmt.Sprintf("magnitude upper bound %d exceeds %d", opts.Max, MaxMagnitudeLimit)).
			WithField("data.max_magnitude").
			WithValue(opts.Max).
			WithCause(errors.ErrInvalidRange)
	}

	seed := opts.Seed
	for seed == 0 {
		seed = rand.Int64()
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Synthesizer{
		rng:   rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		seed:  seed,
		min:   opts.Min,
		max:   opts.Max,
		clock: clock,
	}, nil
}

// Seed returns the effective seed, useful for reproducing a draw.
func (s *Synthesizer) Seed() int64 {
	return s.seed
}

// Generate draws one dataset: for every (direction, layer) pair, 9
// independent magnitudes in [min, max), stored cumulatively.
func (s *Synthesizer) Generate() *Dataset {
	var raw RawMagnitudes
	for dir := range raw {
		for l := range raw[dir] {
			for b := range raw[dir][l] {
				raw[dir][l][b] = s.min + s.rng.IntN(s.max-s.min)
			}
		}
	}

	// Draws are never negative, so FromRaw cannot fail here.
	d, _ := FromRaw(raw, s.clock.Now())
	d.seed = s.seed
	return d
}

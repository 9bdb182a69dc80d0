package rose

import (
	"errors"
	"testing"

	roseerrors "github.com/Iron-Ham/windrose/internal/errors"
)

func TestAccumulate(t *testing.T) {
	tests := []struct {
		name string
		raw  [NumSpeedBins]int
		want [NumSpeedBins]int
	}{
		{
			name: "sparse",
			raw:  [NumSpeedBins]int{1, 0, 2, 0, 0, 0, 0, 0, 0},
			want: [NumSpeedBins]int{1, 1, 3, 3, 3, 3, 3, 3, 3},
		},
		{
			name: "all zero",
			raw:  [NumSpeedBins]int{},
			want: [NumSpeedBins]int{},
		},
		{
			name: "dense",
			raw:  [NumSpeedBins]int{9, 8, 7, 6, 5, 4, 3, 2, 1},
			want: [NumSpeedBins]int{9, 17, 24, 30, 35, 39, 42, 44, 45},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Accumulate(tt.raw)
			if got := seq.Values(); got != tt.want {
				t.Errorf("Values() = %v, want %v", got, tt.want)
			}
			for i, c := range seq {
				if c.Speed != SpeedBin(i) {
					t.Errorf("cell %d labelled %v", i, c.Speed)
				}
			}
			if got := seq.Decode(); got != tt.raw {
				t.Errorf("Decode() = %v, want %v", got, tt.raw)
			}
			if err := seq.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if seq.Total() != tt.want[NumSpeedBins-1] {
				t.Errorf("Total() = %d, want %d", seq.Total(), tt.want[NumSpeedBins-1])
			}
		})
	}
}

func TestSequenceValidate(t *testing.T) {
	t.Run("decreasing value", func(t *testing.T) {
		seq := Accumulate([NumSpeedBins]int{3, 1})
		seq[4].Value = 2

		err := seq.Validate()
		if !errors.Is(err, roseerrors.ErrCorruptSequence) {
			t.Fatalf("Validate() = %v, want ErrCorruptSequence", err)
		}
	})

	t.Run("mislabelled cell", func(t *testing.T) {
		seq := Accumulate([NumSpeedBins]int{})
		seq[2].Speed = SpeedBin(5)

		err := seq.Validate()
		if !errors.Is(err, roseerrors.ErrUnknownSpeedBin) {
			t.Fatalf("Validate() = %v, want ErrUnknownSpeedBin", err)
		}
	})
}

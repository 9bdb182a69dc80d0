package rose

import (
	"strings"
	"testing"
)

func scenarioDataset(t *testing.T) *Dataset {
	t.Helper()

	var raw RawMagnitudes
	raw[North][Layer10m] = [NumSpeedBins]int{1, 0, 2, 0, 0, 0, 0, 0, 0}
	raw[North][Layer850mb] = [NumSpeedBins]int{0, 0, 0, 0, 0, 0, 0, 0, 4}
	d, err := FromRaw(raw, testTime)
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}
	return d
}

func TestDecodeScenario(t *testing.T) {
	d := scenarioDataset(t)
	row, _ := d.Row(North)

	want := [NumSpeedBins]int{1, 1, 3, 3, 3, 3, 3, 3, 3}
	if got := row.Sequence(Layer10m).Values(); got != want {
		t.Fatalf("cumulative = %v, want %v", got, want)
	}

	tip := Decode(&row, NewVisibility(Layer850mb), DefaultLayers())
	if tip == nil {
		t.Fatal("Decode() returned nil")
	}
	if tip.Direction != North {
		t.Errorf("Direction = %v, want N", tip.Direction)
	}
	// 925mb is all zero, so only the 10m block survives.
	if len(tip.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1: %+v", len(tip.Blocks), tip.Blocks)
	}

	block := tip.Blocks[0]
	if block.Layer != Layer10m || block.Name != "10m (Surface)" {
		t.Errorf("block = %v %q", block.Layer, block.Name)
	}
	var got []string
	for _, e := range block.Entries {
		got = append(got, e.String())
	}
	if strings.Join(got, "|") != "0-2 km/h: 1|4-6 km/h: 2" {
		t.Errorf("entries = %v", got)
	}
}

func TestDecodeLayerOrder(t *testing.T) {
	d := scenarioDataset(t)
	row, _ := d.Row(North)

	tip := Decode(&row, nil, DefaultLayers())
	if len(tip.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(tip.Blocks))
	}
	if tip.Blocks[0].Layer != Layer850mb || tip.Blocks[1].Layer != Layer10m {
		t.Errorf("block order = %v, %v", tip.Blocks[0].Layer, tip.Blocks[1].Layer)
	}
	if e := tip.Blocks[0].Entries; len(e) != 1 || e[0].Speed != SpeedBin(8) || e[0].Value != 4 {
		t.Errorf("850mb entries = %+v", e)
	}
}

func TestDecodeRendersNothing(t *testing.T) {
	d := scenarioDataset(t)
	north, _ := d.Row(North)
	east, _ := d.Row(East)

	tests := []struct {
		name string
		row  *Row
		vis  *Visibility
	}{
		{"absent payload", nil, NewVisibility()},
		{"all layers hidden", &north, NewVisibility(Layer850mb, Layer925mb, Layer10m)},
		{"only empty layers visible", &north, NewVisibility(Layer850mb, Layer10m)},
		{"all-zero direction", &east, NewVisibility()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tip := Decode(tt.row, tt.vis, DefaultLayers())
			if tip != nil {
				t.Errorf("Decode() = %+v, want nil", tip)
			}
			if !tip.Empty() || tip.String() != "" {
				t.Error("nil tooltip should be empty")
			}
		})
	}
}

func TestTooltipLines(t *testing.T) {
	d := scenarioDataset(t)
	row, _ := d.Row(North)

	got := Decode(&row, NewVisibility(Layer850mb), DefaultLayers()).String()
	want := "N\n10m (Surface)\n  0-2 km/h: 1\n  4-6 km/h: 2"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

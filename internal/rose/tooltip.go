package rose

import (
	"fmt"
	"strings"
)

// Entry is one decoded (speed bin, raw magnitude) pair.
type Entry struct {
	Speed SpeedBin `json:"speed"`
	Value int      `json:"value"`
}

// String formats the entry as "0-2 km/h: 1".
func (e Entry) String() string {
	return fmt.Sprintf("%s: %d", e.Speed, e.Value)
}

// Block is the decoded breakdown of one layer.
type Block struct {
	Layer   Layer   `json:"layer"`
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// Tooltip is the decoded breakdown of one direction across visible layers.
type Tooltip struct {
	Direction Direction `json:"direction"`
	Blocks    []Block   `json:"blocks"`
}

// Decode reconstructs per-bin magnitudes for every visible layer of row.
// Zero-valued bins are dropped and layers left empty are omitted. It
// returns nil when row is nil, no layer is visible, or nothing survives.
func Decode(row *Row, vis *Visibility, layers LayerSet) *Tooltip {
	if row == nil {
		return nil
	}

	tip := &Tooltip{Direction: row.Direction}
	for _, l := range vis.Visible() {
		var entries []Entry
		for i, v := range row.Layers[l].Decode() {
			if v == 0 {
				continue
			}
			entries = append(entries, Entry{Speed: SpeedBin(i), Value: v})
		}
		if len(entries) == 0 {
			continue
		}
		tip.Blocks = append(tip.Blocks, Block{Layer: l, Name: layers.Name(l), Entries: entries})
	}

	if len(tip.Blocks) == 0 {
		return nil
	}
	return tip
}

// Empty reports whether there is nothing to show.
func (t *Tooltip) Empty() bool {
	return t == nil || len(t.Blocks) == 0
}

// Lines renders the tooltip as text lines: the direction, then each layer
// name followed by its indented entries.
func (t *Tooltip) Lines() []string {
	if t.Empty() {
		return nil
	}
	lines := []string{t.Direction.String()}
	for _, b := range t.Blocks {
		lines = append(lines, b.Name)
		for _, e := range b.Entries {
			lines = append(lines, "  "+e.String())
		}
	}
	return lines
}

func (t *Tooltip) String() string {
	return strings.Join(t.Lines(), "\n")
}

package rose

import "fmt"

// Region is one filled radial area: a (layer, speed bin) pair traced at
// the bin's cumulative value in every direction.
type Region struct {
	Layer Layer    `json:"layer"`
	Bin   SpeedBin `json:"bin"`
	// Name is the series label, e.g. "4-6 km/h".
	Name  string    `json:"name"`
	Fill  Color     `json:"fill"`
	Blend BlendMode `json:"blend"`
	// Radii holds the cumulative value per direction, in compass order.
	Radii [NumDirections]float64 `json:"radii"`
}

// HoverFunc returns the decoded tooltip for a direction, or nil when
// there is nothing to show.
type HoverFunc func(Direction) *Tooltip

// Renderer is the drawing collaborator a chart is composed onto.
type Renderer interface {
	AddRegion(Region)
	SetHoverHandler(HoverFunc)
}

// Plan returns the filled regions for the visible layers. Layers are
// emitted in reverse of their defined order so the first-defined layer
// paints last and ends up on top; bins follow index order within a layer.
func Plan(d *Dataset, vis *Visibility, layers LayerSet) []Region {
	if d == nil {
		return nil
	}

	visible := vis.Visible()
	regions := make([]Region, 0, len(visible)*NumSpeedBins)
	for i := len(visible) - 1; i >= 0; i-- {
		l := visible[i]
		for _, b := range SpeedBins() {
			r := Region{
				Layer: l,
				Bin:   b,
				Name:  fmt.Sprintf("%s %s", b.Label(), SpeedUnit),
				Fill:  layers.Fill(l, b),
				Blend: layers.Blend(l),
			}
			for _, row := range d.rows {
				r.Radii[row.Direction] = float64(row.Layers[l][b].Value)
			}
			regions = append(regions, r)
		}
	}
	return regions
}

// Draw adds the planned regions to r and installs a hover handler that
// decodes against vis at hover time, so later toggles are observed
// without redrawing. It returns the number of regions added.
func Draw(r Renderer, d *Dataset, vis *Visibility, layers LayerSet) int {
	regions := Plan(d, vis, layers)
	for _, region := range regions {
		r.AddRegion(region)
	}
	r.SetHoverHandler(func(dir Direction) *Tooltip {
		row, ok := d.Row(dir)
		if !ok {
			return nil
		}
		return Decode(&row, vis, layers)
	})
	return len(regions)
}

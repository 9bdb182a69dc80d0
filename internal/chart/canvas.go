package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// Canvas radius bounds, in terminal rows.
const (
	MinRadius     = 4
	MaxRadius     = 40
	DefaultRadius = 11
)

const (
	marginX = 3
	marginY = 1

	ringCount     = 4
	ringTolerance = 0.4
	spokeWidth    = 0.35
)

// Plain-text shading of the topmost layer covering a cell.
var layerShade = [rose.NumLayers]rune{'▓', '▒', '░'}

// Cell is one rasterized terminal cell.
type Cell struct {
	Fill    colorful.Color
	Covered bool
	// Layer is the topmost layer covering the cell, valid when Covered.
	Layer rose.Layer
	Ring  bool
	// Char overrides the cell content (labels and the hover spoke).
	Char rune
	Fg   colorful.Color
}

// Canvas rasterizes regions onto a grid of terminal cells. Cells are
// treated as twice as tall as they are wide, so the rose spans 4r+1
// columns and 2r+1 rows plus a margin for the compass labels.
type Canvas struct {
	radius int

	Background colorful.Color
	Grid       colorful.Color
	Label      colorful.Color
	Accent     colorful.Color

	regions  []rose.Region
	hover    rose.HoverFunc
	hovered  rose.Direction
	hovering bool
}

// NewCanvas returns an empty canvas. radius is clamped to
// [MinRadius, MaxRadius]; zero selects DefaultRadius.
func NewCanvas(radius int) *Canvas {
	if radius == 0 {
		radius = DefaultRadius
	}
	return &Canvas{
		radius:     max(MinRadius, min(MaxRadius, radius)),
		Background: mustHex("#111827"),
		Grid:       mustHex("#4B5563"),
		Label:      mustHex("#F9FAFB"),
		Accent:     mustHex("#F59E0B"),
	}
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// AddRegion queues a region; later regions paint over earlier ones.
func (c *Canvas) AddRegion(r rose.Region) {
	c.regions = append(c.regions, r)
}

// SetHoverHandler installs the tooltip source for hovered directions.
func (c *Canvas) SetHoverHandler(fn rose.HoverFunc) {
	c.hover = fn
}

// Reset drops all regions and the hover handler. The hovered direction
// is kept so a redraw does not lose the cursor.
func (c *Canvas) Reset() {
	c.regions = nil
	c.hover = nil
}

// Regions returns the queued regions in paint order.
func (c *Canvas) Regions() []rose.Region {
	return append([]rose.Region(nil), c.regions...)
}

// Radius returns the rose radius in rows.
func (c *Canvas) Radius() int { return c.radius }

// Width returns the canvas width in columns.
func (c *Canvas) Width() int { return 4*c.radius + 1 + 2*marginX }

// Height returns the canvas height in rows.
func (c *Canvas) Height() int { return 2*c.radius + 1 + 2*marginY }

func (c *Canvas) center() (int, int) {
	return marginX + 2*c.radius, marginY + c.radius
}

// offset converts a cell position to chart space in row units.
func (c *Canvas) offset(col, row int) Point {
	cx, cy := c.center()
	return Point{X: float64(col-cx) / 2, Y: float64(row - cy)}
}

// Hover marks dir as hovered.
func (c *Canvas) Hover(dir rose.Direction) {
	if dir.Valid() {
		c.hovered, c.hovering = dir, true
	}
}

// ClearHover removes the hover mark.
func (c *Canvas) ClearHover() {
	c.hovering = false
}

// Hovered returns the hovered direction, if any.
func (c *Canvas) Hovered() (rose.Direction, bool) {
	return c.hovered, c.hovering
}

// Tooltip returns the decoded tooltip of the hovered direction, or nil.
func (c *Canvas) Tooltip() *rose.Tooltip {
	if !c.hovering || c.hover == nil {
		return nil
	}
	return c.hover(c.hovered)
}

// TooltipFor returns the decoded tooltip of dir without hovering it.
func (c *Canvas) TooltipFor(dir rose.Direction) *rose.Tooltip {
	if c.hover == nil {
		return nil
	}
	return c.hover(dir)
}

// DirectionAt maps a cell to the compass sector under it. Cells at the
// center or outside the labelled ring map to nothing.
func (c *Canvas) DirectionAt(col, row int) (rose.Direction, bool) {
	p := c.offset(col, row)
	dist := math.Hypot(p.X, p.Y)
	if dist == 0 || dist > float64(c.radius)+1.5 {
		return 0, false
	}
	return NearestDirection(p.X, p.Y), true
}

// Cells rasterizes the canvas.
func (c *Canvas) Cells() [][]Cell {
	unit := float64(c.radius) / regionsScale(c.regions)
	polys := make([]Polygon, len(c.regions))
	for i, r := range c.regions {
		polys[i] = RegionPolygon(r.Radii, 0, 0, unit)
	}

	rings := make([]float64, ringCount)
	for k := range rings {
		rings[k] = math.Round(float64((k+1)*c.radius) / ringCount)
	}

	grid := make([][]Cell, c.Height())
	for row := range grid {
		grid[row] = make([]Cell, c.Width())
		for col := range grid[row] {
			p := c.offset(col, row)
			cell := Cell{Fill: c.Background}

			for i, poly := range polys {
				if poly.Empty() || !poly.Contains(p) {
					continue
				}
				r := c.regions[i]
				cell.Fill = palette.Composite(cell.Fill, r.Fill, r.Blend)
				cell.Covered = true
				cell.Layer = r.Layer
			}

			dist := math.Hypot(p.X, p.Y)
			for _, ring := range rings {
				if math.Abs(dist-ring) < ringTolerance {
					cell.Ring = true
					cell.Fg = c.Grid
				}
			}

			if c.hovering && c.onSpoke(p) {
				cell.Char = spokeRune(c.hovered)
				cell.Fg = c.Accent
			}
			grid[row][col] = cell
		}
	}

	c.drawLabels(grid)
	return grid
}

func (c *Canvas) onSpoke(p Point) bool {
	a := c.hovered.Angle()
	ux, uy := math.Sin(a), -math.Cos(a)
	along := p.X*ux + p.Y*uy
	perp := math.Abs(p.X*uy - p.Y*ux)
	return along > 0 && along <= float64(c.radius) && perp < spokeWidth
}

func spokeRune(d rose.Direction) rune {
	switch d {
	case rose.North, rose.South:
		return '│'
	case rose.East, rose.West:
		return '─'
	case rose.NorthEast, rose.SouthWest:
		return '╱'
	default:
		return '╲'
	}
}

func (c *Canvas) drawLabels(grid [][]Cell) {
	cx, cy := c.center()
	for _, d := range rose.Directions() {
		a := d.Angle()
		sin, cos := math.Sin(a), math.Cos(a)
		col := cx + int(math.Round(sin*float64(2*c.radius+2)))
		row := cy - int(math.Round(cos*float64(c.radius+1)))

		label := []rune(d.String())
		start := col - len(label)/2
		switch {
		case sin > 0.1:
			start = col
		case sin < -0.1:
			start = col - len(label) + 1
		}
		start = max(0, min(c.Width()-len(label), start))
		row = max(0, min(c.Height()-1, row))

		fg := c.Label
		if c.hovering && d == c.hovered {
			fg = c.Accent
		}
		for i, ch := range label {
			grid[row][start+i].Char = ch
			grid[row][start+i].Fg = fg
		}
	}
}

func (cell Cell) glyph() rune {
	switch {
	case cell.Char != 0:
		return cell.Char
	case cell.Ring:
		return '·'
	default:
		return ' '
	}
}

// Render draws the canvas with lipgloss background and foreground colors.
// Adjacent cells with identical colors share one styled run.
func (c *Canvas) Render() string {
	grid := c.Cells()
	lines := make([]string, len(grid))

	for row, cells := range grid {
		var b strings.Builder
		var run strings.Builder
		var style lipgloss.Style
		key := ""

		flush := func() {
			if run.Len() > 0 {
				b.WriteString(style.Render(run.String()))
				run.Reset()
			}
		}

		for _, cell := range cells {
			k := cell.Fill.Hex() + cell.Fg.Hex()
			if k != key {
				flush()
				key = k
				style = lipgloss.NewStyle().
					Background(lipgloss.Color(cell.Fill.Hex())).
					Foreground(lipgloss.Color(cell.Fg.Hex()))
			}
			run.WriteRune(cell.glyph())
		}
		flush()
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// RenderPlain draws the canvas without escape codes. Covered cells show a
// shade per topmost layer.
func (c *Canvas) RenderPlain() string {
	grid := c.Cells()
	lines := make([]string, len(grid))
	for row, cells := range grid {
		var b strings.Builder
		for _, cell := range cells {
			switch {
			case cell.Char != 0:
				b.WriteRune(cell.Char)
			case cell.Covered:
				b.WriteRune(layerShade[cell.Layer])
			default:
				b.WriteRune(cell.glyph())
			}
		}
		lines[row] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

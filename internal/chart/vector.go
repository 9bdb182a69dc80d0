package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
)

const (
	labelMargin   = 28
	labelFontSize = 11
	ringFontSize  = 8
	ringSegments  = 72
)

// Vector draws the rose as a PNG or SVG image through go-chart. Regions
// are filled with plain alpha; other blend modes are approximated by
// blending each fill against the background first.
type Vector struct {
	Background colorful.Color
	Grid       colorful.Color
	Label      colorful.Color

	regions []rose.Region
	hover   rose.HoverFunc
}

// NewVector returns an empty vector chart on a white background.
func NewVector() *Vector {
	return &Vector{
		Background: mustHex("#FFFFFF"),
		Grid:       mustHex("#CCCCCC"),
		Label:      mustHex("#333333"),
	}
}

// AddRegion queues a region; later regions paint over earlier ones.
func (v *Vector) AddRegion(r rose.Region) {
	v.regions = append(v.regions, r)
}

// SetHoverHandler stores the tooltip source. Static images have no hover,
// but the handler backs Tooltip for callers that annotate the image.
func (v *Vector) SetHoverHandler(fn rose.HoverFunc) {
	v.hover = fn
}

// Tooltip returns the decoded tooltip of dir, or nil.
func (v *Vector) Tooltip(dir rose.Direction) *rose.Tooltip {
	if v.hover == nil {
		return nil
	}
	return v.hover(dir)
}

func toDrawing(c rose.Color) drawing.Color {
	a := math.Round(math.Max(0, math.Min(1, c.A)) * 255)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}

func opaque(c colorful.Color) drawing.Color {
	return toDrawing(palette.FromColorful(c))
}

func tracePath(r chart.Renderer, poly Polygon) {
	for i, p := range poly {
		x, y := int(math.Round(p.X)), int(math.Round(p.Y))
		if i == 0 {
			r.MoveTo(x, y)
			continue
		}
		r.LineTo(x, y)
	}
	r.Close()
}

func circle(cx, cy, radius float64) Polygon {
	poly := make(Polygon, ringSegments)
	for i := range poly {
		poly[i] = Polar(cx, cy, radius, float64(i)*2*math.Pi/ringSegments)
	}
	return poly
}

// Render writes the chart as format (FormatPNG or FormatSVG).
func (v *Vector) Render(w io.Writer, format Format, width, height int) error {
	newRenderer := chart.SVG
	switch format {
	case FormatSVG:
	case FormatPNG:
		newRenderer = chart.PNG
	default:
		return unsupported(string(format))
	}

	if width <= 0 || height <= 0 {
		return errors.NewRenderError(fmt.Sprintf("invalid size %dx%d", width, height), errors.ErrInvalidInput).
			WithFormat(string(format)).
			WithUserFacing(true)
	}

	r, err := newRenderer(width, height)
	if err != nil {
		return errors.NewRenderError("creating renderer", err).WithFormat(string(format))
	}
	font, fontErr := chart.GetDefaultFont()
	if fontErr == nil {
		r.SetFont(font)
	}

	r.SetFillColor(opaque(v.Background))
	tracePath(r, Polygon{{0, 0}, {float64(width), 0}, {float64(width), float64(height)}, {0, float64(height)}})
	r.Fill()

	cx, cy := float64(width)/2, float64(height)/2
	outer := math.Min(cx, cy) - labelMargin
	if outer < 8 {
		outer = math.Min(cx, cy) * 0.8
	}
	scale := regionsScale(v.regions)
	unit := outer / scale

	for _, region := range v.regions {
		poly := RegionPolygon(region.Radii, cx, cy, unit)
		if poly.Empty() {
			continue
		}
		r.ResetStyle()
		r.SetFillColor(toDrawing(palette.BlendOver(v.Background, region.Fill, region.Blend)))
		r.SetStrokeWidth(0)
		tracePath(r, poly)
		r.Fill()
	}

	r.ResetStyle()
	r.SetStrokeColor(opaque(v.Grid))
	r.SetStrokeWidth(1)
	for k := 1; k <= ringCount; k++ {
		tracePath(r, circle(cx, cy, outer*float64(k)/ringCount))
		r.Stroke()
	}
	for _, d := range rose.Directions() {
		end := Polar(cx, cy, outer, d.Angle())
		r.MoveTo(int(cx), int(cy))
		r.LineTo(int(math.Round(end.X)), int(math.Round(end.Y)))
		r.Stroke()
	}

	if fontErr == nil {
		v.drawLabels(r, cx, cy, outer, scale)
	}

	if err := r.Save(w); err != nil {
		return errors.NewRenderError("writing image", err).WithFormat(string(format))
	}
	return nil
}

func (v *Vector) drawLabels(r chart.Renderer, cx, cy, outer, scale float64) {
	r.ResetStyle()
	r.SetFontColor(opaque(v.Label))

	r.SetFontSize(labelFontSize)
	for _, d := range rose.Directions() {
		p := Polar(cx, cy, outer+labelMargin/2, d.Angle())
		label := d.String()
		box := r.MeasureText(label)
		r.Text(label, int(p.X)-box.Width()/2, int(p.Y)+box.Height()/2)
	}

	r.SetFontSize(ringFontSize)
	offset := math.Pi / rose.NumDirections
	for k := 1; k <= ringCount; k++ {
		value := scale * float64(k) / ringCount
		p := Polar(cx, cy, outer*float64(k)/ringCount, offset)
		r.Text(strconv.FormatFloat(value, 'f', -1, 64), int(p.X)+2, int(p.Y))
	}
}

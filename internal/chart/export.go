package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// Format names an export back end.
type Format string

// Export formats.
const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Formats returns every export format name.
func Formats() []string {
	return []string{string(FormatSVG), string(FormatPNG), string(FormatJSON), string(FormatText)}
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case FormatSVG, FormatPNG, FormatJSON, FormatText:
		return f, nil
	}
	return "", unsupported(name)
}

func unsupported(name string) error {
	return errors.NewRenderError(
		fmt.Sprintf("unknown format %q (expected one of %s)", name, strings.Join(Formats(), ", ")),
		errors.ErrUnsupportedFormat).
		WithFormat(name).
		WithUserFacing(true)
}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ExportOptions sizes the exported chart.
type ExportOptions struct {
	Format Format
	// Width and Height are in pixels for PNG and SVG.
	Width  int
	Height int
	// Radius is in rows for the text canvas.
	Radius int
}

// Document is the JSON export: the dataset plus what the chart shows.
type Document struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Seed        int64           `json:"seed,omitempty"`
	Scale       float64         `json:"scale"`
	Visible     []rose.Layer    `json:"visible"`
	Rows        []rose.Row      `json:"rows"`
	Regions     []rose.Region   `json:"regions"`
	Tooltips    []*rose.Tooltip `json:"tooltips"`
}

// NewDocument assembles the JSON export of d under vis.
func NewDocument(d *rose.Dataset, vis *rose.Visibility, layers rose.LayerSet) *Document {
	doc := &Document{
		GeneratedAt: d.GeneratedAt(),
		Seed:        d.Seed(),
		Scale:       Scale(d, vis),
		Visible:     vis.Visible(),
		Rows:        d.Rows(),
		Regions:     rose.Plan(d, vis, layers),
		Tooltips:    Tooltips(d, vis, layers),
	}
	if doc.Visible == nil {
		doc.Visible = []rose.Layer{}
	}
	return doc
}

// Tooltips decodes every direction in compass order, skipping those with
// nothing to show.
func Tooltips(d *rose.Dataset, vis *rose.Visibility, layers rose.LayerSet) []*rose.Tooltip {
	tips := []*rose.Tooltip{}
	for _, row := range d.Rows() {
		if tip := rose.Decode(&row, vis, layers); tip != nil {
			tips = append(tips, tip)
		}
	}
	return tips
}

// Export renders d under vis in opts.Format and writes it to w.
func Export(w io.Writer, d *rose.Dataset, vis *rose.Visibility, layers rose.LayerSet, opts ExportOptions) error {
	switch opts.Format {
	case FormatSVG, FormatPNG:
		v := NewVector()
		rose.Draw(v, d, vis, layers)
		return v.Render(w, opts.Format, opts.Width, opts.Height)

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewDocument(d, vis, layers)); err != nil {
			return errors.NewRenderError("encoding document", err).WithFormat(string(opts.Format))
		}
		return nil

	case FormatText:
		c := NewCanvas(opts.Radius)
		rose.Draw(c, d, vis, layers)

		var b strings.Builder
		b.WriteString(c.RenderPlain())
		b.WriteString("\n")
		for _, tip := range Tooltips(d, vis, layers) {
			b.WriteString("\n")
			b.WriteString(tip.String())
			b.WriteString("\n")
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return errors.NewRenderError("writing text", err).WithFormat(string(opts.Format))
		}
		return nil
	}
	return unsupported(string(opts.Format))
}

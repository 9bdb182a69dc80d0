package server

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
)

var funcMap = template.FuncMap{
	"css": func(c rose.Color) template.CSS {
		return template.CSS(c.String())
	},
	"hex": func(c rose.Color) template.CSS {
		return template.CSS(palette.FormatColor(rose.RGBA(c.R, c.G, c.B, 1)))
	},
}

var indexTmpl = template.Must(template.New("index").Funcs(funcMap).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>windrose</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #333; }
.layout { display: flex; gap: 2em; align-items: flex-start; }
.toggle { display: block; margin: .4em 0; text-decoration: none; color: inherit; }
.toggle.hidden { opacity: .35; }
.swatch { display: inline-block; width: 12px; height: 12px; margin-right: 1px; }
table { border-collapse: collapse; }
td, th { padding: 2px 8px; text-align: left; vertical-align: top; }
</style>
</head>
<body>
<h1>Wind rose</h1>
<p>Generated {{.GeneratedAt}}{{if .Seed}} (seed {{.Seed}}){{end}}, palette <b>{{.Palette}}</b>.</p>
<div class="layout">
<img src="{{.ImageURL}}" width="{{.Width}}" height="{{.Height}}" alt="wind rose">
<div>
<h2>Layers</h2>
{{range .Layers}}<a class="toggle{{if not .Visible}} hidden{{end}}" href="{{.ToggleURL}}">
{{range .Colors}}<span class="swatch" style="background: {{hex .}}"></span>{{end}} {{.Name}}</a>
{{end}}
<h2>Breakdown</h2>
{{if .Tooltips}}<table>
{{range .Tooltips}}<tr><th>{{.Direction}}</th><td>{{range .Blocks}}<b>{{.Name}}</b><br>{{range .Entries}}{{.}}<br>{{end}}{{end}}</td></tr>
{{end}}</table>{{else}}<p>No layer visible.</p>{{end}}
</div>
</div>
</body>
</html>
`))

type indexLayer struct {
	Name      string
	Colors    [rose.NumSpeedBins]rose.Color
	Visible   bool
	ToggleURL string
}

type indexPage struct {
	GeneratedAt string
	Seed        int64
	Palette     string
	ImageURL    string
	Width       int
	Height      int
	Layers      []indexLayer
	Tooltips    []*rose.Tooltip
}

// query builds the page query for a visibility and palette.
func query(vis *rose.Visibility, paletteName string) string {
	q := url.Values{}
	q.Set("hide", strings.Join(layerIDs(vis.Hidden()), ","))
	if paletteName != "" {
		q.Set("palette", paletteName)
	}
	return q.Encode()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	vis, p, err := s.view(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	page := indexPage{
		GeneratedAt: s.opts.Dataset.GeneratedAt().UTC().Format("2006-01-02 15:04:05 MST"),
		Seed:        s.opts.Dataset.Seed(),
		Palette:     p.Name,
		ImageURL:    "/rose.svg?" + query(vis, p.Name),
		Width:       s.opts.Width,
		Height:      s.opts.Height,
		Tooltips:    chart.Tooltips(s.opts.Dataset, vis, p.Layers),
	}
	for _, l := range rose.Layers() {
		toggled := vis.Clone()
		toggled.Toggle(l)
		page.Layers = append(page.Layers, indexLayer{
			Name:      p.Layers.Name(l),
			Colors:    p.Layers.Spec(l).Colors,
			Visible:   vis.IsVisible(l),
			ToggleURL: "/?" + query(toggled, p.Name),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, page); err != nil {
		s.logger.Error("rendering index", "error", err)
	}
}

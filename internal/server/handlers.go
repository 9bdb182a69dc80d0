package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Iron-Ham/windrose/internal/chart"
	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/palette"
	"github.com/Iron-Ham/windrose/internal/rose"
)

// parseHidden reads ?hide=925mb,10m (repeatable). An empty value shows
// every layer; an absent parameter falls back to def.
func parseHidden(q url.Values, def []rose.Layer) (*rose.Visibility, error) {
	values, ok := q["hide"]
	if !ok {
		return rose.NewVisibility(def...), nil
	}

	var hidden []rose.Layer
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if strings.TrimSpace(id) == "" {
				continue
			}
			l, err := rose.ParseLayer(id)
			if err != nil {
				return nil, errors.NewValidationError(fmt.Sprintf("unknown layer %q", id)).
					WithField("hide").
					WithCause(err)
			}
			hidden = append(hidden, l)
		}
	}
	return rose.NewVisibility(hidden...), nil
}

func parseSize(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < MinImageSize || n > MaxImageSize {
		return 0, errors.NewValidationError(
			fmt.Sprintf("%s must be an integer in [%d, %d]", key, MinImageSize, MaxImageSize)).
			WithField(key).
			WithValue(raw)
	}
	return n, nil
}

func layerIDs(layers []rose.Layer) []string {
	ids := make([]string, len(layers))
	for i, l := range layers {
		ids[i] = l.ID()
	}
	return ids
}

// view resolves the visibility and palette a request asks for.
func (s *Server) view(r *http.Request) (*rose.Visibility, *palette.Palette, error) {
	q := r.URL.Query()

	vis, err := parseHidden(q, s.opts.Hidden)
	if err != nil {
		return nil, nil, err
	}

	name := q.Get("palette")
	if name == "" {
		name = s.opts.Palette
	}
	p, err := s.opts.Registry.Get(name)
	if err != nil {
		return nil, nil, err
	}
	return vis, p, nil
}

func (s *Server) handleRose(format chart.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vis, p, err := s.view(r)
		if err != nil {
			s.writeError(w, err)
			return
		}

		opts := chart.ExportOptions{Format: format, Radius: s.opts.Radius}
		if opts.Width, err = parseSize(r.URL.Query(), "width", s.opts.Width); err != nil {
			s.writeError(w, err)
			return
		}
		if opts.Height, err = parseSize(r.URL.Query(), "height", s.opts.Height); err != nil {
			s.writeError(w, err)
			return
		}

		var buf bytes.Buffer
		start := time.Now()
		err = chart.Export(&buf, s.opts.Dataset, vis, p.Layers, opts)
		s.opts.Metrics.ObserveRender(string(format), time.Since(start), err)
		if err != nil {
			s.writeError(w, err)
			return
		}

		hidden := layerIDs(vis.Hidden())
		s.opts.Metrics.ObserveHidden(hidden...)
		s.logger.Debug("chart rendered",
			"format", string(format),
			"palette", p.Name,
			"hidden", hidden,
			"bytes", buf.Len(),
		)

		w.Header().Set("Content-Type", format.ContentType())
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck // client went away
	}
}

func (s *Server) handleTooltip(w http.ResponseWriter, r *http.Request) {
	dir, err := rose.ParseDirection(r.PathValue("direction"))
	if err != nil {
		s.opts.Metrics.TooltipRequests.WithLabelValues("not_found").Inc()
		s.writeError(w, err)
		return
	}

	vis, p, err := s.view(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	row, _ := s.opts.Dataset.Row(dir)
	tip := rose.Decode(&row, vis, p.Layers)
	if tip == nil {
		s.opts.Metrics.TooltipRequests.WithLabelValues("empty").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.opts.Metrics.TooltipRequests.WithLabelValues("shown").Inc()
	writeJSON(w, http.StatusOK, tip)
}

type paletteInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Builtin     bool   `json:"builtin"`
	Default     bool   `json:"default"`
}

func (s *Server) handlePalettes(w http.ResponseWriter, _ *http.Request) {
	var out []paletteInfo
	for _, name := range s.opts.Registry.Names() {
		p, err := s.opts.Registry.Get(name)
		if err != nil {
			continue
		}
		out = append(out, paletteInfo{
			Name:        name,
			Description: p.Description,
			Builtin:     palette.IsBuiltin(name),
			Default:     name == s.opts.Palette,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

package palette

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Iron-Ham/windrose/internal/errors"
	"github.com/Iron-Ham/windrose/internal/rose"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)
	rgbaRegex     = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*([0-9]*\.?[0-9]+)\s*)?\)$`)
)

// ParseColor parses "#RRGGBB", "#RRGGBBAA", "rgb(r, g, b)" or
// "rgba(r, g, b, a)". Colors without alpha are opaque.
func ParseColor(s string) (rose.Color, error) {
	s = strings.TrimSpace(s)

	if hexColorRegex.MatchString(s) {
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return rose.Color{}, invalidColor(s, err)
		}
		r, g, b := c.RGB255()
		alpha := 1.0
		if len(s) == 9 {
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return rose.Color{}, invalidColor(s, err)
			}
			alpha = math.Round(float64(a)/255*1000) / 1000
		}
		return rose.RGBA(r, g, b, alpha), nil
	}

	m := rgbaRegex.FindStringSubmatch(s)
	if m == nil || (strings.HasPrefix(s, "rgba") != (m[4] != "")) {
		return rose.Color{}, invalidColor(s, nil)
	}

	var channels [3]uint8
	for i := range channels {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return rose.Color{}, invalidColor(s, err)
		}
		channels[i] = uint8(v)
	}

	alpha := 1.0
	if m[4] != "" {
		a, err := strconv.ParseFloat(m[4], 64)
		if err != nil || a > 1 {
			return rose.Color{}, invalidColor(s, err)
		}
		alpha = a
	}
	return rose.RGBA(channels[0], channels[1], channels[2], alpha), nil
}

func invalidColor(s string, cause error) error {
	msg := fmt.Sprintf("invalid color %q (expected #RRGGBB, #RRGGBBAA, rgb() or rgba())", s)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return errors.NewValidationError(msg).WithCause(errors.ErrPaletteInvalid)
}

// FormatColor renders opaque colors as "#rrggbb" and translucent ones in
// rgba() form.
func FormatColor(c rose.Color) string {
	if c.A >= 1 {
		return ToColorful(c).Hex()
	}
	return c.String()
}

// ToColorful drops alpha and converts to a go-colorful color.
func ToColorful(c rose.Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// FromColorful converts back to an opaque rose color.
func FromColorful(c colorful.Color) rose.Color {
	r, g, b := c.Clamped().RGB255()
	return rose.RGBA(r, g, b, 1)
}

// Composite paints src over dst using mode, then mixes the blended result
// into dst by src's alpha.
func Composite(dst colorful.Color, src rose.Color, mode rose.BlendMode) colorful.Color {
	alpha := math.Max(0, math.Min(1, src.A))
	return dst.BlendRgb(blend(dst, ToColorful(src), mode), alpha).Clamped()
}

// BlendOver returns src with its color replaced by the mode blend against
// backdrop, keeping src's alpha. Back ends that only composite with normal
// alpha use it to approximate the other modes.
func BlendOver(backdrop colorful.Color, src rose.Color, mode rose.BlendMode) rose.Color {
	if mode == rose.BlendNormal || mode == "" {
		return src
	}
	c := FromColorful(blend(backdrop, ToColorful(src), mode))
	c.A = src.A
	return c
}

func blend(b, s colorful.Color, mode rose.BlendMode) colorful.Color {
	return colorful.Color{
		R: blendChannel(b.R, s.R, mode),
		G: blendChannel(b.G, s.G, mode),
		B: blendChannel(b.B, s.B, mode),
	}
}

func blendChannel(b, s float64, mode rose.BlendMode) float64 {
	switch mode {
	case rose.BlendMultiply:
		return b * s
	case rose.BlendScreen:
		return b + s - b*s
	case rose.BlendOverlay:
		if b <= 0.5 {
			return 2 * b * s
		}
		return 1 - 2*(1-b)*(1-s)
	case rose.BlendDarken:
		return math.Min(b, s)
	case rose.BlendLighten:
		return math.Max(b, s)
	default:
		return s
	}
}

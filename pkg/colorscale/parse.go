package colorscale

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	rgbMax     = 255.0
	percentMax = 100.0
	degrees    = 360.0
	colorArgs  = 3
)

// cssColors holds the CSS color keywords accepted by ParseColor.
var cssColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"navy":    "#000080",
	"teal":    "#008080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
}

// grafanaColors holds the Grafana palette names that threshold steps commonly use.
var grafanaColors = map[string]string{
	"dark-red":        "#c4162a",
	"semi-dark-red":   "#e02f44",
	"dark-green":      "#37872d",
	"semi-dark-green": "#56a64b",
	"dark-blue":       "#1f60c4",
	"dark-yellow":     "#e0b400",
	"dark-orange":     "#fa6400",
	"dark-purple":     "#8f3bb8",
}

// ParseColor reads a CSS color: #rgb, #rrggbb, #rrggbbaa, rgb(), rgba(),
// hsl(), hsla() or a color keyword. Alpha is ignored.
func ParseColor(css string) (colorful.Color, bool) {
	s := strings.ToLower(strings.TrimSpace(css))
	if s == "" {
		return colorful.Color{}, false
	}

	if hex, ok := cssColors[s]; ok {
		s = hex
	} else if hex, ok := grafanaColors[s]; ok {
		s = hex
	}

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	case strings.HasPrefix(s, "hsl"):
		return parseHSLFunc(s)
	default:
		return colorful.Color{}, false
	}
}

// FormatColor renders c as a lower-case #rrggbb string.
func FormatColor(c colorful.Color) string {
	return c.Clamped().Hex()
}

// Normalize parses css and renders it back as #rrggbb. Unparsable input is
// returned unchanged.
func Normalize(css string) string {
	c, ok := ParseColor(css)
	if !ok {
		return css
	}

	return FormatColor(c)
}

func parseHex(s string) (colorful.Color, bool) {
	const (
		shortLen     = len("#rgb")
		longLen      = len("#rrggbb")
		longAlphaLen = len("#rrggbbaa")
	)

	switch len(s) {
	case shortLen, longLen:
	case longAlphaLen:
		s = s[:longLen]
	default:
		return colorful.Color{}, false
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}

	return c, true
}

// funcArgs splits "name(a, b, c[, d])" or "name(a b c[ / d])" into its
// three color arguments. An alpha argument must be a finite number and is
// otherwise ignored.
func funcArgs(s string) ([]string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, false
	}

	inner := s[open+1 : len(s)-1]

	var args []string

	if strings.Contains(inner, ",") {
		for _, a := range strings.Split(inner, ",") {
			a = strings.TrimSpace(a)
			if a == "" {
				return nil, false
			}

			args = append(args, a)
		}
	} else {
		body, alpha, hasAlpha := strings.Cut(inner, "/")
		args = strings.Fields(body)

		if hasAlpha {
			a := strings.Fields(alpha)
			if len(a) != 1 {
				return nil, false
			}

			args = append(args, a[0])
		}
	}

	switch len(args) {
	case colorArgs:
	case colorArgs + 1:
		if _, ok := parseComponent(args[colorArgs], 1); !ok {
			return nil, false
		}
	default:
		return nil, false
	}

	return args[:colorArgs], true
}

func parseRGBFunc(s string) (colorful.Color, bool) {
	args, ok := funcArgs(s)
	if !ok {
		return colorful.Color{}, false
	}

	var ch [colorArgs]float64

	for i := range ch {
		v, ok := parseComponent(args[i], rgbMax)
		if !ok {
			return colorful.Color{}, false
		}

		ch[i] = v / rgbMax
	}

	return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}.Clamped(), true
}

func parseHSLFunc(s string) (colorful.Color, bool) {
	args, ok := funcArgs(s)
	if !ok {
		return colorful.Color{}, false
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil || math.IsNaN(h) || math.IsInf(h, 0) {
		return colorful.Color{}, false
	}

	sat, okS := parseComponent(args[1], percentMax)
	light, okL := parseComponent(args[2], percentMax)

	if !okS || !okL {
		return colorful.Color{}, false
	}

	h = mod(h, degrees)

	return colorful.Hsl(h, sat/percentMax, light/percentMax).Clamped(), true
}

// parseComponent reads a number or a percentage of scale.
func parseComponent(arg string, scale float64) (float64, bool) {
	if pct, found := strings.CutSuffix(arg, "%"); found {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}

		return v / percentMax * scale, true
	}

	v, err := strconv.ParseFloat(arg, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

func mod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}

	return r
}

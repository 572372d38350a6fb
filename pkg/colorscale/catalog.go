package colorscale

import (
	"math"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Sumatoshi-tech/calheat/pkg/alg/stats"
)

// SchemeKind classifies a named scheme.
type SchemeKind string

const (
	// SchemeSequential ramps run from low to high intensity.
	SchemeSequential SchemeKind = "sequential"
	// SchemeDiverging ramps have a neutral midpoint at t = 0.5.
	SchemeDiverging SchemeKind = "diverging"
)

// DefaultScheme is used when a scheme name is empty or unknown.
const DefaultScheme = "Spectral"

// interpolatePrefix is accepted in front of scheme names.
const interpolatePrefix = "interpolate"

// Scheme is a named continuous color ramp defined by evenly spaced anchors.
type Scheme struct {
	Name    string
	Kind    SchemeKind
	Anchors []string

	once   sync.Once
	colors []colorful.Color
}

// At returns the ramp color at t, clamped to [0, 1]. The anchors are joined
// by a uniform cubic B-spline in RGB, so the curve passes near but not
// through the interior anchors and exactly through both ends.
func (s *Scheme) At(t float64) colorful.Color {
	s.once.Do(s.parse)

	return basisRGB(s.colors, t)
}

func (s *Scheme) parse() {
	s.colors = make([]colorful.Color, 0, len(s.Anchors))

	for _, hex := range s.Anchors {
		c, err := colorful.Hex(hex)
		if err == nil {
			s.colors = append(s.colors, c)
		}
	}
}

var catalog = func() map[string]*Scheme {
	m := make(map[string]*Scheme, len(brewer))
	for i := range brewer {
		m[strings.ToLower(brewer[i].Name)] = &brewer[i]
	}

	return m
}()

// Lookup finds a scheme by name, ignoring case and an optional
// "interpolate" prefix, so both "Blues" and "interpolateBlues" resolve.
func Lookup(name string) (*Scheme, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, strings.ToLower(interpolatePrefix))

	s, ok := catalog[key]

	return s, ok
}

// Schemes returns every scheme in the catalog, diverging schemes first.
func Schemes() []*Scheme {
	out := make([]*Scheme, len(brewer))
	for i := range brewer {
		out[i] = &brewer[i]
	}

	return out
}

// basisRGB evaluates a uniform B-spline through colors at t per channel.
// The end segments extrapolate phantom control points so that t = 0 and
// t = 1 land on the first and last color.
func basisRGB(colors []colorful.Color, t float64) colorful.Color {
	switch len(colors) {
	case 0:
		return colorful.Color{}
	case 1:
		return colors[0]
	}

	r := basisChannel(channel(colors, func(c colorful.Color) float64 { return c.R }), t)
	g := basisChannel(channel(colors, func(c colorful.Color) float64 { return c.G }), t)
	b := basisChannel(channel(colors, func(c colorful.Color) float64 { return c.B }), t)

	return colorful.Color{R: r, G: g, B: b}.Clamped()
}

func channel(colors []colorful.Color, get func(colorful.Color) float64) []float64 {
	out := make([]float64, len(colors))
	for i, c := range colors {
		out[i] = get(c)
	}

	return out
}

func basisChannel(values []float64, t float64) float64 {
	n := len(values) - 1
	t = stats.Clamp(t, 0, 1)

	i := min(int(math.Floor(t*float64(n))), n-1)

	v1, v2 := values[i], values[i+1]

	v0 := 2*v1 - v2
	if i > 0 {
		v0 = values[i-1]
	}

	v3 := 2*v2 - v1
	if i < n-1 {
		v3 = values[i+2]
	}

	return basis((t-float64(i)/float64(n))*float64(n), v0, v1, v2, v3)
}

func basis(t1, v0, v1, v2, v3 float64) float64 {
	t2 := t1 * t1
	t3 := t2 * t1

	return ((1-3*t1+3*t2-t3)*v0 +
		(4-6*t2+3*t3)*v1 +
		(1+3*t1+3*t2-3*t3)*v2 +
		t3*v3) / 6
}

package colorscale

import (
	"slices"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Sumatoshi-tech/calheat/pkg/alg/stats"
)

// DefaultNullColor is the color of values that cannot be placed on a scale.
const DefaultNullColor = "rgb(155, 155, 155)"

// midpoint is the neutral position of a diverging ramp.
const midpoint = 0.5

// Func maps a value to a CSS color. A Func built by Build is total and
// deterministic.
type Func func(value float64) string

// Build returns the color function for p. nullColor is returned verbatim
// for NaN, infinities, degenerate domains and values outside a custom
// palette's stops. A nil or unknown palette colors everything null.
func Build(p Palette, nullColor string) Func {
	switch pal := p.(type) {
	case Sequential:
		return buildSequential(pal, nullColor)
	case Diverging:
		return buildDiverging(pal, nullColor)
	case Custom:
		return buildCustom(pal, nullColor)
	case External:
		return buildExternal(pal, nullColor)
	default:
		return constant(nullColor)
	}
}

func constant(color string) Func {
	return func(float64) string { return color }
}

// resolveScheme falls back to DefaultScheme for unknown names.
func resolveScheme(name string) *Scheme {
	if s, ok := Lookup(name); ok {
		return s
	}

	s, _ := Lookup(DefaultScheme)

	return s
}

func buildSequential(p Sequential, nullColor string) Func {
	scheme := resolveScheme(p.Scheme)

	return func(v float64) string {
		t, ok := stats.Normalize(v, p.Min, p.Max)
		if !ok {
			return nullColor
		}

		t = stats.Clamp(t, 0, 1)
		if p.Invert {
			t = 1 - t
		}

		return FormatColor(scheme.At(t))
	}
}

func buildDiverging(p Diverging, nullColor string) Func {
	scheme := resolveScheme(p.Scheme)

	// The center's position on the normalized domain; it must split it.
	pivot := midpoint

	if p.Center != nil {
		if c, ok := stats.Normalize(*p.Center, p.Min, p.Max); ok && c > 0 && c < 1 {
			pivot = c
		}
	}

	return func(v float64) string {
		u, ok := stats.Normalize(v, p.Min, p.Max)
		if !ok {
			return nullColor
		}

		u = stats.Clamp(u, 0, 1)

		var t float64
		if u <= pivot {
			t = midpoint * u / pivot
		} else {
			t = midpoint + midpoint*(u-pivot)/(1-pivot)
		}

		if p.Invert {
			t = 1 - t
		}

		return FormatColor(scheme.At(t))
	}
}

type stop struct {
	pos   float64
	color colorful.Color
}

// resolveStops converts steps to sorted value positions. Steps with a
// non-finite position or an unreadable color are dropped. Steps sharing a
// position keep their input order.
func resolveStops(p Custom) []stop {
	stops := make([]stop, 0, len(p.Steps))

	for _, step := range p.Steps {
		pos := step.Position
		if p.Mode == Percentage {
			pos = stats.Lerp(p.Min, p.Max, pos/percentMax)
		}

		if !stats.IsFinite(pos) {
			continue
		}

		c, ok := ParseColor(step.Color)
		if !ok {
			continue
		}

		stops = append(stops, stop{pos: pos, color: c})
	}

	slices.SortStableFunc(stops, func(a, b stop) int {
		switch {
		case a.pos < b.pos:
			return -1
		case a.pos > b.pos:
			return 1
		default:
			return 0
		}
	})

	return stops
}

func buildCustom(p Custom, nullColor string) Func {
	if _, ok := stats.Normalize(0, p.Min, p.Max); !ok {
		return constant(nullColor)
	}

	stops := resolveStops(p)
	if len(stops) == 0 {
		return constant(nullColor)
	}

	space, _ := ParseSpace(string(p.Space))
	first, last := stops[0], stops[len(stops)-1]

	return func(v float64) string {
		if !stats.IsFinite(v) || v < first.pos || v > last.pos {
			return nullColor
		}

		// i is the last stop at or below v.
		i := sort.Search(len(stops), func(k int) bool { return stops[k].pos > v }) - 1
		if i >= len(stops)-1 {
			return FormatColor(last.color)
		}

		a, b := stops[i], stops[i+1]
		t := (v - a.pos) / (b.pos - a.pos)

		return FormatColor(Interpolate(a.color, b.color, t, space))
	}
}

func buildExternal(p External, nullColor string) Func {
	if p.Format == nil {
		return constant(nullColor)
	}

	return func(v float64) string {
		if !stats.IsFinite(v) {
			return nullColor
		}

		c := p.Format(v)
		if c == "" {
			return nullColor
		}

		return c
	}
}

// Thresholds returns a stepped formatter for External palettes: a value
// takes the color of the highest step at or below it, or base when it is
// below every step. Step positions are absolute values.
func Thresholds(base string, steps []Step) func(float64) string {
	sorted := slices.Clone(steps)
	slices.SortStableFunc(sorted, func(a, b Step) int {
		switch {
		case a.Position < b.Position:
			return -1
		case a.Position > b.Position:
			return 1
		default:
			return 0
		}
	})

	base = Normalize(base)

	return func(v float64) string {
		color := base

		for _, s := range sorted {
			if v < s.Position {
				break
			}

			color = Normalize(s.Color)
		}

		return color
	}
}

// Sample evaluates fn at n evenly spaced values from lo to hi inclusive.
func Sample(fn Func, lo, hi float64, n int) []string {
	if n < 1 || fn == nil {
		return nil
	}

	if n == 1 {
		return []string{fn(lo)}
	}

	out := make([]string, n)
	for i := range n {
		out[i] = fn(stats.Lerp(lo, hi, float64(i)/float64(n-1)))
	}

	return out
}

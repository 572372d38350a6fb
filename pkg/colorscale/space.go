package colorscale

import (
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Space is the color space in which two stops are interpolated.
type Space string

const (
	// RGB interpolates the sRGB channels linearly.
	RGB Space = "rgb"
	// HSL interpolates hue along the shorter arc, then saturation and lightness.
	HSL Space = "hsl"
	// HCL interpolates CIE LCh(ab) with hue along the shorter arc.
	HCL Space = "hcl"
	// Lab interpolates CIE L*a*b* linearly.
	Lab Space = "lab"
	// Cubehelix interpolates Green's cubehelix coordinates.
	Cubehelix Space = "cubehelix"
)

// DefaultSpace is used when no or an unknown space is configured.
const DefaultSpace = RGB

// achromatic is the saturation below which an HSL hue is meaningless.
const achromatic = 1e-6

// grayTolerance bounds the sRGB channel spread of a gray color. CIE chroma
// cannot be used because go-colorful reports a small nonzero chroma for
// white.
const grayTolerance = 1e-9

// lightnessTolerance bounds how close to black or white a gray must be for
// its chroma to be undefined.
const lightnessTolerance = 1e-4

// ParseSpace resolves a case-insensitive space name. ok is false for
// unknown names; DefaultSpace is returned in that case.
func ParseSpace(name string) (Space, bool) {
	s := Space(strings.ToLower(strings.TrimSpace(name)))

	switch s {
	case RGB, HSL, HCL, Lab, Cubehelix:
		return s, true
	default:
		return DefaultSpace, false
	}
}

// Spaces returns every supported space.
func Spaces() []Space {
	return []Space{RGB, HSL, HCL, Lab, Cubehelix}
}

// Interpolate blends a toward b by t in the given space. t = 0 yields a and
// t = 1 yields b. The result is clamped to the sRGB gamut.
func Interpolate(a, b colorful.Color, t float64, space Space) colorful.Color {
	// Black and white borrow hue and chroma from the other end, so the ends
	// are returned as given.
	switch {
	case t <= 0:
		return a.Clamped()
	case t >= 1:
		return b.Clamped()
	}

	switch space {
	case HSL:
		return blendHsl(a, b, t)
	case HCL:
		return blendHcl(a, b, t)
	case Lab:
		return a.BlendLab(b, t).Clamped()
	case Cubehelix:
		return blendCubehelix(a, b, t)
	case RGB:
		return a.BlendRgb(b, t).Clamped()
	default:
		return a.BlendRgb(b, t).Clamped()
	}
}

// hue interpolates two angles in degrees along the shorter arc. A NaN angle
// takes the other angle, so a gray end keeps the colored end's hue.
func hue(h1, h2, t float64) float64 {
	switch {
	case math.IsNaN(h1) && math.IsNaN(h2):
		return 0
	case math.IsNaN(h1):
		return h2
	case math.IsNaN(h2):
		return h1
	}

	delta := math.Mod(math.Mod(h2-h1, 360)+540, 360) - 180

	return math.Mod(h1+t*delta+360, 360)
}

// linear interpolates two scalars, treating NaN like hue does.
func linear(v1, v2, t float64) float64 {
	switch {
	case math.IsNaN(v1) && math.IsNaN(v2):
		return 0
	case math.IsNaN(v1):
		return v2
	case math.IsNaN(v2):
		return v1
	}

	return v1 + t*(v2-v1)
}

func blendHsl(a, b colorful.Color, t float64) colorful.Color {
	h1, s1, l1 := a.Hsl()
	h2, s2, l2 := b.Hsl()

	if s1 < achromatic {
		h1 = math.NaN()
	}

	if s2 < achromatic {
		h2 = math.NaN()
	}

	return colorful.Hsl(hue(h1, h2, t), linear(s1, s2, t), linear(l1, l2, t)).Clamped()
}

func blendHcl(a, b colorful.Color, t float64) colorful.Color {
	h1, c1, l1 := hcl(a)
	h2, c2, l2 := hcl(b)

	return colorful.Hcl(hue(h1, h2, t), linear(c1, c2, t), linear(l1, l2, t)).Clamped()
}

// hcl returns CIE LCh(ab) coordinates. A gray has an undefined hue, and
// black and white also have an undefined chroma.
func hcl(c colorful.Color) (h, chroma, l float64) {
	h, chroma, l = c.Hcl()

	if !isGray(c) {
		return h, chroma, l
	}

	if l <= lightnessTolerance || l >= 1-lightnessTolerance {
		return math.NaN(), math.NaN(), l
	}

	return math.NaN(), 0, l
}

func isGray(c colorful.Color) bool {
	return math.Abs(c.R-c.G) <= grayTolerance && math.Abs(c.G-c.B) <= grayTolerance
}

// Cubehelix constants from D. A. Green, "A colour scheme for the display of
// astronomical intensity images", 2011.
const (
	chA = -0.14861
	chB = +1.78277
	chC = -0.29227
	chD = -0.90649
	chE = +1.97294

	chED   = chE * chD
	chEB   = chE * chB
	chBCDA = chB*chC - chD*chA
)

// toCubehelix returns hue in degrees, saturation and lightness. Hue and
// saturation are NaN where they are undefined.
func toCubehelix(c colorful.Color) (h, s, l float64) {
	l = (chBCDA*c.B + chED*c.R - chEB*c.G) / (chBCDA + chED - chEB)
	bl := c.B - l
	k := (chE*(c.G-l) - chC*bl) / chD

	s = math.Sqrt(k*k+bl*bl) / (chE * l * (1 - l))
	if math.IsInf(s, 0) {
		s = math.NaN()
	}

	if s == 0 || math.IsNaN(s) {
		return math.NaN(), s, l
	}

	h = math.Atan2(k, bl)*180/math.Pi - 120
	if h < 0 {
		h += 360
	}

	return h, s, l
}

func fromCubehelix(h, s, l float64) colorful.Color {
	if math.IsNaN(h) {
		h = 0
	}

	rad := (h + 120) * math.Pi / 180

	amp := 0.0
	if !math.IsNaN(s) {
		amp = s * l * (1 - l)
	}

	cosh, sinh := math.Cos(rad), math.Sin(rad)

	return colorful.Color{
		R: l + amp*(chA*cosh+chB*sinh),
		G: l + amp*(chC*cosh+chD*sinh),
		B: l + amp*(chE*cosh),
	}.Clamped()
}

func blendCubehelix(a, b colorful.Color, t float64) colorful.Color {
	h1, s1, l1 := toCubehelix(a)
	h2, s2, l2 := toCubehelix(b)

	return fromCubehelix(hue(h1, h2, t), linear(s1, s2, t), linear(l1, l2, t))
}

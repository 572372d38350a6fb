// Package colorscale turns a palette configuration into a total function
// from values to CSS colors. Every scale maps NaN, infinities and values it
// cannot place to the caller's null color instead of failing.
package colorscale

// Kind names a palette strategy.
type Kind string

const (
	// KindSequential normalizes over [Min, Max] into a catalog scheme.
	KindSequential Kind = "sequential"
	// KindDiverging normalizes around a center into a catalog scheme.
	KindDiverging Kind = "diverging"
	// KindCustom interpolates between user supplied color stops.
	KindCustom Kind = "custom"
	// KindExternal defers to a caller supplied formatter.
	KindExternal Kind = "external"
)

// Palette is one of Sequential, Diverging, Custom or External.
type Palette interface {
	Kind() Kind
	sealed()
}

// Sequential applies a named scheme to t = (v - Min) / (Max - Min),
// clamped to [0, 1].
type Sequential struct {
	Scheme string
	Min    float64
	Max    float64
	Invert bool
}

// Kind implements Palette.
func (Sequential) Kind() Kind { return KindSequential }

func (Sequential) sealed() {}

// Diverging applies a named scheme so that Center lands on t = 0.5 and Min
// and Max on the ends. A nil Center is the domain midpoint.
type Diverging struct {
	Scheme string
	Min    float64
	Max    float64
	Center *float64
	Invert bool
}

// Kind implements Palette.
func (Diverging) Kind() Kind { return KindDiverging }

func (Diverging) sealed() {}

// PositionMode selects how step positions are read.
type PositionMode string

const (
	// Absolute positions are values.
	Absolute PositionMode = "absolute"
	// Percentage positions are percentages (0..100) of [Min, Max].
	Percentage PositionMode = "percentage"
)

// Step is one color stop of a custom palette.
type Step struct {
	Position float64
	Color    string
}

// Custom interpolates between stops in Space. Values below the first or
// above the last stop have no color.
type Custom struct {
	Space Space
	Min   float64
	Max   float64
	Mode  PositionMode
	Steps []Step
}

// Kind implements Palette.
func (Custom) Kind() Kind { return KindCustom }

func (Custom) sealed() {}

// External colors values with a caller supplied formatter.
type External struct {
	Format func(value float64) string
}

// Kind implements Palette.
func (External) Kind() Kind { return KindExternal }

func (External) sealed() {}

package colorscale_test

import (
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
)

const null = "rgb(155, 155, 155)"

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func redWhiteBlue() colorscale.Custom {
	return colorscale.Custom{
		Space: colorscale.RGB,
		Min:   0,
		Max:   100,
		Mode:  colorscale.Absolute,
		Steps: []colorscale.Step{
			{Position: 0, Color: "red"},
			{Position: 50, Color: "#ffffff"},
			{Position: 100, Color: "rgb(0, 0, 255)"},
		},
	}
}

func palettes() map[string]colorscale.Palette {
	center := 25.0

	return map[string]colorscale.Palette{
		"sequential": colorscale.Sequential{Scheme: "interpolateBlues", Min: 0, Max: 100},
		"inverted":   colorscale.Sequential{Scheme: "YlOrRd", Min: 0, Max: 100, Invert: true},
		"diverging":  colorscale.Diverging{Scheme: "RdBu", Min: -1, Max: 1},
		"centered":   colorscale.Diverging{Scheme: "Spectral", Min: 0, Max: 100, Center: &center},
		"custom":     redWhiteBlue(),
		"external":   colorscale.External{Format: func(float64) string { return "#123456" }},
	}
}

func TestBuild_TotalOnNonFinite(t *testing.T) {
	t.Parallel()

	for name, p := range palettes() {
		fn := colorscale.Build(p, null)

		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			assert.Equal(t, null, fn(v), "%s(%v)", name, v)
		}
	}
}

func TestBuild_DegenerateDomain(t *testing.T) {
	t.Parallel()

	degenerate := []colorscale.Palette{
		colorscale.Sequential{Scheme: "Blues", Min: 5, Max: 5},
		colorscale.Diverging{Scheme: "RdBu", Min: 5, Max: 5},
		colorscale.Custom{Min: 5, Max: 5, Steps: []colorscale.Step{{Position: 5, Color: "red"}}},
		colorscale.Sequential{Scheme: "Blues", Min: math.NaN(), Max: 5},
		nil,
		colorscale.External{},
	}

	for _, p := range degenerate {
		fn := colorscale.Build(p, null)

		for _, v := range []float64{-1, 0, 5, 10} {
			assert.Equal(t, null, fn(v), "%#v", p)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	for name, p := range palettes() {
		a := colorscale.Build(p, null)
		b := colorscale.Build(p, null)

		for v := -10.0; v <= 110; v += 7.3 {
			assert.Equal(t, a(v), b(v), name)
			assert.Equal(t, a(v), a(v), name)
		}
	}
}

func TestSequential_ClampsAndEnds(t *testing.T) {
	t.Parallel()

	fn := colorscale.Build(colorscale.Sequential{Scheme: "Blues", Min: 0, Max: 100}, null)

	assert.Equal(t, "#f7fbff", fn(0))
	assert.Equal(t, "#08306b", fn(100))
	assert.Equal(t, fn(0), fn(-10))
	assert.Equal(t, fn(100), fn(110))

	for v := 0.0; v <= 100; v += 5 {
		assert.Regexp(t, hexPattern, fn(v))
	}
}

func TestSequential_Invert(t *testing.T) {
	t.Parallel()

	plain := colorscale.Build(colorscale.Sequential{Scheme: "Greens", Min: 0, Max: 10}, null)
	inverted := colorscale.Build(colorscale.Sequential{Scheme: "Greens", Min: 0, Max: 10, Invert: true}, null)

	assert.Equal(t, plain(0), inverted(10))
	assert.Equal(t, plain(10), inverted(0))
	assert.Equal(t, plain(3), inverted(7))
}

func TestSequential_ReversedDomain(t *testing.T) {
	t.Parallel()

	forward := colorscale.Build(colorscale.Sequential{Scheme: "Reds", Min: 0, Max: 10}, null)
	reversed := colorscale.Build(colorscale.Sequential{Scheme: "Reds", Min: 10, Max: 0}, null)

	assert.Equal(t, forward(2), reversed(8))
}

func TestSequential_UnknownSchemeFallsBack(t *testing.T) {
	t.Parallel()

	unknown := colorscale.Build(colorscale.Sequential{Scheme: "Rainbow", Min: 0, Max: 1}, null)
	spectral := colorscale.Build(colorscale.Sequential{Scheme: colorscale.DefaultScheme, Min: 0, Max: 1}, null)

	assert.Equal(t, spectral(0.3), unknown(0.3))
}

func TestDiverging_CenterMapsToMidpoint(t *testing.T) {
	t.Parallel()

	seq := colorscale.Build(colorscale.Sequential{Scheme: "RdBu", Min: 0, Max: 1}, null)
	div := colorscale.Build(colorscale.Diverging{Scheme: "RdBu", Min: -10, Max: 30}, null)

	assert.Equal(t, seq(0.5), div(10), "the domain midpoint is the neutral color")
	assert.Equal(t, seq(0), div(-10))
	assert.Equal(t, seq(1), div(30))
	assert.Equal(t, seq(0), div(-100), "values below the domain clamp")

	center := 0.0
	shifted := colorscale.Build(colorscale.Diverging{Scheme: "RdBu", Min: -10, Max: 30, Center: &center}, null)

	assert.Equal(t, seq(0.5), shifted(0))
	assert.Equal(t, seq(0.25), shifted(-5))
	assert.Equal(t, seq(0.75), shifted(15))
}

func TestDiverging_InvalidCenterIgnored(t *testing.T) {
	t.Parallel()

	outside := 50.0
	plain := colorscale.Build(colorscale.Diverging{Scheme: "PiYG", Min: 0, Max: 10}, null)
	withOutside := colorscale.Build(colorscale.Diverging{Scheme: "PiYG", Min: 0, Max: 10, Center: &outside}, null)

	assert.Equal(t, plain(5), withOutside(5))
}

func TestDiverging_Invert(t *testing.T) {
	t.Parallel()

	plain := colorscale.Build(colorscale.Diverging{Scheme: "Spectral", Min: 0, Max: 10}, null)
	inverted := colorscale.Build(colorscale.Diverging{Scheme: "Spectral", Min: 0, Max: 10, Invert: true}, null)

	assert.Equal(t, plain(0), inverted(10))
	assert.Equal(t, plain(5), inverted(5))
}

func TestCustom_RedWhiteBlue(t *testing.T) {
	t.Parallel()

	fn := colorscale.Build(redWhiteBlue(), null)

	tests := []struct {
		value float64
		want  string
	}{
		{value: -1, want: null},
		{value: 0, want: "#ff0000"},
		{value: 25, want: "#ff8080"},
		{value: 50, want: "#ffffff"},
		{value: 75, want: "#8080ff"},
		{value: 100, want: "#0000ff"},
		{value: 101, want: null},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.value, 'f', -1, 64), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fn(tt.value))
		})
	}
}

func TestCustom_UnsortedStepsAreSorted(t *testing.T) {
	t.Parallel()

	shuffled := redWhiteBlue()
	shuffled.Steps = []colorscale.Step{shuffled.Steps[2], shuffled.Steps[0], shuffled.Steps[1]}

	want := colorscale.Build(redWhiteBlue(), null)
	got := colorscale.Build(shuffled, null)

	for v := -5.0; v <= 105; v += 2.5 {
		assert.Equal(t, want(v), got(v))
	}
}

func TestCustom_Percentage(t *testing.T) {
	t.Parallel()

	p := redWhiteBlue()
	p.Mode = colorscale.Percentage
	p.Min, p.Max = 100, 300

	fn := colorscale.Build(p, null)

	assert.Equal(t, null, fn(99))
	assert.Equal(t, "#ff0000", fn(100))
	assert.Equal(t, "#ff8080", fn(150))
	assert.Equal(t, "#ffffff", fn(200))
	assert.Equal(t, "#0000ff", fn(300))
	assert.Equal(t, null, fn(301))
}

func TestCustom_DropsInvalidSteps(t *testing.T) {
	t.Parallel()

	p := colorscale.Custom{
		Min: 0,
		Max: 10,
		Steps: []colorscale.Step{
			{Position: math.Inf(-1), Color: "green"},
			{Position: 0, Color: "not-a-color"},
			{Position: 2, Color: "#000"},
			{Position: math.NaN(), Color: "red"},
			{Position: 4, Color: "#fff"},
		},
	}

	fn := colorscale.Build(p, null)

	assert.Equal(t, null, fn(1))
	assert.Equal(t, "#000000", fn(2))
	assert.Equal(t, "#808080", fn(3))
	assert.Equal(t, "#ffffff", fn(4))
	assert.Equal(t, null, fn(5))
}

func TestCustom_NoStops(t *testing.T) {
	t.Parallel()

	fn := colorscale.Build(colorscale.Custom{Min: 0, Max: 1}, null)

	for _, v := range []float64{0, 0.5, 1} {
		assert.Equal(t, null, fn(v))
	}
}

func TestCustom_SingleStopAndHardEdge(t *testing.T) {
	t.Parallel()

	single := colorscale.Build(colorscale.Custom{
		Min: 0, Max: 10,
		Steps: []colorscale.Step{{Position: 5, Color: "blue"}},
	}, null)

	assert.Equal(t, "#0000ff", single(5))
	assert.Equal(t, null, single(4.9))

	edge := colorscale.Build(colorscale.Custom{
		Min: 0, Max: 10,
		Steps: []colorscale.Step{
			{Position: 0, Color: "black"},
			{Position: 5, Color: "black"},
			{Position: 5, Color: "white"},
			{Position: 10, Color: "white"},
		},
	}, null)

	assert.Equal(t, "#000000", edge(4.99))
	assert.Equal(t, "#ffffff", edge(5))
}

func TestCustom_ColorSpaces(t *testing.T) {
	t.Parallel()

	for _, space := range colorscale.Spaces() {
		t.Run(string(space), func(t *testing.T) {
			t.Parallel()

			p := colorscale.Custom{
				Space: space,
				Min:   0,
				Max:   1,
				Steps: []colorscale.Step{{Position: 0, Color: "#336699"}, {Position: 1, Color: "#ffcc00"}},
			}
			fn := colorscale.Build(p, null)

			assert.Equal(t, "#336699", fn(0))
			assert.Equal(t, "#ffcc00", fn(1))
			assert.Regexp(t, hexPattern, fn(0.5))
		})
	}
}

func TestCustom_RedWhiteBlueMidpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		space   colorscale.Space
		quarter string
		three   string
	}{
		{colorscale.RGB, "#ff8080", "#8080ff"},
		{colorscale.HSL, "#df9f9f", "#9f9fdf"},
		{colorscale.HCL, "#ff6b43", "#aa6eff"},
		{colorscale.Lab, "#ff9e81", "#b38bff"},
		{colorscale.Cubehelix, "#ff5353", "#4747ff"},
	}

	for _, tt := range tests {
		t.Run(string(tt.space), func(t *testing.T) {
			t.Parallel()

			p := redWhiteBlue()
			p.Space = tt.space
			fn := colorscale.Build(p, null)

			assert.Equal(t, "#ff0000", fn(0))
			assert.Equal(t, "#ffffff", fn(50))
			assert.Equal(t, "#0000ff", fn(100))

			for value, want := range map[float64]string{25: tt.quarter, 75: tt.three} {
				got, ok := colorscale.ParseColor(fn(value))
				require.True(t, ok)

				w, _ := colorscale.ParseColor(want)
				assert.InDelta(t, w.R*255, got.R*255, 1.5, "R at %v", value)
				assert.InDelta(t, w.G*255, got.G*255, 1.5, "G at %v", value)
				assert.InDelta(t, w.B*255, got.B*255, 1.5, "B at %v", value)
			}
		})
	}
}

func TestExternal(t *testing.T) {
	t.Parallel()

	fn := colorscale.Build(colorscale.External{Format: func(v float64) string {
		if v < 0 {
			return ""
		}

		return "green"
	}}, null)

	assert.Equal(t, "green", fn(1))
	assert.Equal(t, null, fn(-1), "an empty formatter result is null")
}

func TestThresholds(t *testing.T) {
	t.Parallel()

	fn := colorscale.Thresholds("green", []colorscale.Step{
		{Position: 80, Color: "red"},
		{Position: 50, Color: "#ffa500"},
	})

	assert.Equal(t, "#008000", fn(10))
	assert.Equal(t, "#ffa500", fn(50))
	assert.Equal(t, "#ffa500", fn(79.9))
	assert.Equal(t, "#ff0000", fn(1000))
}

func TestSample(t *testing.T) {
	t.Parallel()

	fn := colorscale.Build(redWhiteBlue(), null)

	assert.Equal(t, []string{"#ff0000", "#ffffff", "#0000ff"}, colorscale.Sample(fn, 0, 100, 3))
	assert.Equal(t, []string{"#ff0000"}, colorscale.Sample(fn, 0, 100, 1))
	assert.Nil(t, colorscale.Sample(fn, 0, 100, 0))
	require.Nil(t, colorscale.Sample(nil, 0, 1, 4))
}

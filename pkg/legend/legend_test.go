package legend_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
	"github.com/Sumatoshi-tech/calheat/pkg/legend"
)

func grayscale() colorscale.Func {
	return colorscale.Build(colorscale.Custom{
		Space: colorscale.RGB,
		Min:   0,
		Max:   100,
		Mode:  colorscale.Absolute,
		Steps: []colorscale.Step{{Position: 0, Color: "black"}, {Position: 100, Color: "white"}},
	}, colorscale.DefaultNullColor)
}

func TestParseQuality(t *testing.T) {
	t.Parallel()

	q, ok := legend.ParseQuality("LOW")
	assert.True(t, ok)
	assert.Equal(t, legend.Low, q)

	q, ok = legend.ParseQuality("ultra")
	assert.False(t, ok)
	assert.Equal(t, legend.High, q)
}

func TestQuality_StepSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quality legend.Quality
		width   float64
		want    float64
	}{
		{quality: legend.High, width: 400, want: 1},
		{quality: legend.Medium, width: 400, want: 10},
		{quality: legend.Medium, width: 401, want: 11},
		{quality: legend.Low, width: 400, want: 20},
		{quality: legend.Low, width: 10, want: 1},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.quality.StepSize(tt.width), 0, "%s/%v", tt.quality, tt.width)
	}
}

func TestSpectrum(t *testing.T) {
	t.Parallel()

	stops := legend.Spectrum(grayscale(), 0, 100, 400, legend.Low)

	require.Len(t, stops, 20)
	assert.InDelta(t, 0, stops[0].Offset, 1e-12)
	assert.InDelta(t, 0.05, stops[1].Offset, 1e-12)
	assert.InDelta(t, 95, stops[19].Value, 1e-9)
	assert.Equal(t, "#000000", stops[0].Color)

	for i := 1; i < len(stops); i++ {
		assert.Greater(t, stops[i].Offset, stops[i-1].Offset)
		assert.Less(t, stops[i].Offset, 1.0)
	}

	assert.Len(t, legend.Spectrum(grayscale(), 0, 100, 400, legend.High), 400)
}

func TestSpectrum_Degenerate(t *testing.T) {
	t.Parallel()

	assert.Empty(t, legend.Spectrum(grayscale(), 0, 100, 0, legend.High))
	assert.Empty(t, legend.Spectrum(grayscale(), 0, 100, math.NaN(), legend.High))
	assert.Empty(t, legend.Spectrum(nil, 0, 100, 100, legend.High))
}

func TestIndicatorOffset(t *testing.T) {
	t.Parallel()

	x, ok := legend.IndicatorOffset(25, 0, 100, 400)
	require.True(t, ok)
	assert.InDelta(t, 100, x, 1e-9)

	x, ok = legend.IndicatorOffset(0, 0, 100, 400)
	require.True(t, ok, "zero is a valid value")
	assert.InDelta(t, 0, x, 1e-9)

	_, ok = legend.IndicatorOffset(math.NaN(), 0, 100, 400)
	assert.False(t, ok)

	_, ok = legend.IndicatorOffset(5, 3, 3, 400)
	assert.False(t, ok)
}

func TestTicks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lo, hi float64
		count  int
		want   []float64
	}{
		{name: "unit", lo: 0, hi: 1, count: 5, want: []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{name: "hundred", lo: 0, hi: 100, count: 10, want: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}},
		{name: "offset", lo: 3, hi: 47, count: 4, want: []float64{10, 20, 30, 40}},
		{name: "tenths", lo: 0.1, hi: 0.35, count: 3, want: []float64{0.1, 0.2, 0.3}},
		{name: "reversed", lo: 10, hi: 0, count: 2, want: []float64{10, 5, 0}},
		{name: "degenerate", lo: 7, hi: 7, count: 10, want: []float64{7}},
		{name: "no count", lo: 0, hi: 1, count: 0, want: nil},
		{name: "infinite", lo: 0, hi: math.Inf(1), count: 5, want: nil},
		{name: "large exact", lo: 1e12, hi: 1e12 + 100, count: 2, want: []float64{1e12, 1e12 + 50, 1e12 + 100}},
		{name: "beyond float precision", lo: 1e20, hi: 1e20 + 1e5, count: 10, want: nil},
		{name: "beyond float precision negative", lo: -1e21 - 1e6, hi: -1e21, count: 10, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, legend.Ticks(tt.lo, tt.hi, tt.count))
		})
	}
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "12.5", legend.FormatValue(12.5, 2))
	assert.Equal(t, "12", legend.FormatValue(12, 2))
	assert.Equal(t, "0.333", legend.FormatValue(1.0/3, 3))
	assert.Equal(t, "0.1", legend.FormatValue(0.1, -1))
	assert.Equal(t, "NaN", legend.FormatValue(math.NaN(), 2))
	assert.Equal(t, "-Inf", legend.FormatValue(math.Inf(-1), 2))
}

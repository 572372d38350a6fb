package svg_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/pkg/bucket"
	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
	"github.com/Sumatoshi-tech/calheat/pkg/render/layout"
	"github.com/Sumatoshi-tech/calheat/pkg/render/svg"
	"github.com/Sumatoshi-tech/calheat/pkg/timeseries"
)

func sampleLayout(t *testing.T, legend bool) *layout.Layout {
	t.Helper()

	cfg := bucket.DefaultConfig()
	cfg.BucketCount = 4
	cfg.From = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	cfg.To = time.Date(2024, time.March, 3, 23, 0, 0, 0, time.UTC)

	g := bucket.Bucketize([]timeseries.Sample{
		timeseries.Point(time.Date(2024, time.March, 1, 2, 0, 0, 0, time.UTC), 1),
		timeseries.Point(time.Date(2024, time.March, 2, 14, 0, 0, 0, time.UTC), 3),
		timeseries.Point(time.Date(2024, time.March, 3, 20, 0, 0, 0, time.UTC), 5),
	}, cfg)

	fn := colorscale.Build(colorscale.Sequential{Scheme: "Blues", Min: 1, Max: 5}, colorscale.DefaultNullColor)

	opts := layout.DefaultOptions()
	opts.Legend = legend
	opts.Min, opts.Max = 1, 5
	opts.Regions = []layout.Region{{Start: layout.ClockTime{Hour: 12}, End: layout.ClockTime{Hour: 13}, Color: "#ff000033"}}

	return layout.New(&g, fn, opts)
}

func TestRender_Document(t *testing.T) {
	t.Parallel()

	opts := svg.DefaultOptions()
	opts.Title = "cpu <load>"

	out, err := svg.Render(sampleLayout(t, true), opts)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="400"`))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Contains(t, out, "<title>cpu &lt;load&gt;</title>")
	assert.Equal(t, 3, strings.Count(out, "<title>2024-03"), "one tooltip per cell")
	assert.Contains(t, out, "<title>2024-03-02 12:00: 3</title>")
	assert.Contains(t, out, `fill="#f7fbff"`)
	assert.Contains(t, out, `fill="#08306b"`)
	assert.Contains(t, out, "<linearGradient")
	assert.Contains(t, out, ">03/01</text>")
	assert.Contains(t, out, ">12:00</text>")
	assert.Contains(t, out, `class="regions"`)
	assert.NotContains(t, out, "stroke-width=\"4\"")
	assert.NotContains(t, out, `class="indicator"`)
}

func TestRender_Toggles(t *testing.T) {
	t.Parallel()

	value := 3.0

	opts := svg.DefaultOptions()
	opts.Tooltip = false
	opts.CellBorder = true
	opts.Indicator = &value

	out, err := svg.Render(sampleLayout(t, true), opts)
	require.NoError(t, err)

	assert.NotContains(t, out, "<title>")
	assert.Equal(t, 3, strings.Count(out, `stroke-width="4"`))
	assert.Contains(t, out, `class="indicator"`)
}

func TestRender_WithoutLegend(t *testing.T) {
	t.Parallel()

	value := 3.0

	opts := svg.DefaultOptions()
	opts.Indicator = &value

	out, err := svg.Render(sampleLayout(t, false), opts)
	require.NoError(t, err)

	assert.NotContains(t, out, "<linearGradient")
	assert.NotContains(t, out, `class="indicator"`)
}

func TestWrite_Errors(t *testing.T) {
	t.Parallel()

	_, err := svg.Render(nil, svg.DefaultOptions())
	require.ErrorIs(t, err, svg.ErrNoLayout)

	err = svg.Write(failingWriter{}, sampleLayout(t, false), svg.DefaultOptions())
	require.ErrorIs(t, err, errDiskFull)
}

var errDiskFull = errors.New("disk full")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

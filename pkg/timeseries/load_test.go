package timeseries_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/pkg/timeseries"
)

func TestLoad_JSONRows(t *testing.T) {
	t.Parallel()

	doc := `[
		{"time": "2024-03-01T10:00:00Z", "value": 1.5},
		{"time": 1709290800000, "value": null},
		{"time": "garbage", "value": 3},
		{"time": "2024-03-01T12:00:00+02:00", "value": "7"}
	]`

	series, err := timeseries.Load(strings.NewReader(doc), timeseries.FormatJSON, timeseries.Options{})
	require.NoError(t, err)
	require.Len(t, series.Samples, 3)

	assert.Equal(t, 1, series.Skipped)

	assert.True(t, series.Samples[0].Valid)
	assert.InDelta(t, 1.5, series.Samples[0].Value, 1e-9)
	assert.True(t, series.Samples[0].Time.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	assert.True(t, series.Samples[1].Missing())
	assert.True(t, series.Samples[1].Time.Equal(time.UnixMilli(1709290800000)))

	assert.True(t, series.Samples[2].Time.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))
	assert.InDelta(t, 7.0, series.Samples[2].Value, 1e-9)
}

func TestLoad_YAMLColumnsWithCustomFields(t *testing.T) {
	t.Parallel()

	doc := `
name: temperature
ts:
  - 2024-03-01T00:00:00Z
  - 2024-03-01T01:00:00Z
  - 2024-03-01T02:00:00Z
temp: [20.5, .nan]
`

	series, err := timeseries.Load(strings.NewReader(doc), timeseries.FormatYAML, timeseries.Options{
		TimeField:  "ts",
		ValueField: "temp",
	})
	require.NoError(t, err)

	assert.Equal(t, "temperature", series.Name)
	require.Len(t, series.Samples, 3)
	assert.False(t, series.Samples[0].Missing())
	assert.True(t, series.Samples[1].Missing())
	assert.True(t, series.Samples[2].Missing(), "values column shorter than times yields gaps")
}

func TestLoad_PointsMapping(t *testing.T) {
	t.Parallel()

	doc := `{"name": "cpu", "points": [{"time": "2024-03-01T00:00:00Z", "value": 1}]}`

	series, err := timeseries.Load(strings.NewReader(doc), timeseries.FormatJSON, timeseries.Options{})
	require.NoError(t, err)
	assert.Equal(t, "cpu", series.Name)
	assert.Equal(t, 1, series.Len())
}

func TestLoad_MissingField(t *testing.T) {
	t.Parallel()

	_, err := timeseries.Load(strings.NewReader(`{"time": []}`), timeseries.FormatJSON, timeseries.Options{})
	require.ErrorIs(t, err, timeseries.ErrFieldNotFound)

	_, err = timeseries.Load(strings.NewReader("when,value\n"), timeseries.FormatCSV, timeseries.Options{})
	require.ErrorIs(t, err, timeseries.ErrFieldNotFound)
}

func TestLoad_CSV(t *testing.T) {
	t.Parallel()

	doc := "time,value,host\n" +
		"2024-03-01T00:00:00Z,1,a\n" +
		"2024-03-01T00:30:00Z,,a\n" +
		"not-a-time,2,a\n" +
		"1709254800000,3.5,b\n"

	series, err := timeseries.Load(strings.NewReader(doc), timeseries.FormatCSV, timeseries.Options{})
	require.NoError(t, err)

	require.Len(t, series.Samples, 3)
	assert.Equal(t, 1, series.Skipped)
	assert.True(t, series.Samples[1].Missing())
	assert.InDelta(t, 3.5, series.Samples[2].Value, 1e-9)
}

func TestLoad_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, f := range []timeseries.Format{timeseries.FormatJSON, timeseries.FormatCSV} {
		series, err := timeseries.Load(strings.NewReader(""), f, timeseries.Options{})
		require.NoError(t, err)
		assert.Zero(t, series.Len())
	}
}

func TestLoad_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := timeseries.Load(strings.NewReader(""), timeseries.Format("xml"), timeseries.Options{})
	require.ErrorIs(t, err, timeseries.ErrUnknownFormat)

	_, err = timeseries.ParseFormat("xml")
	require.ErrorIs(t, err, timeseries.ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want timeseries.Format
		ok   bool
	}{
		{path: "a.json", want: timeseries.FormatJSON, ok: true},
		{path: "dir/b.YML", want: timeseries.FormatYAML, ok: true},
		{path: "c.csv", want: timeseries.FormatCSV, ok: true},
		{path: "d.txt", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, ok := timeseries.FormatFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeriesSpanAndColumns(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	one := 1.0

	series := timeseries.FromColumns("s", []time.Time{t0.Add(time.Hour), t0, t0.Add(2 * time.Hour)}, []*float64{&one, nil})

	require.Len(t, series.Samples, 2)
	assert.True(t, series.Samples[1].Missing())

	from, to, ok := series.Span()
	require.True(t, ok)
	assert.True(t, from.Equal(t0))
	assert.True(t, to.Equal(t0.Add(time.Hour)))

	_, _, ok = (&timeseries.Series{}).Span()
	assert.False(t, ok)
}

func TestParseTimeIn(t *testing.T) {
	t.Parallel()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{raw: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, tokyo), ok: true},
		{raw: "2024-03-01 09:30:00", want: time.Date(2024, 3, 1, 9, 30, 0, 0, tokyo), ok: true},
		{raw: "2024-03-01T09:30", want: time.Date(2024, 3, 1, 9, 30, 0, 0, tokyo), ok: true},
		{raw: "2024-03-01T00:00:00Z", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "2024-03-01T00:00:00+02:00", want: time.Date(2024, 2, 29, 22, 0, 0, 0, time.UTC), ok: true},
		{raw: "1709251200000", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{raw: "soon", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, ok := timeseries.ParseTimeIn(tt.raw, tokyo)

			require.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.True(t, tt.want.Equal(got), got.String())
			}
		})
	}
}

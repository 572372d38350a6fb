package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/pkg/config"
)

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		doc        string
		wantFields []string
	}{
		{name: "empty", doc: ""},
		{
			name: "full",
			doc: `
bucket:
  timezone: UTC
  from_hour: 8
  to_hour: 20
  count: 12
palette:
  kind: diverging
  scheme: RdBu
  center: 0
render:
  format: svg
  regions:
    - from: "12:00"
      to: "13:30"
`,
		},
		{name: "json document", doc: `{"bucket": {"count": 4}, "render": {"theme": "dark"}}`},
		{name: "unknown section", doc: "colors: {}\n", wantFields: []string{"(root)"}},
		{name: "count below one", doc: "bucket:\n  count: 0\n", wantFields: []string{"bucket.count"}},
		{name: "bad aggregation", doc: "bucket:\n  aggregation: median\n", wantFields: []string{"bucket.aggregation"}},
		{name: "bad clock", doc: "render:\n  regions:\n    - from: '9am'\n      to: '10:00'\n", wantFields: []string{"render.regions.0.from"}},
		{
			name:       "several",
			doc:        "render:\n  format: pdf\n  width: -1\n",
			wantFields: []string{"render.format", "render.width"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			errs, err := config.ValidateDocument([]byte(tt.doc))
			require.NoError(t, err)

			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, e.Field)
			}

			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestValidateDocument_NotAMapping(t *testing.T) {
	t.Parallel()

	_, err := config.ValidateDocument([]byte("- a\n- b\n"))
	require.ErrorIs(t, err, config.ErrInvalidDocument)

	_, err = config.ValidateDocument([]byte("bucket: [unclosed\n"))
	require.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calheat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))

	errs, err := config.ValidateFile(path)
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Equal(t, "logging.level", errs[0].Field)
	assert.Contains(t, errs[0].String(), "logging.level")

	_, err = config.ValidateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSchemaIsEmbedded(t *testing.T) {
	t.Parallel()

	assert.Contains(t, string(config.Schema()), "\"$schema\"")
}

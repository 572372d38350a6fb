package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/cmd/calheat/commands"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantErr  error
		contains string
	}{
		{
			name:     "valid",
			content:  baseConfig,
			contains: "Config is valid",
		},
		{
			name:     "unknown key",
			content:  "bucket:\n  buckets: 12\n",
			wantErr:  commands.ErrInvalidConfig,
			contains: "Config validation failed",
		},
		{
			name:     "bad enum",
			content:  "render:\n  format: png\n",
			wantErr:  commands.ErrInvalidConfig,
			contains: "render.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "calheat.yaml", tt.content)

			stdout, _, err := execute(t, commands.NewValidateCommand(&commands.GlobalOptions{}), path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Contains(t, stdout, tt.contains)
		})
	}
}

func TestValidate_UsesGlobalConfig(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "calheat.yaml", baseConfig)

	stdout, _, err := execute(t, commands.NewValidateCommand(&commands.GlobalOptions{ConfigPath: path}))
	require.NoError(t, err)
	assert.Contains(t, stdout, path)
}

func TestValidate_NoConfig(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, commands.NewValidateCommand(&commands.GlobalOptions{}))
	require.ErrorIs(t, err, commands.ErrNoConfigFile)
}

func TestValidate_PrintSchema(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, commands.NewValidateCommand(&commands.GlobalOptions{}), "--schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"$schema"`)
}

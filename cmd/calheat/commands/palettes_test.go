package commands_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/cmd/calheat/commands"
	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
)

func TestPalettes_ListsCatalog(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, commands.NewPalettesCommand())
	require.NoError(t, err)

	for _, s := range colorscale.Schemes() {
		assert.Contains(t, stdout, s.Name)
	}

	assert.Contains(t, stdout, "#f7fbff")
}

func TestPalettes_KindFilter(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, commands.NewPalettesCommand(), "--kind", "diverging")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Spectral")
	assert.NotContains(t, stdout, "Blues")
	assert.NotContains(t, strings.ToLower(stdout), "sequential")
}

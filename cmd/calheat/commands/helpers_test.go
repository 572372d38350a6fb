package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/calheat/cmd/calheat/commands"
)

// sampleCSV yields three cells over two UTC days: 2024-01-01 bucket 0
// (mean of 1 and 3), 2024-01-01 bucket 5 and 2024-01-02 bucket 12. One row
// has no value.
const sampleCSV = `time,value
2024-01-01T00:10:00Z,1
2024-01-01T00:40:00Z,3
2024-01-01T05:00:00Z,10
2024-01-02T12:30:00Z,
2024-01-02T12:31:00Z,5
`

const baseConfig = `bucket:
  timezone: UTC
  count: 24
  aggregation: mean
palette:
  scheme: Blues
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// fixture writes the sample series and a config with extra appended.
func fixture(t *testing.T, extra string) (dir, series string, global *commands.GlobalOptions) {
	t.Helper()

	dir = t.TempDir()
	series = writeFile(t, dir, "series.csv", sampleCSV)
	cfgPath := writeFile(t, dir, "calheat.yaml", baseConfig+extra)

	return dir, series, &commands.GlobalOptions{ConfigPath: cfgPath}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

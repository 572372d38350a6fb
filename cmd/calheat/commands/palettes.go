package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
)

const paletteSamples = 8

// NewPalettesCommand creates the palettes subcommand, which lists the
// built-in color schemes.
func NewPalettesCommand() *cobra.Command {
	var (
		kind     string
		swatches bool
	)

	cmd := &cobra.Command{
		Use:   "palettes",
		Short: "List the built-in color schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := newTable()
			tbl.AppendHeader(table.Row{"Scheme", "Kind", "Anchors", "Ramp"})

			shown := 0

			for _, s := range colorscale.Schemes() {
				if kind != "" && !strings.EqualFold(kind, string(s.Kind)) {
					continue
				}

				tbl.AppendRow(table.Row{s.Name, string(s.Kind), len(s.Anchors), ramp(s, swatches)})

				shown++
			}

			tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d schemes", shown)})

			_, err := fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

			return err
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "show only sequential or diverging schemes")
	cmd.Flags().BoolVar(&swatches, "swatch", false, "paint the ramp instead of listing hex colors")

	return cmd
}

func ramp(s *colorscale.Scheme, paint bool) string {
	parts := make([]string, paletteSamples)

	for i := range paletteSamples {
		css := colorscale.FormatColor(s.At(float64(i) / float64(paletteSamples-1)))
		if paint {
			parts[i] = swatch(css)
		} else {
			parts[i] = css
		}
	}

	if paint {
		return strings.Join(parts, "")
	}

	return strings.Join(parts, " ")
}

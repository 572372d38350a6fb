package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
	"github.com/Sumatoshi-tech/calheat/pkg/legend"
)

const (
	defaultScaleMin = 0
	defaultScaleMax = 100
)

// ErrInvalidValue is returned for a value argument that is not a number.
var ErrInvalidValue = errors.New("invalid value")

type scaleFlags struct {
	min    float64
	max    float64
	swatch bool
}

// NewScaleCommand creates the scale subcommand, which maps values through
// the configured palette.
func NewScaleCommand(global *GlobalOptions) *cobra.Command {
	var flags scaleFlags

	cmd := &cobra.Command{
		Use:   "scale <value>...",
		Short: "Map values to colors with the configured palette",
		Long: `Scale evaluates the configured palette over a domain and prints the color of
each value. Palette min and max from the configuration take precedence over
the flags.

Examples:
  calheat scale 0 25 50 75 100
  calheat scale --min -1 --max 1 -- -0.5 0 0.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			values, err := parseValues(args)
			if err != nil {
				return err
			}

			s, err := global.open(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			defer func() { err = errors.Join(err, s.close(ctx)) }()

			lo, hi := flags.min, flags.max
			if s.cfg.Palette.Min != nil {
				lo = *s.cfg.Palette.Min
			}

			if s.cfg.Palette.Max != nil {
				hi = *s.cfg.Palette.Max
			}

			palette := s.cfg.ColorPalette(lo, hi)
			fn := colorscale.Build(palette, s.cfg.Palette.NullColor)

			tbl := newTable()
			tbl.AppendHeader(table.Row{"Value", "Color", ""})

			for _, v := range values {
				col := fn(v)

				row := table.Row{legend.FormatValue(v, -1), col, ""}
				if flags.swatch {
					row[2] = swatch(col)
				}

				tbl.AppendRow(row)
			}

			tbl.AppendFooter(table.Row{
				fmt.Sprintf("%s..%s", legend.FormatValue(lo, -1), legend.FormatValue(hi, -1)),
				string(palette.Kind()),
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

			return err
		},
	}

	cmd.Flags().Float64Var(&flags.min, "min", defaultScaleMin, "domain lower bound")
	cmd.Flags().Float64Var(&flags.max, "max", defaultScaleMax, "domain upper bound")
	cmd.Flags().BoolVar(&flags.swatch, "swatch", false, "paint a color swatch next to each color")

	return cmd
}

func parseValues(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))

	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidValue, a)
		}

		values = append(values, v)
	}

	return values, nil
}

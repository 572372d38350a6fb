package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/calheat/pkg/legend"
)

const (
	gridCmdUse    = "grid <series-file|->"
	clockLayout   = "15:04"
	noLimit       = 0
	truncatedNote = "... %s more cells"
)

type gridFlags struct {
	limit   int
	swatch  bool
	decimal int
}

// NewGridCommand creates the grid subcommand, which prints the bucketized
// cells as a table.
func NewGridCommand(global *GlobalOptions) *cobra.Command {
	var flags gridFlags

	cmd := &cobra.Command{
		Use:   gridCmdUse,
		Short: "Print the bucketized grid as a table",
		Long: `Grid bucketizes a time series and prints one row per non-empty cell.

Examples:
  calheat grid cpu.csv
  calheat grid cpu.json --limit 20 --swatch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			s, err := global.open(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			defer func() { err = errors.Join(err, s.close(ctx)) }()

			grid, err := s.buildGrid(ctx, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			decimals := s.cfg.Render.Decimals
			if cmd.Flags().Changed("decimals") {
				decimals = flags.decimal
			}

			fn := s.cfg.ColorScale(grid)

			tbl := newTable()
			tbl.AppendHeader(table.Row{"Day", "Bucket", "Value", "Samples", "Color"})

			for i, c := range grid.Cells {
				if flags.limit > noLimit && i >= flags.limit {
					tbl.AppendRow(table.Row{fmt.Sprintf(truncatedNote, humanize.Comma(int64(grid.Len()-i)))})

					break
				}

				col := fn(c.Value)
				if flags.swatch {
					col = swatch(col) + " " + col
				}

				tbl.AppendRow(table.Row{
					c.Day.Format(dayLayout),
					c.Start.Format(clockLayout),
					legend.FormatValue(c.Value, decimals),
					c.Samples,
					col,
				})
			}

			tbl.AppendFooter(table.Row{
				fmt.Sprintf("%d days", len(grid.Days)),
				fmt.Sprintf("%d buckets", grid.BucketCount),
				string(grid.Aggregation),
				humanize.Comma(int64(grid.Stats.Used)),
				fmt.Sprintf("%s discarded", humanize.Comma(int64(grid.Stats.Discarded()))),
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

			return err
		},
	}

	cmd.Flags().IntVar(&flags.limit, "limit", noLimit, "print at most this many cells (0 prints all)")
	cmd.Flags().BoolVar(&flags.swatch, "swatch", false, "paint a color swatch next to each color")
	cmd.Flags().IntVar(&flags.decimal, "decimals", 0, "value decimals (default from config)")

	return cmd
}

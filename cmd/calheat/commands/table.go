package commands

import (
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
)

// ANSI SGR parameters for a 24-bit background color.
const (
	sgrBackground = 48
	sgrTrueColor  = 2
)

const swatchText = "    "

// newTable returns a borderless light table.
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	return tbl
}

// swatch paints a block in css on truecolor terminals. Unparseable and
// transparent colors yield blank space.
func swatch(css string) string {
	c, ok := colorscale.ParseColor(css)
	if !ok {
		return swatchText
	}

	r, g, b := c.RGB255()

	return color.New(
		color.Attribute(sgrBackground), color.Attribute(sgrTrueColor),
		color.Attribute(r), color.Attribute(g), color.Attribute(b),
	).Sprint(swatchText)
}

package colorscale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/calheat/pkg/colorscale"
)

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "#abc", want: "#aabbcc", ok: true},
		{in: "#336699", want: "#336699", ok: true},
		{in: "#11223380", want: "#112233", ok: true},
		{in: "  #FFCC00 ", want: "#ffcc00", ok: true},
		{in: "rgb(155, 155, 155)", want: "#9b9b9b", ok: true},
		{in: "rgba(255, 0, 0, 0.4)", want: "#ff0000", ok: true},
		{in: "rgb(100%, 0%, 0%)", want: "#ff0000", ok: true},
		{in: "rgb(0 0 255 / 50%)", want: "#0000ff", ok: true},
		{in: "hsl(120, 100%, 25%)", want: "#008000", ok: true},
		{in: "hsla(240deg 100% 50% / 0.5)", want: "#0000ff", ok: true},
		{in: "hsl(-120, 100%, 50%)", want: "#0000ff", ok: true},
		{in: "RED", want: "#ff0000", ok: true},
		{in: "grey", want: "#808080", ok: true},
		{in: "dark-red", want: "#c4162a", ok: true},
		{in: "", ok: false},
		{in: "#12345", ok: false},
		{in: "#gggggg", ok: false},
		{in: "rgb(1, 2)", ok: false},
		{in: "rgb(a, b, c)", ok: false},
		{in: "hsl(x, 10%, 10%)", ok: false},
		{in: "chartreuse-ish", ok: false},
		{in: "rgba(1,2,3,)", ok: false},
		{in: "rgb(1,,2,3)", ok: false},
		{in: "rgb(,1,2,3)", ok: false},
		{in: "rgb(1, 2, 3, 4, 5)", ok: false},
		{in: "rgb(1 2 3 /)", ok: false},
		{in: "rgb(1 2 3 / 0.5 0.5)", ok: false},
		{in: "rgba(1, 2, 3, x)", ok: false},
		{in: "hsl(nan,50%,50%)", ok: false},
		{in: "hsl(inf, 50%, 50%)", ok: false},
		{in: "hsl(120, nan%, 50%)", ok: false},
		{in: "rgb(nan, 0, 0)", ok: false},
		{in: "rgb(0, +inf, 0)", ok: false},
		{in: "rgba(1, 2, 3, nan)", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			c, ok := colorscale.ParseColor(tt.in)

			assert.Equal(t, tt.ok, ok)

			if tt.ok {
				assert.Equal(t, tt.want, colorscale.FormatColor(c))
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#9b9b9b", colorscale.Normalize(colorscale.DefaultNullColor))
	assert.Equal(t, "#008000", colorscale.Normalize("green"))
	assert.Equal(t, "not a color", colorscale.Normalize("not a color"))
}

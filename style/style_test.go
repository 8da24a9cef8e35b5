package style

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#ffffff":            {255, 255, 255},
		"#F00":               {255, 0, 0},
		"rgb(239, 41, 41)":   {239, 41, 41},
		"rgb(100%, 0%, 50%)": {255, 0, 128},
		" black ":            {0, 0, 0},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "#12", "hsl(1, 2, 3)", "rgb(1, 2)", "chartreuse-ish"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorFormatting(t *testing.T) {
	c := Color{239, 41, 41}
	assert.Equal(t, "rgb(239, 41, 41)", c.String())
	assert.Equal(t, "#ef2929", c.Hex())
	assert.Equal(t, "ArrowMark_EF2929", GenerateID("ArrowMark", c))
	assert.Equal(t, "CustomGradient_FFFFFF_000000", GenerateID("CustomGradient", Color{255, 255, 255}, Black))
}

func TestPaintCSS(t *testing.T) {
	assert.Equal(t, "none", NoPaint().CSS())
	assert.Equal(t, "rgb(1, 2, 3)", Solid(Color{1, 2, 3}).CSS())
	g := Gradient(Color{255, 255, 255}, Black)
	assert.True(t, g.IsGradient())
	assert.Equal(t, "url(#CustomGradient_FFFFFF_000000)", g.CSS())
}

func TestStylingCSSAndMerge(t *testing.T) {
	width := 2.0
	base := Styling{Fill: Solid(Color{255, 255, 255}), Stroke: Solid(Black)}
	over := Styling{Stroke: Solid(Color{239, 41, 41}), StrokeWidth: &width, MarkerEnd: "ArrowMark"}

	merged := base.Merge(over)
	assert.Equal(t,
		"fill: rgb(255, 255, 255); stroke: rgb(239, 41, 41); stroke-width: 2; marker-end: url(#ArrowMark_EF2929)",
		merged.CSS())
	assert.Equal(t, "fill: rgb(255, 255, 255); stroke: rgb(0, 0, 0)", base.CSS(), "merge must not modify the receiver")
	assert.Equal(t, "ArrowMark_000000", Styling{}.MarkerID("ArrowMark"))
	assert.True(t, Styling{}.IsZero())
}

func TestClassStyleJSONSplitsTextKeys(t *testing.T) {
	var cs ClassStyle
	err := json.Unmarshal([]byte(`{
		"fill": ["#ffffff", "#000000"],
		"stroke_width": 3,
		"text_fill": "#ff0000",
		"text_font_size": "10pt",
		"text_transform": "rotate(-90, 10, 20) 15"
	}`), &cs)
	require.NoError(t, err)
	require.NotNil(t, cs.Fill)
	assert.True(t, cs.Fill.IsGradient())
	require.NotNil(t, cs.StrokeWidth)
	assert.Equal(t, 3.0, *cs.StrokeWidth)
	assert.Equal(t, "fill: rgb(255, 0, 0); font-size: 10pt", cs.Text.CSS())
	assert.Equal(t, "rotate(-90, 10, 20) 15", cs.Text.Transform)
}

func TestDefaultConfigLookup(t *testing.T) {
	cfg := DefaultConfig()
	require.True(t, cfg.HasDiagramClass("Logical Architecture Blank"))

	lc := cfg.Lookup("Logical Architecture Blank", "Box.LogicalComponent")
	require.NotNil(t, lc.Fill)
	assert.True(t, lc.Fill.IsGradient())
	require.NotNil(t, lc.StrokeWidth, "global Box stroke-width is inherited")
	assert.Equal(t, 1.0, *lc.StrokeWidth)

	fe := cfg.Lookup("Logical Architecture Blank", "Edge.FunctionalExchange")
	assert.Equal(t, "ArrowMark", fe.MarkerEnd)
	assert.Equal(t, "none", fe.Fill.CSS())

	unknown := cfg.Lookup("No Such Diagram", "Box.Whatever")
	assert.Equal(t, "fill: rgb(255, 255, 255); stroke: rgb(0, 0, 0); stroke-width: 1", unknown.CSS())

	decos := cfg.StaticDecorations("Mode State Machine")
	assert.Equal(t, []string{"ErrorSymbol", "RequirementSymbol"}, decos[:2])
	assert.Contains(t, decos, "ModeSymbol")
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("styles:\n  X:\n    box.lower:\n      fill: \"#fff\"\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("styles:\n  X:\n    Box:\n      fill: [\"#fff\", \"#000\", \"#111\"]\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("stylez: {}\n"))
	assert.Error(t, err, "unknown fields are rejected")

	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.StaticDecorations("anything"))
}

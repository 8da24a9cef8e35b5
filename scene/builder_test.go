package scene

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/capsvg/decorations"
	"github.com/ByLCY/capsvg/diagram"
	"github.com/ByLCY/capsvg/layout"
	"github.com/ByLCY/capsvg/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStyles = `
decorations:
  __GLOBAL__: [ErrorSymbol]
styles:
  __GLOBAL__:
    Box:
      fill: "#ffffff"
      stroke: "#000000"
    Edge:
      fill: none
      stroke: "#000000"
  Test Diagram:
    Box.LogicalComponent:
      fill: ["#dbe6f4", "#c3d7ef"]
      rx: 5
    Edge.FunctionalExchange:
      stroke: "#00880e"
      marker-end: ArrowMark
    Edge.Broken:
      marker-end: NoSuchMark
`

func newTestBuilder(t *testing.T, logger *log.Logger) *Builder {
	t.Helper()
	cfg, err := style.LoadConfig(strings.NewReader(testStyles))
	require.NoError(t, err)
	m := layout.MeasurerFunc(func(text string, _ layout.FontDescriptor) layout.TextExtent {
		return layout.TextExtent{Width: 10 * float64(utf8.RuneCountInString(text)), Height: 12}
	})
	engine := layout.NewEngine(m, layout.FontDescriptor{Family: "Test", Size: 8})
	return NewBuilder(engine, Options{Config: cfg, Logger: logger})
}

func findAll[T Element](elements []Element) []T {
	var out []T
	Walk(elements, func(el Element) bool {
		if v, ok := el.(T); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

func TestBuildBoxWithIcon(t *testing.T) {
	d := &diagram.Diagram{
		Name: "demo", Class: "Test Diagram", Width: 200, Height: 100,
		Contents: []diagram.Object{{
			Type: diagram.TypeBox, ID: "c1", Class: "LogicalComponent",
			X: 10, Y: 20, Width: 100, Height: 50,
			Label: &diagram.Label{Text: "Hi"},
		}},
	}
	sc, err := newTestBuilder(t, nil).Build(d)
	require.NoError(t, err)

	assert.Equal(t, "TestDiagram", sc.Class)
	require.Len(t, sc.Elements, 2)
	backdrop, ok := sc.Elements[0].(*Rect)
	require.True(t, ok)
	assert.Equal(t, 200.0, backdrop.Width)

	grp, ok := sc.Elements[1].(*Group)
	require.True(t, ok)
	assert.Equal(t, "c1", grp.ID)
	assert.Equal(t, "Box LogicalComponent", grp.Class)

	rect := grp.Children[0].(*Rect)
	assert.Equal(t, 10.5, rect.X)
	assert.Equal(t, 20.5, rect.Y)
	assert.Equal(t, 5.0, rect.RX)
	assert.Nil(t, rect.Style.RX)
	assert.True(t, rect.Style.Fill.IsGradient())

	texts := findAll[*Text](sc.Elements)
	require.Len(t, texts, 1)
	assert.Equal(t, layout.AnchorStart, texts[0].Anchor)
	assert.Equal(t, []layout.Span{{X: 62, Y: 45, Text: "Hi"}}, texts[0].Spans)

	uses := findAll[*Use](sc.Elements)
	require.Len(t, uses, 1)
	assert.Equal(t, "LogicalComponentSymbol", uses[0].Href)
	assert.Equal(t, 40.0, uses[0].X)
	assert.Equal(t, 35.0, uses[0].Y)
	assert.Equal(t, 20.0, uses[0].Width)

	// 依赖在前，且只出现一次。
	assert.Equal(t, []string{"ErrorSymbol", "ComponentGradient", "LogicalComponentSymbol"}, sc.Defs.Decorations)
	require.Len(t, sc.Defs.Gradients, 1)
	assert.Equal(t, "CustomGradient_DBE6F4_C3D7EF", sc.Defs.Gradients[0].ID)

	require.Len(t, sc.Labels, 1)
	assert.NotNil(t, sc.Labels[0].Layout)
}

func TestBuildEdgeWithMarkerAndLabel(t *testing.T) {
	d := &diagram.Diagram{
		Class: "Test Diagram", Width: 200, Height: 100,
		Contents: []diagram.Object{
			{
				Type: diagram.TypeEdge, ID: "e1", Class: "FunctionalExchange",
				Points: [][2]float64{{0, 0}, {100, 0}},
				Labels: []diagram.Label{{Text: "flow", Box: &diagram.Rect{X: 40, Y: 10, Width: 60, Height: 12}}},
			},
			{
				Type: diagram.TypeEdge, ID: "e2", Class: "FunctionalExchange",
				Points: [][2]float64{{0, 50}, {100, 50}},
			},
		},
	}
	sc, err := newTestBuilder(t, nil).Build(d)
	require.NoError(t, err)

	paths := findAll[*Path](sc.Elements)
	require.Len(t, paths, 2)
	assert.Equal(t, []layout.Point{{X: 0.5, Y: 0.5}, {X: 100.5, Y: 0.5}}, paths[0].Points)
	assert.Equal(t, "Edge", paths[0].Class)

	// 两条边共用同一个标记定义。
	require.Len(t, sc.Defs.Markers, 1)
	mk := sc.Defs.Markers[0]
	assert.Equal(t, "ArrowMark_00880E", mk.ID)
	assert.Equal(t, "ArrowMark", mk.Name)
	assert.Equal(t, style.Color{R: 0, G: 0x88, B: 0x0e}, mk.Stroke)
	assert.Equal(t, 1.0, mk.StrokeWidth)

	texts := findAll[*Text](sc.Elements)
	require.Len(t, texts, 1)
	assert.Equal(t, layout.AnchorMiddle, texts[0].Anchor)
	assert.Equal(t, layout.AnnotationClass, texts[0].Class)
	// 标签框向两侧加宽了图标的空间：x 28，宽 86。
	assert.Equal(t, []layout.Span{{X: 83, Y: 16, Text: "flow"}}, texts[0].Spans)

	uses := findAll[*Use](sc.Elements)
	require.Len(t, uses, 1)
	assert.Equal(t, "FunctionalExchangeSymbol", uses[0].Href)
	assert.Equal(t, layout.Point{X: 41, Y: 6}, layout.Point{X: uses[0].X, Y: uses[0].Y})
}

func TestBuildUnknownMarker(t *testing.T) {
	d := &diagram.Diagram{
		Class: "Test Diagram",
		Contents: []diagram.Object{{
			Type: diagram.TypeEdge, ID: "bad", Class: "Broken",
			Points: [][2]float64{{0, 0}, {1, 1}},
		}},
	}
	_, err := newTestBuilder(t, nil).Build(d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, decorations.ErrUnknownDecoration))
	assert.Contains(t, err.Error(), "bad")
}

func TestBuildPorts(t *testing.T) {
	d := &diagram.Diagram{
		Class: "Test Diagram",
		Contents: []diagram.Object{
			// 端口可以出现在父对象之前。
			{Type: diagram.TypeSymbol, ID: "p1", Class: "FIP", Parent: "f1", X: -5, Y: 20, Width: 10, Height: 10},
			{Type: diagram.TypeSymbol, ID: "p2", Class: "PP", Parent: "f1", X: 40, Y: 45, Width: 10, Height: 10,
				Label: &diagram.Label{Text: "p", Box: &diagram.Rect{X: 40, Y: 60, Width: 20, Height: 12}}},
			{Type: diagram.TypeBox, ID: "f1", Class: "LogicalFunction", Width: 100, Height: 50},
		},
	}
	sc, err := newTestBuilder(t, nil).Build(d)
	require.NoError(t, err)

	uses := findAll[*Use](sc.Elements)
	require.Len(t, uses, 1)
	assert.Equal(t, "PortSymbol", uses[0].Href)
	assert.Equal(t, "rotate(90 0.5 25.5)", uses[0].Transform)
	assert.Contains(t, sc.Defs.Decorations, "PortSymbol")

	var portRect *Rect
	for _, r := range findAll[*Rect](sc.Elements) {
		if r.Class == "PP" {
			portRect = r
		}
	}
	require.NotNil(t, portRect)
	assert.Equal(t, "rotate(0 45.5 50.5)", portRect.Transform)

	// 端口标签只画一次。
	var portTexts int
	for _, txt := range findAll[*Text](sc.Elements) {
		if len(txt.Spans) > 0 && txt.Spans[0].Text == "p" {
			portTexts++
		}
	}
	assert.Equal(t, 1, portTexts)
}

func TestPortTransformation(t *testing.T) {
	parent := diagram.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	assert.Equal(t, "rotate(90 0.5 25.5)", PortTransformation(-4.5, 20.5, 10, 10, "FIP", parent))
	assert.Equal(t, "rotate(270 0.5 25.5)", PortTransformation(-4.5, 20.5, 10, 10, "FOP", parent))
	assert.Equal(t, "rotate(-90 100.5 25.5)", PortTransformation(95.5, 20.5, 10, 10, "CP_OUT", parent))
	assert.Equal(t, "rotate(-180 50.5 0.5)", PortTransformation(45.5, -4.5, 10, 10, "CP_INOUT", parent))
	assert.Equal(t, "rotate(180 50.5 50.5)", PortTransformation(45.5, 45.5, 10, 10, "CP_IN", parent))
}

func TestBuildPortWithoutParent(t *testing.T) {
	d := &diagram.Diagram{Contents: []diagram.Object{
		{Type: diagram.TypeSymbol, ID: "p1", Class: "FIP", Parent: "missing"},
	}}
	_, err := newTestBuilder(t, nil).Build(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestBuildCircleUsesStrokeAsFill(t *testing.T) {
	d := &diagram.Diagram{Contents: []diagram.Object{
		{Type: diagram.TypeCircle, ID: "c", Center: [2]float64{10, 10}, Radius: 3},
	}}
	sc, err := newTestBuilder(t, nil).Build(d)
	require.NoError(t, err)

	circles := findAll[*Circle](sc.Elements)
	require.Len(t, circles, 1)
	assert.Equal(t, 10.5, circles[0].CX)
	c, ok := circles[0].Style.Fill.Primary()
	require.True(t, ok)
	assert.Equal(t, style.Black, c)
	assert.Nil(t, circles[0].Style.Stroke)
}

func TestBuildFeaturesAndDescription(t *testing.T) {
	desc := "about"
	d := &diagram.Diagram{Contents: []diagram.Object{{
		Type: diagram.TypeBox, ID: "cls", Class: "Class",
		X: 0, Y: 0, Width: 200, Height: 100,
		Label:       &diagram.Label{Text: "Name"},
		Description: &desc,
		Features:    []string{"<b>a</b>: int", "b"},
	}}}
	sc, err := newTestBuilder(t, nil).Build(d)
	require.NoError(t, err)

	lines := findAll[*Line](sc.Elements)
	require.Len(t, lines, 1)
	assert.Equal(t, 24.5, lines[0].Y1)

	var features, label *Text
	for _, txt := range findAll[*Text](sc.Elements) {
		switch {
		case txt.Class == "Features":
			features = txt
		case len(txt.Spans) > 0 && txt.Spans[0].Text == "Name":
			label = txt
		}
	}
	require.NotNil(t, features)
	require.Len(t, features.Spans, 2)
	assert.Equal(t, "a: int", features.Spans[0].Text)
	assert.Equal(t, layout.AnchorStart, features.Anchor)

	require.NotNil(t, label)
	// Class 的标签固定在顶部：y = 0 + 5 + 12/2。
	assert.Equal(t, 11.0, label.Spans[0].Y)
	assert.Len(t, sc.Labels, 3)
}

func TestBuildOnlyIcon(t *testing.T) {
	d := &diagram.Diagram{Contents: []diagram.Object{{
		Type: diagram.TypeBox, ID: "r", Class: "Requirement", X: 0, Y: 0, Width: 100, Height: 60,
	}}}
	sc, err := newTestBuilder(t, nil).Build(d)
	require.NoError(t, err)

	uses := findAll[*Use](sc.Elements)
	require.Len(t, uses, 1)
	assert.Equal(t, "RequirementSymbol", uses[0].Href)
	assert.Equal(t, 50.0, uses[0].Width)
	assert.Equal(t, 44.25, uses[0].X)
	assert.Equal(t, 5.0, uses[0].Y)
}

func TestBuildRejectsInvalidType(t *testing.T) {
	d := &diagram.Diagram{Contents: []diagram.Object{{Type: "blob", ID: "x"}}}
	_, err := newTestBuilder(t, nil).Build(d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagram.ErrInvalidType))
}

func TestBuildLogsUnknownDiagramClass(t *testing.T) {
	var buf bytes.Buffer
	b := newTestBuilder(t, log.New(&buf, "", 0))
	_, err := b.Build(&diagram.Diagram{Class: "Nope"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Nope")
}

func TestBuildDebugHelpingLines(t *testing.T) {
	b := newTestBuilder(t, nil)
	b.debug = true
	sc, err := b.Build(&diagram.Diagram{Contents: []diagram.Object{
		{Type: diagram.TypeBox, ID: "b", Width: 10, Height: 10},
	}})
	require.NoError(t, err)
	lines := findAll[*Line](sc.Elements)
	require.Len(t, lines, 2)
	assert.Equal(t, "5", lines[0].Style.StrokeDasharray)
}

package svgrenderer

import (
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/ByLCY/capsvg/scene"
	"github.com/ByLCY/capsvg/svgattr"
)

// decoFunc 把一个装饰定义写入 <defs>。
type decoFunc func(c *svg.SVG)

// 所有符号都画在 50x50 的 viewBox 中，由 <use> 缩放到图标尺寸。
const symbolViewBox = "0 0 50 50"

const (
	outline     = `stroke="#000000" stroke-width="2"`
	thinOutline = `stroke="#000000" stroke-width="1"`
)

var decorationWriters = map[string]decoFunc{
	"ComponentGradient": gradient("ComponentGradient", "#c3d7ef", "#8fb0d8"),
	"ActorGradient":     gradient("ActorGradient", "#dcf0f2", "#a4d7dd"),
	"FunctionGradient":  gradient("FunctionGradient", "#d7f0c8", "#a6d88b"),

	"ErrorSymbol": symbol("ErrorSymbol", func(c *svg.SVG) {
		c.Rect(2, 2, 46, 46, `fill="#ffffff"`, `stroke="#ef2929"`, `stroke-width="3"`)
		c.Line(10, 10, 40, 40, `stroke="#ef2929"`, `stroke-width="5"`)
		c.Line(40, 10, 10, 40, `stroke="#ef2929"`, `stroke-width="5"`)
	}),
	"RequirementSymbol": symbol("RequirementSymbol", func(c *svg.SVG) {
		c.Rect(6, 2, 38, 46, `fill="#ffffff"`, outline)
		for _, y := range []int{14, 22, 30, 38} {
			c.Line(12, y, 38, y, thinOutline)
		}
	}),
	"StickFigureSymbol": symbol("StickFigureSymbol", stickFigure),
	"PortSymbol": symbol("PortSymbol", func(c *svg.SVG) {
		c.Rect(0, 0, 50, 50, `fill="#ffffff"`, outline)
		c.Polygon([]int{12, 38, 25}, []int{14, 14, 38}, `fill="#000000"`)
	}),
	"ComponentPortSymbol": symbol("ComponentPortSymbol", func(c *svg.SVG) {
		c.Rect(0, 0, 50, 50, `fill="#ffffff"`, outline)
		c.Polygon([]int{10, 40, 25}, []int{10, 10, 40}, `fill="#000000"`)
	}),

	"LogicalComponentSymbol":      symbol("LogicalComponentSymbol", component("ComponentGradient")),
	"LogicalHumanComponentSymbol": symbol("LogicalHumanComponentSymbol", humanComponent),
	"LogicalActorSymbol":          symbol("LogicalActorSymbol", component("ActorGradient")),
	"LogicalHumanActorSymbol":     symbol("LogicalHumanActorSymbol", useStickFigure),
	"LogicalFunctionSymbol":       symbol("LogicalFunctionSymbol", function("FunctionGradient")),
	"SystemComponentSymbol":       symbol("SystemComponentSymbol", component("ComponentGradient")),
	"SystemActorSymbol":           symbol("SystemActorSymbol", component("ActorGradient")),
	"SystemHumanActorSymbol":      symbol("SystemHumanActorSymbol", useStickFigure),
	"SystemFunctionSymbol":        symbol("SystemFunctionSymbol", function("FunctionGradient")),
	"PhysicalComponentSymbol": symbol("PhysicalComponentSymbol", func(c *svg.SVG) {
		component("ComponentGradient")(c)
		c.Line(12, 40, 38, 40, outline)
	}),
	"OperationalActivitySymbol": symbol("OperationalActivitySymbol", function("FunctionGradient")),
	"OperationalActorBoxSymbol": symbol("OperationalActorBoxSymbol", func(c *svg.SVG) {
		c.Rect(2, 2, 46, 46, `fill="url(#ActorGradient)"`, outline)
		useStickFigure(c)
	}),
	"OperationalActorSymbol": symbol("OperationalActorSymbol", useStickFigure),
	"EntitySymbol": symbol("EntitySymbol", func(c *svg.SVG) {
		c.Rect(4, 8, 42, 34, `fill="#ffffff"`, outline)
		c.Line(4, 18, 46, 18, outline)
	}),
	"OperationalCapabilitySymbol": symbol("OperationalCapabilitySymbol", func(c *svg.SVG) {
		c.Ellipse(25, 25, 22, 14, `fill="#f2a36d"`, outline)
	}),
	"CapabilitySymbol": symbol("CapabilitySymbol", func(c *svg.SVG) {
		c.Ellipse(25, 25, 22, 14, `fill="#bfd3e6"`, outline)
	}),
	"MissionSymbol": symbol("MissionSymbol", func(c *svg.SVG) {
		c.Polygon([]int{25, 47, 25, 3}, []int{3, 25, 47, 25}, `fill="#bfd3e6"`, outline)
	}),

	"FunctionalExchangeSymbol":  symbol("FunctionalExchangeSymbol", exchange("#00880e")),
	"ComponentExchangeSymbol":   symbol("ComponentExchangeSymbol", exchange("#4a4a97")),
	"PhysicalLinkSymbol":        symbol("PhysicalLinkSymbol", exchange("#ef2929")),
	"OperationalExchangeSymbol": symbol("OperationalExchangeSymbol", exchange("#f57900")),

	"ModeSymbol": symbol("ModeSymbol", func(c *svg.SVG) {
		c.Roundrect(3, 8, 44, 34, 10, 10, `fill="#ffffff"`, outline)
		c.Text(25, 31, "M", `text-anchor="middle"`, `font-size="18"`)
	}),
	"StateSymbol": symbol("StateSymbol", func(c *svg.SVG) {
		c.Roundrect(3, 8, 44, 34, 10, 10, `fill="#ffffff"`, outline)
		c.Text(25, 31, "S", `text-anchor="middle"`, `font-size="18"`)
	}),
	"FinalStateSymbol": symbol("FinalStateSymbol", func(c *svg.SVG) {
		c.Circle(25, 25, 22, `fill="#ffffff"`, outline)
		c.Circle(25, 25, 14, `fill="#000000"`)
	}),
	"InitialPseudoStateSymbol": symbol("InitialPseudoStateSymbol", func(c *svg.SVG) {
		c.Circle(25, 25, 20, `fill="#000000"`)
	}),
	"TerminatePseudoStateSymbol": symbol("TerminatePseudoStateSymbol", func(c *svg.SVG) {
		c.Line(8, 8, 42, 42, outline)
		c.Line(42, 8, 8, 42, outline)
	}),
	"AndControlNodeSymbol": symbol("AndControlNodeSymbol", controlNode("&")),
	"OrControlNodeSymbol":  symbol("OrControlNodeSymbol", controlNode("|")),
	"ItControlNodeSymbol":  symbol("ItControlNodeSymbol", controlNode("It")),
}

// 箭头标记按描边颜色特化，几何在 markerUnits="userSpaceOnUse" 下给出。
var markerWriters = map[string]func(c *svg.SVG, m scene.Marker){
	"ArrowMark": func(c *svg.SVG, m scene.Marker) {
		startMarker(c, m, 7, 4, 8, 8)
		c.Path("M 0 0 L 7 4 L 0 8", `fill="none"`, markerStroke(m))
		c.MarkerEnd()
	},
	"FineArrowMark": func(c *svg.SVG, m scene.Marker) {
		startMarker(c, m, 6, 3, 7, 7)
		c.Path("M 0 0 L 6 3 L 0 6", `fill="none"`, markerStroke(m))
		c.MarkerEnd()
	},
	"DiamondMark": func(c *svg.SVG, m scene.Marker) {
		startMarker(c, m, 1, 5, 18, 10)
		c.Polygon([]int{1, 9, 17, 9}, []int{5, 1, 5, 9}, `fill="#ffffff"`, markerStroke(m))
		c.MarkerEnd()
	},
	"FilledDiamondMark": func(c *svg.SVG, m scene.Marker) {
		startMarker(c, m, 1, 5, 18, 10)
		c.Polygon([]int{1, 9, 17, 9}, []int{5, 1, 5, 9}, attr("fill", m.Stroke.String()), markerStroke(m))
		c.MarkerEnd()
	},
	"GeneralizationMark": func(c *svg.SVG, m scene.Marker) {
		startMarker(c, m, 14, 8, 16, 16)
		c.Polygon([]int{1, 14, 1}, []int{1, 8, 15}, `fill="#ffffff"`, markerStroke(m))
		c.MarkerEnd()
	},
}

func startMarker(c *svg.SVG, m scene.Marker, refX, refY, w, h int) {
	c.Marker(m.ID, refX, refY, w, h, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
}

func markerStroke(m scene.Marker) string {
	return attr("stroke", m.Stroke.String()) + " " + attr("stroke-width", svgattr.FormatNumber(m.StrokeWidth))
}

func gradient(id string, from, to string) decoFunc {
	stops := []svg.Offcolor{
		{Offset: 0, Color: from, Opacity: 1},
		{Offset: 100, Color: to, Opacity: 1},
	}
	return func(c *svg.SVG) { c.LinearGradient(id, 0, 0, 0, 100, stops) }
}

// writeGradient 写出由样式产生的自上而下渐变，各停止点均匀分布。
func writeGradient(c *svg.SVG, g scene.Gradient) {
	stops := make([]svg.Offcolor, len(g.Colors))
	for i, col := range g.Colors {
		var offset uint8
		if len(g.Colors) > 1 {
			offset = uint8(100 * i / (len(g.Colors) - 1))
		}
		stops[i] = svg.Offcolor{Offset: offset, Color: col.Hex(), Opacity: 1}
	}
	c.LinearGradient(g.ID, 0, 0, 0, 100, stops)
}

func symbol(id string, body decoFunc) decoFunc {
	return func(c *svg.SVG) {
		fmt.Fprintf(c.Writer, "<symbol %s %s>\n", attr("id", id), attr("viewBox", symbolViewBox))
		body(c)
		fmt.Fprintln(c.Writer, "</symbol>")
	}
}

func component(gradientID string) decoFunc {
	return func(c *svg.SVG) {
		c.Rect(8, 2, 40, 46, attr("fill", "url(#"+gradientID+")"), outline)
		c.Rect(2, 10, 12, 8, `fill="#ffffff"`, outline)
		c.Rect(2, 30, 12, 8, `fill="#ffffff"`, outline)
	}
}

func humanComponent(c *svg.SVG) {
	component("ComponentGradient")(c)
	fmt.Fprintf(c.Writer, "<use %s x=\"18\" y=\"8\" width=\"26\" height=\"34\"/>\n", attr("href", "#StickFigureSymbol"))
}

func function(gradientID string) decoFunc {
	return func(c *svg.SVG) {
		c.Ellipse(25, 25, 22, 16, attr("fill", "url(#"+gradientID+")"), outline)
	}
}

func stickFigure(c *svg.SVG) {
	c.Circle(25, 9, 7, `fill="none"`, outline)
	c.Line(25, 16, 25, 32, outline)
	c.Line(10, 22, 40, 22, outline)
	c.Polyline([]int{12, 25, 38}, []int{47, 32, 47}, `fill="none"`, outline)
}

func useStickFigure(c *svg.SVG) {
	fmt.Fprintf(c.Writer, "<use %s x=\"0\" y=\"0\" width=\"50\" height=\"50\"/>\n", attr("href", "#StickFigureSymbol"))
}

func exchange(color string) decoFunc {
	return func(c *svg.SVG) {
		c.Line(4, 25, 40, 25, attr("stroke", color), `stroke-width="4"`)
		c.Polygon([]int{32, 48, 32}, []int{14, 25, 36}, attr("fill", color))
	}
}

func controlNode(sign string) decoFunc {
	return func(c *svg.SVG) {
		c.Circle(25, 25, 22, `fill="#ffffff"`, outline)
		c.Text(25, 32, sign, `text-anchor="middle"`, `font-size="20"`)
	}
}

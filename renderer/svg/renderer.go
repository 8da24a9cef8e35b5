// Package svgrenderer 把 scene.Scene 输出为 SVG 文档。
package svgrenderer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/ByLCY/capsvg/decorations"
	"github.com/ByLCY/capsvg/layout"
	"github.com/ByLCY/capsvg/scene"
	"github.com/ByLCY/capsvg/svgattr"
)

// Options 控制 SVG 输出。
type Options struct {
	// Title 写入 <title>；为空时使用场景名，二者都为空则不输出。
	Title string
}

// Renderer 实现 renderer.Renderer，输出 SVG。
type Renderer struct {
	opts Options
}

// New creates an SVG renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render 输出完整的 SVG 文档。
func (r *Renderer) Render(s *scene.Scene) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("scene 为空")
	}
	var buf bytes.Buffer
	c := svg.New(&buf)

	attrs := []string{
		attr("viewBox", strings.Join([]string{num(s.X), num(s.Y), num(s.Width), num(s.Height)}, " ")),
	}
	if s.Class != "" {
		attrs = append(attrs, attr("class", s.Class))
	}
	if s.Style != "" {
		attrs = append(attrs, attr("style", s.Style))
	}
	c.Start(int(math.Ceil(s.Width)), int(math.Ceil(s.Height)), attrs...)

	title := r.opts.Title
	if title == "" {
		title = s.Name
	}
	if title != "" {
		c.Title(title)
	}
	if err := writeDefs(c, s.Defs); err != nil {
		return nil, err
	}
	for _, el := range s.Elements {
		if err := writeElement(c, el); err != nil {
			return nil, err
		}
	}
	c.End()
	return buf.Bytes(), nil
}

func writeDefs(c *svg.SVG, defs scene.Defs) error {
	if len(defs.Decorations) == 0 && len(defs.Gradients) == 0 && len(defs.Markers) == 0 {
		return nil
	}
	c.Def()
	for _, name := range defs.Decorations {
		w, ok := decorationWriters[name]
		if !ok {
			return fmt.Errorf("svg: %w: %q", decorations.ErrUnknownDecoration, name)
		}
		w(c)
	}
	for _, g := range defs.Gradients {
		writeGradient(c, g)
	}
	for _, m := range defs.Markers {
		w, ok := markerWriters[m.Name]
		if !ok {
			return fmt.Errorf("svg: %w: 标记 %q", decorations.ErrUnknownDecoration, m.Name)
		}
		w(c, m)
	}
	c.DefEnd()
	return nil
}

func writeElement(c *svg.SVG, el scene.Element) error {
	switch e := el.(type) {
	case *scene.Group:
		var attrs []string
		attrs = appendAttr(attrs, "id", e.ID)
		attrs = appendAttr(attrs, "class", e.Class)
		c.Group(attrs...)
		for _, child := range e.Children {
			if err := writeElement(c, child); err != nil {
				return err
			}
		}
		c.Gend()
	case *scene.Rect:
		attrs := []string{attr("x", num(e.X)), attr("y", num(e.Y)), attr("width", num(e.Width)), attr("height", num(e.Height))}
		if e.RX != 0 {
			attrs = append(attrs, attr("rx", num(e.RX)))
		}
		if e.RY != 0 {
			attrs = append(attrs, attr("ry", num(e.RY)))
		}
		attrs = appendAttr(attrs, "class", e.Class)
		attrs = appendAttr(attrs, "transform", e.Transform)
		attrs = appendAttr(attrs, "style", e.Style.CSS())
		emptyElement(c, "rect", attrs)
	case *scene.Path:
		var attrs []string
		attrs = appendAttr(attrs, "class", e.Class)
		attrs = appendAttr(attrs, "style", e.Style.CSS())
		c.Path(pathData(e.Points), attrs...)
	case *scene.Line:
		attrs := []string{attr("x1", num(e.X1)), attr("y1", num(e.Y1)), attr("x2", num(e.X2)), attr("y2", num(e.Y2))}
		attrs = appendAttr(attrs, "style", e.Style.CSS())
		emptyElement(c, "line", attrs)
	case *scene.Circle:
		attrs := []string{attr("cx", num(e.CX)), attr("cy", num(e.CY)), attr("r", num(e.R))}
		attrs = appendAttr(attrs, "style", e.Style.CSS())
		emptyElement(c, "circle", attrs)
	case *scene.Use:
		attrs := []string{
			attr("xlink:href", "#"+e.Href),
			attr("x", num(e.X)), attr("y", num(e.Y)),
			attr("width", num(e.Width)), attr("height", num(e.Height)),
		}
		attrs = appendAttr(attrs, "class", e.Class)
		attrs = appendAttr(attrs, "transform", e.Transform)
		attrs = appendAttr(attrs, "style", e.Style.CSS())
		emptyElement(c, "use", attrs)
	case *scene.Text:
		writeText(c, e)
	default:
		return fmt.Errorf("svg: 不支持的元素类型 %T", el)
	}
	return nil
}

func writeText(c *svg.SVG, t *scene.Text) {
	var attrs []string
	attrs = appendAttr(attrs, "class", t.Class)
	attrs = appendAttr(attrs, "transform", t.Transform)
	anchor := t.Anchor
	if anchor == "" {
		anchor = layout.AnchorStart
	}
	attrs = append(attrs, attr("text-anchor", string(anchor)), attr("dominant-baseline", "middle"))
	attrs = appendAttr(attrs, "style", t.Style.CSS())

	fmt.Fprintf(c.Writer, "<text %s>", strings.Join(attrs, " "))
	for _, sp := range t.Spans {
		fmt.Fprintf(c.Writer, `<tspan %s %s xml:space="preserve">%s</tspan>`,
			attr("x", num(sp.X)), attr("y", num(sp.Y)), escape(sp.Text))
	}
	fmt.Fprintln(c.Writer, "</text>")
}

// pathData 把折线转换为 path 的 d 属性，例如 "M 0.5 0.5 L 100.5 0.5"。
func pathData(points []layout.Point) string {
	var sb strings.Builder
	for i, p := range points {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(num(p.X))
		sb.WriteByte(' ')
		sb.WriteString(num(p.Y))
	}
	return sb.String()
}

func emptyElement(c *svg.SVG, name string, attrs []string) {
	fmt.Fprintf(c.Writer, "<%s %s/>\n", name, strings.Join(attrs, " "))
}

func appendAttr(attrs []string, name, value string) []string {
	if value == "" {
		return attrs
	}
	return append(attrs, attr(name, value))
}

// attr 返回转义后的 name="value"。
func attr(name, value string) string {
	return name + `="` + escape(value) + `"`
}

func escape(s string) string {
	var sb strings.Builder
	// strings.Builder 不会返回写入错误。
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func num(v float64) string { return svgattr.FormatNumber(v) }

package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/capsvg/layout"
	"github.com/ByLCY/capsvg/renderer"
	"github.com/ByLCY/capsvg/scene"
	"github.com/ByLCY/capsvg/style"
)

// iconPlaceholder 是 PDF 中代替符号引用的浅灰描边。
var iconPlaceholder = canvas.Hex("#babdb6")

// Renderer 把场景绘制为单页 PDF。坐标由像素换算为毫米；
// 符号引用画成占位框，元素上的 transform 不生效。
type Renderer struct {
	measurer *Measurer
	font     layout.FontDescriptor
	title    string
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer creates a PDF renderer sharing m's font families; a nil m creates one from opts.
func NewRenderer(m *Measurer, opts Options) *Renderer {
	if m == nil {
		m = NewMeasurer(opts)
	}
	font := opts.Font
	if font.Size <= 0 {
		font.Size = DefaultFontSize
	}
	return &Renderer{measurer: m, font: font, title: opts.Title}
}

// Render renders the scene into a PDF byte slice.
func (r *Renderer) Render(s *scene.Scene) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("场景为空")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("场景尺寸无效: %gx%g", s.Width, s.Height)
	}
	w, h := s.Width*layout.PxToMm, s.Height*layout.PxToMm

	var buf bytes.Buffer
	writer := pdf.New(&buf, w, h, nil)
	title := r.title
	if title == "" {
		title = s.Name
	}
	writer.SetInfo(title, s.Class, "", "", "capsvg")

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与场景保持左上角为原点

	p := &painter{r: r, ctx: ctx, originX: s.X, originY: s.Y}
	for _, el := range s.Elements {
		if err := p.draw(el); err != nil {
			return nil, err
		}
	}
	c.RenderTo(writer)

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

type painter struct {
	r                *Renderer
	ctx              *canvas.Context
	originX, originY float64
}

// mm 把场景坐标（像素）换算为页面坐标（毫米）。
func (p *painter) mm(x, y float64) (float64, float64) {
	return (x - p.originX) * layout.PxToMm, (y - p.originY) * layout.PxToMm
}

func (p *painter) draw(el scene.Element) error {
	switch e := el.(type) {
	case *scene.Group:
		for _, child := range e.Children {
			if err := p.draw(child); err != nil {
				return err
			}
		}
	case *scene.Rect:
		p.drawRect(e)
	case *scene.Path:
		p.drawPolyline(e.Points, e.Style)
	case *scene.Line:
		p.drawPolyline([]layout.Point{{X: e.X1, Y: e.Y1}, {X: e.X2, Y: e.Y2}}, e.Style)
	case *scene.Circle:
		p.drawCircle(e)
	case *scene.Use:
		p.drawUse(e)
	case *scene.Text:
		p.drawText(e)
	default:
		return fmt.Errorf("pdf: 不支持的元素类型 %T", el)
	}
	return nil
}

// applyStyle 设置填充与描边；未设置的填充按 SVG 默认为黑色，未设置的描边为无。
func (p *painter) applyStyle(s style.Styling, defaultFill bool) {
	switch {
	case s.Fill != nil:
		p.ctx.SetFillColor(paintColor(s.Fill))
	case defaultFill:
		p.ctx.SetFillColor(canvas.Black)
	default:
		p.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	}
	p.ctx.SetStrokeColor(paintColor(s.Stroke))
	p.ctx.SetStrokeWidth(s.StrokeWidthOr(1) * layout.PxToMm)
	dashes := parseDashes(s.StrokeDasharray)
	for i := range dashes {
		dashes[i] *= layout.PxToMm
	}
	p.ctx.SetDashes(0, dashes...)
}

// drawRect 绘制矩形（毫米单位）。
func (p *painter) drawRect(rc *scene.Rect) {
	p.applyStyle(rc.Style, true)
	x, y := p.mm(rc.X, rc.Y)
	w, h := rc.Width*layout.PxToMm, rc.Height*layout.PxToMm
	if rx := max(rc.RX, rc.RY); rx > 0 {
		p.ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, rx*layout.PxToMm))
		return
	}
	p.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// drawPolyline 绘制折线，只描边不填充。
func (p *painter) drawPolyline(points []layout.Point, s style.Styling) {
	if len(points) < 2 {
		return
	}
	s.Fill = style.NoPaint()
	p.applyStyle(s, false)
	path := &canvas.Path{}
	for i, pt := range points {
		x, y := p.mm(pt.X, pt.Y)
		if i == 0 {
			path.MoveTo(x, y)
			continue
		}
		path.LineTo(x, y)
	}
	p.ctx.DrawPath(0, 0, path)
}

// drawCircle 绘制圆形，canvas.Circle 以原点为圆心。
func (p *painter) drawCircle(c *scene.Circle) {
	p.applyStyle(c.Style, true)
	x, y := p.mm(c.CX, c.CY)
	p.ctx.DrawPath(x, y, canvas.Circle(c.R*layout.PxToMm))
}

func (p *painter) drawUse(u *scene.Use) {
	p.ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	p.ctx.SetStrokeColor(iconPlaceholder)
	p.ctx.SetStrokeWidth(0.5 * layout.PxToMm)
	p.ctx.SetDashes(0)
	x, y := p.mm(u.X, u.Y)
	p.ctx.DrawPath(x, y, canvas.Rectangle(u.Width*layout.PxToMm, u.Height*layout.PxToMm))
}

// drawText 逐行绘制 tspan。场景中的 y 是行的垂直中线（dominant-baseline: middle），
// 这里按字体上升部与下降部换算为基线。
func (p *painter) drawText(t *scene.Text) {
	font := p.r.font
	if family := firstFamily(t.Style.FontFamily); family != "" {
		font.Family = family
	}
	if size := layout.FontSizePT(t.Style.FontSize); size > 0 {
		font.Size = size
	}
	var fill color.Color = canvas.Black
	if c, ok := t.Style.Fill.Primary(); ok {
		fill = toRGBA(c)
	}
	// 像素字号换算为页面上的 pt：size(pt) → px → mm → pt。
	sizePt := font.Size * layout.ExtentScale * layout.PxToMm * layout.MmToPt
	face := p.r.measurer.Face(font.Family, parseFontStyle(t.Style.FontWeight, t.Style.FontStyle), sizePt, fill)
	metrics := face.Metrics()

	align := canvas.Left
	if t.Anchor == layout.AnchorMiddle {
		align = canvas.Center
	}
	for _, sp := range t.Spans {
		if sp.Text == "" {
			continue
		}
		x, y := p.mm(sp.X, sp.Y)
		baseline := y + (metrics.Ascent-metrics.Descent)/2
		p.ctx.DrawText(x, baseline, canvas.NewTextLine(face, sp.Text, align))
	}
}

func firstFamily(families string) string {
	first, _, _ := strings.Cut(families, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

// paintColor 返回画笔的单一颜色；渐变取两端颜色在 Lab 空间的中点。
func paintColor(pt *style.Paint) color.Color {
	switch {
	case pt == nil || pt.None || len(pt.Colors) == 0:
		return color.RGBA{0, 0, 0, 0}
	case pt.IsGradient():
		from, to := pt.Colors[0].Colorful(), pt.Colors[len(pt.Colors)-1].Colorful()
		r, g, b := from.BlendLab(to, 0.5).Clamped().RGB255()
		return canvas.RGBA(float64(r)/255.0, float64(g)/255.0, float64(b)/255.0, 1.0)
	default:
		return toRGBA(pt.Colors[0])
	}
}

func toRGBA(c style.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// parseDashes 解析 stroke-dasharray，例如 "5" 或 "5, 3"；无法解析时返回实线。
func parseDashes(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || v < 0 {
			return nil
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

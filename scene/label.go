package scene

import (
	"fmt"
	"strings"

	"github.com/ByLCY/capsvg/decorations"
	"github.com/ByLCY/capsvg/layout"
	"github.com/ByLCY/capsvg/style"
	"github.com/ByLCY/capsvg/svgattr"
)

type labelRequest struct {
	box     layout.LabelBox
	class   string // 对象类，决定图标符号
	text    style.TextStyling
	anchor  layout.Anchor
	yMargin *float64
	icon    bool
}

// drawLabel 排版一个标签，追加文本元素以及（若该类有符号）图标引用。
func (dr *drawing) drawLabel(grp *Group, req labelRequest) error {
	symbol := decorations.SymbolName(req.class)
	renderIcon := req.icon && dr.registry.Has(symbol)

	opts := layout.LabelOptions{
		Anchor:    req.anchor,
		YMargin:   req.yMargin,
		Transform: req.text.Transform,
	}
	if renderIcon {
		opts.Icon = layout.IconOptions{Enabled: true, Size: decorations.IconSize, Padding: decorations.IconPadding}
	}
	label, err := dr.engineFor(req.text).Build(req.box, opts)
	if err != nil {
		return err
	}
	dr.scene.Labels = append(dr.scene.Labels, label)

	textStyle := req.text
	textStyle.Transform = ""
	grp.Children = append(grp.Children, &Text{
		Class:     req.box.Class,
		Anchor:    label.Anchor,
		Transform: label.Transform,
		Style:     textStyle,
		Spans:     label.Spans,
	})

	if label.Icon != nil {
		if err := dr.addIcon(grp, req.class, *label.Icon, label.IconSize); err != nil {
			return err
		}
	}
	return nil
}

// engineFor 按文本样式中的字体族与字号返回排版引擎；未设置的部分沿用默认字体。
func (dr *drawing) engineFor(text style.TextStyling) *layout.Engine {
	font := dr.engine.Font()
	if family := firstFamily(text.FontFamily); family != "" {
		font.Family = family
	}
	if size := layout.FontSizePT(text.FontSize); size > 0 {
		font.Size = size
	}
	if font == dr.engine.Font() {
		return dr.engine
	}
	return dr.engine.WithFont(font)
}

func firstFamily(families string) string {
	first, _, _ := strings.Cut(families, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

func (dr *drawing) addIcon(grp *Group, class string, pos layout.Point, size float64) error {
	name := decorations.SymbolName(class)
	if err := dr.addDecorations(name); err != nil {
		return err
	}
	grp.Children = append(grp.Children, &Use{
		Href: name, X: pos.X, Y: pos.Y, Width: size, Height: size, Class: class,
	})
	return nil
}

// addDecorations 把装饰及其依赖加入 defs，每个名字只加一次。
func (dr *drawing) addDecorations(names ...string) error {
	var missing []string
	for _, name := range names {
		if !dr.decoSeen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	order, err := dr.registry.Resolve(missing...)
	if err != nil {
		return err
	}
	for _, name := range order {
		if dr.decoSeen[name] {
			continue
		}
		dr.decoSeen[name] = true
		dr.scene.Defs.Decorations = append(dr.scene.Defs.Decorations, name)
	}
	return nil
}

// deployDefs 为样式中的渐变与箭头标记生成定义。
func (dr *drawing) deployDefs(s style.Styling) error {
	dr.deployGradients(s.Gradients()...)
	for _, name := range []string{s.MarkerStart, s.MarkerEnd} {
		if name == "" {
			continue
		}
		d, ok := dr.registry.Get(name)
		if !ok || d.Kind != decorations.KindMarker {
			return fmt.Errorf("%w: 标记 %q", decorations.ErrUnknownDecoration, name)
		}
		id := s.MarkerID(name)
		if dr.defIDs[id] {
			continue
		}
		dr.defIDs[id] = true
		dr.scene.Defs.Markers = append(dr.scene.Defs.Markers, Marker{
			ID:          id,
			Name:        name,
			Stroke:      s.StrokeColor(),
			StrokeWidth: s.StrokeWidthOr(1),
		})
	}
	return nil
}

func (dr *drawing) deployGradients(paints ...*style.Paint) {
	for _, p := range paints {
		if !p.IsGradient() {
			continue
		}
		id := p.GradientID()
		if dr.defIDs[id] {
			continue
		}
		dr.defIDs[id] = true
		dr.scene.Defs.Gradients = append(dr.scene.Defs.Gradients, Gradient{ID: id, Colors: p.Colors})
	}
}

func fmtNum(v float64) string { return svgattr.FormatNumber(v) }

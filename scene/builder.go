package scene

import (
	"fmt"
	"log"
	"strings"

	"github.com/ByLCY/capsvg/decorations"
	"github.com/ByLCY/capsvg/diagram"
	"github.com/ByLCY/capsvg/helpers"
	"github.com/ByLCY/capsvg/layout"
	"github.com/ByLCY/capsvg/style"
)

// 对象坐标统一偏移半个像素，使 1px 描边落在像素格上。
const pixelOffset = 0.5

// 标签固定上边距（像素）。
const (
	topLabelMargin     = 5
	featureLabelMargin = 7
)

var helpingLineStyle = style.Styling{
	Stroke:          style.Solid(style.Color{R: 239, G: 41, B: 41}),
	StrokeDasharray: "5",
}

// Options configures a Builder.
type Options struct {
	// Config 为 nil 时使用 style.DefaultConfig()。
	Config *style.Config
	// Registry 为 nil 时使用 decorations.Default()。
	Registry *decorations.Registry
	// Logger 接收非致命诊断（例如未知图类），可为 nil。
	Logger *log.Logger
	// Debug 在每个框上画出辅助中线。
	Debug bool
}

// Builder 把 diagram.Diagram 转换为 Scene。Builder 本身无状态，可重复使用。
type Builder struct {
	engine   *layout.Engine
	config   *style.Config
	registry *decorations.Registry
	logger   *log.Logger
	debug    bool
}

// NewBuilder creates a builder laying out labels with engine.
func NewBuilder(engine *layout.Engine, opts Options) *Builder {
	b := &Builder{
		engine:   engine,
		config:   opts.Config,
		registry: opts.Registry,
		logger:   opts.Logger,
		debug:    opts.Debug,
	}
	if b.config == nil {
		b.config = style.DefaultConfig()
	}
	if b.registry == nil {
		b.registry = decorations.Default()
	}
	return b
}

// drawing 是一次 Build 的可变状态。
type drawing struct {
	*Builder
	diagramClass string
	scene        *Scene
	decoSeen     map[string]bool
	defIDs       map[string]bool
	objects      map[string]*diagram.Object
}

// Build 依次绘制图中的对象。任何对象失败都会使整次构建失败。
func (b *Builder) Build(d *diagram.Diagram) (*Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.Class != "" && !b.config.HasDiagramClass(d.Class) && b.logger != nil {
		b.logger.Printf("图类 %q 没有样式定义，使用全局样式", d.Class)
	}

	dr := &drawing{
		Builder:      b,
		diagramClass: d.Class,
		scene: &Scene{
			Name:   d.Name,
			Class:  strings.Join(strings.Fields(d.Class), ""),
			X:      d.X,
			Y:      d.Y,
			Width:  d.Width,
			Height: d.Height,
			Style:  BaseStyle,
		},
		decoSeen: map[string]bool{},
		defIDs:   map[string]bool{},
		objects:  make(map[string]*diagram.Object, len(d.Contents)),
	}
	for i := range d.Contents {
		if id := d.Contents[i].ID; id != "" {
			dr.objects[id] = &d.Contents[i]
		}
	}
	if err := dr.addDecorations(b.config.StaticDecorations(d.Class)...); err != nil {
		return nil, fmt.Errorf("静态装饰: %w", err)
	}

	dr.scene.Elements = append(dr.scene.Elements, &Rect{
		X: d.X, Y: d.Y, Width: d.Width, Height: d.Height,
		Style: style.Styling{Fill: style.Solid(style.Color{R: 255, G: 255, B: 255}), Stroke: style.NoPaint()},
	})

	for i := range d.Contents {
		o := &d.Contents[i]
		if err := dr.drawObject(o); err != nil {
			return nil, fmt.Errorf("绘制对象 %q (%s): %w", o.ID, o.Type, err)
		}
	}
	return dr.scene, nil
}

func (dr *drawing) drawObject(o *diagram.Object) error {
	kind := "Box"
	if o.Type == diagram.TypeEdge || o.Type == diagram.TypeCircle {
		kind = "Edge"
	}
	elementClass := kind
	if o.Class != "" {
		elementClass += "." + o.Class
	}
	cs := dr.config.Lookup(dr.diagramClass, elementClass).Merge(o.Style)

	var (
		grp *Group
		err error
	)
	switch o.Type {
	case diagram.TypeBox:
		grp, err = dr.drawBox(o, cs, true)
	case diagram.TypeEdge:
		grp, err = dr.drawEdge(o, cs)
	case diagram.TypeCircle:
		grp = dr.drawCircle(o, cs)
	case diagram.TypeSymbol:
		grp, err = dr.drawSymbol(o, cs)
	case diagram.TypeBoxSymbol:
		grp, err = dr.drawBoxSymbol(o, cs)
	default:
		return fmt.Errorf("%w: %q", diagram.ErrInvalidType, o.Type)
	}
	if err != nil {
		return err
	}
	dr.scene.Elements = append(dr.scene.Elements, grp)

	if err := dr.deployDefs(cs.Styling); err != nil {
		return err
	}
	dr.deployGradients(cs.Text.Fill)
	return nil
}

func groupClass(kind, class string) string {
	return strings.TrimSpace(kind + " " + class)
}

func (dr *drawing) drawBox(o *diagram.Object, cs style.ClassStyle, withLabel bool) (*Group, error) {
	grp := &Group{ID: o.ID, Class: groupClass("Box", o.Class)}

	var label *layout.LabelBox
	if withLabel && o.Label != nil {
		if o.Label.Box == nil {
			class := o.Class
			if class == "" {
				class = "Box"
			}
			label = &layout.LabelBox{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height, Text: o.Label.Text, Class: class}
		} else {
			lb := annotationBox(*o.Label.Box, o.Label.Text)
			label = &lb
		}
	}

	if err := dr.addRect(grp, o, cs, label); err != nil {
		return nil, err
	}
	if len(o.Context) > 0 {
		grp.Children = append(grp.Children, contextGroup(o.Context))
	}
	return grp, nil
}

func (dr *drawing) addRect(grp *Group, o *diagram.Object, cs style.ClassStyle, label *layout.LabelBox) error {
	x, y := o.X+pixelOffset, o.Y+pixelOffset
	w, h := o.Width, o.Height

	rectStyle := cs.Styling
	rect := &Rect{X: x, Y: y, Width: w, Height: h, Class: o.Class, Transform: helpers.Transformation(o.Class, x, y, w, h)}
	if rectStyle.RX != nil {
		rect.RX = *rectStyle.RX
	}
	if rectStyle.RY != nil {
		rect.RY = *rectStyle.RY
	}
	rectStyle.RX, rectStyle.RY = nil, nil
	rect.Style = rectStyle
	grp.Children = append(grp.Children, rect)

	if o.Description != nil && label != nil {
		desc := *label
		desc.Text = *o.Description
		if err := dr.drawLabel(grp, labelRequest{box: desc, class: o.Class, text: cs.Text, anchor: layout.AnchorMiddle}); err != nil {
			return fmt.Errorf("描述: %w", err)
		}
	}

	if len(o.Features) > 0 || decorations.NeedsFeatureLine.Has(o.Class) {
		fy := y + decorations.FeatureSpace
		grp.Children = append(grp.Children, &Line{X1: x, Y1: fy, X2: x + w, Y2: fy, Style: style.Styling{Stroke: cs.Stroke}})
		if len(o.Features) > 0 {
			if err := dr.drawFeatures(grp, o, x, y, w, h, cs.Text); err != nil {
				return err
			}
		}
	}

	switch {
	case label != nil:
		anchor := layout.AnchorMiddle
		if decorations.StartAligned.Has(o.Class) {
			anchor = layout.AnchorStart
		}
		var yMargin *float64
		if len(o.Children) > 0 || decorations.AlwaysTopLabel.Has(o.Class) {
			yMargin = float64Ptr(topLabelMargin)
		}
		if err := dr.drawLabel(grp, labelRequest{box: *label, class: o.Class, text: cs.Text, anchor: anchor, yMargin: yMargin, icon: true}); err != nil {
			return err
		}
	case decorations.OnlyIcons.Has(o.Class):
		size := float64(decorations.OnlyIconSize)
		pos := layout.Point{
			X: x + (w-size/4)/2,
			Y: y + (decorations.FeatureSpace-15)/2.0,
		}
		if err := dr.addIcon(grp, o.Class, pos, size); err != nil {
			return err
		}
	}

	if dr.debug {
		grp.Children = append(grp.Children,
			&Line{X1: x + w/2, Y1: y, X2: x + w/2, Y2: y + h, Style: helpingLineStyle},
			&Line{X1: x, Y1: y + h/2, X2: x + w, Y2: y + h/2, Style: helpingLineStyle},
		)
	}
	return nil
}

func (dr *drawing) drawFeatures(grp *Group, o *diagram.Object, x, y, w, h float64, text style.TextStyling) error {
	lines := make([]string, 0, len(o.Features))
	for _, f := range o.Features {
		flat, err := helpers.FlattenHTML(f)
		if err != nil {
			return fmt.Errorf("特性 %q: %w", f, err)
		}
		lines = append(lines, flat)
	}
	box := layout.LabelBox{
		X:      x + decorations.FeatureSpace/2,
		Y:      y + decorations.FeatureSpace,
		Width:  w - decorations.FeatureSpace/2,
		Height: h - decorations.FeatureSpace,
		Text:   strings.Join(lines, "\n"),
		Class:  "Features",
	}
	if err := dr.drawLabel(grp, labelRequest{box: box, class: o.Class, text: text, anchor: layout.AnchorStart, yMargin: float64Ptr(featureLabelMargin)}); err != nil {
		return fmt.Errorf("特性: %w", err)
	}
	return nil
}

func (dr *drawing) drawEdge(o *diagram.Object, cs style.ClassStyle) (*Group, error) {
	grp := &Group{ID: o.ID, Class: groupClass("Edge", o.Class)}
	points := make([]layout.Point, len(o.Points))
	for i, p := range o.Points {
		points[i] = layout.Point{X: p[0] + pixelOffset, Y: p[1] + pixelOffset}
	}
	grp.Children = append(grp.Children, &Path{Points: points, Class: "Edge", Style: cs.Styling})
	if len(o.Context) > 0 {
		grp.Children = append(grp.Children, contextGroup(o.Context))
	}

	// 边标签的空间只够放文本；有图标时向两侧加宽。
	hasIcon := dr.registry.Has(decorations.SymbolName(o.Class))
	for _, l := range o.Labels {
		box := annotationBox(*l.Box, l.Text)
		if hasIcon {
			extra := float64(decorations.IconSize + 2*decorations.IconPadding)
			box.Width += extra + 2
			box.X -= extra / 2
		}
		req := labelRequest{box: box, class: o.Class, text: cs.Text, anchor: layout.AnchorMiddle, yMargin: float64Ptr(0), icon: true}
		if err := dr.drawLabel(grp, req); err != nil {
			return nil, err
		}
	}
	return grp, nil
}

func (dr *drawing) drawCircle(o *diagram.Object, cs style.ClassStyle) *Group {
	s := cs.Styling
	s.Fill = s.Stroke
	if _, ok := s.Fill.Primary(); !ok {
		s.Fill = style.Solid(style.Black)
	}
	s.Stroke = nil
	grp := &Group{ID: o.ID, Class: groupClass("Circle", o.Class)}
	grp.Children = append(grp.Children, &Circle{
		CX: o.Center[0] + pixelOffset, CY: o.Center[1] + pixelOffset, R: o.Radius, Style: s,
	})
	return grp
}

func (dr *drawing) drawSymbol(o *diagram.Object, cs style.ClassStyle) (*Group, error) {
	if decorations.AllPorts.Has(o.Class) {
		return dr.drawPort(o, cs)
	}
	x, y := o.X+pixelOffset, o.Y+pixelOffset
	name := decorations.SymbolName(o.Class)
	if err := dr.addDecorations(name); err != nil {
		return nil, err
	}
	grp := &Group{ID: o.ID, Class: groupClass("Box", o.Class)}
	grp.Children = append(grp.Children, &Use{
		Href: name, X: x, Y: y, Width: o.Width, Height: o.Height, Class: o.Class, Style: cs.Styling,
	})
	if o.Label != nil {
		if err := dr.drawAnnotation(grp, o, cs.Text); err != nil {
			return nil, err
		}
	}
	return grp, nil
}

// drawPort 绘制端口：有向端口使用端口符号，其余为矩形，二者都按父框的哪一侧旋转。
func (dr *drawing) drawPort(o *diagram.Object, cs style.ClassStyle) (*Group, error) {
	parent, ok := dr.objects[o.Parent]
	if !ok {
		return nil, fmt.Errorf("端口的父对象 %q 不存在", o.Parent)
	}
	x, y := o.X+pixelOffset, o.Y+pixelOffset
	transform := PortTransformation(x, y, o.Width, o.Height, o.Class, parent.Bounds())

	grp := &Group{ID: o.ID, Class: groupClass("Box", o.Class)}
	if decorations.AllDirectedPorts.Has(o.Class) {
		name := decorations.SymbolName(decorations.PortSymbol(o.Class))
		if err := dr.addDecorations(name); err != nil {
			return nil, err
		}
		grp.Children = append(grp.Children, &Use{
			Href: name, X: x, Y: y, Width: o.Width, Height: o.Height,
			Class: o.Class, Transform: transform, Style: cs.Styling,
		})
	} else {
		grp.Children = append(grp.Children, &Rect{
			X: x, Y: y, Width: o.Width, Height: o.Height,
			Class: o.Class, Transform: transform, Style: cs.Styling,
		})
	}
	if o.Label != nil {
		if err := dr.drawAnnotation(grp, o, cs.Text); err != nil {
			return nil, err
		}
	}
	return grp, nil
}

// PortTransformation 返回端口的旋转：左侧 90°，右侧 -90°，顶部 -180°，底部 0°；
// FOP 与 CP_IN 再转 180°，使箭头朝向框内。
func PortTransformation(x, y, w, h float64, class string, parent diagram.Rect) string {
	parX, parY := parent.X+pixelOffset, parent.Y+pixelOffset
	var angle float64
	switch {
	case x <= parX:
		angle = 90
	case parX+parent.Width < x+w:
		angle = -90
	case y <= parY:
		angle = -180
	}
	if class == "FOP" || class == "CP_IN" {
		angle += 180
	}
	return fmt.Sprintf("rotate(%s %s %s)", fmtNum(angle), fmtNum(x+w/2), fmtNum(y+h/2))
}

func (dr *drawing) drawBoxSymbol(o *diagram.Object, cs style.ClassStyle) (*Group, error) {
	grp, err := dr.drawBox(o, cs, false)
	if err != nil {
		return nil, err
	}
	if err := dr.drawAnnotation(grp, o, cs.Text); err != nil {
		return nil, err
	}
	return grp, nil
}

// drawAnnotation 绘制对象外部的自由标签：居中、不留上边距、不画图标。
func (dr *drawing) drawAnnotation(grp *Group, o *diagram.Object, text style.TextStyling) error {
	bounds := o.Bounds()
	if o.Label.Box != nil {
		bounds = *o.Label.Box
	}
	req := labelRequest{
		box:     annotationBox(bounds, o.Label.Text),
		class:   o.Class,
		text:    text,
		anchor:  layout.AnchorMiddle,
		yMargin: float64Ptr(0),
	}
	return dr.drawLabel(grp, req)
}

func annotationBox(r diagram.Rect, text string) layout.LabelBox {
	return layout.LabelBox{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Text: text, Class: layout.AnnotationClass}
}

func contextGroup(context []string) *Group {
	return &Group{Class: "context-" + strings.Join(context, " context-")}
}

func float64Ptr(v float64) *float64 { return &v }

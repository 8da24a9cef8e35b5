package layout

import (
	"fmt"

	"github.com/ByLCY/capsvg/svgattr"
)

// Build 串联折行、截断与定位，得到可直接绘制的标签。
//
// 文本样式带 rotate(-90, x, y) 变换时跳过按宽高折行，整段文本作为一行放在旋转中心；
// 其它角度直接拒绝。
func (e *Engine) Build(box LabelBox, opts LabelOptions) (*Label, error) {
	anchor := opts.Anchor
	if anchor == "" {
		anchor = AnchorStart
	}
	if anchor != AnchorStart && anchor != AnchorMiddle {
		return nil, fmt.Errorf("layout: unknown text anchor %q", anchor)
	}
	label := &Label{Box: box, Anchor: anchor}

	if opts.Transform != "" {
		tr, err := svgattr.ParseTransform(opts.Transform)
		if err != nil {
			return nil, fmt.Errorf("layout: text transform %q: %w", opts.Transform, err)
		}
		label.Transform = tr.String()
		if rot, ok := tr.Rotation(); ok {
			return e.buildRotated(label, rot, tr.TspanY)
		}
	}

	res, err := e.RenderLines(box, opts.Icon)
	if err != nil {
		return nil, fmt.Errorf("layout label %q: %w", box.Text, err)
	}
	textX, iconX := e.PositionX(box, res, opts.Icon, anchor)
	y, yMargin := e.PositionY(box, res, opts.YMargin)

	label.Spans = make([]Span, 0, len(res.Lines))
	for _, line := range res.Lines {
		label.Spans = append(label.Spans, Span{X: textX, Y: y, Text: line})
		y += res.LineHeight
	}
	if opts.Icon.Enabled {
		pos := e.IconPosition(box, res.TextHeight, yMargin, iconX, opts.Icon)
		label.Icon = &pos
		label.IconSize = opts.Icon.Size
	}
	label.YMargin = yMargin
	label.Layout = &res
	return label, nil
}

func (e *Engine) buildRotated(label *Label, rot svgattr.Func, tspanY *float64) (*Label, error) {
	args := rot.Floats()
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: %s needs an angle and a pivot", ErrUnsupportedRotation, rot)
	}
	if args[0] != -90 {
		return nil, fmt.Errorf("%w: angle %g, only -90 is supported", ErrUnsupportedRotation, args[0])
	}
	x, y := args[1], args[2]
	if tspanY != nil {
		y = *tspanY
	}
	label.Spans = []Span{{X: x, Y: y, Text: label.Box.Text}}
	return label, nil
}

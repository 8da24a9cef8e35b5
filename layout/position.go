package layout

// PositionX 返回文本锚点与图标的 x 坐标。
// 图标相对于文本块的实际宽度定位，而不是相对于标签框，使图标与文本成组居中。
func (e *Engine) PositionX(box LabelBox, res LayoutResult, icon IconOptions, anchor Anchor) (textX, iconX float64) {
	reserved := icon.reservation()
	var iconShift float64
	if icon.Enabled {
		iconShift = icon.Size + icon.Padding
	}
	if anchor == AnchorStart {
		textX = box.X + res.Margin + reserved
		return textX, textX - iconShift
	}
	textX = box.X + (box.Width+reserved)/2
	return textX, textX - (res.MaxLineWidth/2 + iconShift)
}

// PositionY 返回第一行文本的 y 坐标（dominant-baseline: middle）以及实际使用的上边距。
// yMargin 为 nil 时文本块在标签框内垂直居中。
func (e *Engine) PositionY(box LabelBox, res LayoutResult, yMargin *float64) (y, margin float64) {
	var first string
	if len(res.Lines) > 0 {
		first = res.Lines[0]
	}
	baselineAdjust := e.Measure(first).Height / 2
	if yMargin != nil {
		margin = *yMargin
	} else {
		margin = (box.Height - res.TextHeight) / 2
	}
	return box.Y + margin + baselineAdjust, margin
}

// IconPosition centers the icon vertically on the text block.
// Except for annotations the icon never starts left of box.X - icon.Padding.
func (e *Engine) IconPosition(box LabelBox, textHeight, yMargin, iconX float64, icon IconOptions) Point {
	iconY := box.Y + yMargin + (textHeight-icon.Size)/2
	if iconX < box.X-icon.Padding && box.Class != AnnotationClass {
		iconX = box.X - icon.Padding
	}
	return Point{X: iconX, Y: iconY}
}

package layout

import (
	"fmt"
	"math"
)

// Ellipsis is appended to the last visible line when text is truncated.
const Ellipsis = "..."

// CheckHorizontalOverflow 在扣除图标占位后折行，并计算标签的左右边距。
// 返回折好的行、边距以及文本可用的最大宽度。
func (e *Engine) CheckHorizontalOverflow(text string, width, iconPadding, iconSize float64) ([]string, float64, float64, error) {
	reserved := iconSize + 2*iconPadding
	maxTextWidth := width - reserved
	if maxTextWidth < 0 {
		return nil, 0, 0, fmt.Errorf("%w: width %g cannot hold icon reservation %g", ErrInvalidGeometry, width, reserved)
	}

	lines := e.Wrap(text, maxTextWidth)
	textWidth := e.maxLineWidth(lines)
	if textWidth > maxTextWidth {
		return nil, 0, 0, fmt.Errorf("%w: text width %g exceeds available width %g", ErrInvalidGeometry, textWidth, maxTextWidth)
	}
	margin := (width - (textWidth + reserved)) / 2
	return lines, margin, maxTextWidth, nil
}

// ClampVertical 截断超出 maxHeight 的行，并给最后一行加上省略号。
//
// 溢出候选是最后一个已接受的行（没有已接受的行时为触发溢出的那一行）。
// 带省略号仍放不下时，先把候选行折行到 maxTextWidth 减去省略号宽度，再取第一行。
// 只有发生截断时最后一行才以省略号结尾。
func (e *Engine) ClampVertical(lines []string, maxHeight, maxTextWidth float64) []string {
	var (
		visible    []string
		textHeight float64
		overflow   string
		truncated  bool
	)
	for i, line := range lines {
		lineHeight := e.Measure(line).Height
		if textHeight+lineHeight > maxHeight {
			truncated = true
			if i > 0 {
				overflow = lines[i-1]
			} else {
				overflow = line
			}
			break
		}
		textHeight += lineHeight
		visible = append(visible, line)
	}
	if !truncated {
		return visible
	}

	if e.width(overflow+Ellipsis) <= maxTextWidth {
		overflow += Ellipsis
	} else {
		dots := e.width(Ellipsis)
		overflow = e.Wrap(overflow, math.Floor(maxTextWidth-dots))[0] + Ellipsis
	}

	if len(visible) > 0 {
		visible[len(visible)-1] = overflow
		return visible
	}
	return []string{overflow}
}

// RenderLines 对标签文本依次做水平折行与垂直截断，并汇总行高与宽度。
func (e *Engine) RenderLines(box LabelBox, icon IconOptions) (LayoutResult, error) {
	var padding, size float64
	if icon.Enabled {
		padding, size = icon.Padding, icon.Size
	}
	lines, margin, maxTextWidth, err := e.CheckHorizontalOverflow(box.Text, box.Width, padding, size)
	if err != nil {
		return LayoutResult{}, err
	}
	lines = e.ClampVertical(lines, box.Height, maxTextWidth)
	if len(lines) == 0 {
		// Only reachable for an empty line list; keep one line for line-height math.
		lines = []string{""}
	}

	var lineHeight float64
	for _, line := range lines {
		lineHeight = max(lineHeight, e.Measure(line).Height)
	}
	res := LayoutResult{
		Lines:        lines,
		LineHeight:   lineHeight,
		TextHeight:   lineHeight * float64(len(lines)),
		Margin:       margin,
		MaxLineWidth: e.maxLineWidth(lines),
		MaxTextWidth: maxTextWidth,
	}
	if res.MaxLineWidth > maxTextWidth {
		return LayoutResult{}, fmt.Errorf("%w: truncated line width %g exceeds available width %g", ErrInvalidGeometry, res.MaxLineWidth, maxTextWidth)
	}
	return res, nil
}

func (e *Engine) maxLineWidth(lines []string) float64 {
	var w float64
	for _, line := range lines {
		w = max(w, e.width(line))
	}
	return w
}

package layout

import "errors"

var (
	// ErrInvalidGeometry reports a label box that cannot hold its text or icon.
	// It means the upstream layout is inconsistent and is never clamped silently.
	ErrInvalidGeometry = errors.New("layout: invalid label geometry")
	// ErrUnsupportedRotation is returned for any text rotation other than -90 degrees.
	ErrUnsupportedRotation = errors.New("layout: unsupported text rotation")
)

// Measurer 负责测量文本在给定字体下的宽高（像素）。
// 实现必须是确定性的；找不到字体时应静默回退，而不是返回错误。
type Measurer interface {
	Extent(text string, font FontDescriptor) TextExtent
}

// MeasurerFunc adapts a plain function to Measurer.
type MeasurerFunc func(text string, font FontDescriptor) TextExtent

func (f MeasurerFunc) Extent(text string, font FontDescriptor) TextExtent { return f(text, font) }

// IconOptions 控制标签前的图标占位。
type IconOptions struct {
	Enabled bool
	Size    float64
	Padding float64
}

// reservation returns the horizontal space taken by the icon and its padding on both sides.
func (o IconOptions) reservation() float64 {
	if !o.Enabled {
		return 0
	}
	return o.Size + 2*o.Padding
}

// LabelOptions configures Engine.Build.
type LabelOptions struct {
	Anchor Anchor
	// YMargin fixes the distance from the box top to the text block.
	// nil centers the text vertically.
	YMargin *float64
	Icon    IconOptions
	// Transform is the text style transform, e.g. "rotate(-90, 10, 20) 15".
	Transform string
}

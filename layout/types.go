package layout

// 该文件定义标签排版的输入与结果类型，供排版引擎、场景构建与调试 JSON 共用。

// FontDescriptor identifies the font used to measure label text.
// It is comparable and used as part of the extent cache key.
type FontDescriptor struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"` // pt
}

// TextExtent 是文本渲染后的宽高（像素）。
type TextExtent struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Anchor 对应 SVG text-anchor，仅支持 start 与 middle。
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
)

// AnnotationClass marks free-floating labels (edge and port annotations).
// Their icon may overflow the label box to the left.
const AnnotationClass = "Annotation"

// LabelBox 描述标签可用的矩形区域以及文本内容。
type LabelBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
	Class  string  `json:"class,omitempty"`
}

// LayoutResult 保存折行与截断后的行以及排版所需的度量。
type LayoutResult struct {
	Lines        []string `json:"lines"`
	LineHeight   float64  `json:"lineHeight"`
	TextHeight   float64  `json:"textHeight"`
	Margin       float64  `json:"margin"`
	MaxLineWidth float64  `json:"maxLineWidth"`
	MaxTextWidth float64  `json:"maxTextWidth"`
}

// Point is an absolute position in diagram pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Span 是一行已定位的文本（对应 SVG tspan）。
type Span struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

// Label 是完整排版后的标签：文本行、可选图标位置以及旋转变换。
type Label struct {
	Box       LabelBox      `json:"box"`
	Anchor    Anchor        `json:"anchor"`
	Spans     []Span        `json:"spans"`
	Transform string        `json:"transform,omitempty"`
	Icon      *Point        `json:"icon,omitempty"`
	IconSize  float64       `json:"iconSize,omitempty"`
	YMargin   float64       `json:"yMargin"`
	Layout    *LayoutResult `json:"layout,omitempty"` // nil for rotated labels
}

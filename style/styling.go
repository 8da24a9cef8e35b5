package style

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ByLCY/capsvg/svgattr"
)

// Styling 是图元（rect/path/use/circle）的样式。nil 或空值表示未设置。
type Styling struct {
	Fill            *Paint   `yaml:"fill,omitempty" json:"fill,omitempty"`
	Stroke          *Paint   `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	StrokeWidth     *float64 `yaml:"stroke-width,omitempty" json:"stroke-width,omitempty"`
	StrokeDasharray string   `yaml:"stroke-dasharray,omitempty" json:"stroke-dasharray,omitempty"`
	MarkerStart     string   `yaml:"marker-start,omitempty" json:"marker-start,omitempty"`
	MarkerEnd       string   `yaml:"marker-end,omitempty" json:"marker-end,omitempty"`
	// RX/RY 是圆角，输出为 rect 属性而不是 CSS。
	RX *float64 `yaml:"rx,omitempty" json:"rx,omitempty"`
	RY *float64 `yaml:"ry,omitempty" json:"ry,omitempty"`
}

// Merge returns s overridden by every field set in over.
func (s Styling) Merge(over Styling) Styling {
	if over.Fill != nil {
		s.Fill = over.Fill
	}
	if over.Stroke != nil {
		s.Stroke = over.Stroke
	}
	if over.StrokeWidth != nil {
		s.StrokeWidth = over.StrokeWidth
	}
	if over.StrokeDasharray != "" {
		s.StrokeDasharray = over.StrokeDasharray
	}
	if over.MarkerStart != "" {
		s.MarkerStart = over.MarkerStart
	}
	if over.MarkerEnd != "" {
		s.MarkerEnd = over.MarkerEnd
	}
	if over.RX != nil {
		s.RX = over.RX
	}
	if over.RY != nil {
		s.RY = over.RY
	}
	return s
}

// StrokeColor returns the stroke colour used to key marker definitions.
func (s Styling) StrokeColor() Color {
	if c, ok := s.Stroke.Primary(); ok {
		return c
	}
	return Black
}

// StrokeWidthOr returns the stroke width or def when unset.
func (s Styling) StrokeWidthOr(def float64) float64 {
	if s.StrokeWidth == nil {
		return def
	}
	return *s.StrokeWidth
}

// MarkerID is the id of the marker definition named name, specialised for the stroke colour.
func (s Styling) MarkerID(name string) string {
	return GenerateID(name, s.StrokeColor())
}

// Gradients returns the paints that need a gradient definition.
func (s Styling) Gradients() []*Paint {
	var out []*Paint
	for _, p := range []*Paint{s.Fill, s.Stroke} {
		if p.IsGradient() {
			out = append(out, p)
		}
	}
	return out
}

// IsZero reports whether no field is set.
func (s Styling) IsZero() bool { return s.CSS() == "" && s.RX == nil && s.RY == nil }

// CSS 输出 style 属性值，例如 "fill: rgb(255, 255, 255); stroke-width: 1"。
func (s Styling) CSS() string {
	var decls []string
	if s.Fill != nil {
		decls = append(decls, "fill: "+s.Fill.CSS())
	}
	if s.Stroke != nil {
		decls = append(decls, "stroke: "+s.Stroke.CSS())
	}
	if s.StrokeWidth != nil {
		decls = append(decls, "stroke-width: "+svgattr.FormatNumber(*s.StrokeWidth))
	}
	if s.StrokeDasharray != "" {
		decls = append(decls, "stroke-dasharray: "+s.StrokeDasharray)
	}
	if s.MarkerStart != "" {
		decls = append(decls, "marker-start: url(#"+s.MarkerID(s.MarkerStart)+")")
	}
	if s.MarkerEnd != "" {
		decls = append(decls, "marker-end: url(#"+s.MarkerID(s.MarkerEnd)+")")
	}
	return strings.Join(decls, "; ")
}

// TextStyling 是标签文本的样式。Transform 不进入 CSS，由排版引擎解析。
type TextStyling struct {
	Fill       *Paint `yaml:"fill,omitempty" json:"fill,omitempty"`
	FontFamily string `yaml:"font-family,omitempty" json:"font-family,omitempty"`
	FontSize   string `yaml:"font-size,omitempty" json:"font-size,omitempty"`
	FontWeight string `yaml:"font-weight,omitempty" json:"font-weight,omitempty"`
	FontStyle  string `yaml:"font-style,omitempty" json:"font-style,omitempty"`
	Transform  string `yaml:"transform,omitempty" json:"transform,omitempty"`
}

func (t TextStyling) Merge(over TextStyling) TextStyling {
	if over.Fill != nil {
		t.Fill = over.Fill
	}
	if over.FontFamily != "" {
		t.FontFamily = over.FontFamily
	}
	if over.FontSize != "" {
		t.FontSize = over.FontSize
	}
	if over.FontWeight != "" {
		t.FontWeight = over.FontWeight
	}
	if over.FontStyle != "" {
		t.FontStyle = over.FontStyle
	}
	if over.Transform != "" {
		t.Transform = over.Transform
	}
	return t
}

func (t TextStyling) CSS() string {
	var decls []string
	if t.Fill != nil {
		decls = append(decls, "fill: "+t.Fill.CSS())
	}
	if t.FontFamily != "" {
		decls = append(decls, "font-family: "+t.FontFamily)
	}
	if t.FontSize != "" {
		decls = append(decls, "font-size: "+t.FontSize)
	}
	if t.FontWeight != "" {
		decls = append(decls, "font-weight: "+t.FontWeight)
	}
	if t.FontStyle != "" {
		decls = append(decls, "font-style: "+t.FontStyle)
	}
	return strings.Join(decls, "; ")
}

// ClassStyle 是一个元素类的图元样式与文本样式。
type ClassStyle struct {
	Styling `yaml:",inline"`
	Text    TextStyling `yaml:"text,omitempty" json:"-"`
}

func (c ClassStyle) Merge(over ClassStyle) ClassStyle {
	return ClassStyle{Styling: c.Styling.Merge(over.Styling), Text: c.Text.Merge(over.Text)}
}

// UnmarshalJSON 解析扁平的样式对象：以 "text_" 开头的键属于文本样式，
// 键中的下划线等同于连字符（stroke_width == stroke-width）。
func (c *ClassStyle) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("style: %w", err)
	}
	obj := map[string]json.RawMessage{}
	text := map[string]json.RawMessage{}
	for k, v := range raw {
		if rest, ok := strings.CutPrefix(k, "text_"); ok {
			text[strings.ReplaceAll(rest, "_", "-")] = v
			continue
		}
		obj[strings.ReplaceAll(k, "_", "-")] = v
	}

	var out ClassStyle
	if err := remarshal(obj, &out.Styling); err != nil {
		return fmt.Errorf("style: object style: %w", err)
	}
	if err := remarshal(text, &out.Text); err != nil {
		return fmt.Errorf("style: text style: %w", err)
	}
	*c = out
	return nil
}

func remarshal(m map[string]json.RawMessage, dst any) error {
	if len(m) == 0 {
		return nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

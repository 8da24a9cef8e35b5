// Package scene 把已布局的图转换为与输出格式无关的图元树（分组、矩形、路径、文本、符号引用），
// 由 renderer 下的各后端输出为 SVG 或 PDF。
package scene

import (
	"github.com/ByLCY/capsvg/layout"
	"github.com/ByLCY/capsvg/style"
)

// BaseStyle 是整张图的默认样式。
const BaseStyle = "shape-rendering: geometricPrecision; font-family: 'Segoe UI'; font-size: 8pt; cursor: pointer;"

// Scene 是一张待输出的图。坐标单位为像素。
type Scene struct {
	Name  string
	Class string
	// ViewBox
	X, Y, Width, Height float64
	Style               string

	Defs     Defs
	Elements []Element

	// Labels 记录构建过程中排好的所有标签，用于调试输出。
	Labels []*layout.Label
}

// Defs 是需要放入 <defs> 的定义，按首次使用的顺序排列，不重复。
type Defs struct {
	// Decorations 是依赖在前的装饰名（符号与渐变）。
	Decorations []string
	Gradients   []Gradient
	Markers     []Marker
}

// Gradient 是由样式产生的自上而下线性渐变。
type Gradient struct {
	ID     string
	Colors []style.Color
}

// Marker 是按描边颜色特化的箭头标记。
type Marker struct {
	ID          string
	Name        string
	Stroke      style.Color
	StrokeWidth float64
}

// Element 是图元树的节点。
type Element interface {
	element()
}

type Group struct {
	ID       string
	Class    string
	Children []Element
}

type Rect struct {
	X, Y, Width, Height float64
	RX, RY              float64
	Class               string
	Transform           string
	Style               style.Styling
}

// Path 是依次连接 Points 的折线。
type Path struct {
	Points []layout.Point
	Class  string
	Style  style.Styling
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Style          style.Styling
}

type Circle struct {
	CX, CY, R float64
	Style     style.Styling
}

// Use 引用 defs 中的符号（href 不含 "#"）。
type Use struct {
	Href                string
	X, Y, Width, Height float64
	Class               string
	Transform           string
	Style               style.Styling
}

// Text 是一个多行标签，每行一个 tspan（xml:space="preserve"，dominant-baseline: middle）。
type Text struct {
	Class     string
	Anchor    layout.Anchor
	Transform string
	Style     style.TextStyling
	Spans     []layout.Span
}

func (*Group) element()  {}
func (*Rect) element()   {}
func (*Path) element()   {}
func (*Line) element()   {}
func (*Circle) element() {}
func (*Use) element()    {}
func (*Text) element()   {}

// Walk 先序遍历元素树，fn 返回 false 时不进入该节点的子元素。
func Walk(elements []Element, fn func(Element) bool) {
	for _, el := range elements {
		if !fn(el) {
			continue
		}
		if g, ok := el.(*Group); ok {
			Walk(g.Children, fn)
		}
	}
}

// Package diagram 定义渲染输入：已完成布局的图（JSON）。
package diagram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ByLCY/capsvg/style"
)

// ErrInvalidType is returned for objects whose type is not one of the known object types.
var ErrInvalidType = errors.New("diagram: invalid object type")

// ObjectType 是图对象的种类。
type ObjectType string

const (
	TypeBox       ObjectType = "box"
	TypeEdge      ObjectType = "edge"
	TypeCircle    ObjectType = "circle"
	TypeSymbol    ObjectType = "symbol"
	TypeBoxSymbol ObjectType = "box_symbol"
)

// Valid reports whether t is a known object type.
func (t ObjectType) Valid() bool {
	switch t {
	case TypeBox, TypeEdge, TypeCircle, TypeSymbol, TypeBoxSymbol:
		return true
	}
	return false
}

// Diagram 是一张图：元数据与按绘制顺序排列的对象。
type Diagram struct {
	Name     string   `json:"name"`
	Class    string   `json:"class"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Contents []Object `json:"contents"`
}

// Rect 是对象或标签的包围盒。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Label 可以是纯文本（使用所属对象的包围盒）或带自身包围盒的对象。
type Label struct {
	Text string
	// Box 为 nil 表示标签使用所属对象的包围盒。
	Box *Rect
}

func (l *Label) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		l.Box = nil
		return json.Unmarshal(b, &l.Text)
	}
	var obj struct {
		Rect
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("diagram: label: %w", err)
	}
	l.Text = obj.Text
	box := obj.Rect
	l.Box = &box
	return nil
}

func (l Label) MarshalJSON() ([]byte, error) {
	if l.Box == nil {
		return json.Marshal(l.Text)
	}
	return json.Marshal(struct {
		Rect
		Text string `json:"text"`
	}{*l.Box, l.Text})
}

// Object 是一个图对象。不同类型使用的字段不同：
// box/symbol/box_symbol 使用包围盒，edge 使用 Points 与 Labels，circle 使用 Center 与 Radius。
type Object struct {
	Type        ObjectType       `json:"type"`
	ID          string           `json:"id,omitempty"`
	Class       string           `json:"class,omitempty"`
	X           float64          `json:"x,omitempty"`
	Y           float64          `json:"y,omitempty"`
	Width       float64          `json:"width,omitempty"`
	Height      float64          `json:"height,omitempty"`
	Label       *Label           `json:"label,omitempty"`
	Labels      []Label          `json:"labels,omitempty"`
	Description *string          `json:"description,omitempty"`
	Features    []string         `json:"features,omitempty"`
	Children    []string         `json:"children,omitempty"`
	Context     []string         `json:"context,omitempty"`
	Parent      string           `json:"parent,omitempty"`
	Points      [][2]float64     `json:"points,omitempty"`
	Center      [2]float64       `json:"center,omitempty"`
	Radius      float64          `json:"radius,omitempty"`
	Style       style.ClassStyle `json:"style,omitempty"`
}

// Bounds returns the object's bounding box.
func (o *Object) Bounds() Rect {
	return Rect{X: o.X, Y: o.Y, Width: o.Width, Height: o.Height}
}

// Decode 读取并校验 JSON 图。
func Decode(r io.Reader) (*Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("解析图 JSON 失败: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile decodes the diagram stored at path.
func LoadFile(path string) (*Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开图文件 %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate 检查对象类型、边的点数与标签对象的包围盒。
func (d *Diagram) Validate() error {
	for i := range d.Contents {
		o := &d.Contents[i]
		if !o.Type.Valid() {
			return fmt.Errorf("%w: %q (object %d, id %q)", ErrInvalidType, o.Type, i, o.ID)
		}
		if o.Type == TypeEdge && len(o.Points) < 2 {
			return fmt.Errorf("diagram: edge %q needs at least two points", o.ID)
		}
		if o.Type == TypeBoxSymbol && (o.Label == nil || o.Label.Box == nil) {
			return fmt.Errorf("diagram: box_symbol %q needs a label with its own bounds", o.ID)
		}
		for _, l := range o.Labels {
			if l.Box == nil {
				return fmt.Errorf("diagram: edge %q has a label without bounds", o.ID)
			}
		}
	}
	return nil
}

// Package decorations 维护可放入 SVG defs 的装饰（符号、渐变、箭头标记）及其依赖关系，
// 以及排版时用到的元素类集合与常量。
package decorations

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// 标签图标与特性栏的几何常量（像素）。
const (
	IconSize     = 20
	IconPadding  = 2
	FeatureSpace = 24
	// OnlyIconSize 是没有文本、只画图标的元素类使用的图标尺寸。
	OnlyIconSize = 50
)

var (
	ErrUnknownDecoration = errors.New("decorations: unknown decoration")
	ErrCycle             = errors.New("decorations: dependency cycle")
)

// Kind 区分装饰的用法。
type Kind int

const (
	KindSymbol Kind = iota
	KindGradient
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindSymbol:
		return "symbol"
	case KindGradient:
		return "gradient"
	case KindMarker:
		return "marker"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Decoration 是一个具名的 defs 条目；Dependencies 中的条目必须先于它定义。
type Decoration struct {
	Name         string
	Kind         Kind
	Dependencies []string
}

// Registry 是只读的装饰表。
type Registry struct {
	decos map[string]Decoration
}

// NewRegistry 校验依赖全部存在且无环。
func NewRegistry(decos ...Decoration) (*Registry, error) {
	r := &Registry{decos: make(map[string]Decoration, len(decos))}
	for _, d := range decos {
		if d.Name == "" {
			return nil, fmt.Errorf("decorations: empty name")
		}
		if _, dup := r.decos[d.Name]; dup {
			return nil, fmt.Errorf("decorations: duplicate %q", d.Name)
		}
		r.decos[d.Name] = d
	}
	if _, err := r.Resolve(r.Names()...); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNewRegistry is NewRegistry for static tables.
func MustNewRegistry(decos ...Decoration) *Registry {
	r, err := NewRegistry(decos...)
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.decos[name]
	return ok
}

// Get returns the decoration named name.
func (r *Registry) Get(name string) (Decoration, bool) {
	d, ok := r.decos[name]
	return d, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.decos))
	for name := range r.decos {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Resolve 深度优先展开 names 的依赖，返回依赖在前、每个名字只出现一次的定义顺序。
// 未注册的名字返回 ErrUnknownDecoration，循环依赖返回 ErrCycle。
func (r *Registry) Resolve(names ...string) ([]string, error) {
	var (
		order   []string
		visited = map[string]bool{}
		onStack = map[string]bool{}
		path    []string
	)
	var visit func(name string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		if onStack[name] {
			return fmt.Errorf("%w: %s -> %s", ErrCycle, strings.Join(path, " -> "), name)
		}
		d, ok := r.decos[name]
		if !ok {
			if len(path) > 0 {
				return fmt.Errorf("%w: %q (required by %q)", ErrUnknownDecoration, name, path[len(path)-1])
			}
			return fmt.Errorf("%w: %q", ErrUnknownDecoration, name)
		}
		onStack[name] = true
		path = append(path, name)
		for _, dep := range d.Dependencies {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		onStack[name] = false
		visited[name] = true
		order = append(order, name)
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// SymbolName returns the symbol decoration drawn for an element class.
func SymbolName(class string) string { return class + "Symbol" }

// Package xmlutil 提供基于 XPath 的 XML 查找与类型解析。
package xmlutil

import (
	"errors"
	"fmt"
	"sort"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// XSINamespace is the XML Schema instance namespace carrying xsi:type.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

var (
	ErrNotUnique = errors.New("xmlutil: element is not unique")
	ErrNotFound  = errors.New("xmlutil: element not found")
)

// Query 是编译好的 XPath 表达式，可重复使用。
type Query struct {
	expr *xpath.Expr
	src  string
}

// Compile 编译带命名空间前缀表的 XPath 表达式。
func Compile(expr string, namespaces map[string]string) (*Query, error) {
	e, err := xpath.CompileWithNS(expr, namespaces)
	if err != nil {
		return nil, fmt.Errorf("xmlutil: compile %q: %w", expr, err)
	}
	return &Query{expr: e, src: expr}, nil
}

func (q *Query) String() string { return q.src }

// FetchUnique 在 tree 上执行查询并确保结果唯一。
// name 与 uid 只用于错误信息；optional 为 true 时找不到返回 (nil, nil)。
func FetchUnique(q *Query, tree *xmlquery.Node, name, uid string, optional bool) (*xmlquery.Node, error) {
	result := xmlquery.QuerySelectorAll(tree, q.expr)
	suffix := ""
	if uid != "" {
		suffix = fmt.Sprintf(" while processing element %q", uid)
	}
	if len(result) > 1 {
		return nil, fmt.Errorf("%w: %q found %d times%s", ErrNotUnique, name, len(result), suffix)
	}
	if len(result) == 0 {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %q%s", ErrNotFound, name, suffix)
	}
	return result[0], nil
}

// XType 返回元素的 xsi:type；没有时用命名空间表反查前缀，拼成 "prefix:tag"。
// 元素没有命名空间时返回 ""。命名空间未知或对应多个前缀时报错。
func XType(n *xmlquery.Node, namespaces map[string]string) (string, error) {
	for _, a := range n.Attr {
		if a.Name.Local != "type" {
			continue
		}
		if a.NamespaceURI == XSINamespace || a.Name.Space == "xsi" || a.Name.Space == XSINamespace {
			if a.Value != "" {
				return a.Value, nil
			}
		}
	}
	if n.NamespaceURI == "" {
		return "", nil
	}
	var prefixes []string
	for prefix, uri := range namespaces {
		if uri == n.NamespaceURI {
			prefixes = append(prefixes, prefix)
		}
	}
	switch len(prefixes) {
	case 0:
		return "", fmt.Errorf("xmlutil: unknown namespace %q", n.NamespaceURI)
	case 1:
		return prefixes[0] + ":" + n.Data, nil
	default:
		sort.Strings(prefixes)
		return "", fmt.Errorf("xmlutil: ambiguous namespace %q: %v", n.NamespaceURI, prefixes)
	}
}

// Package helpers 收集渲染时用到的文本与路径小工具。
package helpers

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ListBullet 是列表项展开为纯文本时的前缀。
const ListBullet = "             • "

var (
	lineBreakAfter = map[string]bool{"br": true, "p": true, "ul": true, "li": true}
	bulletBefore   = map[string]bool{"li": true}
)

// FlattenHTML 把 HTML 片段转换为纯文本：br/p/ul/li 之后换行，li 前加项目符号，
// 元素内文本去掉换行与制表符并去除行首空白。开头的纯文本保持原样，结果去除末尾空白。
func FlattenHTML(markup string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return "", fmt.Errorf("解析 HTML 失败: %w", err)
	}
	var sb strings.Builder
	for i, n := range nodes {
		if i == 0 && n.Type == html.TextNode {
			sb.WriteString(n.Data)
			continue
		}
		flattenNode(&sb, n)
	}
	return strings.TrimRightFunc(sb.String(), unicode.IsSpace), nil
}

func flattenNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(cleanText(n.Data))
	case html.ElementNode:
		if bulletBefore[n.Data] {
			sb.WriteString(ListBullet)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			flattenNode(sb, c)
		}
		if lineBreakAfter[n.Data] {
			sb.WriteString("\n")
		}
	}
}

func cleanText(s string) string {
	s = strings.NewReplacer("\n", "", "\t", "").Replace(s)
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

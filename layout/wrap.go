package layout

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Wrap 按像素宽度对比例字体文本进行贪心折行。
//
// 每个输入行的行首空白原样保留，其余空白折叠为单个空格；空行保留为空行。
// 一个词都放不下时按字形簇二分截断该词，至少保留一个字形簇，因此总能前进。
// 返回值永远不为空，空文本得到 [""]。
func (e *Engine) Wrap(text string, maxWidth float64) []string {
	var out []string
	queue := splitLines(text)
	for len(queue) > 0 {
		line := queue[0]
		queue = queue[1:]

		words := splitWords(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		// Widest prefix of words that still fits.
		count := sort.Search(len(words), func(i int) bool {
			return e.width(strings.Join(words[:i+1], " ")) > maxWidth
		})
		if count > 0 {
			out = append(out, strings.Join(words[:count], " "))
			if count < len(words) {
				queue = requeue(queue, strings.Join(words[count:], " "))
			}
			continue
		}

		head, tail := splitWord(words[0], maxWidth, e.width)
		out = append(out, head)
		rest := words[1:]
		if tail != "" {
			rest = append([]string{tail}, rest...)
		}
		if len(rest) > 0 {
			queue = requeue(queue, strings.Join(rest, " "))
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// splitWord 返回 word 中能放进 maxWidth 的最长字形簇前缀（至少一个）以及剩余部分。
func splitWord(word string, maxWidth float64, width func(string) float64) (string, string) {
	var clusters []string
	gr := uniseg.NewGraphemes(word)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	n := sort.Search(len(clusters), func(i int) bool {
		return width(strings.Join(clusters[:i+1], "")) > maxWidth
	})
	if n == 0 {
		n = 1
	}
	return strings.Join(clusters[:n], ""), strings.Join(clusters[n:], "")
}

func requeue(queue []string, line string) []string {
	return append([]string{line}, queue...)
}

// splitWords splits on whitespace and prefixes the first word with the line's leading whitespace.
func splitWords(line string) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	words[0] = line[:len(line)-len(trimmed)] + words[0]
	return words
}

// splitLines 按所有显式换行符拆分文本；末尾的换行不会产生额外空行。
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

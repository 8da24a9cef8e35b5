package helpers

import (
	"fmt"
	"strings"

	"github.com/ByLCY/capsvg/svgattr"
)

// SSVOptions configures SSVParse.
type SSVOptions struct {
	// Open/Close must surround the input.
	Open, Close string
	// Sep defaults to ",".
	Sep string
	// Num, if non-zero, is the exact number of values required.
	Num int
}

// SSVParse 解析被 Open/Close 包围、以 Sep 分隔的值列表，并用 cast 转换每个值。
func SSVParse[T any](s string, cast func(string) (T, error), opts SSVOptions) ([]T, error) {
	if !strings.HasPrefix(s, opts.Open) || !strings.HasSuffix(s, opts.Close) || len(s) < len(opts.Open)+len(opts.Close) {
		return nil, fmt.Errorf("输入缺少包围符 %q %q: %s", opts.Open, opts.Close, s)
	}
	inner := s[len(opts.Open) : len(s)-len(opts.Close)]
	sep := opts.Sep
	if sep == "" {
		sep = ","
	}
	parts := strings.Split(inner, sep)
	values := make([]T, 0, len(parts))
	for _, p := range parts {
		v, err := cast(p)
		if err != nil {
			return nil, fmt.Errorf("转换 %q 失败: %w", p, err)
		}
		values = append(values, v)
	}
	if opts.Num != 0 && len(values) != opts.Num {
		return nil, fmt.Errorf("期望 %d 个值，实际 %d 个: %s", opts.Num, len(values), inner)
	}
	return values, nil
}

// NTuples 每次取 n 个元素分组。元素数不能整除 n 时，pad 为 true 则用零值补齐最后一组，否则丢弃。
func NTuples[T any](n int, items []T, pad bool) [][]T {
	if n <= 0 {
		return nil
	}
	var out [][]T
	for i := 0; i < len(items); i += n {
		end := i + n
		if end <= len(items) {
			out = append(out, items[i:end:end])
			continue
		}
		if pad {
			last := make([]T, n)
			copy(last, items[i:])
			out = append(out, last)
		}
	}
	return out
}

// choiceScale 是 ChoicePseudoState 菱形的缩放系数，平移常量 (6, 5) 与之配套。
const choiceScale = 0.725

// Transformation 返回某些元素类需要的 rect 变换，目前只有 ChoicePseudoState（旋转 45° 成菱形）。
func Transformation(class string, x, y, width, height float64) string {
	if class != "ChoicePseudoState" {
		return ""
	}
	tx := (1-choiceScale)*x + 6
	ty := (1-choiceScale)*y + 5
	rx, ry := x+width/2, y+height/2
	f := svgattr.FormatNumber
	return fmt.Sprintf("translate(%s,%s) scale(%s) rotate(45,%s,%s)", f(tx), f(ty), f(choiceScale), f(rx), f(ry))
}

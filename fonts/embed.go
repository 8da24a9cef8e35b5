// Package fonts 提供随程序打包的字体（Go 字体家族），用于测量与 PDF 输出的兜底。
package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackName 是找不到字体时静默替代使用的内置字体。
const FallbackName = "Go-Regular"

var bundled = map[string][]byte{
	"go-regular": goregular.TTF,
	"go-bold":    gobold.TTF,
	"go-italic":  goitalic.TTF,
	"go-mono":    gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:Go-Bold"、"Go-Bold" 或 "go-bold.ttf"（大小写不敏感）。
func Load(name string) ([]byte, error) {
	key := normalize(name)
	data, ok := bundled[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 不存在", name)
	}
	return data, nil
}

// Has reports whether name refers to a bundled font.
func Has(name string) bool {
	_, ok := bundled[normalize(name)]
	return ok
}

// Fallback returns the bytes of FallbackName.
func Fallback() []byte { return goregular.TTF }

// Names lists the bundled font names in sorted order.
func Names() []string {
	out := make([]string, 0, len(bundled))
	for k := range bundled {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func normalize(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "embed:")
	name = strings.TrimSuffix(strings.ToLower(name), ".ttf")
	return name
}

package canvasrenderer

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/capsvg/fonts"
	"github.com/ByLCY/capsvg/layout"
)

// DefaultFontSize 是未指定字号时使用的字号（pt）。
const DefaultFontSize = 8.0

// Options configures font loading for the measurer and the PDF renderer.
type Options struct {
	// BaseDir 是查找字体文件的目录；为空时只接受绝对路径。
	BaseDir string
	// Fonts 按字体族名注入字体，优先于内置、文件与系统字体。
	Fonts map[string]Resource
	// DisableSystemFonts 关闭系统字体查找，测试中用来保证结果可复现。
	DisableSystemFonts bool
	// Font 是文本样式未指定字体时使用的字体。
	Font layout.FontDescriptor
	// Title 写入 PDF 元数据。
	Title string
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

// Measurer 用 canvas 字体度量实现 layout.Measurer。
// 字体族按 (名称, 样式) 加载一次并缓存；找不到的字体静默回退到内置字体。
type Measurer struct {
	baseDir      string
	systemFonts  bool
	fontBlobs    map[string][]byte
	fontMu       sync.Mutex
	fontFamilies map[string]*fontFamilyEntry
}

var _ layout.Measurer = (*Measurer)(nil)

var (
	fallbackOnce   sync.Once
	fallbackFamily *canvas.FontFamily
)

// NewMeasurer creates a measurer resolving fonts per opts.
func NewMeasurer(opts Options) *Measurer {
	m := &Measurer{
		baseDir:      opts.BaseDir,
		systemFonts:  !opts.DisableSystemFonts,
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			m.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败时按未注入处理，最终回退
			if len(data) > 0 {
				m.fontBlobs[name] = data
			}
		}
	}
	return m
}

// Extent 返回文本宽高（像素）。canvas 在 N pt 字号下给出的毫米宽度先换算为 pt，
// 再乘以 ExtentScale 得到像素。
func (m *Measurer) Extent(text string, font layout.FontDescriptor) layout.TextExtent {
	size := font.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	face := m.Face(font.Family, canvas.FontRegular, size, canvas.Black)
	toPx := layout.MmToPt * layout.ExtentScale
	return layout.TextExtent{
		Width:  face.TextWidth(text) * toPx,
		Height: face.Metrics().LineHeight * toPx,
	}
}

// Face 返回指定字体族、样式与字号（pt）的字体面。
func (m *Measurer) Face(familyName string, style canvas.FontStyle, sizePt float64, col color.Color) *canvas.FontFace {
	family, style := m.ensureFontFamily(familyName, style)
	return family.Face(sizePt, col, style, canvas.FontNormal)
}

func (m *Measurer) ensureFontFamily(name string, style canvas.FontStyle) (*canvas.FontFamily, canvas.FontStyle) {
	key := fmt.Sprintf("%s|%d", name, style)
	m.fontMu.Lock()
	defer m.fontMu.Unlock()

	if entry, ok := m.fontFamilies[key]; ok {
		return entry.family, entry.style
	}

	entry := &fontFamilyEntry{family: fallback(), style: canvas.FontRegular}
	if name != "" {
		family := canvas.NewFontFamily(name)
		if err := m.loadFontIntoFamily(family, name, style); err == nil {
			entry = &fontFamilyEntry{family: family, style: style}
		}
	}
	m.fontFamilies[key] = entry
	return entry.family, entry.style
}

// loadFontIntoFamily 依次尝试注入字体、内置字体、字体文件与系统字体。
func (m *Measurer) loadFontIntoFamily(family *canvas.FontFamily, name string, style canvas.FontStyle) error {
	if data, ok := m.fontBlobs[name]; ok {
		return family.LoadFont(data, 0, style)
	}
	if fonts.Has(name) {
		data, err := fonts.Load(name)
		if err != nil {
			return err
		}
		return family.LoadFont(data, 0, style)
	}
	for _, path := range m.fontFileCandidates(name) {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := family.LoadFont(data, 0, style); err == nil {
			return nil
		}
	}
	if m.systemFonts {
		return family.LoadSystemFont(name, style)
	}
	return fmt.Errorf("找不到字体 %s", name)
}

// fontFileCandidates 返回可能的字体文件路径，例如 "segoeui" → segoeui、segoeui.ttf、SEGOEUI.TTF。
func (m *Measurer) fontFileCandidates(name string) []string {
	if m.baseDir == "" && !filepath.IsAbs(name) {
		return nil
	}
	names := []string{name}
	if filepath.Ext(name) == "" {
		names = append(names, name+".ttf", strings.ToLower(name)+".ttf", strings.ToUpper(name)+".TTF")
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !filepath.IsAbs(n) {
			n = filepath.Join(m.baseDir, n)
		}
		out = append(out, n)
	}
	return out
}

// fallback 返回进程内共享的兜底字体族，只加载一次。
func fallback() *canvas.FontFamily {
	fallbackOnce.Do(func() {
		family := canvas.NewFontFamily(fonts.FallbackName)
		if err := family.LoadFont(fonts.Fallback(), 0, canvas.FontRegular); err != nil {
			panic(fmt.Sprintf("加载内置兜底字体失败: %v", err))
		}
		fallbackFamily = family
	})
	return fallbackFamily
}

// parseFontStyle 把 CSS font-weight / font-style 转换为 canvas 字体样式。
func parseFontStyle(weight, style string) canvas.FontStyle {
	w := strings.ToLower(strings.TrimSpace(weight))
	result := canvas.FontRegular
	switch {
	case strings.Contains(w, "black"), w == "900":
		result = canvas.FontBlack
	case strings.Contains(w, "extrabold"), w == "800":
		result = canvas.FontExtraBold
	case strings.Contains(w, "semibold"), strings.Contains(w, "demibold"), w == "600":
		result = canvas.FontSemiBold
	case strings.Contains(w, "bold"), w == "700":
		result = canvas.FontBold
	case strings.Contains(w, "medium"), w == "500":
		result = canvas.FontMedium
	case strings.Contains(w, "light"), w == "300":
		result = canvas.FontLight
	}
	s := strings.ToLower(style)
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

package layout

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultExtentCacheSize bounds the number of memoized extents.
const DefaultExtentCacheSize = 256

type extentKey struct {
	text   string
	family string
	size   float64
}

// CachedMeasurer memoizes another Measurer with a bounded LRU table.
// Entries are immutable once computed, so concurrent callers at worst measure twice.
type CachedMeasurer struct {
	next  Measurer
	cache *lru.Cache[extentKey, TextExtent]
}

// NewCachedMeasurer wraps m; size <= 0 selects DefaultExtentCacheSize.
func NewCachedMeasurer(m Measurer, size int) (*CachedMeasurer, error) {
	if m == nil {
		return nil, fmt.Errorf("layout: measurer is nil")
	}
	if size <= 0 {
		size = DefaultExtentCacheSize
	}
	cache, err := lru.New[extentKey, TextExtent](size)
	if err != nil {
		return nil, fmt.Errorf("layout: create extent cache: %w", err)
	}
	return &CachedMeasurer{next: m, cache: cache}, nil
}

// Extent implements Measurer.
func (c *CachedMeasurer) Extent(text string, font FontDescriptor) TextExtent {
	key := extentKey{text: text, family: font.Family, size: font.Size}
	if ext, ok := c.cache.Get(key); ok {
		return ext
	}
	ext := c.next.Extent(text, font)
	c.cache.Add(key, ext)
	return ext
}

// Len reports the number of cached extents.
func (c *CachedMeasurer) Len() int { return c.cache.Len() }

// Engine 是标签排版引擎：折行、溢出截断与定位都基于同一个字体与测量后端。
type Engine struct {
	measurer Measurer
	font     FontDescriptor
}

// NewEngine creates an engine measuring all text with font.
func NewEngine(m Measurer, font FontDescriptor) *Engine {
	return &Engine{measurer: m, font: font}
}

// Font returns the font the engine measures with.
func (e *Engine) Font() FontDescriptor { return e.font }

// WithFont returns a copy of the engine using another font and the same measurer.
func (e *Engine) WithFont(font FontDescriptor) *Engine {
	return &Engine{measurer: e.measurer, font: font}
}

// Measure 返回文本的像素宽高；空串恒为 (0,0)。
func (e *Engine) Measure(text string) TextExtent {
	if text == "" {
		return TextExtent{}
	}
	return e.measurer.Extent(text, e.font)
}

func (e *Engine) width(text string) float64 { return e.Measure(text).Width }

// TextExtent 计算文本折行到 width 后的包围盒：最宽行宽度与 行高×行数。
func (e *Engine) TextExtent(text string, width float64) TextExtent {
	lines := e.Wrap(text, width)
	var maxW, lineH float64
	for _, line := range lines {
		ext := e.Measure(line)
		maxW = max(maxW, ext.Width)
		lineH = max(lineH, ext.Height)
	}
	return TextExtent{Width: maxW, Height: lineH * float64(len(lines))}
}

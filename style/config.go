package style

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// GlobalClass 是对所有图类生效的样式表键。
const GlobalClass = "__GLOBAL__"

//go:embed default_styles.yaml
var defaultStylesYAML []byte

var (
	defaultOnce   sync.Once
	defaultConfig *Config
	defaultErr    error
)

// Config 是按图类组织的样式表：diagram class → element class（如 "Box.LogicalComponent"）→ 样式，
// 以及每个图类预先放入 defs 的装饰。加载后只读，可在多个渲染之间共享。
type Config struct {
	Styles      map[string]map[string]ClassStyle `yaml:"styles"`
	Decorations map[string][]string              `yaml:"decorations"`
}

// LoadConfig 从 YAML 读取样式表，未知字段视为错误。
func LoadConfig(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("解析样式表失败: %w", err)
	}
	if cfg.Styles == nil {
		cfg.Styles = map[string]map[string]ClassStyle{}
	}
	for diagramClass, classes := range cfg.Styles {
		for key := range classes {
			if !validElementClass(key) {
				return nil, fmt.Errorf("样式表 %q: 非法的元素类 %q", diagramClass, key)
			}
		}
	}
	return &cfg, nil
}

// LoadConfigFile reads a YAML style table from path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开样式表 %s: %w", path, err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// DefaultConfig 返回内置样式表，进程内只解析一次。
func DefaultConfig() *Config {
	defaultOnce.Do(func() {
		defaultConfig, defaultErr = LoadConfig(strings.NewReader(string(defaultStylesYAML)))
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("内置样式表无效: %v", defaultErr))
	}
	return defaultConfig
}

// HasDiagramClass reports whether the table has styles for diagramClass.
func (c *Config) HasDiagramClass(diagramClass string) bool {
	_, ok := c.Styles[diagramClass]
	return ok
}

// Lookup 合并元素样式，后者覆盖前者：
// 全局类型样式（"Box"）、全局元素类、图类类型样式、图类元素类。
func (c *Config) Lookup(diagramClass, elementClass string) ClassStyle {
	keys := []string{elementClass}
	if kind, _, ok := strings.Cut(elementClass, "."); ok {
		keys = []string{kind, elementClass}
	}
	var out ClassStyle
	for _, table := range []string{GlobalClass, diagramClass} {
		classes, ok := c.Styles[table]
		if !ok {
			continue
		}
		for _, key := range keys {
			if s, ok := classes[key]; ok {
				out = out.Merge(s)
			}
		}
	}
	return out
}

// StaticDecorations returns the decorations every drawing of diagramClass defines up front.
func (c *Config) StaticDecorations(diagramClass string) []string {
	out := append([]string(nil), c.Decorations[GlobalClass]...)
	if diagramClass != GlobalClass {
		out = append(out, c.Decorations[diagramClass]...)
	}
	return out
}

// validElementClass 校验 "Box"、"Edge.FunctionalExchange"、"Box.Class:hover" 形式的键。
func validElementClass(key string) bool {
	kind, rest, _ := strings.Cut(key, ".")
	if kind == "" || kind[0] < 'A' || kind[0] > 'Z' {
		return false
	}
	for _, r := range kind[1:] {
		if (r < 'a' || r > 'z') && r != '_' {
			return false
		}
	}
	if strings.Contains(key, ".") && rest == "" {
		return false
	}
	return true
}

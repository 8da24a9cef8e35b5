package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/capsvg/diagram"
	"github.com/ByLCY/capsvg/layout"
	"github.com/ByLCY/capsvg/renderer"
	canvasrenderer "github.com/ByLCY/capsvg/renderer/canvas"
	svgrenderer "github.com/ByLCY/capsvg/renderer/svg"
	"github.com/ByLCY/capsvg/scene"
	"github.com/ByLCY/capsvg/style"
)

// config 汇总命令行参数。
type config struct {
	input, output string
	format        string
	stylesPath    string
	font          string
	fontSize      string
	fontsDir      string
	debugPath     string
	helpingLines  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "in", "examples/diagram.json", "图 JSON 文件路径")
	flag.StringVar(&cfg.output, "out", "output/diagram.svg", "输出路径")
	flag.StringVar(&cfg.format, "format", "", "输出格式 svg|pdf（默认按输出文件扩展名）")
	flag.StringVar(&cfg.stylesPath, "styles", "", "样式表 YAML（默认使用内置样式表）")
	flag.StringVar(&cfg.font, "font", "segoeui", "标签字体（族名、字体文件或内置字体 Go-Regular）")
	flag.StringVar(&cfg.fontSize, "font-size", "8pt", "标签字号，例如 8pt、11px")
	flag.StringVar(&cfg.fontsDir, "fonts-dir", "", "字体文件目录（默认与输入文件同目录）")
	flag.StringVar(&cfg.debugPath, "debug", "", "标签排版调试 JSON 输出路径")
	flag.BoolVar(&cfg.helpingLines, "helping-lines", false, "在每个框上画出辅助中线")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("生成图失败: %v", err)
	}
	fmt.Printf("已生成：%s\n", cfg.output)
}

// run 串联读取、排版与渲染。
func run(cfg config) error {
	format, err := outputFormat(cfg.format, cfg.output)
	if err != nil {
		return err
	}

	d, err := diagram.LoadFile(cfg.input)
	if err != nil {
		return err
	}

	styles := style.DefaultConfig()
	if cfg.stylesPath != "" {
		if styles, err = style.LoadConfigFile(cfg.stylesPath); err != nil {
			return err
		}
	}

	fontsDir := cfg.fontsDir
	if fontsDir == "" {
		fontsDir = filepath.Dir(cfg.input)
	}
	font := layout.FontDescriptor{Family: cfg.font, Size: layout.FontSizePT(cfg.fontSize)}
	if font.Size <= 0 {
		return fmt.Errorf("无效的字号 %q", cfg.fontSize)
	}
	opts := canvasrenderer.Options{BaseDir: fontsDir, Font: font, Title: d.Name}
	fontMeasurer := canvasrenderer.NewMeasurer(opts)
	measurer, err := layout.NewCachedMeasurer(fontMeasurer, layout.DefaultExtentCacheSize)
	if err != nil {
		return err
	}

	builder := scene.NewBuilder(layout.NewEngine(measurer, font), scene.Options{
		Config: styles,
		Logger: log.New(os.Stderr, "capsvg: ", 0),
		Debug:  cfg.helpingLines,
	})
	sc, err := builder.Build(d)
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}

	if cfg.debugPath != "" {
		if err := writeDebug(sc.Labels, cfg.debugPath); err != nil {
			return err
		}
	}

	var r renderer.Renderer
	switch format {
	case "pdf":
		r = canvasrenderer.NewRenderer(fontMeasurer, opts)
	default:
		r = svgrenderer.New(svgrenderer.Options{})
	}
	out, err := r.Render(sc)
	if err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", strings.ToUpper(format), err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(cfg.output, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

// outputFormat 返回 svg 或 pdf；未显式指定时按输出文件扩展名判断。
func outputFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
		if format == "" {
			format = "svg"
		}
	}
	format = strings.ToLower(format)
	switch format {
	case "svg", "pdf":
		return format, nil
	}
	return "", fmt.Errorf("不支持的输出格式 %q（可选 svg、pdf）", format)
}

func writeDebug(labels []*layout.Label, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(labels, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

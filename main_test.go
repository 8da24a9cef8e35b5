package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputFormat(t *testing.T) {
	cases := []struct {
		format, output, want string
	}{
		{"", "out/diagram.svg", "svg"},
		{"", "out/diagram.PDF", "pdf"},
		{"", "out/diagram", "svg"},
		{"pdf", "out/diagram.svg", "pdf"},
	}
	for _, c := range cases {
		got, err := outputFormat(c.format, c.output)
		if err != nil {
			t.Fatalf("outputFormat(%q, %q) error: %v", c.format, c.output, err)
		}
		if got != c.want {
			t.Fatalf("outputFormat(%q, %q) = %q, want %q", c.format, c.output, got, c.want)
		}
	}
	if _, err := outputFormat("png", "x.png"); err == nil {
		t.Fatalf("expected error for png")
	}
}

// TestRunExampleDiagram 使用内置字体渲染示例图，SVG 与 PDF 各一次。
func TestRunExampleDiagram(t *testing.T) {
	dir := t.TempDir()
	base := config{
		input:    filepath.Join("examples", "diagram.json"),
		font:     "Go-Regular",
		fontSize: "8pt",
	}

	svgCfg := base
	svgCfg.output = filepath.Join(dir, "diagram.svg")
	svgCfg.debugPath = filepath.Join(dir, "debug", "labels.json")
	if err := run(svgCfg); err != nil {
		t.Fatalf("run svg: %v", err)
	}
	svgBytes, err := os.ReadFile(svgCfg.output)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(svgBytes), "Actuator Controller") {
		t.Fatalf("svg misses a label")
	}
	debug, err := os.ReadFile(svgCfg.debugPath)
	if err != nil {
		t.Fatalf("read debug json: %v", err)
	}
	if !bytes.Contains(debug, []byte(`"spans"`)) {
		t.Fatalf("debug json misses spans: %s", debug)
	}

	pdfCfg := base
	pdfCfg.output = filepath.Join(dir, "diagram.pdf")
	if err := run(pdfCfg); err != nil {
		t.Fatalf("run pdf: %v", err)
	}
	pdfBytes, err := os.ReadFile(pdfCfg.output)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRunRejectsBadFontSize(t *testing.T) {
	cfg := config{
		input:    filepath.Join("examples", "diagram.json"),
		output:   filepath.Join(t.TempDir(), "x.svg"),
		font:     "Go-Regular",
		fontSize: "large",
	}
	if err := run(cfg); err == nil {
		t.Fatalf("expected error for invalid font size")
	}
}

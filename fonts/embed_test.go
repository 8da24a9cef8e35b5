package fonts

import "testing"

func TestLoadBundledNames(t *testing.T) {
	for _, name := range []string{"Go-Regular", "embed:Go-Bold", "go-italic.ttf", " GO-MONO "} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q) 失败: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("Load(%q) 返回空数据", name)
		}
	}
	if _, err := Load("Inter-Regular"); err == nil {
		t.Fatalf("未打包的字体应返回错误")
	}
}

func TestFallbackIsBundled(t *testing.T) {
	if !Has(FallbackName) {
		t.Fatalf("兜底字体 %s 必须是内置字体", FallbackName)
	}
	data, _ := Load(FallbackName)
	if len(Fallback()) != len(data) {
		t.Fatalf("Fallback() 与 Load(FallbackName) 不一致")
	}
	if len(Names()) != 4 {
		t.Fatalf("期望 4 个内置字体，实际 %v", Names())
	}
}

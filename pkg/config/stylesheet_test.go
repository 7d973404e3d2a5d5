package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/herofield/pkg/embedded"
)

const testSheet = `
themes:
  dark:
    --particle-color: "rgba(59, 130, 246, 0.5)"
    --background-color: " #0f172a "
  light:
    --particle-color: "rgba(59, 130, 246, 0.15)"
`

func TestParseStylesheet(t *testing.T) {
	sheet, err := ParseStylesheet([]byte(testSheet))
	if err != nil {
		t.Fatalf("ParseStylesheet() error: %v", err)
	}

	tests := []struct {
		theme, name, want string
	}{
		{"dark", "--particle-color", "rgba(59, 130, 246, 0.5)"},
		{"light", "--particle-color", "rgba(59, 130, 246, 0.15)"},
		{"dark", "--background-color", "#0f172a"}, // 首尾空白被去除
		{"light", "--background-color", ""},        // 未定义
		{"sepia", "--particle-color", ""},          // 未知主题
	}
	for _, tt := range tests {
		if got := sheet.Value(tt.theme, tt.name); got != tt.want {
			t.Errorf("Value(%q, %q): got %q, want %q", tt.theme, tt.name, got, tt.want)
		}
	}

	var nilSheet *Stylesheet
	if got := nilSheet.Value("dark", "--particle-color"); got != "" {
		t.Errorf("nil stylesheet should return empty value, got %q", got)
	}
}

func TestParseStylesheetInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"空文件", ""},
		{"没有主题", "themes: {}\n"},
		{"变量名缺少前缀", "themes:\n  dark:\n    particle-color: red\n"},
		{"YAML 语法错误", "themes: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseStylesheet([]byte(tt.data)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestLoadStylesheetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	if err := os.WriteFile(path, []byte(testSheet), 0644); err != nil {
		t.Fatalf("Failed to write stylesheet: %v", err)
	}

	sheet, err := LoadStylesheet(path)
	if err != nil {
		t.Fatalf("LoadStylesheet() error: %v", err)
	}
	if got := sheet.Value("light", "--particle-color"); got != "rgba(59, 130, 246, 0.15)" {
		t.Errorf("Unexpected light particle color %q", got)
	}

	if _, err := LoadStylesheet(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing stylesheet file")
	}
}

func TestLoadStylesheetFromEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/themes.yaml": &fstest.MapFile{Data: []byte(testSheet)},
	})
	defer embedded.Init(nil)

	sheet, err := LoadStylesheet("data/themes.yaml")
	if err != nil {
		t.Fatalf("LoadStylesheet(embedded) error: %v", err)
	}
	if got := sheet.Value("dark", "--particle-color"); got != "rgba(59, 130, 246, 0.5)" {
		t.Errorf("Unexpected dark particle color %q", got)
	}
}

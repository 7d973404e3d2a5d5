package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/herofield/pkg/config"
)

// openTestGdata 使用临时目录创建 gdata manager
func openTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func testStylesheet(t *testing.T) *config.Stylesheet {
	t.Helper()
	sheet, err := config.ParseStylesheet([]byte(`
themes:
  dark:
    --particle-color: "rgba(59, 130, 246, 0.5)"
  light:
    --particle-color: "rgba(59, 130, 246, 0.15)"
`))
	if err != nil {
		t.Fatalf("ParseStylesheet() error: %v", err)
	}
	return sheet
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"dark", ThemeDark, false},
		{"light", ThemeLight, false},
		{"Dark", "", true},
		{"", "", true},
		{"sepia", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTheme(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseTheme(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}

	if ThemeDark.Opposite() != ThemeLight || ThemeLight.Opposite() != ThemeDark {
		t.Error("Opposite() should swap light and dark")
	}
}

// TestThemeManagerDefaultsToDark 没有保存偏好时默认为深色主题
func TestThemeManagerDefaultsToDark(t *testing.T) {
	m := openTestGdata(t, "test_theme_default")
	tm := NewThemeManager(m, testStylesheet(t))

	if tm.Current() != ThemeDark {
		t.Errorf("Current(): got %q, want dark", tm.Current())
	}
	if tm.IsLight() {
		t.Error("IsLight() should be false by default")
	}
}

// TestThemeManagerToggleAndPersist 每次切换都会写入存储，新实例读取到保存的值
func TestThemeManagerToggleAndPersist(t *testing.T) {
	m := openTestGdata(t, "test_theme_persist")

	tm1 := NewThemeManager(m, testStylesheet(t))
	if got := tm1.Toggle(); got != ThemeLight {
		t.Fatalf("Toggle() from dark: got %q, want light", got)
	}

	data, err := m.LoadObjectProp(preferencesObject, themeProperty)
	if err != nil {
		t.Fatalf("Theme preference should be stored after toggle: %v", err)
	}
	if string(data) != "light" {
		t.Errorf("Stored value: got %q, want \"light\"", data)
	}

	tm2 := NewThemeManager(m, testStylesheet(t))
	if tm2.Current() != ThemeLight {
		t.Errorf("Reloaded theme: got %q, want light", tm2.Current())
	}

	tm2.Toggle()
	tm3 := NewThemeManager(m, testStylesheet(t))
	if tm3.Current() != ThemeDark {
		t.Errorf("Second toggle should persist dark, got %q", tm3.Current())
	}
}

// TestThemeManagerSetDoesNotPersist Set 只修改内存中的主题
func TestThemeManagerSetDoesNotPersist(t *testing.T) {
	m := openTestGdata(t, "test_theme_set")

	tm := NewThemeManager(m, nil)
	tm.Set(ThemeLight)
	if !tm.IsLight() {
		t.Fatal("Set(light) should change current theme")
	}

	if m.ObjectPropExists(preferencesObject, themeProperty) {
		t.Error("Set() must not write the preference")
	}
}

// TestThemeManagerInvalidStoredValue 存储值无法识别时回退到默认主题并返回错误
func TestThemeManagerInvalidStoredValue(t *testing.T) {
	m := openTestGdata(t, "test_theme_invalid")
	if err := m.SaveObjectProp(preferencesObject, themeProperty, []byte("sepia")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	tm := NewThemeManager(m, nil)
	if tm.Current() != ThemeDark {
		t.Errorf("Invalid stored value should fall back to dark, got %q", tm.Current())
	}
	if err := tm.Load(); err == nil {
		t.Error("Load() should report the invalid stored value")
	}
}

// TestThemeManagerNilGdata 降级模式：只在内存中切换
func TestThemeManagerNilGdata(t *testing.T) {
	tm := NewThemeManager(nil, nil)
	if tm.Current() != ThemeDark {
		t.Errorf("Degraded mode should default to dark, got %q", tm.Current())
	}
	if got := tm.Toggle(); got != ThemeLight {
		t.Errorf("Toggle() in degraded mode: got %q, want light", got)
	}
	if err := tm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if got := tm.StyleValue("--particle-color"); got != "" {
		t.Errorf("nil stylesheet should yield empty style values, got %q", got)
	}
}

// TestThemeManagerStyleValueFollowsTheme 样式变量按当前主题实时读取
func TestThemeManagerStyleValueFollowsTheme(t *testing.T) {
	tm := NewThemeManager(nil, testStylesheet(t))

	if got := tm.StyleValue("--particle-color"); got != "rgba(59, 130, 246, 0.5)" {
		t.Errorf("Dark particle color: got %q", got)
	}
	if tm.CurrentTheme() != "dark" {
		t.Errorf("CurrentTheme(): got %q, want dark", tm.CurrentTheme())
	}

	tm.Toggle()
	if got := tm.StyleValue("--particle-color"); got != "rgba(59, 130, 246, 0.15)" {
		t.Errorf("Light particle color after toggle: got %q", got)
	}
	if got := tm.StyleValue("--missing"); got != "" {
		t.Errorf("Undefined variable should be empty, got %q", got)
	}
}

package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/herofield/pkg/config"
)

// Theme 主题标志
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DefaultTheme 未保存偏好时使用的主题
const DefaultTheme = ThemeDark

// ParseTheme 解析主题字符串，只接受 "light" 和 "dark"
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Opposite 返回另一个主题
func (t Theme) Opposite() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// 存储路径常量：preferences 对象的 "theme" 属性
const (
	preferencesObject = "preferences"
	themeProperty     = "theme"
)

// ThemeManager 主题管理器
// 负责主题偏好的加载、保存，并按当前主题提供样式变量
//
// 偏好只有一个键值对："theme" -> "light" | "dark"，启动时读取一次，
// 每次切换时写入。
type ThemeManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	stylesheet   *config.Stylesheet
	current      Theme
}

// NewThemeManager 创建主题管理器并加载已保存的偏好
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存偏好）
//   - stylesheet: 主题样式表，可为 nil（所有样式变量为空，调用方使用回退颜色）
//
// 加载失败不是致命错误：记录日志并使用默认主题。
func NewThemeManager(gdataManager *gdata.Manager, stylesheet *config.Stylesheet) *ThemeManager {
	tm := &ThemeManager{
		gdataManager: gdataManager,
		stylesheet:   stylesheet,
		current:      DefaultTheme,
	}

	if err := tm.Load(); err != nil {
		log.Printf("[ThemeManager] Warning: Failed to load theme preference: %v (using %s)", err, DefaultTheme)
	}
	return tm
}

// Load 从 gdata 读取主题偏好
//
// 偏好不存在时使用默认主题并返回 nil；
// 读取失败或值无法识别时使用默认主题并返回错误。
func (tm *ThemeManager) Load() error {
	tm.current = DefaultTheme

	// 降级模式：无法持久化，使用默认主题
	if tm.gdataManager == nil {
		return nil
	}

	if !tm.gdataManager.ObjectPropExists(preferencesObject, themeProperty) {
		return nil
	}

	data, err := tm.gdataManager.LoadObjectProp(preferencesObject, themeProperty)
	if err != nil {
		return fmt.Errorf("failed to load theme preference: %w", err)
	}

	theme, err := ParseTheme(string(data))
	if err != nil {
		return fmt.Errorf("invalid stored theme preference: %w", err)
	}

	tm.current = theme
	log.Printf("[ThemeManager] Theme preference loaded: %s", theme)
	return nil
}

// Save 将当前主题写入 gdata
//
// 降级模式下返回 nil（不报错）
func (tm *ThemeManager) Save() error {
	if tm.gdataManager == nil {
		return nil
	}

	if err := tm.gdataManager.SaveObjectProp(preferencesObject, themeProperty, []byte(tm.current)); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}

	log.Printf("[ThemeManager] Theme preference saved: %s", tm.current)
	return nil
}

// Current 返回当前主题
func (tm *ThemeManager) Current() Theme {
	return tm.current
}

// IsLight 当前是否为浅色主题
func (tm *ThemeManager) IsLight() bool {
	return tm.current == ThemeLight
}

// Set 设置主题（仅修改内存，不写入存储）
//
// 用于命令行临时指定启动主题，不覆盖用户保存的偏好
func (tm *ThemeManager) Set(theme Theme) {
	tm.current = theme
}

// Toggle 切换主题并立即持久化
//
// 持久化失败只记录日志，切换本身始终生效
//
// 返回：
//   - Theme: 切换后的主题
func (tm *ThemeManager) Toggle() Theme {
	tm.current = tm.current.Opposite()
	log.Printf("[ThemeManager] Theme toggled to %s", tm.current)

	if err := tm.Save(); err != nil {
		log.Printf("[ThemeManager] Warning: %v", err)
	}
	return tm.current
}

// CurrentTheme 返回当前主题名，供渲染系统使用
func (tm *ThemeManager) CurrentTheme() string {
	return string(tm.current)
}

// StyleValue 返回当前主题下样式变量的值，未定义时返回空字符串
//
// 每次调用都按当前主题实时查询，主题切换后下一次调用即生效
func (tm *ThemeManager) StyleValue(name string) string {
	return tm.stylesheet.Value(string(tm.current), name)
}

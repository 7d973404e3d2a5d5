package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/herofield/pkg/embedded"
)

// Stylesheet 主题样式表
//
// 每个主题是一组 "--变量名" -> 值 的映射。渲染器每帧按当前主题实时查询，不缓存。
//
// 配置文件位置: data/themes.yaml
type Stylesheet struct {
	Themes map[string]map[string]string `yaml:"themes"`
}

// LoadStylesheet 加载样式表
//
// 路径以 "data/" 开头且嵌入资源已初始化时从嵌入资源读取，否则从文件系统读取。
//
// 返回:
//   - *Stylesheet: 解析后的样式表
//   - error: 读取或解析失败
func LoadStylesheet(path string) (*Stylesheet, error) {
	var data []byte
	var err error
	if embedded.IsInitialized() && strings.HasPrefix(strings.TrimPrefix(path, "./"), "data/") {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet %s: %w", path, err)
	}
	return ParseStylesheet(data)
}

// ParseStylesheet 从 YAML 数据解析样式表
func ParseStylesheet(data []byte) (*Stylesheet, error) {
	var sheet Stylesheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse stylesheet: %w", err)
	}
	if err := sheet.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stylesheet: %w", err)
	}
	return &sheet, nil
}

// Validate 验证样式表：至少定义一个主题，变量名必须以 "--" 开头
func (s *Stylesheet) Validate() error {
	if len(s.Themes) == 0 {
		return fmt.Errorf("no themes defined")
	}
	for theme, vars := range s.Themes {
		for name := range vars {
			if !strings.HasPrefix(name, "--") {
				return fmt.Errorf("theme %q: variable %q must start with \"--\"", theme, name)
			}
		}
	}
	return nil
}

// Value 返回指定主题下样式变量的值（去除首尾空白），未定义时返回空字符串
func (s *Stylesheet) Value(theme, name string) string {
	if s == nil {
		return ""
	}
	vars, ok := s.Themes[theme]
	if !ok {
		return ""
	}
	return strings.TrimSpace(vars[name])
}

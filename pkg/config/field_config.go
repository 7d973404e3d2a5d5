package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，HEROFIELD_PARTICLE_COUNT -> particle_count，
// 双下划线表示嵌套：HEROFIELD_WINDOW__WIDTH -> window.width
const EnvPrefix = "HEROFIELD_"

// DefaultCanvasID 宿主文档中粒子画布的元素 id
const DefaultCanvasID = "hero-canvas"

// DefaultFallbackColor 样式变量缺失或无法解析时使用的粒子颜色
const DefaultFallbackColor = "rgba(59, 130, 246, 0.5)"

// ClearMode 每帧开始时的清屏方式
type ClearMode string

const (
	// ClearFull 完全清空画布
	ClearFull ClearMode = "clear"
	// ClearTrail 用低透明度的背景色覆盖，产生拖尾效果
	ClearTrail ClearMode = "trail"
)

// RenderPolicy 非主主题下的渲染策略
type RenderPolicy string

const (
	// RenderSkip 非主主题下只清屏、不绘制也不推进粒子
	RenderSkip RenderPolicy = "skip"
	// RenderMute 始终绘制，非主主题下降低颜色透明度
	RenderMute RenderPolicy = "mute"
)

// ResizePolicy 容器尺寸变化时对粒子的处理策略
type ResizePolicy string

const (
	// ResizePreserve 保留粒子的位置和速度，越界粒子通过边界反弹回到画布内
	ResizePreserve ResizePolicy = "preserve"
	// ResizeReseedEmpty 仅当粒子场为空时（例如启动时容器尺寸为 0）重新生成粒子
	ResizeReseedEmpty ResizePolicy = "reseed-empty"
)

// NeighborSearch 连线阶段的邻居查找方式
type NeighborSearch string

const (
	// SearchPairwise 两两比较，O(N²)
	SearchPairwise NeighborSearch = "pairwise"
	// SearchGrid 均匀网格分桶，只比较相邻格子
	SearchGrid NeighborSearch = "grid"
	// SearchAuto 粒子数超过 GridThreshold 时使用网格
	SearchAuto NeighborSearch = "auto"
)

// WindowConfig 桌面窗口配置
type WindowConfig struct {
	Width     int    `yaml:"width" koanf:"width"`
	Height    int    `yaml:"height" koanf:"height"`
	Title     string `yaml:"title" koanf:"title"`
	Resizable bool   `yaml:"resizable" koanf:"resizable"`
}

// FieldConfig 粒子场渲染器配置
//
// 加载顺序：DefaultFieldConfig() -> YAML 文件（可选）-> HEROFIELD_* 环境变量。
type FieldConfig struct {
	// CanvasID 宿主文档中画布元素的 id，找不到时渲染器不初始化
	CanvasID string `yaml:"canvas_id" koanf:"canvas_id"`

	// ParticleCount 粒子数量 N，粒子场生命周期内保持不变
	ParticleCount int `yaml:"particle_count" koanf:"particle_count"`

	// VelocityRange 速度分量的取值范围 [-VelocityRange, VelocityRange]（像素/帧）
	VelocityRange float64 `yaml:"velocity_range" koanf:"velocity_range"`

	// 半径取值范围 [RadiusMin, RadiusMax)
	RadiusMin float64 `yaml:"radius_min" koanf:"radius_min"`
	RadiusMax float64 `yaml:"radius_max" koanf:"radius_max"`

	// 连线配置
	ConnectLines       bool           `yaml:"connect_lines" koanf:"connect_lines"`
	ConnectDistance    float64        `yaml:"connect_distance" koanf:"connect_distance"`
	LineOpacityDamping float64        `yaml:"line_opacity_damping" koanf:"line_opacity_damping"`
	LineWidth          float64        `yaml:"line_width" koanf:"line_width"`
	NeighborSearch     NeighborSearch `yaml:"neighbor_search" koanf:"neighbor_search"`
	GridThreshold      int            `yaml:"grid_threshold" koanf:"grid_threshold"`

	// 清屏配置
	ClearMode  ClearMode `yaml:"clear_mode" koanf:"clear_mode"`
	TrailAlpha float64   `yaml:"trail_alpha" koanf:"trail_alpha"`

	// 主题相关
	RenderPolicy RenderPolicy `yaml:"render_policy" koanf:"render_policy"`
	PrimaryTheme string       `yaml:"primary_theme" koanf:"primary_theme"`
	MutedOpacity float64      `yaml:"muted_opacity" koanf:"muted_opacity"`

	ResizePolicy ResizePolicy `yaml:"resize_policy" koanf:"resize_policy"`

	// ColorParam 粒子颜色对应的样式变量名，每帧实时读取
	ColorParam    string `yaml:"color_param" koanf:"color_param"`
	FallbackColor string `yaml:"fallback_color" koanf:"fallback_color"`

	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed" koanf:"seed"`

	// ShowStats 在窗口左下角显示帧数和粒子数
	ShowStats bool `yaml:"show_stats" koanf:"show_stats"`

	// Stylesheet 主题样式表路径，"data/" 开头时从嵌入资源读取
	Stylesheet string `yaml:"stylesheet" koanf:"stylesheet"`

	Window WindowConfig `yaml:"window" koanf:"window"`
}

// DefaultFieldConfig 返回默认配置
func DefaultFieldConfig() *FieldConfig {
	return &FieldConfig{
		CanvasID:           DefaultCanvasID,
		ParticleCount:      75,
		VelocityRange:      0.25,
		RadiusMin:          0,
		RadiusMax:          2,
		ConnectLines:       true,
		ConnectDistance:    120,
		LineOpacityDamping: 0.4,
		LineWidth:          0.5,
		NeighborSearch:     SearchAuto,
		GridThreshold:      150,
		ClearMode:          ClearFull,
		TrailAlpha:         0.1,
		RenderPolicy:       RenderSkip,
		PrimaryTheme:       "dark",
		MutedOpacity:       0.3,
		ResizePolicy:       ResizePreserve,
		ColorParam:         "--particle-color",
		FallbackColor:      DefaultFallbackColor,
		Seed:               0,
		ShowStats:          false,
		Stylesheet:         "data/themes.yaml",
		Window: WindowConfig{
			Width:     1024,
			Height:    640,
			Title:     "herofield",
			Resizable: true,
		},
	}
}

// LoadFieldConfig 加载粒子场配置
//
// 参数：
//   - path: YAML 配置文件路径，文件不存在时只使用默认值和环境变量
//
// 返回：
//   - *FieldConfig: 合并后的配置（已通过 Validate）
//   - error: 读取、解析或校验失败
func LoadFieldConfig(path string) (*FieldConfig, error) {
	k := koanf.New(".")
	cfg := DefaultFieldConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to read field config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to access field config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal field config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field config: %w", err)
	}
	return cfg, nil
}

// envKey HEROFIELD_WINDOW__WIDTH -> window.width
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate 验证配置有效性
func (c *FieldConfig) Validate() error {
	if c.CanvasID == "" {
		return fmt.Errorf("canvas_id is required")
	}
	if c.ParticleCount < 0 {
		return fmt.Errorf("particle_count must be non-negative, got %d", c.ParticleCount)
	}
	if c.VelocityRange <= 0 {
		return fmt.Errorf("velocity_range must be positive, got %v", c.VelocityRange)
	}
	if c.RadiusMin < 0 || c.RadiusMax < c.RadiusMin {
		return fmt.Errorf("radius range invalid: min(%v) max(%v)", c.RadiusMin, c.RadiusMax)
	}
	if c.ConnectDistance < 0 {
		return fmt.Errorf("connect_distance must be non-negative, got %v", c.ConnectDistance)
	}
	if c.LineOpacityDamping < 0 || c.LineOpacityDamping > 1 {
		return fmt.Errorf("line_opacity_damping must be within [0, 1], got %v", c.LineOpacityDamping)
	}
	if c.TrailAlpha <= 0 || c.TrailAlpha > 1 {
		return fmt.Errorf("trail_alpha must be within (0, 1], got %v", c.TrailAlpha)
	}
	if c.MutedOpacity < 0 || c.MutedOpacity > 1 {
		return fmt.Errorf("muted_opacity must be within [0, 1], got %v", c.MutedOpacity)
	}

	switch c.ClearMode {
	case ClearFull, ClearTrail:
	default:
		return fmt.Errorf("invalid clear_mode %q: must be one of clear, trail", c.ClearMode)
	}
	switch c.RenderPolicy {
	case RenderSkip, RenderMute:
	default:
		return fmt.Errorf("invalid render_policy %q: must be one of skip, mute", c.RenderPolicy)
	}
	switch c.ResizePolicy {
	case ResizePreserve, ResizeReseedEmpty:
	default:
		return fmt.Errorf("invalid resize_policy %q: must be one of preserve, reseed-empty", c.ResizePolicy)
	}
	switch c.NeighborSearch {
	case SearchPairwise, SearchGrid, SearchAuto:
	default:
		return fmt.Errorf("invalid neighbor_search %q: must be one of pairwise, grid, auto", c.NeighborSearch)
	}
	switch c.PrimaryTheme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid primary_theme %q: must be one of dark, light", c.PrimaryTheme)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// ResolveSearch 将 auto 解析为具体的查找方式
func (c *FieldConfig) ResolveSearch() NeighborSearch {
	if c.NeighborSearch != SearchAuto {
		return c.NeighborSearch
	}
	if c.ParticleCount > c.GridThreshold {
		return SearchGrid
	}
	return SearchPairwise
}

// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 internal/cli 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/herofield/pkg/canvas"
	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/config"
	"github.com/decker502/herofield/pkg/ecs"
	"github.com/decker502/herofield/pkg/field"
	"github.com/decker502/herofield/pkg/game"
	"github.com/decker502/herofield/pkg/systems"
	"github.com/decker502/herofield/pkg/utils"
)

// DefaultAppName gdata 存储使用的应用名
const DefaultAppName = "herofield"

// 主题切换按钮尺寸
const (
	toggleSize   = 40
	toggleMargin = 16
)

// defaultBackground --background-color 缺失时的页面背景色
var defaultBackground = color.NRGBA{R: 15, G: 23, B: 42, A: 255}

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Field 粒子场配置，为 nil 时使用默认配置
	Field *config.FieldConfig
	// AppName gdata 存储使用的应用名，为空时使用 DefaultAppName
	AppName string
	// Theme 强制指定启动主题（"light" / "dark"），不写入偏好；为空时使用保存的偏好
	Theme string
}

// App 应用核心包装器，实现 ebiten.Game 接口
//
// 窗口就是宿主文档：画布元素以 config.CanvasID 注册在 document 中，
// 窗口的外部尺寸就是画布容器的渲染尺寸。
type App struct {
	config       *config.FieldConfig
	themeManager *game.ThemeManager
	document     *canvas.Registry
	surface      *canvas.EbitenSurface
	frames       *game.FrameQueue
	renderer     *field.Renderer

	// UI 实体（主题切换按钮）
	entityManager *ecs.EntityManager
	toggleSystem  *systems.ThemeToggleSystem
	toggleRender  *systems.ThemeToggleRenderSystem

	statsFace text.Face

	outsideWidth  int
	outsideHeight int
	resizePending bool
	started       bool
	closed        bool

	pendingWindowSizeReset   bool // 退出全屏后延迟恢复窗口大小
	windowSizeResetCountdown int
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 偏好存储无法打开时降级为内存偏好，不视为错误。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fieldConfig := cfg.Field
	if fieldConfig == nil {
		fieldConfig = config.DefaultFieldConfig()
	}
	appName := cfg.AppName
	if appName == "" {
		appName = DefaultAppName
	}

	gdataManager := OpenPreferences(appName)

	sheet, err := config.LoadStylesheet(fieldConfig.Stylesheet)
	if err != nil {
		return nil, fmt.Errorf("样式表加载失败: %w", err)
	}

	themeManager := game.NewThemeManager(gdataManager, sheet)
	if cfg.Theme != "" {
		theme, err := game.ParseTheme(cfg.Theme)
		if err != nil {
			return nil, err
		}
		themeManager.Set(theme)
		log.Printf("[App] Start theme forced to %s (not persisted)", theme)
	}

	a := &App{
		config:        fieldConfig,
		themeManager:  themeManager,
		document:      canvas.NewRegistry(),
		frames:        game.NewFrameQueue(),
		entityManager: ecs.NewEntityManager(),
		statsFace:     text.NewGoXFace(basicfont.Face7x13),
		outsideWidth:  fieldConfig.Window.Width,
		outsideHeight: fieldConfig.Window.Height,
	}

	a.surface = canvas.NewEbitenSurface(a.containerSize)
	a.document.Register(fieldConfig.CanvasID, a.surface)
	a.renderer = field.NewRenderer(fieldConfig, themeManager, a.frames, nil)

	a.toggleSystem = systems.NewThemeToggleSystem(a.entityManager, a.toggleTheme)
	a.toggleRender = systems.NewThemeToggleRenderSystem(a.entityManager, themeManager)
	toggle := a.entityManager.CreateEntity()
	a.entityManager.AddComponent(toggle, &components.ThemeToggleComponent{
		Width:   toggleSize,
		Height:  toggleSize,
		Margin:  toggleMargin,
		State:   components.UINormal,
		Enabled: true,
	})
	a.entityManager.AddComponent(toggle, &components.PositionComponent{})
	a.toggleSystem.Layout(a.outsideWidth, a.outsideHeight)

	log.Printf("[App] Initialized: theme=%s particles=%d", themeManager.Current(), fieldConfig.ParticleCount)
	return a, nil
}

// OpenPreferences 打开 gdata 偏好存储，失败时返回 nil（降级模式）
func OpenPreferences(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open preference storage: %v (preferences will not persist)", err)
		return nil
	}
	return m
}

// Run 设置窗口并运行游戏循环，直到窗口关闭
func (a *App) Run() error {
	ebiten.SetWindowSize(a.config.Window.Width, a.config.Window.Height)
	ebiten.SetWindowTitle(a.config.Window.Title)
	if a.config.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	err := ebiten.RunGame(a)
	a.Close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close 停止帧循环，可重复调用
//
// 主题偏好只在切换时写入，Config.Theme 强制的启动主题不会被保存
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.renderer.Stop()
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
//
// 顺序：启动渲染器 -> 同步容器尺寸 -> 处理输入 -> 执行一帧
func (a *App) Update() error {
	if !a.started {
		a.started = true
		a.renderer.Start(a.document)
	}

	if a.resizePending {
		a.resizePending = false
		a.renderer.HandleResize()
		a.toggleSystem.Layout(a.outsideWidth, a.outsideHeight)
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.Window.Width, a.config.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if !utils.IsMobile() {
		// F11 切换全屏
		if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
			if ebiten.IsFullscreen() {
				ebiten.SetFullscreen(false)
				a.pendingWindowSizeReset = true
				a.windowSizeResetCountdown = 3
				log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
			} else {
				ebiten.SetFullscreen(true)
			}
		}

		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
	}

	a.toggleSystem.Update()
	a.frames.RunFrame()
	return nil
}

// Draw 绘制画面
//
// 页面背景 -> 粒子画布 -> 主题切换按钮 -> 调试信息
func (a *App) Draw(screen *ebiten.Image) {
	background, err := utils.ParseCSSColor(a.themeManager.StyleValue("--background-color"))
	if err != nil {
		background = defaultBackground
	}
	screen.Fill(background)

	if img := a.surface.Image(); img != nil {
		screen.DrawImage(img, nil)
	}

	a.toggleRender.Draw(canvas.WrapImage(screen))

	if a.config.ShowStats {
		a.drawStats(screen)
	}
}

func (a *App) drawStats(screen *ebiten.Image) {
	textColor, err := utils.ParseCSSColor(a.themeManager.StyleValue("--text-color"))
	if err != nil {
		textColor = color.NRGBA{R: 226, G: 232, B: 240, A: 255}
	}

	msg := fmt.Sprintf("theme: %s  particles: %d  links: %d  frames: %d  TPS: %.0f",
		a.themeManager.Current(), a.renderer.ParticleCount(), a.renderer.LinkCount(),
		a.renderer.FrameCount(), ebiten.ActualTPS())

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, float64(a.outsideHeight)-20)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, msg, a.statsFace, op)
}

// Layout 窗口外部尺寸即画布容器尺寸
// 尺寸变化只做记录，在下一次 Update 开始时同步到画布
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.outsideWidth || outsideHeight != a.outsideHeight {
		a.outsideWidth, a.outsideHeight = outsideWidth, outsideHeight
		a.resizePending = true
	}
	return outsideWidth, outsideHeight
}

func (a *App) containerSize() (int, int) {
	return a.outsideWidth, a.outsideHeight
}

func (a *App) toggleTheme() {
	a.themeManager.Toggle()
}

// ThemeManager 返回主题管理器
func (a *App) ThemeManager() *game.ThemeManager {
	return a.themeManager
}

// Renderer 返回粒子场渲染器
func (a *App) Renderer() *field.Renderer {
	return a.renderer
}

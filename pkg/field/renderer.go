// Package field 实现首页背景的粒子网络渲染器
//
// 渲染器在画布上维护固定数量的粒子，每帧推进、反弹、连线并重绘，
// 通过宿主提供的帧调度原语驱动自己的动画循环。
package field

import (
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/herofield/pkg/canvas"
	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/config"
	"github.com/decker502/herofield/pkg/ecs"
	"github.com/decker502/herofield/pkg/game"
	"github.com/decker502/herofield/pkg/systems"
	"github.com/decker502/herofield/pkg/utils"
)

// State 渲染器状态
type State int

const (
	// StateUninitialized 画布不存在或尚未启动
	StateUninitialized State = iota
	// StateRunning 粒子已生成，帧循环运行中
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// trailFallback 拖尾模式下 --background-color 缺失时使用的背景色
var trailFallback = color.NRGBA{A: 255}

// Renderer 粒子场渲染器
//
// 状态机只有一次转换：Start 找到画布时 Uninitialized -> Running。
// 之后帧循环一直运行，直到 Stop 被调用（窗口关闭或测试结束）。
//
// 粒子集合保存在私有的 EntityManager 中，每个粒子是一个只带
// ParticleComponent 的实体，按实体 ID 顺序遍历。
//
// 非并发安全：Start、HandleResize 和帧回调都必须在同一个 goroutine 中调用。
type Renderer struct {
	config    *config.FieldConfig
	style     systems.StyleSource
	scheduler game.FrameScheduler
	rng       *rand.Rand

	entityManager *ecs.EntityManager
	physics       *systems.ParticlePhysicsSystem
	render        *systems.FieldRenderSystem

	element canvas.Element
	state   State

	inFrame       bool
	resizePending bool
	stopped       bool
	frames        int
}

// NewRenderer 创建处于 Uninitialized 状态的渲染器
//
// 参数：
//   - cfg: 粒子场配置
//   - style: 当前主题和样式变量来源，可为 nil（始终按主主题、回退颜色绘制）
//   - scheduler: 帧调度原语
//   - rng: 随机数源，为 nil 时按 cfg.Seed 创建（Seed 为 0 时使用当前时间）
func NewRenderer(cfg *config.FieldConfig, style systems.StyleSource, scheduler game.FrameScheduler, rng *rand.Rand) *Renderer {
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	em := ecs.NewEntityManager()
	return &Renderer{
		config:        cfg,
		style:         style,
		scheduler:     scheduler,
		rng:           rng,
		entityManager: em,
		physics:       systems.NewParticlePhysicsSystem(em),
		render:        systems.NewFieldRenderSystem(em, cfg, style),
		state:         StateUninitialized,
	}
}

// Start 在文档中查找画布并启动帧循环
//
// 找不到画布时什么也不做：不生成粒子、不请求帧，返回 false。
// 已经启动时直接返回 true。
func (r *Renderer) Start(doc canvas.Document) bool {
	if r.state == StateRunning {
		return true
	}

	el, ok := doc.Element(r.config.CanvasID)
	if !ok || el == nil {
		log.Printf("[FieldRenderer] Canvas %q not found, particle field disabled", r.config.CanvasID)
		return false
	}

	r.element = el
	r.applySize()

	bounds := r.bounds()
	if r.config.ResizePolicy == config.ResizeReseedEmpty && bounds.Area() == 0 {
		log.Printf("[FieldRenderer] Container has zero area, seeding deferred until resize")
	} else {
		r.seed(bounds)
	}

	r.state = StateRunning
	log.Printf("[FieldRenderer] Started: %d particles on %.0fx%.0f canvas", r.ParticleCount(), bounds.Width, bounds.Height)

	r.scheduler.RequestFrame(r.frame)
	return true
}

// HandleResize 把容器的当前渲染尺寸同步到画布
//
// 在帧回调执行期间调用时推迟到下一帧开始，保证一帧内读取的尺寸一致。
// 未启动时忽略。
func (r *Renderer) HandleResize() {
	if r.state != StateRunning {
		return
	}
	if r.inFrame {
		r.resizePending = true
		return
	}
	r.applyResize()
}

// Stop 停止调度后续帧
// 已登记的帧回调执行时直接返回
func (r *Renderer) Stop() {
	if !r.stopped {
		log.Printf("[FieldRenderer] Stopped after %d frames", r.frames)
	}
	r.stopped = true
}

// Stopped 是否已调用 Stop
func (r *Renderer) Stopped() bool {
	return r.stopped
}

// State 返回当前状态
func (r *Renderer) State() State {
	return r.state
}

// FrameCount 返回已执行的帧数（包括跳过绘制的帧）
func (r *Renderer) FrameCount() int {
	return r.frames
}

// Particles 返回粒子集合的有序副本
func (r *Renderer) Particles() []components.ParticleComponent {
	entities := ecs.GetEntitiesWith1[*components.ParticleComponent](r.entityManager)
	result := make([]components.ParticleComponent, 0, len(entities))
	for _, id := range entities {
		if p, ok := ecs.GetComponent[*components.ParticleComponent](r.entityManager, id); ok {
			result = append(result, *p)
		}
	}
	return result
}

// LinkCount 返回最近一帧绘制的连线数
func (r *Renderer) LinkCount() int {
	_, links := r.render.LastStats()
	return links
}

// frame 每次显示刷新执行一次
//
// 顺序：清屏 -> 推进并反弹 -> 连线 -> 绘制粒子 -> 请求下一帧。
// 下一帧的请求总是发出，包括跳过绘制的帧。
func (r *Renderer) frame() {
	if r.stopped {
		return
	}

	r.inFrame = true
	if r.resizePending {
		r.resizePending = false
		r.applyResize()
	}

	muted := 1.0
	primary := r.style == nil || r.style.CurrentTheme() == r.config.PrimaryTheme
	if !primary && r.config.RenderPolicy == config.RenderSkip {
		// 非主主题只清屏，粒子保持静止
		r.element.Clear()
	} else {
		if !primary {
			muted = r.config.MutedOpacity
		}
		r.clear()
		r.physics.Update(r.bounds())
		r.render.Draw(r.element, muted)
	}

	r.frames++
	r.inFrame = false

	if !r.stopped {
		r.scheduler.RequestFrame(r.frame)
	}
}

// clear 按清屏模式处理上一帧的内容
func (r *Renderer) clear() {
	if r.config.ClearMode != config.ClearTrail {
		r.element.Clear()
		return
	}

	bg := trailFallback
	if r.style != nil {
		if c, err := utils.ParseCSSColor(r.style.StyleValue("--background-color")); err == nil {
			bg = c
		}
	}
	r.element.Fill(utils.WithAlpha(bg, r.config.TrailAlpha))
}

func (r *Renderer) applyResize() {
	r.applySize()

	if r.config.ResizePolicy == config.ResizeReseedEmpty && r.ParticleCount() == 0 {
		if bounds := r.bounds(); bounds.Area() > 0 {
			r.seed(bounds)
		}
	}
}

// applySize 读取容器渲染尺寸并写入画布
func (r *Renderer) applySize() {
	w, h := r.element.RenderedSize()
	if cw, ch := r.element.Size(); cw == w && ch == h {
		return
	}
	r.element.Resize(w, h)
	log.Printf("[FieldRenderer] Canvas resized to %dx%d", w, h)
}

func (r *Renderer) bounds() components.Bounds {
	w, h := r.element.Size()
	return components.Bounds{Width: float64(w), Height: float64(h)}
}

// seed 生成 N 个粒子
// 位置在画布内均匀分布，速度分量在 [-VelocityRange, VelocityRange) 内均匀分布，
// 两个分量同时为 0 时重新抽取
func (r *Renderer) seed(bounds components.Bounds) {
	radiusSpan := r.config.RadiusMax - r.config.RadiusMin

	for i := 0; i < r.config.ParticleCount; i++ {
		p := &components.ParticleComponent{
			X:      r.rng.Float64() * bounds.Width,
			Y:      r.rng.Float64() * bounds.Height,
			VX:     r.velocity(),
			VY:     r.velocity(),
			Radius: r.config.RadiusMin + r.rng.Float64()*radiusSpan,
		}
		for p.VX == 0 && p.VY == 0 {
			p.VX, p.VY = r.velocity(), r.velocity()
		}

		id := r.entityManager.CreateEntity()
		r.entityManager.AddComponent(id, p)
	}
}

func (r *Renderer) velocity() float64 {
	return (r.rng.Float64()*2 - 1) * r.config.VelocityRange
}

// ParticleCount 返回粒子数量
func (r *Renderer) ParticleCount() int {
	return len(ecs.GetEntitiesWith1[*components.ParticleComponent](r.entityManager))
}

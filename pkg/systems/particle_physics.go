package systems

import (
	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/ecs"
)

// Advance 推进一个粒子一帧
//
// 显式欧拉积分（时间步长为 1 帧），然后按轴独立做边界反弹：
//   - X < 0 时 VX 取正，X > Width 时 VX 取负（Y 轴同理）
//   - 位置不做钳制，粒子可以越界一帧，下一帧由速度带回画布内
//
// 对于上一帧仍在画布内的粒子，这与直接取反速度分量完全相同；
// 画布缩小后留在界外的粒子也不会在边界外来回抖动。
// 速度分量的绝对值和半径都不会改变。
func Advance(p components.ParticleComponent, b components.Bounds) components.ParticleComponent {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 {
		p.VX = abs(p.VX)
	} else if p.X > b.Width {
		p.VX = -abs(p.VX)
	}

	if p.Y < 0 {
		p.VY = abs(p.VY)
	} else if p.Y > b.Height {
		p.VY = -abs(p.VY)
	}

	return p
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ParticlePhysicsSystem 粒子物理系统
// 对所有带 ParticleComponent 的实体执行 Advance
type ParticlePhysicsSystem struct {
	entityManager *ecs.EntityManager
}

// NewParticlePhysicsSystem 创建粒子物理系统
func NewParticlePhysicsSystem(em *ecs.EntityManager) *ParticlePhysicsSystem {
	return &ParticlePhysicsSystem{
		entityManager: em,
	}
}

// Update 推进所有粒子一帧
//
// 参数：
//   - bounds: 当前画布尺寸（每帧重新读取）
func (s *ParticlePhysicsSystem) Update(bounds components.Bounds) {
	entities := ecs.GetEntitiesWith1[*components.ParticleComponent](s.entityManager)
	for _, id := range entities {
		p, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		if !ok {
			continue
		}
		*p = Advance(*p, bounds)
	}
}

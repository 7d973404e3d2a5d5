package systems

import (
	"math"
	"sort"

	"github.com/decker502/herofield/pkg/components"
	"github.com/decker502/herofield/pkg/config"
)

// Link 两个粒子之间的连线
// A < B，均为粒子在有序集合中的下标
type Link struct {
	A, B    int
	Opacity float64 // 阻尼前的不透明度 (0, 1]
}

// ConnectionOpacity 计算连线不透明度
//
// 距离平方严格小于阈值平方时连线，不透明度从 1（距离 0）线性降到 0（距离等于阈值）：
//
//	opacity = 1 - distSq/thresholdSq
//
// 返回：
//   - float64: 阻尼前的不透明度
//   - bool: 是否连线
func ConnectionOpacity(distSq, thresholdSq float64) (float64, bool) {
	if thresholdSq <= 0 || distSq >= thresholdSq {
		return 0, false
	}
	return 1 - distSq/thresholdSq, true
}

// FindLinks 找出所有距离小于 threshold 的粒子对
//
// 参数：
//   - particles: 有序粒子集合
//   - threshold: 连线距离
//   - search: 查找方式；SearchAuto 在这里按 SearchPairwise 处理，
//     由调用方通过 FieldConfig.ResolveSearch 提前决定
//
// 返回按 (A, B) 排序的连线列表，两种查找方式结果完全相同。
func FindLinks(particles []*components.ParticleComponent, threshold float64, search config.NeighborSearch) []Link {
	if len(particles) < 2 || threshold <= 0 {
		return nil
	}
	if search == config.SearchGrid {
		return findLinksGrid(particles, threshold)
	}
	return findLinksPairwise(particles, threshold)
}

// findLinksPairwise 两两比较，O(N²)
// N 不超过约 75 时每帧约 2800 次距离计算，足够便宜
func findLinksPairwise(particles []*components.ParticleComponent, threshold float64) []Link {
	thresholdSq := threshold * threshold
	var links []Link
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			if op, ok := ConnectionOpacity(distSq(particles[i], particles[j]), thresholdSq); ok {
				links = append(links, Link{A: i, B: j, Opacity: op})
			}
		}
	}
	return links
}

type cellKey struct {
	cx, cy int
}

// findLinksGrid 均匀网格分桶
//
// 格子边长等于连线距离，任何连线的两端都落在相同或相邻的格子里，
// 因此只需比较 3x3 邻域。越界粒子的格子坐标可以为负。
func findLinksGrid(particles []*components.ParticleComponent, threshold float64) []Link {
	thresholdSq := threshold * threshold
	cellOf := func(p *components.ParticleComponent) cellKey {
		return cellKey{
			cx: int(math.Floor(p.X / threshold)),
			cy: int(math.Floor(p.Y / threshold)),
		}
	}

	bins := make(map[cellKey][]int, len(particles))
	for i, p := range particles {
		k := cellOf(p)
		bins[k] = append(bins[k], i)
	}

	var links []Link
	for i, p := range particles {
		k := cellOf(p)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for _, j := range bins[cellKey{k.cx + dx, k.cy + dy}] {
					// 每对只在 i < j 时记录一次
					if j <= i {
						continue
					}
					if op, ok := ConnectionOpacity(distSq(p, particles[j]), thresholdSq); ok {
						links = append(links, Link{A: i, B: j, Opacity: op})
					}
				}
			}
		}
	}

	sort.Slice(links, func(a, b int) bool {
		if links[a].A != links[b].A {
			return links[a].A < links[b].A
		}
		return links[a].B < links[b].B
	})
	return links
}

func distSq(a, b *components.ParticleComponent) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

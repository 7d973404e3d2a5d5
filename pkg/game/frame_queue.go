package game

// FrameScheduler 宿主提供的帧调度原语
//
// 回调会在下一次显示刷新时被调用一次。
type FrameScheduler interface {
	RequestFrame(callback func())
}

// FrameQueue 基于队列的帧调度器
//
// App 在每个 Ebitengine tick 调用一次 RunFrame；测试中可以同步调用 N 次
// 来推进 N 帧，不依赖真实的显示刷新。
//
// 非并发安全：与 Update/Draw 一样只在游戏循环所在的 goroutine 中使用。
type FrameQueue struct {
	pending  []func()
	requests int
	frames   int
}

// NewFrameQueue 创建空的帧队列
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame 实现 FrameScheduler 接口
func (q *FrameQueue) RequestFrame(callback func()) {
	if callback == nil {
		return
	}
	q.pending = append(q.pending, callback)
	q.requests++
}

// RunFrame 执行调用前已登记的所有回调
//
// 回调执行期间新登记的回调会留到下一次 RunFrame，
// 因此自我调度的动画循环每次 RunFrame 恰好推进一帧。
//
// 返回：
//   - int: 本次执行的回调数量
func (q *FrameQueue) RunFrame() int {
	q.frames++
	if len(q.pending) == 0 {
		return 0
	}

	callbacks := q.pending
	q.pending = nil
	for _, cb := range callbacks {
		cb()
	}
	return len(callbacks)
}

// Pending 返回等待下一帧执行的回调数量
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Requests 返回累计的 RequestFrame 调用次数
func (q *FrameQueue) Requests() int {
	return q.requests
}

// Frames 返回累计的 RunFrame 调用次数（显示刷新次数）
func (q *FrameQueue) Frames() int {
	return q.frames
}

// Package state 提供可观察状态容器，会话控制器用它暴露
// 帖子列表、加载标记等UI相关状态。
//
// 语义对齐常见的响应式状态原语：缓存最后一个值、允许多个订阅者、
// 单一发布者的更新顺序对每个订阅者保持一致。订阅通道做合流处理，
// 消费慢的订阅者跳过中间值、总能看到最新值，发布者永不阻塞。
package state

import "sync"

// Value 最后值缓存的可观察状态
type Value[T any] struct {
	mu   sync.Mutex
	cur  T
	subs map[int]chan T
	next int
}

// NewValue 创建可观察状态并设定初始值
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		cur:  initial,
		subs: make(map[int]chan T),
	}
}

// Get 读取当前值
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Set 更新当前值并通知所有订阅者
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = val
	for _, ch := range v.subs {
		offer(ch, val)
	}
}

// Update 在锁内基于当前值计算新值，避免读改写竞争
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = fn(v.cur)
	for _, ch := range v.subs {
		offer(ch, v.cur)
	}
}

// Subscribe 订阅更新，通道先收到当前值，之后收到后续更新
// 返回的取消函数用于退订并关闭通道
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan T, 1)
	ch <- v.cur

	idx := v.next
	v.next++
	v.subs[idx] = ch

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if sub, ok := v.subs[idx]; ok {
			delete(v.subs, idx)
			close(sub)
		}
	}
	return ch, cancel
}

// offer 合流投递：通道已满时丢弃未消费的旧值，保证订阅者看到最新值
func offer[T any](ch chan T, val T) {
	for {
		select {
		case ch <- val:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

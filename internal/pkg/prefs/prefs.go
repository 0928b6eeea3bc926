// Package prefs 设备本地偏好存储：匿名帖子ID索引。
//
// 匿名帖子的作者ID为空串，服务端无法归属；每台设备把自己发出的
// 匿名帖子ID记进一个字符串集合，之后才能展示"我的匿名帖子"。
// 索引只在本设备可见，不跨设备同步。
package prefs

import (
	"context"
	"sync"
)

// Store 匿名帖子ID索引
type Store interface {
	// Remember 记录一条匿名帖子ID，幂等
	Remember(ctx context.Context, deviceID, postID string) error

	// List 返回该设备记录的全部匿名帖子ID
	List(ctx context.Context, deviceID string) (map[string]struct{}, error)

	// Contains 该帖子是否由本设备匿名发出
	Contains(ctx context.Context, deviceID, postID string) (bool, error)

	// Forget 帖子删除成功后将其ID移出索引
	Forget(ctx context.Context, deviceID, postID string) error
}

// MemoryStore 进程内实现，未配置 Redis 时使用，也用于测试
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]map[string]struct{} // deviceID -> post id set
}

// NewMemoryStore 创建进程内索引
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]map[string]struct{})}
}

// Remember 记录一条匿名帖子ID，幂等
func (s *MemoryStore) Remember(ctx context.Context, deviceID, postID string) error {
	if postID == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[deviceID]
	if !ok {
		set = make(map[string]struct{})
		s.sets[deviceID] = set
	}
	set[postID] = struct{}{}
	return nil
}

// List 返回该设备记录的全部匿名帖子ID
func (s *MemoryStore) List(ctx context.Context, deviceID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.sets[deviceID]))
	for id := range s.sets[deviceID] {
		out[id] = struct{}{}
	}
	return out, nil
}

// Contains 该帖子是否由本设备匿名发出
func (s *MemoryStore) Contains(ctx context.Context, deviceID, postID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sets[deviceID][postID]
	return ok, nil
}

// Forget 将帖子ID移出索引
func (s *MemoryStore) Forget(ctx context.Context, deviceID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets[deviceID], postID)
	return nil
}

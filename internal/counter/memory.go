package counter

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value    int64
	deadline time.Time // 零值表示永不过期
}

// MemoryStore 进程内计数实现，供测试与未配置 Redis 的单机部署使用。
// 过期采用惰性清理：读写时检查 deadline
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	now     func() time.Time
}

// NewMemoryStore 创建进程内计数存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memEntry),
		now:     time.Now,
	}
}

// SetClock 注入时钟，仅测试使用
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// alive 取出未过期的条目，过期条目顺手删除；调用方须持锁
func (s *MemoryStore) alive(key string) *memEntry {
	e, ok := s.entries[key]
	if !ok {
		return nil
	}
	if !e.deadline.IsZero() && !s.now().Before(e.deadline) {
		delete(s.entries, key)
		return nil
	}
	return e
}

// IncrWithExpiry 自增并在首次创建时设置过期
func (s *MemoryStore) IncrWithExpiry(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.alive(key)
	if e == nil {
		e = &memEntry{}
		if ttl > 0 {
			e.deadline = s.now().Add(ttl)
		}
		s.entries[key] = e
	}
	e.value++
	return e.value, nil
}

// Get 读取当前计数
func (s *MemoryStore) Get(_ context.Context, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.alive(key)
	if e == nil {
		return 0, false, nil
	}
	return e.value, true, nil
}

// Del 删除计数键
func (s *MemoryStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

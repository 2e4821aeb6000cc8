package counter

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreIncrAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	v, err := s.IncrWithExpiry(ctx, "k", time.Minute)
	if err != nil || v != 1 {
		t.Fatalf("first incr: v=%d err=%v, want 1", v, err)
	}
	v, err = s.IncrWithExpiry(ctx, "k", time.Minute)
	if err != nil || v != 2 {
		t.Fatalf("second incr: v=%d err=%v, want 2", v, err)
	}

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || got != 2 {
		t.Fatalf("Get: v=%d ok=%v err=%v, want 2/true", got, ok, err)
	}

	_, ok, _ = s.Get(ctx, "missing")
	if ok {
		t.Fatalf("missing key should not be alive")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Now()
	s.SetClock(func() time.Time { return base })

	if _, err := s.IncrWithExpiry(ctx, "k", time.Minute); err != nil {
		t.Fatalf("incr: %v", err)
	}

	// 窗口内可见
	s.SetClock(func() time.Time { return base.Add(30 * time.Second) })
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Fatalf("key should still be alive inside ttl")
	}

	// 过期后不可见，且重新自增从 1 开始
	s.SetClock(func() time.Time { return base.Add(2 * time.Minute) })
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("key should have expired")
	}
	v, err := s.IncrWithExpiry(ctx, "k", time.Minute)
	if err != nil || v != 1 {
		t.Fatalf("incr after expiry: v=%d err=%v, want 1", v, err)
	}
}

func TestMemoryStoreDel(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, _ = s.IncrWithExpiry(ctx, "k", 0)
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("key should be gone after Del")
	}
	// 删除不存在的键不算错误
	if err := s.Del(ctx, "missing"); err != nil {
		t.Fatalf("del missing: %v", err)
	}
}

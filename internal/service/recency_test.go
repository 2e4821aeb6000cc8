package service

import (
	"testing"
	"time"

	"github.com/yuqie6/topichub/internal/model"
)

func TestRecencyAssignNonZero(t *testing.T) {
	s := NewRecencyService(0)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	mark := s.Assign()
	if mark != base.Unix() {
		t.Fatalf("Assign() = %d, want %d", mark, base.Unix())
	}
	if mark == 0 {
		t.Fatalf("mark must be non-zero right after creation")
	}
}

func TestRecencyRefreshOnFreshTopic(t *testing.T) {
	s := NewRecencyService(0)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	topic := &model.Topic{
		CreatedAt:      base.Add(-24 * time.Hour),
		LastActiveMark: 12345,
	}
	if !s.RefreshOnReply(topic) {
		t.Fatalf("fresh topic should refresh its mark")
	}
	if topic.LastActiveMark != base.Unix() {
		t.Fatalf("mark=%d, want %d", topic.LastActiveMark, base.Unix())
	}
}

func TestRecencyRefreshSkipsStaleTopic(t *testing.T) {
	s := NewRecencyService(0)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	// 创建已超过默认一个月窗口的老话题，标记不应被回复顶起
	topic := &model.Topic{
		CreatedAt:      base.Add(-31 * 24 * time.Hour),
		LastActiveMark: 12345,
	}
	if s.RefreshOnReply(topic) {
		t.Fatalf("stale topic should not refresh its mark")
	}
	if topic.LastActiveMark != 12345 {
		t.Fatalf("mark=%d, want untouched 12345", topic.LastActiveMark)
	}
}

func TestRecencyCustomWindow(t *testing.T) {
	s := NewRecencyService(time.Hour)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	topic := &model.Topic{CreatedAt: base.Add(-2 * time.Hour), LastActiveMark: 1}
	if s.RefreshOnReply(topic) {
		t.Fatalf("topic outside custom window should not refresh")
	}
}

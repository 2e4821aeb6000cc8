package service

import (
	"time"

	"github.com/yuqie6/topichub/internal/model"
)

// DefaultFreshWindow 活跃标记的新鲜窗口：话题创建超过该时长后，
// 新回复不再拉升其排序位置
const DefaultFreshWindow = 30 * 24 * time.Hour

// RecencyService 维护话题的活跃标记（列表排序键）。
// 标记在创建时赋值一次，之后只在新鲜话题收到回复时重算，
// 既保证零回复的新话题有稳定非空排序键，又不让老帖被一条回复顶起
type RecencyService struct {
	freshWindow time.Duration
	now         func() time.Time
}

// NewRecencyService 创建活跃标记服务；freshWindow <= 0 时取默认一个月
func NewRecencyService(freshWindow time.Duration) *RecencyService {
	if freshWindow <= 0 {
		freshWindow = DefaultFreshWindow
	}
	return &RecencyService{
		freshWindow: freshWindow,
		now:         time.Now,
	}
}

// Assign 话题创建时调用一次，返回非空标记
func (s *RecencyService) Assign() int64 {
	return s.now().Unix()
}

// RefreshOnReply 回复被关联时调用；只有创建时间在新鲜窗口内的话题才重算标记。
// 返回标记是否被刷新
func (s *RecencyService) RefreshOnReply(topic *model.Topic) bool {
	if s.now().Sub(topic.CreatedAt) >= s.freshWindow {
		return false
	}
	topic.LastActiveMark = s.now().Unix()
	return true
}

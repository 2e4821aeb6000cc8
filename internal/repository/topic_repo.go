package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yuqie6/topichub/internal/model"
	"gorm.io/gorm"
)

// TopicRepository 话题仓储
type TopicRepository struct {
	db *gorm.DB
}

// NewTopicRepository 创建话题仓储
func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// Create 写入新话题
func (r *TopicRepository) Create(ctx context.Context, topic *model.Topic) error {
	if err := r.db.WithContext(ctx).Create(topic).Error; err != nil {
		return fmt.Errorf("写入话题失败: %w", err)
	}
	return nil
}

// GetByID 按 ID 查询话题；未找到返回 nil
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).First(&topic, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询话题失败: %w", err)
	}
	return &topic, nil
}

// Save 普通保存：与库内现有行做列级对比，只更新真正变化的列，
// 并返回变化列集合（供保存后的索引脏位判断）。无变化时不发 UPDATE。
// 活跃标记与最后回复冗余组不在对比范围内——它们只通过 UpdateColumns
// 的专用写路径更新，普通保存对任意属性的编辑都不会波及排序键。
func (r *TopicRepository) Save(ctx context.Context, topic *model.Topic) ([]string, error) {
	var current model.Topic
	if err := r.db.WithContext(ctx).First(&current, topic.ID).Error; err != nil {
		return nil, fmt.Errorf("读取话题现状失败: %w", err)
	}

	columns := map[string]any{}
	if topic.Title != current.Title {
		columns["title"] = topic.Title
	}
	if topic.Body != current.Body {
		columns["body"] = topic.Body
	}
	if topic.NodeID != current.NodeID {
		columns["node_id"] = topic.NodeID
	}
	if topic.Excellent != current.Excellent {
		columns["excellent"] = topic.Excellent
	}
	if topic.Banned != current.Banned {
		columns["banned"] = topic.Banned
	}
	if !timePtrEqual(topic.ClosedAt, current.ClosedAt) {
		columns["closed_at"] = topic.ClosedAt
	}
	if !timePtrEqual(topic.SuggestedAt, current.SuggestedAt) {
		columns["suggested_at"] = topic.SuggestedAt
	}
	if !strPtrEqual(topic.WhoDeleted, current.WhoDeleted) {
		columns["who_deleted"] = topic.WhoDeleted
	}
	if !timePtrEqual(topic.DeletedAt, current.DeletedAt) {
		columns["deleted_at"] = topic.DeletedAt
	}

	if len(columns) == 0 {
		return nil, nil
	}

	changed := make([]string, 0, len(columns))
	for c := range columns {
		changed = append(changed, c)
	}
	sort.Strings(changed)

	err := r.db.WithContext(ctx).Model(&model.Topic{}).
		Where("id = ?", topic.ID).
		Updates(columns).Error
	if err != nil {
		return nil, fmt.Errorf("保存话题失败: %w", err)
	}
	return changed, nil
}

// UpdateColumns 按给定列集合做单条 UPDATE。
// 最后回复冗余组等必须整组原子落库的写路径走这里
func (r *TopicRepository) UpdateColumns(ctx context.Context, id int64, columns map[string]any) error {
	if len(columns) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.Topic{}).
		Where("id = ?", id).
		Updates(columns).Error
	if err != nil {
		return fmt.Errorf("更新话题列失败: %w", err)
	}
	return nil
}

// Count 统计话题总数
func (r *TopicRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Topic{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("统计话题失败: %w", err)
	}
	return count, nil
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

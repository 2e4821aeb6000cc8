package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/topichub/internal/model"
	"gorm.io/gorm"
)

// ReplyRepository 回复仓储
type ReplyRepository struct {
	db *gorm.DB
}

// NewReplyRepository 创建回复仓储
func NewReplyRepository(db *gorm.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

// Create 写入回复
func (r *ReplyRepository) Create(ctx context.Context, reply *model.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return fmt.Errorf("写入回复失败: %w", err)
	}
	return nil
}

// GetByID 按 ID 查询回复；未找到返回 nil
func (r *ReplyRepository) GetByID(ctx context.Context, id int64) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.WithContext(ctx).First(&reply, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询回复失败: %w", err)
	}
	return &reply, nil
}

// Delete 删除回复
func (r *ReplyRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&model.Reply{}, id).Error; err != nil {
		return fmt.Errorf("删除回复失败: %w", err)
	}
	return nil
}

// PreviousOf 同话题内紧邻给定回复之前的一条（不区分动作标记）。
// 主键序即时间序，直接按 id 回溯；没有更早的回复时返回 nil
func (r *ReplyRepository) PreviousOf(ctx context.Context, topicID, replyID int64) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.WithContext(ctx).
		Where("topic_id = ? AND id < ?", topicID, replyID).
		Order("id DESC").
		First(&reply).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询上一条回复失败: %w", err)
	}
	return &reply, nil
}

// FloorOf 回复在话题内按时间顺序的楼层，从 1 开始；纯读不产生任何变更
func (r *ReplyRepository) FloorOf(ctx context.Context, reply *model.Reply) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reply{}).
		Where("topic_id = ? AND id < ?", reply.TopicID, reply.ID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计楼层失败: %w", err)
	}
	return int(count) + 1, nil
}

// CountByAction 统计话题下指定动作标记的回复数，审计断言使用
func (r *ReplyRepository) CountByAction(ctx context.Context, topicID int64, action string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reply{}).
		Where("topic_id = ? AND action = ?", topicID, action).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计审计回复失败: %w", err)
	}
	return count, nil
}

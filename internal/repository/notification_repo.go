package repository

import (
	"context"
	"fmt"

	"github.com/yuqie6/topichub/internal/model"
	"gorm.io/gorm"
)

// NotificationRepository 站内通知仓储
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 写入一条未读通知
func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("写入通知失败: %w", err)
	}
	return nil
}

// CountUnread 统计某用户的未读通知数
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("统计未读通知失败: %w", err)
	}
	return count, nil
}

// GetByUser 查询某用户最近的通知
func (r *NotificationRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	var list []model.Notification
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询通知失败: %w", err)
	}
	return list, nil
}

// MarkRead 标记单条通知为已读
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("标记通知已读失败: %w", err)
	}
	return nil
}

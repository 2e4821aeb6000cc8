package service

import (
	"context"
	"fmt"

	"github.com/yuqie6/topichub/internal/eventbus"
	"github.com/yuqie6/topichub/internal/model"
)

// NotificationService 通知出口的默认实现：落库一条未读通知，
// 并向事件总线广播，真正的投递（邮件/推送）由订阅方完成
type NotificationService struct {
	repo NotificationRepository
	hub  *eventbus.Hub
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo NotificationRepository, hub *eventbus.Hub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

// Notify 落库并广播一条通知
func (s *NotificationService) Notify(ctx context.Context, n *model.Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("写入通知失败: %w", err)
	}
	if s.hub != nil {
		s.hub.Publish(eventbus.Event{
			Type: eventbus.EventNotificationCreated,
			Data: map[string]any{
				"notification_id": n.ID,
				"user_id":         n.UserID,
				"kind":            n.Kind,
			},
		})
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuqie6/topichub/internal/model"
	"github.com/yuqie6/topichub/internal/pkg/idgen"
)

// ModerationService 话题管理状态机：关闭/开启、封禁、加精/取消加精、置顶。
// 关闭、加精、封禁是相互独立的状态轴。动作者由调用方显式传入，
// 核心不持有任何隐式的"当前用户"
type ModerationService struct {
	topicRepo TopicRepository
	replyRepo ReplyRepository
	notifier  Notifier
	now       func() time.Time
}

// NewModerationService 创建管理服务
func NewModerationService(topicRepo TopicRepository, replyRepo ReplyRepository, notifier Notifier) *ModerationService {
	return &ModerationService{
		topicRepo: topicRepo,
		replyRepo: replyRepo,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Close 关闭话题；已关闭时为幂等空操作
func (s *ModerationService) Close(ctx context.Context, topic *model.Topic) error {
	if topic.Closed() {
		return nil
	}
	now := s.now()
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"closed_at": now}); err != nil {
		return fmt.Errorf("关闭话题失败: %w", err)
	}
	topic.ClosedAt = &now
	return nil
}

// Open 重新开启话题；未关闭时为幂等空操作
func (s *ModerationService) Open(ctx context.Context, topic *model.Topic) error {
	if !topic.Closed() {
		return nil
	}
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"closed_at": nil}); err != nil {
		return fmt.Errorf("开启话题失败: %w", err)
	}
	topic.ClosedAt = nil
	return nil
}

// Ban 封禁话题；给出理由时追加一条 action=ban 的审计回复，理由为空则只改状态
func (s *ModerationService) Ban(ctx context.Context, topic *model.Topic, actor *model.User, reason string) error {
	if actor == nil {
		return ErrActorRequired
	}
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"banned": true}); err != nil {
		return fmt.Errorf("封禁话题失败: %w", err)
	}
	topic.Banned = true
	if reason != "" {
		if err := s.appendAuditReply(ctx, topic, actor, model.ReplyActionBan, reason); err != nil {
			return err
		}
	}
	slog.Info("话题已封禁", "topic_id", topic.ID, "actor", actor.Login)
	return nil
}

// Excellent 加精，并追加一条 action=excellent 的审计回复
func (s *ModerationService) Excellent(ctx context.Context, topic *model.Topic, actor *model.User) error {
	if actor == nil {
		return ErrActorRequired
	}
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"excellent": true}); err != nil {
		return fmt.Errorf("加精话题失败: %w", err)
	}
	topic.Excellent = true
	return s.appendAuditReply(ctx, topic, actor, model.ReplyActionExcellent, "")
}

// Unexcellent 取消加精，并追加一条 action=unexcellent 的审计回复
func (s *ModerationService) Unexcellent(ctx context.Context, topic *model.Topic, actor *model.User) error {
	if actor == nil {
		return ErrActorRequired
	}
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"excellent": false}); err != nil {
		return fmt.Errorf("取消加精失败: %w", err)
	}
	topic.Excellent = false
	return s.appendAuditReply(ctx, topic, actor, model.ReplyActionUnexcellent, "")
}

// Suggest 置顶（写入推荐时间）
func (s *ModerationService) Suggest(ctx context.Context, topic *model.Topic) error {
	now := s.now()
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"suggested_at": now}); err != nil {
		return fmt.Errorf("置顶话题失败: %w", err)
	}
	topic.SuggestedAt = &now
	return nil
}

// Unsuggest 取消置顶
func (s *ModerationService) Unsuggest(ctx context.Context, topic *model.Topic) error {
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"suggested_at": nil}); err != nil {
		return fmt.Errorf("取消置顶失败: %w", err)
	}
	topic.SuggestedAt = nil
	return nil
}

// ChangeNode 修改话题所属节点。admin 为 true 表示后台编辑路径：
// 节点真正变化时向作者发且只发一次 node_changed 通知；
// 普通编辑或节点未变化时永不通知
func (s *ModerationService) ChangeNode(ctx context.Context, topic *model.Topic, newNodeID int64, admin bool) error {
	if topic.NodeID == newNodeID {
		return nil
	}
	old := topic.NodeID
	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{"node_id": newNodeID}); err != nil {
		return fmt.Errorf("修改话题节点失败: %w", err)
	}
	topic.NodeID = newNodeID

	if admin {
		n := &model.Notification{
			UserID:           topic.UserID,
			Kind:             model.NotifyKindNodeChanged,
			TargetType:       model.TargetTypeTopic,
			TargetID:         topic.ID,
			SecondTargetType: model.TargetTypeNode,
			SecondTargetID:   newNodeID,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			return fmt.Errorf("发送节点变更通知失败: %w", err)
		}
		slog.Info("话题节点已调整", "topic_id", topic.ID, "from", old, "to", newNodeID)
	}
	return nil
}

// appendAuditReply 以带动作标记的回复形式追加一条审计记录
func (s *ModerationService) appendAuditReply(ctx context.Context, topic *model.Topic, actor *model.User, action, body string) error {
	reply := &model.Reply{
		ID:        idgen.Next(),
		TopicID:   topic.ID,
		UserID:    actor.ID,
		UserLogin: actor.Login,
		Body:      body,
		Action:    action,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return fmt.Errorf("写入审计回复失败: %w", err)
	}
	return nil
}

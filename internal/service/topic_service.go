package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuqie6/topichub/internal/eventbus"
	"github.com/yuqie6/topichub/internal/model"
	"github.com/yuqie6/topichub/internal/pkg/idgen"
)

// ErrActorRequired 需要明确操作者的动作缺少操作者
var ErrActorRequired = errors.New("缺少操作者，操作被拒绝")

// TopicService 话题生命周期编排：
// 创建（整形 → 敏感词 → 准入 → 活跃标记 → 落库 → 通知关注者）、
// 普通保存（索引脏位）、回复联动、软删除
type TopicService struct {
	topicRepo TopicRepository
	replyRepo ReplyRepository
	userRepo  UserRepository
	filter    *ContentFilter
	admission *AdmissionService
	recency   *RecencyService
	linkage   *LinkageService
	index     *IndexService
	notifier  Notifier
	hub       *eventbus.Hub
	now       func() time.Time
}

// NewTopicService 创建话题服务
func NewTopicService(
	topicRepo TopicRepository,
	replyRepo ReplyRepository,
	userRepo UserRepository,
	filter *ContentFilter,
	admission *AdmissionService,
	recency *RecencyService,
	linkage *LinkageService,
	index *IndexService,
	notifier Notifier,
	hub *eventbus.Hub,
) *TopicService {
	return &TopicService{
		topicRepo: topicRepo,
		replyRepo: replyRepo,
		userRepo:  userRepo,
		filter:    filter,
		admission: admission,
		recency:   recency,
		linkage:   linkage,
		index:     index,
		notifier:  notifier,
		hub:       hub,
		now:       time.Now,
	}
}

// Create 创建话题。任一校验失败返回 *ValidationError，
// 整个变更被拒绝：不落库、不动计数（分钟轴拒绝时）、不发通知
func (s *TopicService) Create(ctx context.Context, author *model.User, topic *model.Topic) error {
	if author == nil {
		return ErrActorRequired
	}

	topic.Title = s.filter.NormalizeSpacing(topic.Title)

	if violations := s.filter.Validate(topic.Body); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	violations, err := s.admission.Admit(ctx, author.ID)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	if topic.ID == 0 {
		topic.ID = idgen.Next()
	}
	topic.UserID = author.ID
	topic.LastActiveMark = s.recency.Assign()

	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return fmt.Errorf("创建话题失败: %w", err)
	}

	if err := s.notifyFollowers(ctx, author, topic); err != nil {
		// 话题本身已落库，通知失败不回滚，记日志待补偿
		slog.Error("话题创建通知发送失败", "topic_id", topic.ID, "error", err)
	}
	if s.hub != nil {
		s.hub.Publish(eventbus.Event{
			Type: eventbus.EventTopicCreated,
			Data: map[string]any{"topic_id": topic.ID, "user_id": author.ID},
		})
	}

	slog.Info("话题已创建", "topic_id", topic.ID, "user", author.Login)
	return nil
}

// notifyFollowers 向作者的每个关注者投一条未读通知
func (s *TopicService) notifyFollowers(ctx context.Context, author *model.User, topic *model.Topic) error {
	followers, err := s.userRepo.FollowerIDs(ctx, author.ID)
	if err != nil {
		return fmt.Errorf("查询关注者失败: %w", err)
	}
	for _, fid := range followers {
		n := &model.Notification{
			UserID:     fid,
			Kind:       model.NotifyKindTopic,
			TargetType: model.TargetTypeTopic,
			TargetID:   topic.ID,
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// Update 普通保存：标题整形、敏感词复查，保存后判断索引脏位。
// 活跃标记与最后回复冗余组不受普通保存影响
func (s *TopicService) Update(ctx context.Context, topic *model.Topic) error {
	topic.Title = s.filter.NormalizeSpacing(topic.Title)

	if violations := s.filter.Validate(topic.Body); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	changed, err := s.topicRepo.Save(ctx, topic)
	if err != nil {
		return fmt.Errorf("保存话题失败: %w", err)
	}
	s.index.AfterSave(topic.ID, changed)
	return nil
}

// Destroy 软删除话题：必须提供明确的操作者，记录删除人与时间
func (s *TopicService) Destroy(ctx context.Context, topic *model.Topic, actor *model.User) error {
	if actor == nil {
		return ErrActorRequired
	}
	now := s.now()
	login := actor.Login
	err := s.topicRepo.UpdateColumns(ctx, topic.ID, map[string]any{
		"who_deleted": login,
		"deleted_at":  now,
	})
	if err != nil {
		return fmt.Errorf("删除话题失败: %w", err)
	}
	topic.WhoDeleted = &login
	topic.DeletedAt = &now
	slog.Info("话题已删除", "topic_id", topic.ID, "who", login)
	return nil
}

// CreateReply 创建回复并联动话题冗余字段
func (s *TopicService) CreateReply(ctx context.Context, author *model.User, topic *model.Topic, body string) (*model.Reply, error) {
	if author == nil {
		return nil, ErrActorRequired
	}
	reply := &model.Reply{
		ID:        idgen.Next(),
		TopicID:   topic.ID,
		UserID:    author.ID,
		UserLogin: author.Login,
		Body:      body,
	}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("创建回复失败: %w", err)
	}
	if _, err := s.linkage.UpdateLastReply(ctx, topic, reply, false); err != nil {
		return nil, err
	}
	return reply, nil
}

// DestroyReply 删除回复；若删掉的是当前最后一条回复则回退冗余字段
func (s *TopicService) DestroyReply(ctx context.Context, topic *model.Topic, reply *model.Reply) error {
	if err := s.replyRepo.Delete(ctx, reply.ID); err != nil {
		return fmt.Errorf("删除回复失败: %w", err)
	}
	if _, err := s.linkage.UpdateDeletedLastReply(ctx, topic, reply); err != nil {
		return err
	}
	return nil
}

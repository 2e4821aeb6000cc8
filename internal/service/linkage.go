package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yuqie6/topichub/internal/model"
)

// LinkageService 维护话题上"最后回复"四个冗余字段。
// 四个字段作为一个整体：要么同时写入，要么同时清空，
// 并且通过单条 UPDATE 落库，读侧不会看到撕裂的中间态
type LinkageService struct {
	topicRepo TopicRepository
	replyRepo ReplyRepository
	recency   *RecencyService
	now       func() time.Time
}

// NewLinkageService 创建冗余字段维护服务
func NewLinkageService(topicRepo TopicRepository, replyRepo ReplyRepository, recency *RecencyService) *LinkageService {
	return &LinkageService{
		topicRepo: topicRepo,
		replyRepo: replyRepo,
		recency:   recency,
		now:       time.Now,
	}
}

// UpdateLastReply 用给定回复刷新冗余组。
// reply 为 nil 且 force 为 false 时是空操作；nil 且 force 为 true 时整组清空
// （活跃标记不动）。返回是否发生了变更
func (s *LinkageService) UpdateLastReply(ctx context.Context, topic *model.Topic, reply *model.Reply, force bool) (bool, error) {
	if reply == nil && !force {
		return false, nil
	}

	now := s.now()
	columns := map[string]any{"updated_at": now}

	if reply == nil {
		topic.RepliedAt = nil
		topic.LastReplyID = nil
		topic.LastReplyUserID = nil
		topic.LastReplyUserLogin = nil
		columns["replied_at"] = nil
		columns["last_reply_id"] = nil
		columns["last_reply_user_id"] = nil
		columns["last_reply_user_login"] = nil
	} else {
		repliedAt := reply.CreatedAt
		login := reply.UserLogin
		topic.RepliedAt = &repliedAt
		topic.LastReplyID = &reply.ID
		topic.LastReplyUserID = &reply.UserID
		topic.LastReplyUserLogin = &login
		columns["replied_at"] = reply.CreatedAt
		columns["last_reply_id"] = reply.ID
		columns["last_reply_user_id"] = reply.UserID
		columns["last_reply_user_login"] = reply.UserLogin
		// 只有新鲜话题的标记才随回复刷新
		if s.recency.RefreshOnReply(topic) {
			columns["last_active_mark"] = topic.LastActiveMark
		}
	}
	topic.UpdatedAt = now

	if err := s.topicRepo.UpdateColumns(ctx, topic.ID, columns); err != nil {
		return false, fmt.Errorf("更新最后回复冗余字段失败: %w", err)
	}
	return true, nil
}

// UpdateDeletedLastReply 回复被删除后的回退。
// 只有删掉的恰好是当前挂在话题上的最后一条回复才需要重算：
// 回退到更早的一条，找不到则整组清空。返回是否发生了重算
func (s *LinkageService) UpdateDeletedLastReply(ctx context.Context, topic *model.Topic, removed *model.Reply) (bool, error) {
	if removed == nil {
		return false, nil
	}
	if topic.LastReplyID == nil || *topic.LastReplyID != removed.ID {
		return false, nil
	}

	prev, err := s.replyRepo.PreviousOf(ctx, topic.ID, removed.ID)
	if err != nil {
		return false, fmt.Errorf("查找上一条回复失败: %w", err)
	}
	if prev == nil {
		slog.Debug("最后回复被删且无更早回复，清空冗余字段", "topic_id", topic.ID)
	}
	return s.UpdateLastReply(ctx, topic, prev, true)
}

// FloorOfReply 回复在话题内的楼层（从 1 开始），纯读
func (s *LinkageService) FloorOfReply(ctx context.Context, reply *model.Reply) (int, error) {
	return s.replyRepo.FloorOf(ctx, reply)
}

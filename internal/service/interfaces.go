package service

import (
	"context"

	"github.com/yuqie6/topichub/internal/model"
)

// 仓储/外部依赖的最小接口集合（ISP）

type TopicRepository interface {
	Create(ctx context.Context, topic *model.Topic) error
	GetByID(ctx context.Context, id int64) (*model.Topic, error)
	Save(ctx context.Context, topic *model.Topic) ([]string, error)
	UpdateColumns(ctx context.Context, id int64, columns map[string]any) error
}

type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	Delete(ctx context.Context, id int64) error
	PreviousOf(ctx context.Context, topicID, replyID int64) (*model.Reply, error)
	FloorOf(ctx context.Context, reply *model.Reply) (int, error)
}

type UserRepository interface {
	FollowerIDs(ctx context.Context, userID int64) ([]int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
}

// Notifier 通知出口。核心只决定何时通知、带什么载荷，投递由实现方负责
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}

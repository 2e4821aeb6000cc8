package repository

import (
	"context"
	"testing"

	"github.com/yuqie6/topichub/internal/model"
	"github.com/yuqie6/topichub/internal/testutil"
)

func TestNotificationUnreadLifecycle(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	n1 := &model.Notification{UserID: 7, Kind: model.NotifyKindTopic, TargetType: model.TargetTypeTopic, TargetID: 100}
	n2 := &model.Notification{UserID: 7, Kind: model.NotifyKindNodeChanged, TargetType: model.TargetTypeTopic, TargetID: 100, SecondTargetType: model.TargetTypeNode, SecondTargetID: 3}
	for _, n := range []*model.Notification{n1, n2} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	// 别人的通知不计入
	if err := repo.Create(ctx, &model.Notification{UserID: 8, Kind: model.NotifyKindTopic}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if n, _ := repo.CountUnread(ctx, 7); n != 2 {
		t.Fatalf("unread=%d, want 2", n)
	}

	if err := repo.MarkRead(ctx, n1.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if n, _ := repo.CountUnread(ctx, 7); n != 1 {
		t.Fatalf("unread=%d, want 1 after mark", n)
	}

	list, err := repo.GetByUser(ctx, 7, 1)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if len(list) != 1 || list[0].ID != n2.ID {
		t.Fatalf("latest notification should come first, got %+v", list)
	}
}

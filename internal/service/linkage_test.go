package service

import (
	"context"
	"testing"
	"time"

	"github.com/yuqie6/topichub/internal/repository"
	"github.com/yuqie6/topichub/internal/testutil"
	"gorm.io/gorm"
)

func newLinkageService(db *gorm.DB) (*LinkageService, *repository.TopicRepository) {
	topicRepo := repository.NewTopicRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	recency := NewRecencyService(0)
	// 把"现在"拨快一小时，保证刷新后的标记和创建时的标记可区分
	recency.now = func() time.Time { return time.Now().Add(time.Hour) }
	return NewLinkageService(topicRepo, replyRepo, recency), topicRepo
}

func TestUpdateLastReplyLinks(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc, topicRepo := newLinkageService(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author")
	replier := newTestUser(t, db, "replier")
	topic := newTestTopic(t, db, author, "标题")
	markAtCreate := topic.LastActiveMark
	reply := newTestReply(t, db, topic, replier, "回复内容")

	changed, err := svc.UpdateLastReply(ctx, topic, reply, false)
	if err != nil || !changed {
		t.Fatalf("UpdateLastReply: changed=%v err=%v", changed, err)
	}

	got, err := topicRepo.GetByID(ctx, topic.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LastReplyID == nil || *got.LastReplyID != reply.ID {
		t.Fatalf("last_reply_id not linked")
	}
	if got.LastReplyUserID == nil || *got.LastReplyUserID != replier.ID {
		t.Fatalf("last_reply_user_id not linked")
	}
	if got.LastReplyUserLogin == nil || *got.LastReplyUserLogin != "replier" {
		t.Fatalf("last_reply_user_login not linked")
	}
	if got.RepliedAt == nil || got.RepliedAt.Unix() != reply.CreatedAt.Unix() {
		t.Fatalf("replied_at not linked")
	}
	// 新鲜话题收到回复，活跃标记被刷新
	if got.LastActiveMark == markAtCreate {
		t.Fatalf("mark should have been refreshed by the reply")
	}
}

func TestUpdateLastReplyNilNoForce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc, topicRepo := newLinkageService(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author")
	replier := newTestUser(t, db, "replier")
	topic := newTestTopic(t, db, author, "标题")
	reply := newTestReply(t, db, topic, replier, "回复")
	if _, err := svc.UpdateLastReply(ctx, topic, reply, false); err != nil {
		t.Fatalf("link: %v", err)
	}

	changed, err := svc.UpdateLastReply(ctx, topic, nil, false)
	if err != nil {
		t.Fatalf("UpdateLastReply(nil, false): %v", err)
	}
	if changed {
		t.Fatalf("nil without force must be a no-op")
	}

	got, _ := topicRepo.GetByID(ctx, topic.ID)
	if got.LastReplyID == nil {
		t.Fatalf("linkage should be untouched by the no-op")
	}
}

func TestUpdateLastReplyForceClear(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc, topicRepo := newLinkageService(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author")
	replier := newTestUser(t, db, "replier")
	topic := newTestTopic(t, db, author, "标题")
	reply := newTestReply(t, db, topic, replier, "回复")
	if _, err := svc.UpdateLastReply(ctx, topic, reply, false); err != nil {
		t.Fatalf("link: %v", err)
	}
	linked, _ := topicRepo.GetByID(ctx, topic.ID)
	markAfterLink := linked.LastActiveMark

	changed, err := svc.UpdateLastReply(ctx, topic, nil, true)
	if err != nil || !changed {
		t.Fatalf("force clear: changed=%v err=%v", changed, err)
	}

	got, _ := topicRepo.GetByID(ctx, topic.ID)
	if got.RepliedAt != nil || got.LastReplyID != nil || got.LastReplyUserID != nil || got.LastReplyUserLogin != nil {
		t.Fatalf("all four linkage fields should be cleared together")
	}
	// 清空不触碰活跃标记
	if got.LastActiveMark != markAfterLink {
		t.Fatalf("mark=%d, want untouched %d", got.LastActiveMark, markAfterLink)
	}
}

func TestUpdateDeletedLastReplyGuards(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc, topicRepo := newLinkageService(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author")
	replier := newTestUser(t, db, "replier")
	topic := newTestTopic(t, db, author, "标题")
	first := newTestReply(t, db, topic, replier, "一楼")
	second := newTestReply(t, db, topic, replier, "二楼")
	if _, err := svc.UpdateLastReply(ctx, topic, second, false); err != nil {
		t.Fatalf("link: %v", err)
	}

	// nil 入参是定义好的空操作
	if changed, err := svc.UpdateDeletedLastReply(ctx, topic, nil); err != nil || changed {
		t.Fatalf("nil removed reply: changed=%v err=%v, want false/nil", changed, err)
	}

	// 删掉的不是当前最后一条，无需重算
	changed, err := svc.UpdateDeletedLastReply(ctx, topic, first)
	if err != nil {
		t.Fatalf("UpdateDeletedLastReply: %v", err)
	}
	if changed {
		t.Fatalf("removing a non-last reply must not recompute linkage")
	}
	got, _ := topicRepo.GetByID(ctx, topic.ID)
	if got.LastReplyID == nil || *got.LastReplyID != second.ID {
		t.Fatalf("linkage should still point to the last reply")
	}
}

func TestUpdateDeletedLastReplyRelinksToPrevious(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc, topicRepo := newLinkageService(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author")
	replier := newTestUser(t, db, "replier")
	topic := newTestTopic(t, db, author, "标题")
	first := newTestReply(t, db, topic, replier, "一楼")
	second := newTestReply(t, db, topic, replier, "二楼")
	if _, err := svc.UpdateLastReply(ctx, topic, second, false); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := db.Delete(second).Error; err != nil {
		t.Fatalf("delete reply: %v", err)
	}

	changed, err := svc.UpdateDeletedLastReply(ctx, topic, second)
	if err != nil || !changed {
		t.Fatalf("relink: changed=%v err=%v", changed, err)
	}

	got, _ := topicRepo.GetByID(ctx, topic.ID)
	if got.LastReplyID == nil || *got.LastReplyID != first.ID {
		t.Fatalf("linkage should fall back to the previous reply")
	}
	if got.RepliedAt == nil || got.RepliedAt.Unix() != first.CreatedAt.Unix() {
		t.Fatalf("replied_at should match the previous reply")
	}
}

func TestUpdateDeletedLastReplyClearsWhenNoEarlier(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc, topicRepo := newLinkageService(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author")
	replier := newTestUser(t, db, "replier")
	topic := newTestTopic(t, db, author, "标题")
	only := newTestReply(t, db, topic, replier, "唯一一条")
	if _, err := svc.UpdateLastReply(ctx, topic, only, false); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := db.Delete(only).Error; err != nil {
		t.Fatalf("delete reply: %v", err)
	}

	changed, err := svc.UpdateDeletedLastReply(ctx, topic, only)
	if err != nil || !changed {
		t.Fatalf("clear: changed=%v err=%v", changed, err)
	}

	got, _ := topicRepo.GetByID(ctx, topic.ID)
	if got.RepliedAt != nil || got.LastReplyID != nil || got.LastReplyUserID != nil || got.LastReplyUserLogin != nil {
		t.Fatalf("linkage group should be fully cleared when no earlier reply exists")
	}
}

func TestFloorOfReply(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc, _ := newLinkageService(db)
	ctx := context.Background()

	author := newTestUser(t, db, "author")
	replier := newTestUser(t, db, "replier")
	topic := newTestTopic(t, db, author, "标题")
	other := newTestTopic(t, db, author, "另一个话题")
	// 其他话题的回复不参与楼层计算
	newTestReply(t, db, other, replier, "别处的回复")

	replies := []string{"一楼", "二楼", "三楼", "四楼"}
	for i, body := range replies {
		r := newTestReply(t, db, topic, replier, body)
		floor, err := svc.FloorOfReply(ctx, r)
		if err != nil {
			t.Fatalf("FloorOfReply: %v", err)
		}
		if floor != i+1 {
			t.Fatalf("floor=%d, want %d", floor, i+1)
		}
	}
}

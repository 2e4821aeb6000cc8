package service

import (
	"context"
	"testing"
	"time"

	"github.com/yuqie6/topichub/internal/model"
	"github.com/yuqie6/topichub/internal/pkg/idgen"
	"gorm.io/gorm"
)

// recordingNotifier 把通知记在内存里，供断言
type recordingNotifier struct {
	sent []*model.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, m *model.Notification) error {
	n.sent = append(n.sent, m)
	return nil
}

func newTestUser(t *testing.T, db *gorm.DB, login string) *model.User {
	t.Helper()
	u := &model.User{ID: idgen.Next(), Login: login, Name: login}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func newTestNode(t *testing.T, db *gorm.DB, name string) *model.Node {
	t.Helper()
	n := &model.Node{ID: idgen.Next(), Name: name}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("create node: %v", err)
	}
	return n
}

func newTestTopic(t *testing.T, db *gorm.DB, author *model.User, title string) *model.Topic {
	t.Helper()
	topic := &model.Topic{
		ID:             idgen.Next(),
		Title:          title,
		Body:           "正文",
		UserID:         author.ID,
		LastActiveMark: time.Now().Unix(),
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	return topic
}

func newTestReply(t *testing.T, db *gorm.DB, topic *model.Topic, author *model.User, body string) *model.Reply {
	t.Helper()
	reply := &model.Reply{
		ID:        idgen.Next(),
		TopicID:   topic.ID,
		UserID:    author.ID,
		UserLogin: author.Login,
		Body:      body,
	}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("create reply: %v", err)
	}
	return reply
}

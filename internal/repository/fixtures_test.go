package repository

import (
	"testing"
	"time"

	"github.com/yuqie6/topichub/internal/model"
	"github.com/yuqie6/topichub/internal/pkg/idgen"
	"gorm.io/gorm"
)

func seedTopic(t *testing.T, db *gorm.DB, title string) *model.Topic {
	t.Helper()
	topic := &model.Topic{
		ID:             idgen.Next(),
		Title:          title,
		Body:           "正文",
		UserID:         idgen.Next(),
		LastActiveMark: time.Now().Unix(),
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("seed topic: %v", err)
	}
	return topic
}

func seedReply(t *testing.T, db *gorm.DB, topicID int64, body, action string) *model.Reply {
	t.Helper()
	reply := &model.Reply{
		ID:        idgen.Next(),
		TopicID:   topicID,
		UserID:    1,
		UserLogin: "replier",
		Body:      body,
		Action:    action,
	}
	if err := db.Create(reply).Error; err != nil {
		t.Fatalf("seed reply: %v", err)
	}
	return reply
}

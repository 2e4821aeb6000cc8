package model

import "time"

// 通知类型
const (
	NotifyKindTopic       = "topic"        // 关注的人发了新话题
	NotifyKindNodeChanged = "node_changed" // 话题被管理员调整了节点
)

// 通知目标类型
const (
	TargetTypeTopic = "Topic"
	TargetTypeNode  = "Node"
)

// Notification 站内通知。核心只负责决定何时落一条通知，
// 真正的投递（邮件/推送）由订阅事件总线的外部组件完成
type Notification struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64  `gorm:"index;not null" json:"user_id"` // 接收者
	Kind   string `gorm:"size:50;not null" json:"kind"`

	TargetType       string `gorm:"size:50" json:"target_type"`
	TargetID         int64  `json:"target_id"`
	SecondTargetType string `gorm:"size:50" json:"second_target_type"`
	SecondTargetID   int64  `json:"second_target_id"`

	// MySQL 下 read 是保留字，列名用 is_read
	IsRead bool `gorm:"column:is_read;default:false;index" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}

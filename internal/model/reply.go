package model

import "time"

// 回复的动作标记：普通回复为空串，管理动作以带标记的回复形式追加审计记录
const (
	ReplyActionNone        = ""
	ReplyActionBan         = "ban"
	ReplyActionExcellent   = "excellent"
	ReplyActionUnexcellent = "unexcellent"
)

// Reply 回复，同时承担管理动作的审计日志（Action 非空时为系统附言）
// 主键为雪花 ID，主键序即时间序
type Reply struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TopicID   int64  `gorm:"index;not null" json:"topic_id"`
	UserID    int64  `gorm:"index;not null" json:"user_id"`
	UserLogin string `gorm:"size:100" json:"user_login"`
	Body      string `gorm:"type:text" json:"body"`
	Action    string `gorm:"size:20;default:''" json:"action"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Reply) TableName() string {
	return "replies"
}

// IsAudit 是否为管理动作产生的审计回复
func (r *Reply) IsAudit() bool {
	return r.Action != ReplyActionNone
}

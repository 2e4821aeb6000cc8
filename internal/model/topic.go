package model

import "time"

// Topic 话题（讨论主帖），本核心的中心实体
// 数据量级：百万级
type Topic struct {
	// 雪花 ID，显式关闭自增，配合 idgen 手动生成
	ID    int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title string `gorm:"size:255;not null" json:"title"`
	Body  string `gorm:"type:text" json:"body"`

	UserID int64 `gorm:"index;not null" json:"user_id"` // 作者，创建后不可变
	NodeID int64 `gorm:"index" json:"node_id"`          // 所属节点，可被编辑

	// 列表排序用的活跃标记：创建时赋值一次，此后只有新鲜话题收到回复时才刷新，
	// 普通保存永不触碰
	LastActiveMark int64 `gorm:"index;not null" json:"last_active_mark"`

	// 最后回复冗余组：四个字段作为整体一起写入或一起清空，避免撕裂读
	RepliedAt          *time.Time `json:"replied_at"`
	LastReplyID        *int64     `json:"last_reply_id"`
	LastReplyUserID    *int64     `json:"last_reply_user_id"`
	LastReplyUserLogin *string    `gorm:"size:100" json:"last_reply_user_login"`

	// 管理状态：关闭、加精、封禁、置顶，各轴相互独立
	ClosedAt    *time.Time `json:"closed_at"`
	Excellent   bool       `gorm:"default:false" json:"excellent"`
	Banned      bool       `gorm:"default:false" json:"banned"`
	SuggestedAt *time.Time `json:"suggested_at"`

	// 删除审计
	WhoDeleted *string    `gorm:"size:100" json:"who_deleted"`
	DeletedAt  *time.Time `json:"deleted_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Topic) TableName() string {
	return "topics"
}

// Closed 话题是否已关闭
func (t *Topic) Closed() bool {
	return t.ClosedAt != nil
}

// Deleted 话题是否已删除
func (t *Topic) Deleted() bool {
	return t.DeletedAt != nil
}

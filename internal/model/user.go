package model

import "time"

// User 用户。本核心只消费身份与关注关系，账号体系由外部维护
type User struct {
	ID    int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Login string `gorm:"size:100;uniqueIndex" json:"login"`
	Name  string `gorm:"size:100" json:"name"`
	Admin bool   `gorm:"default:false" json:"admin"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// UserFollow 关注关系：follower 关注 user
type UserFollow struct {
	ID         int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64 `gorm:"uniqueIndex:uk_user_follower;not null" json:"user_id"`
	FollowerID int64 `gorm:"uniqueIndex:uk_user_follower;not null" json:"follower_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName 指定表名
func (UserFollow) TableName() string {
	return "user_follows"
}

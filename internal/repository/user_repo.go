package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuqie6/topichub/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户仓储（身份与关注关系只读居多）
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 写入用户
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("写入用户失败: %w", err)
	}
	return nil
}

// GetByID 按 ID 查询用户；未找到返回 nil
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	return &user, nil
}

// Follow 建立关注关系：follower 关注 userID
func (r *UserRepository) Follow(ctx context.Context, userID, followerID int64) error {
	follow := model.UserFollow{UserID: userID, FollowerID: followerID}
	if err := r.db.WithContext(ctx).Create(&follow).Error; err != nil {
		return fmt.Errorf("写入关注关系失败: %w", err)
	}
	return nil
}

// FollowerIDs 查询关注某用户的全部粉丝 ID
func (r *UserRepository) FollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&model.UserFollow{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("查询关注者失败: %w", err)
	}
	return ids, nil
}

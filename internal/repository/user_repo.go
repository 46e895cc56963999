package repository

import (
	"Mythica/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// DisplayProfile 用户展示信息快照
type DisplayProfile struct {
	Name      string
	AvatarURL string
}

type UserRepo interface {
	// LookupDisplayProfile 查询用户展示名与头像，用户不存在返回 (nil, nil)
	LookupDisplayProfile(ctx context.Context, userID uint64) (*DisplayProfile, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) LookupDisplayProfile(ctx context.Context, userID uint64) (*DisplayProfile, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Where("is_delete = 0").
		First(user, userID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	profile := &DisplayProfile{}
	if user.Nickname != nil && *user.Nickname != "" {
		profile.Name = *user.Nickname
	} else if user.Username != nil {
		profile.Name = *user.Username
	}
	if user.AvatarURL != nil {
		profile.AvatarURL = *user.AvatarURL
	}
	return profile, nil
}

package repository

import (
	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(follow *model.Follow) error
	FindByUserAndFollowing(userID, followingID uint) (*model.Follow, error)
	FindFollowedUsers(userID uint) ([]model.User, error)
	Delete(userID, followingID uint) error
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(follow *model.Follow) error {
	logger.Debug("Creating follow in database", map[string]interface{}{
		"user_id":      follow.UserID,
		"following_id": follow.FollowingID,
	})

	if err := r.db.Create(follow).Error; err != nil {
		logger.Error("Failed to create follow in database", err, map[string]interface{}{
			"user_id":      follow.UserID,
			"following_id": follow.FollowingID,
		})
		return err
	}
	return nil
}

func (r *followRepository) FindByUserAndFollowing(userID, followingID uint) (*model.Follow, error) {
	var follow model.Follow
	err := r.db.Where("user_id = ? AND following_id = ?", userID, followingID).
		First(&follow).Error
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

// FindFollowedUsers returns the authors the user subscribed to, ordered by
// username.
func (r *followRepository) FindFollowedUsers(userID uint) ([]model.User, error) {
	var users []model.User
	err := r.db.
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to find followed users in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return users, nil
}

func (r *followRepository) Delete(userID, followingID uint) error {
	logger.Debug("Deleting follow from database", map[string]interface{}{
		"user_id":      userID,
		"following_id": followingID,
	})

	err := r.db.Where("user_id = ? AND following_id = ?", userID, followingID).
		Delete(&model.Follow{}).Error
	if err != nil {
		logger.Error("Failed to delete follow from database", err, map[string]interface{}{
			"user_id":      userID,
			"following_id": followingID,
		})
		return err
	}
	return nil
}

package service

import (
	"errors"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSelfFollow          = errors.New("cannot follow yourself")
	ErrFollowAlreadyExists = errors.New("already following this user")
	ErrFollowNotFound      = errors.New("not following this user")
)

type FollowService interface {
	Follow(userID, followingID uint) error
	Unfollow(userID, followingID uint) error
	GetSubscriptions(userID uint) ([]model.User, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *followService) Follow(userID, followingID uint) error {
	logger.Info("Creating follow", map[string]interface{}{
		"user_id":      userID,
		"following_id": followingID,
	})

	if userID == followingID {
		logger.Warn("Follow rejected: self-follow", map[string]interface{}{
			"user_id": userID,
		})
		return ErrSelfFollow
	}

	if _, err := s.userRepo.FindByID(followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot follow: user not found", map[string]interface{}{
				"following_id": followingID,
			})
			return ErrUserNotFound
		}
		logger.Error("Failed to fetch followed user", err, map[string]interface{}{
			"following_id": followingID,
		})
		return err
	}

	existing, err := s.followRepo.FindByUserAndFollowing(userID, followingID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing follow", err, map[string]interface{}{
			"user_id":      userID,
			"following_id": followingID,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Already following user", map[string]interface{}{
			"user_id":      userID,
			"following_id": followingID,
		})
		return ErrFollowAlreadyExists
	}

	follow := &model.Follow{
		UserID:      userID,
		FollowingID: followingID,
	}
	if err := s.followRepo.Create(follow); err != nil {
		logger.Error("Failed to create follow", err, map[string]interface{}{
			"user_id":      userID,
			"following_id": followingID,
		})
		return err
	}

	logger.Info("Follow created successfully", map[string]interface{}{
		"user_id":      userID,
		"following_id": followingID,
	})
	return nil
}

func (s *followService) Unfollow(userID, followingID uint) error {
	logger.Info("Removing follow", map[string]interface{}{
		"user_id":      userID,
		"following_id": followingID,
	})

	if _, err := s.followRepo.FindByUserAndFollowing(userID, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot unfollow: follow not found", map[string]interface{}{
				"user_id":      userID,
				"following_id": followingID,
			})
			return ErrFollowNotFound
		}
		logger.Error("Failed to fetch follow", err, map[string]interface{}{
			"user_id":      userID,
			"following_id": followingID,
		})
		return err
	}

	if err := s.followRepo.Delete(userID, followingID); err != nil {
		logger.Error("Failed to delete follow", err, map[string]interface{}{
			"user_id":      userID,
			"following_id": followingID,
		})
		return err
	}

	logger.Info("Follow removed successfully", map[string]interface{}{
		"user_id":      userID,
		"following_id": followingID,
	})
	return nil
}

func (s *followService) GetSubscriptions(userID uint) ([]model.User, error) {
	logger.Debug("Fetching subscriptions", map[string]interface{}{
		"user_id": userID,
	})

	users, err := s.followRepo.FindFollowedUsers(userID)
	if err != nil {
		logger.Error("Failed to fetch subscriptions", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Subscriptions fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(users),
	})
	return users, nil
}

package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avolkova/foodgram-backend/internal/app/service"
	apperrors "github.com/avolkova/foodgram-backend/internal/errors"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FollowController struct {
	followService service.FollowService
}

func NewFollowController(followService service.FollowService) *FollowController {
	return &FollowController{followService: followService}
}

// GetSubscriptions lists the users the current user follows
// GET /api/v1/users/subscriptions
func (ctrl *FollowController) GetSubscriptions(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	users, err := ctrl.followService.GetSubscriptions(userID)
	if err != nil {
		log.Error("Failed to fetch subscriptions", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch subscriptions")
		return
	}

	results := make([]gin.H, 0, len(users))
	for _, u := range users {
		results = append(results, gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"username":   u.Username,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"avatar_url": u.AvatarURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"subscriptions": results,
		"count":         len(results),
	})
}

// Subscribe follows another user
// POST /api/v1/users/:id/subscribe
func (ctrl *FollowController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	followingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	if err := ctrl.followService.Follow(userID, uint(followingID)); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			apperrors.BadRequest(c, apperrors.FollowSelf, "Cannot follow yourself")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
		case errors.Is(err, service.ErrFollowAlreadyExists):
			apperrors.Conflict(c, apperrors.FollowExists, "Already following this user")
		default:
			log.Error("Failed to subscribe", err, map[string]interface{}{
				"user_id":      userID,
				"following_id": followingID,
			})
			apperrors.InternalError(c, "Failed to subscribe")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Subscribed successfully",
	})
}

// Unsubscribe unfollows a user
// DELETE /api/v1/users/:id/subscribe
func (ctrl *FollowController) Unsubscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	followingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid user ID")
		return
	}

	if err := ctrl.followService.Unfollow(userID, uint(followingID)); err != nil {
		if errors.Is(err, service.ErrFollowNotFound) {
			apperrors.NotFound(c, apperrors.FollowNotFound, "Not following this user")
			return
		}
		log.Error("Failed to unsubscribe", err, map[string]interface{}{
			"user_id":      userID,
			"following_id": followingID,
		})
		apperrors.InternalError(c, "Failed to unsubscribe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Unsubscribed successfully",
	})
}

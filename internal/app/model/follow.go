package model

import (
	"time"
)

// Follow records that UserID subscribed to FollowingID's recipes. The pair
// is unique and hard-deleted on unsubscribe.
type Follow struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_follows_user_following" json:"user_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_user_following" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}

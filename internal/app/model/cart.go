package model

import (
	"time"
)

// CartEntry marks a recipe as selected in a user's shopping cart. One entry
// per (user, recipe) pair, enforced by a composite unique index; the pair is
// the only durable state the shopping list pipeline mutates. Entries are
// hard-deleted on removal so the pair can be re-added.
type CartEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_entries_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_entries_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
}

func (CartEntry) TableName() string {
	return "cart_entries"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag is predefined reference data attached to recipes for filtering.
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(50);not null" json:"name"`
	Slug      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"slug"`
	Color     string         `gorm:"type:varchar(16)" json:"color"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// RecipeTag links recipes and tags many-to-many.
type RecipeTag struct {
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	Recipe    Recipe    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Tag       Tag       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	// Bounds shared by cooking time and line item amounts.
	MinCookingTime = 1
	MaxCookingTime = 32000
)

type Recipe struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	CookingTime int            `gorm:"not null" json:"cooking_time"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Author      User               `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is one line item of a recipe: an ingredient reference and
// its amount. At most one row per (recipe, ingredient); the measurement unit
// always comes from the ingredient catalog.
type RecipeIngredient struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	RecipeID     uint    `gorm:"not null;index" json:"recipe_id"`
	IngredientID uint    `gorm:"not null;index" json:"ingredient_id"`
	Amount       float64 `gorm:"not null" json:"amount"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

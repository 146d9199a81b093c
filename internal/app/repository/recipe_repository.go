package repository

import (
	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

// RecipeListOptions narrows and pages the recipe listing.
type RecipeListOptions struct {
	TagSlugs    []string
	AuthorID    uint
	FavoritedBy uint // user id; only recipes favorited by this user
	Limit       int
	Offset      int
}

type RecipeRepository interface {
	Create(recipe *model.Recipe) error
	FindByID(id uint) (*model.Recipe, error)
	List(opts RecipeListOptions) ([]model.Recipe, int64, error)
	Update(recipe *model.Recipe) error
	Delete(id uint) error
	ReplaceLineItems(recipeID uint, items []model.RecipeIngredient) error
	ReplaceTags(recipe *model.Recipe, tags []model.Tag) error
	FindLineItemsByRecipeIDs(recipeIDs []uint) ([]model.RecipeIngredient, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(recipe *model.Recipe) error {
	logger.Debug("Creating recipe in database", map[string]interface{}{
		"author_id": recipe.AuthorID,
		"name":      recipe.Name,
	})

	if err := r.db.Create(recipe).Error; err != nil {
		logger.Error("Failed to create recipe in database", err, map[string]interface{}{
			"author_id": recipe.AuthorID,
			"name":      recipe.Name,
		})
		return err
	}

	logger.Debug("Recipe created in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})
	return nil
}

func (r *recipeRepository) FindByID(id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Author").
		Preload("Ingredients.Ingredient.MeasurementUnit").
		Preload("Tags").
		First(&recipe, id).Error
	if err != nil {
		logger.Error("Failed to find recipe by ID in database", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(opts RecipeListOptions) ([]model.Recipe, int64, error) {
	logger.Debug("Listing recipes in database", map[string]interface{}{
		"tags":         opts.TagSlugs,
		"author_id":    opts.AuthorID,
		"favorited_by": opts.FavoritedBy,
		"limit":        opts.Limit,
		"offset":       opts.Offset,
	})

	query := r.db.Model(&model.Recipe{})

	if len(opts.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", opts.TagSlugs).
			Distinct("recipes.*")
	}
	if opts.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", opts.AuthorID)
	}
	if opts.FavoritedBy != 0 {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", opts.FavoritedBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count recipes in database", err)
		return nil, 0, err
	}

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit).Offset(opts.Offset)
	}

	var recipes []model.Recipe
	err := query.
		Preload("Author").
		Preload("Ingredients.Ingredient.MeasurementUnit").
		Preload("Tags").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to list recipes in database", err)
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *recipeRepository) Update(recipe *model.Recipe) error {
	logger.Debug("Updating recipe in database", map[string]interface{}{
		"recipe_id": recipe.ID,
	})

	if err := r.db.Save(recipe).Error; err != nil {
		logger.Error("Failed to update recipe in database", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}
	return nil
}

// Delete removes the recipe and everything hanging off it: line items, tag
// links, favorites and cart entries. The shopping list aggregation relies on
// this cascade so deleted recipes contribute nothing.
func (r *recipeRepository) Delete(id uint) error {
	logger.Debug("Deleting recipe from database", map[string]interface{}{
		"recipe_id": id,
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.CartEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Recipe{}, id).Error; err != nil {
			logger.Error("Failed to delete recipe from database", err, map[string]interface{}{
				"recipe_id": id,
			})
			return err
		}
		return nil
	})
}

// ReplaceLineItems swaps the full line item set of a recipe.
func (r *recipeRepository) ReplaceLineItems(recipeID uint, items []model.RecipeIngredient) error {
	logger.Debug("Replacing recipe line items in database", map[string]interface{}{
		"recipe_id": recipeID,
		"count":     len(items),
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("recipe_id = ?", recipeID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].RecipeID = recipeID
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *recipeRepository) ReplaceTags(recipe *model.Recipe, tags []model.Tag) error {
	logger.Debug("Replacing recipe tags in database", map[string]interface{}{
		"recipe_id": recipe.ID,
		"count":     len(tags),
	})

	if err := r.db.Model(recipe).Association("Tags").Replace(tags); err != nil {
		logger.Error("Failed to replace recipe tags in database", err, map[string]interface{}{
			"recipe_id": recipe.ID,
		})
		return err
	}
	return nil
}

// FindLineItemsByRecipeIDs returns every line item of the given recipes with
// the ingredient and its measurement unit preloaded. Recipes that no longer
// exist simply yield no rows.
func (r *recipeRepository) FindLineItemsByRecipeIDs(recipeIDs []uint) ([]model.RecipeIngredient, error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}

	logger.Debug("Finding line items by recipe IDs in database", map[string]interface{}{
		"recipe_count": len(recipeIDs),
	})

	var items []model.RecipeIngredient
	err := r.db.
		Where("recipe_id IN ?", recipeIDs).
		Preload("Ingredient.MeasurementUnit").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find line items by recipe IDs in database", err, map[string]interface{}{
			"recipe_count": len(recipeIDs),
		})
		return nil, err
	}

	return items, nil
}

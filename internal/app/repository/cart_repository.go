package repository

import (
	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(entry *model.CartEntry) error
	FindByUserID(userID uint) ([]model.CartEntry, error)
	FindByUserAndRecipe(userID, recipeID uint) (*model.CartEntry, error)
	ListRecipeIDs(userID uint) ([]uint, error)
	Delete(userID, recipeID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(entry *model.CartEntry) error {
	logger.Debug("Creating cart entry in database", map[string]interface{}{
		"user_id":   entry.UserID,
		"recipe_id": entry.RecipeID,
	})

	if err := r.db.Create(entry).Error; err != nil {
		logger.Error("Failed to create cart entry in database", err, map[string]interface{}{
			"user_id":   entry.UserID,
			"recipe_id": entry.RecipeID,
		})
		return err
	}

	logger.Debug("Cart entry created in database", map[string]interface{}{
		"cart_entry_id": entry.ID,
		"user_id":       entry.UserID,
		"recipe_id":     entry.RecipeID,
	})
	return nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartEntry, error) {
	logger.Debug("Finding cart entries by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var entries []model.CartEntry
	err := r.db.Where("user_id = ?", userID).
		Preload("Recipe").
		Find(&entries).Error
	if err != nil {
		logger.Error("Failed to find cart entries by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart entries found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(entries),
	})
	return entries, nil
}

func (r *cartRepository) FindByUserAndRecipe(userID, recipeID uint) (*model.CartEntry, error) {
	var entry model.CartEntry
	err := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListRecipeIDs returns the ids of all recipes currently in the user's cart.
// No ordering is guaranteed; the aggregation establishes its own order.
func (r *cartRepository) ListRecipeIDs(userID uint) ([]uint, error) {
	logger.Debug("Listing cart recipe IDs in database", map[string]interface{}{
		"user_id": userID,
	})

	var recipeIDs []uint
	err := r.db.Model(&model.CartEntry{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &recipeIDs).Error
	if err != nil {
		logger.Error("Failed to list cart recipe IDs in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return recipeIDs, nil
}

func (r *cartRepository) Delete(userID, recipeID uint) error {
	logger.Debug("Deleting cart entry from database", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	err := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.CartEntry{}).Error
	if err != nil {
		logger.Error("Failed to delete cart entry from database", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Debug("Cart entry deleted from database", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

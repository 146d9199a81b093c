package repository

import (
	"errors"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	FindByID(id uint) (*model.Ingredient, error)
	Search(namePrefix string) ([]model.Ingredient, error)
	BulkCreate(ingredients []model.Ingredient, batchSize int) error
	GetOrCreateUnit(name string) (*model.MeasurementUnit, error)
	ClearCatalog() error
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) FindByID(id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.Preload("MeasurementUnit").First(&ingredient, id).Error
	if err != nil {
		logger.Error("Failed to find ingredient by ID in database", err, map[string]interface{}{
			"ingredient_id": id,
		})
		return nil, err
	}
	return &ingredient, nil
}

// Search returns ingredients whose name starts with the given prefix,
// ordered by name. An empty prefix returns the whole catalog.
func (r *ingredientRepository) Search(namePrefix string) ([]model.Ingredient, error) {
	logger.Debug("Searching ingredients in database", map[string]interface{}{
		"prefix": namePrefix,
	})

	var ingredients []model.Ingredient
	query := r.db.Preload("MeasurementUnit").Order("name ASC")
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		logger.Error("Failed to search ingredients in database", err, map[string]interface{}{
			"prefix": namePrefix,
		})
		return nil, err
	}

	return ingredients, nil
}

func (r *ingredientRepository) BulkCreate(ingredients []model.Ingredient, batchSize int) error {
	logger.Info("Bulk creating ingredients in database", map[string]interface{}{
		"count":      len(ingredients),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(ingredients, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create ingredients in database", err, map[string]interface{}{
			"count": len(ingredients),
		})
		return err
	}
	return nil
}

// GetOrCreateUnit resolves a measurement unit by its unique name, creating
// it on first sight.
func (r *ingredientRepository) GetOrCreateUnit(name string) (*model.MeasurementUnit, error) {
	var unit model.MeasurementUnit
	err := r.db.Where("name = ?", name).First(&unit).Error
	if err == nil {
		return &unit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	unit = model.MeasurementUnit{Name: name}
	if err := r.db.Create(&unit).Error; err != nil {
		logger.Error("Failed to create measurement unit in database", err, map[string]interface{}{
			"unit": name,
		})
		return nil, err
	}
	return &unit, nil
}

// ClearCatalog wipes ingredients and units before a fresh import.
func (r *ingredientRepository) ClearCatalog() error {
	logger.Info("Clearing ingredient catalog", nil)

	if err := r.db.Exec("DELETE FROM ingredients").Error; err != nil {
		return err
	}
	return r.db.Exec("DELETE FROM measurement_units").Error
}

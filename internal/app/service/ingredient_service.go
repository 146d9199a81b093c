package service

import (
	"errors"
	"strings"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrEmptyCatalogEntry = errors.New("catalog entry needs a name and a unit")

const importBatchSize = 500

// IngredientImport is one row of a catalog import file.
type IngredientImport struct {
	Name string
	Unit string
}

type IngredientService interface {
	GetIngredientByID(id uint) (*model.Ingredient, error)
	SearchIngredients(namePrefix string) ([]model.Ingredient, error)
	ImportCatalog(entries []IngredientImport, clear bool) (int, error)
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
}

func NewIngredientService(ingredientRepo repository.IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepo: ingredientRepo}
}

func (s *ingredientService) GetIngredientByID(id uint) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		logger.Error("Failed to fetch ingredient", err, map[string]interface{}{
			"ingredient_id": id,
		})
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) SearchIngredients(namePrefix string) ([]model.Ingredient, error) {
	logger.Debug("Searching ingredients", map[string]interface{}{
		"name": namePrefix,
	})

	ingredients, err := s.ingredientRepo.Search(namePrefix)
	if err != nil {
		logger.Error("Failed to search ingredients", err, map[string]interface{}{
			"name": namePrefix,
		})
		return nil, err
	}
	return ingredients, nil
}

// ImportCatalog loads ingredient rows into the catalog, creating measurement
// units on demand. With clear set, the existing catalog is dropped first.
func (s *ingredientService) ImportCatalog(entries []IngredientImport, clear bool) (int, error) {
	logger.Info("Importing ingredient catalog", map[string]interface{}{
		"rows":  len(entries),
		"clear": clear,
	})

	if clear {
		if err := s.ingredientRepo.ClearCatalog(); err != nil {
			logger.Error("Failed to clear ingredient catalog", err, nil)
			return 0, err
		}
	}

	unitIDs := make(map[string]uint)
	ingredients := make([]model.Ingredient, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		unit := strings.TrimSpace(entry.Unit)
		if name == "" || unit == "" {
			return 0, ErrEmptyCatalogEntry
		}

		unitID, ok := unitIDs[unit]
		if !ok {
			u, err := s.ingredientRepo.GetOrCreateUnit(unit)
			if err != nil {
				return 0, err
			}
			unitID = u.ID
			unitIDs[unit] = unitID
		}

		ingredients = append(ingredients, model.Ingredient{
			Name:              name,
			MeasurementUnitID: unitID,
		})
	}

	if err := s.ingredientRepo.BulkCreate(ingredients, importBatchSize); err != nil {
		logger.Error("Failed to bulk create ingredients", err, map[string]interface{}{
			"rows": len(ingredients),
		})
		return 0, err
	}

	logger.Info("Ingredient catalog imported successfully", map[string]interface{}{
		"rows":  len(ingredients),
		"units": len(unitIDs),
	})
	return len(ingredients), nil
}

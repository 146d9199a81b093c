package service

import (
	"sort"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/pkg/logger"
)

// ShoppingListItem is one aggregated line of a user's shopping list.
type ShoppingListItem struct {
	IngredientID uint
	Name         string
	Amount       float64
	Unit         string
}

type ShoppingListService interface {
	BuildShoppingList(userID uint) ([]ShoppingListItem, error)
}

type shoppingListService struct {
	cartRepo   repository.CartRepository
	recipeRepo repository.RecipeRepository
}

func NewShoppingListService(
	cartRepo repository.CartRepository,
	recipeRepo repository.RecipeRepository,
) ShoppingListService {
	return &shoppingListService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
	}
}

// BuildShoppingList collects the line items of every recipe in the user's
// cart and merges them into one aggregated list.
func (s *shoppingListService) BuildShoppingList(userID uint) ([]ShoppingListItem, error) {
	logger.Debug("Building shopping list", map[string]interface{}{
		"user_id": userID,
	})

	recipeIDs, err := s.cartRepo.ListRecipeIDs(userID)
	if err != nil {
		logger.Error("Failed to list cart recipes", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(recipeIDs) == 0 {
		logger.Info("Shopping list built for empty cart", map[string]interface{}{
			"user_id": userID,
		})
		return []ShoppingListItem{}, nil
	}

	lineItems, err := s.recipeRepo.FindLineItemsByRecipeIDs(recipeIDs)
	if err != nil {
		logger.Error("Failed to fetch recipe line items", err, map[string]interface{}{
			"user_id":    userID,
			"recipe_ids": recipeIDs,
		})
		return nil, err
	}

	items := AggregateLineItems(lineItems)

	logger.Info("Shopping list built successfully", map[string]interface{}{
		"user_id":      userID,
		"recipe_count": len(recipeIDs),
		"item_count":   len(items),
	})
	return items, nil
}

// AggregateLineItems merges line items that refer to the same ingredient by
// summing their amounts. The result is sorted by ingredient name, with the
// ingredient ID as a tie-breaker so the output is deterministic.
func AggregateLineItems(lineItems []model.RecipeIngredient) []ShoppingListItem {
	totals := make(map[uint]*ShoppingListItem, len(lineItems))
	for _, li := range lineItems {
		if item, ok := totals[li.IngredientID]; ok {
			item.Amount += li.Amount
			continue
		}
		totals[li.IngredientID] = &ShoppingListItem{
			IngredientID: li.IngredientID,
			Name:         li.Ingredient.Name,
			Amount:       li.Amount,
			Unit:         li.Ingredient.MeasurementUnit.Name,
		}
	}

	items := make([]ShoppingListItem, 0, len(totals))
	for _, item := range totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].IngredientID < items[j].IngredientID
	})
	return items
}

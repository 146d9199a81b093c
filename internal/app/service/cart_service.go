package service

import (
	"errors"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartEntryExists   = errors.New("recipe already in shopping cart")
	ErrCartEntryNotFound = errors.New("recipe not in shopping cart")
)

type CartService interface {
	GetUserCart(userID uint) ([]model.CartEntry, error)
	AddToCart(userID, recipeID uint) error
	RemoveFromCart(userID, recipeID uint) error
}

type cartService struct {
	cartRepo   repository.CartRepository
	recipeRepo repository.RecipeRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	recipeRepo repository.RecipeRepository,
) CartService {
	return &cartService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartEntry, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	entries, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(entries),
	})
	return entries, nil
}

func (s *cartService) AddToCart(userID, recipeID uint) error {
	logger.Info("Adding recipe to cart", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	if _, err := s.recipeRepo.FindByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: recipe not found", map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			return ErrRecipeNotFound
		}
		logger.Error("Failed to fetch recipe", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	existing, err := s.cartRepo.FindByUserAndRecipe(userID, recipeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart entry", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Recipe already in cart", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return ErrCartEntryExists
	}

	entry := &model.CartEntry{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.cartRepo.Create(entry); err != nil {
		logger.Error("Failed to create cart entry", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe added to cart successfully", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

func (s *cartService) RemoveFromCart(userID, recipeID uint) error {
	logger.Info("Removing recipe from cart", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	if _, err := s.cartRepo.FindByUserAndRecipe(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot remove from cart: entry not found", map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			return ErrCartEntryNotFound
		}
		logger.Error("Failed to fetch cart entry", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	if err := s.cartRepo.Delete(userID, recipeID); err != nil {
		logger.Error("Failed to delete cart entry", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe removed from cart successfully", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

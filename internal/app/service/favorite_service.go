package service

import (
	"errors"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrFavoriteAlreadyExists = errors.New("recipe already in favorites")
	ErrFavoriteNotFound      = errors.New("recipe not in favorites")
)

type FavoriteService interface {
	GetUserFavorites(userID uint) ([]model.Favorite, error)
	AddToFavorites(userID, recipeID uint) error
	RemoveFromFavorites(userID, recipeID uint) error
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	recipeRepo   repository.RecipeRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	recipeRepo repository.RecipeRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

func (s *favoriteService) GetUserFavorites(userID uint) ([]model.Favorite, error) {
	logger.Debug("Fetching user favorites", map[string]interface{}{
		"user_id": userID,
	})

	favorites, err := s.favoriteRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User favorites fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(favorites),
	})
	return favorites, nil
}

func (s *favoriteService) AddToFavorites(userID, recipeID uint) error {
	logger.Info("Adding recipe to favorites", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	if _, err := s.recipeRepo.FindByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to favorites: recipe not found", map[string]interface{}{
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

	existing, err := s.favoriteRepo.FindByUserAndRecipe(userID, recipeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Recipe already in favorites", map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return ErrFavoriteAlreadyExists
	}

	favorite := &model.Favorite{
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		logger.Error("Failed to create favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe added to favorites successfully", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

func (s *favoriteService) RemoveFromFavorites(userID, recipeID uint) error {
	logger.Info("Removing recipe from favorites", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})

	if _, err := s.favoriteRepo.FindByUserAndRecipe(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot remove from favorites: entry not found", map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			return ErrFavoriteNotFound
		}
		logger.Error("Failed to fetch favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	if err := s.favoriteRepo.Delete(userID, recipeID); err != nil {
		logger.Error("Failed to delete favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe removed from favorites successfully", map[string]interface{}{
		"user_id":   userID,
		"recipe_id": recipeID,
	})
	return nil
}

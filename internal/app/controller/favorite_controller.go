package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avolkova/foodgram-backend/internal/app/service"
	apperrors "github.com/avolkova/foodgram-backend/internal/errors"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

// GetFavorites returns the user's favorite recipes
// GET /api/v1/recipes/favorites
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	favorites, err := ctrl.favoriteService.GetUserFavorites(userID)
	if err != nil {
		log.Error("Failed to fetch favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// AddFavorite marks a recipe as favorite
// POST /api/v1/recipes/:id/favorite
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	if err := ctrl.favoriteService.AddToFavorites(userID, uint(recipeID)); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrFavoriteAlreadyExists):
			apperrors.Conflict(c, apperrors.FavoriteExists, "Recipe already in favorites")
		default:
			log.Error("Failed to add favorite", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.InternalError(c, "Failed to add favorite")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe added to favorites",
	})
}

// RemoveFavorite unmarks a favorite recipe
// DELETE /api/v1/recipes/:id/favorite
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	if err := ctrl.favoriteService.RemoveFromFavorites(userID, uint(recipeID)); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			apperrors.NotFound(c, apperrors.FavoriteNotFound, "Recipe not in favorites")
			return
		}
		log.Error("Failed to remove favorite", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		apperrors.InternalError(c, "Failed to remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe removed from favorites",
	})
}

package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/app/service"
	apperrors "github.com/avolkova/foodgram-backend/internal/errors"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type RecipeController struct {
	recipeService service.RecipeService
}

func NewRecipeController(recipeService service.RecipeService) *RecipeController {
	return &RecipeController{recipeService: recipeService}
}

type RecipeIngredientRequest struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}

type RecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=100"`
	Description string                    `json:"description"`
	ImageURL    string                    `json:"image_url"`
	CookingTime int                       `json:"cooking_time" binding:"required"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,dive"`
	Tags        []string                  `json:"tags"`
}

func (req *RecipeRequest) toInput() service.RecipeInput {
	ingredients := make([]service.RecipeIngredientInput, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		ingredients = append(ingredients, service.RecipeIngredientInput{
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
		})
	}
	return service.RecipeInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CookingTime: req.CookingTime,
		Ingredients: ingredients,
		TagSlugs:    req.Tags,
	}
}

// ListRecipes returns a filtered page of recipes
// GET /api/v1/recipes?tags=breakfast,dinner&author=3&page=1&limit=20
func (ctrl *RecipeController) ListRecipes(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	opts := repository.RecipeListOptions{
		Limit: defaultPageSize,
	}

	if tags := c.Query("tags"); tags != "" {
		opts.TagSlugs = strings.Split(tags, ",")
	}
	if author := c.Query("author"); author != "" {
		authorID, err := strconv.ParseUint(author, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid author ID")
			return
		}
		opts.AuthorID = uint(authorID)
	}
	if c.Query("is_favorited") == "1" {
		userID, exists := middleware.GetUserID(c)
		if !exists {
			apperrors.Unauthorized(c, "Authentication required")
			return
		}
		opts.FavoritedBy = userID
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > maxPageSize {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid page size")
			return
		}
		opts.Limit = n
	}
	if page := c.Query("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Invalid page number")
			return
		}
		opts.Offset = (n - 1) * opts.Limit
	}

	recipes, total, err := ctrl.recipeService.ListRecipes(opts)
	if err != nil {
		log.Error("Failed to list recipes", err, nil)
		apperrors.InternalError(c, "Failed to list recipes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
		"total":   total,
	})
}

// GetRecipe returns a single recipe
// GET /api/v1/recipes/:id
func (ctrl *RecipeController) GetRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	recipe, err := ctrl.recipeService.GetRecipeByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRecipeNotFound) {
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
			return
		}
		log.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch recipe")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// CreateRecipe creates a recipe authored by the current user
// POST /api/v1/recipes
func (ctrl *RecipeController) CreateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe data")
		return
	}

	recipe, err := ctrl.recipeService.CreateRecipe(userID, req.toInput())
	if err != nil {
		ctrl.respondRecipeError(c, err, userID)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recipe": recipe,
	})
}

// UpdateRecipe updates a recipe; only its author may do so
// PUT /api/v1/recipes/:id
func (ctrl *RecipeController) UpdateRecipe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	var req RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid recipe request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid recipe data")
		return
	}

	recipe, err := ctrl.recipeService.UpdateRecipe(userID, uint(id), req.toInput())
	if err != nil {
		ctrl.respondRecipeError(c, err, userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe": recipe,
	})
}

// DeleteRecipe removes a recipe; only its author may do so
// DELETE /api/v1/recipes/:id
func (ctrl *RecipeController) DeleteRecipe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	if err := ctrl.recipeService.DeleteRecipe(userID, uint(id)); err != nil {
		ctrl.respondRecipeError(c, err, userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
	})
}

// respondRecipeError maps recipe service errors to HTTP responses.
func (ctrl *RecipeController) respondRecipeError(c *gin.Context, err error, userID uint) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
	case errors.Is(err, service.ErrNotRecipeAuthor):
		apperrors.Forbidden(c, "Only the author can modify this recipe")
	case errors.Is(err, service.ErrInvalidCookingTime):
		apperrors.BadRequest(c, apperrors.RecipeInvalidCookingTime, "Cooking time out of range")
	case errors.Is(err, service.ErrNoIngredients):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Recipe must have at least one ingredient")
	case errors.Is(err, service.ErrDuplicateIngredient):
		apperrors.BadRequest(c, apperrors.RecipeDuplicateIngredient, "Recipe lists an ingredient more than once")
	case errors.Is(err, service.ErrInvalidAmount):
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Ingredient amount must be positive")
	case errors.Is(err, service.ErrIngredientNotFound):
		apperrors.BadRequest(c, apperrors.IngredientNotFound, "Unknown ingredient")
	case errors.Is(err, service.ErrTagNotFound):
		apperrors.BadRequest(c, apperrors.TagNotFound, "Unknown tag")
	default:
		log.Error("Recipe operation failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Recipe operation failed")
	}
}

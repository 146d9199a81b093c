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

type IngredientController struct {
	ingredientService service.IngredientService
}

func NewIngredientController(ingredientService service.IngredientService) *IngredientController {
	return &IngredientController{ingredientService: ingredientService}
}

// SearchIngredients returns catalog ingredients matching the name prefix
// GET /api/v1/ingredients?name=...
func (ctrl *IngredientController) SearchIngredients(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	name := c.Query("name")

	ingredients, err := ctrl.ingredientService.SearchIngredients(name)
	if err != nil {
		log.Error("Failed to search ingredients", err, map[string]interface{}{
			"name": name,
		})
		apperrors.InternalError(c, "Failed to search ingredients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredients": ingredients,
		"count":       len(ingredients),
	})
}

// GetIngredient returns a single catalog ingredient
// GET /api/v1/ingredients/:id
func (ctrl *IngredientController) GetIngredient(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ingredient ID")
		return
	}

	ingredient, err := ctrl.ingredientService.GetIngredientByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			apperrors.NotFound(c, apperrors.IngredientNotFound, "Ingredient not found")
			return
		}
		log.Error("Failed to fetch ingredient", err, map[string]interface{}{
			"ingredient_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch ingredient")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ingredient": ingredient,
	})
}

package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avolkova/foodgram-backend/internal/app/service"
	apperrors "github.com/avolkova/foodgram-backend/internal/errors"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/avolkova/foodgram-backend/internal/render"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService         service.CartService
	shoppingListService service.ShoppingListService
	pdfRenderer         render.Renderer
	xlsxRenderer        render.Renderer
}

func NewCartController(
	cartService service.CartService,
	shoppingListService service.ShoppingListService,
	pdfRenderer render.Renderer,
	xlsxRenderer render.Renderer,
) *CartController {
	return &CartController{
		cartService:         cartService,
		shoppingListService: shoppingListService,
		pdfRenderer:         pdfRenderer,
		xlsxRenderer:        xlsxRenderer,
	}
}

// GetCart returns the recipes in the user's shopping cart
// GET /api/v1/recipes/shopping_cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to cart", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	entries, err := ctrl.cartService.GetUserCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_entries": entries,
		"count":        len(entries),
	})
}

// AddToCart puts a recipe into the user's shopping cart
// POST /api/v1/recipes/:id/shopping_cart
func (ctrl *CartController) AddToCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to add to cart", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid recipe ID")
		return
	}

	if err := ctrl.cartService.AddToCart(userID, uint(recipeID)); err != nil {
		switch {
		case errors.Is(err, service.ErrRecipeNotFound):
			apperrors.NotFound(c, apperrors.RecipeNotFound, "Recipe not found")
		case errors.Is(err, service.ErrCartEntryExists):
			apperrors.Conflict(c, apperrors.CartEntryExists, "Recipe already in shopping cart")
		default:
			log.Error("Failed to add to cart", err, map[string]interface{}{
				"user_id":   userID,
				"recipe_id": recipeID,
			})
			apperrors.InternalError(c, "Failed to add to cart")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Recipe added to shopping cart",
	})
}

// RemoveFromCart takes a recipe out of the user's shopping cart
// DELETE /api/v1/recipes/:id/shopping_cart
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
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

	if err := ctrl.cartService.RemoveFromCart(userID, uint(recipeID)); err != nil {
		if errors.Is(err, service.ErrCartEntryNotFound) {
			apperrors.NotFound(c, apperrors.CartEntryNotFound, "Recipe not in shopping cart")
			return
		}
		log.Error("Failed to remove from cart", err, map[string]interface{}{
			"user_id":   userID,
			"recipe_id": recipeID,
		})
		apperrors.InternalError(c, "Failed to remove from cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe removed from shopping cart",
	})
}

// DownloadShoppingCart aggregates the cart into a shopping list and streams
// it as a file attachment. An empty cart still yields a valid document.
// GET /api/v1/recipes/download_shopping_cart?format=pdf|xlsx
func (ctrl *CartController) DownloadShoppingCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to download shopping list", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	renderer := ctrl.pdfRenderer
	switch c.DefaultQuery("format", "pdf") {
	case "pdf":
	case "xlsx":
		renderer = ctrl.xlsxRenderer
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unsupported format")
		return
	}

	items, err := ctrl.shoppingListService.BuildShoppingList(userID)
	if err != nil {
		log.Error("Failed to build shopping list", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to build shopping list")
		return
	}

	out, err := renderer.Render(items)
	if err != nil {
		log.Error("Failed to render shopping list", err, map[string]interface{}{
			"user_id":    userID,
			"item_count": len(items),
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalRenderError, "Failed to render shopping list")
		return
	}

	log.Info("Shopping list downloaded", map[string]interface{}{
		"user_id":    userID,
		"item_count": len(items),
		"format":     renderer.Extension(),
		"bytes":      len(out),
	})

	filename := fmt.Sprintf("shopping_cart.%s", renderer.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, renderer.ContentType(), out)
}

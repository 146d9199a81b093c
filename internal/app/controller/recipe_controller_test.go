package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecipeControllerTest(t *testing.T) (*RecipeController, *gin.Engine, *gorm.DB, *model.User, *model.Ingredient) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	recipeRepo := repository.NewRecipeRepository(testDB)
	ingredientRepo := repository.NewIngredientRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo, tagRepo)
	recipeController := NewRecipeController(recipeService)

	user := &model.User{
		Email:        "author@example.com",
		PasswordHash: "hash",
		Username:     "author",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	gram := model.MeasurementUnit{Name: "g"}
	require.NoError(t, testDB.Create(&gram).Error)
	flour := &model.Ingredient{Name: "Flour", MeasurementUnitID: gram.ID}
	require.NoError(t, testDB.Create(flour).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return recipeController, router, testDB, user, flour
}

func TestRecipeController_CreateRecipe(t *testing.T) {
	controller, router, _, user, flour := setupRecipeControllerTest(t)

	router.POST("/recipes", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateRecipe(c)
	})

	body, _ := json.Marshal(gin.H{
		"name":         "Bread",
		"description":  "Simple bread",
		"cooking_time": 90,
		"ingredients": []gin.H{
			{"ingredient_id": flour.ID, "amount": 500},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bread", resp.Recipe.Name)
	assert.Equal(t, user.ID, resp.Recipe.AuthorID)
}

func TestRecipeController_CreateRecipe_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupRecipeControllerTest(t)

	router.POST("/recipes", controller.CreateRecipe)

	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecipeController_CreateRecipe_DuplicateIngredient(t *testing.T) {
	controller, router, _, user, flour := setupRecipeControllerTest(t)

	router.POST("/recipes", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateRecipe(c)
	})

	body, _ := json.Marshal(gin.H{
		"name":         "Bread",
		"cooking_time": 90,
		"ingredients": []gin.H{
			{"ingredient_id": flour.ID, "amount": 500},
			{"ingredient_id": flour.ID, "amount": 100},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "RECIPE_DUPLICATE_INGREDIENT")
}

func TestRecipeController_GetRecipe_NotFound(t *testing.T) {
	controller, router, _, _, _ := setupRecipeControllerTest(t)

	router.GET("/recipes/:id", controller.GetRecipe)

	req := httptest.NewRequest(http.MethodGet, "/recipes/99999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeController_GetRecipe_InvalidID(t *testing.T) {
	controller, router, _, _, _ := setupRecipeControllerTest(t)

	router.GET("/recipes/:id", controller.GetRecipe)

	req := httptest.NewRequest(http.MethodGet, "/recipes/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeController_ListRecipes(t *testing.T) {
	controller, router, testDB, user, _ := setupRecipeControllerTest(t)

	for _, name := range []string{"Bread", "Soup"} {
		require.NoError(t, testDB.Create(&model.Recipe{
			AuthorID:    user.ID,
			Name:        name,
			CookingTime: 30,
		}).Error)
	}

	router.GET("/recipes", controller.ListRecipes)

	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["total"])
}

func TestRecipeController_DeleteRecipe_ForbiddenForNonAuthor(t *testing.T) {
	controller, router, testDB, user, _ := setupRecipeControllerTest(t)

	recipe := &model.Recipe{AuthorID: user.ID, Name: "Bread", CookingTime: 90}
	require.NoError(t, testDB.Create(recipe).Error)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Username:     "other",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	router.DELETE("/recipes/:id", func(c *gin.Context) {
		setUserIDInContext(c, other.ID)
		controller.DeleteRecipe(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/recipes/"+uintToString(recipe.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

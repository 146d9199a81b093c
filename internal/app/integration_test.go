package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkova/foodgram-backend/internal/app/controller"
	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/avolkova/foodgram-backend/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const integrationJWTSecret = "integration-test-secret"

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	ingredientRepo := repository.NewIngredientRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	resetRepo := repository.NewPasswordResetRepository(testDB)

	authService := service.NewAuthService(userRepo, integrationJWTSecret, 15*time.Minute, 24*time.Hour)
	resetService := service.NewPasswordResetService(resetRepo, userRepo)
	recipeService := service.NewRecipeService(recipeRepo, ingredientRepo, tagRepo)
	cartService := service.NewCartService(cartRepo, recipeRepo)
	shoppingListService := service.NewShoppingListService(cartRepo, recipeRepo)

	authController := controller.NewAuthController(authService, resetService)
	recipeController := controller.NewRecipeController(recipeService)
	xlsxRenderer := render.NewXLSXRenderer()
	cartController := controller.NewCartController(cartService, shoppingListService, xlsxRenderer, xlsxRenderer)

	authMiddleware := middleware.NewAuthMiddleware(integrationJWTSecret)

	router := gin.New()
	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/register", authController.Register)
		v1.POST("/auth/login", authController.Login)

		v1.POST("/recipes", authMiddleware.Authenticate(), recipeController.CreateRecipe)
		v1.GET("/recipes/download_shopping_cart", authMiddleware.Authenticate(), cartController.DownloadShoppingCart)
		v1.POST("/recipes/:id/shopping_cart", authMiddleware.Authenticate(), cartController.AddToCart)
	}

	return &TestServer{Router: router, DB: testDB}
}

func (ts *TestServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func (ts *TestServer) registerAndLogin(t *testing.T, email, username string) string {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"username": username,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Tokens.AccessToken)
	return resp.Tokens.AccessToken
}

func (ts *TestServer) seedCatalog(t *testing.T) (flour, sugar, milk model.Ingredient) {
	t.Helper()

	gram := model.MeasurementUnit{Name: "g"}
	piece := model.MeasurementUnit{Name: "pcs"}
	require.NoError(t, ts.DB.Create(&gram).Error)
	require.NoError(t, ts.DB.Create(&piece).Error)

	flour = model.Ingredient{Name: "Flour", MeasurementUnitID: gram.ID}
	sugar = model.Ingredient{Name: "Sugar", MeasurementUnitID: gram.ID}
	milk = model.Ingredient{Name: "Milk", MeasurementUnitID: piece.ID}
	require.NoError(t, ts.DB.Create(&flour).Error)
	require.NoError(t, ts.DB.Create(&sugar).Error)
	require.NoError(t, ts.DB.Create(&milk).Error)
	return flour, sugar, milk
}

// Full journey: register, publish two recipes, cart both, download the merged
// shopping list.
func TestShoppingListFlow(t *testing.T) {
	ts := setupIntegrationTest(t)
	flour, sugar, milk := ts.seedCatalog(t)

	token := ts.registerAndLogin(t, "anna@example.com", "anna")

	createRecipe := func(name string, cookingTime int, ingredients []gin.H) uint {
		w := ts.request(t, http.MethodPost, "/api/v1/recipes", token, gin.H{
			"name":         name,
			"cooking_time": cookingTime,
			"ingredients":  ingredients,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp struct {
			Recipe model.Recipe `json:"recipe"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Recipe.ID
	}

	pancakesID := createRecipe("Pancakes", 20, []gin.H{
		{"ingredient_id": flour.ID, "amount": 200},
		{"ingredient_id": sugar.ID, "amount": 50},
	})
	breadID := createRecipe("Bread", 90, []gin.H{
		{"ingredient_id": flour.ID, "amount": 100},
		{"ingredient_id": milk.ID, "amount": 1},
	})

	for _, id := range []uint{pancakesID, breadID} {
		w := ts.request(t, http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/shopping_cart", id), token, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := ts.request(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart?format=xlsx", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="shopping_cart.xlsx"`, w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Shopping list")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Flour", "300", "g"}, rows[1])
	assert.Equal(t, []string{"Milk", "1", "pcs"}, rows[2])
	assert.Equal(t, []string{"Sugar", "50", "g"}, rows[3])
}

func TestShoppingListDownload_RequiresAuth(t *testing.T) {
	ts := setupIntegrationTest(t)

	w := ts.request(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestShoppingListDownload_EmptyCart(t *testing.T) {
	ts := setupIntegrationTest(t)
	token := ts.registerAndLogin(t, "anna@example.com", "anna")

	w := ts.request(t, http.MethodGet, "/api/v1/recipes/download_shopping_cart?format=xlsx", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Shopping list")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}

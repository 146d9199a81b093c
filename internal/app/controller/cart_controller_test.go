package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/avolkova/foodgram-backend/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// fakePDFRenderer stands in for the PDF renderer so controller tests do not
// need a font file on disk.
type fakePDFRenderer struct{}

func (fakePDFRenderer) Render(items []service.ShoppingListItem) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

func (fakePDFRenderer) ContentType() string { return "application/pdf" }

func (fakePDFRenderer) Extension() string { return "pdf" }

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Recipe) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	cartService := service.NewCartService(cartRepo, recipeRepo)
	shoppingListService := service.NewShoppingListService(cartRepo, recipeRepo)
	cartController := NewCartController(cartService, shoppingListService, fakePDFRenderer{}, render.NewXLSXRenderer())

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Username:     "testcook",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	gram := model.MeasurementUnit{Name: "g"}
	require.NoError(t, testDB.Create(&gram).Error)
	flour := model.Ingredient{Name: "Flour", MeasurementUnitID: gram.ID}
	require.NoError(t, testDB.Create(&flour).Error)

	recipe := &model.Recipe{
		AuthorID:    user.ID,
		Name:        "Pancakes",
		CookingTime: 20,
		Ingredients: []model.RecipeIngredient{
			{IngredientID: flour.ID, Amount: 200},
		},
	}
	require.NoError(t, testDB.Create(recipe).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, recipe
}

// Helper function to set user ID in context
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func uintToString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func TestCartController_GetCart_Success(t *testing.T) {
	controller, router, testDB, user, recipe := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartEntry{
		UserID:   user.ID,
		RecipeID: recipe.ID,
	})

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/cart", controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_AddToCart(t *testing.T) {
	controller, router, _, user, recipe := setupCartControllerTest(t)

	router.POST("/recipes/:id/shopping_cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	url := "/recipes/" + uintToString(recipe.ID) + "/shopping_cart"

	req := httptest.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Second add conflicts
	req = httptest.NewRequest(http.MethodPost, url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCartController_AddToCart_RecipeNotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/recipes/:id/shopping_cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/recipes/99999/shopping_cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_RemoveFromCart(t *testing.T) {
	controller, router, testDB, user, recipe := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartEntry{UserID: user.ID, RecipeID: recipe.ID})

	router.DELETE("/recipes/:id/shopping_cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	url := "/recipes/" + uintToString(recipe.ID) + "/shopping_cart"

	req := httptest.NewRequest(http.MethodDelete, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Entry is gone now
	req = httptest.NewRequest(http.MethodDelete, url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCartController_DownloadShoppingCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/recipes/download_shopping_cart", controller.DownloadShoppingCart)

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_DownloadShoppingCart_PDF(t *testing.T) {
	controller, router, testDB, user, recipe := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartEntry{UserID: user.ID, RecipeID: recipe.ID})

	router.GET("/recipes/download_shopping_cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.DownloadShoppingCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="shopping_cart.pdf"`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestCartController_DownloadShoppingCart_EmptyCart(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/recipes/download_shopping_cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.DownloadShoppingCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestCartController_DownloadShoppingCart_XLSX(t *testing.T) {
	controller, router, testDB, user, recipe := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartEntry{UserID: user.ID, RecipeID: recipe.ID})

	router.GET("/recipes/download_shopping_cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.DownloadShoppingCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart?format=xlsx", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="shopping_cart.xlsx"`, w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Shopping list")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Flour", "200", "g"}, rows[1])
}

func TestCartController_DownloadShoppingCart_UnknownFormat(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/recipes/download_shopping_cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.DownloadShoppingCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/recipes/download_shopping_cart?format=docx", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

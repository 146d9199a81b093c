package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/app/service"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	resetRepo := repository.NewPasswordResetRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-secret", 15*time.Minute, 24*time.Hour)
	resetService := service.NewPasswordResetService(resetRepo, userRepo)
	authController := NewAuthController(authService, resetService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/register", authController.Register)
	router.POST("/auth/login", authController.Login)
	router.POST("/auth/forgot-password", authController.ForgotPassword)

	return authController, router
}

func registerTestUser(t *testing.T, router *gin.Engine) {
	t.Helper()

	body, _ := json.Marshal(gin.H{
		"email":    "anna@example.com",
		"password": "password123",
		"username": "anna",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthController_Register(t *testing.T) {
	_, router := setupAuthControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"email":      "anna@example.com",
		"password":   "password123",
		"username":   "anna",
		"first_name": "Anna",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "tokens")

	user := resp["user"].(map[string]interface{})
	assert.Equal(t, "anna@example.com", user["email"])
	assert.Equal(t, "anna", user["username"])
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	_, router := setupAuthControllerTest(t)
	registerTestUser(t, router)

	body, _ := json.Marshal(gin.H{
		"email":    "anna@example.com",
		"password": "password123",
		"username": "anna2",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_EMAIL_EXISTS")
}

func TestAuthController_Register_InvalidBody(t *testing.T) {
	_, router := setupAuthControllerTest(t)

	body, _ := json.Marshal(gin.H{
		"email":    "not-an-email",
		"password": "short",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_Login(t *testing.T) {
	_, router := setupAuthControllerTest(t)
	registerTestUser(t, router)

	body, _ := json.Marshal(gin.H{
		"email":    "anna@example.com",
		"password": "password123",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	tokens := resp["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	_, router := setupAuthControllerTest(t)
	registerTestUser(t, router)

	body, _ := json.Marshal(gin.H{
		"email":    "anna@example.com",
		"password": "wrongpassword",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthController_ForgotPassword_AlwaysOK(t *testing.T) {
	_, router := setupAuthControllerTest(t)

	// Unknown email still gets 200 so callers cannot enumerate accounts.
	body, _ := json.Marshal(gin.H{"email": "nobody@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

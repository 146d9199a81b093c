package service

import (
	"testing"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFavoriteServiceTest(t *testing.T) (FavoriteService, *model.User, *model.Recipe) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	favoriteRepo := repository.NewFavoriteRepository(testDB)
	recipeRepo := repository.NewRecipeRepository(testDB)
	favoriteService := NewFavoriteService(favoriteRepo, recipeRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Username:     "testcook",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	recipe := &model.Recipe{
		AuthorID:    user.ID,
		Name:        "Pancakes",
		CookingTime: 20,
	}
	testDB.Create(recipe)

	return favoriteService, user, recipe
}

func TestFavoriteService_AddAndList(t *testing.T) {
	favoriteService, user, recipe := setupFavoriteServiceTest(t)

	err := favoriteService.AddToFavorites(user.ID, recipe.ID)
	require.NoError(t, err)

	favorites, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Pancakes", favorites[0].Recipe.Name)
}

func TestFavoriteService_Add_Duplicate(t *testing.T) {
	favoriteService, user, recipe := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.AddToFavorites(user.ID, recipe.ID))

	err := favoriteService.AddToFavorites(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrFavoriteAlreadyExists)
}

func TestFavoriteService_Add_RecipeNotFound(t *testing.T) {
	favoriteService, user, _ := setupFavoriteServiceTest(t)

	err := favoriteService.AddToFavorites(user.ID, 99999)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestFavoriteService_Remove(t *testing.T) {
	favoriteService, user, recipe := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.AddToFavorites(user.ID, recipe.ID))
	require.NoError(t, favoriteService.RemoveFromFavorites(user.ID, recipe.ID))

	favorites, err := favoriteService.GetUserFavorites(user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteService_Remove_NotFound(t *testing.T) {
	favoriteService, user, recipe := setupFavoriteServiceTest(t)

	err := favoriteService.RemoveFromFavorites(user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

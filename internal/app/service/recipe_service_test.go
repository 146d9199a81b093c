package service

import (
	"testing"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRecipeServiceTest(t *testing.T) (RecipeService, *model.User, *model.Ingredient, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	recipeRepo := repository.NewRecipeRepository(testDB)
	ingredientRepo := repository.NewIngredientRepository(testDB)
	tagRepo := repository.NewTagRepository(testDB)
	recipeService := NewRecipeService(recipeRepo, ingredientRepo, tagRepo)

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

	return recipeService, user, flour, testDB
}

func TestRecipeService_CreateRecipe(t *testing.T) {
	recipeService, user, flour, _ := setupRecipeServiceTest(t)

	recipe, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Bread",
		Description: "Simple bread",
		CookingTime: 90,
		Ingredients: []RecipeIngredientInput{
			{IngredientID: flour.ID, Amount: 500},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bread", recipe.Name)
	assert.Equal(t, user.ID, recipe.AuthorID)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "Flour", recipe.Ingredients[0].Ingredient.Name)
}

func TestRecipeService_CreateRecipe_DuplicateIngredient(t *testing.T) {
	recipeService, user, flour, _ := setupRecipeServiceTest(t)

	_, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Bread",
		CookingTime: 90,
		Ingredients: []RecipeIngredientInput{
			{IngredientID: flour.ID, Amount: 500},
			{IngredientID: flour.ID, Amount: 100},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateIngredient)
}

func TestRecipeService_CreateRecipe_CookingTimeBounds(t *testing.T) {
	recipeService, user, flour, _ := setupRecipeServiceTest(t)

	ingredients := []RecipeIngredientInput{{IngredientID: flour.ID, Amount: 100}}

	_, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name: "Too fast", CookingTime: 0, Ingredients: ingredients,
	})
	assert.ErrorIs(t, err, ErrInvalidCookingTime)

	_, err = recipeService.CreateRecipe(user.ID, RecipeInput{
		Name: "Too slow", CookingTime: model.MaxCookingTime + 1, Ingredients: ingredients,
	})
	assert.ErrorIs(t, err, ErrInvalidCookingTime)

	_, err = recipeService.CreateRecipe(user.ID, RecipeInput{
		Name: "Boundary", CookingTime: model.MaxCookingTime, Ingredients: ingredients,
	})
	assert.NoError(t, err)
}

func TestRecipeService_CreateRecipe_NoIngredients(t *testing.T) {
	recipeService, user, _, _ := setupRecipeServiceTest(t)

	_, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Empty",
		CookingTime: 10,
	})
	assert.ErrorIs(t, err, ErrNoIngredients)
}

func TestRecipeService_CreateRecipe_InvalidAmount(t *testing.T) {
	recipeService, user, flour, _ := setupRecipeServiceTest(t)

	_, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Bread",
		CookingTime: 90,
		Ingredients: []RecipeIngredientInput{
			{IngredientID: flour.ID, Amount: 0},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRecipeService_CreateRecipe_UnknownIngredient(t *testing.T) {
	recipeService, user, _, _ := setupRecipeServiceTest(t)

	_, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Bread",
		CookingTime: 90,
		Ingredients: []RecipeIngredientInput{
			{IngredientID: 99999, Amount: 100},
		},
	})
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestRecipeService_CreateRecipe_UnknownTag(t *testing.T) {
	recipeService, user, flour, _ := setupRecipeServiceTest(t)

	_, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Bread",
		CookingTime: 90,
		Ingredients: []RecipeIngredientInput{{IngredientID: flour.ID, Amount: 100}},
		TagSlugs:    []string{"no-such-tag"},
	})
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestRecipeService_UpdateRecipe_AuthorOnly(t *testing.T) {
	recipeService, user, flour, testDB := setupRecipeServiceTest(t)

	recipe, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Bread",
		CookingTime: 90,
		Ingredients: []RecipeIngredientInput{{IngredientID: flour.ID, Amount: 500}},
	})
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Username:     "other",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	_, err = recipeService.UpdateRecipe(other.ID, recipe.ID, RecipeInput{
		Name:        "Hijacked",
		CookingTime: 10,
		Ingredients: []RecipeIngredientInput{{IngredientID: flour.ID, Amount: 1}},
	})
	assert.ErrorIs(t, err, ErrNotRecipeAuthor)

	updated, err := recipeService.UpdateRecipe(user.ID, recipe.ID, RecipeInput{
		Name:        "Sourdough",
		CookingTime: 240,
		Ingredients: []RecipeIngredientInput{{IngredientID: flour.ID, Amount: 600}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Sourdough", updated.Name)
	assert.Equal(t, 240, updated.CookingTime)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, float64(600), updated.Ingredients[0].Amount)
}

func TestRecipeService_DeleteRecipe(t *testing.T) {
	recipeService, user, flour, testDB := setupRecipeServiceTest(t)

	recipe, err := recipeService.CreateRecipe(user.ID, RecipeInput{
		Name:        "Bread",
		CookingTime: 90,
		Ingredients: []RecipeIngredientInput{{IngredientID: flour.ID, Amount: 500}},
	})
	require.NoError(t, err)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Username:     "other",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	err = recipeService.DeleteRecipe(other.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotRecipeAuthor)

	err = recipeService.DeleteRecipe(user.ID, recipe.ID)
	require.NoError(t, err)

	_, err = recipeService.GetRecipeByID(recipe.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

package service

import (
	"errors"

	"github.com/avolkova/foodgram-backend/internal/app/model"
	"github.com/avolkova/foodgram-backend/internal/app/repository"
	"github.com/avolkova/foodgram-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotRecipeAuthor     = errors.New("only the author can modify this recipe")
	ErrInvalidCookingTime  = errors.New("cooking time out of range")
	ErrNoIngredients       = errors.New("recipe must have at least one ingredient")
	ErrDuplicateIngredient = errors.New("recipe lists an ingredient more than once")
	ErrInvalidAmount       = errors.New("ingredient amount must be positive")
	ErrIngredientNotFound  = errors.New("ingredient not found")
	ErrTagNotFound         = errors.New("tag not found")
)

// RecipeIngredientInput is one ingredient line of a create/update request.
type RecipeIngredientInput struct {
	IngredientID uint
	Amount       float64
}

// RecipeInput carries the fields a client submits for a recipe.
type RecipeInput struct {
	Name        string
	Description string
	ImageURL    string
	CookingTime int
	Ingredients []RecipeIngredientInput
	TagSlugs    []string
}

type RecipeService interface {
	GetRecipeByID(id uint) (*model.Recipe, error)
	ListRecipes(opts repository.RecipeListOptions) ([]model.Recipe, int64, error)
	CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error)
	UpdateRecipe(userID, recipeID uint, input RecipeInput) (*model.Recipe, error)
	DeleteRecipe(userID, recipeID uint) error
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
	tagRepo        repository.TagRepository
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	tagRepo repository.TagRepository,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		tagRepo:        tagRepo,
	}
}

func (s *recipeService) GetRecipeByID(id uint) (*model.Recipe, error) {
	logger.Debug("Fetching recipe", map[string]interface{}{
		"recipe_id": id,
	})

	recipe, err := s.recipeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Recipe not found", map[string]interface{}{
				"recipe_id": id,
			})
			return nil, ErrRecipeNotFound
		}
		logger.Error("Failed to fetch recipe", err, map[string]interface{}{
			"recipe_id": id,
		})
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) ListRecipes(opts repository.RecipeListOptions) ([]model.Recipe, int64, error) {
	logger.Debug("Listing recipes", map[string]interface{}{
		"tag_slugs": opts.TagSlugs,
		"limit":     opts.Limit,
		"offset":    opts.Offset,
	})

	recipes, total, err := s.recipeRepo.List(opts)
	if err != nil {
		logger.Error("Failed to list recipes", err, map[string]interface{}{
			"tag_slugs": opts.TagSlugs,
		})
		return nil, 0, err
	}
	return recipes, total, nil
}

func (s *recipeService) CreateRecipe(authorID uint, input RecipeInput) (*model.Recipe, error) {
	logger.Info("Creating recipe", map[string]interface{}{
		"author_id": authorID,
		"name":      input.Name,
	})

	lineItems, tags, err := s.validateInput(input)
	if err != nil {
		logger.Warn("Recipe validation failed", map[string]interface{}{
			"author_id": authorID,
			"name":      input.Name,
			"reason":    err.Error(),
		})
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CookingTime: input.CookingTime,
		Ingredients: lineItems,
		Tags:        tags,
	}

	if err := s.recipeRepo.Create(recipe); err != nil {
		logger.Error("Failed to create recipe", err, map[string]interface{}{
			"author_id": authorID,
			"name":      input.Name,
		})
		return nil, err
	}

	logger.Info("Recipe created successfully", map[string]interface{}{
		"recipe_id": recipe.ID,
		"author_id": authorID,
	})
	return s.recipeRepo.FindByID(recipe.ID)
}

func (s *recipeService) UpdateRecipe(userID, recipeID uint, input RecipeInput) (*model.Recipe, error) {
	logger.Info("Updating recipe", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   userID,
	})

	recipe, err := s.GetRecipeByID(recipeID)
	if err != nil {
		return nil, err
	}

	if recipe.AuthorID != userID {
		logger.Warn("Update rejected: user is not the author", map[string]interface{}{
			"recipe_id": recipeID,
			"user_id":   userID,
			"author_id": recipe.AuthorID,
		})
		return nil, ErrNotRecipeAuthor
	}

	lineItems, tags, err := s.validateInput(input)
	if err != nil {
		logger.Warn("Recipe validation failed", map[string]interface{}{
			"recipe_id": recipeID,
			"reason":    err.Error(),
		})
		return nil, err
	}

	recipe.Name = input.Name
	recipe.Description = input.Description
	recipe.CookingTime = input.CookingTime
	if input.ImageURL != "" {
		recipe.ImageURL = input.ImageURL
	}
	recipe.Ingredients = nil
	recipe.Tags = nil

	if err := s.recipeRepo.Update(recipe); err != nil {
		logger.Error("Failed to update recipe", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return nil, err
	}
	if err := s.recipeRepo.ReplaceLineItems(recipeID, lineItems); err != nil {
		logger.Error("Failed to replace recipe ingredients", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return nil, err
	}
	if err := s.recipeRepo.ReplaceTags(recipe, tags); err != nil {
		logger.Error("Failed to replace recipe tags", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return nil, err
	}

	logger.Info("Recipe updated successfully", map[string]interface{}{
		"recipe_id": recipeID,
	})
	return s.recipeRepo.FindByID(recipeID)
}

func (s *recipeService) DeleteRecipe(userID, recipeID uint) error {
	logger.Info("Deleting recipe", map[string]interface{}{
		"recipe_id": recipeID,
		"user_id":   userID,
	})

	recipe, err := s.GetRecipeByID(recipeID)
	if err != nil {
		return err
	}

	if recipe.AuthorID != userID {
		logger.Warn("Delete rejected: user is not the author", map[string]interface{}{
			"recipe_id": recipeID,
			"user_id":   userID,
			"author_id": recipe.AuthorID,
		})
		return ErrNotRecipeAuthor
	}

	if err := s.recipeRepo.Delete(recipeID); err != nil {
		logger.Error("Failed to delete recipe", err, map[string]interface{}{
			"recipe_id": recipeID,
		})
		return err
	}

	logger.Info("Recipe deleted successfully", map[string]interface{}{
		"recipe_id": recipeID,
	})
	return nil
}

// validateInput checks the submitted fields and resolves ingredient and tag
// references against the catalog.
func (s *recipeService) validateInput(input RecipeInput) ([]model.RecipeIngredient, []model.Tag, error) {
	if input.CookingTime < model.MinCookingTime || input.CookingTime > model.MaxCookingTime {
		return nil, nil, ErrInvalidCookingTime
	}
	if len(input.Ingredients) == 0 {
		return nil, nil, ErrNoIngredients
	}

	seen := make(map[uint]bool, len(input.Ingredients))
	lineItems := make([]model.RecipeIngredient, 0, len(input.Ingredients))
	for _, in := range input.Ingredients {
		if seen[in.IngredientID] {
			return nil, nil, ErrDuplicateIngredient
		}
		seen[in.IngredientID] = true

		if in.Amount <= 0 {
			return nil, nil, ErrInvalidAmount
		}

		if _, err := s.ingredientRepo.FindByID(in.IngredientID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrIngredientNotFound
			}
			return nil, nil, err
		}

		lineItems = append(lineItems, model.RecipeIngredient{
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
		})
	}

	var tags []model.Tag
	if len(input.TagSlugs) > 0 {
		var err error
		tags, err = s.tagRepo.FindBySlugs(input.TagSlugs)
		if err != nil {
			return nil, nil, err
		}
		if len(tags) != len(input.TagSlugs) {
			return nil, nil, ErrTagNotFound
		}
	}

	return lineItems, tags, nil
}

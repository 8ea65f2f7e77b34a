package savedrecipe

import (
	"context"

	"github.com/BenHowl/ReceiptChef/domain"
)

type (
	SavedRecipeService interface {
		ListRecipes(ctx context.Context, userID string) ([]domain.Recipe, error)
		SaveRecipe(ctx context.Context, userID string, recipe domain.Recipe) error
		DeleteRecipe(ctx context.Context, userID string, recipeID string) error
		IsRecipeSaved(ctx context.Context, userID string, recipeID string) (bool, error)
	}

	savedRecipeService struct {
		savedRecipeRepository SavedRecipeRepository
	}
)

func NewSavedRecipeService(savedRecipeRepository SavedRecipeRepository) SavedRecipeService {
	return &savedRecipeService{savedRecipeRepository: savedRecipeRepository}
}

func (s *savedRecipeService) ListRecipes(ctx context.Context, userID string) ([]domain.Recipe, error) {
	saved, err := s.savedRecipeRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(saved))
	for _, entry := range saved {
		recipes = append(recipes, entry.Recipe)
	}
	return recipes, nil
}

// SaveRecipe enforces at most one saved entry per (user, recipe id); the
// uniqueness is checked by query, not a declared constraint.
func (s *savedRecipeService) SaveRecipe(ctx context.Context, userID string, recipe domain.Recipe) error {
	if recipe.ID == "" {
		return domain.ErrInvalidRecipe
	}

	exists, err := s.savedRecipeRepository.IsSaved(ctx, userID, recipe.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrRecipeAlreadySaved
	}

	return s.savedRecipeRepository.Save(ctx, userID, recipe)
}

func (s *savedRecipeService) DeleteRecipe(ctx context.Context, userID string, recipeID string) error {
	return s.savedRecipeRepository.Delete(ctx, userID, recipeID)
}

func (s *savedRecipeService) IsRecipeSaved(ctx context.Context, userID string, recipeID string) (bool, error) {
	return s.savedRecipeRepository.IsSaved(ctx, userID, recipeID)
}

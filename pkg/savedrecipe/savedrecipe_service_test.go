package savedrecipe

import (
	"context"
	"testing"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndListRecipes(t *testing.T) {
	service := NewSavedRecipeService(NewMemorySavedRecipeRepository())
	recipe := domain.Recipe{ID: "r1", Title: "Omelette", MealType: "breakfast"}

	require.NoError(t, service.SaveRecipe(context.Background(), domain.GuestUserID, recipe))

	recipes, err := service.ListRecipes(context.Background(), domain.GuestUserID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Omelette", recipes[0].Title)
}

func TestSaveRecipeRejectsDuplicate(t *testing.T) {
	service := NewSavedRecipeService(NewMemorySavedRecipeRepository())
	recipe := domain.Recipe{ID: "r1", Title: "Omelette"}

	require.NoError(t, service.SaveRecipe(context.Background(), domain.GuestUserID, recipe))

	err := service.SaveRecipe(context.Background(), domain.GuestUserID, recipe)
	require.ErrorIs(t, err, domain.ErrRecipeAlreadySaved)
}

func TestSaveRecipeRequiresID(t *testing.T) {
	service := NewSavedRecipeService(NewMemorySavedRecipeRepository())

	err := service.SaveRecipe(context.Background(), domain.GuestUserID, domain.Recipe{Title: "No ID"})
	require.ErrorIs(t, err, domain.ErrInvalidRecipe)
}

func TestSavedRecipesAreScopedToUser(t *testing.T) {
	service := NewSavedRecipeService(NewMemorySavedRecipeRepository())
	recipe := domain.Recipe{ID: "r1", Title: "Omelette"}

	require.NoError(t, service.SaveRecipe(context.Background(), "user-a", recipe))

	// same recipe id under a different user is not a duplicate
	require.NoError(t, service.SaveRecipe(context.Background(), "user-b", recipe))

	recipes, err := service.ListRecipes(context.Background(), "user-a")
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

func TestDeleteRecipe(t *testing.T) {
	service := NewSavedRecipeService(NewMemorySavedRecipeRepository())
	recipe := domain.Recipe{ID: "r1", Title: "Omelette"}

	require.NoError(t, service.SaveRecipe(context.Background(), domain.GuestUserID, recipe))
	require.NoError(t, service.DeleteRecipe(context.Background(), domain.GuestUserID, "r1"))

	saved, err := service.IsRecipeSaved(context.Background(), domain.GuestUserID, "r1")
	require.NoError(t, err)
	assert.False(t, saved)

	recipes, err := service.ListRecipes(context.Background(), domain.GuestUserID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestIsRecipeSaved(t *testing.T) {
	service := NewSavedRecipeService(NewMemorySavedRecipeRepository())

	saved, err := service.IsRecipeSaved(context.Background(), domain.GuestUserID, "r1")
	require.NoError(t, err)
	assert.False(t, saved)

	require.NoError(t, service.SaveRecipe(context.Background(), domain.GuestUserID, domain.Recipe{ID: "r1"}))

	saved, err = service.IsRecipeSaved(context.Background(), domain.GuestUserID, "r1")
	require.NoError(t, err)
	assert.True(t, saved)
}

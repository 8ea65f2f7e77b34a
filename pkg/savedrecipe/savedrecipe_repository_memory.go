package savedrecipe

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/google/uuid"
)

type memorySavedRecipeRepository struct {
	mu    sync.RWMutex
	saved map[string]domain.SavedRecipe
}

func NewMemorySavedRecipeRepository() SavedRecipeRepository {
	return &memorySavedRecipeRepository{saved: make(map[string]domain.SavedRecipe)}
}

func (r *memorySavedRecipeRepository) ListByUser(_ context.Context, userID string) ([]domain.SavedRecipe, error) {
	r.mu.RLock()
	saved := make([]domain.SavedRecipe, 0)
	for _, entry := range r.saved {
		if entry.UserID == userID {
			saved = append(saved, entry)
		}
	}
	r.mu.RUnlock()

	sort.Slice(saved, func(i, j int) bool {
		return saved[i].CreatedAt.Before(saved[j].CreatedAt)
	})
	return saved, nil
}

func (r *memorySavedRecipeRepository) Save(_ context.Context, userID string, recipe domain.Recipe) error {
	entry := domain.SavedRecipe{
		ID:        uuid.New().String(),
		UserID:    userID,
		Recipe:    recipe,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.saved[entry.ID] = entry
	r.mu.Unlock()
	return nil
}

func (r *memorySavedRecipeRepository) IsSaved(_ context.Context, userID string, recipeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.saved {
		if entry.UserID == userID && entry.Recipe.ID == recipeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memorySavedRecipeRepository) Delete(_ context.Context, userID string, recipeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.saved {
		if entry.UserID == userID && entry.Recipe.ID == recipeID {
			delete(r.saved, id)
		}
	}
	return nil
}

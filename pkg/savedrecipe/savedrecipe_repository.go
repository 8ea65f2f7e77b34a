package savedrecipe

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	SavedRecipeRepository interface {
		ListByUser(ctx context.Context, userID string) ([]domain.SavedRecipe, error)
		Save(ctx context.Context, userID string, recipe domain.Recipe) error
		IsSaved(ctx context.Context, userID string, recipeID string) (bool, error)
		Delete(ctx context.Context, userID string, recipeID string) error
	}

	savedRecipeRepository struct {
		db *gorm.DB
	}
)

func NewSavedRecipeRepository(db *gorm.DB) SavedRecipeRepository {
	return &savedRecipeRepository{db: db}
}

func (r *savedRecipeRepository) ListByUser(ctx context.Context, userID string) ([]domain.SavedRecipe, error) {
	var rows []*entities.SavedRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	saved := make([]domain.SavedRecipe, 0, len(rows))
	for _, row := range rows {
		var recipe domain.Recipe
		if err := json.Unmarshal([]byte(row.Recipe), &recipe); err != nil {
			continue
		}
		saved = append(saved, domain.SavedRecipe{
			ID:        row.ID.String(),
			UserID:    row.UserID,
			Recipe:    recipe,
			CreatedAt: row.CreatedAt,
		})
	}
	return saved, nil
}

func (r *savedRecipeRepository) Save(ctx context.Context, userID string, recipe domain.Recipe) error {
	raw, err := json.Marshal(recipe)
	if err != nil {
		return err
	}

	row := entities.SavedRecipe{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipe.ID,
		Recipe:    string(raw),
		CreatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *savedRecipeRepository) IsSaved(ctx context.Context, userID string, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *savedRecipeRepository) Delete(ctx context.Context, userID string, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.SavedRecipe{}).Error
}

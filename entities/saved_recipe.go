package entities

import (
	"time"

	"github.com/google/uuid"
)

type SavedRecipe struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   string    `gorm:"index" json:"user_id"`
	RecipeID string    `gorm:"index" json:"recipe_id"`
	// JSON-encoded domain.Recipe as submitted by the client
	Recipe    string    `json:"recipe" gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

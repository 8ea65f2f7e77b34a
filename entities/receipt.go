package entities

import (
	"github.com/google/uuid"
)

type Receipt struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ImageURL string    `json:"image_url"`
	// JSON-encoded []string and []domain.MealPlan respectively
	Ingredients string `json:"ingredients,omitempty" gorm:"type:jsonb;default:'[]'"`
	MealPlans   string `json:"meal_plans,omitempty" gorm:"type:jsonb;default:'[]'"`

	Timestamp
}

package domain

import (
	"errors"
)

var (
	MessageFailedScanFridge        = "Failed to scan fridge"
	MessageFailedGenerateMealPlans = "Failed to generate meal plans"
	MessageFailedShareMealPlans    = "Failed to share meal plans"
	MessageInvalidIngredientList   = "Invalid ingredient list"

	ErrExtractionFailed    = errors.New("failed to extract ingredients from image")
	ErrGenerationFailed    = errors.New("failed to generate recipes from ingredients")
	ErrEmptyIngredientList = errors.New("ingredient list must not be empty")
	ErrBlankIngredient     = errors.New("ingredients must not be blank")
	ErrMailNotConfigured   = errors.New("mail transport not configured")
)

type (
	// Recipe mirrors the JSON shape the model is instructed to emit. Every
	// field is model-produced and trusted as-is.
	Recipe struct {
		ID           string   `json:"id"`
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Ingredients  []string `json:"ingredients"`
		Instructions []string `json:"instructions"`
		CookingTime  int      `json:"cookingTime"` // minutes
		Servings     int      `json:"servings"`
		Difficulty   string   `json:"difficulty"` // easy | medium | hard
		MealType     string   `json:"mealType"`   // breakfast | lunch | dinner | snack
		Image        string   `json:"image,omitempty"`
	}

	MealPlan struct {
		ID          string   `json:"id"`
		Day         string   `json:"day"`
		Recipes     []Recipe `json:"recipes"`
		GeneratedAt string   `json:"generatedAt"`
	}

	ScanFridgeRequest struct {
		Base64Image string `json:"base64Image" validate:"required"`
	}

	ScanFridgeResponse struct {
		Ingredients []string `json:"ingredients"`
	}

	GenerateMealPlansRequest struct {
		Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
	}

	GenerateMealPlansResponse struct {
		MealPlans []MealPlan `json:"mealPlans"`
	}

	ShareMealPlansRequest struct {
		Email     string `json:"email" validate:"required,email"`
		ReceiptID string `json:"receipt_id" validate:"required,uuid"`
	}
)

package domain

import (
	"errors"
	"time"
)

var (
	MessageFailedGetSavedRecipes   = "Failed to fetch saved recipes"
	MessageFailedSaveRecipe        = "Failed to save recipe"
	MessageFailedDeleteSavedRecipe = "Failed to delete recipe"
	MessageFailedRecipeStatus      = "Failed to check recipe status"
	MessageRecipeRequired          = "Valid recipe required"
	MessageRecipeIDRequired        = "Recipe ID required"
	MessageRecipeAlreadySaved      = "Recipe already saved"

	ErrRecipeAlreadySaved = errors.New("recipe already saved")
	ErrInvalidRecipe      = errors.New("recipe is missing an id")
)

type (
	SavedRecipe struct {
		ID        string    `json:"id"`
		UserID    string    `json:"userId"`
		Recipe    Recipe    `json:"recipe"`
		CreatedAt time.Time `json:"createdAt"`
	}

	SavedRecipeStatusResponse struct {
		Saved bool `json:"saved"`
	}
)

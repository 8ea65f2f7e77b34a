package domain

import (
	"errors"
	"time"
)

var (
	MessageFailedCreateReceipt  = "Failed to create receipt"
	MessageFailedGetReceipt     = "Failed to get receipt"
	MessageFailedGetReceipts    = "Failed to get receipts"
	MessageFailedProcessReceipt = "Failed to process receipt"
	MessageFailedProcessImage   = "Failed to process image"
	MessageFailedUploadURL      = "Failed to get upload URL"
	MessageFailedUploadImage    = "Failed to upload image"
	MessageReceiptNotFound      = "Receipt not found"
	MessageInvalidReceiptData   = "Invalid data"
	MessageNoIngredientsYet     = "Receipt has no ingredients yet"
	MessageImageRequired        = "base64Image is required"

	ErrReceiptNotFound     = errors.New("receipt not found")
	ErrReceiptImageFetch   = errors.New("failed to fetch receipt image")
	ErrReceiptNoIngredient = errors.New("receipt has no extracted ingredients")
)

type (
	// Receipt is the stored unit of work for one uploaded photo and
	// everything derived from it.
	Receipt struct {
		ID          string     `json:"id"`
		ImageURL    string     `json:"imageUrl"`
		Ingredients []string   `json:"ingredients"`
		MealPlans   []MealPlan `json:"mealPlans"`
		CreatedAt   time.Time  `json:"createdAt"`
	}

	// ReceiptUpdate carries the partial fields merged into an existing
	// record; nil means "leave as-is".
	ReceiptUpdate struct {
		Ingredients *[]string   `json:"ingredients,omitempty"`
		MealPlans   *[]MealPlan `json:"mealPlans,omitempty"`
	}

	CreateReceiptRequest struct {
		ImageURL string `json:"imageUrl" validate:"required"`
	}

	ProcessBase64Request struct {
		Base64Image string `json:"base64Image" validate:"required"`
	}

	ProcessBase64Response struct {
		ID          string     `json:"id"`
		Ingredients []string   `json:"ingredients"`
		MealPlans   []MealPlan `json:"mealPlans"`
		CreatedAt   time.Time  `json:"createdAt"`
	}

	UploadURLResponse struct {
		UploadURL    string `json:"uploadURL"`
		ReadablePath string `json:"readablePath"`
	}

	DirectUploadRequest struct {
		File        string `json:"file" validate:"required"`
		ContentType string `json:"contentType"`
	}

	DirectUploadResponse struct {
		URL         string `json:"url"`
		DownloadURL string `json:"downloadUrl"`
	}
)

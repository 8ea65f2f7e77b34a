package vision

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/pkg/openai"
	"github.com/gofiber/fiber/v2/log"
)

// PromptVariant selects the instruction set for the photo being analyzed.
type PromptVariant string

const (
	VariantReceipt PromptVariant = "receipt"
	VariantFridge  PromptVariant = "fridge"
)

const (
	receiptSystemPrompt = "You are an expert at analyzing grocery receipts. " +
		"Extract all food ingredients from the receipt image. Return only a JSON object " +
		"with an 'ingredients' array containing the food items. Focus on actual food " +
		"ingredients, not non-food items like paper towels or cleaning supplies."

	receiptUserPrompt = "Please analyze this grocery receipt and extract all the food " +
		"ingredients. Return a JSON object with an 'ingredients' array."

	fridgeSystemPrompt = "You inspect refrigerator photos and list groceries you can " +
		"clearly identify. Return only JSON with an 'ingredients' array describing " +
		"distinct food items. Use generic ingredient names, combine duplicate items, " +
		"and skip anything you can't confidently recognize or that's not edible."

	fridgeUserPrompt = "Look at this fridge photo and list every edible ingredient. " +
		"Return JSON only."
)

type (
	VisionService interface {
		ExtractIngredients(ctx context.Context, base64Image string, variant PromptVariant) ([]string, error)
	}

	visionService struct {
		client *openai.Client
	}
)

func NewVisionService(client *openai.Client) VisionService {
	return &visionService{client: client}
}

func (s *visionService) ExtractIngredients(ctx context.Context, base64Image string, variant PromptVariant) ([]string, error) {
	if s.client == nil {
		return nil, domain.ErrOpenAIKeyNotConfigured
	}

	systemPrompt, userPrompt := receiptSystemPrompt, receiptUserPrompt
	if variant == VariantFridge {
		systemPrompt, userPrompt = fridgeSystemPrompt, fridgeUserPrompt
	}

	resp, err := openai.WithFallback(ctx, s.client.Models(),
		func(ctx context.Context, model string) (openai.ChatResponse, error) {
			return s.client.CreateChatCompletion(ctx, openai.ChatRequest{
				Model: model,
				Messages: []openai.Message{
					{Role: "system", Content: systemPrompt},
					{Role: "user", Content: []openai.ContentPart{
						{Type: "text", Text: userPrompt},
						{Type: "image_url", ImageURL: &openai.ImageURL{
							URL: fmt.Sprintf("data:image/jpeg;base64,%s", base64Image),
						}},
					}},
				},
				MaxTokens:      1000,
				ResponseFormat: &openai.ResponseFormat{Type: "json_object"},
			})
		})
	if err != nil {
		log.Errorf("error extracting ingredients: %v", err)
		return nil, domain.ErrExtractionFailed
	}

	return parseIngredients(resp.Content()), nil
}

// parseIngredients decodes the model's JSON content. Malformed output or a
// missing field yields an empty list, never an error.
func parseIngredients(content string) []string {
	var result struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		log.Warnf("unparseable extraction output, defaulting to no ingredients: %v", err)
		return []string{}
	}
	if result.Ingredients == nil {
		return []string{}
	}
	return result.Ingredients
}

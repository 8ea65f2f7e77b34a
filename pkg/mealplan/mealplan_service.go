package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/pkg/openai"
	"github.com/gofiber/fiber/v2/log"
)

const generationSystemPrompt = `You are a professional chef and meal planning expert. Create personalized meal plans using the provided ingredients. Generate 3 different meal plans for different days, each containing breakfast, lunch, and dinner recipes.

Return a JSON object with this structure:
{
  "mealPlans": [
    {
      "id": "unique-id",
      "day": "Day 1",
      "recipes": [
        {
          "id": "unique-id",
          "title": "Recipe Name",
          "description": "Brief description",
          "ingredients": ["ingredient1", "ingredient2"],
          "instructions": ["step1", "step2"],
          "cookingTime": 30,
          "servings": 4,
          "difficulty": "easy",
          "mealType": "breakfast"
        }
      ],
      "generatedAt": "2025-09-12T19:00:00.000Z"
    }
  ]
}

Make sure each meal plan has exactly 3 recipes (breakfast, lunch, dinner). Use as many of the provided ingredients as possible across all recipes. Be creative and practical.`

type (
	// SendMailFunc matches mailing.SendMail so tests can swap the transport.
	SendMailFunc func(toEmail string, subject string, body string) error

	MealPlanService interface {
		GenerateMealPlans(ctx context.Context, ingredients []string) ([]domain.MealPlan, error)
		ShareMealPlans(ctx context.Context, toEmail string, receipt domain.Receipt) error
	}

	mealPlanService struct {
		client   *openai.Client
		sendMail SendMailFunc
	}
)

func NewMealPlanService(client *openai.Client, sendMail SendMailFunc) MealPlanService {
	return &mealPlanService{client: client, sendMail: sendMail}
}

func (s *mealPlanService) GenerateMealPlans(ctx context.Context, ingredients []string) ([]domain.MealPlan, error) {
	if s.client == nil {
		return nil, domain.ErrOpenAIKeyNotConfigured
	}

	if len(ingredients) == 0 {
		return nil, domain.ErrEmptyIngredientList
	}
	for _, ingredient := range ingredients {
		if strings.TrimSpace(ingredient) == "" {
			return nil, domain.ErrBlankIngredient
		}
	}

	resp, err := openai.WithFallback(ctx, s.client.Models(),
		func(ctx context.Context, model string) (openai.ChatResponse, error) {
			return s.client.CreateChatCompletion(ctx, openai.ChatRequest{
				Model: model,
				Messages: []openai.Message{
					{Role: "system", Content: generationSystemPrompt},
					{Role: "user", Content: fmt.Sprintf(
						"Generate meal plans using these ingredients: %s",
						strings.Join(ingredients, ", "),
					)},
				},
				MaxTokens:      3000,
				ResponseFormat: &openai.ResponseFormat{Type: "json_object"},
			})
		})
	if err != nil {
		log.Errorf("error generating meal plans: %v", err)
		return nil, domain.ErrGenerationFailed
	}

	return parseMealPlans(resp.Content()), nil
}

// parseMealPlans decodes the model's JSON content. Malformed output or a
// missing field yields an empty list. The 3-recipes-per-plan instruction is
// advisory; a deviating plan is logged and kept.
func parseMealPlans(content string) []domain.MealPlan {
	var result struct {
		MealPlans []domain.MealPlan `json:"mealPlans"`
	}
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		log.Warnf("unparseable generation output, defaulting to no meal plans: %v", err)
		return []domain.MealPlan{}
	}
	if result.MealPlans == nil {
		return []domain.MealPlan{}
	}

	for _, plan := range result.MealPlans {
		if len(plan.Recipes) != 3 {
			log.Warnf("meal plan %q has %d recipes instead of 3", plan.Day, len(plan.Recipes))
		}
	}
	return result.MealPlans
}

func (s *mealPlanService) ShareMealPlans(ctx context.Context, toEmail string, receipt domain.Receipt) error {
	if s.sendMail == nil {
		return domain.ErrMailNotConfigured
	}

	subject := "Your ReceiptChef meal plans"
	return s.sendMail(toEmail, subject, buildShareBody(receipt))
}

func buildShareBody(receipt domain.Receipt) string {
	var b strings.Builder
	b.WriteString("<h1>Your meal plans</h1>")
	if len(receipt.Ingredients) > 0 {
		b.WriteString(fmt.Sprintf("<p>From your ingredients: %s</p>",
			strings.Join(receipt.Ingredients, ", ")))
	}
	for _, plan := range receipt.MealPlans {
		b.WriteString(fmt.Sprintf("<h2>%s</h2><ul>", plan.Day))
		for _, recipe := range plan.Recipes {
			b.WriteString(fmt.Sprintf("<li><strong>%s</strong> (%s, %d min, serves %d): %s</li>",
				recipe.Title, recipe.MealType, recipe.CookingTime, recipe.Servings, recipe.Description))
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

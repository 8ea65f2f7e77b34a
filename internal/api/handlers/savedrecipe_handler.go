package handlers

import (
	"errors"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/internal/api/presenters"
	"github.com/BenHowl/ReceiptChef/pkg/savedrecipe"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	SavedRecipeHandler interface {
		GetSavedRecipes(c *fiber.Ctx) error
		SaveRecipe(c *fiber.Ctx) error
		DeleteSavedRecipe(c *fiber.Ctx) error
		GetRecipeStatus(c *fiber.Ctx) error
	}

	savedRecipeHandler struct {
		savedRecipeService savedrecipe.SavedRecipeService
		validator          *validator.Validate
	}
)

func NewSavedRecipeHandler(
	savedRecipeService savedrecipe.SavedRecipeService,
	validator *validator.Validate,
) SavedRecipeHandler {
	return &savedRecipeHandler{
		savedRecipeService: savedRecipeService,
		validator:          validator,
	}
}

func (h *savedRecipeHandler) GetSavedRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.savedRecipeService.ListRecipes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetSavedRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *savedRecipeHandler) SaveRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.Recipe)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.savedRecipeService.SaveRecipe(c.Context(), userID, *req); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRecipe):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageRecipeRequired, err)
		case errors.Is(err, domain.ErrRecipeAlreadySaved):
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageRecipeAlreadySaved, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedSaveRecipe, err)
		}
	}

	return presenters.SuccessResponse(c, *req, fiber.StatusCreated)
}

func (h *savedRecipeHandler) DeleteSavedRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipeId")

	if recipeID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageRecipeIDRequired, nil)
	}

	if err := h.savedRecipeService.DeleteRecipe(c.Context(), userID, recipeID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteSavedRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"success": true}, fiber.StatusOK)
}

func (h *savedRecipeHandler) GetRecipeStatus(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("recipeId")

	saved, err := h.savedRecipeService.IsRecipeSaved(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRecipeStatus, err)
	}

	return presenters.SuccessResponse(c, domain.SavedRecipeStatusResponse{Saved: saved}, fiber.StatusOK)
}

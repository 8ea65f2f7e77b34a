package handlers

import (
	"errors"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/internal/api/presenters"
	"github.com/BenHowl/ReceiptChef/pkg/mealplan"
	"github.com/BenHowl/ReceiptChef/pkg/receipt"
	"github.com/BenHowl/ReceiptChef/pkg/vision"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MealPlanHandler interface {
		ScanFridge(c *fiber.Ctx) error
		GenerateMealPlans(c *fiber.Ctx) error
		ShareMealPlans(c *fiber.Ctx) error
	}

	mealPlanHandler struct {
		visionService   vision.VisionService
		mealPlanService mealplan.MealPlanService
		receiptService  receipt.ReceiptService
		validator       *validator.Validate
	}
)

func NewMealPlanHandler(
	visionService vision.VisionService,
	mealPlanService mealplan.MealPlanService,
	receiptService receipt.ReceiptService,
	validator *validator.Validate,
) MealPlanHandler {
	return &mealPlanHandler{
		visionService:   visionService,
		mealPlanService: mealPlanService,
		receiptService:  receiptService,
		validator:       validator,
	}
}

func (h *mealPlanHandler) ScanFridge(c *fiber.Ctx) error {
	req := new(domain.ScanFridgeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageImageRequired, err)
	}

	ingredients, err := h.visionService.ExtractIngredients(c.Context(), req.Base64Image, vision.VariantFridge)
	if err != nil {
		if errors.Is(err, domain.ErrOpenAIKeyNotConfigured) {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageOpenAIKeyNotConfigured, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedScanFridge, err)
	}

	return presenters.SuccessResponse(c, domain.ScanFridgeResponse{Ingredients: ingredients}, fiber.StatusOK)
}

func (h *mealPlanHandler) GenerateMealPlans(c *fiber.Ctx) error {
	req := new(domain.GenerateMealPlansRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidIngredientList, err)
	}

	mealPlans, err := h.mealPlanService.GenerateMealPlans(c.Context(), req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyIngredientList), errors.Is(err, domain.ErrBlankIngredient):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidIngredientList, err)
		case errors.Is(err, domain.ErrOpenAIKeyNotConfigured):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageOpenAIKeyNotConfigured, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGenerateMealPlans, err)
		}
	}

	return presenters.SuccessResponse(c, domain.GenerateMealPlansResponse{MealPlans: mealPlans}, fiber.StatusOK)
}

func (h *mealPlanHandler) ShareMealPlans(c *fiber.Ctx) error {
	req := new(domain.ShareMealPlansRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareMealPlans, err)
	}

	res, err := h.receiptService.GetReceipt(c.Context(), req.ReceiptID)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageReceiptNotFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedShareMealPlans, err)
	}

	if err := h.mealPlanService.ShareMealPlans(c.Context(), req.Email, res); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedShareMealPlans, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"success": true}, fiber.StatusOK)
}

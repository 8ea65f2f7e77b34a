package handlers

import (
	"strconv"
	"strings"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/internal/api/presenters"
	"github.com/BenHowl/ReceiptChef/pkg/affiliate"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AffiliateHandler interface {
		GetProducts(c *fiber.Ctx) error
		TrackClick(c *fiber.Ctx) error
	}

	affiliateHandler struct {
		affiliateService affiliate.AffiliateService
		validator        *validator.Validate
	}
)

func NewAffiliateHandler(affiliateService affiliate.AffiliateService, validator *validator.Validate) AffiliateHandler {
	return &affiliateHandler{
		affiliateService: affiliateService,
		validator:        validator,
	}
}

func (h *affiliateHandler) GetProducts(c *fiber.Ctx) error {
	query := domain.AffiliateQuery{
		Context:    c.Query("context", domain.AffiliateContextGeneral),
		RecipeType: c.Query("recipeType"),
	}

	if raw := c.Query("ingredients"); raw != "" {
		for _, ingredient := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(ingredient); trimmed != "" {
				query.Ingredients = append(query.Ingredients, trimmed)
			}
		}
	}

	if raw := c.Query("maxItems"); raw != "" {
		if maxItems, err := strconv.Atoi(raw); err == nil {
			query.MaxItems = maxItems
		}
	}

	// POST requests may carry the recipes being viewed for need analysis.
	if c.Method() == fiber.MethodPost {
		body := new(struct {
			Recipes []domain.Recipe `json:"recipes"`
		})
		if err := c.BodyParser(body); err == nil {
			query.Recipes = body.Recipes
		}
	}

	res, err := h.affiliateService.GetProducts(c.Context(), query)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetProducts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *affiliateHandler) TrackClick(c *fiber.Ctx) error {
	req := new(domain.TrackClickRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageProductIDRequired, err)
	}

	if err := h.affiliateService.TrackClick(c.Context(), req.ProductID, req.Context); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedTrackClick, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"success": true}, fiber.StatusOK)
}

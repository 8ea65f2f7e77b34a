package handlers

import (
	"errors"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/internal/api/presenters"
	"github.com/BenHowl/ReceiptChef/pkg/receipt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		CreateReceipt(c *fiber.Ctx) error
		GetReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		ProcessReceipt(c *fiber.Ctx) error
		GetReceiptMealPlan(c *fiber.Ctx) error
		ProcessBase64(c *fiber.Ctx) error
		UploadReceipt(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func (h *receiptHandler) CreateReceipt(c *fiber.Ctx) error {
	req := new(domain.CreateReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageInvalidReceiptData, err)
	}

	res, err := h.receiptService.CreateReceipt(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *receiptHandler) GetReceipt(c *fiber.Ctx) error {
	res, err := h.receiptService.GetReceipt(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrReceiptNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageReceiptNotFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	res, err := h.receiptService.ListReceipts(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *receiptHandler) ProcessReceipt(c *fiber.Ctx) error {
	res, err := h.receiptService.ProcessReceipt(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReceiptNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageReceiptNotFound, err)
		case errors.Is(err, domain.ErrReceiptImageFetch):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedProcessReceipt, err)
		case errors.Is(err, domain.ErrOpenAIKeyNotConfigured):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageOpenAIKeyNotConfigured, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessReceipt, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

// GetReceiptMealPlan regenerates meal plans from the receipt's stored
// ingredients on every call.
func (h *receiptHandler) GetReceiptMealPlan(c *fiber.Ctx) error {
	res, err := h.receiptService.RegenerateMealPlans(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReceiptNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageReceiptNotFound, err)
		case errors.Is(err, domain.ErrReceiptNoIngredient):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageNoIngredientsYet, err)
		case errors.Is(err, domain.ErrOpenAIKeyNotConfigured):
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageOpenAIKeyNotConfigured, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGenerateMealPlans, err)
		}
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *receiptHandler) ProcessBase64(c *fiber.Ctx) error {
	req := new(domain.ProcessBase64Request)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageImageRequired, err)
	}

	res, err := h.receiptService.ProcessBase64(c.Context(), req.Base64Image)
	if err != nil {
		if errors.Is(err, domain.ErrOpenAIKeyNotConfigured) {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageOpenAIKeyNotConfigured, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessImage, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

// UploadReceipt either presigns an upload slot or, when the body carries a
// base64 file, stores it directly and returns the public link.
func (h *receiptHandler) UploadReceipt(c *fiber.Ctx) error {
	req := new(domain.DirectUploadRequest)
	if err := c.BodyParser(req); err == nil && req.File != "" {
		res, err := h.receiptService.DirectUpload(c.Context(), *req)
		if err != nil {
			if errors.Is(err, domain.ErrStorageNotConfigured) {
				return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageStorageNotConfigured, err)
			}
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadImage, err)
		}
		return presenters.SuccessResponse(c, res, fiber.StatusOK)
	}

	res, err := h.receiptService.PresignUpload(c.Context(), c.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, domain.ErrStorageNotConfigured) {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageStorageNotConfigured, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedUploadURL, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

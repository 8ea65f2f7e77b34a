package handlers

import (
	"errors"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/internal/api/presenters"
	"github.com/BenHowl/ReceiptChef/internal/utils/storage"
	"github.com/gofiber/fiber/v2"
)

type (
	ObjectHandler interface {
		GetObject(c *fiber.Ctx) error
	}

	objectHandler struct {
		s3 storage.AwsS3 // nil when storage is not configured
	}
)

func NewObjectHandler(s3 storage.AwsS3) ObjectHandler {
	return &objectHandler{s3: s3}
}

// GetObject streams a stored image back to the client by object key.
func (h *objectHandler) GetObject(c *fiber.Ctx) error {
	if h.s3 == nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageStorageNotConfigured, domain.ErrStorageNotConfigured)
	}

	objectKey := c.Params("+")
	data, contentType, err := h.s3.GetObject(c.Context(), objectKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, "Object not found", err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
	}

	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Status(fiber.StatusOK).Send(data)
}

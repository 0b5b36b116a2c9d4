package handlers

import (
	"errors"
	"fmt"

	"quill/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps an apperrors sentinel to an HTTP status and writes the
// error body. Anything outside the taxonomy is a 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrSelfDeletion):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// respondValidationErrors writes a 400 with a per-field error map, the
// shape the admin forms consume.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return respondError(c, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation))
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/dairydash/internal/apperrors"
)

// ErrorHandler maps application errors to HTTP responses. Plugged into
// fiber.Config so handlers can return apperrors values directly.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
		conflictErr   *apperrors.ConflictError
		storageErr    *apperrors.StorageError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		status = fiber.StatusBadRequest
		message = validationErr.Message
	case errors.As(err, &notFoundErr):
		status = fiber.StatusNotFound
		message = notFoundErr.Message
	case errors.As(err, &conflictErr):
		status = fiber.StatusConflict
		message = conflictErr.Message
	case errors.As(err, &storageErr):
		status = fiber.StatusInternalServerError
		message = "storage failure"
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

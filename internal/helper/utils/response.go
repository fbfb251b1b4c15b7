package utils

import (
	"errors"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"message": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(data)
}

// ResponseFromError maps the domain error taxonomy onto HTTP status codes,
// one mapping for every handler so nearly-identical paths cannot drift.
func ResponseFromError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return ResponseError(ctx, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		return ResponseError(ctx, fiber.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalid):
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		return ResponseError(ctx, fiber.StatusBadGateway, err.Error())
	default:
		return ResponseError(ctx, fiber.StatusInternalServerError, "unexpected error")
	}
}

package middleware

import (
	"strings"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/helper/utils"
	"github.com/ScholarStream/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AuthRequired verifies the bearer token and stores the resolved user in
// ctx.Locals("user") for handlers and the role guards below.
func AuthRequired(userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := strings.TrimSpace(ctx.Get("Authorization"))
		if token == "" {
			token = strings.TrimSpace(ctx.Cookies("access_token"))
		}
		if token == "" {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
		}

		user, err := userSvc.ResolveToken(ctx.Context(), token)
		if err != nil {
			return utils.ResponseFromError(ctx, err)
		}

		ctx.Locals("user", user)
		return ctx.Next()
	}
}

func ModeratorOnly() fiber.Handler {
	return requireRole(domain.RoleModerator)
}

func AdminOnly() fiber.Handler {
	return requireRole(domain.RoleAdmin)
}

func requireRole(min domain.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, ok := ctx.Locals("user").(*domain.User)
		if !ok || user == nil {
			return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
		}
		if !user.Role.AtLeast(min) {
			return utils.ResponseError(ctx, fiber.StatusForbidden, "access denied")
		}
		return ctx.Next()
	}
}

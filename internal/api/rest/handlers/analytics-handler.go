package handlers

import (
	"github.com/ScholarStream/scholarship_service/internal/api/rest/middleware"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/helper/utils"
	"github.com/ScholarStream/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	svc     services.AnalyticsService
	userSvc services.UserService
	auth    helper.Auth
}

func NewAnalyticsHandler(svc services.AnalyticsService, userSvc services.UserService, auth helper.Auth) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, userSvc: userSvc, auth: auth}
}

func (h *AnalyticsHandler) SetupRoutes(api fiber.Router) {
	api.Get("/analytics", middleware.AuthRequired(h.userSvc), middleware.AdminOnly(), h.Overview)
}

func (h *AnalyticsHandler) Overview(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	res, err := h.svc.Overview(ctx.Context(), actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

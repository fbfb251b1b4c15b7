package handlers

import (
	"github.com/ScholarStream/scholarship_service/internal/api/rest/middleware"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/helper/utils"
	"github.com/ScholarStream/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ScholarshipHandler struct {
	svc     services.ScholarshipService
	userSvc services.UserService
	auth    helper.Auth
}

func NewScholarshipHandler(svc services.ScholarshipService, userSvc services.UserService, auth helper.Auth) *ScholarshipHandler {
	return &ScholarshipHandler{svc: svc, userSvc: userSvc, auth: auth}
}

func (h *ScholarshipHandler) SetupRoutes(api fiber.Router) {
	scholarships := api.Group("/scholarships")

	// browsing is public
	scholarships.Get("/", h.List)
	scholarships.Get("/top", h.Top)
	scholarships.Get("/:scholarshipID", h.Get)

	admin := scholarships.Group("", middleware.AuthRequired(h.userSvc), middleware.AdminOnly())
	admin.Post("/", h.Create)
	admin.Patch("/:scholarshipID", h.Update)
	admin.Delete("/:scholarshipID", h.Delete)
}

func (h *ScholarshipHandler) List(ctx *fiber.Ctx) error {
	var q dto.ScholarshipListQuery
	if err := ctx.QueryParser(&q); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := h.svc.List(ctx.Context(), q)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *ScholarshipHandler) Top(ctx *fiber.Ctx) error {
	scholarships, err := h.svc.Top(ctx.Context())
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, scholarships)
}

func (h *ScholarshipHandler) Get(ctx *fiber.Ctx) error {
	scholarship, err := h.svc.Get(ctx.Context(), ctx.Params("scholarshipID"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, scholarship)
}

func (h *ScholarshipHandler) Create(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateScholarshipRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	scholarship, err := h.svc.Create(ctx.Context(), actor, req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, scholarship)
}

func (h *ScholarshipHandler) Update(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.UpdateScholarshipRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	scholarship, err := h.svc.Update(ctx.Context(), actor, ctx.Params("scholarshipID"), req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, scholarship)
}

func (h *ScholarshipHandler) Delete(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.svc.Delete(ctx.Context(), actor, ctx.Params("scholarshipID")); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "scholarship deleted"})
}

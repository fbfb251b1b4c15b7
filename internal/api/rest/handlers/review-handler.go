package handlers

import (
	"github.com/ScholarStream/scholarship_service/internal/api/rest/middleware"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/helper/utils"
	"github.com/ScholarStream/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	svc     services.ReviewService
	userSvc services.UserService
	auth    helper.Auth
}

func NewReviewHandler(svc services.ReviewService, userSvc services.UserService, auth helper.Auth) *ReviewHandler {
	return &ReviewHandler{svc: svc, userSvc: userSvc, auth: auth}
}

func (h *ReviewHandler) SetupRoutes(api fiber.Router) {
	reviews := api.Group("/reviews")

	reviews.Get("/scholarship/:scholarshipID", h.ListByScholarship)

	authed := reviews.Group("", middleware.AuthRequired(h.userSvc))
	authed.Post("/", h.Create)
	authed.Get("/my", h.ListMine)
	authed.Get("/", middleware.ModeratorOnly(), h.ListAll)
	authed.Get("/:reviewID", h.Get)
	authed.Patch("/:reviewID", h.Update)
	authed.Delete("/:reviewID", h.Delete)
}

func (h *ReviewHandler) Create(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	review, err := h.svc.Create(ctx.Context(), actor, req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, dto.ReviewEnvelope{
		Message: "review submitted",
		Review:  review,
	})
}

func (h *ReviewHandler) ListByScholarship(ctx *fiber.Ctx) error {
	reviews, err := h.svc.ListByScholarship(ctx.Context(), ctx.Params("scholarshipID"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reviews)
}

func (h *ReviewHandler) ListMine(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	reviews, err := h.svc.ListMine(ctx.Context(), actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reviews)
}

func (h *ReviewHandler) ListAll(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	reviews, err := h.svc.ListAll(ctx.Context(), actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, reviews)
}

func (h *ReviewHandler) Get(ctx *fiber.Ctx) error {
	review, err := h.svc.Get(ctx.Context(), ctx.Params("reviewID"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, review)
}

func (h *ReviewHandler) Update(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.UpdateReviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	review, err := h.svc.Update(ctx.Context(), actor, ctx.Params("reviewID"), req)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ReviewEnvelope{
		Message: "review updated",
		Review:  review,
	})
}

func (h *ReviewHandler) Delete(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.svc.Delete(ctx.Context(), actor, ctx.Params("reviewID")); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "review deleted"})
}

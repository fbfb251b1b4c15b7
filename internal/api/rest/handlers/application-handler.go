package handlers

import (
	"github.com/ScholarStream/scholarship_service/internal/api/rest/middleware"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/helper/utils"
	"github.com/ScholarStream/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	svc      services.ApplicationService
	payments services.PaymentService
	userSvc  services.UserService
	auth     helper.Auth
}

func NewApplicationHandler(svc services.ApplicationService, payments services.PaymentService, userSvc services.UserService, auth helper.Auth) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, payments: payments, userSvc: userSvc, auth: auth}
}

func (h *ApplicationHandler) SetupRoutes(api fiber.Router) {
	apps := api.Group("/applications", middleware.AuthRequired(h.userSvc))

	apps.Post("/", h.Create)
	apps.Get("/mine", h.ListMine)
	apps.Get("/", middleware.ModeratorOnly(), h.ListAll)
	apps.Get("/:applicationID", h.Get)
	apps.Patch("/:applicationID/status", middleware.ModeratorOnly(), h.SetStatus)
	apps.Patch("/:applicationID/feedback", middleware.ModeratorOnly(), h.SetFeedback)
	apps.Patch("/:applicationID/payment", h.ConfirmPayment)
	apps.Delete("/:applicationID", h.Delete)
}

func (h *ApplicationHandler) Create(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateApplicationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	app, err := h.svc.Create(ctx.Context(), actor, req.ScholarshipID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, dto.ApplicationEnvelope{
		Message:     "application submitted",
		Application: app,
	})
}

func (h *ApplicationHandler) ListMine(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	apps, err := h.svc.ListMine(ctx.Context(), actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, apps)
}

func (h *ApplicationHandler) ListAll(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	apps, err := h.svc.ListAll(ctx.Context(), actor)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, apps)
}

func (h *ApplicationHandler) Get(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	app, err := h.svc.Get(ctx.Context(), actor, ctx.Params("applicationID"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, app)
}

func (h *ApplicationHandler) SetStatus(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.SetApplicationStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	app, err := h.svc.SetStatus(ctx.Context(), actor, ctx.Params("applicationID"), req.ApplicationStatus)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ApplicationEnvelope{
		Message:     "application status updated",
		Application: app,
	})
}

func (h *ApplicationHandler) SetFeedback(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.SetFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	app, err := h.svc.SetFeedback(ctx.Context(), actor, ctx.Params("applicationID"), req.Feedback)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ApplicationEnvelope{
		Message:     "feedback saved",
		Application: app,
	})
}

// ConfirmPayment is the legacy payment path. The body carries a provider
// intent reference and the update still goes through the reconciler, so a
// client cannot write paymentStatus directly.
func (h *ApplicationHandler) ConfirmPayment(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.ConfirmPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	app, err := h.payments.ConfirmSuccess(ctx.Context(), actor, ctx.Params("applicationID"), req.PaymentIntentID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ApplicationEnvelope{
		Message:     "payment recorded",
		Application: app,
	})
}

func (h *ApplicationHandler) Delete(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	if err := h.svc.Delete(ctx.Context(), actor, ctx.Params("applicationID")); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "application deleted"})
}

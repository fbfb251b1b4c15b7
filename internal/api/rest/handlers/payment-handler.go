package handlers

import (
	"github.com/ScholarStream/scholarship_service/internal/api/rest/middleware"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/helper/utils"
	"github.com/ScholarStream/scholarship_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	svc     services.PaymentService
	userSvc services.UserService
	auth    helper.Auth
}

func NewPaymentHandler(svc services.PaymentService, userSvc services.UserService, auth helper.Auth) *PaymentHandler {
	return &PaymentHandler{svc: svc, userSvc: userSvc, auth: auth}
}

func (h *PaymentHandler) SetupRoutes(api fiber.Router) {
	payment := api.Group("/payment")

	// webhook is authenticated by the provider signature, not a bearer token
	payment.Post("/webhook", h.Webhook)
	payment.Get("/status", h.Status)

	authed := payment.Group("", middleware.AuthRequired(h.userSvc))
	authed.Post("/create-payment-intent", h.CreateIntent)
	authed.Post("/success", h.ConfirmSuccess)
	authed.Post("/create-checkout-session", h.CreateCheckoutSession)
	authed.Get("/verify", h.VerifySession)
}

func (h *PaymentHandler) CreateIntent(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateIntentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	res, err := h.svc.CreateIntent(ctx.Context(), actor, req.ApplicationID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *PaymentHandler) ConfirmSuccess(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.ConfirmPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	app, err := h.svc.ConfirmSuccess(ctx.Context(), actor, req.ApplicationID, req.PaymentIntentID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.ApplicationEnvelope{
		Message:     "payment recorded",
		Application: app,
	})
}

func (h *PaymentHandler) CreateCheckoutSession(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateCheckoutSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return utils.ResponseFromError(ctx, err)
	}

	res, err := h.svc.CreateCheckoutSession(ctx.Context(), actor, req.ApplicationID)
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *PaymentHandler) VerifySession(ctx *fiber.Ctx) error {
	actor, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "authentication required")
	}

	app, err := h.svc.VerifySession(ctx.Context(), actor, ctx.Query("session_id"))
	if err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.VerifySessionResponse{
		Success:     true,
		Message:     "payment verified",
		Application: app,
	})
}

// Webhook answers the provider push. A non-2xx response asks the provider to
// retry, so only transient store failures surface as errors.
func (h *PaymentHandler) Webhook(ctx *fiber.Ctx) error {
	if err := h.svc.HandleWebhook(ctx.Context(), ctx.Body(), ctx.Get("Stripe-Signature")); err != nil {
		return utils.ResponseFromError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"received": true})
}

func (h *PaymentHandler) Status(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"status": "ok"})
}

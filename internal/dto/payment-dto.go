package dto

import "github.com/ScholarStream/scholarship_service/internal/domain"

type CreateIntentRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type CreateCheckoutSessionRequest struct {
	ApplicationID string `json:"applicationId" validate:"required"`
}

type CheckoutSessionResponse struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

type VerifySessionResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Application *domain.Application `json:"application"`
}

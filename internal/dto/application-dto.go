package dto

import "github.com/ScholarStream/scholarship_service/internal/domain"

type CreateApplicationRequest struct {
	ScholarshipID string `json:"scholarshipId" validate:"required"`
}

type SetApplicationStatusRequest struct {
	ApplicationStatus string `json:"applicationStatus" validate:"required,oneof=pending processing completed rejected"`
}

type SetFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ConfirmPaymentRequest backs both POST /payment/success and the legacy
// PATCH /applications/:id/payment path; the caller supplies the provider's
// intent reference, never a payment status.
type ConfirmPaymentRequest struct {
	ApplicationID   string `json:"applicationId"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

type ApplicationEnvelope struct {
	Message     string              `json:"message"`
	Application *domain.Application `json:"application"`
}

package dto

// Events published to the notification topic. The consumer keys off Type.
const (
	EventApplicationCreated = "application.created"
	EventApplicationStatus  = "application.status_changed"
	EventPaymentReconciled  = "application.payment_reconciled"
)

type ApplicationEvent struct {
	Type              string `json:"type"`
	ApplicationID     string `json:"applicationId"`
	ScholarshipID     string `json:"scholarshipId"`
	UserEmail         string `json:"userEmail"`
	ApplicationStatus string `json:"applicationStatus,omitempty"`
	PaymentStatus     string `json:"paymentStatus,omitempty"`
}

package interfaces

import "context"

// IntentStatusSucceeded is the only provider outcome the reconciler acts on.
const IntentStatusSucceeded = "succeeded"

// MetadataApplicationID is the metadata key that ties a provider object back
// to the application it pays for.
const MetadataApplicationID = "applicationId"

// MetadataUserID records the paying user on provider objects.
const MetadataUserID = "userId"

type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Metadata     map[string]string
}

type CheckoutSession struct {
	ID       string
	URL      string
	Metadata map[string]string
	Intent   *PaymentIntent // nil until the session has an intent attached
}

type CheckoutSessionInput struct {
	ProductName string
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
	SuccessURL  string
	CancelURL   string
}

// WebhookEvent is a provider-pushed notification whose signature has already
// been verified.
type WebhookEvent struct {
	Type   string
	Intent *PaymentIntent // set for payment_intent.* events
}

// PaymentProvider abstracts the external payment processor. The reconciler
// only ever sees these shapes, never provider SDK types.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, in CheckoutSessionInput) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, id string) (*CheckoutSession, error)
	// ConstructEvent verifies the signature and decodes the event payload.
	ConstructEvent(payload []byte, signature string) (*WebhookEvent, error)
}

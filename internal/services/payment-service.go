package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
	"github.com/ScholarStream/scholarship_service/internal/policy"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"github.com/rs/zerolog"
)

const (
	paymentCurrency = "usd"
	// Stripe rejects charges under $0.50.
	minimumChargeMinor = 50

	eventIntentSucceeded = "payment_intent.succeeded"
)

// PaymentService reconciles provider payment signals into the application's
// paymentStatus. Three entry points (intent confirmation, hosted-session
// verification, webhook) converge on the same idempotent transition, so they
// are safe to run repeatedly and in any order.
type PaymentService interface {
	CreateIntent(ctx context.Context, actor *domain.User, applicationID string) (*dto.CreateIntentResponse, error)
	ConfirmSuccess(ctx context.Context, actor *domain.User, applicationID, intentID string) (*domain.Application, error)
	CreateCheckoutSession(ctx context.Context, actor *domain.User, applicationID string) (*dto.CheckoutSessionResponse, error)
	VerifySession(ctx context.Context, actor *domain.User, sessionID string) (*domain.Application, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	apps         repository.ApplicationRepository
	scholarships repository.ScholarshipRepository
	provider     interfaces.PaymentProvider
	producer     interfaces.ProducerHandler
	frontendURL  string
	logger       zerolog.Logger
}

func NewPaymentService(
	apps repository.ApplicationRepository,
	scholarships repository.ScholarshipRepository,
	provider interfaces.PaymentProvider,
	producer interfaces.ProducerHandler,
	frontendURL string,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		apps:         apps,
		scholarships: scholarships,
		provider:     provider,
		producer:     producer,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		logger:       logger,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, actor *domain.User, applicationID string) (*dto.CreateIntentResponse, error) {
	app, err := s.loadOwned(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}

	amount, err := chargeMinorUnits(app)
	if err != nil {
		return nil, err
	}

	intent, err := s.provider.CreateIntent(ctx, amount, paymentCurrency, map[string]string{
		interfaces.MetadataApplicationID: app.ID.Hex(),
		interfaces.MetadataUserID:        actor.ID.Hex(),
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

func (s *paymentService) ConfirmSuccess(ctx context.Context, actor *domain.User, applicationID, intentID string) (*domain.Application, error) {
	if strings.TrimSpace(intentID) == "" {
		return nil, fmt.Errorf("paymentIntentId is required: %w", domain.ErrInvalid)
	}

	intent, err := s.provider.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}

	return s.reconcileCallerPath(ctx, actor, applicationID, intent)
}

func (s *paymentService) CreateCheckoutSession(ctx context.Context, actor *domain.User, applicationID string) (*dto.CheckoutSessionResponse, error) {
	app, err := s.loadOwned(ctx, actor, applicationID)
	if err != nil {
		return nil, err
	}

	amount, err := chargeMinorUnits(app)
	if err != nil {
		return nil, err
	}

	productName := "Scholarship Application Fee"
	if scholarship, err := s.scholarships.FindByID(ctx, app.ScholarshipID); err == nil {
		productName = scholarship.ScholarshipName
	}

	session, err := s.provider.CreateCheckoutSession(ctx, interfaces.CheckoutSessionInput{
		ProductName: productName,
		AmountMinor: amount,
		Currency:    paymentCurrency,
		Metadata: map[string]string{
			interfaces.MetadataApplicationID: app.ID.Hex(),
			interfaces.MetadataUserID:        actor.ID.Hex(),
		},
		SuccessURL: s.frontendURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.frontendURL + "/payment/failed",
	})
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutSessionResponse{URL: session.URL, ID: session.ID}, nil
}

func (s *paymentService) VerifySession(ctx context.Context, actor *domain.User, sessionID string) (*domain.Application, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session_id query parameter required: %w", domain.ErrInvalid)
	}

	session, err := s.provider.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	applicationID := session.Metadata[interfaces.MetadataApplicationID]
	if applicationID == "" {
		return nil, fmt.Errorf("no applicationId in session metadata: %w", domain.ErrInvalid)
	}
	if session.Intent == nil {
		return nil, fmt.Errorf("payment incomplete: %w", domain.ErrInvalid)
	}

	return s.reconcileCallerPath(ctx, actor, applicationID, session.Intent)
}

// reconcileCallerPath runs the shared verification chain for the two
// caller-facing entry points: outcome, metadata guard, existence, ownership,
// then the idempotent transition.
func (s *paymentService) reconcileCallerPath(ctx context.Context, actor *domain.User, applicationID string, intent *interfaces.PaymentIntent) (*domain.Application, error) {
	if intent.Status != interfaces.IntentStatusSucceeded {
		return nil, fmt.Errorf("payment not successful: %w", domain.ErrInvalid)
	}

	// an intent minted for application A must never mark application B paid
	if meta := intent.Metadata[interfaces.MetadataApplicationID]; meta != "" && meta != applicationID {
		return nil, fmt.Errorf("payment does not match the application: %w", domain.ErrInvalid)
	}

	appID, err := parseID(applicationID)
	if err != nil {
		return nil, err
	}
	app, err := s.apps.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}

	if policy.Authorize(actor, app, policy.ActionSetPayment) != policy.Allow {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	return s.markPaid(ctx, app)
}

// HandleWebhook processes a provider-pushed event. The provider retries on
// non-2xx, so permanent failures (unknown event, dangling references) are
// acknowledged and logged while store errors propagate for a retry.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ConstructEvent(payload, signature)
	if err != nil {
		return err
	}

	if event.Type != eventIntentSucceeded {
		return nil
	}
	if event.Intent == nil {
		// redelivery cannot fix a payload the provider signed but we cannot
		// use, so acknowledge it
		s.logger.Warn().Str("type", event.Type).Msg("webhook event carries no usable payment intent")
		return nil
	}
	intent := event.Intent
	if intent.Status != interfaces.IntentStatusSucceeded {
		return nil
	}

	rawID := intent.Metadata[interfaces.MetadataApplicationID]
	if rawID == "" {
		s.logger.Warn().Str("intent", intent.ID).Msg("webhook intent has no applicationId metadata")
		return nil
	}

	appID, err := parseID(rawID)
	if err != nil {
		s.logger.Warn().Str("intent", intent.ID).Str("applicationId", rawID).Msg("webhook intent references malformed application id")
		return nil
	}

	app, err := s.apps.FindByID(ctx, appID)
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn().Str("intent", intent.ID).Str("applicationId", rawID).Msg("webhook intent references missing application")
		return nil
	}
	if err != nil {
		return err
	}

	// no ownership check here: the signature authenticated the provider
	_, err = s.markPaid(ctx, app)
	return err
}

// markPaid applies unpaid->paid through the store's atomic conditional
// update. Re-applying on an already-paid application is a safe no-op.
func (s *paymentService) markPaid(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	updated, transitioned, err := s.apps.MarkPaid(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		app.PaymentStatus = domain.PaymentPaid
		return app, nil
	}

	s.publishEvent(updated)
	return updated, nil
}

func (s *paymentService) publishEvent(app *domain.Application) {
	event := dto.ApplicationEvent{
		Type:              dto.EventPaymentReconciled,
		ApplicationID:     app.ID.Hex(),
		ScholarshipID:     app.ScholarshipID.Hex(),
		UserEmail:         app.UserEmail,
		ApplicationStatus: string(app.ApplicationStatus),
		PaymentStatus:     string(app.PaymentStatus),
	}

	value, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal payment event")
		return
	}
	if err := s.producer.PublishMessage([]byte(event.ApplicationID), value); err != nil {
		s.logger.Warn().Err(err).Msg("publish payment event")
	}
}

func (s *paymentService) loadOwned(ctx context.Context, actor *domain.User, applicationID string) (*domain.Application, error) {
	appID, err := parseID(applicationID)
	if err != nil {
		return nil, err
	}
	app, err := s.apps.FindByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if policy.Authorize(actor, app, policy.ActionSetPayment) != policy.Allow {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return app, nil
}

// chargeMinorUnits converts the application's total charge into the
// provider's minor-unit currency and enforces the minimum chargeable amount
// before any intent is created.
func chargeMinorUnits(app *domain.Application) (int64, error) {
	amount := int64(math.Round(app.TotalCharge() * 100))
	if amount < minimumChargeMinor {
		return 0, fmt.Errorf("payment amount must be at least $0.50: %w", domain.ErrInvalid)
	}
	return amount, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type paymentFixture struct {
	apps     *fakeApplicationRepo
	provider *fakeProvider
	producer *fakeProducer
	svc      PaymentService
}

func newPaymentFixture() *paymentFixture {
	apps := newFakeApplicationRepo()
	provider := newFakeProvider()
	producer := &fakeProducer{}
	svc := NewPaymentService(apps, newFakeScholarshipRepo(), provider, producer, "http://localhost:3000", zerolog.Nop())
	return &paymentFixture{apps: apps, provider: provider, producer: producer, svc: svc}
}

func (f *paymentFixture) unpaidApp(owner *domain.User) *domain.Application {
	return f.apps.put(&domain.Application{
		ScholarshipID:     primitive.NewObjectID(),
		UserID:            owner.ID,
		UserEmail:         owner.Email,
		ApplicationFees:   100,
		ServiceCharge:     20,
		ApplicationStatus: domain.StatusPending,
		PaymentStatus:     domain.PaymentUnpaid,
	})
}

func (f *paymentFixture) succeededIntent(appID string) *interfaces.PaymentIntent {
	intent := &interfaces.PaymentIntent{
		ID:     fmt.Sprintf("pi_test_%d", len(f.provider.intents)+1),
		Status: interfaces.IntentStatusSucceeded,
		Metadata: map[string]string{
			interfaces.MetadataApplicationID: appID,
		},
	}
	f.provider.intents[intent.ID] = intent
	return intent
}

func TestCreateIntentUsesTotalCharge(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.unpaidApp(owner)

	res, err := f.svc.CreateIntent(context.Background(), owner, app.ID.Hex())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ClientSecret)

	require.Len(t, f.provider.createdIntents, 1)
	created := f.provider.createdIntents[0]
	assert.Equal(t, app.ID.Hex(), created.Metadata[interfaces.MetadataApplicationID])
	assert.Equal(t, owner.ID.Hex(), created.Metadata[interfaces.MetadataUserID])
}

func TestCreateIntentEnforcesMinimumCharge(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.apps.put(&domain.Application{
		UserID:          owner.ID,
		ApplicationFees: 0.10,
		ServiceCharge:   0.15,
		PaymentStatus:   domain.PaymentUnpaid,
	})

	_, err := f.svc.CreateIntent(context.Background(), owner, app.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.Empty(t, f.provider.createdIntents)
}

func TestCreateIntentOwnershipRequired(t *testing.T) {
	f := newPaymentFixture()
	app := f.unpaidApp(testUser(domain.RoleStudent))

	_, err := f.svc.CreateIntent(context.Background(), testUser(domain.RoleStudent), app.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestConfirmSuccessMarksPaidOnce(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.unpaidApp(owner)
	intent := f.succeededIntent(app.ID.Hex())

	updated, err := f.svc.ConfirmSuccess(context.Background(), owner, app.ID.Hex(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)
	assert.Len(t, f.producer.published, 1)

	// repeated confirmations are no-ops: same result, no extra events
	for i := 0; i < 5; i++ {
		again, err := f.svc.ConfirmSuccess(context.Background(), owner, app.ID.Hex(), intent.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPaid, again.PaymentStatus)
	}
	assert.Len(t, f.producer.published, 1)
	assert.Equal(t, 6, f.apps.markPaidCalls)
}

func TestConfirmSuccessRejectsUnsettledIntent(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.unpaidApp(owner)

	intent := f.succeededIntent(app.ID.Hex())
	intent.Status = "requires_payment_method"

	_, err := f.svc.ConfirmSuccess(context.Background(), owner, app.ID.Hex(), intent.ID)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	stored, _ := f.apps.FindByID(context.Background(), app.ID)
	assert.Equal(t, domain.PaymentUnpaid, stored.PaymentStatus)
}

func TestConfirmSuccessMetadataMismatch(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	appA := f.unpaidApp(owner)
	appB := f.unpaidApp(owner)

	// intent minted for A must not pay B
	intent := f.succeededIntent(appA.ID.Hex())
	_, err := f.svc.ConfirmSuccess(context.Background(), owner, appB.ID.Hex(), intent.ID)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	stored, _ := f.apps.FindByID(context.Background(), appB.ID)
	assert.Equal(t, domain.PaymentUnpaid, stored.PaymentStatus)
}

func TestConfirmSuccessOwnershipRequired(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.unpaidApp(owner)
	intent := f.succeededIntent(app.ID.Hex())

	_, err := f.svc.ConfirmSuccess(context.Background(), testUser(domain.RoleStudent), app.ID.Hex(), intent.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// a moderator may reconcile on the student's behalf
	_, err = f.svc.ConfirmSuccess(context.Background(), testUser(domain.RoleModerator), app.ID.Hex(), intent.ID)
	assert.NoError(t, err)
}

func TestVerifySessionReconciles(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.unpaidApp(owner)

	intent := f.succeededIntent(app.ID.Hex())
	f.provider.sessions["cs_1"] = &interfaces.CheckoutSession{
		ID:       "cs_1",
		Metadata: map[string]string{interfaces.MetadataApplicationID: app.ID.Hex()},
		Intent:   intent,
	}

	updated, err := f.svc.VerifySession(context.Background(), owner, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)

	_, err = f.svc.VerifySession(context.Background(), owner, "")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestWebhookMarksPaid(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.unpaidApp(owner)

	f.provider.event = &interfaces.WebhookEvent{
		Type:   "payment_intent.succeeded",
		Intent: f.succeededIntent(app.ID.Hex()),
	}

	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	stored, _ := f.apps.FindByID(context.Background(), app.ID)
	assert.Equal(t, domain.PaymentPaid, stored.PaymentStatus)
	assert.Len(t, f.producer.published, 1)

	// redelivery is acknowledged without a second event
	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	assert.Len(t, f.producer.published, 1)
}

func TestWebhookBadSignature(t *testing.T) {
	f := newPaymentFixture()
	f.provider.eventErr = fmt.Errorf("signature verification failed: %w", domain.ErrInvalid)

	err := f.svc.HandleWebhook(context.Background(), []byte("{}"), "bad")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestWebhookIgnoresIrrelevantEvents(t *testing.T) {
	f := newPaymentFixture()

	// unrelated event type
	f.provider.event = &interfaces.WebhookEvent{Type: "charge.refunded"}
	assert.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	// succeeded event whose payload could not be decoded; retrying cannot
	// fix it, so it is acknowledged
	f.provider.event = &interfaces.WebhookEvent{Type: "payment_intent.succeeded"}
	assert.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	// succeeded event with no application metadata
	f.provider.event = &interfaces.WebhookEvent{
		Type:   "payment_intent.succeeded",
		Intent: &interfaces.PaymentIntent{ID: "pi_x", Status: interfaces.IntentStatusSucceeded},
	}
	assert.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	// dangling application reference is acknowledged, not retried
	f.provider.event = &interfaces.WebhookEvent{
		Type: "payment_intent.succeeded",
		Intent: &interfaces.PaymentIntent{
			ID:       "pi_y",
			Status:   interfaces.IntentStatusSucceeded,
			Metadata: map[string]string{interfaces.MetadataApplicationID: primitive.NewObjectID().Hex()},
		},
	}
	assert.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	assert.Zero(t, len(f.producer.published))
}

/// Full walk: apply, moderate to completed, pay through a hosted session,
// then take a webhook redelivery of the same succeeded event. The payment
// must transition exactly once and stay paid across re-reads.
func TestApplicationPaymentScenario(t *testing.T) {
	apps := newFakeApplicationRepo()
	scholarships := newFakeScholarshipRepo()
	provider := newFakeProvider()
	producer := &fakeProducer{}

	appSvc := NewApplicationService(apps, scholarships, producer, zerolog.Nop())
	paySvc := NewPaymentService(apps, scholarships, provider, producer, "http://localhost:3000", zerolog.Nop())

	scholarship := scholarships.put(&domain.Scholarship{
		ScholarshipName: "Spring Grant",
		UniversityName:  "Example University",
		ApplicationFees: 10,
		ServiceCharge:   5,
	})
	student := testUser(domain.RoleStudent)
	moderator := testUser(domain.RoleModerator)

	app, err := appSvc.Create(context.Background(), student, scholarship.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, app.ApplicationStatus)
	assert.Equal(t, domain.PaymentUnpaid, app.PaymentStatus)

	_, err = appSvc.SetStatus(context.Background(), moderator, app.ID.Hex(), "processing")
	require.NoError(t, err)
	_, err = appSvc.SetStatus(context.Background(), moderator, app.ID.Hex(), "completed")
	require.NoError(t, err)

	session, err := paySvc.CreateCheckoutSession(context.Background(), student, app.ID.Hex())
	require.NoError(t, err)

	// the provider settles the session's intent at $15.00
	stored := provider.sessions[session.ID]
	intent := &interfaces.PaymentIntent{
		ID:       "pi_scenario",
		Status:   interfaces.IntentStatusSucceeded,
		Metadata: stored.Metadata,
	}
	provider.intents[intent.ID] = intent
	stored.Intent = intent

	paid, err := paySvc.VerifySession(context.Background(), student, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, paid.PaymentStatus)

	// webhook redelivery of the same event is a no-op
	provider.event = &interfaces.WebhookEvent{Type: "payment_intent.succeeded", Intent: intent}
	require.NoError(t, paySvc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	require.NoError(t, paySvc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	first, err := apps.FindByID(context.Background(), app.ID)
	require.NoError(t, err)
	second, err := apps.FindByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, first.PaymentStatus)
	assert.Equal(t, first.PaymentStatus, second.PaymentStatus)
	assert.Equal(t, domain.StatusCompleted, second.ApplicationStatus)

	// one created, two status changes, one reconciliation
	assert.Len(t, producer.published, 4)
}

// Webhook and caller confirmation racing over the same application must
// produce exactly one transition and one event.
func TestWebhookAndConfirmConverge(t *testing.T) {
	f := newPaymentFixture()
	owner := testUser(domain.RoleStudent)
	app := f.unpaidApp(owner)
	intent := f.succeededIntent(app.ID.Hex())
	f.provider.event = &interfaces.WebhookEvent{Type: "payment_intent.succeeded", Intent: intent}

	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	updated, err := f.svc.ConfirmSuccess(context.Background(), owner, app.ID.Hex(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, updated.PaymentStatus)

	require.Len(t, f.producer.published, 1)
	var event dto.ApplicationEvent
	require.NoError(t, json.Unmarshal(f.producer.published[0], &event))
	assert.Equal(t, dto.EventPaymentReconciled, event.Type)
	assert.Equal(t, app.ID.Hex(), event.ApplicationID)
	assert.Equal(t, string(domain.PaymentPaid), event.PaymentStatus)
}

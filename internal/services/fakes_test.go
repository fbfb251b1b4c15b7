package services

import (
	"context"
	"fmt"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeApplicationRepo is an in-memory ApplicationRepository with the same
// not-found and idempotency semantics as the mongo-backed one.
type fakeApplicationRepo struct {
	apps map[primitive.ObjectID]*domain.Application

	markPaidCalls int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[primitive.ObjectID]*domain.Application{}}
}

func (f *fakeApplicationRepo) put(app *domain.Application) *domain.Application {
	if app.ID.IsZero() {
		app.ID = primitive.NewObjectID()
	}
	f.apps[app.ID] = app
	return app
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) (*domain.Application, error) {
	return f.put(app), nil
}

func (f *fakeApplicationRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationRepo) FindByUserAndScholarship(_ context.Context, userID, scholarshipID primitive.ObjectID) (*domain.Application, error) {
	for _, app := range f.apps {
		if app.UserID == userID && app.ScholarshipID == scholarshipID {
			clone := *app
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("application: %w", domain.ErrNotFound)
}

func (f *fakeApplicationRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Application, error) {
	out := []domain.Application{}
	for _, app := range f.apps {
		if app.UserID == userID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) FindAll(context.Context) ([]domain.Application, error) {
	out := []domain.Application{}
	for _, app := range f.apps {
		out = append(out, *app)
	}
	return out, nil
}

func (f *fakeApplicationRepo) HasCompleted(_ context.Context, userID, scholarshipID primitive.ObjectID) (bool, error) {
	for _, app := range f.apps {
		if app.UserID == userID && app.ScholarshipID == scholarshipID && app.ApplicationStatus == domain.StatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.ApplicationStatus) (*domain.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	app.ApplicationStatus = status
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationRepo) UpdateFeedback(_ context.Context, id primitive.ObjectID, feedback string) (*domain.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	app.Feedback = feedback
	clone := *app
	return &clone, nil
}

func (f *fakeApplicationRepo) MarkPaid(_ context.Context, id primitive.ObjectID) (*domain.Application, bool, error) {
	f.markPaidCalls++
	app, ok := f.apps[id]
	if !ok || app.PaymentStatus == domain.PaymentPaid {
		return nil, false, nil
	}
	app.PaymentStatus = domain.PaymentPaid
	clone := *app
	return &clone, true, nil
}

func (f *fakeApplicationRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.apps[id]; !ok {
		return fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	delete(f.apps, id)
	return nil
}

func (f *fakeApplicationRepo) CountsByUniversity(context.Context, int64) ([]repository.BucketCount, error) {
	return []repository.BucketCount{}, nil
}

func (f *fakeApplicationRepo) CountsByStatus(context.Context) ([]repository.BucketCount, error) {
	return []repository.BucketCount{}, nil
}

func (f *fakeApplicationRepo) FeeTotals(context.Context) (*repository.FeeTotals, error) {
	totals := &repository.FeeTotals{}
	for _, app := range f.apps {
		if app.PaymentStatus == domain.PaymentPaid {
			totals.TotalApplicationFees += app.ApplicationFees
			totals.TotalServiceCharge += app.ServiceCharge
		}
	}
	return totals, nil
}

type fakeScholarshipRepo struct {
	scholarships map[primitive.ObjectID]*domain.Scholarship
}

func newFakeScholarshipRepo() *fakeScholarshipRepo {
	return &fakeScholarshipRepo{scholarships: map[primitive.ObjectID]*domain.Scholarship{}}
}

func (f *fakeScholarshipRepo) put(s *domain.Scholarship) *domain.Scholarship {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	f.scholarships[s.ID] = s
	return s
}

func (f *fakeScholarshipRepo) Create(_ context.Context, s *domain.Scholarship) (*domain.Scholarship, error) {
	return f.put(s), nil
}

func (f *fakeScholarshipRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Scholarship, error) {
	s, ok := f.scholarships[id]
	if !ok {
		return nil, fmt.Errorf("scholarship: %w", domain.ErrNotFound)
	}
	clone := *s
	return &clone, nil
}

func (f *fakeScholarshipRepo) Find(context.Context, repository.ScholarshipQuery) ([]domain.Scholarship, int64, error) {
	out := []domain.Scholarship{}
	for _, s := range f.scholarships {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (f *fakeScholarshipRepo) Top(context.Context, int64) ([]domain.Scholarship, error) {
	return []domain.Scholarship{}, nil
}

func (f *fakeScholarshipRepo) Update(_ context.Context, id primitive.ObjectID, _ repository.ScholarshipPatch) (*domain.Scholarship, error) {
	return f.FindByID(context.Background(), id)
}

func (f *fakeScholarshipRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.scholarships[id]; !ok {
		return fmt.Errorf("scholarship: %w", domain.ErrNotFound)
	}
	delete(f.scholarships, id)
	return nil
}

// fakeProducer records published messages.
type fakeProducer struct {
	published [][]byte
}

func (f *fakeProducer) PublishMessage(_, value []byte) error {
	f.published = append(f.published, value)
	return nil
}

// fakeProvider serves intents and sessions from in-memory maps.
type fakeProvider struct {
	intents  map[string]*interfaces.PaymentIntent
	sessions map[string]*interfaces.CheckoutSession

	createdIntents []*interfaces.PaymentIntent
	event          *interfaces.WebhookEvent
	eventErr       error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		intents:  map[string]*interfaces.PaymentIntent{},
		sessions: map[string]*interfaces.CheckoutSession{},
	}
}

func (f *fakeProvider) CreateIntent(_ context.Context, amountMinor int64, currency string, metadata map[string]string) (*interfaces.PaymentIntent, error) {
	intent := &interfaces.PaymentIntent{
		ID:           fmt.Sprintf("pi_%d", len(f.createdIntents)+1),
		ClientSecret: fmt.Sprintf("secret_%d_%s_%d", amountMinor, currency, len(f.createdIntents)+1),
		Status:       "requires_payment_method",
		Metadata:     metadata,
	}
	f.intents[intent.ID] = intent
	f.createdIntents = append(f.createdIntents, intent)
	return intent, nil
}

func (f *fakeProvider) RetrieveIntent(_ context.Context, id string) (*interfaces.PaymentIntent, error) {
	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such payment_intent: %w", domain.ErrUpstream)
	}
	return intent, nil
}

func (f *fakeProvider) CreateCheckoutSession(_ context.Context, in interfaces.CheckoutSessionInput) (*interfaces.CheckoutSession, error) {
	session := &interfaces.CheckoutSession{
		ID:       fmt.Sprintf("cs_%d", len(f.sessions)+1),
		URL:      "https://checkout.example.com/" + in.ProductName,
		Metadata: in.Metadata,
	}
	f.sessions[session.ID] = session
	return session, nil
}

func (f *fakeProvider) RetrieveSession(_ context.Context, id string) (*interfaces.CheckoutSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("no such checkout session: %w", domain.ErrUpstream)
	}
	return session, nil
}

func (f *fakeProvider) ConstructEvent([]byte, string) (*interfaces.WebhookEvent, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	return f.event, nil
}

package services

import (
	"context"
	"testing"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test User",
		Email: "user@example.com",
		Role:  role,
	}
}

func testScholarship() *domain.Scholarship {
	return &domain.Scholarship{
		ScholarshipName:     "Graduate Research Grant",
		UniversityName:      "Example University",
		ScholarshipCategory: "Full fund",
		Degree:              "Masters",
		ApplicationFees:     100,
		ServiceCharge:       20,
	}
}

func newApplicationFixture() (*fakeApplicationRepo, *fakeScholarshipRepo, *fakeProducer, ApplicationService) {
	apps := newFakeApplicationRepo()
	scholarships := newFakeScholarshipRepo()
	producer := &fakeProducer{}
	svc := NewApplicationService(apps, scholarships, producer, zerolog.Nop())
	return apps, scholarships, producer, svc
}

func TestCreateApplicationSnapshotsScholarship(t *testing.T) {
	_, scholarships, producer, svc := newApplicationFixture()
	scholarship := scholarships.put(testScholarship())
	student := testUser(domain.RoleStudent)

	app, err := svc.Create(context.Background(), student, scholarship.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, app.ApplicationStatus)
	assert.Equal(t, domain.PaymentUnpaid, app.PaymentStatus)
	assert.Equal(t, scholarship.UniversityName, app.UniversityName)
	assert.Equal(t, scholarship.ApplicationFees, app.ApplicationFees)
	assert.Equal(t, scholarship.ServiceCharge, app.ServiceCharge)
	assert.Equal(t, student.Email, app.UserEmail)
	assert.Len(t, producer.published, 1)
}

func TestCreateApplicationDuplicateConflicts(t *testing.T) {
	_, scholarships, _, svc := newApplicationFixture()
	scholarship := scholarships.put(testScholarship())
	student := testUser(domain.RoleStudent)

	_, err := svc.Create(context.Background(), student, scholarship.ID.Hex())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), student, scholarship.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateApplicationUnknownScholarship(t *testing.T) {
	_, _, _, svc := newApplicationFixture()
	student := testUser(domain.RoleStudent)

	_, err := svc.Create(context.Background(), student, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// malformed IDs land in the same bucket
	_, err = svc.Create(context.Background(), student, "not-a-hex-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetApplicationOwnership(t *testing.T) {
	apps, _, _, svc := newApplicationFixture()
	owner := testUser(domain.RoleStudent)
	app := apps.put(&domain.Application{UserID: owner.ID, ApplicationStatus: domain.StatusPending})

	got, err := svc.Get(context.Background(), owner, app.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)

	_, err = svc.Get(context.Background(), testUser(domain.RoleStudent), app.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Get(context.Background(), testUser(domain.RoleModerator), app.ID.Hex())
	assert.NoError(t, err)
}

func TestListAllRequiresModerator(t *testing.T) {
	_, _, _, svc := newApplicationFixture()

	_, err := svc.ListAll(context.Background(), testUser(domain.RoleStudent))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.ListAll(context.Background(), testUser(domain.RoleModerator))
	assert.NoError(t, err)
}

func TestSetStatusTransitions(t *testing.T) {
	apps, _, producer, svc := newApplicationFixture()
	moderator := testUser(domain.RoleModerator)
	app := apps.put(&domain.Application{
		UserID:            primitive.NewObjectID(),
		ApplicationStatus: domain.StatusPending,
	})

	updated, err := svc.SetStatus(context.Background(), moderator, app.ID.Hex(), "processing")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, updated.ApplicationStatus)
	assert.Len(t, producer.published, 1)

	updated, err = svc.SetStatus(context.Background(), moderator, app.ID.Hex(), "completed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.ApplicationStatus)

	// terminal states accept no further transitions
	_, err = svc.SetStatus(context.Background(), moderator, app.ID.Hex(), "pending")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = svc.SetStatus(context.Background(), moderator, app.ID.Hex(), "rejected")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestSetStatusRejectsUnknownAndUnauthorized(t *testing.T) {
	apps, _, _, svc := newApplicationFixture()
	app := apps.put(&domain.Application{
		UserID:            primitive.NewObjectID(),
		ApplicationStatus: domain.StatusPending,
	})

	_, err := svc.SetStatus(context.Background(), testUser(domain.RoleModerator), app.ID.Hex(), "approved")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.SetStatus(context.Background(), testUser(domain.RoleStudent), app.ID.Hex(), "processing")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSetFeedbackRequiresModerator(t *testing.T) {
	apps, _, _, svc := newApplicationFixture()
	app := apps.put(&domain.Application{
		UserID:            primitive.NewObjectID(),
		ApplicationStatus: domain.StatusProcessing,
	})

	updated, err := svc.SetFeedback(context.Background(), testUser(domain.RoleModerator), app.ID.Hex(), "missing transcript")
	require.NoError(t, err)
	assert.Equal(t, "missing transcript", updated.Feedback)

	_, err = svc.SetFeedback(context.Background(), testUser(domain.RoleStudent), app.ID.Hex(), "nope")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteApplicationGate(t *testing.T) {
	apps, _, _, svc := newApplicationFixture()
	owner := testUser(domain.RoleStudent)

	pending := apps.put(&domain.Application{UserID: owner.ID, ApplicationStatus: domain.StatusPending})
	processing := apps.put(&domain.Application{UserID: owner.ID, ApplicationStatus: domain.StatusProcessing})

	// owner may delete only while pending; the gate is a business rule, not 403
	err := svc.Delete(context.Background(), owner, processing.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.NotErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), owner, pending.ID.Hex()))

	// moderator never deletes, admin always does
	err = svc.Delete(context.Background(), testUser(domain.RoleModerator), processing.ID.Hex())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	require.NoError(t, svc.Delete(context.Background(), testUser(domain.RoleAdmin), processing.ID.Hex()))
}

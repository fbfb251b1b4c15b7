package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
	"github.com/ScholarStream/scholarship_service/internal/policy"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"github.com/rs/zerolog"
)

type ApplicationService interface {
	Create(ctx context.Context, actor *domain.User, scholarshipID string) (*domain.Application, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Application, error)
	ListMine(ctx context.Context, actor *domain.User) ([]domain.Application, error)
	ListAll(ctx context.Context, actor *domain.User) ([]domain.Application, error)
	SetStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.Application, error)
	SetFeedback(ctx context.Context, actor *domain.User, id, feedback string) (*domain.Application, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type applicationService struct {
	apps         repository.ApplicationRepository
	scholarships repository.ScholarshipRepository
	producer     interfaces.ProducerHandler
	logger       zerolog.Logger
}

func NewApplicationService(
	apps repository.ApplicationRepository,
	scholarships repository.ScholarshipRepository,
	producer interfaces.ProducerHandler,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationService{
		apps:         apps,
		scholarships: scholarships,
		producer:     producer,
		logger:       logger,
	}
}

func (s *applicationService) Create(ctx context.Context, actor *domain.User, scholarshipID string) (*domain.Application, error) {
	if policy.Authorize(actor, nil, policy.ActionCreate) != policy.Allow {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	schID, err := parseID(scholarshipID)
	if err != nil {
		return nil, err
	}

	scholarship, err := s.scholarships.FindByID(ctx, schID)
	if err != nil {
		return nil, err
	}

	// one application per (user, scholarship)
	_, err = s.apps.FindByUserAndScholarship(ctx, actor.ID, schID)
	if err == nil {
		return nil, fmt.Errorf("already applied for this scholarship: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	app := &domain.Application{
		ScholarshipID: schID,
		UserID:        actor.ID,
		UserName:      actor.Name,
		UserEmail:     actor.Email,
		// snapshot of the scholarship as it stands today
		UniversityName:      scholarship.UniversityName,
		ScholarshipCategory: scholarship.ScholarshipCategory,
		Degree:              scholarship.Degree,
		ApplicationFees:     scholarship.ApplicationFees,
		ServiceCharge:       scholarship.ServiceCharge,
		ApplicationStatus:   domain.StatusPending,
		PaymentStatus:       domain.PaymentUnpaid,
		ApplicationDate:     now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := s.apps.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.publishEvent(dto.EventApplicationCreated, created)
	return created, nil
}

func (s *applicationService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.Authorize(actor, app, policy.ActionViewOne) != policy.Allow {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return app, nil
}

func (s *applicationService) ListMine(ctx context.Context, actor *domain.User) ([]domain.Application, error) {
	if policy.Authorize(actor, nil, policy.ActionViewOwn) != policy.Allow {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return s.apps.FindByUser(ctx, actor.ID)
}

func (s *applicationService) ListAll(ctx context.Context, actor *domain.User) ([]domain.Application, error) {
	if policy.Authorize(actor, nil, policy.ActionViewAll) != policy.Allow {
		return nil, fmt.Errorf("moderator access required: %w", domain.ErrForbidden)
	}
	return s.apps.FindAll(ctx)
}

func (s *applicationService) SetStatus(ctx context.Context, actor *domain.User, id, status string) (*domain.Application, error) {
	next, ok := domain.ParseApplicationStatus(status)
	if !ok {
		return nil, fmt.Errorf("invalid status %q: %w", status, domain.ErrInvalid)
	}

	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.Authorize(actor, app, policy.ActionSetStatus) != policy.Allow {
		return nil, fmt.Errorf("moderator access required: %w", domain.ErrForbidden)
	}

	if !app.ApplicationStatus.CanTransitionTo(next) {
		return nil, fmt.Errorf("cannot transition application from %s to %s: %w",
			app.ApplicationStatus, next, domain.ErrInvalid)
	}

	updated, err := s.apps.UpdateStatus(ctx, app.ID, next)
	if err != nil {
		return nil, err
	}

	s.publishEvent(dto.EventApplicationStatus, updated)
	return updated, nil
}

func (s *applicationService) SetFeedback(ctx context.Context, actor *domain.User, id, feedback string) (*domain.Application, error) {
	app, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy.Authorize(actor, app, policy.ActionSetFeedback) != policy.Allow {
		return nil, fmt.Errorf("moderator access required: %w", domain.ErrForbidden)
	}
	return s.apps.UpdateFeedback(ctx, app.ID, feedback)
}

func (s *applicationService) Delete(ctx context.Context, actor *domain.User, id string) error {
	app, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	switch policy.Authorize(actor, app, policy.ActionDelete) {
	case policy.Allow:
		return s.apps.Delete(ctx, app.ID)
	case policy.DenyPendingOnly:
		// business rule, not an access violation
		return fmt.Errorf("can only delete pending applications: %w", domain.ErrInvalid)
	default:
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
}

func (s *applicationService) load(ctx context.Context, id string) (*domain.Application, error) {
	appID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.apps.FindByID(ctx, appID)
}

func (s *applicationService) publishEvent(eventType string, app *domain.Application) {
	event := dto.ApplicationEvent{
		Type:              eventType,
		ApplicationID:     app.ID.Hex(),
		ScholarshipID:     app.ScholarshipID.Hex(),
		UserEmail:         app.UserEmail,
		ApplicationStatus: string(app.ApplicationStatus),
		PaymentStatus:     string(app.PaymentStatus),
	}

	value, err := json.Marshal(event)
	if err != nil {
		s.logger.Error().Err(err).Str("type", eventType).Msg("marshal application event")
		return
	}
	if err := s.producer.PublishMessage([]byte(event.ApplicationID), value); err != nil {
		// notification delivery never fails the request
		s.logger.Warn().Err(err).Str("type", eventType).Msg("publish application event")
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"github.com/rs/zerolog"
)

// ReviewService gates reviews behind a completed application: only students
// whose application for the scholarship reached completed may review it, once.
type ReviewService interface {
	Create(ctx context.Context, actor *domain.User, req dto.CreateReviewRequest) (*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	ListByScholarship(ctx context.Context, scholarshipID string) ([]domain.Review, error)
	ListMine(ctx context.Context, actor *domain.User) ([]domain.Review, error)
	ListAll(ctx context.Context, actor *domain.User) ([]domain.Review, error)
	Update(ctx context.Context, actor *domain.User, id string, req dto.UpdateReviewRequest) (*domain.Review, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type reviewService struct {
	reviews      repository.ReviewRepository
	apps         repository.ApplicationRepository
	scholarships repository.ScholarshipRepository
	logger       zerolog.Logger
}

func NewReviewService(
	reviews repository.ReviewRepository,
	apps repository.ApplicationRepository,
	scholarships repository.ScholarshipRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviews:      reviews,
		apps:         apps,
		scholarships: scholarships,
		logger:       logger,
	}
}

func (s *reviewService) Create(ctx context.Context, actor *domain.User, req dto.CreateReviewRequest) (*domain.Review, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	scholarshipID, err := parseID(req.ScholarshipID)
	if err != nil {
		return nil, err
	}
	scholarship, err := s.scholarships.FindByID(ctx, scholarshipID)
	if err != nil {
		return nil, err
	}

	completed, err := s.apps.HasCompleted(ctx, actor.ID, scholarshipID)
	if err != nil {
		return nil, err
	}
	if !completed {
		return nil, fmt.Errorf("only completed applicants can review this scholarship: %w", domain.ErrForbidden)
	}

	_, err = s.reviews.FindByUserAndScholarship(ctx, actor.ID, scholarshipID)
	if err == nil {
		return nil, fmt.Errorf("you have already reviewed this scholarship: %w", domain.ErrConflict)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	review := &domain.Review{
		ScholarshipID:  scholarshipID,
		UniversityName: scholarship.UniversityName,
		UserID:         actor.ID,
		UserName:       actor.Name,
		UserEmail:      actor.Email,
		UserImage:      actor.PhotoURL,
		RatingPoint:    req.RatingPoint,
		ReviewComment:  req.ReviewComment,
		ReviewDate:     now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.reviews.Create(ctx, review)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("review", created.ID.Hex()).Str("scholarship", req.ScholarshipID).Msg("review created")
	return created, nil
}

func (s *reviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	reviewID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.reviews.FindByID(ctx, reviewID)
}

func (s *reviewService) ListByScholarship(ctx context.Context, scholarshipID string) ([]domain.Review, error) {
	id, err := parseID(scholarshipID)
	if err != nil {
		return nil, err
	}
	return s.reviews.FindByScholarship(ctx, id)
}

func (s *reviewService) ListMine(ctx context.Context, actor *domain.User) ([]domain.Review, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	return s.reviews.FindByUser(ctx, actor.ID)
}

func (s *reviewService) ListAll(ctx context.Context, actor *domain.User) ([]domain.Review, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	if !actor.Role.AtLeast(domain.RoleModerator) {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return s.reviews.FindAll(ctx)
}

func (s *reviewService) Update(ctx context.Context, actor *domain.User, id string, req dto.UpdateReviewRequest) (*domain.Review, error) {
	if actor == nil {
		return nil, fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	reviewID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != actor.ID && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	return s.reviews.Update(ctx, reviewID, repository.ReviewPatch{
		RatingPoint:   req.RatingPoint,
		ReviewComment: req.ReviewComment,
	})
}

func (s *reviewService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil {
		return fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	reviewID, err := parseID(id)
	if err != nil {
		return err
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.ID && !actor.Role.AtLeast(domain.RoleModerator) {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}

	return s.reviews.Delete(ctx, reviewID)
}

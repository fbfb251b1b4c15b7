package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/helper"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"github.com/ScholarStream/scholarship_service/pkg/utils"
	"github.com/rs/zerolog"
)

// ScholarshipService is the catalog: public browsing plus Admin curation.
type ScholarshipService interface {
	Create(ctx context.Context, actor *domain.User, req dto.CreateScholarshipRequest) (*domain.Scholarship, error)
	Get(ctx context.Context, id string) (*domain.Scholarship, error)
	List(ctx context.Context, q dto.ScholarshipListQuery) (*dto.ScholarshipListResponse, error)
	Top(ctx context.Context) ([]domain.Scholarship, error)
	Update(ctx context.Context, actor *domain.User, id string, req dto.UpdateScholarshipRequest) (*domain.Scholarship, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type scholarshipService struct {
	scholarships repository.ScholarshipRepository
	logger       zerolog.Logger
}

func NewScholarshipService(scholarships repository.ScholarshipRepository, logger zerolog.Logger) ScholarshipService {
	return &scholarshipService{
		scholarships: scholarships,
		logger:       logger,
	}
}

const topScholarshipsLimit = 6

func (s *scholarshipService) Create(ctx context.Context, actor *domain.User, req dto.CreateScholarshipRequest) (*domain.Scholarship, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	scholarship := &domain.Scholarship{
		ScholarshipName:     req.ScholarshipName,
		UniversityName:      req.UniversityName,
		UniversityImage:     req.UniversityImage,
		UniversityCountry:   req.UniversityCountry,
		UniversityCity:      req.UniversityCity,
		UniversityWorldRank: req.UniversityWorldRank,
		SubjectCategory:     req.SubjectCategory,
		ScholarshipCategory: req.ScholarshipCategory,
		Degree:              req.Degree,
		TuitionFees:         req.TuitionFees,
		ApplicationFees:     req.ApplicationFees,
		ServiceCharge:       req.ServiceCharge,
		ApplicationDeadline: req.ApplicationDeadline,
		ScholarshipPostDate: now,
		PostedUserEmail:     actor.Email,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	created, err := s.scholarships.Create(ctx, scholarship)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("scholarship", created.ID.Hex()).Str("by", actor.Email).Msg("scholarship created")
	return created, nil
}

func (s *scholarshipService) Get(ctx context.Context, id string) (*domain.Scholarship, error) {
	scholarshipID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.scholarships.FindByID(ctx, scholarshipID)
}

func (s *scholarshipService) List(ctx context.Context, q dto.ScholarshipListQuery) (*dto.ScholarshipListResponse, error) {
	page, limit, skip := utils.NormalizePage(q.Page, q.Limit)

	scholarships, total, err := s.scholarships.Find(ctx, repository.ScholarshipQuery{
		Search:              q.Search,
		Country:             q.Country,
		SubjectCategory:     q.SubjectCategory,
		ScholarshipCategory: q.ScholarshipCategory,
		SortBy:              q.SortBy,
		SortOrder:           q.SortOrder,
		Skip:                skip,
		Limit:               limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ScholarshipListResponse{
		Scholarships: scholarships,
		TotalPages:   utils.TotalPages(total, limit),
		CurrentPage:  page,
		Total:        total,
	}, nil
}

// Top returns the cheapest recent postings for the landing page.
func (s *scholarshipService) Top(ctx context.Context) ([]domain.Scholarship, error) {
	return s.scholarships.Top(ctx, topScholarshipsLimit)
}

func (s *scholarshipService) Update(ctx context.Context, actor *domain.User, id string, req dto.UpdateScholarshipRequest) (*domain.Scholarship, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := helper.ValidateStruct(req); err != nil {
		return nil, err
	}
	scholarshipID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	return s.scholarships.Update(ctx, scholarshipID, repository.ScholarshipPatch{
		ScholarshipName:     req.ScholarshipName,
		UniversityName:      req.UniversityName,
		UniversityImage:     req.UniversityImage,
		UniversityCountry:   req.UniversityCountry,
		UniversityCity:      req.UniversityCity,
		UniversityWorldRank: req.UniversityWorldRank,
		SubjectCategory:     req.SubjectCategory,
		ScholarshipCategory: req.ScholarshipCategory,
		Degree:              req.Degree,
		TuitionFees:         req.TuitionFees,
		ApplicationFees:     req.ApplicationFees,
		ServiceCharge:       req.ServiceCharge,
		ApplicationDeadline: req.ApplicationDeadline,
	})
}

func (s *scholarshipService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	scholarshipID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.scholarships.Delete(ctx, scholarshipID); err != nil {
		return err
	}
	s.logger.Info().Str("scholarship", id).Str("by", actor.Email).Msg("scholarship deleted")
	return nil
}

func requireAdmin(actor *domain.User) error {
	if actor == nil {
		return fmt.Errorf("authentication required: %w", domain.ErrUnauthenticated)
	}
	if actor.Role != domain.RoleAdmin {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return nil
}

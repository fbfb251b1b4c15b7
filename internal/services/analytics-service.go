package services

import (
	"context"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/dto"
	"github.com/ScholarStream/scholarship_service/internal/repository"
	"github.com/rs/zerolog"
)

const universityBucketLimit = 10

// AnalyticsService composes the Admin dashboard aggregates.
type AnalyticsService interface {
	Overview(ctx context.Context, actor *domain.User) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	users  repository.UserRepository
	apps   repository.ApplicationRepository
	logger zerolog.Logger
}

func NewAnalyticsService(users repository.UserRepository, apps repository.ApplicationRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		users:  users,
		apps:   apps,
		logger: logger,
	}
}

func (s *analyticsService) Overview(ctx context.Context, actor *domain.User) (*dto.AnalyticsResponse, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	usersByRole, err := s.users.CountsByRole(ctx)
	if err != nil {
		return nil, err
	}
	byUniversity, err := s.apps.CountsByUniversity(ctx, universityBucketLimit)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.apps.CountsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	fees, err := s.apps.FeeTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsResponse{
		TotalUsers:               totalUsers,
		UsersByRole:              usersByRole,
		ApplicationsByUniversity: byUniversity,
		ApplicationsByStatus:     byStatus,
		TotalFees:                fees.TotalApplicationFees + fees.TotalServiceCharge,
		TotalApplicationFees:     fees.TotalApplicationFees,
		TotalServiceCharge:       fees.TotalServiceCharge,
	}, nil
}

package dto

import "github.com/ScholarStream/scholarship_service/internal/repository"

type AnalyticsResponse struct {
	TotalUsers               int64                    `json:"totalUsers"`
	UsersByRole              []repository.BucketCount `json:"usersByRole"`
	ApplicationsByUniversity []repository.BucketCount `json:"applicationsByUniversity"`
	ApplicationsByStatus     []repository.BucketCount `json:"applicationsByStatus"`
	TotalFees                float64                  `json:"totalFees"`
	TotalApplicationFees     float64                  `json:"totalApplicationFees"`
	TotalServiceCharge       float64                  `json:"totalServiceCharge"`
}

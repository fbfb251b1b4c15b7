package dto

import "github.com/ScholarStream/scholarship_service/internal/domain"

type CreateReviewRequest struct {
	ScholarshipID string `json:"scholarshipId" validate:"required"`
	RatingPoint   int    `json:"ratingPoint" validate:"required,min=1,max=5"`
	ReviewComment string `json:"reviewComment" validate:"required"`
}

type UpdateReviewRequest struct {
	RatingPoint   *int    `json:"ratingPoint,omitempty" validate:"omitempty,min=1,max=5"`
	ReviewComment *string `json:"reviewComment,omitempty"`
}

type ReviewEnvelope struct {
	Message string         `json:"message"`
	Review  *domain.Review `json:"review"`
}

package dto

import (
	"time"

	"github.com/ScholarStream/scholarship_service/internal/domain"
)

type CreateScholarshipRequest struct {
	ScholarshipName     string    `json:"scholarshipName" validate:"required"`
	UniversityName      string    `json:"universityName" validate:"required"`
	UniversityImage     string    `json:"universityImage,omitempty"`
	UniversityCountry   string    `json:"universityCountry" validate:"required"`
	UniversityCity      string    `json:"universityCity" validate:"required"`
	UniversityWorldRank int       `json:"universityWorldRank,omitempty"`
	SubjectCategory     string    `json:"subjectCategory" validate:"required"`
	ScholarshipCategory string    `json:"scholarshipCategory" validate:"required,oneof='Full fund' Partial Self-fund"`
	Degree              string    `json:"degree" validate:"required,oneof=Diploma Bachelor Masters"`
	TuitionFees         float64   `json:"tuitionFees,omitempty" validate:"omitempty,gte=0"`
	ApplicationFees     float64   `json:"applicationFees" validate:"gte=0"`
	ServiceCharge       float64   `json:"serviceCharge" validate:"gte=0"`
	ApplicationDeadline time.Time `json:"applicationDeadline" validate:"required"`
}

type UpdateScholarshipRequest struct {
	ScholarshipName     *string    `json:"scholarshipName,omitempty"`
	UniversityName      *string    `json:"universityName,omitempty"`
	UniversityImage     *string    `json:"universityImage,omitempty"`
	UniversityCountry   *string    `json:"universityCountry,omitempty"`
	UniversityCity      *string    `json:"universityCity,omitempty"`
	UniversityWorldRank *int       `json:"universityWorldRank,omitempty"`
	SubjectCategory     *string    `json:"subjectCategory,omitempty"`
	ScholarshipCategory *string    `json:"scholarshipCategory,omitempty" validate:"omitempty,oneof='Full fund' Partial Self-fund"`
	Degree              *string    `json:"degree,omitempty" validate:"omitempty,oneof=Diploma Bachelor Masters"`
	TuitionFees         *float64   `json:"tuitionFees,omitempty" validate:"omitempty,gte=0"`
	ApplicationFees     *float64   `json:"applicationFees,omitempty" validate:"omitempty,gte=0"`
	ServiceCharge       *float64   `json:"serviceCharge,omitempty" validate:"omitempty,gte=0"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

type ScholarshipListQuery struct {
	Search              string `query:"search"`
	Country             string `query:"country"`
	SubjectCategory     string `query:"subjectCategory"`
	ScholarshipCategory string `query:"scholarshipCategory"`
	SortBy              string `query:"sortBy"`
	SortOrder           string `query:"sortOrder"`
	Page                int    `query:"page"`
	Limit               int    `query:"limit"`
}

type ScholarshipListResponse struct {
	Scholarships []domain.Scholarship `json:"scholarships"`
	TotalPages   int64                `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
	Total        int64                `json:"total"`
}

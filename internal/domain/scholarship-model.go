package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Scholarship struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarshipName     string             `bson:"scholarshipName" json:"scholarshipName"`
	UniversityName      string             `bson:"universityName" json:"universityName"`
	UniversityImage     string             `bson:"universityImage,omitempty" json:"universityImage"`
	UniversityCountry   string             `bson:"universityCountry" json:"universityCountry"`
	UniversityCity      string             `bson:"universityCity" json:"universityCity"`
	UniversityWorldRank int                `bson:"universityWorldRank,omitempty" json:"universityWorldRank"`
	SubjectCategory     string             `bson:"subjectCategory" json:"subjectCategory"`
	ScholarshipCategory string             `bson:"scholarshipCategory" json:"scholarshipCategory"` // Full fund | Partial | Self-fund
	Degree              string             `bson:"degree" json:"degree"`                           // Diploma | Bachelor | Masters
	TuitionFees         float64            `bson:"tuitionFees,omitempty" json:"tuitionFees"`
	ApplicationFees     float64            `bson:"applicationFees" json:"applicationFees"`
	ServiceCharge       float64            `bson:"serviceCharge" json:"serviceCharge"`
	ApplicationDeadline time.Time          `bson:"applicationDeadline" json:"applicationDeadline"`
	ScholarshipPostDate time.Time          `bson:"scholarshipPostDate" json:"scholarshipPostDate"`
	PostedUserEmail     string             `bson:"postedUserEmail" json:"postedUserEmail"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

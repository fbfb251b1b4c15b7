package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarshipID  primitive.ObjectID `bson:"scholarshipId" json:"scholarshipId"`
	UniversityName string             `bson:"universityName" json:"universityName"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	UserName       string             `bson:"userName" json:"userName"`
	UserEmail      string             `bson:"userEmail" json:"userEmail"`
	UserImage      string             `bson:"userImage,omitempty" json:"userImage"`
	RatingPoint    int                `bson:"ratingPoint" json:"ratingPoint"`
	ReviewComment  string             `bson:"reviewComment" json:"reviewComment"`
	ReviewDate     time.Time          `bson:"reviewDate" json:"reviewDate"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

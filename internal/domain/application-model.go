package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus is the moderation axis of an application's lifecycle.
type ApplicationStatus string

const (
	StatusPending    ApplicationStatus = "pending"
	StatusProcessing ApplicationStatus = "processing"
	StatusCompleted  ApplicationStatus = "completed"
	StatusRejected   ApplicationStatus = "rejected"
)

func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusRejected:
		return ApplicationStatus(s), true
	}
	return "", false
}

// Terminal reports whether the status accepts no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// CanTransitionTo encodes the moderation state machine:
// pending -> processing | rejected, processing -> completed | rejected.
// completed and rejected are terminal.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing || next == StatusRejected
	case StatusProcessing:
		return next == StatusCompleted || next == StatusRejected
	}
	return false
}

// PaymentStatus is the payment axis, independent from moderation. The only
// transition is unpaid -> paid, and it is driven by the payment reconciler.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Application is a student's request to be considered for a scholarship.
// The scholarship's fee and category fields are snapshotted at creation so
// later edits to the scholarship do not rewrite application history.
type Application struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarshipID       primitive.ObjectID `bson:"scholarshipId" json:"scholarshipId"`
	UserID              primitive.ObjectID `bson:"userId" json:"userId"`
	UserName            string             `bson:"userName" json:"userName"`
	UserEmail           string             `bson:"userEmail" json:"userEmail"`
	UniversityName      string             `bson:"universityName" json:"universityName"`
	ScholarshipCategory string             `bson:"scholarshipCategory" json:"scholarshipCategory"`
	Degree              string             `bson:"degree" json:"degree"`
	ApplicationFees     float64            `bson:"applicationFees" json:"applicationFees"`
	ServiceCharge       float64            `bson:"serviceCharge" json:"serviceCharge"`
	ApplicationStatus   ApplicationStatus  `bson:"applicationStatus" json:"applicationStatus"`
	PaymentStatus       PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	Feedback            string             `bson:"feedback,omitempty" json:"feedback"`
	ApplicationDate     time.Time          `bson:"applicationDate" json:"applicationDate"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalCharge is the amount due for the application in major currency units.
func (a *Application) TotalCharge() float64 {
	return a.ApplicationFees + a.ServiceCharge
}

func (a *Application) OwnedBy(userID primitive.ObjectID) bool {
	return a.UserID == userID
}

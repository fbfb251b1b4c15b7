package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScholarshipQuery carries the list-endpoint search, filter, sort and paging
// parameters. Zero values mean "not set".
type ScholarshipQuery struct {
	Search              string
	Country             string
	SubjectCategory     string
	ScholarshipCategory string
	SortBy              string // applicationFees | postDate
	SortOrder           string // asc | desc
	Skip                int64
	Limit               int64
}

// ScholarshipPatch is the Admin-editable field set; nil pointers are left
// untouched.
type ScholarshipPatch struct {
	ScholarshipName     *string
	UniversityName      *string
	UniversityImage     *string
	UniversityCountry   *string
	UniversityCity      *string
	UniversityWorldRank *int
	SubjectCategory     *string
	ScholarshipCategory *string
	Degree              *string
	TuitionFees         *float64
	ApplicationFees     *float64
	ServiceCharge       *float64
	ApplicationDeadline *time.Time
}

type ScholarshipRepository interface {
	Create(ctx context.Context, s *domain.Scholarship) (*domain.Scholarship, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Scholarship, error)
	Find(ctx context.Context, q ScholarshipQuery) ([]domain.Scholarship, int64, error)
	Top(ctx context.Context, limit int64) ([]domain.Scholarship, error)
	Update(ctx context.Context, id primitive.ObjectID, patch ScholarshipPatch) (*domain.Scholarship, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type scholarshipRepository struct {
	coll *mongo.Collection
}

func NewScholarshipRepository(db *mongo.Database) ScholarshipRepository {
	return &scholarshipRepository{coll: db.Collection("scholarships")}
}

func (r *scholarshipRepository) Create(ctx context.Context, s *domain.Scholarship) (*domain.Scholarship, error) {
	if s == nil {
		return nil, errors.New("nil scholarship")
	}

	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("insert scholarship: %w", err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID)

	return s, nil
}

func (r *scholarshipRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Scholarship, error) {
	var s domain.Scholarship
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("scholarship: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find scholarship: %w", err)
	}
	return &s, nil
}

func (r *scholarshipRepository) Find(ctx context.Context, q ScholarshipQuery) ([]domain.Scholarship, int64, error) {
	filter := bson.M{}

	if q.Search != "" {
		regex := bson.M{"$regex": q.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"scholarshipName": regex},
			bson.M{"universityName": regex},
			bson.M{"degree": regex},
		}
	}
	if q.Country != "" {
		filter["universityCountry"] = q.Country
	}
	if q.SubjectCategory != "" {
		filter["subjectCategory"] = q.SubjectCategory
	}
	if q.ScholarshipCategory != "" {
		filter["scholarshipCategory"] = q.ScholarshipCategory
	}

	order := 1
	if q.SortOrder == "desc" {
		order = -1
	}
	var sort bson.D
	switch q.SortBy {
	case "applicationFees":
		sort = bson.D{{Key: "applicationFees", Value: order}}
	case "postDate":
		sort = bson.D{{Key: "scholarshipPostDate", Value: order}}
	default:
		sort = bson.D{{Key: "scholarshipPostDate", Value: -1}}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count scholarships: %w", err)
	}

	opts := options.Find().SetSort(sort).SetSkip(q.Skip).SetLimit(q.Limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find scholarships: %w", err)
	}
	defer cursor.Close(ctx)

	scholarships := []domain.Scholarship{}
	if err := cursor.All(ctx, &scholarships); err != nil {
		return nil, 0, fmt.Errorf("decode scholarships: %w", err)
	}
	return scholarships, total, nil
}

func (r *scholarshipRepository) Top(ctx context.Context, limit int64) ([]domain.Scholarship, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "applicationFees", Value: 1},
			{Key: "scholarshipPostDate", Value: -1},
		}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find top scholarships: %w", err)
	}
	defer cursor.Close(ctx)

	scholarships := []domain.Scholarship{}
	if err := cursor.All(ctx, &scholarships); err != nil {
		return nil, fmt.Errorf("decode scholarships: %w", err)
	}
	return scholarships, nil
}

func (r *scholarshipRepository) Update(ctx context.Context, id primitive.ObjectID, patch ScholarshipPatch) (*domain.Scholarship, error) {
	fields := bson.M{}
	setString := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	setString("scholarshipName", patch.ScholarshipName)
	setString("universityName", patch.UniversityName)
	setString("universityImage", patch.UniversityImage)
	setString("universityCountry", patch.UniversityCountry)
	setString("universityCity", patch.UniversityCity)
	setString("subjectCategory", patch.SubjectCategory)
	setString("scholarshipCategory", patch.ScholarshipCategory)
	setString("degree", patch.Degree)
	if patch.UniversityWorldRank != nil {
		fields["universityWorldRank"] = *patch.UniversityWorldRank
	}
	if patch.TuitionFees != nil {
		fields["tuitionFees"] = *patch.TuitionFees
	}
	if patch.ApplicationFees != nil {
		fields["applicationFees"] = *patch.ApplicationFees
	}
	if patch.ServiceCharge != nil {
		fields["serviceCharge"] = *patch.ServiceCharge
	}
	if patch.ApplicationDeadline != nil {
		fields["applicationDeadline"] = *patch.ApplicationDeadline
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var s domain.Scholarship
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("scholarship: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update scholarship: %w", err)
	}
	return &s, nil
}

func (r *scholarshipRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("scholarship: %w", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete scholarship: %w", err)
	}
	return nil
}

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

// BucketCount is one bucket of a $group aggregation.
type BucketCount struct {
	ID    string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

type FeeTotals struct {
	TotalApplicationFees float64 `bson:"totalApplicationFees" json:"totalApplicationFees"`
	TotalServiceCharge   float64 `bson:"totalServiceCharge" json:"totalServiceCharge"`
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Application, error)
	FindByUserAndScholarship(ctx context.Context, userID, scholarshipID primitive.ObjectID) (*domain.Application, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Application, error)
	FindAll(ctx context.Context) ([]domain.Application, error)
	HasCompleted(ctx context.Context, userID, scholarshipID primitive.ObjectID) (bool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ApplicationStatus) (*domain.Application, error)
	UpdateFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (*domain.Application, error)
	// MarkPaid performs the atomic unpaid->paid transition. The bool result
	// reports whether this call made the transition; false with a nil error
	// means the document was already paid.
	MarkPaid(ctx context.Context, id primitive.ObjectID) (*domain.Application, bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountsByUniversity(ctx context.Context, limit int64) ([]BucketCount, error)
	CountsByStatus(ctx context.Context) ([]BucketCount, error)
	FeeTotals(ctx context.Context) (*FeeTotals, error)
}

type applicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) ApplicationRepository {
	return &applicationRepository{coll: db.Collection("applications")}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	if app == nil {
		return nil, errors.New("nil application")
	}

	res, err := r.coll.InsertOne(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("insert application: %w", err)
	}
	app.ID = res.InsertedID.(primitive.ObjectID)

	return app, nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Application, error) {
	var app domain.Application
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) FindByUserAndScholarship(ctx context.Context, userID, scholarshipID primitive.ObjectID) (*domain.Application, error) {
	var app domain.Application
	err := r.coll.FindOne(ctx, bson.M{
		"userId":        userID,
		"scholarshipId": scholarshipID,
	}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applicationDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []domain.Application{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) FindAll(ctx context.Context) ([]domain.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "applicationDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []domain.Application{}
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) HasCompleted(ctx context.Context, userID, scholarshipID primitive.ObjectID) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{
		"userId":            userID,
		"scholarshipId":     scholarshipID,
		"applicationStatus": domain.StatusCompleted,
	})
	if err != nil {
		return false, fmt.Errorf("count applications: %w", err)
	}
	return count > 0, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ApplicationStatus) (*domain.Application, error) {
	return r.findOneAndSet(ctx, id, bson.M{"applicationStatus": status})
}

func (r *applicationRepository) UpdateFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (*domain.Application, error) {
	return r.findOneAndSet(ctx, id, bson.M{"feedback": feedback})
}

func (r *applicationRepository) findOneAndSet(ctx context.Context, id primitive.ObjectID, fields bson.M) (*domain.Application, error) {
	fields["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var app domain.Application
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return &app, nil
}

// MarkPaid is a single conditional update so two concurrent reconciliation
// calls cannot both observe unpaid and double-apply the transition.
func (r *applicationRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) (*domain.Application, bool, error) {
	filter := bson.M{
		"_id":           id,
		"paymentStatus": bson.M{"$ne": domain.PaymentPaid},
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus": domain.PaymentPaid,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var app domain.Application
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// no unpaid document matched: either absent or already paid,
		// the caller resolved existence before calling
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("mark application paid: %w", err)
	}
	return &app, true, nil
}

func (r *applicationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("application: %w", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

func (r *applicationRepository) CountsByUniversity(ctx context.Context, limit int64) ([]BucketCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$universityName",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	return r.aggregateBuckets(ctx, pipeline)
}

func (r *applicationRepository) CountsByStatus(ctx context.Context) ([]BucketCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$applicationStatus",
			"count": bson.M{"$sum": 1},
		}}},
	}
	return r.aggregateBuckets(ctx, pipeline)
}

func (r *applicationRepository) aggregateBuckets(ctx context.Context, pipeline mongo.Pipeline) ([]BucketCount, error) {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate applications: %w", err)
	}
	defer cursor.Close(ctx)

	buckets := []BucketCount{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode aggregation: %w", err)
	}
	return buckets, nil
}

func (r *applicationRepository) FeeTotals(ctx context.Context) (*FeeTotals, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"paymentStatus": domain.PaymentPaid}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":                  nil,
			"totalApplicationFees": bson.M{"$sum": "$applicationFees"},
			"totalServiceCharge":   bson.M{"$sum": "$serviceCharge"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate fees: %w", err)
	}
	defer cursor.Close(ctx)

	var totals []FeeTotals
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("decode fee totals: %w", err)
	}
	if len(totals) == 0 {
		return &FeeTotals{}, nil
	}
	return &totals[0], nil
}

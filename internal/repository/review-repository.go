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

// ReviewPatch: only rating and comment are author-editable.
type ReviewPatch struct {
	RatingPoint   *int
	ReviewComment *string
}

type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error)
	FindByScholarship(ctx context.Context, scholarshipID primitive.ObjectID) ([]domain.Review, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Review, error)
	FindByUserAndScholarship(ctx context.Context, userID, scholarshipID primitive.ObjectID) (*domain.Review, error)
	FindAll(ctx context.Context) ([]domain.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, patch ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type reviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{coll: db.Collection("reviews")}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if review == nil {
		return nil, errors.New("nil review")
	}

	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	review.ID = res.InsertedID.(primitive.ObjectID)

	return review, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Review, error) {
	var review domain.Review
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) FindByScholarship(ctx context.Context, scholarshipID primitive.ObjectID) ([]domain.Review, error) {
	return r.findSorted(ctx, bson.M{"scholarshipId": scholarshipID})
}

func (r *reviewRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Review, error) {
	return r.findSorted(ctx, bson.M{"userId": userID})
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	return r.findSorted(ctx, bson.M{})
}

func (r *reviewRepository) findSorted(ctx context.Context, filter bson.M) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "reviewDate", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []domain.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) FindByUserAndScholarship(ctx context.Context, userID, scholarshipID primitive.ObjectID) (*domain.Review, error) {
	var review domain.Review
	err := r.coll.FindOne(ctx, bson.M{
		"userId":        userID,
		"scholarshipId": scholarshipID,
	}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, id primitive.ObjectID, patch ReviewPatch) (*domain.Review, error) {
	fields := bson.M{}
	if patch.RatingPoint != nil {
		fields["ratingPoint"] = *patch.RatingPoint
	}
	if patch.ReviewComment != nil {
		fields["reviewComment"] = *patch.ReviewComment
	}
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review domain.Review
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("review: %w", domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

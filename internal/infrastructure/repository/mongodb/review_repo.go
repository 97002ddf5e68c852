package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

var _ contract.IReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection("reviews")}
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	_, err := r.collection.InsertOne(ctx, review)
	return mapError(err, "review "+review.ID)
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	var review entity.Review
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		return nil, mapError(err, "review "+id)
	}
	return &review, nil
}

func (r *ReviewRepository) FindWithinRadius(ctx context.Context, q entity.RadiusQuery) ([]*entity.Review, error) {
	opts := options.Find()
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return r.find(ctx, withinRadiusFilter(q), opts)
}

func (r *ReviewRepository) ListByUsername(ctx context.Context, username string, pagination contract.Pagination) ([]*entity.Review, int64, error) {
	filter := bson.M{"username": username}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapError(err, "reviews")
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize))
	reviews, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "review "+id)
	}
	if res.DeletedCount == 0 {
		return notFound("review " + id)
	}
	return nil
}

func (r *ReviewRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Review, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "reviews")
	}
	reviews := []*entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, mapError(err, "reviews")
	}
	return reviews, nil
}

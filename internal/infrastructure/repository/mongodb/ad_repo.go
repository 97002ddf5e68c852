package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type AdRepository struct {
	collection *mongo.Collection
}

var _ contract.IAdRepository = (*AdRepository)(nil)

func NewAdRepository(db *mongo.Database) *AdRepository {
	return &AdRepository{collection: db.Collection("ads")}
}

func (r *AdRepository) Create(ctx context.Context, ad *entity.Ad) error {
	_, err := r.collection.InsertOne(ctx, ad)
	return mapError(err, "ad "+ad.ID)
}

func (r *AdRepository) GetByID(ctx context.Context, id string) (*entity.Ad, error) {
	var ad entity.Ad
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ad); err != nil {
		return nil, mapError(err, "ad "+id)
	}
	return &ad, nil
}

func (r *AdRepository) IncrementViews(ctx context.Context, id string) (*entity.Ad, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ad entity.Ad
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&ad)
	if err != nil {
		return nil, mapError(err, "ad "+id)
	}
	return &ad, nil
}

// Update replaces the stored ad. Views are left untouched so concurrent
// view counting is not lost.
func (r *AdRepository) Update(ctx context.Context, ad *entity.Ad) error {
	set := bson.M{
		"title":       ad.Title,
		"description": ad.Description,
		"category":    ad.Category,
		"subcategory": ad.Subcategory,
		"country":     ad.Country,
		"city":        ad.City,
		"address":     ad.Address,
		"price":       ad.Price,
		"currency":    ad.Currency,
		"photos":      ad.Photos,
		"status":      ad.Status,
		"updated_at":  ad.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if ad.Location != nil {
		set["lat"], set["lng"], set["location"] = ad.Lat, ad.Lng, ad.Location
	} else {
		update["$unset"] = bson.M{"lat": "", "lng": "", "location": ""}
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": ad.ID}, update)
	if err != nil {
		return mapError(err, "ad "+ad.ID)
	}
	if res.MatchedCount == 0 {
		return notFound("ad " + ad.ID)
	}
	return nil
}

func (r *AdRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "ad "+id)
	}
	if res.DeletedCount == 0 {
		return notFound("ad " + id)
	}
	return nil
}

func (r *AdRepository) List(ctx context.Context, filter entity.AdFilter) ([]*entity.Ad, int64, error) {
	query := adListFilter(filter)
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, mapError(err, "ads")
	}
	pagination := contract.Pagination{Page: filter.Page, PageSize: filter.Limit}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, mapError(err, "ads")
	}
	ads := []*entity.Ad{}
	if err := cursor.All(ctx, &ads); err != nil {
		return nil, 0, mapError(err, "ads")
	}
	return ads, total, nil
}

func adListFilter(f entity.AdFilter) bson.M {
	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	for field, value := range map[string]string{
		"category":    f.Category,
		"subcategory": f.Subcategory,
		"country":     f.Country,
		"city":        f.City,
	} {
		if value != "" {
			query[field] = value
		}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}
	if f.Query != "" {
		pattern := containsPattern(f.Query)
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}
	if f.Near != nil {
		for k, v := range withinRadiusFilter(*f.Near) {
			query[k] = v
		}
	}
	return query
}

package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

type PostRepository struct {
	collection *mongo.Collection
}

var _ contract.IPostRepository = (*PostRepository)(nil)

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{collection: db.Collection("posts")}
}

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	_, err := r.collection.InsertOne(ctx, post)
	return mapError(err, "post "+post.ID)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var post entity.Post
	if err := r.collection.FindOne(ctx, livePost(id)).Decode(&post); err != nil {
		return nil, mapError(err, "post "+id)
	}
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, int64, error) {
	query := bson.M{"is_deleted": false}
	if filter.AuthorID != "" {
		query["author_id"] = filter.AuthorID
	}
	if filter.WallOwnerID != "" {
		query["wall_owner_id"] = filter.WallOwnerID
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, mapError(err, "posts")
	}
	pagination := contract.Pagination{Page: filter.Page, PageSize: filter.Limit}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize))
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, mapError(err, "posts")
	}
	posts := []*entity.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, 0, mapError(err, "posts")
	}
	return posts, total, nil
}

// SetReaction replaces the user's reaction in a single pipeline update, so
// concurrent calls for the same user can never leave two entries behind.
func (r *PostRepository) SetReaction(ctx context.Context, postID string, reaction entity.Reaction) error {
	res, err := r.collection.UpdateOne(ctx, livePost(postID), setReactionPipeline(reaction, time.Now()))
	if err != nil {
		return mapError(err, "post "+postID)
	}
	if res.MatchedCount == 0 {
		return notFound("post " + postID)
	}
	return nil
}

func setReactionPipeline(reaction entity.Reaction, now time.Time) mongo.Pipeline {
	others := bson.M{"$filter": bson.M{
		"input": bson.M{"$ifNull": bson.A{"$reactions", bson.A{}}},
		"as":    "r",
		"cond":  bson.M{"$ne": bson.A{"$$r.user_id", reaction.UserID}},
	}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"reactions":  bson.M{"$concatArrays": bson.A{others, bson.M{"$literal": bson.A{reaction}}}},
			"updated_at": now,
		}}},
	}
}

func (r *PostRepository) RemoveReaction(ctx context.Context, postID, userID string) error {
	return r.update(ctx, postID, bson.M{"$pull": bson.M{"reactions": bson.M{"user_id": userID}}})
}

func (r *PostRepository) AddComment(ctx context.Context, postID string, comment entity.Comment) error {
	return r.update(ctx, postID, bson.M{"$push": bson.M{"comments": comment}})
}

func (r *PostRepository) AddReply(ctx context.Context, postID, commentID string, reply entity.Reply) error {
	filter := livePost(postID)
	filter["comments._id"] = commentID
	res, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$push": bson.M{"comments.$.replies": reply},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return mapError(err, "post "+postID)
	}
	if res.MatchedCount == 0 {
		return notFound("comment " + commentID)
	}
	return nil
}

func (r *PostRepository) SoftDelete(ctx context.Context, id string) error {
	return r.update(ctx, id, bson.M{"$set": bson.M{"is_deleted": true}})
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "post "+id)
	}
	if res.DeletedCount == 0 {
		return notFound("post " + id)
	}
	return nil
}

func (r *PostRepository) update(ctx context.Context, id string, update bson.M) error {
	if set, ok := update["$set"].(bson.M); ok {
		set["updated_at"] = time.Now()
	} else {
		update["$set"] = bson.M{"updated_at": time.Now()}
	}
	res, err := r.collection.UpdateOne(ctx, livePost(id), update)
	if err != nil {
		return mapError(err, "post "+id)
	}
	if res.MatchedCount == 0 {
		return notFound("post " + id)
	}
	return nil
}

func livePost(id string) bson.M {
	return bson.M{"_id": id, "is_deleted": false}
}

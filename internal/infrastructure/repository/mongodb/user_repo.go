package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
)

var profileProjection = bson.M{
	"username":   1,
	"firstname":  1,
	"lastname":   1,
	"avatar_url": 1,
	"city":       1,
	"country":    1,
	"is_online":  1,
	"last_seen":  1,
}

type MongoUserRepository struct {
	collection *mongo.Collection
}

var _ contract.IUserRepository = (*MongoUserRepository)(nil)

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) CreateUser(ctx context.Context, user *entity.User) error {
	_, err := r.collection.InsertOne(ctx, user)
	return mapError(err, "user "+user.Username)
}

func (r *MongoUserRepository) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, "user "+id)
}

func (r *MongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "user with email "+email)
}

func (r *MongoUserRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, "user "+username)
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M, what string) (*entity.User, error) {
	var user entity.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapError(err, what)
	}
	return &user, nil
}

func (r *MongoUserRepository) GetProfilesByIDs(ctx context.Context, ids []string) ([]entity.PublicProfile, error) {
	if len(ids) == 0 {
		return []entity.PublicProfile{}, nil
	}
	return r.findProfiles(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(profileProjection))
}

// UpdateProfile applies a partial update and returns the updated user.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id string, updates map[string]interface{}) (*entity.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user entity.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updates}, opts).Decode(&user)
	if err != nil {
		return nil, mapError(err, "user "+id)
	}
	return &user, nil
}

func (r *MongoUserRepository) SetLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"last_login": at}})
}

func (r *MongoUserRepository) SetOnlineStatus(ctx context.Context, id string, online bool, lastSeen time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"is_online": online, "last_seen": lastSeen}})
}

func (r *MongoUserRepository) Follow(ctx context.Context, followerID, followeeID string) error {
	if err := r.updateOne(ctx, followeeID, bson.M{"$addToSet": bson.M{"followers": followerID}}); err != nil {
		return err
	}
	return r.updateOne(ctx, followerID, bson.M{"$addToSet": bson.M{"following": followeeID}})
}

func (r *MongoUserRepository) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := r.updateOne(ctx, followeeID, bson.M{"$pull": bson.M{"followers": followerID}}); err != nil {
		return err
	}
	return r.updateOne(ctx, followerID, bson.M{"$pull": bson.M{"following": followeeID}})
}

// SearchUsers matches query case-insensitively against username, email and names.
func (r *MongoUserRepository) SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]entity.PublicProfile, error) {
	filter := userSearchFilter(query, excludeID)
	opts := options.Find().
		SetProjection(profileProjection).
		SetSort(bson.D{{Key: "username", Value: 1}}).
		SetLimit(int64(limit))
	return r.findProfiles(ctx, filter, opts)
}

func userSearchFilter(query, excludeID string) bson.M {
	pattern := containsPattern(query)
	return bson.M{
		"_id":       bson.M{"$ne": excludeID},
		"is_active": true,
		"$or": bson.A{
			bson.M{"username": pattern},
			bson.M{"email": pattern},
			bson.M{"firstname": pattern},
			bson.M{"lastname": pattern},
		},
	}
}

func (r *MongoUserRepository) findProfiles(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entity.PublicProfile, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "users")
	}
	profiles := []entity.PublicProfile{}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, mapError(err, "users")
	}
	return profiles, nil
}

func (r *MongoUserRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return mapError(err, "user "+id)
	}
	if res.MatchedCount == 0 {
		return notFound(fmt.Sprintf("user %s", id))
	}
	return nil
}

// containsPattern builds a case-insensitive literal match.
func containsPattern(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

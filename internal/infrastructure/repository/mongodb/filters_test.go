package mongodb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mapmark/pinpoint/internal/domain/entity"
)

func TestWithinRadiusFilter(t *testing.T) {
	q := entity.RadiusQuery{Lat: 40.7128, Lng: -74.006, RadiusMeters: 6371}

	filter := withinRadiusFilter(q)

	sphere := filter["location"].(bson.M)["$geoWithin"].(bson.M)["$centerSphere"].(bson.A)
	center := sphere[0].(bson.A)
	assert.Equal(t, -74.006, center[0], "longitude comes first")
	assert.Equal(t, 40.7128, center[1])
	assert.InDelta(t, 0.001, sphere[1], 1e-12)
}

func TestAdListFilter(t *testing.T) {
	minPrice, maxPrice := 10.0, 50.0
	f := entity.AdFilter{
		Category: "bikes",
		City:     "Berlin",
		Status:   entity.AdStatusActive,
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Query:    "road.bike",
		Near:     &entity.RadiusQuery{Lat: 52.52, Lng: 13.405, RadiusMeters: 1000},
	}

	query := adListFilter(f)

	assert.Equal(t, "bikes", query["category"])
	assert.Equal(t, "Berlin", query["city"])
	assert.NotContains(t, query, "country")
	assert.Equal(t, entity.AdStatusActive, query["status"])
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 50.0}, query["price"])
	assert.Contains(t, query, "location")

	or := query["$or"].(bson.A)
	require.Len(t, or, 2)
	assert.Equal(t, `road\.bike`, or[0].(bson.M)["title"].(bson.M)["$regex"])
}

func TestAdListFilter_Empty(t *testing.T) {
	assert.Empty(t, adListFilter(entity.AdFilter{}))
}

func TestRecordMessageUpdate_SkipsSender(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	update := recordMessageUpdate([]string{"u1", "u2"}, "m1", "u1", at)

	assert.Equal(t, bson.M{"unread_count.u2": 1}, update["$inc"])
	set := update["$set"].(bson.M)
	assert.Equal(t, "m1", set["last_message_id"])
	assert.Equal(t, at, set["last_activity"])
}

func TestUnreadFilter(t *testing.T) {
	filter := unreadFilter("c1", "u2")

	assert.Equal(t, "c1", filter["conversation_id"])
	assert.Equal(t, bson.M{"$ne": "u2"}, filter["sender_id"])
	assert.Equal(t, bson.M{"$ne": "u2"}, filter["read_by.user_id"])
}

func TestUserSearchFilter_EscapesInput(t *testing.T) {
	filter := userSearchFilter("a+b", "me")

	assert.Equal(t, bson.M{"$ne": "me"}, filter["_id"])
	or := filter["$or"].(bson.A)
	assert.Len(t, or, 4)
	assert.Equal(t, bson.M{"$regex": `a\+b`, "$options": "i"}, or[0].(bson.M)["username"])
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, "x"))
	assert.ErrorIs(t, mapError(mongo.ErrNoDocuments, "user u1"), entity.ErrNotFound)
	assert.ErrorIs(t, mapError(context.DeadlineExceeded, "user u1"), entity.ErrUnavailable)
	assert.ErrorIs(t, mapError(mongo.ErrClientDisconnected, "user u1"), entity.ErrUnavailable)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "dup"}}}
	assert.ErrorIs(t, mapError(dup, "user bob"), entity.ErrConflict)

	other := errors.New("boom")
	err := mapError(other, "user u1")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, entity.ErrNotFound)
}

func TestSetReactionPipeline_ReplacesInOneStage(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reaction := entity.Reaction{UserID: "u1", Type: entity.ReactionLove, CreatedAt: at}

	pipeline := setReactionPipeline(reaction, at)

	require.Len(t, pipeline, 1)
	stage := pipeline[0]
	require.Len(t, stage, 1)
	assert.Equal(t, "$set", stage[0].Key)
	set := stage[0].Value.(bson.M)
	assert.Equal(t, at, set["updated_at"])

	parts := set["reactions"].(bson.M)["$concatArrays"].(bson.A)
	require.Len(t, parts, 2)
	filter := parts[0].(bson.M)["$filter"].(bson.M)
	assert.Equal(t, bson.M{"$ne": bson.A{"$$r.user_id", "u1"}}, filter["cond"])
	assert.Equal(t, bson.M{"$literal": bson.A{reaction}}, parts[1])
}

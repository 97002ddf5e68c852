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

type ConversationRepository struct {
	collection *mongo.Collection
}

var _ contract.IConversationRepository = (*ConversationRepository)(nil)

func NewConversationRepository(db *mongo.Database) *ConversationRepository {
	return &ConversationRepository{collection: db.Collection("conversations")}
}

// FindOrCreate upserts on the unique pair_key so concurrent calls for the same
// pair converge on one document.
func (r *ConversationRepository) FindOrCreate(ctx context.Context, conversation *entity.Conversation) (*entity.Conversation, error) {
	if conversation.PairKey == "" {
		conversation.PairKey = entity.PairKey(conversation.Participants...)
	}
	filter := bson.M{"pair_key": conversation.PairKey}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out entity.Conversation
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$setOnInsert": conversation}, opts).Decode(&out)
	if mongo.IsDuplicateKeyError(err) {
		// Lost the insert race; the winner's document is now visible.
		err = r.collection.FindOne(ctx, filter).Decode(&out)
	}
	if err != nil {
		return nil, mapError(err, "conversation "+conversation.PairKey)
	}
	return &out, nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var conversation entity.Conversation
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&conversation); err != nil {
		return nil, mapError(err, "conversation "+id)
	}
	return &conversation, nil
}

func (r *ConversationRepository) ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_activity", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, mapError(err, "conversations")
	}
	conversations := []*entity.Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, mapError(err, "conversations")
	}
	return conversations, nil
}

// RecordMessage updates lastMessage/lastActivity and bumps the unread counter
// of every participant other than the sender in one update.
func (r *ConversationRepository) RecordMessage(ctx context.Context, conversationID, messageID, senderID string, at time.Time) error {
	conversation, err := r.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": conversationID}, recordMessageUpdate(conversation.Participants, messageID, senderID, at))
	if err != nil {
		return mapError(err, "conversation "+conversationID)
	}
	if res.MatchedCount == 0 {
		return notFound("conversation " + conversationID)
	}
	return nil
}

func recordMessageUpdate(participants []string, messageID, senderID string, at time.Time) bson.M {
	update := bson.M{
		"$set": bson.M{
			"last_message_id": messageID,
			"last_activity":   at,
			"updated_at":      at,
		},
	}
	inc := bson.M{}
	for _, p := range participants {
		if p != senderID {
			inc["unread_count."+p] = 1
		}
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	return update
}

func (r *ConversationRepository) ResetUnread(ctx context.Context, conversationID, userID string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": conversationID},
		bson.M{"$set": bson.M{"unread_count." + userID: 0}},
	)
	if err != nil {
		return mapError(err, "conversation "+conversationID)
	}
	if res.MatchedCount == 0 {
		return notFound("conversation " + conversationID)
	}
	return nil
}

func (r *ConversationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err, "conversation "+id)
	}
	if res.DeletedCount == 0 {
		return notFound("conversation " + id)
	}
	return nil
}

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

type MessageRepository struct {
	collection *mongo.Collection
}

var _ contract.IMessageRepository = (*MessageRepository)(nil)

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{collection: db.Collection("messages")}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	_, err := r.collection.InsertOne(ctx, message)
	return mapError(err, "message "+message.ID)
}

func (r *MessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&message); err != nil {
		return nil, mapError(err, "message "+id)
	}
	return &message, nil
}

func (r *MessageRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Message, error) {
	if len(ids) == 0 {
		return []*entity.Message{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

func (r *MessageRepository) ListVisible(ctx context.Context, conversationID string, pagination contract.Pagination) ([]*entity.Message, int64, error) {
	filter := bson.M{"conversation_id": conversationID, "is_deleted": false}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapError(err, "messages")
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(pagination.Skip()).
		SetLimit(int64(pagination.PageSize))
	messages, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// MarkRead appends a receipt to every message userID received and has not read yet.
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, userID string, at time.Time) (int64, error) {
	res, err := r.collection.UpdateMany(ctx, unreadFilter(conversationID, userID), bson.M{
		"$push": bson.M{"read_by": entity.ReadReceipt{UserID: userID, ReadAt: at}},
		"$set":  bson.M{"status": entity.MessageStatusRead, "updated_at": at},
	})
	if err != nil {
		return 0, mapError(err, "messages of conversation "+conversationID)
	}
	return res.ModifiedCount, nil
}

func unreadFilter(conversationID, userID string) bson.M {
	return bson.M{
		"conversation_id": conversationID,
		"sender_id":       bson.M{"$ne": userID},
		"read_by.user_id": bson.M{"$ne": userID},
	}
}

func (r *MessageRepository) SoftDelete(ctx context.Context, id string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"is_deleted": true, "updated_at": time.Now()},
	})
	if err != nil {
		return mapError(err, "message "+id)
	}
	if res.MatchedCount == 0 {
		return notFound("message " + id)
	}
	return nil
}

func (r *MessageRepository) DeleteByConversation(ctx context.Context, conversationID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"conversation_id": conversationID})
	if err != nil {
		return 0, mapError(err, "messages of conversation "+conversationID)
	}
	return res.DeletedCount, nil
}

func (r *MessageRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*entity.Message, error) {
	if opts == nil {
		opts = options.Find()
	}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err, "messages")
	}
	messages := []*entity.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, mapError(err, "messages")
	}
	return messages, nil
}

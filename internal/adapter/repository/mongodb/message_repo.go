package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/message"
)

type MessageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{collection: db.Collection("messages")}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	_, err := r.collection.InsertOne(ctx, m)
	return err
}

func (r *MessageRepository) FindForUser(ctx context.Context, user string) ([]*message.Message, error) {
	query := bson.M{"$or": bson.A{bson.M{"sender": user}, bson.M{"recipient": user}}}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var messages []*message.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) FindByListingAndParties(ctx context.Context, listingID, a, b string) ([]*message.Message, error) {
	query := bson.M{
		"listing_id": listingID,
		"$or": bson.A{
			bson.M{"sender": a, "recipient": b},
			bson.M{"sender": b, "recipient": a},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var messages []*message.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id, recipient string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "recipient": recipient},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}

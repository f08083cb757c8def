package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
)

// stripeConfigID keys the single configuration document.
const stripeConfigID = "stripe"

type StripeConfigRepository struct {
	collection *mongo.Collection
}

func NewStripeConfigRepository(db *mongo.Database) *StripeConfigRepository {
	return &StripeConfigRepository{collection: db.Collection("payment_config")}
}

func (r *StripeConfigRepository) Get(ctx context.Context) (*payment.StripeConfiguration, error) {
	var doc struct {
		ID     string                      `bson:"_id"`
		Config payment.StripeConfiguration `bson:"config"`
	}
	err := r.collection.FindOne(ctx, bson.M{"_id": stripeConfigID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, payment.ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return &doc.Config, nil
}

func (r *StripeConfigRepository) Set(ctx context.Context, c *payment.StripeConfiguration) error {
	if err := c.Validate(); err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": stripeConfigID},
		bson.M{"_id": stripeConfigID, "config": c}, opts)
	return err
}

func (r *StripeConfigRepository) IsConfigured(ctx context.Context) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": stripeConfigID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

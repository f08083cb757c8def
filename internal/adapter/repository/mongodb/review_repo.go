package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/review"
)

type ReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection("reviews")}
}

// EnsureIndexes creates the unique (buyer, transaction) index backing the
// one-review-per-transaction invariant.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "buyer", Value: 1}, {Key: "transaction_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	_, err := r.collection.InsertOne(ctx, rev)
	if mongo.IsDuplicateKeyError(err) {
		return review.ErrAlreadyExists
	}
	return err
}

func (r *ReviewRepository) FindBySeller(ctx context.Context, seller string) ([]*review.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"seller": seller}, opts)
	if err != nil {
		return nil, err
	}
	var reviews []*review.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) FindByBuyerAndTransaction(ctx context.Context, buyer, transactionID string) (*review.Review, error) {
	var rev review.Review
	err := r.collection.FindOne(ctx, bson.M{"buyer": buyer, "transaction_id": transactionID}).Decode(&rev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, review.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

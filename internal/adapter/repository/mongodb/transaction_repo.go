package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
)

type TransactionRepository struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{collection: db.Collection("transactions")}
}

func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	_, err := r.collection.InsertOne(ctx, t)
	return err
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) FindByListingAndBuyer(ctx context.Context, listingID, buyer string) (*transaction.Transaction, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var t transaction.Transaction
	err := r.collection.FindOne(ctx, bson.M{"listing_id": listingID, "buyer": buyer}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) FindForUser(ctx context.Context, user string) ([]*transaction.Transaction, error) {
	query := bson.M{"$or": bson.A{bson.M{"buyer": user}, bson.M{"seller": user}}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var txns []*transaction.Transaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
)

type TermsRepository struct {
	versions    *mongo.Collection
	acceptances *mongo.Collection
}

func NewTermsRepository(db *mongo.Database) *TermsRepository {
	return &TermsRepository{
		versions:    db.Collection("terms_versions"),
		acceptances: db.Collection("terms_acceptances"),
	}
}

// EnsureIndexes creates the unique (user, version) index; it is what makes
// RecordAcceptance naturally idempotent.
func (r *TermsRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.acceptances.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "version", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *TermsRepository) Current(ctx context.Context) (*terms.TermsAndConditions, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "effective_date", Value: -1}})
	var t terms.TermsAndConditions
	err := r.versions.FindOne(ctx, bson.M{}, opts).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, terms.ErrNoTerms
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TermsRepository) Publish(ctx context.Context, t *terms.TermsAndConditions) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.versions.ReplaceOne(ctx, bson.M{"_id": t.Version}, t, opts)
	return err
}

func (r *TermsRepository) RecordAcceptance(ctx context.Context, a *terms.Acceptance) error {
	_, err := r.acceptances.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return nil // already accepted this version
	}
	return err
}

func (r *TermsRepository) HasAccepted(ctx context.Context, user, version string) (bool, error) {
	count, err := r.acceptances.CountDocuments(ctx, bson.M{"user": user, "version": version})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

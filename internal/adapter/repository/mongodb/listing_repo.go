package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
)

type ListingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{collection: db.Collection("listings")}
}

// EnsureIndexes creates the text index backing free-text search ($text in
// FindByFilter needs it) and the compound index serving the default browse
// query.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
			{Key: "school_names", Value: "text"},
		}},
		{Keys: bson.D{
			{Key: "is_active", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	})
	return err
}

func (r *ListingRepository) Create(ctx context.Context, l *listing.Listing) error {
	_, err := r.collection.InsertOne(ctx, l)
	return err
}

func (r *ListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	l.UpdatedAt = time.Now().UTC()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return listing.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*listing.Listing, error) {
	var l listing.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, listing.ErrListingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) FindByFilter(ctx context.Context, filter listing.Filter) ([]*listing.Listing, int64, error) {
	query := bson.M{}
	if filter.Query != "" {
		query["$text"] = bson.M{"$search": filter.Query}
	}
	if filter.SchoolName != "" {
		query["school_names"] = filter.SchoolName
	}
	if filter.Gender != "" {
		query["gender"] = filter.Gender
	}
	if filter.SchoolYear != "" {
		query["school_year"] = filter.SchoolYear
	}
	if filter.ItemKind != "" {
		query["item_type.kind"] = filter.ItemKind
	}
	if filter.Seller != "" {
		query["seller"] = filter.Seller
	}
	if filter.ActiveOnly {
		query["is_active"] = true
	}
	price := bson.M{}
	if filter.MinPence > 0 {
		price["$gte"] = filter.MinPence
	}
	if filter.MaxPence > 0 {
		price["$lte"] = filter.MaxPence
	}
	if len(price) > 0 {
		query["price_pence"] = price
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
		if filter.Page > 1 {
			opts.SetSkip((filter.Page - 1) * filter.Limit)
		}
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var listings []*listing.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *ListingRepository) DistinctSchoolNames(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "school_names", bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			names = append(names, s)
		}
	}
	return names, nil
}

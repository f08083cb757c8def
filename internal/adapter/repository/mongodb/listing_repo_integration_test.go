package mongodb

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
)

var testDB *mongo.Database

func TestMain(m *testing.M) {
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		os.Exit(0)
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start mongo resource: %s", err)
	}

	uri := fmt.Sprintf("mongodb://localhost:%s", resource.GetPort("27017/tcp"))
	var client *mongo.Client
	if err := pool.Retry(func() error {
		c, err := Connect(context.Background(), uri)
		if err != nil {
			return err
		}
		client = c
		return nil
	}); err != nil {
		log.Fatalf("Could not connect to mongo: %s", err)
	}
	testDB = client.Database("uniform_exchange_test")

	code := m.Run()

	_ = client.Disconnect(context.Background())
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge resource: %s", err)
	}
	os.Exit(code)
}

func itListing(id, title, description, school string, createdAt time.Time) *listing.Listing {
	return &listing.Listing{
		ID:          id,
		Seller:      "seller-it",
		Title:       title,
		Description: description,
		SchoolNames: []string{school},
		Gender:      listing.GenderBoys,
		SchoolYear:  "Years 3-4",
		ItemType:    listing.ItemType{Kind: listing.KindBlazers},
		Condition:   listing.ConditionExcellent,
		PricePence:  2000,
		Photos:      []string{"photos/it.jpg"},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
		IsActive:    true,
	}
}

func TestListingRepository_TextSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(testDB)
	require.NoError(t, repo.EnsureIndexes(ctx))
	t.Cleanup(func() { _ = repo.collection.Drop(ctx) })

	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, repo.Create(ctx, itListing("listing-it-1", "Navy blazer", "Barely worn school blazer", "Oakfield Primary", now)))
	require.NoError(t, repo.Create(ctx, itListing("listing-it-2", "Grey trousers", "Pair of winter trousers", "Riverside Academy", now.Add(time.Second))))

	t.Run("FindsByTitleWord", func(t *testing.T) {
		got, total, err := repo.FindByFilter(ctx, listing.Filter{Query: "blazer", ActiveOnly: true})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "listing-it-1", got[0].ID)
	})

	t.Run("FindsByDescriptionWord", func(t *testing.T) {
		got, total, err := repo.FindByFilter(ctx, listing.Filter{Query: "winter", ActiveOnly: true})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "listing-it-2", got[0].ID)
	})

	t.Run("NoMatchReturnsEmpty", func(t *testing.T) {
		got, total, err := repo.FindByFilter(ctx, listing.Filter{Query: "rucksack", ActiveOnly: true})
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
		assert.Empty(t, got)
	})

	t.Run("EnsureIndexesIsIdempotent", func(t *testing.T) {
		assert.NoError(t, repo.EnsureIndexes(ctx))
	})
}

func TestListingRepository_DistinctSchoolNames(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository(testDB)
	require.NoError(t, repo.EnsureIndexes(ctx))
	t.Cleanup(func() { _ = repo.collection.Drop(ctx) })

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, itListing("listing-it-3", "White shirt", "Short sleeved", "Oakfield Primary", now)))
	inactive := itListing("listing-it-4", "PE shorts", "Black shorts", "Hillcrest High", now)
	inactive.IsActive = false
	require.NoError(t, repo.Create(ctx, inactive))

	names, err := repo.DistinctSchoolNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "Oakfield Primary")
	assert.NotContains(t, names, "Hillcrest High")
}

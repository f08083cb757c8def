package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/messaging/nats"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/repository/cache"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

func validDraft() listing.Draft {
	waist := 26.0
	return listing.Draft{
		Title:       "Grey school trousers",
		Description: "Worn one term, excellent condition",
		SchoolNames: []string{"Oakfield Primary"},
		Gender:      listing.GenderBoys,
		SchoolYear:  "Years 3-4",
		ItemType:    listing.ItemType{Kind: listing.KindTrousers},
		Condition:   listing.ConditionExcellent,
		PricePence:  600,
		Photos:      []string{"https://cdn.example/p1.jpg"},
		SizeMeasurements: listing.SizeMeasurements{
			WaistSize: &waist,
		},
	}
}

func acceptedTerms(termsRepo *MockTermsRepository, userID string) {
	termsRepo.On("Current", mock.Anything).Return(&terms.TermsAndConditions{Version: "2026-01"}, nil)
	termsRepo.On("HasAccepted", mock.Anything, userID, "2026-01").Return(true, nil)
}

func TestListingUsecase_CreateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesAndInvalidatesSchoolNames", func(t *testing.T) {
		repo := new(MockListingRepository)
		termsRepo := new(MockTermsRepository)
		mockCache := new(MockCache)
		events := new(MockEventPublisher)
		uc := NewListingUsecase(repo, termsRepo, mockCache, events, logger.NewNop())

		acceptedTerms(termsRepo, "seller-1")
		repo.On("Create", ctx, mock.AnythingOfType("*listing.Listing")).Return(nil).Once()
		mockCache.On("Invalidate", ctx, cache.SchoolNamesKey()).Return(nil).Once()
		events.On("Publish", ctx, nats.SubjectListingCreated, mock.Anything).Return(nil).Once()

		l, err := uc.CreateListing(ctx, "seller-1", validDraft())

		require.NoError(t, err)
		assert.Equal(t, "seller-1", l.Seller)
		assert.True(t, l.IsActive)
		repo.AssertExpectations(t)
		mockCache.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("RejectedWithoutCurrentTermsAcceptance", func(t *testing.T) {
		repo := new(MockListingRepository)
		termsRepo := new(MockTermsRepository)
		uc := NewListingUsecase(repo, termsRepo, new(MockCache), new(MockEventPublisher), logger.NewNop())

		termsRepo.On("Current", mock.Anything).Return(&terms.TermsAndConditions{Version: "2026-02"}, nil)
		termsRepo.On("HasAccepted", mock.Anything, "seller-1", "2026-02").Return(false, nil)

		_, err := uc.CreateListing(ctx, "seller-1", validDraft())

		assert.ErrorIs(t, err, terms.ErrNotAccepted)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("AcceptanceOfOldVersionDoesNotCount", func(t *testing.T) {
		repo := new(MockListingRepository)
		termsRepo := new(MockTermsRepository)
		uc := NewListingUsecase(repo, termsRepo, new(MockCache), new(MockEventPublisher), logger.NewNop())

		// user accepted 2026-01, but 2026-02 is now current
		termsRepo.On("Current", mock.Anything).Return(&terms.TermsAndConditions{Version: "2026-02"}, nil)
		termsRepo.On("HasAccepted", mock.Anything, "seller-1", "2026-02").Return(false, nil)

		_, err := uc.CreateListing(ctx, "seller-1", validDraft())
		assert.ErrorIs(t, err, terms.ErrNotAccepted)
	})

	t.Run("InvalidDraftReturnsFieldErrors", func(t *testing.T) {
		repo := new(MockListingRepository)
		termsRepo := new(MockTermsRepository)
		uc := NewListingUsecase(repo, termsRepo, new(MockCache), new(MockEventPublisher), logger.NewNop())

		acceptedTerms(termsRepo, "seller-1")
		draft := validDraft()
		draft.Title = ""
		draft.PricePence = 0

		_, err := uc.CreateListing(ctx, "seller-1", draft)

		var verrs listing.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Len(t, verrs, 2)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListingUsecase_UpdateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("NonOwnerRejected", func(t *testing.T) {
		repo := new(MockListingRepository)
		uc := NewListingUsecase(repo, new(MockTermsRepository), new(MockCache), new(MockEventPublisher), logger.NewNop())

		repo.On("FindByID", ctx, "listing-1").Return(&listing.Listing{ID: "listing-1", Seller: "seller-1"}, nil).Once()

		_, err := uc.UpdateListing(ctx, "intruder", "listing-1", validDraft())

		assert.ErrorIs(t, err, listing.ErrNotOwner)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("PreservesIdentityAndInvalidatesCache", func(t *testing.T) {
		repo := new(MockListingRepository)
		mockCache := new(MockCache)
		uc := NewListingUsecase(repo, new(MockTermsRepository), mockCache, new(MockEventPublisher), logger.NewNop())

		existing, errs := validDraft().Validate("seller-1", testTime())
		require.Empty(t, errs)
		repo.On("FindByID", ctx, existing.ID).Return(existing, nil).Once()
		repo.On("Update", ctx, mock.AnythingOfType("*listing.Listing")).Return(nil).Once()
		mockCache.On("Invalidate", ctx, cache.ListingKey(existing.ID), cache.SchoolNamesKey()).Return(nil).Once()

		draft := validDraft()
		draft.Title = "Grey school trousers, reduced"
		updated, err := uc.UpdateListing(ctx, "seller-1", existing.ID, draft)

		require.NoError(t, err)
		assert.Equal(t, existing.ID, updated.ID)
		assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "Grey school trousers, reduced", updated.Title)
		mockCache.AssertExpectations(t)
	})
}

func TestListingUsecase_DeactivateListing(t *testing.T) {
	ctx := context.Background()

	t.Run("DeactivatesOnce", func(t *testing.T) {
		repo := new(MockListingRepository)
		mockCache := new(MockCache)
		events := new(MockEventPublisher)
		uc := NewListingUsecase(repo, new(MockTermsRepository), mockCache, events, logger.NewNop())

		repo.On("FindByID", ctx, "listing-1").Return(&listing.Listing{ID: "listing-1", Seller: "seller-1", IsActive: true}, nil).Once()
		repo.On("Update", ctx, mock.MatchedBy(func(l *listing.Listing) bool { return !l.IsActive })).Return(nil).Once()
		mockCache.On("Invalidate", ctx, cache.ListingKey("listing-1"), cache.SchoolNamesKey()).Return(nil).Once()
		events.On("Publish", ctx, nats.SubjectListingDeactivated, mock.Anything).Return(nil).Once()

		require.NoError(t, uc.DeactivateListing(ctx, "seller-1", "listing-1"))
		repo.AssertExpectations(t)
	})

	t.Run("AlreadyInactiveIsNoop", func(t *testing.T) {
		repo := new(MockListingRepository)
		uc := NewListingUsecase(repo, new(MockTermsRepository), new(MockCache), new(MockEventPublisher), logger.NewNop())

		repo.On("FindByID", ctx, "listing-1").Return(&listing.Listing{ID: "listing-1", Seller: "seller-1", IsActive: false}, nil).Once()

		require.NoError(t, uc.DeactivateListing(ctx, "seller-1", "listing-1"))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestListingUsecase_GetListing_CacheAside(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	mockCache := new(MockCache)
	uc := NewListingUsecase(repo, new(MockTermsRepository), mockCache, new(MockEventPublisher), logger.NewNop())

	mockCache.On("Get", ctx, cache.ListingKey("listing-1"), mock.Anything).Return(cache.ErrMiss).Once()
	repo.On("FindByID", ctx, "listing-1").Return(&listing.Listing{ID: "listing-1"}, nil).Once()
	mockCache.On("Set", ctx, cache.ListingKey("listing-1"), mock.Anything).Return(nil).Once()

	l, err := uc.GetListing(ctx, "listing-1")

	require.NoError(t, err)
	assert.Equal(t, "listing-1", l.ID)
	mockCache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

package usecase

import (
	"context"
	"time"

	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/messaging/nats"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/repository/cache"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

type ListingUsecase struct {
	repo      listing.Repository
	termsRepo terms.Repository
	cache     Cache
	events    EventPublisher
	logger    logger.Logger
}

func NewListingUsecase(repo listing.Repository, termsRepo terms.Repository, c Cache, events EventPublisher, log logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		termsRepo: termsRepo,
		cache:     c,
		events:    events,
		logger:    log,
	}
}

// CreateListing validates the draft and persists it. The seller must have
// accepted the current terms version at the time of the call.
func (uc *ListingUsecase) CreateListing(ctx context.Context, seller string, draft listing.Draft) (*listing.Listing, error) {
	if err := uc.requireCurrentTerms(ctx, seller); err != nil {
		return nil, err
	}

	l, errs := draft.Validate(seller, time.Now().UTC())
	if len(errs) > 0 {
		uc.logger.Debugf("CreateListing: draft rejected for %s: %v", seller, errs)
		return nil, errs
	}

	if err := uc.repo.Create(ctx, l); err != nil {
		uc.logger.Errorf("CreateListing: failed to persist listing: %v", err)
		return nil, err
	}

	uc.invalidate(ctx, cache.SchoolNamesKey())
	uc.publish(ctx, nats.SubjectListingCreated, l)
	uc.logger.Infof("listing created: id=%s seller=%s", l.ID, seller)
	return l, nil
}

// UpdateListing replaces the mutable fields. Only the owner may update;
// id, seller and createdAt never change.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, actor, id string, draft listing.Draft) (*listing.Listing, error) {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Seller != actor {
		uc.logger.Warnf("UpdateListing: %s is not the owner of %s", actor, id)
		return nil, listing.ErrNotOwner
	}

	updated, errs := draft.Validate(existing.Seller, time.Now().UTC())
	if len(errs) > 0 {
		return nil, errs
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.IsActive = existing.IsActive

	if err := uc.repo.Update(ctx, updated); err != nil {
		uc.logger.Errorf("UpdateListing: failed to persist %s: %v", id, err)
		return nil, err
	}

	uc.invalidate(ctx, cache.ListingKey(id), cache.SchoolNamesKey())
	return updated, nil
}

// DeactivateListing is the soft delete. Only the owner may deactivate.
func (uc *ListingUsecase) DeactivateListing(ctx context.Context, actor, id string) error {
	l, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if l.Seller != actor {
		uc.logger.Warnf("DeactivateListing: %s is not the owner of %s", actor, id)
		return listing.ErrNotOwner
	}
	if !l.IsActive {
		return nil
	}

	l.IsActive = false
	if err := uc.repo.Update(ctx, l); err != nil {
		uc.logger.Errorf("DeactivateListing: failed to persist %s: %v", id, err)
		return err
	}

	uc.invalidate(ctx, cache.ListingKey(id), cache.SchoolNamesKey())
	uc.publish(ctx, nats.SubjectListingDeactivated, map[string]string{"listingId": id})
	return nil
}

// GetListing reads through the entity cache.
func (uc *ListingUsecase) GetListing(ctx context.Context, id string) (*listing.Listing, error) {
	var cached listing.Listing
	if err := uc.cache.Get(ctx, cache.ListingKey(id), &cached); err == nil {
		return &cached, nil
	}

	l, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, cache.ListingKey(id), l); err != nil {
		uc.logger.Warnf("GetListing: failed to cache %s: %v", id, err)
	}
	return l, nil
}

func (uc *ListingUsecase) SearchListings(ctx context.Context, filter listing.Filter) ([]*listing.Listing, int64, error) {
	return uc.repo.FindByFilter(ctx, filter)
}

// GetSchoolNames returns the distinct school names across active listings.
func (uc *ListingUsecase) GetSchoolNames(ctx context.Context) ([]string, error) {
	var cached []string
	if err := uc.cache.Get(ctx, cache.SchoolNamesKey(), &cached); err == nil {
		return cached, nil
	}

	names, err := uc.repo.DistinctSchoolNames(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, cache.SchoolNamesKey(), names); err != nil {
		uc.logger.Warnf("GetSchoolNames: failed to cache: %v", err)
	}
	return names, nil
}

// SuggestPrice proposes an asking price from the retail price.
func (uc *ListingUsecase) SuggestPrice(ctx context.Context, retailPence int64, kind listing.ItemTypeKind) (int64, error) {
	return listing.SuggestPrice(retailPence, kind)
}

func (uc *ListingUsecase) requireCurrentTerms(ctx context.Context, user string) error {
	current, err := uc.termsRepo.Current(ctx)
	if err != nil {
		return err
	}
	accepted, err := uc.termsRepo.HasAccepted(ctx, user, current.Version)
	if err != nil {
		return err
	}
	if !accepted {
		return terms.ErrNotAccepted
	}
	return nil
}

func (uc *ListingUsecase) invalidate(ctx context.Context, keys ...string) {
	if err := uc.cache.Invalidate(ctx, keys...); err != nil {
		uc.logger.Warnf("cache invalidation failed for %v: %v", keys, err)
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, data interface{}) {
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warnf("event publish failed for %s: %v", subject, err)
	}
}

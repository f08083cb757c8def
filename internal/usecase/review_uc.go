package usecase

import (
	"context"
	"time"

	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/messaging/nats"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/repository/cache"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/review"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

type ReviewUsecase struct {
	repo   review.Repository
	txRepo transaction.Repository
	cache  Cache
	events EventPublisher
	logger logger.Logger
}

func NewReviewUsecase(repo review.Repository, txRepo transaction.Repository, c Cache, events EventPublisher, log logger.Logger) *ReviewUsecase {
	return &ReviewUsecase{
		repo:   repo,
		txRepo: txRepo,
		cache:  c,
		events: events,
		logger: log,
	}
}

// SubmitReview lets the buyer of a paid transaction rate the seller, once.
// The seller is taken from the transaction record, never from the request.
func (uc *ReviewUsecase) SubmitReview(ctx context.Context, buyer, transactionID, comment string, rating int32) (*review.Review, error) {
	t, err := uc.txRepo.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.Buyer != buyer {
		return nil, transaction.ErrNotAuthorized
	}
	if !t.Status.AtLeast(transaction.StatusCompleted) {
		return nil, transaction.ErrStateTransitionRejected
	}

	r, err := review.New(t.Seller, buyer, t.ID, comment, rating, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, cache.SellerReviewsKey(t.Seller)); err != nil {
		uc.logger.Warnf("SubmitReview: cache invalidation failed for %s: %v", t.Seller, err)
	}
	if err := uc.events.Publish(ctx, nats.SubjectReviewSubmitted, r); err != nil {
		uc.logger.Warnf("SubmitReview: event publish failed: %v", err)
	}
	uc.logger.Infof("review submitted: id=%s seller=%s rating=%d", r.ID, t.Seller, rating)
	return r, nil
}

// SellerReviews returns all reviews for a seller, through the entity cache.
func (uc *ReviewUsecase) SellerReviews(ctx context.Context, seller string) ([]*review.Review, error) {
	var cached []*review.Review
	if err := uc.cache.Get(ctx, cache.SellerReviewsKey(seller), &cached); err == nil {
		return cached, nil
	}

	reviews, err := uc.repo.FindBySeller(ctx, seller)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, cache.SellerReviewsKey(seller), reviews); err != nil {
		uc.logger.Warnf("SellerReviews: failed to cache for %s: %v", seller, err)
	}
	return reviews, nil
}

// SellerRating aggregates a seller's reviews. Average is nil when the seller
// has no reviews.
type SellerRating struct {
	Average *float64         `json:"average"`
	Count   int              `json:"count"`
	Recent  []*review.Review `json:"recent"`
}

func (uc *ReviewUsecase) SellerRatingSummary(ctx context.Context, seller string, recentLimit int) (*SellerRating, error) {
	reviews, err := uc.SellerReviews(ctx, seller)
	if err != nil {
		return nil, err
	}
	return &SellerRating{
		Average: review.AverageRating(reviews),
		Count:   review.Count(reviews),
		Recent:  review.Recent(reviews, recentLimit),
	}, nil
}

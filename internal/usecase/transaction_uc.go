package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/email"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/messaging/nats"
	"github.com/FrFaber2025/school-uniform-exchange/internal/adapter/repository/cache"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/money"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/review"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/user"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

var ErrCannotBuyOwnListing = errors.New("a seller cannot buy their own listing")

type TransactionUsecase struct {
	repo        transaction.Repository
	listingRepo listing.Repository
	reviewRepo  review.Repository
	termsRepo   terms.Repository
	userRepo    user.Repository
	payConfig   payment.ConfigRepository
	cache       Cache
	events      EventPublisher
	mailer      email.Sender
	logger      logger.Logger
}

func NewTransactionUsecase(
	repo transaction.Repository,
	listingRepo listing.Repository,
	reviewRepo review.Repository,
	termsRepo terms.Repository,
	userRepo user.Repository,
	payConfig payment.ConfigRepository,
	c Cache,
	events EventPublisher,
	mailer email.Sender,
	log logger.Logger,
) *TransactionUsecase {
	return &TransactionUsecase{
		repo:        repo,
		listingRepo: listingRepo,
		reviewRepo:  reviewRepo,
		termsRepo:   termsRepo,
		userRepo:    userRepo,
		payConfig:   payConfig,
		cache:       c,
		events:      events,
		mailer:      mailer,
		logger:      log,
	}
}

// RecordTransaction creates the pending record for a buyer-initiated
// checkout. The buyer must have accepted the current terms.
func (uc *TransactionUsecase) RecordTransaction(ctx context.Context, buyer, listingID string) (*transaction.Transaction, error) {
	l, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !l.IsActive {
		return nil, listing.ErrListingNotFound
	}
	if l.Seller == buyer {
		return nil, ErrCannotBuyOwnListing
	}
	if err := uc.requireCurrentTerms(ctx, buyer); err != nil {
		return nil, err
	}

	t, err := transaction.New(l.ID, buyer, l.Seller, l.PricePence, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		uc.logger.Errorf("RecordTransaction: failed to persist: %v", err)
		return nil, err
	}

	uc.publish(ctx, nats.SubjectTransactionCreated, t)
	uc.logger.Infof("transaction recorded: id=%s listing=%s buyer=%s", t.ID, l.ID, buyer)
	return t, nil
}

// HandlePaymentSucceeded is the payment collaborator's capture confirmation.
func (uc *TransactionUsecase) HandlePaymentSucceeded(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	return uc.applyTransition(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.MarkCompleted(time.Now().UTC())
	}, nil)
}

// HandlePaymentFailed is the payment collaborator's decline/cancel outcome.
func (uc *TransactionUsecase) HandlePaymentFailed(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	return uc.applyTransition(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.MarkFailed()
	}, nil)
}

// ConfirmDispatch is seller-only; notifies the buyer by mail.
func (uc *TransactionUsecase) ConfirmDispatch(ctx context.Context, actor, transactionID string) (*transaction.Transaction, error) {
	return uc.applyTransition(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.ConfirmDispatch(actor, time.Now().UTC())
	}, func(t *transaction.Transaction) {
		uc.notify(ctx, t.Buyer, func(title, addr string) error {
			return uc.mailer.SendDispatchNotice(addr, title)
		}, t.ListingID)
	})
}

// ConfirmReceipt is buyer-only; triggers the fund-release computation and
// notifies the seller of what they will receive.
func (uc *TransactionUsecase) ConfirmReceipt(ctx context.Context, actor, transactionID string) (*transaction.Transaction, error) {
	return uc.applyTransition(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.ConfirmReceipt(actor, time.Now().UTC())
	}, func(t *transaction.Transaction) {
		breakdown, err := money.CalculateCommissionAndFee(t.AmountPence)
		if err != nil {
			uc.logger.Errorf("ConfirmReceipt: breakdown failed for %s: %v", t.ID, err)
			return
		}
		uc.notify(ctx, t.Seller, func(title, addr string) error {
			return uc.mailer.SendReceiptNotice(addr, title, breakdown.SellerReceives)
		}, t.ListingID)
	})
}

// ReleasePayment records the processed fund release. System-triggered.
func (uc *TransactionUsecase) ReleasePayment(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	return uc.applyTransition(ctx, transactionID, func(t *transaction.Transaction) error {
		return t.ReleasePayment(time.Now().UTC())
	}, nil)
}

// GetTransaction returns the transaction to its parties only.
func (uc *TransactionUsecase) GetTransaction(ctx context.Context, actor, id string) (*transaction.Transaction, error) {
	t, err := uc.findCached(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Buyer != actor && t.Seller != actor {
		return nil, transaction.ErrNotAuthorized
	}
	return t, nil
}

func (uc *TransactionUsecase) ListForUser(ctx context.Context, actor string) ([]*transaction.Transaction, error) {
	return uc.repo.FindForUser(ctx, actor)
}

// HasCompletedPaymentForListing reports whether the user's transaction for
// the listing has cleared payment.
func (uc *TransactionUsecase) HasCompletedPaymentForListing(ctx context.Context, actor, listingID string) (bool, error) {
	t, err := uc.repo.FindByListingAndBuyer(ctx, listingID, actor)
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return t.Status.Unlocked(), nil
}

// ViewerState assembles the authoritative snapshot and derives the UI gating
// booleans for the viewer.
func (uc *TransactionUsecase) ViewerState(ctx context.Context, viewer, listingID string) (*transaction.ViewerState, error) {
	l, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	var tx *transaction.Transaction
	t, err := uc.repo.FindByListingAndBuyer(ctx, listingID, viewer)
	switch {
	case err == nil:
		tx = t
	case errors.Is(err, transaction.ErrTransactionNotFound):
		// the seller sees the listing through the buyer's transaction too
		if viewer == l.Seller {
			tx = uc.latestForListingSeller(ctx, viewer, listingID)
		}
	default:
		return nil, err
	}

	alreadyReviewed := false
	if tx != nil && tx.Buyer == viewer {
		if _, err := uc.reviewRepo.FindByBuyerAndTransaction(ctx, viewer, tx.ID); err == nil {
			alreadyReviewed = true
		} else if !errors.Is(err, review.ErrNotFound) {
			return nil, err
		}
	}

	configured, err := uc.payConfig.IsConfigured(ctx)
	if err != nil {
		return nil, err
	}

	vs := transaction.DeriveViewerState(l, tx, viewer, alreadyReviewed, configured)
	return &vs, nil
}

// SellerContactDetails reveals the seller's contact details to the buyer of
// an unlocked transaction, and nobody else.
func (uc *TransactionUsecase) SellerContactDetails(ctx context.Context, viewer, listingID string) (*user.ContactDetails, error) {
	l, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	t, err := uc.repo.FindByListingAndBuyer(ctx, listingID, viewer)
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		return nil, transaction.ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	if !t.Status.Unlocked() {
		return nil, transaction.ErrNotAuthorized
	}

	seller, err := uc.userRepo.FindByID(ctx, l.Seller)
	if err != nil {
		return nil, err
	}
	contact := seller.Contact()
	return &contact, nil
}

func (uc *TransactionUsecase) latestForListingSeller(ctx context.Context, seller, listingID string) *transaction.Transaction {
	txns, err := uc.repo.FindForUser(ctx, seller)
	if err != nil {
		return nil
	}
	for _, t := range txns {
		if t.ListingID == listingID && t.Seller == seller {
			return t
		}
	}
	return nil
}

// applyTransition loads, transitions, persists and fans out. Any domain
// rejection propagates untouched so the port can map it.
func (uc *TransactionUsecase) applyTransition(ctx context.Context, id string, fn func(*transaction.Transaction) error, after func(*transaction.Transaction)) (*transaction.Transaction, error) {
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(t); err != nil {
		uc.logger.Warnf("transition rejected for %s: %v", id, err)
		return nil, err
	}
	if err := uc.repo.Update(ctx, t); err != nil {
		uc.logger.Errorf("failed to persist transition for %s: %v", id, err)
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, cache.TransactionKey(id), cache.ListingKey(t.ListingID)); err != nil {
		uc.logger.Warnf("cache invalidation failed for %s: %v", id, err)
	}
	uc.publish(ctx, nats.SubjectTransactionStatus, t)
	if after != nil {
		after(t)
	}
	return t, nil
}

func (uc *TransactionUsecase) findCached(ctx context.Context, id string) (*transaction.Transaction, error) {
	var cached transaction.Transaction
	if err := uc.cache.Get(ctx, cache.TransactionKey(id), &cached); err == nil {
		return &cached, nil
	}
	t, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, cache.TransactionKey(id), t); err != nil {
		uc.logger.Warnf("failed to cache transaction %s: %v", id, err)
	}
	return t, nil
}

// notify looks up the listing title and recipient mail address, then runs the
// send. Mail failures are logged, never surfaced to the caller.
func (uc *TransactionUsecase) notify(ctx context.Context, recipient string, send func(title, addr string) error, listingID string) {
	l, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		uc.logger.Warnf("notify: listing %s lookup failed: %v", listingID, err)
		return
	}
	p, err := uc.userRepo.FindByID(ctx, recipient)
	if err != nil || p.Email == "" {
		uc.logger.Debugf("notify: no mail address for %s", recipient)
		return
	}
	if err := send(l.Title, p.Email); err != nil {
		uc.logger.Warnf("notify: mail to %s failed: %v", recipient, err)
	}
}

func (uc *TransactionUsecase) requireCurrentTerms(ctx context.Context, userID string) error {
	current, err := uc.termsRepo.Current(ctx)
	if err != nil {
		return err
	}
	accepted, err := uc.termsRepo.HasAccepted(ctx, userID, current.Version)
	if err != nil {
		return err
	}
	if !accepted {
		return terms.ErrNotAccepted
	}
	return nil
}

func (uc *TransactionUsecase) publish(ctx context.Context, subject string, data interface{}) {
	if err := uc.events.Publish(ctx, subject, data); err != nil {
		uc.logger.Warnf("event publish failed for %s: %v", subject, err)
	}
}

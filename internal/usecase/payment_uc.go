package usecase

import (
	"context"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

// PaymentUsecase owns the processor configuration and drives checkout.
// Checkout piggybacks on TransactionUsecase so the pending record and the
// hosted session are created together.
type PaymentUsecase struct {
	config   payment.ConfigRepository
	provider payment.CheckoutProvider
	txUC     *TransactionUsecase
	logger   logger.Logger
}

func NewPaymentUsecase(config payment.ConfigRepository, provider payment.CheckoutProvider, txUC *TransactionUsecase, log logger.Logger) *PaymentUsecase {
	return &PaymentUsecase{
		config:   config,
		provider: provider,
		txUC:     txUC,
		logger:   log,
	}
}

// SetStripeConfiguration stores the processor credentials. Admin-only at the
// port layer.
func (uc *PaymentUsecase) SetStripeConfiguration(ctx context.Context, cfg *payment.StripeConfiguration) error {
	if err := uc.config.Set(ctx, cfg); err != nil {
		uc.logger.Errorf("SetStripeConfiguration: %v", err)
		return err
	}
	uc.logger.Info("stripe configuration updated")
	return nil
}

func (uc *PaymentUsecase) IsConfigured(ctx context.Context) (bool, error) {
	return uc.config.IsConfigured(ctx)
}

// CheckoutResult couples the pending transaction with the processor redirect.
type CheckoutResult struct {
	Transaction *transaction.Transaction `json:"transaction"`
	Session     *payment.CheckoutSession `json:"session"`
}

// CreateCheckout records the pending transaction, then opens a hosted
// session for it. A missing processor configuration fails the whole call
// before any record is written.
func (uc *PaymentUsecase) CreateCheckout(ctx context.Context, buyer, listingID, successURL, cancelURL string) (*CheckoutResult, error) {
	configured, err := uc.config.IsConfigured(ctx)
	if err != nil {
		return nil, err
	}
	if !configured {
		return nil, payment.ErrNotConfigured
	}

	t, err := uc.txUC.RecordTransaction(ctx, buyer, listingID)
	if err != nil {
		return nil, err
	}

	l, err := uc.txUC.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	session, err := uc.provider.CreateCheckoutSession(ctx, []payment.CheckoutItem{{
		ListingID:  l.ID,
		Name:       l.Title,
		PricePence: l.PricePence,
		Quantity:   1,
	}}, successURL, cancelURL)
	if err != nil {
		// no session was opened, so nothing can settle this record later;
		// fail it now rather than leave a dangling pending transaction
		uc.logger.Errorf("CreateCheckout: session creation failed for %s: %v", t.ID, err)
		if _, failErr := uc.txUC.HandlePaymentFailed(ctx, t.ID); failErr != nil {
			uc.logger.Errorf("CreateCheckout: could not fail transaction %s: %v", t.ID, failErr)
		}
		return nil, err
	}

	return &CheckoutResult{Transaction: t, Session: session}, nil
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/payment"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/terms"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

func newPaymentFixture(provider *MockCheckoutProvider, payConfig *MockPaymentConfigRepository, txf *txFixture) *PaymentUsecase {
	return NewPaymentUsecase(payConfig, provider, txf.uc, logger.NewNop())
}

func TestPaymentUsecase_SetStripeConfiguration(t *testing.T) {
	ctx := context.Background()

	t.Run("StoresValidConfig", func(t *testing.T) {
		payConfig := new(MockPaymentConfigRepository)
		uc := NewPaymentUsecase(payConfig, new(MockCheckoutProvider), nil, logger.NewNop())

		cfg := &payment.StripeConfiguration{SecretKey: "sk_test_1", PublishableKey: "pk_test_1"}
		payConfig.On("Set", ctx, cfg).Return(nil).Once()

		require.NoError(t, uc.SetStripeConfiguration(ctx, cfg))
		payConfig.AssertExpectations(t)
	})

	t.Run("PropagatesInvalidConfig", func(t *testing.T) {
		payConfig := new(MockPaymentConfigRepository)
		uc := NewPaymentUsecase(payConfig, new(MockCheckoutProvider), nil, logger.NewNop())

		cfg := &payment.StripeConfiguration{SecretKey: "sk_test_1"}
		payConfig.On("Set", ctx, cfg).Return(payment.ErrInvalidConfig).Once()

		assert.ErrorIs(t, uc.SetStripeConfiguration(ctx, cfg), payment.ErrInvalidConfig)
	})
}

func TestPaymentUsecase_CreateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("BlockedWhenNotConfigured", func(t *testing.T) {
		txf := newTxFixture()
		provider := new(MockCheckoutProvider)
		payConfig := new(MockPaymentConfigRepository)
		uc := newPaymentFixture(provider, payConfig, txf)

		payConfig.On("IsConfigured", mock.Anything).Return(false, nil).Once()

		_, err := uc.CreateCheckout(ctx, "buyer-1", "listing-1", "https://x/ok", "https://x/cancel")

		assert.ErrorIs(t, err, payment.ErrNotConfigured)
		txf.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		provider.AssertNotCalled(t, "CreateCheckoutSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RecordsPendingAndOpensSession", func(t *testing.T) {
		txf := newTxFixture()
		provider := new(MockCheckoutProvider)
		payConfig := new(MockPaymentConfigRepository)
		uc := newPaymentFixture(provider, payConfig, txf)

		payConfig.On("IsConfigured", mock.Anything).Return(true, nil).Once()
		txf.listingRepo.On("FindByID", ctx, "listing-1").Return(activeListing(), nil)
		txf.termsRepo.On("Current", mock.Anything).Return(&terms.TermsAndConditions{Version: "v1"}, nil).Once()
		txf.termsRepo.On("HasAccepted", mock.Anything, "buyer-1", "v1").Return(true, nil).Once()
		txf.repo.On("Create", ctx, mock.AnythingOfType("*transaction.Transaction")).Return(nil).Once()
		txf.events.On("Publish", ctx, mock.Anything, mock.Anything).Return(nil)

		provider.On("CreateCheckoutSession", ctx, mock.MatchedBy(func(items []payment.CheckoutItem) bool {
			return len(items) == 1 && items[0].ListingID == "listing-1" && items[0].PricePence == 2000
		}), "https://x/ok", "https://x/cancel").
			Return(&payment.CheckoutSession{ID: "cs_1", URL: "https://stripe/cs_1"}, nil).Once()

		result, err := uc.CreateCheckout(ctx, "buyer-1", "listing-1", "https://x/ok", "https://x/cancel")

		require.NoError(t, err)
		assert.Equal(t, "cs_1", result.Session.ID)
		assert.Equal(t, "listing-1", result.Transaction.ListingID)
		provider.AssertExpectations(t)
	})

	t.Run("SessionFailureFailsTransaction", func(t *testing.T) {
		txf := newTxFixture()
		provider := new(MockCheckoutProvider)
		payConfig := new(MockPaymentConfigRepository)
		uc := newPaymentFixture(provider, payConfig, txf)

		payConfig.On("IsConfigured", mock.Anything).Return(true, nil).Once()
		txf.listingRepo.On("FindByID", ctx, "listing-1").Return(activeListing(), nil)
		txf.termsRepo.On("Current", mock.Anything).Return(&terms.TermsAndConditions{Version: "v1"}, nil).Once()
		txf.termsRepo.On("HasAccepted", mock.Anything, "buyer-1", "v1").Return(true, nil).Once()
		txf.repo.On("Create", ctx, mock.AnythingOfType("*transaction.Transaction")).Run(func(args mock.Arguments) {
			tx := args.Get(1).(*transaction.Transaction)
			txf.repo.On("FindByID", ctx, tx.ID).Return(tx, nil).Once()
		}).Return(nil).Once()
		txf.repo.On("Update", ctx, mock.Anything).Return(nil).Once()
		txf.cache.On("Invalidate", ctx, mock.Anything, mock.Anything).Return(nil).Once()
		txf.events.On("Publish", ctx, mock.Anything, mock.Anything).Return(nil)

		provider.On("CreateCheckoutSession", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError).Once()

		_, err := uc.CreateCheckout(ctx, "buyer-1", "listing-1", "https://x/ok", "https://x/cancel")

		assert.ErrorIs(t, err, assert.AnError)
		txf.repo.AssertExpectations(t)
	})
}

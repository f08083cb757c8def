package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/message"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

func TestMessageUsecase_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("LockedWithoutTransaction", func(t *testing.T) {
		repo := new(MockMessageRepository)
		txRepo := new(MockTransactionRepository)
		listingRepo := new(MockListingRepository)
		uc := NewMessageUsecase(repo, txRepo, listingRepo, logger.NewNop())

		listingRepo.On("FindByID", ctx, "listing-1").Return(activeListing(), nil).Once()
		txRepo.On("FindByListingAndBuyer", ctx, "listing-1", "buyer-1").Return(nil, transaction.ErrTransactionNotFound).Once()

		_, err := uc.SendMessage(ctx, "buyer-1", "seller-1", "listing-1", "Is this still available?")

		assert.ErrorIs(t, err, message.ErrMessagingLocked)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("LockedWhilePending", func(t *testing.T) {
		repo := new(MockMessageRepository)
		txRepo := new(MockTransactionRepository)
		listingRepo := new(MockListingRepository)
		uc := NewMessageUsecase(repo, txRepo, listingRepo, logger.NewNop())

		listingRepo.On("FindByID", ctx, "listing-1").Return(activeListing(), nil).Once()
		txRepo.On("FindByListingAndBuyer", ctx, "listing-1", "buyer-1").Return(pendingTx(t), nil).Once()

		_, err := uc.SendMessage(ctx, "buyer-1", "seller-1", "listing-1", "Is this still available?")
		assert.ErrorIs(t, err, message.ErrMessagingLocked)
	})

	t.Run("UnlockedAfterCompletionBothDirections", func(t *testing.T) {
		for _, tc := range []struct{ sender, recipient string }{
			{"buyer-1", "seller-1"},
			{"seller-1", "buyer-1"},
		} {
			repo := new(MockMessageRepository)
			txRepo := new(MockTransactionRepository)
			listingRepo := new(MockListingRepository)
			uc := NewMessageUsecase(repo, txRepo, listingRepo, logger.NewNop())

			listingRepo.On("FindByID", ctx, "listing-1").Return(activeListing(), nil).Once()
			txRepo.On("FindByListingAndBuyer", ctx, "listing-1", "buyer-1").Return(completedTx(t), nil).Once()
			repo.On("Create", ctx, mock.AnythingOfType("*message.Message")).Return(nil).Once()

			m, err := uc.SendMessage(ctx, tc.sender, tc.recipient, "listing-1", "When will you post it?")

			require.NoError(t, err)
			assert.Equal(t, tc.sender, m.Sender)
			repo.AssertExpectations(t)
		}
	})

	t.Run("ThirdPartyLockedEvenWithPaidTransaction", func(t *testing.T) {
		repo := new(MockMessageRepository)
		txRepo := new(MockTransactionRepository)
		listingRepo := new(MockListingRepository)
		uc := NewMessageUsecase(repo, txRepo, listingRepo, logger.NewNop())

		listingRepo.On("FindByID", ctx, "listing-1").Return(activeListing(), nil).Once()

		_, err := uc.SendMessage(ctx, "stranger", "other-stranger", "listing-1", "Hello there")

		assert.ErrorIs(t, err, message.ErrMessagingLocked)
		txRepo.AssertNotCalled(t, "FindByListingAndBuyer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmptyContentRejected", func(t *testing.T) {
		uc := NewMessageUsecase(new(MockMessageRepository), new(MockTransactionRepository), new(MockListingRepository), logger.NewNop())

		_, err := uc.SendMessage(ctx, "buyer-1", "seller-1", "listing-1", "   ")
		assert.ErrorIs(t, err, message.ErrInvalidInput)
	})
}

func TestMessageUsecase_Conversation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockMessageRepository)
	uc := NewMessageUsecase(repo, new(MockTransactionRepository), new(MockListingRepository), logger.NewNop())

	thread := []*message.Message{{ID: "msg-1"}, {ID: "msg-2"}}
	repo.On("FindByListingAndParties", ctx, "listing-1", "buyer-1", "seller-1").Return(thread, nil).Once()

	got, err := uc.Conversation(ctx, "buyer-1", "seller-1", "listing-1")

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

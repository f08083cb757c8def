package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/listing"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/message"
	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/transaction"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

type MessageUsecase struct {
	repo        message.Repository
	txRepo      transaction.Repository
	listingRepo listing.Repository
	logger      logger.Logger
}

func NewMessageUsecase(repo message.Repository, txRepo transaction.Repository, listingRepo listing.Repository, log logger.Logger) *MessageUsecase {
	return &MessageUsecase{
		repo:        repo,
		txRepo:      txRepo,
		listingRepo: listingRepo,
		logger:      log,
	}
}

// SendMessage delivers a message between the buyer and seller of a listing.
// Messaging stays locked until a transaction between the parties has cleared
// payment.
func (uc *MessageUsecase) SendMessage(ctx context.Context, sender, recipient, listingID, content string) (*message.Message, error) {
	m, err := message.New(sender, recipient, listingID, content, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.requireUnlocked(ctx, listingID, sender, recipient); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, m); err != nil {
		uc.logger.Errorf("SendMessage: failed to persist: %v", err)
		return nil, err
	}
	uc.logger.Infof("message sent: id=%s listing=%s", m.ID, listingID)
	return m, nil
}

func (uc *MessageUsecase) ListForUser(ctx context.Context, userID string) ([]*message.Message, error) {
	return uc.repo.FindForUser(ctx, userID)
}

// Conversation returns the thread between the caller and the other party,
// oldest first. The caller must be one of the parties.
func (uc *MessageUsecase) Conversation(ctx context.Context, caller, other, listingID string) ([]*message.Message, error) {
	if caller == "" || other == "" {
		return nil, transaction.ErrNotAuthorized
	}
	return uc.repo.FindByListingAndParties(ctx, listingID, caller, other)
}

// MarkRead flags a received message as read. Only the recipient may do so;
// the repository enforces the recipient match.
func (uc *MessageUsecase) MarkRead(ctx context.Context, caller, messageID string) error {
	return uc.repo.MarkRead(ctx, messageID, caller)
}

// requireUnlocked checks that a transaction between the two parties for the
// listing exists and has cleared payment.
func (uc *MessageUsecase) requireUnlocked(ctx context.Context, listingID, a, b string) error {
	l, err := uc.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}

	// one of the parties is the seller, the other must hold the transaction
	var buyer string
	switch l.Seller {
	case a:
		buyer = b
	case b:
		buyer = a
	default:
		return message.ErrMessagingLocked
	}

	t, err := uc.txRepo.FindByListingAndBuyer(ctx, listingID, buyer)
	if errors.Is(err, transaction.ErrTransactionNotFound) {
		return message.ErrMessagingLocked
	}
	if err != nil {
		return err
	}
	if !t.Status.Unlocked() {
		return message.ErrMessagingLocked
	}
	return nil
}

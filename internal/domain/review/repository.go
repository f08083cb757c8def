package review

import "context"

type Repository interface {
	// Create persists the review; returns ErrAlreadyExists when the buyer has
	// already reviewed this transaction.
	Create(ctx context.Context, r *Review) error
	FindBySeller(ctx context.Context, seller string) ([]*Review, error)
	// FindByBuyerAndTransaction returns ErrNotFound when no review exists.
	FindByBuyerAndTransaction(ctx context.Context, buyer, transactionID string) (*Review, error)
}

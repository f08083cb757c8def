package transaction

import "context"

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	Update(ctx context.Context, t *Transaction) error
	FindByID(ctx context.Context, id string) (*Transaction, error)
	// FindByListingAndBuyer returns the buyer's most recent transaction for
	// the listing, or ErrTransactionNotFound.
	FindByListingAndBuyer(ctx context.Context, listingID, buyer string) (*Transaction, error)
	// FindForUser returns transactions where the user is buyer or seller.
	FindForUser(ctx context.Context, user string) ([]*Transaction, error)
}

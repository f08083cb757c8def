package listing

import "context"

// Filter narrows browse queries. Zero values mean "no constraint".
type Filter struct {
	Query      string
	SchoolName string
	Gender     Gender
	SchoolYear string
	ItemKind   ItemTypeKind
	MinPence   int64
	MaxPence   int64
	Seller     string
	ActiveOnly bool
	Page       int64
	Limit      int64
}

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	Update(ctx context.Context, l *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, int64, error)
	// DistinctSchoolNames returns every school named by an active listing.
	DistinctSchoolNames(ctx context.Context) ([]string, error)
}

package review

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("review not found")
	ErrAlreadyExists = errors.New("review already exists for this transaction")
	ErrSelfReview    = errors.New("a seller cannot review themselves")
	ErrInvalidInput  = errors.New("invalid review data")
)

const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 10
	MaxCommentLength = 500
)

// Review is a buyer's rating of a seller, tied to one completed transaction.
type Review struct {
	ID            string    `json:"id" bson:"_id"`
	Seller        string    `json:"seller" bson:"seller"`
	Buyer         string    `json:"buyer" bson:"buyer"`
	Rating        int32     `json:"rating" bson:"rating"`
	Comment       string    `json:"comment" bson:"comment"`
	TransactionID string    `json:"transactionId" bson:"transaction_id"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
}

// New validates and builds a review. At-most-one-per-(buyer, transaction) is
// enforced by the repository, not here.
func New(seller, buyer, transactionID, comment string, rating int32, now time.Time) (*Review, error) {
	if seller == "" || buyer == "" || transactionID == "" {
		return nil, fmt.Errorf("%w: seller, buyer and transaction are required", ErrInvalidInput)
	}
	if seller == buyer {
		return nil, ErrSelfReview
	}
	if rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, MinRating, MaxRating)
	}
	comment = strings.TrimSpace(comment)
	if len(comment) < MinCommentLength || len(comment) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be %d to %d characters", ErrInvalidInput, MinCommentLength, MaxCommentLength)
	}
	return &Review{
		ID:            "review-" + uuid.NewString(),
		Seller:        seller,
		Buyer:         buyer,
		Rating:        rating,
		Comment:       comment,
		TransactionID: transactionID,
		CreatedAt:     now,
	}, nil
}

// AverageRating returns the arithmetic mean of the ratings, or nil for an
// empty collection so "no reviews" is distinguishable from "rated zero".
func AverageRating(reviews []*Review) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	var sum int64
	for _, r := range reviews {
		sum += int64(r.Rating)
	}
	avg := float64(sum) / float64(len(reviews))
	return &avg
}

// Count returns the number of reviews.
func Count(reviews []*Review) int {
	return len(reviews)
}

// Recent returns the n most recent reviews by CreatedAt descending. Ties keep
// their original relative order.
func Recent(reviews []*Review, n int) []*Review {
	if n < 0 {
		n = 0
	}
	out := make([]*Review, len(reviews))
	copy(out, reviews)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}

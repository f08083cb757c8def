package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrStateTransitionRejected is returned for any out-of-order transition
	// attempt. Callers surface it and re-fetch authoritative state.
	ErrStateTransitionRejected = errors.New("state transition rejected")
	// ErrNotAuthorized is returned when the wrong party attempts a transition.
	ErrNotAuthorized = errors.New("not authorized for this transition")
	ErrInvalidInput  = errors.New("invalid transaction data")
)

// Status is the lifecycle position of a purchase. The happy path is
// pending -> completed -> dispatched -> received -> paymentReleased;
// failed is terminal and reachable only from pending.
type Status string

const (
	StatusPending         Status = "pending"
	StatusCompleted       Status = "completed"
	StatusFailed          Status = "failed"
	StatusDispatched      Status = "dispatched"
	StatusReceived        Status = "received"
	StatusPaymentReleased Status = "paymentReleased"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusDispatched, StatusReceived, StatusPaymentReleased:
		return true
	}
	return false
}

// statusRank orders the linear progression for "status >= completed" checks.
// failed sits outside the progression.
var statusRank = map[Status]int{
	StatusPending:         0,
	StatusCompleted:       1,
	StatusDispatched:      2,
	StatusReceived:        3,
	StatusPaymentReleased: 4,
}

// AtLeast reports whether s has reached want on the linear progression.
func (s Status) AtLeast(want Status) bool {
	r, ok := statusRank[s]
	w, wok := statusRank[want]
	return ok && wok && r >= w
}

// Unlocked reports whether the transaction has cleared payment: contact
// details and messaging open up from completed onward.
func (s Status) Unlocked() bool {
	return s != StatusPending && s != StatusFailed
}

var validTransitions = map[Status][]Status{
	StatusPending:         {StatusCompleted, StatusFailed},
	StatusCompleted:       {StatusDispatched},
	StatusDispatched:      {StatusReceived},
	StatusReceived:        {StatusPaymentReleased},
	StatusPaymentReleased: {},
	StatusFailed:          {},
}

func canTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transaction records a single purchase and its fulfillment lifecycle.
// Timestamps are set once when the matching status is reached and never
// cleared.
type Transaction struct {
	ID                string     `json:"id" bson:"_id"`
	ListingID         string     `json:"listingId" bson:"listing_id"`
	Buyer             string     `json:"buyer" bson:"buyer"`
	Seller            string     `json:"seller" bson:"seller"`
	AmountPence       int64      `json:"amountPence" bson:"amount_pence"`
	Status            Status     `json:"status" bson:"status"`
	CreatedAt         time.Time  `json:"createdAt" bson:"created_at"`
	CompletedAt       *time.Time `json:"completedAt,omitempty" bson:"completed_at,omitempty"`
	DispatchedAt      *time.Time `json:"dispatchedAt,omitempty" bson:"dispatched_at,omitempty"`
	ReceivedAt        *time.Time `json:"receivedAt,omitempty" bson:"received_at,omitempty"`
	PaymentReleasedAt *time.Time `json:"paymentReleasedAt,omitempty" bson:"payment_released_at,omitempty"`
}

// New creates a pending transaction for a buyer-initiated checkout.
func New(listingID, buyer, seller string, amountPence int64, now time.Time) (*Transaction, error) {
	if listingID == "" || buyer == "" || seller == "" {
		return nil, fmt.Errorf("%w: listing, buyer and seller are required", ErrInvalidInput)
	}
	if buyer == seller {
		return nil, fmt.Errorf("%w: buyer and seller must differ", ErrInvalidInput)
	}
	if amountPence <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}
	return &Transaction{
		ID:          "txn-" + uuid.NewString(),
		ListingID:   listingID,
		Buyer:       buyer,
		Seller:      seller,
		AmountPence: amountPence,
		Status:      StatusPending,
		CreatedAt:   now,
	}, nil
}

func (t *Transaction) transition(to Status) error {
	if !canTransition(t.Status, to) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrStateTransitionRejected, t.Status, to)
	}
	t.Status = to
	return nil
}

// MarkCompleted records a confirmed payment capture. System-triggered.
func (t *Transaction) MarkCompleted(at time.Time) error {
	if err := t.transition(StatusCompleted); err != nil {
		return err
	}
	t.CompletedAt = &at
	return nil
}

// MarkFailed records a declined or cancelled payment. Terminal.
func (t *Transaction) MarkFailed() error {
	return t.transition(StatusFailed)
}

// ConfirmDispatch is the seller confirming the item has been sent.
func (t *Transaction) ConfirmDispatch(actor string, at time.Time) error {
	if actor != t.Seller {
		return fmt.Errorf("%w: only the seller may confirm dispatch", ErrNotAuthorized)
	}
	if err := t.transition(StatusDispatched); err != nil {
		return err
	}
	t.DispatchedAt = &at
	return nil
}

// ConfirmReceipt is the buyer confirming the item arrived. This is what
// triggers the fund-release computation downstream.
func (t *Transaction) ConfirmReceipt(actor string, at time.Time) error {
	if actor != t.Buyer {
		return fmt.Errorf("%w: only the buyer may confirm receipt", ErrNotAuthorized)
	}
	if err := t.transition(StatusReceived); err != nil {
		return err
	}
	t.ReceivedAt = &at
	return nil
}

// ReleasePayment records the processed fund release. System-triggered.
func (t *Transaction) ReleasePayment(at time.Time) error {
	if err := t.transition(StatusPaymentReleased); err != nil {
		return err
	}
	t.PaymentReleasedAt = &at
	return nil
}

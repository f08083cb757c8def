package money

import (
	"errors"
	"math"
)

// All monetary amounts in this service are integer pence. Display-currency
// floats exist only at the edges (form input, JSON responses).

const (
	// ListingFeePence is the fixed, non-refundable charge per listing (£1.50).
	ListingFeePence int64 = 150

	// CommissionRatePercent is the platform commission deducted from sale proceeds.
	CommissionRatePercent int64 = 5
)

var ErrNonPositiveAmount = errors.New("amount must be greater than zero")

// ToMinorUnits converts a display amount in pounds to integer pence,
// rounding half up. Listing prices must be positive.
func ToMinorUnits(display float64) (int64, error) {
	if display <= 0 {
		return 0, ErrNonPositiveAmount
	}
	return int64(math.Floor(display*100 + 0.5)), nil
}

// ToDisplayUnits converts integer pence to pounds.
func ToDisplayUnits(minor int64) float64 {
	return float64(minor) / 100
}

// Breakdown is the result of applying platform deductions to a sale amount.
type Breakdown struct {
	Commission      int64 `json:"commission"`
	ListingFee      int64 `json:"listingFee"`
	TotalDeductions int64 `json:"totalDeductions"`
	SellerReceives  int64 `json:"sellerReceives"`
}

// CalculateCommissionAndFee computes the 5% commission (rounded half up) and
// the fixed listing fee for a sale amount in pence. The identity
// SellerReceives + Commission + ListingFee == amount always holds.
func CalculateCommissionAndFee(amount int64) (*Breakdown, error) {
	if amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	// Integer arithmetic keeps the rounding exact: 5% of amount, half up.
	commission := (amount*CommissionRatePercent + 50) / 100
	deductions := commission + ListingFeePence
	return &Breakdown{
		Commission:      commission,
		ListingFee:      ListingFeePence,
		TotalDeductions: deductions,
		SellerReceives:  amount - deductions,
	}, nil
}

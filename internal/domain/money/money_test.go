package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCommissionAndFee_TwentyPounds(t *testing.T) {
	b, err := CalculateCommissionAndFee(2000)
	require.NoError(t, err)

	assert.Equal(t, int64(100), b.Commission)
	assert.Equal(t, int64(150), b.ListingFee)
	assert.Equal(t, int64(250), b.TotalDeductions)
	assert.Equal(t, int64(1750), b.SellerReceives)
}

func TestCalculateCommissionAndFee_RoundsCommissionHalfUp(t *testing.T) {
	// 5% of 1010 is 50.5 -> 51
	b, err := CalculateCommissionAndFee(1010)
	require.NoError(t, err)
	assert.Equal(t, int64(51), b.Commission)

	// 5% of 1009 is 50.45 -> 50
	b, err = CalculateCommissionAndFee(1009)
	require.NoError(t, err)
	assert.Equal(t, int64(50), b.Commission)
}

func TestCalculateCommissionAndFee_BreakdownSumsToAmount(t *testing.T) {
	for _, amount := range []int64{1, 99, 100, 150, 151, 999, 1010, 2000, 123456, 999999} {
		b, err := CalculateCommissionAndFee(amount)
		require.NoError(t, err)
		assert.Equal(t, amount, b.SellerReceives+b.Commission+b.ListingFee,
			"breakdown must sum back to the amount for %d", amount)
		assert.Equal(t, int64(150), b.ListingFee)
	}
}

func TestCalculateCommissionAndFee_RejectsNonPositive(t *testing.T) {
	for _, amount := range []int64{0, -1, -2000} {
		b, err := CalculateCommissionAndFee(amount)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	}
}

func TestToMinorUnits(t *testing.T) {
	got, err := ToMinorUnits(20.00)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got)

	got, err = ToMinorUnits(12.34)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got)

	// exact binary fraction: 0.125 pounds is 12.5 pence, half rounds up
	got, err = ToMinorUnits(0.125)
	require.NoError(t, err)
	assert.Equal(t, int64(13), got)

	_, err = ToMinorUnits(0)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
	_, err = ToMinorUnits(-5)
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
}

func TestToDisplayUnits(t *testing.T) {
	assert.Equal(t, 17.5, ToDisplayUnits(1750))
	assert.Equal(t, 0.01, ToDisplayUnits(1))
}

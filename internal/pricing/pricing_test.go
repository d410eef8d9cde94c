package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_RedemptionDiscount(t *testing.T) {
	// Four $12.50 tickets, redeeming 200 of 500 available points.
	q, err := Compute(1250, 4, 200, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), q.OriginalAmountCents)
	assert.Equal(t, int64(2000), q.DiscountCents)
	assert.Equal(t, int64(3000), q.FinalAmountCents)
	assert.Equal(t, int64(3), q.PointsEarned)
	assert.Equal(t, int64(-197), q.PointDelta)
}

func TestCompute_NoRedemption(t *testing.T) {
	q, err := Compute(1000, 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), q.FinalAmountCents)
	assert.Equal(t, int64(2), q.PointsEarned)
	assert.Equal(t, int64(2), q.PointDelta)
}

func TestCompute_PartialHundredsIgnored(t *testing.T) {
	// 250 points discount the same $10 as 200 would, but all 250 are spent.
	q, err := Compute(2000, 1, 250, 400)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), q.DiscountCents)
	assert.Equal(t, int64(0), q.FinalAmountCents)
	assert.Equal(t, int64(0), q.PointsEarned)
	assert.Equal(t, int64(-250), q.PointDelta)
}

func TestCompute_InsufficientPoints(t *testing.T) {
	_, err := Compute(1000, 1, 300, 100)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestCompute_InsufficientCheckedBeforeDiscount(t *testing.T) {
	// The balance check short-circuits even when the redemption would
	// also exceed the order total.
	_, err := Compute(100, 1, 300, 100)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestCompute_RedemptionExceedsTotal(t *testing.T) {
	// $5 order, $10 discount requested: rejected instead of going negative.
	_, err := Compute(500, 1, 100, 1000)
	assert.ErrorIs(t, err, ErrRedemptionExceedsTotal)
}

func TestCompute_EarnedFloorsOnDiscountedAmount(t *testing.T) {
	// $19.99 earns one point, not two.
	q, err := Compute(1999, 1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), q.PointsEarned)
}

func TestCompute_InvalidOrder(t *testing.T) {
	cases := []struct {
		name      string
		unitPrice int64
		seats     int
		redeem    int64
		available int64
	}{
		{"zero seats", 1000, 0, 0, 0},
		{"negative seats", 1000, -1, 0, 0},
		{"negative price", -1, 1, 0, 0},
		{"negative redemption", 1000, 1, -5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute(tc.unitPrice, tc.seats, tc.redeem, tc.available)
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
}

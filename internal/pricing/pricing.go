// Package pricing computes order totals and loyalty-point movements for
// ticket bookings. All money is integer cents; the package performs no
// I/O, which keeps every rule unit-testable in isolation from storage.
package pricing

import "errors"

const (
	// RedemptionUnitPoints is the smallest block of points that can be
	// turned into a discount. Partial blocks are ignored: redeeming 250
	// points discounts the same amount as redeeming 200.
	RedemptionUnitPoints = 100
	// RedemptionUnitCents is the discount value of one redemption unit:
	// every whole 100 points is worth a fixed $10.
	RedemptionUnitCents = 1000
	// EarnRateCents is the spend required to earn one point: one point
	// per $10 of the discounted amount actually charged.
	EarnRateCents = 1000
)

var (
	// ErrInsufficientPoints is returned when the caller asks to redeem
	// more points than the account currently holds. No quote is
	// produced; the balance is never allowed to go negative.
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	// ErrRedemptionExceedsTotal is returned when the requested
	// redemption would discount more than the order is worth. A final
	// amount below zero is never produced.
	ErrRedemptionExceedsTotal = errors.New("redemption exceeds order total")
	// ErrInvalidOrder is returned for non-positive seat counts or
	// negative prices/redemptions.
	ErrInvalidOrder = errors.New("invalid order parameters")
)

// Quote is the priced outcome of a booking before it is committed. The
// amounts recorded at commit time come from here and are never
// recomputed later.
type Quote struct {
	OriginalAmountCents int64 // unit price × seat count
	DiscountCents       int64 // value of the redeemed points
	FinalAmountCents    int64 // amount actually charged
	PointsEarned        int64 // points granted for this order
	PointsRedeemed      int64 // points spent on the discount
	PointDelta          int64 // net balance adjustment: earned − redeemed
}

// Compute prices an order of seatCount tickets at unitPriceCents each,
// applying an optional loyalty redemption against availablePoints.
//
// The redemption is validated against the available balance before any
// discount math happens; a request to redeem more than the balance fails
// with ErrInsufficientPoints and nothing else is computed.
func Compute(unitPriceCents int64, seatCount int, pointsToRedeem, availablePoints int64) (Quote, error) {
	if unitPriceCents < 0 || seatCount <= 0 || pointsToRedeem < 0 || availablePoints < 0 {
		return Quote{}, ErrInvalidOrder
	}
	original := unitPriceCents * int64(seatCount)
	if pointsToRedeem > 0 && pointsToRedeem > availablePoints {
		return Quote{}, ErrInsufficientPoints
	}
	discount := (pointsToRedeem / RedemptionUnitPoints) * RedemptionUnitCents
	if discount > original {
		return Quote{}, ErrRedemptionExceedsTotal
	}
	final := original - discount
	earned := final / EarnRateCents
	return Quote{
		OriginalAmountCents: original,
		DiscountCents:       discount,
		FinalAmountCents:    final,
		PointsEarned:        earned,
		PointsRedeemed:      pointsToRedeem,
		PointDelta:          earned - pointsToRedeem,
	}, nil
}

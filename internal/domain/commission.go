package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Commission defaults applied when a sale is recorded without explicit values
var (
	DefaultCommissionRatePercent = decimal.RequireFromString("3.5")
	DefaultSplitRatio            = decimal.NewFromInt(1)
)

// CommissionBasis returns the amount, in cents, the split ratio applies to.
// A fixed override always wins over the rate.
func CommissionBasis(amountCents int64, ratePercent decimal.Decimal, override *int64) decimal.Decimal {
	if override != nil {
		return decimal.NewFromInt(*override)
	}
	return decimal.NewFromInt(amountCents).Mul(ratePercent).Div(hundred)
}

// CommissionCents computes the agent's share of a sale's commission in whole cents.
//
//	basis      = override, or amountCents * ratePercent / 100
//	commission = round(basis * splitRatio), half-up
//
// Inputs are validated at the record store boundary, so nothing here can fail.
func CommissionCents(amountCents int64, ratePercent decimal.Decimal, override *int64, splitRatio decimal.Decimal) int64 {
	share := CommissionBasis(amountCents, ratePercent, override).Mul(splitRatio)
	// Round is half away from zero, which is half-up for the non-negative values stored here
	return share.Round(0).IntPart()
}

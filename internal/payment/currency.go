package payment

import (
	"github.com/shopspring/decimal"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
)

// Gateway-imposed bounds on a single order, in minor units of the settlement
// currency (paise).
const (
	MinOrderAmount = 100
	MaxOrderAmount = 50_000_000
)

// SettlementCurrency is the currency the gateway settles in. Course prices
// are listed in USD and converted at a fixed configured rate; the rate is a
// static constant, not a live quote.
const SettlementCurrency = "INR"

// ToMinorUnits converts a price in major currency units to integer minor
// units, rounding half up.
func ToMinorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Convert converts an amount in minor units of the listing currency to minor
// units of the settlement currency at the given rate, rounding half up.
func Convert(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}

// ValidateAmount enforces the gateway order bounds on a converted amount.
// Violations are terminal: the caller must not create an order.
func ValidateAmount(amount int64) error {
	if amount < MinOrderAmount {
		return apperr.ErrAmountTooSmall
	}
	if amount > MaxOrderAmount {
		return apperr.ErrAmountTooLarge
	}
	return nil
}

// Package tier resolves a customer's loyalty segment from total spend.
package tier

import (
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

// Resolve returns the name of the first configured tier whose range contains
// the spend amount. Every amount resolves to some tier: when no range
// matches, the default tier name is returned.
func Resolve(tiers []entity.LoyaltyTier, spend decimal.Decimal) string {
	for _, t := range tiers {
		if spend.GreaterThanOrEqual(t.MinValue) && spend.LessThanOrEqual(t.MaxValue) {
			return t.Name
		}
	}
	return entity.DefaultTierName
}

// ResolveTier returns the full tier definition, for callers that need the
// display color as well.
func ResolveTier(tiers []entity.LoyaltyTier, spend decimal.Decimal) entity.LoyaltyTier {
	for _, t := range tiers {
		if spend.GreaterThanOrEqual(t.MinValue) && spend.LessThanOrEqual(t.MaxValue) {
			return t
		}
	}
	for _, t := range tiers {
		if t.Name == entity.DefaultTierName {
			return t
		}
	}
	return entity.LoyaltyTier{Name: entity.DefaultTierName}
}

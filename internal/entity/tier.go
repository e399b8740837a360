package entity

import "github.com/shopspring/decimal"

// LoyaltyTier is one configured segment range. Tiers are consulted in
// configured order; ranges should be contiguous and non-overlapping but
// nothing enforces that, the first matching range wins.
type LoyaltyTier struct {
	Name     string
	MinValue decimal.Decimal
	MaxValue decimal.Decimal
	Color    string
}

// DefaultTierName is returned when no configured range matches.
const DefaultTierName = "Bronze"

// DefaultLoyaltyTiers mirrors the stock spend-based segmentation.
func DefaultLoyaltyTiers() []LoyaltyTier {
	return []LoyaltyTier{
		{Name: "Bronze", MinValue: decimal.Zero, MaxValue: decimal.NewFromFloat(499.99), Color: "#CD7F32"},
		{Name: "Silver", MinValue: decimal.NewFromInt(500), MaxValue: decimal.NewFromFloat(1999.99), Color: "#C0C0C0"},
		{Name: "Gold", MinValue: decimal.NewFromInt(2000), MaxValue: decimal.NewFromFloat(4999.99), Color: "#FFD700"},
		{Name: "Platinum", MinValue: decimal.NewFromInt(5000), MaxValue: decimal.NewFromInt(999999999), Color: "#E5E4E2"},
	}
}

package tier

import (
	"testing"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveDefaults(t *testing.T) {
	tiers := entity.DefaultLoyaltyTiers()

	assert.Equal(t, "Bronze", Resolve(tiers, decimal.Zero))
	assert.Equal(t, "Bronze", Resolve(tiers, decimal.NewFromFloat(499.99)))
	assert.Equal(t, "Silver", Resolve(tiers, decimal.NewFromInt(500)))
	assert.Equal(t, "Silver", Resolve(tiers, decimal.NewFromFloat(1999.99)))
	assert.Equal(t, "Gold", Resolve(tiers, decimal.NewFromInt(2000)))
	assert.Equal(t, "Gold", Resolve(tiers, decimal.NewFromFloat(4999.99)))
	assert.Equal(t, "Platinum", Resolve(tiers, decimal.NewFromInt(5000)))
	assert.Equal(t, "Platinum", Resolve(tiers, decimal.NewFromInt(250000)))
}

func TestResolveGapFallsBackToDefault(t *testing.T) {
	// A misconfigured set with a hole between ranges still resolves.
	tiers := []entity.LoyaltyTier{
		{Name: "Low", MinValue: decimal.Zero, MaxValue: decimal.NewFromInt(100)},
		{Name: "High", MinValue: decimal.NewFromInt(500), MaxValue: decimal.NewFromInt(1000)},
	}

	assert.Equal(t, entity.DefaultTierName, Resolve(tiers, decimal.NewFromInt(300)))
	assert.Equal(t, entity.DefaultTierName, Resolve(nil, decimal.NewFromInt(300)))
}

func TestResolveFirstMatchWins(t *testing.T) {
	tiers := []entity.LoyaltyTier{
		{Name: "First", MinValue: decimal.Zero, MaxValue: decimal.NewFromInt(1000)},
		{Name: "Second", MinValue: decimal.NewFromInt(500), MaxValue: decimal.NewFromInt(2000)},
	}

	assert.Equal(t, "First", Resolve(tiers, decimal.NewFromInt(700)))
}

func TestResolveTierColor(t *testing.T) {
	tiers := entity.DefaultLoyaltyTiers()

	got := ResolveTier(tiers, decimal.NewFromInt(2500))
	assert.Equal(t, "Gold", got.Name)
	assert.Equal(t, "#FFD700", got.Color)
}

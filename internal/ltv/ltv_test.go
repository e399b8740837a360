package ltv

import (
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func order(placed time.Time, total float64) entity.Order {
	return entity.Order{
		TotalPrice:   decimal.NewFromFloat(total),
		Currency:     "BDT",
		BillingEmail: "customer@example.com",
		BillingName:  "Test Customer",
		Placed:       placed,
	}
}

func TestDeriveSingleOrder(t *testing.T) {
	orders := []entity.Order{order(now.AddDate(0, 0, -10), 1200)}

	got := Derive(orders, decimal.NewFromInt(400), now, Config{})

	assert.Equal(t, 1, got.TotalOrders)
	assert.True(t, got.TotalSpent.Equal(decimal.NewFromInt(1200)))
	assert.True(t, got.LifetimeValue.Equal(decimal.NewFromInt(1200)))
	assert.True(t, got.AverageOrderValue.Equal(decimal.NewFromInt(1200)))
	assert.True(t, got.AverageProfitPerOrder.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 10, got.DaysSinceLastOrder)
	// one order in one floored month
	assert.True(t, got.OrderFrequency.Equal(decimal.NewFromInt(1)))
	assert.True(t, got.IsActive)
	assert.Equal(t, "Silver", got.CustomerSegment)
}

func TestDeriveFrequencyAndPrediction(t *testing.T) {
	// four orders across 90 days: 3 months active, frequency 1.33
	orders := []entity.Order{
		order(now.AddDate(0, 0, -95), 500),
		order(now.AddDate(0, 0, -65), 500),
		order(now.AddDate(0, 0, -35), 500),
		order(now.AddDate(0, 0, -5), 500),
	}

	got := Derive(orders, decimal.NewFromInt(800), now, Config{})

	require.Equal(t, 4, got.TotalOrders)
	assert.True(t, got.OrderFrequency.Equal(decimal.NewFromFloat(1.33)), "frequency %s", got.OrderFrequency)
	// predicted = total spent + aov * frequency * 12
	want := decimal.NewFromInt(2000).
		Add(decimal.NewFromInt(500).Mul(decimal.NewFromFloat(1.33)).Mul(decimal.NewFromInt(12))).
		Round(2)
	assert.True(t, got.PredictedLTV.Equal(want), "predicted %s want %s", got.PredictedLTV, want)
	assert.Equal(t, "Gold", got.CustomerSegment)
}

func TestDeriveDormantCustomerNoPrediction(t *testing.T) {
	orders := []entity.Order{
		order(now.AddDate(0, 0, -400), 300),
		order(now.AddDate(0, 0, -200), 300),
	}

	got := Derive(orders, decimal.Zero, now, Config{})

	assert.False(t, got.IsActive)
	// dormant customers keep their spend to date as the prediction
	assert.True(t, got.PredictedLTV.Equal(got.TotalSpent))
	assert.Equal(t, 200, got.DaysSinceLastOrder)
}

func TestDeriveActivityThresholdBoundary(t *testing.T) {
	// exactly at the threshold counts as dormant
	orders := []entity.Order{order(now.AddDate(0, 0, -180), 300)}

	got := Derive(orders, decimal.Zero, now, Config{})

	assert.False(t, got.IsActive)
	assert.True(t, got.PredictedLTV.Equal(got.TotalSpent))
}

func TestDeriveIdempotent(t *testing.T) {
	orders := []entity.Order{
		order(now.AddDate(0, 0, -50), 750.50),
		order(now.AddDate(0, 0, -20), 249.50),
	}
	profit := decimal.NewFromFloat(123.45)

	first := Derive(orders, profit, now, Config{})
	second := Derive(orders, profit, now, Config{})

	assert.Equal(t, first, second)
}

func TestDeriveEmptyOrders(t *testing.T) {
	got := Derive(nil, decimal.Zero, now, Config{})

	assert.Equal(t, 0, got.TotalOrders)
	assert.Equal(t, entity.DefaultTierName, got.CustomerSegment)
	assert.False(t, got.FirstOrderDate.Valid)
}

func TestDeriveFutureOrderClampsDaysSince(t *testing.T) {
	// Clock skew between host and analytics must not go negative.
	orders := []entity.Order{order(now.AddDate(0, 0, 1), 100)}

	got := Derive(orders, decimal.Zero, now, Config{})

	assert.Equal(t, 0, got.DaysSinceLastOrder)
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func setupTestStore(t *testing.T) (*MYSQLStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	ms := &MYSQLStore{
		db: sqlx.NewDb(db, "sqlmock"),
	}
	return ms, mock, func() { db.Close() }
}

func TestIsErrUniqueViolation(t *testing.T) {
	ms := &MYSQLStore{}

	assert.True(t, ms.IsErrUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.False(t, ms.IsErrUniqueViolation(&mysql.MySQLError{Number: 1213}))
	assert.False(t, ms.IsErrUniqueViolation(errors.New("plain error")))
	assert.False(t, ms.IsErrUniqueViolation(nil))
}

func TestIsErrorRepeat(t *testing.T) {
	ms := &MYSQLStore{}

	assert.True(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: 1213}))
	assert.True(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: 1205}))
	assert.False(t, ms.IsErrorRepeat(&mysql.MySQLError{Number: 1062}))
	assert.False(t, ms.IsErrorRepeat(errors.New("plain error")))
}

func TestNowFrozenInTx(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ms := &MYSQLStore{ts: ts}
	assert.Equal(t, ts, ms.Now())

	fresh := &MYSQLStore{}
	assert.WithinDuration(t, time.Now(), fresh.Now(), time.Second)
}

func TestSetOrderNormalizedPhone(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	mock.ExpectExec("UPDATE customer_order SET billing_normalized_phone").
		WithArgs("+8801711223344", 42).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := ms.SetOrderNormalizedPhone(context.Background(), 42, "+8801711223344")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasAttribution(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COUNT(.+) FROM attribution").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	got, err := ms.HasAttribution(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderProfitTotal(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(profit_amount \\* quantity\\), 0\\)").
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("345.60"))

	total, err := ms.GetOrderProfitTotal(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "345.6", total.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCampaignSpendRowCount(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	mock.ExpectExec("UPDATE attribution").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := ms.UpdateCampaignSpend(context.Background(), "facebook", "eid-sale", mustDecimal(t, "1500"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLTVSummaryTierCounts(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	aggCols := []string{
		"total_customers", "active_customers", "total_ltv",
		"average_ltv", "average_orders", "average_order_value",
	}
	mock.ExpectQuery("SELECT(.+)FROM customer_ltv").
		WillReturnRows(sqlmock.NewRows(aggCols).
			AddRow(5, 3, "9000.00", "1800.00", "2.40", "750.00"))
	mock.ExpectQuery("SELECT customer_segment, COUNT(.+) FROM customer_ltv GROUP BY customer_segment").
		WillReturnRows(sqlmock.NewRows([]string{"customer_segment", "cnt"}).
			AddRow("bronze", 3).
			AddRow("Silver", 2))

	summary, err := ms.GetLTVSummary(context.Background(), entity.DefaultLoyaltyTiers())
	require.NoError(t, err)

	// fixed slot per configured tier, stored casing folded
	require.Len(t, summary.TierCounts, 4)
	assert.Equal(t, entity.TierCount{TierName: "Bronze", Count: 3}, summary.TierCounts[0])
	assert.Equal(t, entity.TierCount{TierName: "Silver", Count: 2}, summary.TierCounts[1])
	assert.Equal(t, entity.TierCount{TierName: "Gold", Count: 0}, summary.TierCounts[2])
	assert.Equal(t, entity.TierCount{TierName: "Platinum", Count: 0}, summary.TierCounts[3])

	sum := 0
	for _, tc := range summary.TierCounts {
		sum += tc.Count
	}
	assert.Equal(t, summary.TotalCustomers, sum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLTVSummaryUnknownSegmentDropped(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	aggCols := []string{
		"total_customers", "active_customers", "total_ltv",
		"average_ltv", "average_orders", "average_order_value",
	}
	mock.ExpectQuery("SELECT(.+)FROM customer_ltv").
		WillReturnRows(sqlmock.NewRows(aggCols).
			AddRow(5, 2, "4000.00", "800.00", "1.60", "500.00"))
	mock.ExpectQuery("SELECT customer_segment, COUNT(.+) FROM customer_ltv GROUP BY customer_segment").
		WillReturnRows(sqlmock.NewRows([]string{"customer_segment", "cnt"}).
			AddRow("Bronze", 3).
			AddRow("VIP", 2))

	summary, err := ms.GetLTVSummary(context.Background(), entity.DefaultLoyaltyTiers())
	require.NoError(t, err)

	// a stored segment outside the configured tiers gets no slot
	sum := 0
	for _, tc := range summary.TierCounts {
		sum += tc.Count
	}
	assert.Equal(t, 3, sum)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetChannelPerformanceExcludesEmptySource(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	cols := []string{
		"utm_source", "utm_medium", "utm_campaign", "conversions", "revenue",
		"profit", "avg_order_value", "total_spend", "roi_percentage",
	}
	mock.ExpectQuery("FROM attribution\\s+WHERE utm_source != '' AND conversion_date BETWEEN").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("facebook", "cpc", "eid-sale", 4, "8000.00", "2000.00", "2000.00", "500.00", "400.00"))

	tr := entity.TimeRange{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	channels, err := ms.GetChannelPerformance(context.Background(), tr)
	require.NoError(t, err)

	require.Len(t, channels, 1)
	assert.Equal(t, "facebook", channels[0].UTMSource)
	assert.True(t, channels[0].ROIPercentage.Equal(mustDecimal(t, "400")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLTVByCustomerId(t *testing.T) {
	ms, mock, cleanup := setupTestStore(t)
	defer cleanup()

	cols := []string{
		"id", "customer_id", "customer_phone", "customer_email", "customer_name",
		"total_orders", "total_spent", "total_profit", "average_order_value",
		"average_profit_per_order", "first_order_date", "last_order_date",
		"lifetime_value", "predicted_ltv", "days_since_last_order", "order_frequency",
		"customer_segment", "is_active", "currency", "date_calculated", "date_updated",
	}
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM customer_ltv WHERE customer_id").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			1, 5, nil, "a@b.c", "A B",
			3, "2500.00", "700.00", "833.33",
			"233.33", now, now,
			"2500.00", "1000.00", 12, "1.50",
			"Gold", true, "BDT", now, now,
		))

	ltv, err := ms.GetLTVByCustomerId(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), ltv.CustomerID.Int64)
	assert.Equal(t, 3, ltv.TotalOrders)
	assert.Equal(t, "Gold", ltv.CustomerSegment)
	assert.True(t, ltv.IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

package courier

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(s string) sql.NullTime {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return sql.NullTime{Time: t, Valid: true}
}

var none = sql.NullTime{}

func TestDeriveMetricsOnTime(t *testing.T) {
	m := DeriveMetrics(date("2024-01-01"), date("2024-01-05"), date("2024-01-04"))

	assert.Equal(t, entity.DeliveryDelivered, m.Status)
	assert.True(t, m.OnTimeDelivery)
	assert.True(t, m.DelayDays.IsZero())
	assert.True(t, m.DeliveryTimeDays.Valid)
	assert.True(t, m.DeliveryTimeDays.Decimal.Equal(decimal.NewFromInt(3)), "days %s", m.DeliveryTimeDays.Decimal)
}

func TestDeriveMetricsLate(t *testing.T) {
	m := DeriveMetrics(date("2024-01-01"), date("2024-01-05"), date("2024-01-07"))

	assert.Equal(t, entity.DeliveryDelivered, m.Status)
	assert.False(t, m.OnTimeDelivery)
	assert.True(t, m.DelayDays.Equal(decimal.NewFromInt(2)), "delay %s", m.DelayDays)
	assert.True(t, m.DeliveryTimeDays.Decimal.Equal(decimal.NewFromInt(6)))
}

func TestDeriveMetricsExactlyOnEstimate(t *testing.T) {
	m := DeriveMetrics(date("2024-01-01"), date("2024-01-05"), date("2024-01-05"))

	assert.True(t, m.OnTimeDelivery)
	assert.True(t, m.DelayDays.IsZero())
}

func TestDeriveMetricsFractionalDays(t *testing.T) {
	dispatch := sql.NullTime{Time: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), Valid: true}
	actual := sql.NullTime{Time: time.Date(2024, 1, 3, 20, 0, 0, 0, time.UTC), Valid: true}

	m := DeriveMetrics(dispatch, none, actual)

	assert.True(t, m.DeliveryTimeDays.Decimal.Equal(decimal.NewFromFloat(2.5)), "days %s", m.DeliveryTimeDays.Decimal)
}

func TestDeriveMetricsLifecycleStatus(t *testing.T) {
	assert.Equal(t, entity.DeliveryPending, DeriveMetrics(none, none, none).Status)
	assert.Equal(t, entity.DeliveryInTransit, DeriveMetrics(date("2024-01-01"), none, none).Status)
	assert.Equal(t, entity.DeliveryDelivered, DeriveMetrics(date("2024-01-01"), none, date("2024-01-03")).Status)
}

func TestDeriveMetricsNoDispatch(t *testing.T) {
	// Delivered without a recorded dispatch: no delivery time and no
	// punctuality verdict either.
	m := DeriveMetrics(none, date("2024-01-05"), date("2024-01-04"))

	assert.Equal(t, entity.DeliveryDelivered, m.Status)
	assert.False(t, m.DeliveryTimeDays.Valid)
	assert.False(t, m.OnTimeDelivery)
	assert.True(t, m.DelayDays.IsZero())
}

func TestDeriveMetricsNoEstimate(t *testing.T) {
	// No estimate to compare against: not on time, not delayed.
	m := DeriveMetrics(date("2024-01-01"), none, date("2024-01-03"))

	assert.False(t, m.OnTimeDelivery)
	assert.True(t, m.DelayDays.IsZero())
}

func TestDeriveMetricsActualBeforeDispatchClamped(t *testing.T) {
	m := DeriveMetrics(date("2024-01-05"), none, date("2024-01-03"))

	assert.True(t, m.DeliveryTimeDays.Valid)
	assert.True(t, m.DeliveryTimeDays.Decimal.IsZero())
}

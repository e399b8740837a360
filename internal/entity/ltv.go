package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerLTV represents one row of the customer_ltv table. A row is keyed
// by exactly one identity: a registered account id, or a normalized phone
// number for guest checkouts. The two keyspaces are tracked independently;
// the same person ordering once as guest and once registered produces two
// rows. Recomputation is always a full overwrite of the stored values.
type CustomerLTV struct {
	ID                    int             `db:"id"`
	CustomerID            sql.NullInt64   `db:"customer_id"`
	CustomerPhone         sql.NullString  `db:"customer_phone"`
	CustomerEmail         string          `db:"customer_email"`
	CustomerName          string          `db:"customer_name"`
	TotalOrders           int             `db:"total_orders"`
	TotalSpent            decimal.Decimal `db:"total_spent"`
	TotalProfit           decimal.Decimal `db:"total_profit"`
	AverageOrderValue     decimal.Decimal `db:"average_order_value"`
	AverageProfitPerOrder decimal.Decimal `db:"average_profit_per_order"`
	FirstOrderDate        sql.NullTime    `db:"first_order_date"`
	LastOrderDate         sql.NullTime    `db:"last_order_date"`
	LifetimeValue         decimal.Decimal `db:"lifetime_value"`
	PredictedLTV          decimal.Decimal `db:"predicted_ltv"`
	DaysSinceLastOrder    int             `db:"days_since_last_order"`
	OrderFrequency        decimal.Decimal `db:"order_frequency"`
	CustomerSegment       string          `db:"customer_segment"`
	IsActive              bool            `db:"is_active"`
	Currency              string          `db:"currency"`
	DateCalculated        time.Time       `db:"date_calculated"`
	DateUpdated           time.Time       `db:"date_updated"`
}

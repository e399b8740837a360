package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

type ltvStore struct {
	*MYSQLStore
}

// LTV returns an object implementing LTV interface
func (ms *MYSQLStore) LTV() dependency.LTV {
	return &ltvStore{
		MYSQLStore: ms,
	}
}

// UpsertCustomerLTV overwrites the row keyed by customer_id. The unique key
// on customer_id serializes concurrent writers; the derived values are a
// full overwrite, so last write wins is correct.
func (ms *MYSQLStore) UpsertCustomerLTV(ctx context.Context, ltv *entity.CustomerLTV) error {
	if !ltv.CustomerID.Valid {
		return fmt.Errorf("customer id is not set")
	}

	query := `
	INSERT INTO customer_ltv
		(customer_id, customer_email, customer_name, total_orders, total_spent,
		total_profit, average_order_value, average_profit_per_order,
		first_order_date, last_order_date, lifetime_value, predicted_ltv,
		days_since_last_order, order_frequency, customer_segment, is_active,
		currency, date_calculated, date_updated)
	VALUES
		(:customerId, :customerEmail, :customerName, :totalOrders, :totalSpent,
		:totalProfit, :averageOrderValue, :averageProfitPerOrder,
		:firstOrderDate, :lastOrderDate, :lifetimeValue, :predictedLtv,
		:daysSinceLastOrder, :orderFrequency, :customerSegment, :isActive,
		:currency, :dateCalculated, :dateUpdated)
	ON DUPLICATE KEY UPDATE
		customer_email = VALUES(customer_email),
		customer_name = VALUES(customer_name),
		total_orders = VALUES(total_orders),
		total_spent = VALUES(total_spent),
		total_profit = VALUES(total_profit),
		average_order_value = VALUES(average_order_value),
		average_profit_per_order = VALUES(average_profit_per_order),
		first_order_date = VALUES(first_order_date),
		last_order_date = VALUES(last_order_date),
		lifetime_value = VALUES(lifetime_value),
		predicted_ltv = VALUES(predicted_ltv),
		days_since_last_order = VALUES(days_since_last_order),
		order_frequency = VALUES(order_frequency),
		customer_segment = VALUES(customer_segment),
		is_active = VALUES(is_active),
		currency = VALUES(currency),
		date_updated = VALUES(date_updated)`

	err := ExecNamed(ctx, ms.DB(), query, ltvParams(ms.Now(), ltv, map[string]any{
		"customerId": ltv.CustomerID.Int64,
	}))
	if err != nil {
		return fmt.Errorf("can't upsert customer ltv: %w", err)
	}
	return nil
}

// UpsertGuestLTV overwrites the row keyed by customer_phone.
func (ms *MYSQLStore) UpsertGuestLTV(ctx context.Context, ltv *entity.CustomerLTV) error {
	if !ltv.CustomerPhone.Valid || ltv.CustomerPhone.String == "" {
		return fmt.Errorf("customer phone is not set")
	}

	query := `
	INSERT INTO customer_ltv
		(customer_phone, customer_email, customer_name, total_orders, total_spent,
		total_profit, average_order_value, average_profit_per_order,
		first_order_date, last_order_date, lifetime_value, predicted_ltv,
		days_since_last_order, order_frequency, customer_segment, is_active,
		currency, date_calculated, date_updated)
	VALUES
		(:customerPhone, :customerEmail, :customerName, :totalOrders, :totalSpent,
		:totalProfit, :averageOrderValue, :averageProfitPerOrder,
		:firstOrderDate, :lastOrderDate, :lifetimeValue, :predictedLtv,
		:daysSinceLastOrder, :orderFrequency, :customerSegment, :isActive,
		:currency, :dateCalculated, :dateUpdated)
	ON DUPLICATE KEY UPDATE
		customer_email = VALUES(customer_email),
		customer_name = VALUES(customer_name),
		total_orders = VALUES(total_orders),
		total_spent = VALUES(total_spent),
		total_profit = VALUES(total_profit),
		average_order_value = VALUES(average_order_value),
		average_profit_per_order = VALUES(average_profit_per_order),
		first_order_date = VALUES(first_order_date),
		last_order_date = VALUES(last_order_date),
		lifetime_value = VALUES(lifetime_value),
		predicted_ltv = VALUES(predicted_ltv),
		days_since_last_order = VALUES(days_since_last_order),
		order_frequency = VALUES(order_frequency),
		customer_segment = VALUES(customer_segment),
		is_active = VALUES(is_active),
		currency = VALUES(currency),
		date_updated = VALUES(date_updated)`

	err := ExecNamed(ctx, ms.DB(), query, ltvParams(ms.Now(), ltv, map[string]any{
		"customerPhone": ltv.CustomerPhone.String,
	}))
	if err != nil {
		return fmt.Errorf("can't upsert guest ltv: %w", err)
	}
	return nil
}

func ltvParams(now time.Time, ltv *entity.CustomerLTV, extra map[string]any) map[string]any {
	params := map[string]any{
		"customerEmail":         ltv.CustomerEmail,
		"customerName":          ltv.CustomerName,
		"totalOrders":           ltv.TotalOrders,
		"totalSpent":            ltv.TotalSpent,
		"totalProfit":           ltv.TotalProfit,
		"averageOrderValue":     ltv.AverageOrderValue,
		"averageProfitPerOrder": ltv.AverageProfitPerOrder,
		"firstOrderDate":        ltv.FirstOrderDate,
		"lastOrderDate":         ltv.LastOrderDate,
		"lifetimeValue":         ltv.LifetimeValue,
		"predictedLtv":          ltv.PredictedLTV,
		"daysSinceLastOrder":    ltv.DaysSinceLastOrder,
		"orderFrequency":        ltv.OrderFrequency,
		"customerSegment":       ltv.CustomerSegment,
		"isActive":              ltv.IsActive,
		"currency":              ltv.Currency,
		"dateCalculated":        now,
		"dateUpdated":           now,
	}
	for k, v := range extra {
		params[k] = v
	}
	return params
}

func (ms *MYSQLStore) GetLTVByCustomerId(ctx context.Context, customerID int) (*entity.CustomerLTV, error) {
	query := `
	SELECT id, customer_id, customer_phone, customer_email, customer_name,
		total_orders, total_spent, total_profit, average_order_value,
		average_profit_per_order, first_order_date, last_order_date,
		lifetime_value, predicted_ltv, days_since_last_order, order_frequency,
		customer_segment, is_active, currency, date_calculated, date_updated
	FROM customer_ltv WHERE customer_id = :customerId`

	ltv, err := QueryNamedOne[entity.CustomerLTV](ctx, ms.DB(), query, map[string]any{
		"customerId": customerID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ltv not found for customer: %d", customerID)
		}
		return nil, fmt.Errorf("can't get ltv by customer id: %w", err)
	}
	return &ltv, nil
}

func (ms *MYSQLStore) GetLTVByPhone(ctx context.Context, phone string) (*entity.CustomerLTV, error) {
	query := `
	SELECT id, customer_id, customer_phone, customer_email, customer_name,
		total_orders, total_spent, total_profit, average_order_value,
		average_profit_per_order, first_order_date, last_order_date,
		lifetime_value, predicted_ltv, days_since_last_order, order_frequency,
		customer_segment, is_active, currency, date_calculated, date_updated
	FROM customer_ltv WHERE customer_phone = :phone`

	ltv, err := QueryNamedOne[entity.CustomerLTV](ctx, ms.DB(), query, map[string]any{
		"phone": phone,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ltv not found for phone: %s", phone)
		}
		return nil, fmt.Errorf("can't get ltv by phone: %w", err)
	}
	return &ltv, nil
}

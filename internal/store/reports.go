package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
)

type reportsStore struct {
	*MYSQLStore
}

// Reports returns an object implementing Reports interface
func (ms *MYSQLStore) Reports() dependency.Reports {
	return &reportsStore{
		MYSQLStore: ms,
	}
}

// endOfDay widens the upper bound so a date-only range includes the whole
// final day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func (ms *MYSQLStore) GetProfitSummary(ctx context.Context, tr entity.TimeRange) (*entity.ProfitSummary, error) {
	query := `
	SELECT
		COUNT(DISTINCT order_id) AS total_orders,
		COALESCE(SUM(quantity), 0) AS total_items_sold,
		COALESCE(SUM(selling_price * quantity), 0) AS total_revenue,
		COALESCE(SUM((cost_price + additional_costs + shipping_cost) * quantity), 0) AS total_costs,
		COALESCE(SUM(profit_amount * quantity), 0) AS total_profit,
		COALESCE(AVG(profit_margin), 0) AS average_margin
	FROM line_item_profit
	WHERE order_date BETWEEN :from AND :to`

	summary, err := QueryNamedOne[entity.ProfitSummary](ctx, ms.DB(), query, map[string]any{
		"from": tr.From,
		"to":   endOfDay(tr.To),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get profit summary: %w", err)
	}
	return &summary, nil
}

func (ms *MYSQLStore) GetProfitRows(ctx context.Context, tr entity.TimeRange, limit, offset int) ([]entity.LineItemProfit, error) {
	query := `
	SELECT id, order_id, product_id, variation_id, sku, product_name,
		cost_price, selling_price, profit_amount, profit_margin,
		additional_costs, shipping_cost, tax_amount, currency, quantity,
		order_date, created_at, updated_at
	FROM line_item_profit
	WHERE order_date BETWEEN :from AND :to
	ORDER BY order_date DESC, id DESC
	LIMIT :limit OFFSET :offset`

	rows, err := QueryListNamed[entity.LineItemProfit](ctx, ms.DB(), query, map[string]any{
		"from":   tr.From,
		"to":     endOfDay(tr.To),
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get profit rows: %w", err)
	}
	return rows, nil
}

// GetLTVSummary aggregates across both identity keyspaces. Tier counts come
// back as one fixed slot per configured tier, zero when no customers match;
// stored segments are matched case-insensitively.
func (ms *MYSQLStore) GetLTVSummary(ctx context.Context, tiers []entity.LoyaltyTier) (*entity.LTVSummary, error) {
	query := `
	SELECT
		COUNT(*) AS total_customers,
		COALESCE(SUM(is_active), 0) AS active_customers,
		COALESCE(SUM(lifetime_value), 0) AS total_ltv,
		COALESCE(AVG(lifetime_value), 0) AS average_ltv,
		COALESCE(AVG(total_orders), 0) AS average_orders,
		COALESCE(AVG(average_order_value), 0) AS average_order_value
	FROM customer_ltv`

	summary, err := QueryNamedOne[entity.LTVSummary](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get ltv summary: %w", err)
	}

	countQuery := `SELECT customer_segment, COUNT(*) AS cnt FROM customer_ltv GROUP BY customer_segment`
	type row struct {
		Segment string `db:"customer_segment"`
		Count   int    `db:"cnt"`
	}
	rows, err := QueryListNamed[row](ctx, ms.DB(), countQuery, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get segment counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[strings.ToLower(r.Segment)] += r.Count
	}
	summary.TierCounts = make([]entity.TierCount, 0, len(tiers))
	for _, t := range tiers {
		summary.TierCounts = append(summary.TierCounts, entity.TierCount{
			TierName: t.Name,
			Count:    counts[strings.ToLower(t.Name)],
		})
	}
	return &summary, nil
}

func (ms *MYSQLStore) GetTopCustomers(ctx context.Context, filter entity.LTVFilter, limit int) ([]entity.CustomerLTV, error) {
	query := `
	SELECT id, customer_id, customer_phone, customer_email, customer_name,
		total_orders, total_spent, total_profit, average_order_value,
		average_profit_per_order, first_order_date, last_order_date,
		lifetime_value, predicted_ltv, days_since_last_order, order_frequency,
		customer_segment, is_active, currency, date_calculated, date_updated
	FROM customer_ltv
	WHERE (:segment = '' OR LOWER(customer_segment) = LOWER(:segment))
		AND (:filterActive = FALSE OR is_active = :isActive)
	ORDER BY lifetime_value DESC
	LIMIT :limit`

	filterActive := filter.IsActive != nil
	isActive := filterActive && *filter.IsActive

	customers, err := QueryListNamed[entity.CustomerLTV](ctx, ms.DB(), query, map[string]any{
		"segment":      filter.Segment,
		"filterActive": filterActive,
		"isActive":     isActive,
		"limit":        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get top customers: %w", err)
	}
	return customers, nil
}

func (ms *MYSQLStore) GetChannelPerformance(ctx context.Context, tr entity.TimeRange) ([]entity.ChannelPerformance, error) {
	query := `
	SELECT
		utm_source,
		utm_medium,
		utm_campaign,
		COUNT(*) AS conversions,
		COALESCE(SUM(order_total), 0) AS revenue,
		COALESCE(SUM(order_profit), 0) AS profit,
		COALESCE(AVG(order_total), 0) AS avg_order_value,
		COALESCE(SUM(marketing_spend), 0) AS total_spend,
		CASE WHEN COALESCE(SUM(marketing_spend), 0) > 0
			THEN ROUND(SUM(order_profit) / SUM(marketing_spend) * 100, 2)
			ELSE 0 END AS roi_percentage
	FROM attribution
	WHERE utm_source != '' AND conversion_date BETWEEN :from AND :to
	GROUP BY utm_source, utm_medium, utm_campaign
	ORDER BY revenue DESC`

	channels, err := QueryListNamed[entity.ChannelPerformance](ctx, ms.DB(), query, map[string]any{
		"from": tr.From,
		"to":   endOfDay(tr.To),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get channel performance: %w", err)
	}
	return channels, nil
}

func (ms *MYSQLStore) GetTopChannels(ctx context.Context, tr entity.TimeRange, limit int) ([]entity.ChannelTotals, error) {
	query := `
	SELECT
		utm_source,
		COUNT(*) AS conversions,
		COALESCE(SUM(order_total), 0) AS revenue,
		COALESCE(SUM(order_profit), 0) AS profit,
		COALESCE(SUM(marketing_spend), 0) AS spend
	FROM attribution
	WHERE utm_source != '' AND conversion_date BETWEEN :from AND :to
	GROUP BY utm_source
	ORDER BY revenue DESC
	LIMIT :limit`

	channels, err := QueryListNamed[entity.ChannelTotals](ctx, ms.DB(), query, map[string]any{
		"from":  tr.From,
		"to":    endOfDay(tr.To),
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get top channels: %w", err)
	}
	return channels, nil
}

func (ms *MYSQLStore) GetCourierSummary(ctx context.Context, tr entity.TimeRange) ([]entity.CourierSummary, error) {
	query := `
	SELECT
		courier_name,
		COUNT(*) AS total_deliveries,
		COALESCE(AVG(delivery_time_days), 0) AS avg_delivery_time,
		COALESCE(AVG(delay_days), 0) AS avg_delay,
		COALESCE(SUM(on_time_delivery), 0) AS on_time_count,
		CASE WHEN SUM(delivery_status = 'delivered') > 0
			THEN ROUND(SUM(on_time_delivery) / SUM(delivery_status = 'delivered') * 100, 1)
			ELSE 0 END AS on_time_percentage,
		SUM(delivery_status = 'delivered') AS delivered_count,
		SUM(delivery_status = 'in_transit') AS in_transit_count,
		SUM(delivery_status = 'pending') AS pending_count
	FROM courier_performance
	WHERE courier_name != '' AND order_placed_date BETWEEN :from AND :to
	GROUP BY courier_name
	ORDER BY total_deliveries DESC`

	couriers, err := QueryListNamed[entity.CourierSummary](ctx, ms.DB(), query, map[string]any{
		"from": tr.From,
		"to":   endOfDay(tr.To),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get courier summary: %w", err)
	}
	return couriers, nil
}

func (ms *MYSQLStore) GetCourierRows(ctx context.Context, filter entity.CourierFilter, limit, offset int) ([]entity.CourierRecord, error) {
	query := `
	SELECT id, order_id, courier_name, shipping_method, tracking_number,
		customer_city, customer_state, order_placed_date, dispatch_date,
		estimated_delivery_date, actual_delivery_date, delivery_time_days,
		delay_days, on_time_delivery, delivery_status, shipping_cost, notes,
		created_at, updated_at
	FROM courier_performance
	WHERE (:courierName = '' OR courier_name = :courierName)
		AND (:deliveryStatus = '' OR delivery_status = :deliveryStatus)
	ORDER BY order_placed_date DESC, id DESC
	LIMIT :limit OFFSET :offset`

	rows, err := QueryListNamed[entity.CourierRecord](ctx, ms.DB(), query, map[string]any{
		"courierName":    filter.CourierName,
		"deliveryStatus": filter.DeliveryStatus.String(),
		"limit":          limit,
		"offset":         offset,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get courier rows: %w", err)
	}
	return rows, nil
}

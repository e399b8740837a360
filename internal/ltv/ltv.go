// Package ltv maintains the customer lifetime value rows. Registered
// accounts aggregate by customer id, guest checkouts by normalized billing
// phone; the two keyspaces never merge.
package ltv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jekabolt/grbpwr-analytics/internal/phone"
	"github.com/jekabolt/grbpwr-analytics/internal/tier"
	"github.com/shopspring/decimal"
)

const monthsPerYear = 12

// Config tunes the derivation.
type Config struct {
	// Tiers is consulted in order to segment customers by total spend.
	Tiers []entity.LoyaltyTier
	// ActivityThresholdDays bounds both the is_active flag and the
	// prediction gate. Default 180.
	ActivityThresholdDays int
	// CountryCode is prepended when normalizing national phone numbers.
	CountryCode string
}

func (c Config) withDefaults() Config {
	if c.ActivityThresholdDays <= 0 {
		c.ActivityThresholdDays = 180
	}
	if len(c.Tiers) == 0 {
		c.Tiers = entity.DefaultLoyaltyTiers()
	}
	return c
}

// Aggregator recomputes lifetime value rows from qualifying orders. Every
// recomputation is a full overwrite, so replays and out-of-order events
// converge to the same row.
type Aggregator struct {
	rep dependency.Repository
	cfg Config
}

func New(rep dependency.Repository, cfg Config) *Aggregator {
	return &Aggregator{
		rep: rep,
		cfg: cfg.withDefaults(),
	}
}

// Derive computes the value portion of a row from a customer's qualifying
// orders, oldest first, and the summed profit of those orders.
func Derive(orders []entity.Order, totalProfit decimal.Decimal, now time.Time, cfg Config) entity.CustomerLTV {
	cfg = cfg.withDefaults()

	var ltv entity.CustomerLTV
	if len(orders) == 0 {
		ltv.CustomerSegment = tier.Resolve(cfg.Tiers, decimal.Zero)
		return ltv
	}

	totalOrders := decimal.NewFromInt(int64(len(orders)))
	totalSpent := decimal.Zero
	for _, o := range orders {
		totalSpent = totalSpent.Add(o.TotalPrice)
	}

	first := orders[0].Placed
	last := orders[len(orders)-1].Placed
	latest := orders[len(orders)-1]

	daysSince := int(now.Sub(last).Hours() / 24)
	if daysSince < 0 {
		daysSince = 0
	}

	// Activity is counted in 30 day months, with a floor of one so a
	// single-order customer still has a defined frequency.
	daysActive := int(last.Sub(first).Hours() / 24)
	monthsActive := daysActive / 30
	if monthsActive < 1 {
		monthsActive = 1
	}

	orderFrequency := totalOrders.Div(decimal.NewFromInt(int64(monthsActive))).Round(2)
	avgOrderValue := totalSpent.Div(totalOrders).Round(2)
	avgProfit := totalProfit.Div(totalOrders).Round(2)

	// Prediction projects a year of the current run rate on top of what the
	// customer already spent. Dormant customers stay at their spend to date.
	predicted := totalSpent
	if orderFrequency.IsPositive() && daysSince < cfg.ActivityThresholdDays {
		predicted = totalSpent.Add(avgOrderValue.Mul(orderFrequency).Mul(decimal.NewFromInt(monthsPerYear))).Round(2)
	}

	return entity.CustomerLTV{
		CustomerEmail:         latest.BillingEmail,
		CustomerName:          latest.BillingName,
		TotalOrders:           len(orders),
		TotalSpent:            totalSpent,
		TotalProfit:           totalProfit,
		AverageOrderValue:     avgOrderValue,
		AverageProfitPerOrder: avgProfit,
		FirstOrderDate:        sql.NullTime{Time: first, Valid: true},
		LastOrderDate:         sql.NullTime{Time: last, Valid: true},
		LifetimeValue:         totalSpent,
		PredictedLTV:          predicted,
		DaysSinceLastOrder:    daysSince,
		OrderFrequency:        orderFrequency,
		CustomerSegment:       tier.Resolve(cfg.Tiers, totalSpent),
		IsActive:              daysSince < cfg.ActivityThresholdDays,
		Currency:              latest.Currency,
	}
}

// RecalculateForOrder refreshes the row of the identity behind an order.
// Guest orders get their normalized billing phone persisted here so the
// phone lookups stay on the indexed column.
func (a *Aggregator) RecalculateForOrder(ctx context.Context, orderID int) error {
	order, err := a.rep.Orders().GetOrderById(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't get order: %w", err)
	}

	if order.CustomerID.Valid && order.CustomerID.Int64 != 0 {
		return a.RecalculateCustomer(ctx, int(order.CustomerID.Int64))
	}

	normalized := phone.Normalize(order.BillingPhone, a.cfg.CountryCode)
	if normalized == "" {
		slog.Default().WarnContext(ctx, "guest order without billing phone, skipping ltv",
			slog.Int("orderId", orderID),
		)
		return nil
	}
	if normalized != order.BillingNormalizedPhone {
		if err := a.rep.Orders().SetOrderNormalizedPhone(ctx, orderID, normalized); err != nil {
			return fmt.Errorf("can't persist normalized phone: %w", err)
		}
	}
	return a.RecalculatePhone(ctx, normalized)
}

// RecalculateCustomer rebuilds the row keyed by a registered account id.
func (a *Aggregator) RecalculateCustomer(ctx context.Context, customerID int) error {
	orders, err := a.rep.Orders().GetOrdersByCustomerId(ctx, customerID)
	if err != nil {
		return fmt.Errorf("can't get customer orders: %w", err)
	}
	if len(orders) == 0 {
		return nil
	}

	ltv, err := a.derivePersisted(ctx, orders)
	if err != nil {
		return err
	}
	ltv.CustomerID = sql.NullInt64{Int64: int64(customerID), Valid: true}

	if err := a.rep.LTV().UpsertCustomerLTV(ctx, &ltv); err != nil {
		return fmt.Errorf("can't upsert customer ltv: %w", err)
	}
	return nil
}

// RecalculatePhone rebuilds the row keyed by a normalized guest phone.
func (a *Aggregator) RecalculatePhone(ctx context.Context, normalizedPhone string) error {
	orders, err := a.rep.Orders().GetOrdersByNormalizedPhone(ctx, normalizedPhone)
	if err != nil {
		return fmt.Errorf("can't get guest orders: %w", err)
	}
	if len(orders) == 0 {
		return nil
	}

	ltv, err := a.derivePersisted(ctx, orders)
	if err != nil {
		return err
	}
	ltv.CustomerPhone = sql.NullString{String: normalizedPhone, Valid: true}

	if err := a.rep.LTV().UpsertGuestLTV(ctx, &ltv); err != nil {
		return fmt.Errorf("can't upsert guest ltv: %w", err)
	}
	return nil
}

func (a *Aggregator) derivePersisted(ctx context.Context, orders []entity.Order) (entity.CustomerLTV, error) {
	totalProfit := decimal.Zero
	for _, o := range orders {
		p, err := a.rep.Profit().GetOrderProfitTotal(ctx, o.ID)
		if err != nil {
			return entity.CustomerLTV{}, fmt.Errorf("can't get order profit total: %w", err)
		}
		totalProfit = totalProfit.Add(p)
	}
	return Derive(orders, totalProfit, a.rep.Now(), a.cfg), nil
}

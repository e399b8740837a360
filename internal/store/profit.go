package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

type profitStore struct {
	*MYSQLStore
}

// Profit returns an object implementing Profit interface
func (ms *MYSQLStore) Profit() dependency.Profit {
	return &profitStore{
		MYSQLStore: ms,
	}
}

// ReplaceOrderProfit swaps the order's profit rows for the recalculated
// set inside one transaction, so recalculation stays idempotent.
func (ms *MYSQLStore) ReplaceOrderProfit(ctx context.Context, orderID int, rows []entity.LineItemProfit) error {
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := `DELETE FROM line_item_profit WHERE order_id = :orderId`
		err := ExecNamed(ctx, rep.DB(), query, map[string]any{
			"orderId": orderID,
		})
		if err != nil {
			return fmt.Errorf("can't delete order profit rows: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		inserts := make([]map[string]any, 0, len(rows))
		now := rep.Now()
		for _, r := range rows {
			inserts = append(inserts, map[string]any{
				"order_id":         orderID,
				"product_id":       r.ProductID,
				"variation_id":     r.VariationID,
				"sku":              r.SKU,
				"product_name":     r.ProductName,
				"cost_price":       r.CostPrice,
				"selling_price":    r.SellingPrice,
				"profit_amount":    r.ProfitAmount,
				"profit_margin":    r.ProfitMargin,
				"additional_costs": r.AdditionalCosts,
				"shipping_cost":    r.ShippingCost,
				"tax_amount":       r.TaxAmount,
				"currency":         r.Currency,
				"quantity":         r.Quantity,
				"order_date":       r.OrderDate,
				"created_at":       now,
				"updated_at":       now,
			})
		}
		if err := BulkInsert(ctx, rep.DB(), "line_item_profit", inserts); err != nil {
			return fmt.Errorf("can't insert order profit rows: %w", err)
		}
		return nil
	})
}

func (ms *MYSQLStore) GetOrderProfit(ctx context.Context, orderID int) ([]entity.LineItemProfit, error) {
	query := `
	SELECT id, order_id, product_id, variation_id, sku, product_name,
		cost_price, selling_price, profit_amount, profit_margin,
		additional_costs, shipping_cost, tax_amount, currency, quantity,
		order_date, created_at, updated_at
	FROM line_item_profit WHERE order_id = :orderId ORDER BY id`

	rows, err := QueryListNamed[entity.LineItemProfit](ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("can't get order profit rows: %w", err)
	}
	return rows, nil
}

func (ms *MYSQLStore) DeleteOrderProfit(ctx context.Context, orderID int) error {
	query := `DELETE FROM line_item_profit WHERE order_id = :orderId`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		return fmt.Errorf("can't delete order profit rows: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) GetOrderProfitTotal(ctx context.Context, orderID int) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(profit_amount * quantity), 0) AS total FROM line_item_profit WHERE order_id = :orderId`

	type row struct {
		Total decimal.Decimal `db:"total"`
	}
	total, err := QueryNamedOne[row](ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("can't get order profit total: %w", err)
	}
	return total.Total, nil
}

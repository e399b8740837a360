// Package profit derives per-line-item profit rows from host orders and
// configured product costs.
package profit

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Calculator recomputes the profit rows of an order. Recalculation replaces
// the whole row set, so reprocessing the same order is idempotent.
type Calculator struct {
	rep             dependency.Repository
	excludeRefunded bool
}

func New(rep dependency.Repository, excludeRefunded bool) *Calculator {
	return &Calculator{
		rep:             rep,
		excludeRefunded: excludeRefunded,
	}
}

// ComputeLine derives one profit row from a line item and its cost setup.
// All money fields are per unit: profit_amount is selling price minus the
// sum of the three cost components, which are stored separately, and
// aggregations multiply by quantity. Margin is zero when the unit sells for
// zero.
func ComputeLine(order *entity.Order, item entity.OrderLineItem, costs *entity.ProductCosts) entity.LineItemProfit {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}
	qtyDec := decimal.NewFromInt(int64(qty))

	sellingPrice := item.ItemTotal.Div(qtyDec)
	totalCost := costs.CostPrice.Add(costs.AdditionalCost).Add(costs.ShippingCost)
	profitAmount := sellingPrice.Sub(totalCost)

	profitMargin := decimal.Zero
	if sellingPrice.IsPositive() {
		profitMargin = profitAmount.Div(sellingPrice).Mul(hundred).Round(2)
	}

	return entity.LineItemProfit{
		OrderID:         order.ID,
		ProductID:       item.ProductID,
		VariationID:     item.VariationID,
		SKU:             item.SKU,
		ProductName:     item.ProductName,
		CostPrice:       costs.CostPrice,
		SellingPrice:    sellingPrice.Round(2),
		ProfitAmount:    profitAmount.Round(2),
		ProfitMargin:    profitMargin,
		AdditionalCosts: costs.AdditionalCost,
		ShippingCost:    costs.ShippingCost,
		TaxAmount:       item.ItemTaxTotal.Div(qtyDec).Round(2),
		Currency:        order.Currency,
		Quantity:        qty,
		OrderDate:       order.Placed,
	}
}

// ProcessOrder recalculates and stores the profit rows of an order.
func (c *Calculator) ProcessOrder(ctx context.Context, orderID int) error {
	order, err := c.rep.Orders().GetOrderById(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't get order: %w", err)
	}

	if c.excludeRefunded && (order.IsRefund || order.Status == entity.OrderRefunded) {
		if err := c.rep.Profit().DeleteOrderProfit(ctx, orderID); err != nil {
			return fmt.Errorf("can't remove refunded order profit: %w", err)
		}
		slog.Default().InfoContext(ctx, "removed profit rows for refunded order",
			slog.Int("orderId", orderID),
		)
		return nil
	}

	items, err := c.rep.Orders().GetOrderLineItems(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't get order line items: %w", err)
	}

	rows := make([]entity.LineItemProfit, 0, len(items))
	for _, item := range items {
		costs, err := c.rep.Orders().GetProductCosts(ctx, item.ProductID, item.VariationID)
		if err != nil {
			return fmt.Errorf("can't get product costs: %w", err)
		}
		rows = append(rows, ComputeLine(order, item, costs))
	}

	if err := c.rep.Profit().ReplaceOrderProfit(ctx, orderID, rows); err != nil {
		return fmt.Errorf("can't store profit rows: %w", err)
	}

	slog.Default().InfoContext(ctx, "calculated order profit",
		slog.Int("orderId", orderID),
		slog.Int("lineItems", len(rows)),
	)
	return nil
}

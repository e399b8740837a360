package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemProfit represents one row of the line_item_profit table, one per
// (order, line item). Rows are written once at order placement and never
// recalculated afterwards.
type LineItemProfit struct {
	ID              int             `db:"id"`
	OrderID         int             `db:"order_id"`
	ProductID       int             `db:"product_id"`
	VariationID     int             `db:"variation_id"`
	SKU             string          `db:"sku"`
	ProductName     string          `db:"product_name"`
	CostPrice       decimal.Decimal `db:"cost_price"`
	SellingPrice    decimal.Decimal `db:"selling_price"`
	ProfitAmount    decimal.Decimal `db:"profit_amount"`
	ProfitMargin    decimal.Decimal `db:"profit_margin"`
	AdditionalCosts decimal.Decimal `db:"additional_costs"`
	ShippingCost    decimal.Decimal `db:"shipping_cost"`
	TaxAmount       decimal.Decimal `db:"tax_amount"`
	Currency        string          `db:"currency"`
	Quantity        int             `db:"quantity"`
	OrderDate       time.Time       `db:"order_date"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

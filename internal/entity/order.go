package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusName is the custom type to enforce enum-like behavior
type OrderStatusName string

func (osn OrderStatusName) String() string {
	return string(osn)
}

const (
	OrderPending    OrderStatusName = "pending"
	OrderProcessing OrderStatusName = "processing"
	OrderCompleted  OrderStatusName = "completed"
	OrderCancelled  OrderStatusName = "cancelled"
	OrderRefunded   OrderStatusName = "refunded"
)

// QualifyingOrderStatuses is the set of statuses that contribute to
// customer lifetime value aggregation.
var QualifyingOrderStatuses = []OrderStatusName{OrderCompleted, OrderProcessing}

// Order is the read model of a host platform order. The host store owns
// these rows; this service only reads them.
type Order struct {
	ID                     int             `db:"id"`
	CustomerID             sql.NullInt64   `db:"customer_id"`
	Status                 OrderStatusName `db:"status"`
	BillingPhone           string          `db:"billing_phone"`
	BillingNormalizedPhone string          `db:"billing_normalized_phone"`
	BillingEmail           string          `db:"billing_email"`
	BillingName            string          `db:"billing_name"`
	Currency               string          `db:"currency"`
	TotalPrice             decimal.Decimal `db:"total_price"`
	ShippingMethod         string          `db:"shipping_method"`
	ShippingCity           string          `db:"shipping_city"`
	ShippingState          string          `db:"shipping_state"`
	ShippingTotal          decimal.Decimal `db:"shipping_total"`
	IsRefund               bool            `db:"is_refund"`
	Placed                 time.Time       `db:"placed"`
}

// OrderLineItem represents one line of a host order.
type OrderLineItem struct {
	OrderID      int             `db:"order_id"`
	ProductID    int             `db:"product_id"`
	VariationID  int             `db:"variation_id"`
	SKU          string          `db:"sku"`
	ProductName  string          `db:"product_name"`
	Quantity     int             `db:"quantity"`
	ItemTotal    decimal.Decimal `db:"item_total"`
	ItemTaxTotal decimal.Decimal `db:"item_tax_total"`
}

// ProductCosts holds the per-unit cost attributes configured on a product.
// Absent attributes default to zero.
type ProductCosts struct {
	ProductID      int             `db:"product_id"`
	CostPrice      decimal.Decimal `db:"cost_price"`
	AdditionalCost decimal.Decimal `db:"additional_cost"`
	ShippingCost   decimal.Decimal `db:"shipping_cost"`
}

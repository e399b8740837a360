package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange bounds a reporting query. From is inclusive; To is treated as
// end-of-day inclusive by the query layer.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// ProfitSummary aggregates line_item_profit over a period.
type ProfitSummary struct {
	TotalOrders    int             `db:"total_orders"`
	TotalItemsSold int             `db:"total_items_sold"`
	TotalRevenue   decimal.Decimal `db:"total_revenue"`
	TotalCosts     decimal.Decimal `db:"total_costs"`
	TotalProfit    decimal.Decimal `db:"total_profit"`
	AverageMargin  decimal.Decimal `db:"average_margin"`
}

// TierCount is one per-segment customer count in the LTV summary. The list
// shape is fixed regardless of how many tiers are configured.
type TierCount struct {
	TierName string
	Count    int
}

// LTVSummary aggregates customer_ltv across both identity keyspaces.
type LTVSummary struct {
	TotalCustomers    int             `db:"total_customers"`
	ActiveCustomers   int             `db:"active_customers"`
	TotalLTV          decimal.Decimal `db:"total_ltv"`
	AverageLTV        decimal.Decimal `db:"average_ltv"`
	AverageOrders     decimal.Decimal `db:"average_orders"`
	AverageOrderValue decimal.Decimal `db:"average_order_value"`
	TierCounts        []TierCount     `db:"-"`
}

// ChannelPerformance is one (source, medium, campaign) group.
type ChannelPerformance struct {
	UTMSource     string          `db:"utm_source"`
	UTMMedium     string          `db:"utm_medium"`
	UTMCampaign   string          `db:"utm_campaign"`
	Conversions   int             `db:"conversions"`
	Revenue       decimal.Decimal `db:"revenue"`
	Profit        decimal.Decimal `db:"profit"`
	AvgOrderValue decimal.Decimal `db:"avg_order_value"`
	TotalSpend    decimal.Decimal `db:"total_spend"`
	ROIPercentage decimal.Decimal `db:"roi_percentage"`
}

// ChannelTotals is one utm_source group for the top-channels listing.
type ChannelTotals struct {
	UTMSource   string          `db:"utm_source"`
	Conversions int             `db:"conversions"`
	Revenue     decimal.Decimal `db:"revenue"`
	Profit      decimal.Decimal `db:"profit"`
	Spend       decimal.Decimal `db:"spend"`
}

// CourierSummary is one courier group of delivery statistics.
type CourierSummary struct {
	CourierName      string          `db:"courier_name"`
	TotalDeliveries  int             `db:"total_deliveries"`
	AvgDeliveryTime  decimal.Decimal `db:"avg_delivery_time"`
	AvgDelay         decimal.Decimal `db:"avg_delay"`
	OnTimeCount      int             `db:"on_time_count"`
	OnTimePercentage decimal.Decimal `db:"on_time_percentage"`
	DeliveredCount   int             `db:"delivered_count"`
	InTransitCount   int             `db:"in_transit_count"`
	PendingCount     int             `db:"pending_count"`
}

// LTVFilter narrows the top-customers listing.
type LTVFilter struct {
	Segment  string
	IsActive *bool
}

// CourierFilter narrows the courier rows listing.
type CourierFilter struct {
	CourierName    string
	DeliveryStatus DeliveryStatusName
}

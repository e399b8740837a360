package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// AttributionMeta is the checkout-time marketing context captured from
// client cookies and stored pass-through, keyed by order id. It carries no
// performance data; that is joined in at conversion time.
type AttributionMeta struct {
	OrderID     int    `db:"order_id" valid:"required"`
	UTMSource   string `db:"utm_source"`
	UTMMedium   string `db:"utm_medium"`
	UTMCampaign string `db:"utm_campaign"`
	UTMTerm     string `db:"utm_term"`
	UTMContent  string `db:"utm_content"`
	ReferrerURL string `db:"referrer_url"`
	LandingPage string `db:"landing_page"`
	UserAgent   string `db:"user_agent"`
}

// AttributionRecord represents one row of the attribution table, unique per
// order, written once at conversion (first successful payment). Only
// marketing_spend and roi are mutable afterwards, via the campaign spend
// update path keyed by (utm_source, utm_campaign).
type AttributionRecord struct {
	ID             int             `db:"id"`
	OrderID        int             `db:"order_id"`
	CustomerID     sql.NullInt64   `db:"customer_id"`
	UTMSource      string          `db:"utm_source"`
	UTMMedium      string          `db:"utm_medium"`
	UTMCampaign    string          `db:"utm_campaign"`
	UTMTerm        string          `db:"utm_term"`
	UTMContent     string          `db:"utm_content"`
	ReferrerURL    string          `db:"referrer_url"`
	LandingPage    string          `db:"landing_page"`
	DeviceType     string          `db:"device_type"`
	Browser        string          `db:"browser"`
	OrderTotal     decimal.Decimal `db:"order_total"`
	OrderProfit    decimal.Decimal `db:"order_profit"`
	MarketingSpend decimal.Decimal `db:"marketing_spend"`
	ROI            decimal.Decimal `db:"roi"`
	ConversionDate time.Time       `db:"conversion_date"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Package attribution ties conversions back to the marketing context
// captured at checkout and maintains per-campaign ROI.
package attribution

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jekabolt/grbpwr-analytics/internal/useragent"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ROI returns profit as a percentage of spend, zero when there is no spend
// to divide by.
func ROI(profit, spend decimal.Decimal) decimal.Decimal {
	if !spend.IsPositive() {
		return decimal.Zero
	}
	return profit.Div(spend).Mul(hundred).Round(2)
}

// Recorder runs the two attribution phases: capture at checkout, conversion
// at first successful payment.
type Recorder struct {
	rep dependency.Repository
}

func New(rep dependency.Repository) *Recorder {
	return &Recorder{rep: rep}
}

// CaptureCheckout stores the marketing context of an order. Repeated
// captures for the same order overwrite, last write wins.
func (r *Recorder) CaptureCheckout(ctx context.Context, meta *entity.AttributionMeta) error {
	if err := r.rep.Attribution().UpsertOrderAttributionMeta(ctx, meta); err != nil {
		return fmt.Errorf("can't capture checkout attribution: %w", err)
	}
	return nil
}

// directMeta fills in the marketing context of an order that converted
// without one. A capture with referrer and user agent but no utm_source is
// the usual direct visit, it keeps its context and only the source is
// bucketed.
func directMeta(meta *entity.AttributionMeta, orderID int) *entity.AttributionMeta {
	if meta == nil {
		meta = &entity.AttributionMeta{OrderID: orderID}
	}
	if meta.UTMSource == "" {
		meta.UTMSource = "direct"
	}
	return meta
}

// RecordConversion writes the conversion row for an order. The row is
// written once: repeated payment events for the same order are no-ops. An
// order without captured meta, or captured without a utm_source, converts
// bucketed as direct.
func (r *Recorder) RecordConversion(ctx context.Context, orderID int) error {
	exists, err := r.rep.Attribution().HasAttribution(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't check existing attribution: %w", err)
	}
	if exists {
		return nil
	}

	order, err := r.rep.Orders().GetOrderById(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't get order: %w", err)
	}

	meta, err := r.rep.Attribution().GetOrderAttributionMeta(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't get order attribution meta: %w", err)
	}
	meta = directMeta(meta, orderID)

	profit, err := r.rep.Profit().GetOrderProfitTotal(ctx, orderID)
	if err != nil {
		return fmt.Errorf("can't get order profit total: %w", err)
	}

	rec := &entity.AttributionRecord{
		OrderID:        orderID,
		CustomerID:     order.CustomerID,
		UTMSource:      meta.UTMSource,
		UTMMedium:      meta.UTMMedium,
		UTMCampaign:    meta.UTMCampaign,
		UTMTerm:        meta.UTMTerm,
		UTMContent:     meta.UTMContent,
		ReferrerURL:    meta.ReferrerURL,
		LandingPage:    meta.LandingPage,
		DeviceType:     useragent.DeviceType(meta.UserAgent),
		Browser:        useragent.Browser(meta.UserAgent),
		OrderTotal:     order.TotalPrice,
		OrderProfit:    profit,
		MarketingSpend: decimal.Zero,
		ROI:            decimal.Zero,
		ConversionDate: r.rep.Now(),
	}

	if _, err := r.rep.Attribution().AddAttribution(ctx, rec); err != nil {
		// A concurrent conversion for the same order already won.
		if r.rep.IsErrUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("can't record conversion: %w", err)
	}

	slog.Default().InfoContext(ctx, "recorded conversion",
		slog.Int("orderId", orderID),
		slog.String("utmSource", rec.UTMSource),
		slog.String("deviceType", rec.DeviceType),
	)
	return nil
}

// UpdateCampaignSpend distributes a campaign's spend figure over its
// conversions and recomputes their roi. Returns the number of updated rows.
func (r *Recorder) UpdateCampaignSpend(ctx context.Context, utmSource, utmCampaign string, spend decimal.Decimal) (int, error) {
	if utmSource == "" || utmCampaign == "" {
		return 0, fmt.Errorf("utm source and campaign are required")
	}
	if spend.IsNegative() {
		return 0, fmt.Errorf("spend can't be negative")
	}

	n, err := r.rep.Attribution().UpdateCampaignSpend(ctx, utmSource, utmCampaign, spend)
	if err != nil {
		return 0, fmt.Errorf("can't update campaign spend: %w", err)
	}

	slog.Default().InfoContext(ctx, "updated campaign spend",
		slog.String("utmSource", utmSource),
		slog.String("utmCampaign", utmCampaign),
		slog.Int("rows", n),
	)
	return n, nil
}

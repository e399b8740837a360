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

type attributionStore struct {
	*MYSQLStore
}

// Attribution returns an object implementing Attribution interface
func (ms *MYSQLStore) Attribution() dependency.Attribution {
	return &attributionStore{
		MYSQLStore: ms,
	}
}

func (ms *MYSQLStore) UpsertOrderAttributionMeta(ctx context.Context, meta *entity.AttributionMeta) error {
	query := `
	INSERT INTO order_attribution_meta
		(order_id, utm_source, utm_medium, utm_campaign, utm_term, utm_content,
		referrer_url, landing_page, user_agent)
	VALUES
		(:orderId, :utmSource, :utmMedium, :utmCampaign, :utmTerm, :utmContent,
		:referrerUrl, :landingPage, :userAgent)
	ON DUPLICATE KEY UPDATE
		utm_source = VALUES(utm_source),
		utm_medium = VALUES(utm_medium),
		utm_campaign = VALUES(utm_campaign),
		utm_term = VALUES(utm_term),
		utm_content = VALUES(utm_content),
		referrer_url = VALUES(referrer_url),
		landing_page = VALUES(landing_page),
		user_agent = VALUES(user_agent)`

	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"orderId":     meta.OrderID,
		"utmSource":   meta.UTMSource,
		"utmMedium":   meta.UTMMedium,
		"utmCampaign": meta.UTMCampaign,
		"utmTerm":     meta.UTMTerm,
		"utmContent":  meta.UTMContent,
		"referrerUrl": meta.ReferrerURL,
		"landingPage": meta.LandingPage,
		"userAgent":   meta.UserAgent,
	})
	if err != nil {
		return fmt.Errorf("can't upsert order attribution meta: %w", err)
	}
	return nil
}

func (ms *MYSQLStore) GetOrderAttributionMeta(ctx context.Context, orderID int) (*entity.AttributionMeta, error) {
	query := `
	SELECT order_id, utm_source, utm_medium, utm_campaign, utm_term,
		utm_content, referrer_url, landing_page, user_agent
	FROM order_attribution_meta WHERE order_id = :orderId`

	meta, err := QueryNamedOne[entity.AttributionMeta](ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("can't get order attribution meta: %w", err)
	}
	return &meta, nil
}

func (ms *MYSQLStore) AddAttribution(ctx context.Context, rec *entity.AttributionRecord) (int, error) {
	query := `
	INSERT INTO attribution
		(order_id, customer_id, utm_source, utm_medium, utm_campaign, utm_term,
		utm_content, referrer_url, landing_page, device_type, browser,
		order_total, order_profit, marketing_spend, roi, conversion_date, created_at)
	VALUES
		(:orderId, :customerId, :utmSource, :utmMedium, :utmCampaign, :utmTerm,
		:utmContent, :referrerUrl, :landingPage, :deviceType, :browser,
		:orderTotal, :orderProfit, :marketingSpend, :roi, :conversionDate, :createdAt)`

	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"orderId":        rec.OrderID,
		"customerId":     rec.CustomerID,
		"utmSource":      rec.UTMSource,
		"utmMedium":      rec.UTMMedium,
		"utmCampaign":    rec.UTMCampaign,
		"utmTerm":        rec.UTMTerm,
		"utmContent":     rec.UTMContent,
		"referrerUrl":    rec.ReferrerURL,
		"landingPage":    rec.LandingPage,
		"deviceType":     rec.DeviceType,
		"browser":        rec.Browser,
		"orderTotal":     rec.OrderTotal,
		"orderProfit":    rec.OrderProfit,
		"marketingSpend": rec.MarketingSpend,
		"roi":            rec.ROI,
		"conversionDate": rec.ConversionDate,
		"createdAt":      ms.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("can't add attribution: %w", err)
	}
	return id, nil
}

func (ms *MYSQLStore) HasAttribution(ctx context.Context, orderID int) (bool, error) {
	query := `SELECT COUNT(*) FROM attribution WHERE order_id = :orderId`
	count, err := QueryCountNamed(ctx, ms.DB(), query, map[string]any{
		"orderId": orderID,
	})
	if err != nil {
		return false, fmt.Errorf("can't check attribution: %w", err)
	}
	return count > 0, nil
}

// UpdateCampaignSpend sets the spend and recomputes roi against the stored
// order_profit on every conversion of the (source, campaign) pair. ROI stays
// zero when spend is zero.
func (ms *MYSQLStore) UpdateCampaignSpend(ctx context.Context, utmSource, utmCampaign string, spend decimal.Decimal) (int, error) {
	query := `
	UPDATE attribution
	SET marketing_spend = :spend,
		roi = CASE WHEN :spend > 0
			THEN ROUND(order_profit / :spend * 100, 2)
			ELSE 0 END
	WHERE utm_source = :utmSource AND utm_campaign = :utmCampaign`

	n, err := ExecNamedRows(ctx, ms.DB(), query, map[string]any{
		"utmSource":   utmSource,
		"utmCampaign": utmCampaign,
		"spend":       spend,
	})
	if err != nil {
		return 0, fmt.Errorf("can't update campaign spend: %w", err)
	}
	return n, nil
}

package attribution

import (
	"testing"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestROI(t *testing.T) {
	tests := []struct {
		name   string
		profit float64
		spend  float64
		want   float64
	}{
		{name: "profit above spend", profit: 300, spend: 100, want: 300},
		{name: "profit below spend", profit: 50, spend: 100, want: 50},
		{name: "break even", profit: 100, spend: 100, want: 100},
		{name: "zero spend", profit: 500, spend: 0, want: 0},
		{name: "negative profit", profit: -40, spend: 100, want: -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ROI(decimal.NewFromFloat(tt.profit), decimal.NewFromFloat(tt.spend))
			assert.True(t, got.Equal(decimal.NewFromFloat(tt.want)), "got %s want %v", got, tt.want)
		})
	}
}

func TestROIRounding(t *testing.T) {
	got := ROI(decimal.NewFromInt(100), decimal.NewFromInt(300))
	assert.True(t, got.Equal(decimal.NewFromFloat(33.33)), "got %s", got)
}

func TestDirectMetaNoCapture(t *testing.T) {
	got := directMeta(nil, 17)

	assert.Equal(t, 17, got.OrderID)
	assert.Equal(t, "direct", got.UTMSource)
}

func TestDirectMetaEmptySourceKeepsContext(t *testing.T) {
	// A direct visit still captures referrer and user agent, only the
	// source is bucketed.
	meta := &entity.AttributionMeta{
		OrderID:     17,
		ReferrerURL: "https://example.com/blog",
		UserAgent:   "Mozilla/5.0 (iPhone)",
	}

	got := directMeta(meta, 17)

	assert.Equal(t, "direct", got.UTMSource)
	assert.Equal(t, "https://example.com/blog", got.ReferrerURL)
	assert.Equal(t, "Mozilla/5.0 (iPhone)", got.UserAgent)
}

func TestDirectMetaSourcedCaptureUntouched(t *testing.T) {
	meta := &entity.AttributionMeta{OrderID: 17, UTMSource: "facebook", UTMCampaign: "eid-sale"}

	got := directMeta(meta, 17)

	assert.Equal(t, "facebook", got.UTMSource)
	assert.Equal(t, "eid-sale", got.UTMCampaign)
}

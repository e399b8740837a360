package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	got := parseDate("2024-01-05")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *got)

	got = parseDate("2024-01-05T14:30:00Z")
	require.NotNil(t, got)
	assert.Equal(t, 14, got.Hour())

	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("05/01/2024"))
	assert.Nil(t, parseDate("not a date"))
}

func TestTimeRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/reports/profit?from=2024-01-01&to=2024-02-01", nil)
	tr, err := timeRange(r)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), tr.From)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), tr.To)
}

func TestTimeRangeDefaultsTrailingMonth(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/reports/profit", nil)
	tr, err := timeRange(r)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), tr.To, time.Minute)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), tr.From, time.Minute)
}

func TestTimeRangeRejectsInverted(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/reports/profit?from=2024-02-01&to=2024-01-01", nil)
	_, err := timeRange(r)
	assert.Error(t, err)
}

func TestTimeRangeRejectsMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/reports/profit?from=January", nil)
	_, err := timeRange(r)
	assert.Error(t, err)
}

func TestLimitOffset(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=20&offset=40", nil)
	limit, offset := limitOffset(r)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	r = httptest.NewRequest("GET", "/", nil)
	limit, offset = limitOffset(r)
	assert.Equal(t, defaultListLimit, limit)
	assert.Equal(t, 0, offset)

	r = httptest.NewRequest("GET", "/?limit=99999", nil)
	limit, _ = limitOffset(r)
	assert.Equal(t, maxListLimit, limit)

	r = httptest.NewRequest("GET", "/?limit=-5&offset=-1", nil)
	limit, offset = limitOffset(r)
	assert.Equal(t, defaultListLimit, limit)
	assert.Equal(t, 0, offset)
}

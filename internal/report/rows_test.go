package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/report-cli/internal/metrics"
	"github.com/sells-group/report-cli/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testBundle() model.MetricsBundle {
	orders := []model.Order{
		{OrderID: "o1", Date: day(2024, 1, 1), Channel: model.ChannelPaidSocial, Revenue: 100, CustomerType: model.CustomerNew},
		{OrderID: "o2", Date: day(2024, 1, 8), Channel: model.ChannelPaidSocial, Revenue: 40, CustomerType: model.CustomerReturning},
	}
	ads := []model.AdRow{
		{Date: day(2024, 1, 1), Channel: model.ChannelPaidSocial, Campaign: "c", Spend: 50, Impressions: 100, Clicks: 10, Conversions: 2},
	}
	return metrics.Compute(orders, ads, day(2024, 2, 1), metrics.DefaultRules())
}

func TestFlatten(t *testing.T) {
	m := testBundle()
	header, rows := Flatten(&m)

	require.Len(t, rows, 2)
	require.Equal(t, len(header), len(rows[0]))

	byName := func(row []any, col string) any {
		for i, h := range header {
			if h == col {
				return row[i]
			}
		}
		t.Fatalf("column %s not in header", col)
		return nil
	}

	assert.Equal(t, "2024-01-01", byName(rows[0], "week_start"))
	assert.Equal(t, 100.0, byName(rows[0], "revenue"))
	assert.Equal(t, 1, byName(rows[0], "orders"))
	// First week has no deltas.
	assert.Nil(t, byName(rows[0], "revenue_wow"))
	assert.NotNil(t, byName(rows[1], "revenue_wow"))

	// Per-channel triplets are present for every canonical channel.
	for _, c := range model.Channels() {
		assert.Contains(t, header, "revenue_"+string(c))
		assert.Contains(t, header, "spend_"+string(c))
		assert.Contains(t, header, "roas_"+string(c))
	}

	// Second week had no spend, so per-channel ROAS flattens to nil.
	assert.Nil(t, byName(rows[1], "roas_paid_social"))
}

func TestFlatten_AnomalyColumns(t *testing.T) {
	m := testBundle()
	header, rows := Flatten(&m)

	idx := -1
	for i, h := range header {
		if h == "anomaly_count" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	// The 60% revenue drop in week two trips at least one rule.
	count, ok := rows[1][idx].(int)
	require.True(t, ok)
	assert.Positive(t, count)

	rules, ok := rows[1][idx+1].(string)
	require.True(t, ok)
	assert.Contains(t, rules, "revenue_wow_10pct")
}

func TestFlatten_Empty(t *testing.T) {
	m := metrics.Compute(nil, nil, day(2024, 2, 1), metrics.DefaultRules())
	header, rows := Flatten(&m)

	assert.NotEmpty(t, header)
	assert.Empty(t, rows)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", formatValue(nil))
	assert.Equal(t, "abc", formatValue("abc"))
	assert.Equal(t, "3", formatValue(3))
	assert.Equal(t, "1.5", formatValue(1.5))
	assert.Equal(t, "100", formatValue(100.0))
}

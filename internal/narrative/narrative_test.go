package narrative

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/report-cli/internal/metrics"
	"github.com/sells-group/report-cli/internal/model"
	"github.com/sells-group/report-cli/pkg/anthropic"
)

type fakeClient struct {
	resp    *anthropic.MessageResponse
	err     error
	lastReq anthropic.MessageRequest
}

func (f *fakeClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleBundle() model.MetricsBundle {
	orders := []model.Order{
		{OrderID: "o1", Date: day(2024, 1, 1), Channel: model.ChannelSearch, Revenue: 500, CustomerType: model.CustomerNew},
		{OrderID: "o2", Date: day(2024, 1, 8), Channel: model.ChannelSearch, Revenue: 100, CustomerType: model.CustomerReturning},
	}
	ads := []model.AdRow{
		{Date: day(2024, 1, 1), Channel: model.ChannelSearch, Campaign: "c", Spend: 100, Impressions: 1000, Clicks: 100, Conversions: 10},
	}
	return metrics.Compute(orders, ads, day(2024, 2, 1), metrics.DefaultRules())
}

func TestRender_RemoteSuccess(t *testing.T) {
	client := &fakeClient{resp: &anthropic.MessageResponse{Text: "# Report\n\nAll fine."}}
	g := NewGenerator(client, "claude-sonnet-4-5-20250929", 1024)

	m := sampleBundle()
	out := g.Render(context.Background(), &m)

	assert.Equal(t, "# Report\n\nAll fine.", out)
	assert.Equal(t, "claude-sonnet-4-5-20250929", client.lastReq.Model)
	require.Len(t, client.lastReq.Messages, 1)
	assert.Contains(t, client.lastReq.Messages[0].Content, "```json")
}

func TestRender_RemoteFailureFallsBack(t *testing.T) {
	client := &fakeClient{err: eris.New("api down")}
	g := NewGenerator(client, "claude-sonnet-4-5-20250929", 1024)

	m := sampleBundle()
	out := g.Render(context.Background(), &m)

	assert.Contains(t, out, "# Weekly Performance Report")
}

func TestRender_EmptyResponseFallsBack(t *testing.T) {
	client := &fakeClient{resp: &anthropic.MessageResponse{Text: "   "}}
	g := NewGenerator(client, "m", 1024)

	m := sampleBundle()
	out := g.Render(context.Background(), &m)
	assert.Contains(t, out, "# Weekly Performance Report")
}

func TestRender_NilClientUsesFallback(t *testing.T) {
	g := NewGenerator(nil, "m", 0)
	m := sampleBundle()
	out := g.Render(context.Background(), &m)
	assert.Contains(t, out, "# Weekly Performance Report")
}

func TestFallbackSummary_Sections(t *testing.T) {
	m := sampleBundle()
	out := FallbackSummary(&m)

	assert.Contains(t, out, "# Weekly Performance Report (2024-01-01 to 2024-01-08)")
	assert.Contains(t, out, "## Highlights")
	assert.Contains(t, out, "## Channel Performance")
	assert.Contains(t, out, "## Anomalies")
	assert.Contains(t, out, "## What To Check Next")
}

func TestFallbackSummary_EmptyBundle(t *testing.T) {
	m := metrics.Compute(nil, nil, day(2024, 2, 1), metrics.DefaultRules())
	out := FallbackSummary(&m)

	assert.Contains(t, out, "N/A")
	assert.NotEmpty(t, out)
}

func TestCompactBundle_Caps(t *testing.T) {
	m := sampleBundle()

	// Inflate history beyond the caps.
	for i := 0; i < 10; i++ {
		m.SalesWeekly = append(m.SalesWeekly, m.SalesWeekly[0])
		m.MarketingWeekly = append(m.MarketingWeekly, m.MarketingWeekly[0])
		m.EfficiencyWeekly = append(m.EfficiencyWeekly, m.EfficiencyWeekly[0])
	}
	for i := 0; i < 30; i++ {
		m.Anomalies = append(m.Anomalies, model.Anomaly{RuleID: "revenue_wow_10pct", WeekStart: "2024-01-08"})
	}

	payload := compactBundle(&m)
	assert.Len(t, payload.RecentWeeks.Sales, maxWeekHistoryForLLM)
	assert.Len(t, payload.Anomalies, maxAnomaliesForLLM)
	assert.Equal(t, len(m.Anomalies), payload.AnomaliesSummary.CountTotal)
	assert.Equal(t, maxAnomaliesForLLM, payload.AnomaliesSummary.CountIncluded)
	assert.Positive(t, payload.AnomaliesSummary.RuleCounts["revenue_wow_10pct"])
}

func TestFmtHelpers(t *testing.T) {
	v := 1234567.891
	assert.Equal(t, "$1,234,567.89", fmtCurrency(&v))
	assert.Equal(t, "N/A", fmtCurrency(nil))

	p := 0.8333
	assert.Equal(t, "83.3%", fmtPct(&p))

	r := 2.5
	assert.Equal(t, "2.50x", fmtRatio(&r))
	assert.Equal(t, "N/A", fmtRatio(nil))
}

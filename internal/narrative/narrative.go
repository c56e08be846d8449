// Package narrative renders the executive markdown report from a metrics
// bundle. Two interchangeable strategies: Claude-backed generation and a
// deterministic local template. The caller never sees which one ran; any
// remote failure degrades to the fallback.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/report-cli/internal/model"
	"github.com/sells-group/report-cli/pkg/anthropic"
)

// Caps on the payload sent to the model, to keep prompts bounded on long
// histories.
const (
	maxWeekHistoryForLLM = 3
	maxAnomaliesForLLM   = 12
)

// Generator renders the weekly report. With a nil client it always uses
// the deterministic fallback.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewGenerator creates a Generator. client may be nil.
func NewGenerator(client anthropic.Client, modelID string, maxTokens int64) *Generator {
	if maxTokens == 0 {
		maxTokens = 2048
	}
	return &Generator{client: client, model: modelID, maxTokens: maxTokens}
}

// Render produces the report markdown. It never fails: if the remote call
// is unavailable or errors, the deterministic fallback is returned.
func (g *Generator) Render(ctx context.Context, m *model.MetricsBundle) string {
	if g.client == nil {
		zap.L().Warn("anthropic key not set, using deterministic fallback summary")
		return FallbackSummary(m)
	}

	text, err := g.renderRemote(ctx, m)
	if err != nil {
		zap.L().Error("llm summary generation failed, using fallback summary", zap.Error(err))
		return FallbackSummary(m)
	}
	return text
}

func (g *Generator) renderRemote(ctx context.Context, m *model.MetricsBundle) (string, error) {
	payload, err := json.MarshalIndent(compactBundle(m), "", "  ")
	if err != nil {
		return "", err
	}

	temp := 0.2
	resp, err := g.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		System:      systemPrompt,
		Temperature: &temp,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(userPromptFmt, payload)},
		},
	})
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", fmt.Errorf("empty llm response content")
	}

	resp.Usage.LogUsage(g.model, "narrative")
	zap.L().Info("generated report summary", zap.String("model", g.model))
	return text, nil
}

const systemPrompt = "You are a senior ecommerce analyst writing an executive-ready weekly report. " +
	"Use only numbers present in the provided JSON. Do not invent, estimate, or infer missing values. " +
	"If a number is missing/null, say N/A."

const userPromptFmt = `Write a markdown report with EXACTLY these sections in this order:
1) Title with week range
2) Highlights (4-7 bullets with key numbers)
3) Channel performance (top 3 channels by revenue + ROAS if available)
4) Anomalies (bulleted, include which rule triggered)
5) What to check next (3 concrete actions)

Rules:
- No hallucinated numbers.
- Cite values directly from JSON.
- Be concise and executive-ready.
- Output markdown only.

- ` + "`anomalies`" + ` may be truncated; use ` + "`anomalies_summary.count_total`" + ` and ` + "`rule_counts`" + ` if helpful.

Metrics JSON:
` + "```json\n%s\n```"

// compactPayload trims the bundle to what the model needs: recent weeks,
// the snapshot, and a bounded anomaly list with per-rule counts.
type compactPayload struct {
	Meta             model.Meta       `json:"meta"`
	Snapshot         model.Snapshot   `json:"latest_week_snapshot"`
	RecentWeeks      recentWeeks      `json:"recent_weeks"`
	Anomalies        []model.Anomaly  `json:"anomalies"`
	AnomaliesSummary anomaliesSummary `json:"anomalies_summary"`
}

type recentWeeks struct {
	Sales      []model.SalesWeek      `json:"sales_weekly"`
	Marketing  []model.MarketingWeek  `json:"marketing_weekly"`
	Efficiency []model.EfficiencyWeek `json:"efficiency_weekly"`
}

type anomaliesSummary struct {
	CountTotal    int            `json:"count_total"`
	CountIncluded int            `json:"count_included"`
	RuleCounts    map[string]int `json:"rule_counts"`
}

func compactBundle(m *model.MetricsBundle) compactPayload {
	ruleCounts := make(map[string]int)
	for _, a := range m.Anomalies {
		ruleCounts[a.RuleID]++
	}

	included := m.Anomalies
	if len(included) > maxAnomaliesForLLM {
		included = included[:maxAnomaliesForLLM]
	}

	return compactPayload{
		Meta:     m.Meta,
		Snapshot: m.LatestWeekSnapshot,
		RecentWeeks: recentWeeks{
			Sales:      tail(m.SalesWeekly, maxWeekHistoryForLLM),
			Marketing:  tail(m.MarketingWeekly, maxWeekHistoryForLLM),
			Efficiency: tail(m.EfficiencyWeekly, maxWeekHistoryForLLM),
		},
		Anomalies: included,
		AnomaliesSummary: anomaliesSummary{
			CountTotal:    len(m.Anomalies),
			CountIncluded: min(len(m.Anomalies), maxAnomaliesForLLM),
			RuleCounts:    ruleCounts,
		},
	}
}

func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

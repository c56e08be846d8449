package narrative

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/report-cli/internal/model"
)

var printer = message.NewPrinter(language.English)

func fmtCurrency(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return printer.Sprintf("$%.2f", *v)
}

func fmtPct(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

func fmtRatio(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2fx", *v)
}

func orNA(v *string) string {
	if v == nil {
		return "N/A"
	}
	return *v
}

// FallbackSummary renders the deterministic report used when the remote
// narrative strategy is unavailable. Same section layout as the remote
// prompt requests.
func FallbackSummary(m *model.MetricsBundle) string {
	latest := m.LatestWeekSnapshot
	anomalies := m.Anomalies

	title := fmt.Sprintf("# Weekly Performance Report (%s to %s)",
		orNA(m.Meta.WeekRange.Start), orNA(m.Meta.WeekRange.End))

	highlights := []string{
		fmt.Sprintf("- Revenue: %s across %d orders (AOV %s)",
			fmtCurrency(&latest.Revenue), latest.Orders, fmtCurrency(&latest.AOV)),
		fmt.Sprintf("- Spend: %s; MER: %s", fmtCurrency(&latest.Spend), fmtRatio(latest.MER)),
		fmt.Sprintf("- Funnel: CTR %s, CVR %s, CAC proxy %s",
			fmtPct(&latest.CTR), fmtPct(&latest.CVR), fmtCurrency(latest.CACProxy)),
		fmt.Sprintf("- Returning revenue share: %s", fmtPct(&latest.ReturningRevenueShare)),
		fmt.Sprintf("- Rule-based anomalies flagged: %d", len(anomalies)),
	}

	var channelLines []string
	for _, tc := range latest.TopChannelsByRevenue {
		channelLines = append(channelLines, fmt.Sprintf("- %s: revenue %s; ROAS %s",
			tc.Channel, fmtCurrency(&tc.Revenue), fmtRatio(tc.ROAS)))
	}
	if len(channelLines) == 0 {
		channelLines = []string{"- No channel revenue data available for the latest week."}
	}

	var anomalyLines []string
	for _, a := range anomalies {
		if len(anomalyLines) == 8 {
			break
		}
		anomalyLines = append(anomalyLines, fmt.Sprintf("- [%s] %s", a.RuleID, a.Why))
	}
	if len(anomalyLines) == 0 {
		anomalyLines = []string{"- No anomaly rules triggered this week."}
	}

	actions := []string{
		"- Validate tracking consistency for channels with the largest WoW swings in revenue or ROAS.",
		"- Review campaign-level spend and conversion quality for paid channels with rising CAC proxy.",
		"- Confirm returning customer promotions, CRM sends, and site changes if returning revenue share shifted materially.",
	}

	return strings.Join([]string{
		title,
		"## Highlights\n" + strings.Join(highlights, "\n"),
		"## Channel Performance\n" + strings.Join(channelLines, "\n"),
		"## Anomalies\n" + strings.Join(anomalyLines, "\n"),
		"## What To Check Next\n" + strings.Join(actions, "\n"),
		"\n> Note: Generated via deterministic fallback summary because the LLM was unavailable during this run.",
	}, "\n\n")
}

// Package report flattens the metrics bundle into tabular artifacts and
// persists the run's report files (markdown, JSON, CSV, XLSX), with
// optional Notion delivery.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/report-cli/internal/model"
)

// Flatten derives the one-row-per-week tabular form of the bundle: every
// scalar, WoW, and per-channel metric, plus the week's anomaly rule list
// and count. Values are typed (float64, int, string) with nil for nulls;
// the CSV and XLSX writers format them.
func Flatten(m *model.MetricsBundle) ([]string, [][]any) {
	header := []string{
		"week_start",
		"revenue", "orders", "aov", "returning_revenue_share",
		"revenue_wow", "orders_wow", "aov_wow", "returning_share_wow",
		"spend", "ctr", "cvr", "cpc", "cac_proxy",
		"spend_wow", "ctr_wow", "cvr_wow", "cac_proxy_wow",
		"mer", "mer_wow",
		"anomaly_count", "anomaly_rules",
	}
	for _, c := range model.Channels() {
		header = append(header,
			"revenue_"+string(c),
			"spend_"+string(c),
			"roas_"+string(c),
		)
	}

	rulesByWeek := make(map[string][]string)
	for _, a := range m.Anomalies {
		rulesByWeek[a.WeekStart] = append(rulesByWeek[a.WeekStart], a.RuleID)
	}

	rows := make([][]any, 0, len(m.SalesWeekly))
	for i, s := range m.SalesWeekly {
		mk := m.MarketingWeekly[i]
		eff := m.EfficiencyWeekly[i]
		rules := rulesByWeek[s.WeekStart]

		row := []any{
			s.WeekStart,
			s.Revenue, s.Orders, s.AOV, s.ReturningRevenueShare,
			optional(s.WoW.Revenue), optional(s.WoW.Orders), optional(s.WoW.AOV), optional(s.WoW.ReturningRevenueShare),
			mk.Spend, mk.CTR, mk.CVR, mk.CPC, optional(mk.CACProxy),
			optional(mk.WoW.Spend), optional(mk.WoW.CTR), optional(mk.WoW.CVR), optional(mk.WoW.CACProxy),
			optional(eff.MER), optional(eff.WoW.MER),
			len(rules), strings.Join(rules, ";"),
		}
		for _, c := range model.Channels() {
			row = append(row,
				s.RevenueByChannel[c],
				mk.SpendByChannel[c],
				optional(eff.ROASByChannel[c]),
			)
		}
		rows = append(rows, row)
	}
	return header, rows
}

// optional unwraps a nullable metric; nil stays nil (rendered empty).
func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// formatValue renders a flattened cell for text formats.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

package metrics

import (
	"fmt"
	"math"

	"github.com/sells-group/report-cli/internal/model"
)

// Detect evaluates the threshold rules against every week of the computed
// series. Rules only fire where the underlying WoW value is non-null, so
// the first week never produces anomalies. Output order is rule order
// nested within ascending week order; no deduplication or ranking.
func Detect(m *model.MetricsBundle, rules Rules) []model.Anomaly {
	anomalies := make([]model.Anomaly, 0)

	for _, sales := range m.SalesWeekly {
		wow := sales.WoW

		if wow.Revenue != nil && math.Abs(*wow.Revenue) >= rules.RevenueWoW {
			anomalies = append(anomalies, model.Anomaly{
				RuleID:    "revenue_wow_10pct",
				WeekStart: sales.WeekStart,
				Scope:     model.ScopeOverall,
				Entity:    "revenue",
				Current:   ptr(sales.Revenue),
				Previous:  wow.PreviousRevenue,
				Delta:     round4p(wow.Revenue),
				Why: fmt.Sprintf("Revenue changed %s WoW (%.2f vs %.2f)",
					pct(*wow.Revenue), sales.Revenue, deref(wow.PreviousRevenue)),
			})
		}

		if wow.ReturningRevenueSharePP != nil && math.Abs(*wow.ReturningRevenueSharePP) >= rules.ReturningSharePP {
			anomalies = append(anomalies, model.Anomaly{
				RuleID:    "returning_share_pp_8pt",
				WeekStart: sales.WeekStart,
				Scope:     model.ScopeOverall,
				Entity:    "returning_revenue_share",
				Current:   ptr(sales.ReturningRevenueShare),
				Previous:  wow.PreviousReturningRevenueShare,
				Delta:     round4p(wow.ReturningRevenueSharePP),
				Why: fmt.Sprintf("Returning revenue share moved %s points (%s vs %s)",
					signedPct(*wow.ReturningRevenueSharePP),
					pct(sales.ReturningRevenueShare),
					pct(deref(wow.PreviousReturningRevenueShare))),
			})
		}

		for _, c := range model.Channels() {
			channelWow := wow.RevenueByChannel[c]
			if channelWow == nil || math.Abs(*channelWow) < rules.ChannelRevenueWoW {
				continue
			}
			curr := sales.RevenueByChannel[c]
			prev := wow.PreviousRevenueByChannel[c]
			anomalies = append(anomalies, model.Anomaly{
				RuleID:    "channel_revenue_wow_15pct",
				WeekStart: sales.WeekStart,
				Scope:     model.ScopeChannel,
				Entity:    string(c),
				Current:   ptr(curr),
				Previous:  prev,
				Delta:     round4p(channelWow),
				Why: fmt.Sprintf("%s revenue changed %s WoW (%.2f vs %.2f)",
					c, pct(*channelWow), curr, deref(prev)),
			})
		}
	}

	for _, mk := range m.MarketingWeekly {
		wow := mk.WoW
		if wow.Spend == nil || math.Abs(*wow.Spend) < rules.SpendWoW {
			continue
		}
		anomalies = append(anomalies, model.Anomaly{
			RuleID:    "spend_wow_15pct",
			WeekStart: mk.WeekStart,
			Scope:     model.ScopeOverall,
			Entity:    "spend",
			Current:   ptr(mk.Spend),
			Previous:  wow.PreviousSpend,
			Delta:     round4p(wow.Spend),
			Why: fmt.Sprintf("Spend changed %s WoW (%.2f vs %.2f)",
				pct(*wow.Spend), mk.Spend, deref(wow.PreviousSpend)),
		})
	}

	for _, eff := range m.EfficiencyWeekly {
		for _, c := range model.Channels() {
			roasWow := eff.WoW.ROASByChannel[c]
			// Drops only, never rises.
			if roasWow == nil || *roasWow > -rules.ROASDrop {
				continue
			}
			curr := eff.ROASByChannel[c]
			prev := eff.WoW.PreviousROASByChannel[c]
			anomalies = append(anomalies, model.Anomaly{
				RuleID:    "roas_drop_20pct",
				WeekStart: eff.WeekStart,
				Scope:     model.ScopeChannel,
				Entity:    string(c),
				Current:   curr,
				Previous:  prev,
				Delta:     round4p(roasWow),
				Why: fmt.Sprintf("%s ROAS dropped %s WoW (%.2f vs %.2f)",
					c, pct(math.Abs(*roasWow)), deref(curr), deref(prev)),
			})
		}
	}

	return anomalies
}

func pct(v float64) string       { return fmt.Sprintf("%.1f%%", v*100) }
func signedPct(v float64) string { return fmt.Sprintf("%+.1f%%", v*100) }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

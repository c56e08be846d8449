package metrics

import (
	"slices"

	"github.com/sells-group/report-cli/internal/model"
)

// buildSnapshot assembles the latest-week flat view. An empty series yields
// an all-zero snapshot with a null week_start.
func buildSnapshot(sales []model.SalesWeek, marketing []model.MarketingWeek, efficiency []model.EfficiencyWeek) model.Snapshot {
	if len(sales) == 0 {
		return model.Snapshot{TopChannelsByRevenue: []model.TopChannel{}}
	}

	latestSales := sales[len(sales)-1]
	latestMk := marketing[len(marketing)-1]
	latestEff := efficiency[len(efficiency)-1]

	week := latestSales.WeekStart
	return model.Snapshot{
		WeekStart:             &week,
		Revenue:               latestSales.Revenue,
		Orders:                latestSales.Orders,
		AOV:                   latestSales.AOV,
		ReturningRevenueShare: latestSales.ReturningRevenueShare,
		Spend:                 latestMk.Spend,
		CTR:                   latestMk.CTR,
		CVR:                   latestMk.CVR,
		CPC:                   latestMk.CPC,
		CACProxy:              latestMk.CACProxy,
		MER:                   latestEff.MER,
		TopChannelsByRevenue:  topChannels(latestSales.RevenueByChannel, latestEff.ROASByChannel),
	}
}

// topChannels ranks channels by revenue descending and keeps the first
// three, pairing each with its ROAS. The stable sort preserves canonical
// channel order as the tiebreak.
func topChannels(revenue map[model.Channel]float64, roas map[model.Channel]*float64) []model.TopChannel {
	channels := model.Channels()
	slices.SortStableFunc(channels, func(a, b model.Channel) int {
		switch {
		case revenue[a] > revenue[b]:
			return -1
		case revenue[a] < revenue[b]:
			return 1
		default:
			return 0
		}
	})

	top := make([]model.TopChannel, 0, 3)
	for _, c := range channels[:min(3, len(channels))] {
		top = append(top, model.TopChannel{
			Channel: c,
			Revenue: round2(revenue[c]),
			ROAS:    round4p(roas[c]),
		})
	}
	return top
}

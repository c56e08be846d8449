package metrics

import "github.com/sells-group/report-cli/internal/model"

// applyWoW fills the wow sub-record of every entry in the three series.
// "Previous" is the entry at index i-1 in the ascending week order, not
// necessarily 7 days earlier; a skipped week silently compresses the gap.
// Index 0 gets all-null deltas.
func applyWoW(sales []model.SalesWeek, marketing []model.MarketingWeek, efficiency []model.EfficiencyWeek) {
	for i := range sales {
		if i == 0 {
			sales[i].WoW = emptySalesWoW()
			marketing[i].WoW = model.MarketingWoW{}
			efficiency[i].WoW = emptyEfficiencyWoW()
			continue
		}

		prev, curr := &sales[i-1], &sales[i]
		wow := model.SalesWoW{
			Revenue:                       round4p(wowChange(ptr(curr.Revenue), ptr(prev.Revenue))),
			Orders:                        round4p(wowChange(ptr(float64(curr.Orders)), ptr(float64(prev.Orders)))),
			AOV:                           round4p(wowChange(ptr(curr.AOV), ptr(prev.AOV))),
			ReturningRevenueShare:         round4p(wowChange(ptr(curr.ReturningRevenueShare), ptr(prev.ReturningRevenueShare))),
			ReturningRevenueSharePP:       ptr(round4(curr.ReturningRevenueShare - prev.ReturningRevenueShare)),
			PreviousRevenue:               ptr(prev.Revenue),
			PreviousReturningRevenueShare: ptr(prev.ReturningRevenueShare),
			RevenueByChannel:              make(map[model.Channel]*float64, len(model.Channels())),
			PreviousRevenueByChannel:      make(map[model.Channel]*float64, len(model.Channels())),
		}
		for _, c := range model.Channels() {
			wow.RevenueByChannel[c] = round4p(wowChange(ptr(curr.RevenueByChannel[c]), ptr(prev.RevenueByChannel[c])))
			wow.PreviousRevenueByChannel[c] = ptr(prev.RevenueByChannel[c])
		}
		curr.WoW = wow

		prevMk, currMk := &marketing[i-1], &marketing[i]
		currMk.WoW = model.MarketingWoW{
			Spend:         round4p(wowChange(ptr(currMk.Spend), ptr(prevMk.Spend))),
			CTR:           round4p(wowChange(ptr(currMk.CTR), ptr(prevMk.CTR))),
			CVR:           round4p(wowChange(ptr(currMk.CVR), ptr(prevMk.CVR))),
			CACProxy:      round4p(wowChange(currMk.CACProxy, prevMk.CACProxy)),
			PreviousSpend: ptr(prevMk.Spend),
		}

		prevEff, currEff := &efficiency[i-1], &efficiency[i]
		effWow := model.EfficiencyWoW{
			MER:                   round4p(wowChange(currEff.MER, prevEff.MER)),
			ROASByChannel:         make(map[model.Channel]*float64, len(model.Channels())),
			PreviousROASByChannel: make(map[model.Channel]*float64, len(model.Channels())),
		}
		for _, c := range model.Channels() {
			effWow.ROASByChannel[c] = round4p(wowChange(currEff.ROASByChannel[c], prevEff.ROASByChannel[c]))
			effWow.PreviousROASByChannel[c] = prevEff.ROASByChannel[c]
		}
		currEff.WoW = effWow
	}
}

func emptySalesWoW() model.SalesWoW {
	wow := model.SalesWoW{
		RevenueByChannel:         make(map[model.Channel]*float64, len(model.Channels())),
		PreviousRevenueByChannel: make(map[model.Channel]*float64, len(model.Channels())),
	}
	for _, c := range model.Channels() {
		wow.RevenueByChannel[c] = nil
		wow.PreviousRevenueByChannel[c] = nil
	}
	return wow
}

func emptyEfficiencyWoW() model.EfficiencyWoW {
	wow := model.EfficiencyWoW{
		ROASByChannel:         make(map[model.Channel]*float64, len(model.Channels())),
		PreviousROASByChannel: make(map[model.Channel]*float64, len(model.Channels())),
	}
	for _, c := range model.Channels() {
		wow.ROASByChannel[c] = nil
		wow.PreviousROASByChannel[c] = nil
	}
	return wow
}

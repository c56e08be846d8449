package metrics

import (
	"slices"
	"time"

	"github.com/sells-group/report-cli/internal/model"
)

// salesAcc accumulates one week of order data.
type salesAcc struct {
	revenue    float64
	orders     int
	byCustomer map[model.CustomerType]float64
	byChannel  map[model.Channel]float64
}

// adsAcc accumulates one week of ad-spend data.
type adsAcc struct {
	spend       float64
	impressions float64
	clicks      float64
	conversions float64
	byChannel   map[model.Channel]float64
}

// aggregateWeeks groups cleaned records by Monday-aligned week and produces
// the three weekly series over the union of weeks seen in either dataset.
// A week with orders but no spend still gets a marketing entry with zeroed
// fields, and vice versa.
func aggregateWeeks(orders []model.Order, ads []model.AdRow) ([]model.SalesWeek, []model.MarketingWeek, []model.EfficiencyWeek, []string) {
	sales := make(map[time.Time]*salesAcc)
	for _, o := range orders {
		week := WeekStart(o.Date)
		acc, ok := sales[week]
		if !ok {
			acc = &salesAcc{
				byCustomer: make(map[model.CustomerType]float64),
				byChannel:  make(map[model.Channel]float64),
			}
			sales[week] = acc
		}
		acc.revenue += o.Revenue
		acc.orders++
		acc.byCustomer[o.CustomerType] += o.Revenue
		acc.byChannel[o.Channel] += o.Revenue
	}

	adSpend := make(map[time.Time]*adsAcc)
	for _, a := range ads {
		week := WeekStart(a.Date)
		acc, ok := adSpend[week]
		if !ok {
			acc = &adsAcc{byChannel: make(map[model.Channel]float64)}
			adSpend[week] = acc
		}
		acc.spend += a.Spend
		acc.impressions += a.Impressions
		acc.clicks += a.Clicks
		acc.conversions += a.Conversions
		acc.byChannel[a.Channel] += a.Spend
	}

	weekSet := make(map[time.Time]struct{}, len(sales)+len(adSpend))
	for w := range sales {
		weekSet[w] = struct{}{}
	}
	for w := range adSpend {
		weekSet[w] = struct{}{}
	}
	weeks := make([]time.Time, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	slices.SortFunc(weeks, func(a, b time.Time) int { return a.Compare(b) })

	weekStrings := make([]string, len(weeks))
	salesWeekly := make([]model.SalesWeek, 0, len(weeks))
	marketingWeekly := make([]model.MarketingWeek, 0, len(weeks))
	efficiencyWeekly := make([]model.EfficiencyWeek, 0, len(weeks))

	for i, week := range weeks {
		weekStr := week.Format("2006-01-02")
		weekStrings[i] = weekStr

		salesEntry := buildSalesWeek(weekStr, sales[week])
		mkEntry := buildMarketingWeek(weekStr, adSpend[week])
		effEntry := buildEfficiencyWeek(weekStr, salesEntry, mkEntry)

		salesWeekly = append(salesWeekly, salesEntry)
		marketingWeekly = append(marketingWeekly, mkEntry)
		efficiencyWeekly = append(efficiencyWeekly, effEntry)
	}

	return salesWeekly, marketingWeekly, efficiencyWeekly, weekStrings
}

func buildSalesWeek(weekStr string, acc *salesAcc) model.SalesWeek {
	entry := model.SalesWeek{
		WeekStart:        weekStr,
		RevenueByChannel: make(map[model.Channel]float64, len(model.Channels())),
	}
	for _, c := range model.Channels() {
		entry.RevenueByChannel[c] = 0
	}
	if acc == nil {
		return entry
	}

	entry.Revenue = round2(acc.revenue)
	entry.Orders = acc.orders
	entry.AOV = round2(ratioOrZero(acc.revenue, float64(acc.orders)))
	entry.RevenueSplitByCustomerType = model.CustomerSplit{
		New:       round2(acc.byCustomer[model.CustomerNew]),
		Returning: round2(acc.byCustomer[model.CustomerReturning]),
		Unknown:   round2(acc.byCustomer[model.CustomerUnknown]),
	}
	for _, c := range model.Channels() {
		entry.RevenueByChannel[c] = round2(acc.byChannel[c])
	}
	entry.ReturningRevenueShare = round4(ratioOrZero(
		entry.RevenueSplitByCustomerType.Returning,
		entry.Revenue,
	))
	return entry
}

func buildMarketingWeek(weekStr string, acc *adsAcc) model.MarketingWeek {
	entry := model.MarketingWeek{
		WeekStart:      weekStr,
		SpendByChannel: make(map[model.Channel]float64, len(model.Channels())),
	}
	for _, c := range model.Channels() {
		entry.SpendByChannel[c] = 0
	}
	if acc != nil {
		entry.Spend = round2(acc.spend)
		entry.Impressions = int(acc.impressions)
		entry.Clicks = int(acc.clicks)
		entry.Conversions = int(acc.conversions)
		for _, c := range model.Channels() {
			entry.SpendByChannel[c] = round2(acc.byChannel[c])
		}
	}

	entry.CTR = round4(ratioOrZero(float64(entry.Clicks), float64(entry.Impressions)))
	entry.CVR = round4(ratioOrZero(float64(entry.Conversions), float64(entry.Clicks)))
	entry.CPC = round4(ratioOrZero(entry.Spend, float64(entry.Clicks)))
	entry.CACProxy = round4p(ratioOrNil(entry.Spend, float64(entry.Conversions)))
	return entry
}

func buildEfficiencyWeek(weekStr string, sales model.SalesWeek, mk model.MarketingWeek) model.EfficiencyWeek {
	entry := model.EfficiencyWeek{
		WeekStart:     weekStr,
		MER:           round4p(ratioOrNil(sales.Revenue, mk.Spend)),
		ROASByChannel: make(map[model.Channel]*float64, len(model.Channels())),
	}
	for _, c := range model.Channels() {
		entry.ROASByChannel[c] = round4p(ratioOrNil(sales.RevenueByChannel[c], mk.SpendByChannel[c]))
	}
	return entry
}

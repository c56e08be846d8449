package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/report-cli/internal/model"
)

var testRunDate = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// twoWeekFixture covers two Monday-aligned weeks with a sharp drop in the
// second, enough to trip every anomaly rule at least once.
func twoWeekFixture() ([]model.Order, []model.AdRow) {
	orders := []model.Order{
		{OrderID: "o1", Date: day(2024, 1, 1), Channel: model.ChannelPaidSocial, Revenue: 100, CustomerType: model.CustomerNew, Country: "US"},
		{OrderID: "o2", Date: day(2024, 1, 3), Channel: model.ChannelSearch, Revenue: 200, CustomerType: model.CustomerReturning, Country: "US"},
		{OrderID: "o3", Date: day(2024, 1, 6), Channel: model.ChannelEmail, Revenue: 300, CustomerType: model.CustomerReturning, Country: "DE"},

		{OrderID: "o4", Date: day(2024, 1, 8), Channel: model.ChannelPaidSocial, Revenue: 50, CustomerType: model.CustomerNew, Country: "US"},
		{OrderID: "o5", Date: day(2024, 1, 9), Channel: model.ChannelSearch, Revenue: 50, CustomerType: model.CustomerNew, Country: "US"},
	}
	ads := []model.AdRow{
		{Date: day(2024, 1, 1), Channel: model.ChannelPaidSocial, Campaign: "c1", Spend: 100, Impressions: 1000, Clicks: 100, Conversions: 10},
		{Date: day(2024, 1, 2), Channel: model.ChannelSearch, Campaign: "c2", Spend: 50, Impressions: 500, Clicks: 25, Conversions: 5},

		{Date: day(2024, 1, 8), Channel: model.ChannelPaidSocial, Campaign: "c1", Spend: 200, Impressions: 1000, Clicks: 50, Conversions: 5},
	}
	return orders, ads
}

func TestCompute_Empty(t *testing.T) {
	bundle := Compute(nil, nil, testRunDate, DefaultRules())

	assert.Equal(t, "2024-02-01", bundle.Meta.RunDate)
	assert.Zero(t, bundle.Meta.WeekRange.Weeks)
	assert.Nil(t, bundle.Meta.WeekRange.Start)
	assert.Nil(t, bundle.Meta.WeekRange.End)
	assert.Empty(t, bundle.SalesWeekly)
	assert.Empty(t, bundle.MarketingWeekly)
	assert.Empty(t, bundle.EfficiencyWeekly)
	assert.Nil(t, bundle.LatestWeekSnapshot.WeekStart)
	assert.NotNil(t, bundle.LatestWeekSnapshot.TopChannelsByRevenue)
	assert.Empty(t, bundle.LatestWeekSnapshot.TopChannelsByRevenue)
	assert.NotNil(t, bundle.Anomalies)
	assert.Empty(t, bundle.Anomalies)
}

func TestCompute_WeekUnion(t *testing.T) {
	orders := []model.Order{
		{OrderID: "o1", Date: day(2024, 1, 1), Channel: model.ChannelDirect, Revenue: 100, CustomerType: model.CustomerNew},
	}
	ads := []model.AdRow{
		{Date: day(2024, 1, 8), Channel: model.ChannelSearch, Campaign: "c", Spend: 40, Impressions: 100, Clicks: 10, Conversions: 1},
	}

	bundle := Compute(orders, ads, testRunDate, DefaultRules())

	require.Equal(t, []string{"2024-01-01", "2024-01-08"}, bundle.Meta.WeekStarts)
	require.Len(t, bundle.SalesWeekly, 2)
	require.Len(t, bundle.MarketingWeekly, 2)
	require.Len(t, bundle.EfficiencyWeekly, 2)

	// Orders-only week carries a zeroed marketing entry and vice versa.
	assert.Zero(t, bundle.MarketingWeekly[0].Spend)
	assert.Zero(t, bundle.SalesWeekly[1].Revenue)
	assert.Zero(t, bundle.SalesWeekly[1].Orders)
}

func TestCompute_WeeklySales(t *testing.T) {
	orders, ads := twoWeekFixture()
	bundle := Compute(orders, ads, testRunDate, DefaultRules())

	require.Len(t, bundle.SalesWeekly, 2)
	w1 := bundle.SalesWeekly[0]

	assert.Equal(t, "2024-01-01", w1.WeekStart)
	assert.InDelta(t, 600.0, w1.Revenue, 1e-9)
	assert.Equal(t, 3, w1.Orders)
	assert.InDelta(t, 200.0, w1.AOV, 1e-9)
	assert.InDelta(t, 100.0, w1.RevenueSplitByCustomerType.New, 1e-9)
	assert.InDelta(t, 500.0, w1.RevenueSplitByCustomerType.Returning, 1e-9)
	assert.InDelta(t, 0.8333, w1.ReturningRevenueShare, 1e-9)
	assert.InDelta(t, 100.0, w1.RevenueByChannel[model.ChannelPaidSocial], 1e-9)
	assert.InDelta(t, 0.0, w1.RevenueByChannel[model.ChannelDirect], 1e-9)
}

func TestCompute_WeeklyMarketingAndEfficiency(t *testing.T) {
	orders, ads := twoWeekFixture()
	bundle := Compute(orders, ads, testRunDate, DefaultRules())

	mk1 := bundle.MarketingWeekly[0]
	assert.InDelta(t, 150.0, mk1.Spend, 1e-9)
	assert.Equal(t, 1500, mk1.Impressions)
	assert.Equal(t, 125, mk1.Clicks)
	assert.Equal(t, 15, mk1.Conversions)
	assert.InDelta(t, 0.0833, mk1.CTR, 1e-9)
	assert.InDelta(t, 0.12, mk1.CVR, 1e-9)
	assert.InDelta(t, 1.2, mk1.CPC, 1e-9)
	require.NotNil(t, mk1.CACProxy)
	assert.InDelta(t, 10.0, *mk1.CACProxy, 1e-9)

	eff1 := bundle.EfficiencyWeekly[0]
	require.NotNil(t, eff1.MER)
	assert.InDelta(t, 4.0, *eff1.MER, 1e-9)
	require.NotNil(t, eff1.ROASByChannel[model.ChannelPaidSocial])
	assert.InDelta(t, 1.0, *eff1.ROASByChannel[model.ChannelPaidSocial], 1e-9)
	require.NotNil(t, eff1.ROASByChannel[model.ChannelSearch])
	assert.InDelta(t, 4.0, *eff1.ROASByChannel[model.ChannelSearch], 1e-9)
	// No email spend, so email ROAS is null rather than zero.
	assert.Nil(t, eff1.ROASByChannel[model.ChannelEmail])
}

func TestCompute_ZeroDenominators(t *testing.T) {
	orders := []model.Order{
		{OrderID: "o1", Date: day(2024, 1, 1), Channel: model.ChannelDirect, Revenue: 100, CustomerType: model.CustomerNew},
	}
	ads := []model.AdRow{
		{Date: day(2024, 1, 1), Channel: model.ChannelSearch, Campaign: "c", Spend: 0, Impressions: 0, Clicks: 0, Conversions: 0},
	}

	bundle := Compute(orders, ads, testRunDate, DefaultRules())
	mk := bundle.MarketingWeekly[0]

	// Zero-on-zero ratios.
	assert.Zero(t, mk.CTR)
	assert.Zero(t, mk.CVR)
	assert.Zero(t, mk.CPC)
	// Null-on-zero ratios.
	assert.Nil(t, mk.CACProxy)
	assert.Nil(t, bundle.EfficiencyWeekly[0].MER)
}

func TestCompute_FirstWeekWoWIsNull(t *testing.T) {
	orders, ads := twoWeekFixture()
	bundle := Compute(orders, ads, testRunDate, DefaultRules())

	w1 := bundle.SalesWeekly[0].WoW
	assert.Nil(t, w1.Revenue)
	assert.Nil(t, w1.Orders)
	assert.Nil(t, w1.AOV)
	assert.Nil(t, w1.ReturningRevenueSharePP)
	for _, c := range model.Channels() {
		assert.Nil(t, w1.RevenueByChannel[c])
	}

	assert.Nil(t, bundle.MarketingWeekly[0].WoW.Spend)
	assert.Nil(t, bundle.EfficiencyWeekly[0].WoW.MER)
}

func TestCompute_WoWDeltas(t *testing.T) {
	orders, ads := twoWeekFixture()
	bundle := Compute(orders, ads, testRunDate, DefaultRules())

	w2 := bundle.SalesWeekly[1].WoW
	require.NotNil(t, w2.Revenue)
	assert.InDelta(t, -0.8333, *w2.Revenue, 1e-9)
	require.NotNil(t, w2.ReturningRevenueSharePP)
	assert.InDelta(t, -0.8333, *w2.ReturningRevenueSharePP, 1e-9)
	require.NotNil(t, w2.PreviousRevenue)
	assert.InDelta(t, 600.0, *w2.PreviousRevenue, 1e-9)

	mk2 := bundle.MarketingWeekly[1].WoW
	require.NotNil(t, mk2.Spend)
	assert.InDelta(t, 0.3333, *mk2.Spend, 1e-9)

	eff2 := bundle.EfficiencyWeekly[1].WoW
	roasWow := eff2.ROASByChannel[model.ChannelPaidSocial]
	require.NotNil(t, roasWow)
	assert.InDelta(t, -0.75, *roasWow, 1e-9)
}

func TestCompute_Snapshot(t *testing.T) {
	orders, ads := twoWeekFixture()
	bundle := Compute(orders, ads, testRunDate, DefaultRules())

	snap := bundle.LatestWeekSnapshot
	require.NotNil(t, snap.WeekStart)
	assert.Equal(t, "2024-01-08", *snap.WeekStart)
	assert.InDelta(t, 100.0, snap.Revenue, 1e-9)
	assert.Equal(t, 2, snap.Orders)

	require.Len(t, snap.TopChannelsByRevenue, 3)
	// Both revenue channels tie at 50; canonical order breaks the tie.
	assert.Equal(t, model.ChannelPaidSocial, snap.TopChannelsByRevenue[0].Channel)
	assert.Equal(t, model.ChannelSearch, snap.TopChannelsByRevenue[1].Channel)
	assert.Equal(t, model.ChannelEmail, snap.TopChannelsByRevenue[2].Channel)
}

func TestCompute_Idempotent(t *testing.T) {
	orders, ads := twoWeekFixture()

	first := Compute(orders, ads, testRunDate, DefaultRules())
	second := Compute(orders, ads, testRunDate, DefaultRules())
	assert.Equal(t, first, second)
}

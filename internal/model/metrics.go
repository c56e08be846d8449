package model

// Nullable metric fields are *float64: nil serializes to JSON null and is
// how "no data" is kept distinct from a literal zero (CAC proxy, MER, ROAS).

// CustomerSplit breaks weekly revenue down by customer type.
type CustomerSplit struct {
	New       float64 `json:"new"`
	Returning float64 `json:"returning"`
	Unknown   float64 `json:"unknown"`
}

// SalesWoW holds week-over-week deltas for a sales entry, plus the previous
// week's raw values for anomaly-rule context. All fields are null for the
// first week of the series.
type SalesWoW struct {
	Revenue                       *float64             `json:"revenue"`
	Orders                        *float64             `json:"orders"`
	AOV                           *float64             `json:"aov"`
	ReturningRevenueShare         *float64             `json:"returning_revenue_share"`
	ReturningRevenueSharePP       *float64             `json:"returning_revenue_share_pp"`
	PreviousRevenue               *float64             `json:"previous_revenue"`
	PreviousReturningRevenueShare *float64             `json:"previous_returning_revenue_share"`
	RevenueByChannel              map[Channel]*float64 `json:"revenue_by_channel"`
	PreviousRevenueByChannel      map[Channel]*float64 `json:"previous_revenue_by_channel"`
}

// SalesWeek is one week of sales KPIs. All six canonical channels are always
// present in RevenueByChannel, defaulting to 0.0.
type SalesWeek struct {
	WeekStart                  string              `json:"week_start"`
	Revenue                    float64             `json:"revenue"`
	Orders                     int                 `json:"orders"`
	AOV                        float64             `json:"aov"`
	RevenueSplitByCustomerType CustomerSplit       `json:"revenue_split_by_customer_type"`
	ReturningRevenueShare      float64             `json:"returning_revenue_share"`
	RevenueByChannel           map[Channel]float64 `json:"revenue_by_channel"`
	WoW                        SalesWoW            `json:"wow"`
}

// MarketingWoW holds week-over-week deltas for a marketing entry.
type MarketingWoW struct {
	Spend         *float64 `json:"spend"`
	CTR           *float64 `json:"ctr"`
	CVR           *float64 `json:"cvr"`
	CACProxy      *float64 `json:"cac_proxy"`
	PreviousSpend *float64 `json:"previous_spend"`
}

// MarketingWeek is one week of ad-spend KPIs. CACProxy is null (not zero)
// when the week has zero conversions.
type MarketingWeek struct {
	WeekStart      string              `json:"week_start"`
	Spend          float64             `json:"spend"`
	Impressions    int                 `json:"impressions"`
	Clicks         int                 `json:"clicks"`
	Conversions    int                 `json:"conversions"`
	CTR            float64             `json:"ctr"`
	CVR            float64             `json:"cvr"`
	CPC            float64             `json:"cpc"`
	CACProxy       *float64            `json:"cac_proxy"`
	SpendByChannel map[Channel]float64 `json:"spend_by_channel"`
	WoW            MarketingWoW        `json:"wow"`
}

// EfficiencyWoW holds week-over-week deltas for an efficiency entry.
type EfficiencyWoW struct {
	MER                   *float64             `json:"mer"`
	ROASByChannel         map[Channel]*float64 `json:"roas_by_channel"`
	PreviousROASByChannel map[Channel]*float64 `json:"previous_roas_by_channel"`
}

// EfficiencyWeek is one week of spend-efficiency ratios. MER and per-channel
// ROAS are null on zero spend.
type EfficiencyWeek struct {
	WeekStart     string               `json:"week_start"`
	MER           *float64             `json:"mer"`
	ROASByChannel map[Channel]*float64 `json:"roas_by_channel"`
	WoW           EfficiencyWoW        `json:"wow"`
}

// AnomalyScope distinguishes overall-metric rules from per-channel rules.
type AnomalyScope string

const (
	ScopeOverall AnomalyScope = "overall"
	ScopeChannel AnomalyScope = "channel"
)

// Anomaly is one firing of a threshold rule. Anomalies are derived on every
// run from the weekly entries and carry no identity across runs.
type Anomaly struct {
	RuleID    string       `json:"rule_id"`
	WeekStart string       `json:"week_start"`
	Scope     AnomalyScope `json:"scope"`
	Entity    string       `json:"entity"`
	Current   *float64     `json:"current"`
	Previous  *float64     `json:"previous"`
	Delta     *float64     `json:"delta"`
	Why       string       `json:"why"`
}

// TopChannel pairs a channel's latest-week revenue with its ROAS.
type TopChannel struct {
	Channel Channel  `json:"channel"`
	Revenue float64  `json:"revenue"`
	ROAS    *float64 `json:"roas"`
}

// Snapshot is the flat latest-week view handed to the narrative renderer.
// WeekStart is null when no weeks were materialized.
type Snapshot struct {
	WeekStart             *string      `json:"week_start"`
	Revenue               float64      `json:"revenue"`
	Orders                int          `json:"orders"`
	AOV                   float64      `json:"aov"`
	ReturningRevenueShare float64      `json:"returning_revenue_share"`
	Spend                 float64      `json:"spend"`
	CTR                   float64      `json:"ctr"`
	CVR                   float64      `json:"cvr"`
	CPC                   float64      `json:"cpc"`
	CACProxy              *float64     `json:"cac_proxy"`
	MER                   *float64     `json:"mer"`
	TopChannelsByRevenue  []TopChannel `json:"top_channels_by_revenue"`
}

// WeekRange summarizes the span of materialized weeks.
type WeekRange struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
	Weeks int     `json:"weeks"`
}

// Meta describes one pipeline run.
type Meta struct {
	RunDate         string    `json:"run_date"`
	OrdersRowsClean int       `json:"orders_rows_clean"`
	AdsRowsClean    int       `json:"ads_rows_clean"`
	WeekRange       WeekRange `json:"week_range"`
	WeekStarts      []string  `json:"week_starts"`
}

// MetricsBundle is the root aggregate produced by one pipeline run. It is
// never mutated after construction; the set of week_start values is identical
// across the three weekly series.
type MetricsBundle struct {
	Meta               Meta             `json:"meta"`
	SalesWeekly        []SalesWeek      `json:"sales_weekly"`
	MarketingWeekly    []MarketingWeek  `json:"marketing_weekly"`
	EfficiencyWeekly   []EfficiencyWeek `json:"efficiency_weekly"`
	LatestWeekSnapshot Snapshot         `json:"latest_week_snapshot"`
	Anomalies          []Anomaly        `json:"anomalies"`
}

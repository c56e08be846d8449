package model

import "time"

// Order is a cleaned order row. After cleaning there is exactly one Order
// per OrderID (dedup keeps the last occurrence) and Date is always valid;
// rows whose dates fail to parse are dropped, not defaulted.
type Order struct {
	OrderID      string
	Date         time.Time // date-only, midnight UTC
	Channel      Channel
	Revenue      float64 // may be negative (refunds)
	CustomerType CustomerType
	Country      string // "unknown" when absent
}

// AdRow is a cleaned advertising-spend row. Unlike orders, ad rows are not
// deduplicated. Impressions/clicks/conversions are rounded to whole numbers
// during cleaning but kept as floats for aggregation.
type AdRow struct {
	Date        time.Time // date-only, midnight UTC
	Channel     Channel
	Campaign    string // "unknown" when absent
	Spend       float64
	Impressions float64
	Clicks      float64
	Conversions float64
}

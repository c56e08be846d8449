package transform

import (
	"math"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/report-cli/internal/model"
	"github.com/sells-group/report-cli/internal/source"
)

// CleanOrders standardizes the raw orders table: parse every column through
// the primitives, drop rows with unparseable dates, deduplicate by order_id
// keeping the last occurrence, and sort ascending by date.
func CleanOrders(t source.Table) []model.Order {
	zap.L().Info("cleaning orders data", zap.Int("raw_rows", t.Len()))

	orders := make([]model.Order, 0, t.Len())
	var invalidDates int
	for i := 0; i < t.Len(); i++ {
		date, ok := ParseDate(t.Cell(i, "order_date"))
		if !ok {
			invalidDates++
			continue
		}
		orders = append(orders, model.Order{
			OrderID:      strings.TrimSpace(t.Cell(i, "order_id").Text()),
			Date:         date,
			Channel:      NormalizeChannel(t.Cell(i, "channel")),
			Revenue:      ParseMoney(t.Cell(i, "revenue")),
			CustomerType: NormalizeCustomerType(t.Cell(i, "customer_type")),
			Country:      defaultString(t.Cell(i, "country"), "unknown"),
		})
	}
	if invalidDates > 0 {
		zap.L().Warn("dropping orders with invalid or missing order_date",
			zap.Int("dropped", invalidDates),
		)
	}

	deduped := dedupeByOrderID(orders)
	if removed := len(orders) - len(deduped); removed > 0 {
		zap.L().Warn("removed duplicate order rows by order_id, kept last",
			zap.Int("removed", removed),
		)
	}

	slices.SortStableFunc(deduped, func(a, b model.Order) int {
		return a.Date.Compare(b.Date)
	})
	zap.L().Info("cleaned orders rows", zap.Int("rows", len(deduped)))
	return deduped
}

// CleanAds standardizes the raw ad-spend table. Same shape as CleanOrders
// but without deduplication; impressions/clicks/conversions are rounded to
// whole numbers after parsing.
func CleanAds(t source.Table) []model.AdRow {
	zap.L().Info("cleaning ads data", zap.Int("raw_rows", t.Len()))

	ads := make([]model.AdRow, 0, t.Len())
	var invalidDates int
	for i := 0; i < t.Len(); i++ {
		date, ok := ParseDate(t.Cell(i, "date"))
		if !ok {
			invalidDates++
			continue
		}
		ads = append(ads, model.AdRow{
			Date:        date,
			Channel:     NormalizeChannel(t.Cell(i, "channel")),
			Campaign:    defaultString(t.Cell(i, "campaign"), "unknown"),
			Spend:       ParseMoney(t.Cell(i, "spend")),
			Impressions: math.Round(ParseNumber(t.Cell(i, "impressions"))),
			Clicks:      math.Round(ParseNumber(t.Cell(i, "clicks"))),
			Conversions: math.Round(ParseNumber(t.Cell(i, "conversions"))),
		})
	}
	if invalidDates > 0 {
		zap.L().Warn("dropping ads rows with invalid or missing date",
			zap.Int("dropped", invalidDates),
		)
	}

	slices.SortStableFunc(ads, func(a, b model.AdRow) int {
		return a.Date.Compare(b.Date)
	})
	zap.L().Info("cleaned ads rows", zap.Int("rows", len(ads)))
	return ads
}

// dedupeByOrderID keeps the last occurrence of each order_id, preserving
// the relative order of the survivors.
func dedupeByOrderID(orders []model.Order) []model.Order {
	lastIdx := make(map[string]int, len(orders))
	for i, o := range orders {
		lastIdx[o.OrderID] = i
	}
	out := make([]model.Order, 0, len(lastIdx))
	for i, o := range orders {
		if lastIdx[o.OrderID] == i {
			out = append(out, o)
		}
	}
	return out
}

func defaultString(c source.Cell, fallback string) string {
	if c.IsMissing() {
		return fallback
	}
	text := strings.TrimSpace(c.Text())
	if text == "" {
		return fallback
	}
	return text
}

package metrics

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/report-cli/internal/model"
)

// Compute builds the full metrics bundle from cleaned inputs. Deterministic
// for a given (orders, ads, runDate, rules) tuple: re-running on the same
// inputs yields an identical bundle. Either input may be empty; the result
// is then a structurally valid all-empty bundle.
func Compute(orders []model.Order, ads []model.AdRow, runDate time.Time, rules Rules) model.MetricsBundle {
	zap.L().Info("computing weekly metrics",
		zap.Int("orders", len(orders)),
		zap.Int("ads", len(ads)),
	)

	sales, marketing, efficiency, weekStrings := aggregateWeeks(orders, ads)
	applyWoW(sales, marketing, efficiency)

	meta := model.Meta{
		RunDate:         runDate.Format("2006-01-02"),
		OrdersRowsClean: len(orders),
		AdsRowsClean:    len(ads),
		WeekRange:       model.WeekRange{Weeks: len(weekStrings)},
		WeekStarts:      weekStrings,
	}
	if len(weekStrings) > 0 {
		meta.WeekRange.Start = &weekStrings[0]
		meta.WeekRange.End = &weekStrings[len(weekStrings)-1]
	}

	bundle := model.MetricsBundle{
		Meta:               meta,
		SalesWeekly:        sales,
		MarketingWeekly:    marketing,
		EfficiencyWeekly:   efficiency,
		LatestWeekSnapshot: buildSnapshot(sales, marketing, efficiency),
	}
	bundle.Anomalies = Detect(&bundle, rules)

	zap.L().Info("computed weekly metrics",
		zap.Int("weeks", len(weekStrings)),
		zap.Int("anomalies", len(bundle.Anomalies)),
	)
	return bundle
}

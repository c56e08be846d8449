// Package metrics aggregates cleaned records into weekly KPI series,
// computes week-over-week deltas, applies anomaly rules, and assembles the
// metrics bundle. Pure computation over in-memory data; no I/O.
package metrics

import (
	"math"
	"time"
)

// WeekStart aligns a date to the Monday of its ISO week, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	// time.Weekday has Sunday=0; ISO weekday index has Monday=0.
	offset := (int(t.Weekday()) + 6) % 7
	t = t.AddDate(0, 0, -offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

func round4p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round4(*v)
	return &r
}

func ptr(v float64) *float64 { return &v }

// ratioOrZero divides, returning 0 on a zero denominator. Used for ratios
// where "no data" and "zero" are not distinguished (AOV, CTR, CVR, CPC).
func ratioOrZero(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// ratioOrNil divides, returning nil on a zero denominator. Used where "no
// data" must stay distinct from zero (CAC proxy, MER, ROAS).
func ratioOrNil(num, den float64) *float64 {
	if den == 0 {
		return nil
	}
	v := num / den
	return &v
}

// wowChange computes (current-previous)/previous, nil when either side is
// nil or the previous value is zero.
func wowChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	v := (*current - *previous) / *previous
	return &v
}

package transform

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/sells-group/report-cli/internal/source"
)

// dateLayouts are tried in priority order; the first exact match wins.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"Jan 2 2006",
	"2006/01/02",
	"January 2 2006",
}

// ParseDate parses a mixed-format date cell. Blank cells and unparseable
// text return ok=false; callers drop such rows. Results are normalized to
// midnight UTC date-only precision.
func ParseDate(raw source.Cell) (time.Time, bool) {
	if isBlank(raw) {
		return time.Time{}, false
	}
	text := strings.TrimSpace(raw.Text())

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return midnight(t), true
		}
	}

	// Permissive month-first fallback for formats outside the explicit list.
	t, err := dateparse.ParseAny(text, dateparse.PreferMonthFirst(true))
	if err != nil {
		return time.Time{}, false
	}
	return midnight(t), true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

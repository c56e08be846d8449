package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/report-cli/internal/source"
)

func TestParseDate_Formats(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	// The same calendar day in every supported rendering.
	for _, raw := range []string{
		"2024-01-15",
		"01/15/2024",
		"Jan 15 2024",
		"2024/01/15",
		"January 15 2024",
	} {
		got, ok := ParseDate(source.String(raw))
		require.True(t, ok, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}
}

func TestParseDate_FallbackParser(t *testing.T) {
	// Not in the explicit layout list; the permissive parser handles it and
	// the time component is truncated to midnight.
	got, ok := ParseDate(source.String("2024-01-15 10:30:00"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_MonthFirstAmbiguity(t *testing.T) {
	// 03/04 reads as March 4th, not April 3rd.
	got, ok := ParseDate(source.String("03/04/2024"))
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Invalid(t *testing.T) {
	for _, raw := range []source.Cell{
		source.String("not a date"),
		source.String(""),
		source.String("N/A"),
		source.Missing(),
	} {
		_, ok := ParseDate(raw)
		assert.False(t, ok, "input %q", raw.Text())
	}
}

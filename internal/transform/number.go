// Package transform converts raw cells into canonical typed values and
// applies those conversions table-wide to produce cleaned records. Every
// primitive here is total: malformed input degrades to a safe default and
// is logged, never surfaced as an error.
package transform

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/report-cli/internal/source"
)

var blankMarkers = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"null": {},
	"none": {},
	"nan":  {},
}

var nonNumericRe = regexp.MustCompile(`[^0-9,.\-]`)

// isBlank reports whether the cell is missing or a textual null marker.
func isBlank(c source.Cell) bool {
	if c.IsMissing() {
		return true
	}
	if c.Kind == source.CellNumber && math.IsNaN(c.Num) {
		return true
	}
	text := strings.ToLower(strings.TrimSpace(c.Text()))
	_, ok := blankMarkers[text]
	return ok
}

// ParseMoney parses messy currency strings supporting common US/EU formats.
// Parentheses and a leading minus denote negatives; currency symbols and
// grouping characters are stripped. Unparseable input yields 0.
func ParseMoney(raw source.Cell) float64 {
	if isBlank(raw) {
		return 0
	}

	text := strings.TrimSpace(raw.Text())
	negative := false
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		negative = true
		text = text[1 : len(text)-1]
	}
	if strings.HasPrefix(text, "-") {
		negative = true
	}

	cleaned := nonNumericRe.ReplaceAllString(text, "")
	if strings.Count(cleaned, "-") > 1 {
		cleaned = strings.ReplaceAll(cleaned, "-", "")
		negative = true
	}
	cleaned = strings.TrimLeft(cleaned, "-")

	if cleaned == "" {
		return 0
	}

	normalized := resolveSeparators(cleaned, false)
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		zap.L().Warn("failed to parse money value, defaulting to 0",
			zap.String("raw", raw.Text()),
		)
		return 0
	}
	if negative {
		return -value
	}
	return value
}

// ParseNumber parses messy numeric strings (impressions, clicks,
// conversions) with the same separator disambiguation as ParseMoney but
// without parenthesis or sign collapsing. Unparseable input yields 0.
func ParseNumber(raw source.Cell) float64 {
	if isBlank(raw) {
		return 0
	}

	text := nonNumericRe.ReplaceAllString(strings.TrimSpace(raw.Text()), "")
	if text == "" {
		return 0
	}

	normalized := resolveSeparators(text, true)
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		zap.L().Warn("failed to parse numeric value, defaulting to 0",
			zap.String("raw", raw.Text()),
		)
		return 0
	}
	return value
}

// resolveSeparators disambiguates thousands vs decimal separators. When both
// appear, whichever comes later is the decimal point. A lone comma group of
// 1-2 trailing digits is a decimal comma; otherwise commas are grouping.
// Multiple dots without commas keep the last group as decimals only if it is
// 1-2 digits long. strictComma restricts the decimal-comma case to exactly
// one comma (the generic-number rule); money accepts trailing decimals after
// any number of commas.
func resolveSeparators(s string, strictComma bool) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.ReplaceAll(s, ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")

	case hasComma:
		parts := strings.Split(s, ",")
		last := parts[len(parts)-1]
		decimalComma := len(last) >= 1 && len(last) <= 2
		if strictComma {
			decimalComma = decimalComma && len(parts) == 2
		}
		if decimalComma {
			head := strings.Join(parts[:len(parts)-1], "")
			if !strictComma {
				head = strings.ReplaceAll(head, ".", "")
			}
			return head + "." + last
		}
		return strings.ReplaceAll(s, ",", "")

	case strings.Count(s, ".") > 1:
		parts := strings.Split(s, ".")
		last := parts[len(parts)-1]
		if len(last) >= 1 && len(last) <= 2 {
			return strings.Join(parts[:len(parts)-1], "") + "." + last
		}
		return strings.Join(parts, "")
	}

	return s
}

package transform

import (
	"regexp"
	"strings"

	"github.com/sells-group/report-cli/internal/model"
	"github.com/sells-group/report-cli/internal/source"
)

// paidSocialAliases are compact-form labels that resolve to paid_social.
var paidSocialAliases = map[string]struct{}{
	"fb":           {},
	"facebook":     {},
	"facebooks":    {},
	"facebok":      {},
	"facebookads":  {},
	"facebooksads": {},
	"facebokads":   {},
	"ig":           {},
	"instagram":    {},
	"meta":         {},
}

// emailAliases are compact-form labels that resolve to email.
var emailAliases = map[string]struct{}{
	"newsletter": {},
	"email":      {},
	"mail":       {},
	"klaviyo":    {},
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeChannel maps a messy channel label onto the canonical channel
// set. Resolution is layered alias-then-substring matching, checked top to
// bottom with the first hit winning; the order matters because some labels
// would match more than one rule. Anything unrecognized is unknown.
func NormalizeChannel(raw source.Cell) model.Channel {
	if raw.IsMissing() {
		return model.ChannelUnknown
	}
	text := strings.ToLower(strings.TrimSpace(raw.Text()))
	if text == "" {
		return model.ChannelUnknown
	}

	compact := nonAlnumRe.ReplaceAllString(text, "")

	if _, ok := paidSocialAliases[compact]; ok {
		return model.ChannelPaidSocial
	}
	if strings.Contains(text, "face") && strings.Contains(text, "book") {
		return model.ChannelPaidSocial
	}
	if strings.Contains(text, "instagram") || compact == "ig" {
		return model.ChannelPaidSocial
	}
	if strings.Contains(text, "tiktok") {
		return model.ChannelPaidSocial
	}

	if strings.Contains(text, "google") || strings.Contains(text, "search") {
		return model.ChannelSearch
	}
	if _, ok := emailAliases[compact]; ok {
		return model.ChannelEmail
	}
	if strings.Contains(text, "newsletter") || text == "email" {
		return model.ChannelEmail
	}
	if strings.Contains(text, "organic") {
		return model.ChannelOrganic
	}
	if strings.Contains(text, "direct") {
		return model.ChannelDirect
	}
	return model.ChannelUnknown
}

var newCustomerLabels = map[string]struct{}{
	"new":        {},
	"first":      {},
	"1st":        {},
	"first-time": {},
	"first_time": {},
}

var returningCustomerLabels = map[string]struct{}{
	"returning": {},
	"repeat":    {},
	"existing":  {},
	"return":    {},
}

// NormalizeCustomerType maps a raw customer-type label onto
// new/returning/unknown via exact-match sets.
func NormalizeCustomerType(raw source.Cell) model.CustomerType {
	if isBlank(raw) {
		return model.CustomerUnknown
	}
	text := strings.ToLower(strings.TrimSpace(raw.Text()))
	if _, ok := newCustomerLabels[text]; ok {
		return model.CustomerNew
	}
	if _, ok := returningCustomerLabels[text]; ok {
		return model.CustomerReturning
	}
	return model.CustomerUnknown
}

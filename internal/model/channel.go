// Package model defines the core domain types shared across the pipeline:
// canonical enums, cleaned records, and the weekly metrics bundle.
package model

// Channel is one of the six canonical marketing channels. Every raw label
// in the source data maps to exactly one Channel; unrecognized text maps
// to ChannelUnknown, never an error.
type Channel string

const (
	ChannelPaidSocial Channel = "paid_social"
	ChannelSearch     Channel = "search"
	ChannelEmail      Channel = "email"
	ChannelOrganic    Channel = "organic"
	ChannelDirect     Channel = "direct"
	ChannelUnknown    Channel = "unknown"
)

// Channels returns the canonical channel set in its fixed enumeration
// order. The order is load-bearing: snapshot top-3 ranking uses it as the
// stable-sort tiebreak.
func Channels() []Channel {
	return []Channel{
		ChannelPaidSocial,
		ChannelSearch,
		ChannelEmail,
		ChannelOrganic,
		ChannelDirect,
		ChannelUnknown,
	}
}

// CustomerType classifies an order's buyer.
type CustomerType string

const (
	CustomerNew       CustomerType = "new"
	CustomerReturning CustomerType = "returning"
	CustomerUnknown   CustomerType = "unknown"
)

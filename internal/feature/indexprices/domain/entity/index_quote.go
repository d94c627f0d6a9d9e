// Package entity defines the domain models for the indexprices feature.
package entity

// Nifty50 is the display name NSE uses for the NIFTY 50 index.
const Nifty50 = "NIFTY 50"

// IndexQuote is the latest value of one market index.
// Last is nil when the exchange reports no value.
type IndexQuote struct {
	Index string
	Last  *float64
}

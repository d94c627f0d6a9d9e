package entity

import "strings"

// Kind selects which gateway resolves a watchlist entry.
type Kind string

const (
	// KindIndex entries are resolved through the index price service.
	KindIndex Kind = "index"
	// KindEquity entries are resolved through the quote provider.
	KindEquity Kind = "equity"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindIndex || k == KindEquity
}

// WatchlistEntry is a request to track one instrument.
type WatchlistEntry struct {
	Name   string
	Symbol string
	Kind   Kind
}

// NewSearchEntry builds the equity entry created by a search.
// The identity is not resolved: the trimmed input becomes the name and its upper-cased form the symbol.
func NewSearchEntry(term string) WatchlistEntry {
	t := strings.TrimSpace(term)
	return WatchlistEntry{Name: t, Symbol: strings.ToUpper(t), Kind: KindEquity}
}

// Matches reports whether term equals the entry's name or symbol, ignoring case and surrounding spaces.
func (e WatchlistEntry) Matches(term string) bool {
	return sameIdentity(e.Name, e.Symbol, term)
}

// Matches reports whether term equals the snapshot's name or symbol, ignoring case and surrounding spaces.
func (s StockSnapshot) Matches(term string) bool {
	return sameIdentity(s.Name, s.Symbol, term)
}

func sameIdentity(name, symbol, term string) bool {
	t := strings.TrimSpace(term)
	if t == "" {
		return false
	}
	return strings.EqualFold(name, t) || strings.EqualFold(symbol, t)
}

// DefaultWatchlist returns the fixed starting watchlist, in display order.
func DefaultWatchlist() []WatchlistEntry {
	return []WatchlistEntry{
		{Name: "NIFTY 50", Symbol: "NIFTY 50", Kind: KindIndex},
		{Name: "Reliance Industries", Symbol: "RELIANCE", Kind: KindEquity},
		{Name: "Tata Consultancy Services", Symbol: "TCS", Kind: KindEquity},
		{Name: "HDFC Bank", Symbol: "HDFCBANK", Kind: KindEquity},
	}
}

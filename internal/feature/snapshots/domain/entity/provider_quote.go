package entity

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericText is a provider number kept as text.
// The provider sends most numbers as JSON strings but occasionally as bare numbers;
// both decode into the same textual form and are interpreted later by Float.
type NumericText string

// UnmarshalJSON accepts a JSON string, number or null.
func (n *NumericText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumericText(num.String())
	return nil
}

// Float parses the text. Empty or unparseable text yields NaN.
func (n NumericText) Float() float64 {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// IsZero reports whether the provider omitted the value.
func (n NumericText) IsZero() bool {
	return strings.TrimSpace(string(n)) == ""
}

// ProviderQuote is the raw quote payload returned by the quote provider.
// Only the fields the dashboard consumes are modeled; everything else is ignored on decode.
type ProviderQuote struct {
	CompanyName    string         `json:"companyName"`
	Industry       string         `json:"industry"`
	CompanyProfile CompanyProfile `json:"companyProfile"`
	CurrentPrice   ExchangePrices `json:"currentPrice"`
	PercentChange  NumericText    `json:"percentChange"`
	YearHigh       NumericText    `json:"yearHigh"`
	YearLow        NumericText    `json:"yearLow"`
}

// CompanyProfile carries exchange codes and peer data.
type CompanyProfile struct {
	ExchangeCodeNSE    string        `json:"exchangeCodeNse"`
	ExchangeCodeBSE    string        `json:"exchangeCodeBse"`
	ISIN               string        `json:"isInId"`
	MgIndustry         string        `json:"mgIndustry"`
	CompanyDescription string        `json:"companyDescription"`
	PeerCompanyList    []PeerCompany `json:"peerCompanyList"`
}

// PeerCompany is one entry of the provider's peer list. The first peer describes the company itself.
type PeerCompany struct {
	CompanyName string      `json:"companyName"`
	TickerID    string      `json:"tickerId"`
	MarketCap   NumericText `json:"marketCap"`
	ImageURL    string      `json:"imageUrl"`
}

// ExchangePrices holds the last traded price per exchange.
type ExchangePrices struct {
	NSE NumericText `json:"NSE"`
	BSE NumericText `json:"BSE"`
}

// Package dto defines the wire format of the NSE market status endpoint.
package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// MarketStatusResponse is the body of GET /api/marketStatus.
type MarketStatusResponse struct {
	MarketState []MarketState `json:"marketState"`
}

// MarketState is one market segment. Only the fields the proxy reads are modeled.
type MarketState struct {
	Market       string     `json:"market"`
	MarketStatus string     `json:"marketStatus"`
	TradeDate    string     `json:"tradeDate"`
	Index        string     `json:"index"`
	Last         LooseFloat `json:"last"`
}

// LooseFloat decodes a number that NSE sends as a JSON number, a numeric string, "" or null.
type LooseFloat struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler. Non-numeric strings decode to nil.
func (f *LooseFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		f.Value = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
		if err != nil {
			f.Value = nil
			return nil
		}
		f.Value = &v
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

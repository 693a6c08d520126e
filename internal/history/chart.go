// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import "time"

// chartResponse is the subset of the /v8/finance/chart payload we read.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// series flattens the first result. Days with a null close are skipped.
func (r chartResponse) series(symbol, rng string) *Series {
	s := &Series{Symbol: symbol, Range: rng}
	if len(r.Chart.Result) == 0 {
		return s
	}
	res := r.Chart.Result[0]
	if res.Meta.Symbol != "" {
		s.Symbol = res.Meta.Symbol
	}
	s.Currency = res.Meta.Currency
	if len(res.Indicators.Quote) == 0 {
		return s
	}

	closes := res.Indicators.Quote[0].Close
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		s.Points = append(s.Points, Point{Time: time.Unix(ts, 0).UTC(), Close: *closes[i]})
	}
	return s
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"math"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

const maxLevel = 10

// level truncates x toward zero and clamps it to [0, maxLevel].
func level(x float64) int {
	return int(math.Max(0, math.Min(maxLevel, math.Trunc(x))))
}

// radar derives the five stats axes. They do not depend on the strategy.
func radar(s types.Stock, f features) (types.Stats, error) {
	if !s.DividendYield.Valid {
		return types.Stats{}, errMissingDividend
	}

	var st types.Stats
	if f.cashRatio.GreaterThan(0) {
		st.Defense = level(f.cashRatio.Value * 10)
	}
	// PBR at or above 1.5, or unknown, reads as 1 rather than 0.
	st.Value = 1
	if s.PBR.LessThan(1.5) {
		st.Value = level((1.5 - s.PBR.Value) * 10)
	}
	if s.RevenueGrowth.GreaterThan(0) {
		st.Offense = level(s.RevenueGrowth.Value * 50)
	}
	if s.ROE.GreaterThan(0) {
		st.Earning = level(s.ROE.Value)
	}
	st.Payout = level(s.DividendYield.Value * 2)
	return st, nil
}

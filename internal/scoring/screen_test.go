// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

func screenRows() []types.Stock {
	low := stock()
	low.Code = "LOW"
	low.DividendYield = types.Num(3.5) // 20

	high := stock()
	high.Code = "HIGH"
	high.DividendYield = types.Num(5) // 50
	high.Cash = types.Num(6e8)        // 30
	high.PBR = types.Num(0.9)         // 20

	tieA := stock()
	tieA.Code = "TIE-A"
	tieA.DividendYield = types.Num(5) // 50

	tieB := stock()
	tieB.Code = "TIE-B"
	tieB.DividendYield = types.Num(4.1) // 50

	noPrice := stock()
	noPrice.Code = "ZERO"
	noPrice.Price = types.Num(0)

	indebted := stock()
	indebted.Code = "DEBT"
	indebted.Debt = types.Num(1)

	broken := stock()
	broken.Code = "BROKEN"
	broken.DividendYield = types.Missing

	return []types.Stock{low, tieA, noPrice, high, indebted, tieB, broken}
}

func TestScreen_RanksAndDrops(t *testing.T) {
	out := Screen(screenRows(), config(types.StrategyBuyoutLiquidation), zerolog.Nop())

	assert.Equal(t, 7, out.Total)
	assert.Equal(t, 4, out.Hits())
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, map[Filter]int{FilterNoPrice: 1, FilterNetDebt: 1}, out.Dropped)

	codes := make([]string, len(out.Results))
	for i, r := range out.Results {
		codes[i] = r.Code
	}
	assert.Equal(t, []string{"HIGH", "TIE-A", "TIE-B", "LOW"}, codes, "ties keep source order")
}

func TestScreen_DoesNotMutateInput(t *testing.T) {
	rows := screenRows()
	before := make([]types.Stock, len(rows))
	copy(before, rows)

	Screen(rows, config(types.StrategyStudentHighYield), zerolog.Nop())
	assert.Equal(t, before, rows)
}

func TestScreen_Empty(t *testing.T) {
	out := Screen(nil, config(types.StrategyUndervaluedGrowth), zerolog.Nop())
	assert.Equal(t, 0, out.Total)
	assert.Equal(t, 0, out.Hits())
	assert.NotNil(t, out.Results)
	assert.Empty(t, out.Top(3))
}

func TestOutcome_Top(t *testing.T) {
	out := Screen(screenRows(), config(types.StrategyBuyoutLiquidation), zerolog.Nop())

	require.Len(t, out.Top(2), 2)
	assert.Equal(t, "HIGH", out.Top(2)[0].Code)
	assert.Len(t, out.Top(20), 4)
	assert.Empty(t, out.Top(-1))
}

func TestSummarize(t *testing.T) {
	results := []types.ScoredResult{
		{Score: 100, Grade: types.GradeS},
		{Score: 60, Grade: types.GradeA},
		{Score: 80, Grade: types.GradeS},
	}

	got := Summarize(results)
	assert.Equal(t, 3, got.Count)
	assert.InDelta(t, 80.0, got.Mean, 1e-9)
	assert.InDelta(t, 20.0, got.StdDev, 1e-9)
	assert.InDelta(t, 80.0, got.Median, 1e-9)
	assert.Equal(t, 60, got.Min)
	assert.Equal(t, 100, got.Max)
	assert.Equal(t, map[types.Grade]int{types.GradeS: 2, types.GradeA: 1}, got.Grades)
}

func TestSummarize_EvenCountMedian(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"two", []int{10, 20}, 15},
		{"four unsorted", []int{80, -10, 50, 20}, 35},
		{"equal middles", []int{60, 60, 90, 0}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]types.ScoredResult, len(tt.scores))
			for i, s := range tt.scores {
				results[i] = types.ScoredResult{Score: s}
			}
			assert.InDelta(t, tt.want, Summarize(results).Median, 1e-9)
		})
	}
}

func TestSummarize_EdgeCases(t *testing.T) {
	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Grades)

	single := Summarize([]types.ScoredResult{{Score: -10, Grade: types.GradeNone}})
	assert.Equal(t, 0.0, single.StdDev)
	assert.Equal(t, -10.0, single.Median)
	assert.Equal(t, -10, single.Min)
	assert.Equal(t, -10, single.Max)
}

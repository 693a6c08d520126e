// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import "github.com/pdiddy/smallcap-screener/pkg/types"

// tally accumulates rule contributions in evaluation order.
type tally struct {
	score   int
	reasons []types.Reason
}

func newTally() tally {
	return tally{reasons: make([]types.Reason, 0, 4)}
}

// add records points and, when r is not empty, a reason tag.
func (t *tally) add(points int, r types.Reason) {
	t.score += points
	if r != "" {
		t.reasons = append(t.reasons, r)
	}
}

type rules func(s types.Stock, f features) tally

func rulesFor(st types.Strategy) rules {
	switch st {
	case types.StrategyStudentHighYield:
		return studentHighYield
	case types.StrategyUndervaluedGrowth:
		return undervaluedGrowth
	default:
		return buyoutLiquidation
	}
}

func studentHighYield(s types.Stock, f features) tally {
	t := newTally()

	switch {
	case s.DividendYield.GreaterThan(4.5):
		t.add(40, types.ReasonSuperHighDividend)
	case s.DividendYield.GreaterThan(3.0):
		t.add(20, types.ReasonHighDividend)
	default:
		t.add(-10, "")
	}

	// Highest band wins.
	switch {
	case f.cashRatio.GreaterThan(1.0):
		t.add(50, types.ReasonSuperRich)
	case f.cashRatio.GreaterThan(0.5):
		t.add(30, types.ReasonRich)
	case f.cashRatio.GreaterThan(0.1):
		t.add(10, "")
	}

	if s.PBR.LessThan(1.0) {
		t.add(20, types.ReasonUndervalued)
	}
	if f.budget < 50000 {
		t.add(10, types.ReasonDirtCheap)
	}
	return t
}

func undervaluedGrowth(s types.Stock, f features) tally {
	t := newTally()

	switch {
	case s.RevenueGrowth.GreaterThan(0.20):
		t.add(30, types.ReasonHyperGrowth)
	case s.RevenueGrowth.GreaterThan(0.05):
		t.add(10, "")
	}
	if s.PER.Between(0, 15) {
		t.add(30, types.ReasonCheapEarnings)
	}
	if s.ROE.GreaterThan(10) {
		t.add(20, types.ReasonHighEfficiency)
	}
	if f.cashRatio.GreaterThan(0.3) {
		t.add(10, "")
	}
	return t
}

func buyoutLiquidation(s types.Stock, f features) tally {
	t := newTally()

	switch {
	case s.DividendYield.GreaterThan(4.0):
		t.add(50, types.ReasonGodTierDividend)
	case s.DividendYield.GreaterThan(3.0):
		t.add(20, "")
	}
	if f.cashRatio.GreaterThan(0.5) {
		t.add(30, types.ReasonFortressBalance)
	}
	if s.PBR.LessThan(1.0) {
		t.add(20, "")
	}
	return t
}

// Grade thresholds shared by every strategy.
const (
	gradeSMin = 80
	gradeAMin = 60
)

var categories = map[types.Strategy][2]types.Category{
	types.StrategyStudentHighYield:  {types.CategoryFortress, types.CategoryDividendMachine},
	types.StrategyUndervaluedGrowth: {types.CategoryRocketGrowth, types.CategoryHiddenGem},
	types.StrategyBuyoutLiquidation: {types.CategoryDividendKing, types.CategorySolid},
}

func gradeFor(st types.Strategy, score int) (types.Grade, types.Category) {
	c, ok := categories[st]
	if !ok {
		c = categories[types.StrategyBuyoutLiquidation]
	}
	switch {
	case score >= gradeSMin:
		return types.GradeS, c[0]
	case score >= gradeAMin:
		return types.GradeA, c[1]
	default:
		return types.GradeNone, types.CategoryBalanced
	}
}

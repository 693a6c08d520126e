// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring evaluates normalized rows under a screening strategy.
// Evaluate is a pure function of its arguments; Screen applies it to a
// table and ranks the rows that survive.
package scoring

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

const (
	// LotSize is the number of shares in one tradeable lot.
	LotSize = 100

	// LargeCapThreshold is the market capitalization above which a company
	// is excluded by the small-cap filter (1000 x 10^8).
	LargeCapThreshold = 1000 * 1e8
)

var (
	// ErrFiltered matches every *FilterError.
	ErrFiltered = errors.New("row filtered out")

	// ErrRowFailed matches every *RowError.
	ErrRowFailed = errors.New("row evaluation failed")

	errMissingPrice    = errors.New("price is missing")
	errMissingDividend = errors.New("dividend yield is missing")
)

// Filter names a hard filter.
type Filter string

const (
	FilterNoPrice  Filter = "no-price"
	FilterBudget   Filter = "budget"
	FilterLargeCap Filter = "large-cap"
	FilterNetDebt  Filter = "net-debt"
)

// FilterError reports the first hard filter that rejected a row.
type FilterError struct {
	Filter Filter
}

func (e *FilterError) Error() string { return "filtered: " + string(e.Filter) }

func (e *FilterError) Is(target error) bool { return target == ErrFiltered }

// RowError reports a row that could not be evaluated. Callers drop the row
// exactly as they drop a filtered one.
type RowError struct {
	Line int
	Code string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Line, e.Code, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

func (e *RowError) Is(target error) bool { return target == ErrRowFailed }

// features are the values derived from a row before filtering or scoring.
type features struct {
	budget    float64
	netCash   types.Number
	cashRatio types.Number
}

func derive(s types.Stock) features {
	f := features{budget: s.Price.Value * LotSize}
	if s.Cash.Valid && s.Debt.Valid {
		f.netCash = types.Num(s.Cash.Value - s.Debt.Value)
	}
	switch {
	case !s.MarketCap.GreaterThan(0):
		f.cashRatio = types.Num(0)
	case f.netCash.Valid:
		f.cashRatio = types.Num(f.netCash.Value / s.MarketCap.Value)
	}
	return f
}

// filter returns the first hard filter that rejects the row, or "".
func filter(s types.Stock, f features, cfg types.ScreenConfig) Filter {
	switch {
	case s.Price.Value <= 0:
		return FilterNoPrice
	case cfg.BudgetCeiling != types.BudgetNone && f.budget > float64(cfg.BudgetCeiling):
		return FilterBudget
	case cfg.SmallCapOnly && s.MarketCap.GreaterThan(LargeCapThreshold):
		return FilterLargeCap
	case cfg.ExcludeNetDebt && f.netCash.LessThan(0):
		return FilterNetDebt
	}
	return ""
}

// Evaluate scores one row. It returns a *FilterError when a hard filter
// rejects the row and a *RowError when the row cannot be evaluated.
func Evaluate(s types.Stock, cfg types.ScreenConfig) (types.ScoredResult, error) {
	// Not a filter: a row whose price is absent or unparseable cannot be costed.
	if !s.Price.Valid {
		return types.ScoredResult{}, &RowError{Line: s.Line, Code: s.Code, Err: errMissingPrice}
	}

	f := derive(s)
	if rejected := filter(s, f, cfg); rejected != "" {
		return types.ScoredResult{}, &FilterError{Filter: rejected}
	}

	t := rulesFor(cfg.Strategy)(s, f)
	grade, category := gradeFor(cfg.Strategy, t.score)

	stats, err := radar(s, f)
	if err != nil {
		return types.ScoredResult{}, &RowError{Line: s.Line, Code: s.Code, Err: err}
	}

	return types.ScoredResult{
		Code:          s.Code,
		Name:          s.Name,
		Industry:      s.Industry,
		Link:          quoteLink(cfg.QuoteURLBase, s.Code),
		Score:         t.score,
		Grade:         grade,
		Category:      category,
		Budget:        f.budget,
		DividendYield: s.DividendYield,
		PBR:           s.PBR,
		ROE:           s.ROE,
		PER:           s.PER,
		CashRatio:     f.cashRatio,
		RevenueGrowth: s.RevenueGrowth,
		Stats:         stats,
		Reasons:       t.reasons,
	}, nil
}

func quoteLink(base, code string) string {
	if base == "" {
		base = types.DefaultQuoteURLBase
	}
	return base + url.PathEscape(code)
}

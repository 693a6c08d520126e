// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Grade is the qualitative label derived from a score.
type Grade string

const (
	GradeS    Grade = "S-tier"
	GradeA    Grade = "A-tier"
	GradeNone Grade = "-"
)

// Category is the strategy-specific label paired with a grade.
type Category string

const (
	CategoryFortress        Category = "fortress"
	CategoryDividendMachine Category = "dividend machine"
	CategoryRocketGrowth    Category = "rocket growth"
	CategoryHiddenGem       Category = "hidden gem"
	CategoryDividendKing    Category = "dividend king"
	CategorySolid           Category = "solid"
	CategoryBalanced        Category = "balanced"
)

// Reason is a short tag appended when a scoring rule fires.
type Reason string

const (
	ReasonSuperHighDividend Reason = "super-high-dividend"
	ReasonHighDividend      Reason = "high-dividend"
	ReasonSuperRich         Reason = "super-rich"
	ReasonRich              Reason = "rich"
	ReasonUndervalued       Reason = "undervalued"
	ReasonDirtCheap         Reason = "dirt-cheap"
	ReasonHyperGrowth       Reason = "hyper-growth"
	ReasonCheapEarnings     Reason = "cheap-earnings"
	ReasonHighEfficiency    Reason = "high-efficiency"
	ReasonGodTierDividend   Reason = "god-tier-dividend"
	ReasonFortressBalance   Reason = "fortress-balance-sheet"
)

// Stats holds the five radar axes, each an integer in [0,10].
type Stats struct {
	Defense int `json:"defense" yaml:"defense"`
	Value   int `json:"value" yaml:"value"`
	Offense int `json:"offense" yaml:"offense"`
	Earning int `json:"earning" yaml:"earning"`
	Payout  int `json:"payout" yaml:"payout"`
}

// Axis is one named radar axis.
type Axis struct {
	Name  string
	Level int
}

// Axes returns the axes in display order.
func (s Stats) Axes() []Axis {
	return []Axis{
		{"defense", s.Defense},
		{"value", s.Value},
		{"offense", s.Offense},
		{"earning", s.Earning},
		{"payout", s.Payout},
	}
}

// ScoredResult is the outcome of evaluating one row that passed every filter.
type ScoredResult struct {
	Code     string   `json:"code" yaml:"code"`
	Name     string   `json:"name" yaml:"name"`
	Industry string   `json:"industry" yaml:"industry"`
	Link     string   `json:"link" yaml:"link"`
	Score    int      `json:"score" yaml:"score"`
	Grade    Grade    `json:"grade" yaml:"grade"`
	Category Category `json:"category" yaml:"category"`

	Budget        float64 `json:"budget" yaml:"budget"`
	DividendYield Number  `json:"dividend_yield" yaml:"dividend_yield"`
	PBR           Number  `json:"pbr" yaml:"pbr"`
	ROE           Number  `json:"roe" yaml:"roe"`
	PER           Number  `json:"per" yaml:"per"`
	CashRatio     Number  `json:"cash_ratio" yaml:"cash_ratio"`
	RevenueGrowth Number  `json:"revenue_growth" yaml:"revenue_growth"`

	Stats   Stats    `json:"stats" yaml:"stats"`
	Reasons []Reason `json:"reasons" yaml:"reasons"`
}

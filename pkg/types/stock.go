// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default values for columns absent from the source table.
// A column that is present but holds an unparseable cell is Missing instead.
const (
	DefaultPrice    = 0.0
	DefaultPER      = 999.0
	DefaultPBR      = 1.0
	DefaultIndustry = "-"
)

// Stock is one normalized row of the fundamentals table.
type Stock struct {
	// Line is the 1-based line of the record in the source file.
	Line int `json:"line" yaml:"line"`

	Code     string `json:"code" yaml:"code"`
	Name     string `json:"name" yaml:"name"`
	Industry string `json:"industry" yaml:"industry"`

	Price     Number `json:"price" yaml:"price"`
	MarketCap Number `json:"market_cap" yaml:"market_cap"`
	PER       Number `json:"per" yaml:"per"`
	PBR       Number `json:"pbr" yaml:"pbr"`
	ROE       Number `json:"roe" yaml:"roe"`

	// DividendYield is a percentage (4.5 means 4.5%).
	DividendYield Number `json:"dividend_yield" yaml:"dividend_yield"`

	Cash Number `json:"cash" yaml:"cash"`
	Debt Number `json:"debt" yaml:"debt"`

	// RevenueGrowth is a fraction (0.2 means 20%).
	RevenueGrowth Number `json:"revenue_growth" yaml:"revenue_growth"`
}

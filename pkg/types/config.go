// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Strategy selects the bundle of scoring rules applied to a row.
type Strategy string

const (
	StrategyStudentHighYield  Strategy = "student-high-yield"
	StrategyUndervaluedGrowth Strategy = "undervalued-growth"
	StrategyBuyoutLiquidation Strategy = "buyout-liquidation"
)

var strategyAliases = map[string]Strategy{
	"student-high-yield": StrategyStudentHighYield,
	"student":            StrategyStudentHighYield,
	"high-yield":         StrategyStudentHighYield,
	"undervalued-growth": StrategyUndervaluedGrowth,
	"growth":             StrategyUndervaluedGrowth,
	"buyout-liquidation": StrategyBuyoutLiquidation,
	"buyout":             StrategyBuyoutLiquidation,
	"mbo":                StrategyBuyoutLiquidation,
}

// ParseStrategy maps a name or alias to a Strategy. Unrecognized values
// select StrategyBuyoutLiquidation.
func ParseStrategy(s string) Strategy {
	v := strings.ToLower(strings.TrimSpace(s))
	if st, ok := strategyAliases[v]; ok {
		return st
	}
	// Labels exported by the older UI carry an emoji prefix.
	switch {
	case strings.Contains(v, "学生"):
		return StrategyStudentHighYield
	case strings.Contains(v, "割安成長"):
		return StrategyUndervaluedGrowth
	}
	return StrategyBuyoutLiquidation
}

// BudgetCeiling caps the cost of one lot. Zero means no limit.
type BudgetCeiling int

const (
	BudgetNone BudgetCeiling = 0
	Budget50K  BudgetCeiling = 50000
	Budget100K BudgetCeiling = 100000
	Budget200K BudgetCeiling = 200000
)

// ParseBudgetCeiling accepts "none", "", "0", the three tiers as plain
// numbers, or their "50k"/"100k"/"200k" short forms.
func ParseBudgetCeiling(s string) (BudgetCeiling, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", "none", "0":
		return BudgetNone, nil
	case "50k":
		return Budget50K, nil
	case "100k":
		return Budget100K, nil
	case "200k":
		return Budget200K, nil
	}
	n, err := strconv.Atoi(v)
	if err == nil {
		switch b := BudgetCeiling(n); b {
		case Budget50K, Budget100K, Budget200K:
			return b, nil
		}
	}
	return BudgetNone, fmt.Errorf("unsupported budget ceiling %q: use none, 50000, 100000 or 200000", s)
}

func (b BudgetCeiling) String() string {
	if b == BudgetNone {
		return "none"
	}
	return strconv.Itoa(int(b))
}

// DefaultQuoteURLBase is the prefix of the per-stock detail link.
const DefaultQuoteURLBase = "https://finance.yahoo.co.jp/quote/"

// ScreenConfig holds the options of one screening pass. It is passed by value.
type ScreenConfig struct {
	Strategy       Strategy      `json:"strategy" yaml:"strategy"`
	BudgetCeiling  BudgetCeiling `json:"budget_ceiling" yaml:"budget_ceiling"`
	SmallCapOnly   bool          `json:"small_cap_only" yaml:"small_cap_only"`
	ExcludeNetDebt bool          `json:"exclude_net_debt" yaml:"exclude_net_debt"`

	// QuoteURLBase overrides DefaultQuoteURLBase when set.
	QuoteURLBase string `json:"quote_url_base,omitempty" yaml:"quote_url_base,omitempty"`
}

// DefaultScreenConfig returns the options used when nothing is configured.
func DefaultScreenConfig() ScreenConfig {
	return ScreenConfig{
		Strategy:       StrategyBuyoutLiquidation,
		BudgetCeiling:  BudgetNone,
		ExcludeNetDebt: true,
	}
}

// LoaderConfig holds settings for reading the source table.
type LoaderConfig struct {
	// Encoding is "utf-8" (default) or "shift_jis".
	Encoding string `json:"encoding" yaml:"encoding"`
}

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent string        `json:"user_agent" yaml:"user_agent"`
}

// HistoryConfig holds settings for the price history lookup.
type HistoryConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the chart API host (default https://query1.finance.yahoo.com).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// SymbolSuffix is appended to the stock code (e.g. ".T" for Tokyo listings).
	SymbolSuffix string `json:"symbol_suffix" yaml:"symbol_suffix"`

	// Range is the lookback window understood by the chart API (default "6mo").
	Range string `json:"range" yaml:"range"`

	// MaxRetries bounds retries on rate limiting (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zerolog level name (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format is "console" (default) or "json".
	Format string `json:"format" yaml:"format"`
}

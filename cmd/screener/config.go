// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

func setDefaults() {
	viper.SetDefault("screen.strategy", string(types.StrategyBuyoutLiquidation))
	viper.SetDefault("screen.budget_ceiling", "none")
	viper.SetDefault("screen.small_cap_only", false)
	viper.SetDefault("screen.exclude_net_debt", true)
	viper.SetDefault("screen.top", 3)
	viper.SetDefault("screen.quote_url_base", types.DefaultQuoteURLBase)
	viper.SetDefault("loader.encoding", "utf-8")
	viper.SetDefault("history.symbol_suffix", "")
	viper.SetDefault("history.range", "6mo")
	viper.SetDefault("history.timeout", "10s")
	viper.SetDefault("history.max_retries", 3)
	viper.SetDefault("serve.addr", ":8080")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// bindFlags returns a PreRunE that binds the named flags of a command to
// config keys. Binding happens at run time so that commands sharing a key
// do not overwrite each other's binding.
func bindFlags(keys map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for key, flag := range keys {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
		return nil
	}
}

var screenFlagKeys = map[string]string{
	"screen.strategy":         "strategy",
	"screen.budget_ceiling":   "budget",
	"screen.small_cap_only":   "small-cap",
	"screen.exclude_net_debt": "exclude-net-debt",
	"loader.encoding":         "encoding",
}

// addScreenFlags registers the flags named in screenFlagKeys.
func addScreenFlags(cmd *cobra.Command) {
	cmd.Flags().String("strategy", string(types.StrategyBuyoutLiquidation), "scoring strategy: student-high-yield, undervalued-growth, buyout-liquidation")
	cmd.Flags().String("budget", "none", "maximum cost of one 100-share lot: none, 50000, 100000, 200000")
	cmd.Flags().Bool("small-cap", false, "exclude companies above 100 billion market cap")
	cmd.Flags().Bool("exclude-net-debt", true, "exclude companies whose debt exceeds their cash")
	cmd.Flags().String("encoding", "utf-8", "CSV encoding: utf-8 or shift_jis")
}

func screenConfig() (types.ScreenConfig, error) {
	budget, err := types.ParseBudgetCeiling(viper.GetString("screen.budget_ceiling"))
	if err != nil {
		return types.ScreenConfig{}, err
	}
	return types.ScreenConfig{
		Strategy:       types.ParseStrategy(viper.GetString("screen.strategy")),
		BudgetCeiling:  budget,
		SmallCapOnly:   viper.GetBool("screen.small_cap_only"),
		ExcludeNetDebt: viper.GetBool("screen.exclude_net_debt"),
		QuoteURLBase:   viper.GetString("screen.quote_url_base"),
	}, nil
}

func loaderConfig() types.LoaderConfig {
	return types.LoaderConfig{Encoding: viper.GetString("loader.encoding")}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("history.timeout"),
			UserAgent: viper.GetString("history.user_agent"),
		},
		BaseURL:      viper.GetString("history.base_url"),
		SymbolSuffix: viper.GetString("history.symbol_suffix"),
		Range:        viper.GetString("history.range"),
		MaxRetries:   viper.GetInt("history.max_retries"),
	}
}

func serveConfig() types.ServeConfig {
	return types.ServeConfig{Addr: viper.GetString("serve.addr")}
}

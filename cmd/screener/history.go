// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/smallcap-screener/internal/history"
	"github.com/pdiddy/smallcap-screener/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history <code>...",
	Short: "Show recent closing prices for one or more stock codes",
	Long: `History fetches about six months of daily closes from the Yahoo
Finance chart API and draws a sparkline per code. Codes are suffixed with
history.symbol_suffix (for example ".T") before the request.

An unreachable or unknown symbol prints an unavailable notice and does not
fail the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	client := history.NewClient(historyConfig(), logger)

	type entry struct {
		Code   string          `json:"code"`
		Status string          `json:"status"`
		Reason string          `json:"reason,omitempty"`
		Series *history.Series `json:"series,omitempty"`
	}
	var entries []entry

	for _, code := range args {
		series, err := client.Fetch(cmd.Context(), code)
		if jsonOutput {
			e := entry{Code: code, Status: "ok", Series: series}
			if err != nil {
				e = entry{Code: code, Status: "unavailable", Reason: err.Error()}
			}
			entries = append(entries, e)
			continue
		}
		if err := report.WriteHistory(os.Stdout, code, series, err); err != nil {
			return err
		}
	}

	if jsonOutput {
		return report.WriteJSON(os.Stdout, entries)
	}
	return nil
}

func init() {
	historyCmd.Flags().Bool("json", false, "output series as JSON")
	rootCmd.AddCommand(historyCmd)
}

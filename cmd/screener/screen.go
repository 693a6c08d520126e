// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/smallcap-screener/internal/loader"
	"github.com/pdiddy/smallcap-screener/internal/report"
	"github.com/pdiddy/smallcap-screener/internal/scoring"
)

const maxTop = 20

var screenCmd = &cobra.Command{
	Use:   "screen <file.csv>",
	Short: "Score, filter and rank the stocks in a fundamentals CSV",
	Long: `Screen loads a fundamentals table, scores every row under the selected
strategy, drops rows rejected by the budget, size and net-debt filters,
and prints the ranking followed by detail cards for the top hits.

Headers may be English (code, name, price, per, pbr, roe, ...) or Japanese
(コード, 銘柄名, 株価, 配当利回り, ...). Use "-" to read from stdin.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindFlags(screenFlagKeys),
	RunE:    runScreen,
}

func runScreen(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	top := viper.GetInt("screen.top")
	if cmd.Flags().Changed("top") {
		top, _ = cmd.Flags().GetInt("top")
	}
	if top < 0 || top > maxTop {
		return fmt.Errorf("--top must be between 0 and %d, got %d", maxTop, top)
	}
	if err := checkFormat(format); err != nil {
		return err
	}

	cfg, err := screenConfig()
	if err != nil {
		return err
	}

	var table *loader.Table
	if args[0] == "-" {
		table, err = loader.Load(os.Stdin, loaderConfig())
	} else {
		table, err = loader.LoadFile(args[0], loaderConfig())
	}
	if err != nil {
		return err
	}
	if table.Gaps > 0 {
		logger.Warn().Int("cells", table.Gaps).Msg("unparseable numeric cells treated as missing")
	}

	out := scoring.Screen(table.Rows, cfg, logger)

	if output == "" {
		return writeScreen(os.Stdout, format, out, top)
	}
	if err := writeScreenFile(output, format, out, top); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
	return nil
}

func checkFormat(format string) error {
	switch format {
	case "table", "", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unsupported format %q: use table, json or yaml", format)
}

// writeScreen renders out in the given format. Table output is followed by
// up to top detail cards.
func writeScreen(w io.Writer, format string, out scoring.Outcome, top int) error {
	switch format {
	case "json":
		return report.WriteJSON(w, report.NewDocument(out))
	case "yaml":
		return report.WriteYAML(w, report.NewDocument(out))
	case "table", "":
		if err := report.WriteTable(w, out); err != nil {
			return err
		}
		if top > 0 && out.Hits() > 0 {
			fmt.Fprintln(w)
			return report.WriteCards(w, out.Top(top))
		}
		return nil
	}
	return checkFormat(format)
}

// writeScreenFile creates path only once format is known to be valid.
func writeScreenFile(path, format string, out scoring.Outcome, top int) (err error) {
	if err := checkFormat(format); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return writeScreen(f, format, out, top)
}

func init() {
	addScreenFlags(screenCmd)
	screenCmd.Flags().Int("top", 3, "number of detail cards to print (0-20)")
	screenCmd.Flags().String("format", "table", "output format: table, json, yaml")
	screenCmd.Flags().StringP("output", "o", "", "write output to a file instead of stdout")

	rootCmd.AddCommand(screenCmd)
}

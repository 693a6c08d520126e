// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders screening outcomes for terminals and files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/smallcap-screener/internal/scoring"
	"github.com/pdiddy/smallcap-screener/pkg/types"
)

// Document is the exported form of one screening pass.
type Document struct {
	scoring.Outcome `yaml:",inline"`
	Summary         scoring.Summary `json:"summary" yaml:"summary"`
}

// NewDocument pairs an outcome with its score summary.
func NewDocument(out scoring.Outcome) Document {
	return Document{Outcome: out, Summary: scoring.Summarize(out.Results)}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// Banner returns the one-line hit count, e.g. "12 hits (of 340 rows)".
func Banner(out scoring.Outcome) string {
	return fmt.Sprintf("%d hits (of %d rows)", out.Hits(), out.Total)
}

// WriteTable writes the ranked results as a fixed-width table.
func WriteTable(w io.Writer, out scoring.Outcome) error {
	if out.Hits() == 0 {
		_, err := fmt.Fprintln(w, "No stocks match the current filters.")
		return err
	}

	fmt.Fprintln(w, Banner(out))
	fmt.Fprintf(w, "%-4s  %-8s  %-24s  %-6s  %-16s  %5s  %7s  %10s  %6s  %6s\n",
		"Rank", "Code", "Name", "Grade", "Category", "Score", "Yield", "Budget", "PBR", "ROE")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, r := range out.Results {
		fmt.Fprintf(w, "%-4d  %-8s  %-24s  %-6s  %-16s  %5d  %7s  %10s  %6s  %6s\n",
			i+1, clip(r.Code, 8), clip(r.Name, 24), r.Grade, clip(string(r.Category), 16), r.Score,
			percent(r.DividendYield), yen(r.Budget), ratio(r.PBR, 2), percent(r.ROE))
	}
	_, err := fmt.Fprintf(w, "\n%d results\n", out.Hits())
	return err
}

// WriteCards writes a detail card for each result.
func WriteCards(w io.Writer, results []types.ScoredResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w, strings.Repeat("-", 48))
		}
		if err := writeCard(w, r); err != nil {
			return err
		}
	}
	return nil
}

func writeCard(w io.Writer, r types.ScoredResult) error {
	fmt.Fprintf(w, "### %s %s (%s)\n", r.Grade, r.Name, r.Code)
	fmt.Fprintf(w, "  %s | %s\n", r.Industry, r.Category)
	fmt.Fprintf(w, "  score %d  yield %s  budget %s\n", r.Score, percent(r.DividendYield), yen(r.Budget))
	fmt.Fprintf(w, "  PBR %sx | PER %sx | ROE %s\n", ratio(r.PBR, 2), ratio(r.PER, 1), percent(r.ROE))
	fmt.Fprintf(w, "  cash ratio %s\n", ratio(r.CashRatio, 2))
	fmt.Fprintf(w, "  reasons: %s\n", Reasons(r.Reasons))
	for _, ax := range r.Stats.Axes() {
		fmt.Fprintf(w, "  %-8s %s %2d\n", ax.Name, bar(ax.Level), ax.Level)
	}
	_, err := fmt.Fprintf(w, "  %s\n", r.Link)
	return err
}

// Reasons wraps each tag in backticks, in evaluation order.
func Reasons(tags []types.Reason) string {
	if len(tags) == 0 {
		return "-"
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "`" + string(t) + "`"
	}
	return strings.Join(parts, " ")
}

func bar(level int) string {
	return strings.Repeat("█", level) + strings.Repeat("░", 10-level)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func yen(v float64) string {
	return "¥" + humanize.Comma(int64(v))
}

func percent(n types.Number) string {
	if !n.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", n.Value)
}

func ratio(n types.Number, prec int) string {
	if !n.Valid {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, n.Value)
}

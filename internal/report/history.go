// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/smallcap-screener/internal/history"
)

// sparkTicks are the levels of the close-price sparkline, low to high.
var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// WriteHistory renders a price series, or the unavailable state when err
// is non-nil. It never fails because of err.
func WriteHistory(w io.Writer, code string, series *history.Series, err error) error {
	if err != nil || series == nil || len(series.Points) == 0 {
		reason := "no data"
		if err != nil {
			reason = strings.TrimPrefix(err.Error(), history.ErrUnavailable.Error()+": ")
		}
		_, werr := fmt.Fprintf(w, "%s: price history unavailable (%s)\n", code, reason)
		return werr
	}

	sum := series.Summary()
	first, last := series.Points[0], series.Points[len(series.Points)-1]
	fmt.Fprintf(w, "%s  %s  %s .. %s  (%d days)\n", series.Symbol, series.Range,
		first.Time.Format("2006-01-02"), last.Time.Format("2006-01-02"), len(series.Points))
	fmt.Fprintf(w, "  %s\n", Sparkline(series.Points, 60))
	_, werr := fmt.Fprintf(w, "  last %.2f %s  change %+.2f%%  low %.2f  high %.2f\n",
		sum.Last, series.Currency, sum.Change*100, sum.Min, sum.Max)
	return werr
}

// Sparkline draws at most width closes, sampling evenly across the series.
func Sparkline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	n := min(width, len(points))
	lo, hi := points[0].Close, points[0].Close
	for _, p := range points {
		lo = min(lo, p.Close)
		hi = max(hi, p.Close)
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		p := points[i*len(points)/n]
		idx := 0
		if hi > lo {
			idx = int((p.Close - lo) / (hi - lo) * float64(len(sparkTicks)-1))
		}
		b.WriteRune(sparkTicks[idx])
	}
	return b.String()
}

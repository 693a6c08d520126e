// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

// Outcome is the ranked result of screening a table.
type Outcome struct {
	Config  types.ScreenConfig   `json:"config" yaml:"config"`
	Total   int                  `json:"total" yaml:"total"`
	Results []types.ScoredResult `json:"results" yaml:"results"`

	// Dropped counts rows rejected by each hard filter.
	Dropped map[Filter]int `json:"dropped" yaml:"dropped"`

	// Failed counts rows that could not be evaluated.
	Failed int `json:"failed" yaml:"failed"`
}

// Hits returns the number of rows that passed every filter.
func (o Outcome) Hits() int { return len(o.Results) }

// Top returns at most n results from the head of the ranking.
func (o Outcome) Top(n int) []types.ScoredResult {
	if n < 0 {
		n = 0
	}
	if n > len(o.Results) {
		n = len(o.Results)
	}
	return o.Results[:n]
}

// Screen evaluates every row, drops filtered and failed rows, and ranks the
// rest by score, highest first. Rows with equal scores keep source order.
func Screen(rows []types.Stock, cfg types.ScreenConfig, log zerolog.Logger) Outcome {
	out := Outcome{
		Config:  cfg,
		Total:   len(rows),
		Results: make([]types.ScoredResult, 0, len(rows)),
		Dropped: make(map[Filter]int),
	}

	for _, row := range rows {
		res, err := Evaluate(row, cfg)
		if err == nil {
			out.Results = append(out.Results, res)
			continue
		}

		var fe *FilterError
		if errors.As(err, &fe) {
			out.Dropped[fe.Filter]++
			log.Debug().Int("line", row.Line).Str("code", row.Code).
				Str("filter", string(fe.Filter)).Msg("row filtered")
			continue
		}
		out.Failed++
		log.Debug().Err(err).Int("line", row.Line).Str("code", row.Code).Msg("row skipped")
	}

	sort.SliceStable(out.Results, func(i, j int) bool {
		return out.Results[i].Score > out.Results[j].Score
	})

	log.Info().Str("strategy", string(cfg.Strategy)).Int("total", out.Total).
		Int("hits", out.Hits()).Int("failed", out.Failed).Msg("screening complete")
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

// Summary describes the score distribution of a result set.
type Summary struct {
	Count  int                 `json:"count" yaml:"count"`
	Mean   float64             `json:"mean" yaml:"mean"`
	StdDev float64             `json:"std_dev" yaml:"std_dev"`
	Median float64             `json:"median" yaml:"median"`
	Min    int                 `json:"min" yaml:"min"`
	Max    int                 `json:"max" yaml:"max"`
	Grades map[types.Grade]int `json:"grades" yaml:"grades"`
}

// Summarize computes distribution statistics over result scores.
// An empty result set yields a zero Summary with an empty grade map.
func Summarize(results []types.ScoredResult) Summary {
	sum := Summary{Count: len(results), Grades: make(map[types.Grade]int)}
	if len(results) == 0 {
		return sum
	}

	scores := make([]float64, len(results))
	for i, r := range results {
		scores[i] = float64(r.Score)
		sum.Grades[r.Grade]++
	}
	sort.Float64s(scores)

	sum.Mean = stat.Mean(scores, nil)
	if len(scores) > 1 {
		sum.StdDev = stat.StdDev(scores, nil)
	}
	sum.Median = median(scores)
	sum.Min = int(scores[0])
	sum.Max = int(scores[len(scores)-1])
	return sum
}

// median expects sorted input. An even count averages the two middle values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

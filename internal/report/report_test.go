// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/smallcap-screener/internal/history"
	"github.com/pdiddy/smallcap-screener/internal/scoring"
	"github.com/pdiddy/smallcap-screener/pkg/types"
)

func sampleOutcome() scoring.Outcome {
	return scoring.Outcome{
		Config: types.DefaultScreenConfig(),
		Total:  5,
		Results: []types.ScoredResult{
			{
				Code: "1234", Name: "Acme Holdings", Industry: "Machinery",
				Link:  "https://finance.yahoo.co.jp/quote/1234",
				Score: 120, Grade: types.GradeS, Category: types.CategoryDividendKing,
				Budget: 123400, DividendYield: types.Num(5.25), PBR: types.Num(0.61),
				ROE: types.Num(8.4), PER: types.Num(9.5), CashRatio: types.Num(0.72),
				RevenueGrowth: types.Missing,
				Stats:         types.Stats{Defense: 7, Value: 8, Offense: 0, Earning: 8, Payout: 10},
				Reasons:       []types.Reason{types.ReasonGodTierDividend, types.ReasonFortressBalance},
			},
			{
				Code: "5678", Name: "A company with a remarkably long trading name", Industry: "-",
				Score: -10, Grade: types.GradeNone, Category: types.CategoryBalanced,
				Budget: 9900, DividendYield: types.Num(0), PBR: types.Missing,
				Reasons: []types.Reason{},
			},
		},
		Dropped: map[scoring.Filter]int{scoring.FilterNetDebt: 2},
		Failed:  1,
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleOutcome()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "2 hits (of 5 rows)\n"))
	assert.Contains(t, out, "Acme Holdings")
	assert.Contains(t, out, "¥123,400")
	assert.Contains(t, out, "5.25%")
	assert.Contains(t, out, "A company with a rema...")
	assert.Contains(t, out, "\n2 results\n")

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(lines[3], "1 "), "first data row is rank 1: %q", lines[3])
}

func TestWriteTable_NoHits(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, scoring.Outcome{Total: 3}))
	assert.Equal(t, "No stocks match the current filters.\n", buf.String())
}

func TestWriteCards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCards(&buf, sampleOutcome().Results))
	out := buf.String()

	assert.Contains(t, out, "### S-tier Acme Holdings (1234)")
	assert.Contains(t, out, "Machinery | dividend king")
	assert.Contains(t, out, "reasons: `god-tier-dividend` `fortress-balance-sheet`")
	assert.Contains(t, out, "defense  ███████░░░  7")
	assert.Contains(t, out, "payout   ██████████ 10")
	assert.Contains(t, out, "PBR -x", "missing PBR renders as a dash")
	assert.Contains(t, out, "reasons: -")
	assert.Contains(t, out, "https://finance.yahoo.co.jp/quote/1234")
}

func TestReasons(t *testing.T) {
	assert.Equal(t, "-", Reasons(nil))
	assert.Equal(t, "`rich` `undervalued`", Reasons([]types.Reason{types.ReasonRich, types.ReasonUndervalued}))
}

func TestDocument_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, NewDocument(sampleOutcome())))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.EqualValues(t, 5, got["total"])
	assert.EqualValues(t, 1, got["failed"])
	assert.Contains(t, got, "summary")

	results := got["results"].([]any)
	require.Len(t, results, 2)
	first := results[0].(map[string]any)
	assert.EqualValues(t, 120, first["score"])
	assert.Nil(t, first["revenue_growth"], "missing numbers encode as null")
	assert.Equal(t, []any{"god-tier-dividend", "fortress-balance-sheet"}, first["reasons"])
}

func TestDocument_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, NewDocument(sampleOutcome())))

	var got struct {
		Total   int `yaml:"total"`
		Results []struct {
			Code  string   `yaml:"code"`
			Score int      `yaml:"score"`
			PBR   *float64 `yaml:"pbr"`
		} `yaml:"results"`
		Summary struct {
			Count int `yaml:"count"`
			Max   int `yaml:"max"`
		} `yaml:"summary"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 5, got.Total)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "1234", got.Results[0].Code)
	require.NotNil(t, got.Results[0].PBR)
	assert.Equal(t, 0.61, *got.Results[0].PBR)
	assert.Nil(t, got.Results[1].PBR)
	assert.Equal(t, 2, got.Summary.Count)
	assert.Equal(t, 120, got.Summary.Max)
}

func TestWriteHistory(t *testing.T) {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	series := &history.Series{
		Symbol: "7203.T", Currency: "JPY", Range: "6mo",
		Points: []history.Point{
			{Time: day, Close: 100},
			{Time: day.AddDate(0, 0, 1), Close: 150},
			{Time: day.AddDate(0, 0, 2), Close: 120},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, "7203", series, nil))
	out := buf.String()
	assert.Contains(t, out, "7203.T  6mo  2026-04-01 .. 2026-04-03  (3 days)")
	assert.Contains(t, out, "▁█▃")
	assert.Contains(t, out, "change +20.00%")
}

func TestWriteHistory_Unavailable(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("%w: no price data for 0000.T", history.ErrUnavailable)
	require.NoError(t, WriteHistory(&buf, "0000", nil, err))
	assert.Equal(t, "0000: price history unavailable (no price data for 0000.T)\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteHistory(&buf, "0000", nil, errors.New("boom")))
	assert.Contains(t, buf.String(), "unavailable (boom)")
}

func TestSparkline(t *testing.T) {
	flat := []history.Point{{Close: 5}, {Close: 5}}
	assert.Equal(t, "▁▁", Sparkline(flat, 10))
	assert.Equal(t, "", Sparkline(nil, 10))

	many := make([]history.Point, 100)
	for i := range many {
		many[i].Close = float64(i)
	}
	assert.Len(t, []rune(Sparkline(many, 20)), 20)
}

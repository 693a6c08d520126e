// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/smallcap-screener/internal/scoring"
	"github.com/pdiddy/smallcap-screener/pkg/types"
)

func outcome() scoring.Outcome {
	return scoring.Outcome{
		Config: types.DefaultScreenConfig(),
		Total:  2,
		Results: []types.ScoredResult{
			{Code: "A1", Name: "Alpha", Score: 80, Grade: types.GradeS, DividendYield: types.Num(5)},
		},
		Dropped: map[scoring.Filter]int{scoring.FilterNoPrice: 1},
	}
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"", "table", "json", "yaml"} {
		assert.NoError(t, checkFormat(f), f)
	}
	assert.Error(t, checkFormat("bogus"))
}

func TestWriteScreenFile_UnsupportedFormatCreatesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	err := writeScreenFile(path, "bogus", outcome(), 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bogus"`)
	assert.NoFileExists(t, path)
}

func TestWriteScreenFile(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"code": "A1"`},
		{"yaml", "code: A1"},
		{"table", "1 hits (of 2 rows)"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")
			require.NoError(t, writeScreenFile(path, tt.format, outcome(), 3))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
		})
	}
}

func TestWriteScreen_JSONDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeScreen(&buf, "json", outcome(), 0))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 2.0, doc["total"])
	assert.Contains(t, doc, "summary")
}

func TestWriteScreen_TopZeroOmitsCards(t *testing.T) {
	var withCards, without bytes.Buffer
	require.NoError(t, writeScreen(&withCards, "table", outcome(), 3))
	require.NoError(t, writeScreen(&without, "table", outcome(), 0))

	assert.Contains(t, withCards.String(), "### S-tier Alpha (A1)")
	assert.NotContains(t, without.String(), "###")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package loader

import (
	"strings"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

type column int

const (
	colCode column = iota
	colName
	colIndustry
	colPrice
	colMarketCap
	colPER
	colPBR
	colROE
	colDividendYield
	colCash
	colDebt
	colRevenueGrowth
	numColumns
)

// headerAliases maps normalized header names to columns. Both the English
// names and the headers of the Japanese broker export are accepted.
var headerAliases = map[string]column{
	"code":           colCode,
	"コード":            colCode,
	"name":           colName,
	"銘柄名":            colName,
	"industry":       colIndustry,
	"業種":             colIndustry,
	"price":          colPrice,
	"株価":             colPrice,
	"market_cap":     colMarketCap,
	"時価総額":           colMarketCap,
	"per":            colPER,
	"pbr":            colPBR,
	"roe":            colROE,
	"dividend_yield": colDividendYield,
	"配当利回り":          colDividendYield,
	"cash":           colCash,
	"現金":             colCash,
	"debt":           colDebt,
	"借金":             colDebt,
	"revenue_growth": colRevenueGrowth,
	"売上成長率":          colRevenueGrowth,
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// headerIndex holds the record position of each known column, or -1.
type headerIndex [numColumns]int

func indexHeader(header []string) (headerIndex, error) {
	var idx headerIndex
	for i := range idx {
		idx[i] = -1
	}

	blank := true
	known := 0
	for i, h := range header {
		if strings.TrimSpace(h) != "" {
			blank = false
		}
		c, ok := headerAliases[normalizeHeader(h)]
		if !ok || idx[c] >= 0 {
			continue
		}
		idx[c] = i
		known++
	}
	if blank {
		return idx, ErrNoHeader
	}
	if known == 0 {
		return idx, ErrNoKnownColumns
	}
	return idx, nil
}

// cell returns the trimmed value of c and whether the column exists.
// Records shorter than the header read as empty cells.
func (idx headerIndex) cell(record []string, c column) (string, bool) {
	i := idx[c]
	if i < 0 {
		return "", false
	}
	if i >= len(record) {
		return "", true
	}
	return strings.TrimSpace(record[i]), true
}

// build resolves one record into a Stock and reports how many non-empty
// numeric cells failed to parse.
func (idx headerIndex) build(record []string) (types.Stock, int) {
	gaps := 0
	num := func(c column, fallback float64) types.Number {
		raw, ok := idx.cell(record, c)
		if !ok {
			return types.Num(fallback)
		}
		n := ParseNumber(raw)
		if !n.Valid && raw != "" {
			gaps++
		}
		return n
	}

	code, _ := idx.cell(record, colCode)
	name, _ := idx.cell(record, colName)
	industry, _ := idx.cell(record, colIndustry)
	if industry == "" {
		industry = types.DefaultIndustry
	}

	s := types.Stock{
		Code:          code,
		Name:          name,
		Industry:      industry,
		Price:         num(colPrice, types.DefaultPrice),
		MarketCap:     num(colMarketCap, 0),
		PER:           num(colPER, types.DefaultPER),
		PBR:           num(colPBR, types.DefaultPBR),
		ROE:           num(colROE, 0),
		DividendYield: num(colDividendYield, 0),
		Cash:          num(colCash, 0),
		Debt:          num(colDebt, 0),
		RevenueGrowth: num(colRevenueGrowth, 0),
	}
	return s, gaps
}

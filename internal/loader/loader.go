// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package loader parses a delimited fundamentals table into normalized rows.
// Numeric cells are coerced from locale-formatted text; cells that fail to
// parse become types.Missing rather than zero. Structural problems fail the
// whole load with a *LoadError.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pdiddy/smallcap-screener/pkg/types"
)

// Supported source encodings.
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

var (
	// ErrNoHeader is returned for empty input or a header with no column names.
	ErrNoHeader = errors.New("no header row")

	// ErrNoKnownColumns is returned when the header names none of the known columns.
	ErrNoKnownColumns = errors.New("header has no recognized columns")

	// ErrTooManyFields is returned for a record wider than the header.
	ErrTooManyFields = errors.New("record has more fields than the header")
)

// LoadError reports a structural failure. No rows are returned with it.
type LoadError struct {
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("loading table: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("loading table: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Table is the normalized content of one source file.
type Table struct {
	// Columns are the header names as they appear in the source.
	Columns []string
	Rows    []types.Stock

	// Gaps counts non-empty numeric cells that could not be parsed.
	Gaps int
}

// LoadFile opens path and calls Load.
func LoadFile(path string, cfg types.LoaderConfig) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()
	return Load(f, cfg)
}

// Load reads a header row followed by records. Columns absent from the
// header take the documented defaults; unknown columns are ignored.
func Load(r io.Reader, cfg types.LoaderConfig) (*Table, error) {
	dec, err := decoder(r, cfg.Encoding)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Err: ErrNoHeader}
	}
	if err != nil {
		return nil, structural(err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, &LoadError{Line: 1, Err: err}
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, structural(err)
		}
		line, _ := cr.FieldPos(0)
		if len(record) > len(header) {
			return nil, &LoadError{Line: line, Err: ErrTooManyFields}
		}
		if isBlank(record) {
			continue
		}
		stock, gaps := idx.build(record)
		stock.Line = line
		t.Rows = append(t.Rows, stock)
		t.Gaps += gaps
	}
	return t, nil
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "-", "_")) {
	case "", "utf_8", "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case "shift_jis", "sjis", "cp932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

func structural(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &LoadError{Line: pe.Line, Err: pe.Err}
	}
	return &LoadError{Err: err}
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

var numberReplacer = strings.NewReplacer(
	",", "", "，", "",
	"%", "", "％", "",
	"倍", "",
)

// ParseNumber coerces a locale-formatted cell into a Number. Thousands
// separators, percent signs and multiplier suffixes are stripped first.
// Empty or unparseable cells are Missing.
func ParseNumber(s string) types.Number {
	v := strings.TrimSpace(numberReplacer.Replace(s))
	lower := strings.ToLower(v)
	switch {
	case strings.HasSuffix(lower, "times"):
		v = v[:len(v)-len("times")]
	case strings.HasSuffix(lower, "x"):
		v = v[:len(v)-1]
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return types.Missing
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return types.Missing
	}
	return types.Num(d.InexactFloat64())
}

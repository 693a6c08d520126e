// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history fetches recent closing prices for a stock from the Yahoo
// chart API. It is a display convenience: every failure is reported as
// ErrUnavailable and nothing in scoring depends on it.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/smallcap-screener/internal/httputil"
	"github.com/pdiddy/smallcap-screener/pkg/types"
)

// ErrUnavailable wraps every fetch failure.
var ErrUnavailable = errors.New("price history unavailable")

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultRange     = "6mo"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Point is one daily close.
type Point struct {
	Time  time.Time `json:"time" yaml:"time"`
	Close float64   `json:"close" yaml:"close"`
}

// Series is the price history of one symbol, oldest first.
type Series struct {
	Symbol   string  `json:"symbol" yaml:"symbol"`
	Currency string  `json:"currency,omitempty" yaml:"currency,omitempty"`
	Range    string  `json:"range" yaml:"range"`
	Points   []Point `json:"points" yaml:"points"`
}

// Summary condenses a series for display.
type Summary struct {
	First  float64 `json:"first" yaml:"first"`
	Last   float64 `json:"last" yaml:"last"`
	Change float64 `json:"change" yaml:"change"` // fraction, 0.1 = +10%
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summary returns first/last/min/max closes. A series always has at least
// one point when returned by Fetch.
func (s Series) Summary() Summary {
	if len(s.Points) == 0 {
		return Summary{}
	}
	sum := Summary{
		First: s.Points[0].Close,
		Last:  s.Points[len(s.Points)-1].Close,
		Min:   s.Points[0].Close,
		Max:   s.Points[0].Close,
	}
	for _, p := range s.Points[1:] {
		sum.Min = min(sum.Min, p.Close)
		sum.Max = max(sum.Max, p.Close)
	}
	if sum.First != 0 {
		sum.Change = (sum.Last - sum.First) / sum.First
	}
	return sum
}

// Client fetches price history.
type Client struct {
	http *http.Client
	cfg  types.HistoryConfig
	log  zerolog.Logger
}

// NewClient fills unset fields of cfg with defaults.
func NewClient(cfg types.HistoryConfig, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Range == "" {
		cfg.Range = defaultRange
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  log.With().Str("component", "history").Logger(),
	}
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}

// Fetch returns daily closes for code over the configured range. The
// symbol sent is code followed by the configured suffix.
func (c *Client) Fetch(ctx context.Context, code string) (*Series, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, unavailable("empty stock code")
	}
	symbol := code + c.cfg.SymbolSuffix

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(symbol), url.QueryEscape(c.cfg.Range))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, unavailable("creating request: %v", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.Do(ctx, c.http, req, httputil.Policy{MaxRetries: c.cfg.MaxRetries}, c.log)
	if err != nil {
		return nil, unavailable("chart request for %s: %v", symbol, err)
	}
	defer resp.Body.Close()

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, unavailable("chart API returned HTTP %d for %s", resp.StatusCode, symbol)
		}
		return nil, unavailable("decoding chart for %s: %v", symbol, err)
	}
	if body.Chart.Error != nil {
		return nil, unavailable("%s: %s", symbol, body.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unavailable("chart API returned HTTP %d for %s", resp.StatusCode, symbol)
	}

	series := body.series(symbol, c.cfg.Range)
	if len(series.Points) == 0 {
		return nil, unavailable("no price data for %s", symbol)
	}
	c.log.Debug().Str("symbol", symbol).Int("points", len(series.Points)).Msg("price history fetched")
	return series, nil
}

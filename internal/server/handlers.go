// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pdiddy/smallcap-screener/internal/history"
	"github.com/pdiddy/smallcap-screener/internal/loader"
	"github.com/pdiddy/smallcap-screener/internal/scoring"
	"github.com/pdiddy/smallcap-screener/pkg/types"
)

// ErrorResponse is returned with every 4xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ScreenResponse is the body of a successful POST /api/screen.
type ScreenResponse struct {
	Config  types.ScreenConfig     `json:"config"`
	Total   int                    `json:"total"`
	Hits    int                    `json:"hits"`
	Dropped map[scoring.Filter]int `json:"dropped"`
	Failed  int                    `json:"failed"`
	Summary scoring.Summary        `json:"summary"`
	Results []types.ScoredResult   `json:"results"`
}

// HistoryResponse is the body of GET /api/history/:code. Status is "ok" or
// "unavailable"; unavailability is a display state, not an HTTP error.
type HistoryResponse struct {
	Status  string           `json:"status"`
	Reason  string           `json:"reason,omitempty"`
	Series  *history.Series  `json:"series,omitempty"`
	Summary *history.Summary `json:"summary,omitempty"`
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// Screen handles POST /api/screen. The table is read from the multipart
// field "file" or, failing that, from the raw request body.
// Query params:
// - strategy: student-high-yield, undervalued-growth or buyout-liquidation
// - budget: none, 50000, 100000 or 200000
// - small_cap, exclude_net_debt: booleans
// - limit: maximum results returned (0 = all)
func (s *Server) Screen(c echo.Context) error {
	cfg, limit, err := s.screenParams(c)
	if err != nil {
		return badRequest(c, err)
	}

	body, closeBody, err := tableReader(c)
	if err != nil {
		return badRequest(c, err)
	}
	defer closeBody()

	table, err := loader.Load(body, s.loader)
	if err != nil {
		s.log.Warn().Err(err).Msg("table rejected")
		return badRequest(c, err)
	}

	out := scoring.Screen(table.Rows, cfg, s.log)
	resp := ScreenResponse{
		Config:  cfg,
		Total:   out.Total,
		Hits:    out.Hits(),
		Dropped: out.Dropped,
		Failed:  out.Failed,
		Summary: scoring.Summarize(out.Results),
		Results: out.Results,
	}
	if limit > 0 {
		resp.Results = out.Top(limit)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) screenParams(c echo.Context) (types.ScreenConfig, int, error) {
	cfg := s.screen
	if v := c.QueryParam("strategy"); v != "" {
		cfg.Strategy = types.ParseStrategy(v)
	}
	if v := c.QueryParam("budget"); v != "" {
		b, err := types.ParseBudgetCeiling(v)
		if err != nil {
			return cfg, 0, err
		}
		cfg.BudgetCeiling = b
	}
	for name, dst := range map[string]*bool{
		"small_cap":        &cfg.SmallCapOnly,
		"exclude_net_debt": &cfg.ExcludeNetDebt,
	} {
		v := c.QueryParam(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, 0, fmt.Errorf("invalid %s %q: want true or false", name, v)
		}
		*dst = b
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, 0, fmt.Errorf("invalid limit %q", v)
		}
		limit = n
	}
	return cfg, limit, nil
}

func tableReader(c echo.Context) (io.Reader, func(), error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		return c.Request().Body, func() {}, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil, errors.New(`multipart upload needs a "file" field`)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("opening upload: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// History handles GET /api/history/:code.
func (s *Server) History(c echo.Context) error {
	code := c.Param("code")
	if s.history == nil {
		return c.JSON(http.StatusOK, HistoryResponse{Status: "unavailable", Reason: "price history is disabled"})
	}

	series, err := s.history.Fetch(c.Request().Context(), code)
	if err != nil {
		s.log.Info().Err(err).Str("code", code).Msg("price history unavailable")
		return c.JSON(http.StatusOK, HistoryResponse{Status: "unavailable", Reason: err.Error()})
	}
	sum := series.Summary()
	return c.JSON(http.StatusOK, HistoryResponse{Status: "ok", Series: series, Summary: &sum})
}

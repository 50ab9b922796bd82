package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ydg06081/dong/internal/timeseries"
)

// Earnings history column names
const (
	ColEPSEstimate = "eps_estimate"
	ColEPSActual   = "eps_actual"
	ColSurprise    = "surprise_pct"
)

// earningsHistoryModule is the quoteSummary earningsHistory payload
type earningsHistoryModule struct {
	EarningsHistory struct {
		History []earningsEntry `json:"history"`
	} `json:"earningsHistory"`
}

type earningsEntry struct {
	EPSEstimate     rawValue `json:"epsEstimate"`
	EPSActual       rawValue `json:"epsActual"`
	SurprisePercent rawValue `json:"surprisePercent"`
	Quarter         struct {
		Raw *int64 `json:"raw"`
	} `json:"quarter"`
}

// FetchEarningsHistory fetches per-quarter EPS estimate, reported EPS and
// surprise from the earningsHistory module.
// ⭐ SSOT: EPS/컨센서스 수집은 이 함수에서만
func (c *Client) FetchEarningsHistory(ctx context.Context, symbol string) (*timeseries.QuarterlyTable, error) {
	result, err := c.quoteSummary(ctx, symbol, "earningsHistory")
	if err != nil {
		return nil, err
	}

	table, err := parseEarningsHistory(result)
	if err != nil {
		return nil, fmt.Errorf("parse earnings history failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"quarters": table.Len(),
	}).Debug("Fetched earnings history")
	return table, nil
}

// parseEarningsHistory builds a quarterly table from an earningsHistory block
func parseEarningsHistory(result json.RawMessage) (*timeseries.QuarterlyTable, error) {
	var module earningsHistoryModule
	if err := json.Unmarshal(result, &module); err != nil {
		return nil, err
	}

	table := timeseries.NewQuarterlyTable(ColEPSEstimate, ColEPSActual, ColSurprise)

	for _, entry := range module.EarningsHistory.History {
		if entry.Quarter.Raw == nil {
			continue
		}

		row := make(map[string]timeseries.Value)
		if entry.EPSEstimate.Raw != nil {
			row[ColEPSEstimate] = timeseries.Num(*entry.EPSEstimate.Raw)
		}
		if entry.EPSActual.Raw != nil {
			row[ColEPSActual] = timeseries.Num(*entry.EPSActual.Raw)
		}
		if entry.SurprisePercent.Raw != nil {
			// surprisePercent raw is a fraction (0.037 = 3.7%)
			row[ColSurprise] = timeseries.Num(*entry.SurprisePercent.Raw * 100)
		}

		table.AppendRow(time.Unix(*entry.Quarter.Raw, 0), row, nil)
	}

	table.Sort()
	return table, nil
}

// keyStatisticsModule is the quoteSummary defaultKeyStatistics payload
type keyStatisticsModule struct {
	DefaultKeyStatistics struct {
		SharesOutstanding rawValue `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`
}

// FetchSharesOutstanding fetches the current shares outstanding scalar
func (c *Client) FetchSharesOutstanding(ctx context.Context, symbol string) (timeseries.Value, error) {
	result, err := c.quoteSummary(ctx, symbol, "defaultKeyStatistics")
	if err != nil {
		return timeseries.Missing(), err
	}

	var module keyStatisticsModule
	if err := json.Unmarshal(result, &module); err != nil {
		return timeseries.Missing(), fmt.Errorf("parse key statistics failed: %w", err)
	}

	raw := module.DefaultKeyStatistics.SharesOutstanding.Raw
	if raw == nil {
		return timeseries.Missing(), nil
	}

	return timeseries.Num(*raw), nil
}

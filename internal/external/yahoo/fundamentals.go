package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/ydg06081/dong/internal/timeseries"
)

// Quarterly fundamentals column names
const (
	ColRevenue         = "revenue"
	ColOperatingIncome = "operating_income"
	ColNetIncome       = "net_income"
	ColBuyback         = "buyback"
	ColDividends       = "dividends"
)

// fundamentalsTypes maps Yahoo timeseries type names to our column names
var fundamentalsTypes = map[string]string{
	"quarterlyTotalRevenue":             ColRevenue,
	"quarterlyOperatingIncome":          ColOperatingIncome,
	"quarterlyNetIncome":                ColNetIncome,
	"quarterlyRepurchaseOfCapitalStock": ColBuyback,
	"quarterlyCashDividendsPaid":        ColDividends,
}

// timeseriesResponse is the envelope of the fundamentals-timeseries API
type timeseriesResponse struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"timeseries"`
}

// tsMeta identifies which metric a result block carries
type tsMeta struct {
	Meta struct {
		Type []string `json:"type"`
	} `json:"meta"`
}

// tsEntry is one quarterly observation; entries can be null
type tsEntry struct {
	AsOfDate      string   `json:"asOfDate"`
	ReportedValue rawValue `json:"reportedValue"`
}

// FetchQuarterlyFundamentals fetches the quarterly income statement and
// shareholder return items (revenue, operating income, net income,
// buybacks, dividends) as one sparse quarterly table.
// ⭐ SSOT: 분기 재무제표 수집은 이 함수에서만
func (c *Client) FetchQuarterlyFundamentals(ctx context.Context, symbol string, from, to time.Time) (*timeseries.QuarterlyTable, error) {
	types := ""
	for typeName := range fundamentalsTypes {
		if types != "" {
			types += ","
		}
		types += typeName
	}

	fullURL := fmt.Sprintf(
		"%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?symbol=%s&type=%s&period1=%d&period2=%d",
		c.baseURL, symbol, symbol, types, from.Unix(), to.Unix(),
	)

	body, err := c.fetchJSON(ctx, fullURL)
	if err != nil {
		return nil, err
	}

	table, err := parseFundamentalsResponse(body)
	if err != nil {
		return nil, fmt.Errorf("parse fundamentals response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"quarters": table.Len(),
	}).Debug("Fetched quarterly fundamentals")
	return table, nil
}

// parseFundamentalsResponse pivots per-metric result blocks into one
// quarterly table keyed by quarter-end date
func parseFundamentalsResponse(body []byte) (*timeseries.QuarterlyTable, error) {
	var envelope timeseriesResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	if envelope.Timeseries.Error != nil {
		return nil, fmt.Errorf("timeseries error: %s", envelope.Timeseries.Error.Description)
	}

	// quarter-end date -> column -> value
	rows := make(map[string]map[string]timeseries.Value)

	for _, raw := range envelope.Timeseries.Result {
		var meta tsMeta
		if err := json.Unmarshal(raw, &meta); err != nil || len(meta.Meta.Type) == 0 {
			continue
		}

		typeName := meta.Meta.Type[0]
		column, ok := fundamentalsTypes[typeName]
		if !ok {
			continue
		}

		// The observations live under a key named after the type
		var block map[string]json.RawMessage
		if err := json.Unmarshal(raw, &block); err != nil {
			continue
		}
		entriesRaw, ok := block[typeName]
		if !ok {
			continue
		}

		var entries []*tsEntry
		if err := json.Unmarshal(entriesRaw, &entries); err != nil {
			continue
		}

		for _, entry := range entries {
			if entry == nil || entry.AsOfDate == "" || entry.ReportedValue.Raw == nil {
				continue
			}
			if rows[entry.AsOfDate] == nil {
				rows[entry.AsOfDate] = make(map[string]timeseries.Value)
			}
			rows[entry.AsOfDate][column] = timeseries.Num(*entry.ReportedValue.Raw)
		}
	}

	table := timeseries.NewQuarterlyTable(
		ColRevenue, ColOperatingIncome, ColNetIncome, ColBuyback, ColDividends,
	)

	dates := make([]string, 0, len(rows))
	for d := range rows {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, d := range dates {
		quarterEnd, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		table.AppendRow(quarterEnd, rows[d], nil)
	}

	return table, nil
}

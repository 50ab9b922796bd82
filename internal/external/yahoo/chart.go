package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ydg06081/dong/internal/timeseries"
)

// chartResponse is the envelope of the v8 chart API
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartQuote struct {
	// Close entries are null on halted days
	Close []*float64 `json:"close"`
}

// FetchDailyCloses fetches daily closing prices for a symbol.
// Works for equities and crypto pairs alike (e.g. "BTC-USD").
// ⭐ SSOT: 일별 종가 수집은 이 함수에서만
func (c *Client) FetchDailyCloses(ctx context.Context, symbol string, from, to time.Time) (timeseries.DailySeries, error) {
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		c.baseURL, symbol, from.Unix(), to.Unix(),
	)

	body, err := c.fetchJSON(ctx, fullURL)
	if err != nil {
		return timeseries.DailySeries{}, err
	}

	series, err := parseChartResponse(body)
	if err != nil {
		return timeseries.DailySeries{}, fmt.Errorf("parse chart response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  series.Len(),
	}).Debug("Fetched daily closes")
	return series, nil
}

// parseChartResponse extracts (date, close) points from a chart payload
func parseChartResponse(body []byte) (timeseries.DailySeries, error) {
	var envelope chartResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return timeseries.DailySeries{}, err
	}

	if envelope.Chart.Error != nil {
		return timeseries.DailySeries{}, fmt.Errorf("chart error: %s", envelope.Chart.Error.Description)
	}
	if len(envelope.Chart.Result) == 0 {
		return timeseries.DailySeries{}, nil
	}

	result := envelope.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return timeseries.DailySeries{}, nil
	}

	closes := result.Indicators.Quote[0].Close

	var points []timeseries.Point
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, timeseries.Point{
			Date:  time.Unix(ts, 0),
			Value: *closes[i],
		})
	}

	return timeseries.NewDailySeries(points), nil
}

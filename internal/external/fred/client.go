package fred

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ydg06081/dong/internal/timeseries"
	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

// Well-known series IDs
const (
	SeriesFedFunds = "DFF" // Daily Federal Funds Effective Rate
	SeriesGDP      = "GDP" // Gross Domestic Product (quarterly, billions USD)
)

// Client fetches economic series from the FRED fredgraph CSV endpoint,
// which needs no API key.
// ⭐ SSOT: FRED 데이터 수집은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new FRED client
func NewClient(httpClient *httputil.Client, cfg config.FREDConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    cfg.BaseURL,
	}
}

// FetchSeries fetches one series as daily (or sparser) observations.
// Missing observations (".") are skipped.
func (c *Client) FetchSeries(ctx context.Context, seriesID string, from, to time.Time) (timeseries.DailySeries, error) {
	fullURL := fmt.Sprintf(
		"%s/graph/fredgraph.csv?id=%s&cosd=%s&coed=%s",
		c.baseURL, seriesID,
		from.Format("2006-01-02"), to.Format("2006-01-02"),
	)

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return timeseries.DailySeries{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return timeseries.DailySeries{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	series, err := parseSeriesCSV(resp.Body)
	if err != nil {
		return timeseries.DailySeries{}, fmt.Errorf("parse %s failed: %w", seriesID, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"series": seriesID,
		"count":  series.Len(),
	}).Debug("Fetched FRED series")
	return series, nil
}

// parseSeriesCSV parses a fredgraph CSV body: header row, then
// "YYYY-MM-DD,value" rows with "." marking missing observations
func parseSeriesCSV(r io.Reader) (timeseries.DailySeries, error) {
	reader := csv.NewReader(r)

	records, err := reader.ReadAll()
	if err != nil {
		return timeseries.DailySeries{}, err
	}
	if len(records) == 0 {
		return timeseries.DailySeries{}, fmt.Errorf("empty response")
	}

	var points []timeseries.Point
	for i, record := range records {
		if i == 0 || len(record) < 2 {
			continue // header
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			continue
		}

		if record[1] == "." {
			continue // missing observation
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}

		points = append(points, timeseries.Point{Date: date, Value: value})
	}

	return timeseries.NewDailySeries(points), nil
}

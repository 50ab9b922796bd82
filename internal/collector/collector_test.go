package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ydg06081/dong/internal/external/fred"
	"github.com/ydg06081/dong/internal/external/yahoo"
	"github.com/ydg06081/dong/internal/report"
	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

// tradingDays: 2024-10-01 .. 2024-10-04 plus 2024-10-07 (weekend gap)
var chartTimestamps = []int64{
	1727740800, // 2024-10-01
	1727827200, // 2024-10-02
	1727913600, // 2024-10-03
	1728000000, // 2024-10-04
	1728259200, // 2024-10-07
}

func chartJSON() string {
	ts := make([]string, len(chartTimestamps))
	for i, t := range chartTimestamps {
		ts[i] = fmt.Sprint(t)
	}
	return fmt.Sprintf(`{
		"chart": {
			"result": [{
				"timestamp": [%s],
				"indicators": {"quote": [{"close": [100, 102, 101, 104, 110]}]}
			}],
			"error": null
		}
	}`, strings.Join(ts, ","))
}

func fundamentalsJSON() string {
	entry := func(typeName, date string, value float64) string {
		return fmt.Sprintf(`{
			"meta": {"type": ["%[1]s"]},
			"%[1]s": [{"asOfDate": "%[2]s", "reportedValue": {"raw": %[3]g}}]
		}`, typeName, date, value)
	}
	blocks := []string{
		entry("quarterlyTotalRevenue", "2024-09-30", 1000),
		entry("quarterlyOperatingIncome", "2024-09-30", 400),
		entry("quarterlyNetIncome", "2024-09-30", 250),
		entry("quarterlyRepurchaseOfCapitalStock", "2024-09-30", -50),
		entry("quarterlyCashDividendsPaid", "2024-09-30", -20),
	}
	return fmt.Sprintf(`{"timeseries": {"result": [%s], "error": null}}`,
		strings.Join(blocks, ","))
}

const earningsJSON = `{
	"quoteSummary": {
		"result": [{
			"earningsHistory": {
				"history": [{
					"epsEstimate": {"raw": 2.0},
					"epsActual": {"raw": 2.5},
					"surprisePercent": {"raw": 0.25},
					"quarter": {"raw": 1727654400}
				}]
			}
		}],
		"error": null
	}
}`

const keyStatsJSON = `{
	"quoteSummary": {
		"result": [{
			"defaultKeyStatistics": {"sharesOutstanding": {"raw": 1000}}
		}],
		"error": null
	}
}`

func newYahooServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			fmt.Fprint(w, chartJSON())
		case strings.HasPrefix(r.URL.Path, "/ws/fundamentals-timeseries/"):
			fmt.Fprint(w, fundamentalsJSON())
		case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
			if strings.Contains(r.URL.RawQuery, "earningsHistory") {
				fmt.Fprint(w, earningsJSON)
			} else {
				fmt.Fprint(w, keyStatsJSON)
			}
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
}

func newTestCollector(yahooURL, fredURL string) *Collector {
	log := testLogger()
	httpClient := httputil.New(log)
	yahooClient := yahoo.NewClient(httpClient, config.YahooConfig{
		BaseURL:   yahooURL,
		UserAgent: "test-agent",
	}, log)
	fredClient := fred.NewClient(httpClient, config.FREDConfig{BaseURL: fredURL}, log)
	return NewCollector(yahooClient, fredClient, log)
}

func TestCollectCompany(t *testing.T) {
	server := newYahooServer(t)
	defer server.Close()

	c := newTestCollector(server.URL, server.URL)
	from := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC)

	table, err := c.CollectCompany(context.Background(), "MSFT", from, to)
	require.NoError(t, err)

	// index is exactly the trading days
	require.Equal(t, 5, table.Len())
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), table.Dates[0])
	assert.Equal(t, time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC), table.Dates[4])

	prices := table.Num(report.ColPrice)
	require.Len(t, prices, 5)
	assert.Equal(t, 100.0, prices[0].Float)
	assert.Equal(t, 110.0, prices[4].Float)

	// the single quarter broadcasts to every day
	revenue := table.Num(report.ColRevenue)
	require.Len(t, revenue, 5)
	for _, v := range revenue {
		assert.True(t, v.Valid)
		assert.Equal(t, 1000.0, v.Float)
	}
	margin := table.Num(report.ColOperatingMargin)
	assert.InDelta(t, 40.0, margin[0].Float, 1e-9)

	buyback := table.Num(report.ColBuyback)
	assert.Equal(t, -50.0, buyback[2].Float)

	// TTM EPS = 250 * (4/1) / 1000 = 1.0, so PER = price
	per := table.Num(report.ColPER)
	require.Len(t, per, 5)
	assert.InDelta(t, 100.0, per[0].Float, 1e-9)
	assert.InDelta(t, 110.0, per[4].Float, 1e-9)

	// earnings: actual 2.5 > estimate 2.0 on every aligned day
	consensus := table.Text(report.ColConsensus)
	require.Len(t, consensus, 5)
	assert.Equal(t, "beat", consensus[0])
	surprise := table.Num(report.ColSurprise)
	assert.InDelta(t, 25.0, surprise[0].Float, 1e-9)

	// single quarter means no YoY
	for _, v := range table.Num(report.ColRevenueYoY) {
		assert.False(t, v.Valid)
	}
}

func TestCollectCompanySurvivesFundamentalsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			fmt.Fprint(w, chartJSON())
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := newTestCollector(server.URL, server.URL)
	from := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC)

	table, err := c.CollectCompany(context.Background(), "MSFT", from, to)
	require.NoError(t, err)

	// prices survive, fundamentals columns absent
	assert.Equal(t, 5, table.Len())
	assert.True(t, table.HasColumn(report.ColPrice))
	assert.False(t, table.HasColumn(report.ColRevenue))
	assert.False(t, table.HasColumn(report.ColPER))
}

func TestCollectCompanyErrorsWithoutPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := newTestCollector(server.URL, server.URL)
	from := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC)

	_, err := c.CollectCompany(context.Background(), "MSFT", from, to)
	assert.Error(t, err)
}

func TestCollectAll(t *testing.T) {
	server := newYahooServer(t)
	defer server.Close()

	c := newTestCollector(server.URL, server.URL)
	dir := t.TempDir()
	cfg := Config{
		Workers: 2,
		DataDir: dir,
		From:    time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC),
	}

	results, err := c.CollectAll(context.Background(), []string{"MSFT", "AAPL", "NVDA"}, cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, res := range results {
		require.NoError(t, res.Error)
		assert.Equal(t, 5, res.RowCount)

		table, err := report.ReadDailyTable(res.Path, report.TextColumns())
		require.NoError(t, err)
		assert.Equal(t, 5, table.Len())
	}
}

func TestCollectMacro(t *testing.T) {
	yahooServer := newYahooServer(t)
	defer yahooServer.Close()

	fredServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		switch id {
		case fred.SeriesFedFunds:
			fmt.Fprint(w, "observation_date,DFF\n2024-10-01,4.83\n2024-10-02,4.83\n2024-10-04,4.81\n")
		case fred.SeriesGDP:
			fmt.Fprint(w, "observation_date,GDP\n2024-07-01,29370.0\n")
		default:
			t.Errorf("unexpected series: %s", id)
			http.NotFound(w, r)
		}
	}))
	defer fredServer.Close()

	c := newTestCollector(yahooServer.URL, fredServer.URL)
	from := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)

	table, err := c.CollectMacro(context.Background(), from, to)
	require.NoError(t, err)

	// full calendar index, weekends included
	require.Equal(t, 7, table.Len())

	btc := table.Num(report.ColBitcoin)
	assert.Equal(t, 100.0, btc[0].Float)
	// weekend forward-filled from Friday
	assert.Equal(t, 104.0, btc[4].Float)
	assert.Equal(t, 104.0, btc[5].Float)
	assert.Equal(t, 110.0, btc[6].Float)

	dff := table.Num(report.ColFedFunds)
	assert.Equal(t, 4.83, dff[1].Float)
	// 10-03 carries 10-02 forward
	assert.Equal(t, 4.83, dff[2].Float)
	assert.Equal(t, 4.81, dff[3].Float)

	// GDP observed before the window carries in, forward fill only
	gdp := table.Num(report.ColGDP)
	for _, v := range gdp {
		require.True(t, v.Valid)
		assert.Equal(t, 29370.0, v.Float)
	}
}

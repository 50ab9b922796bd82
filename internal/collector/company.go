// Package collector orchestrates data collection from external sources
// and assembles the daily report tables.
package collector

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ydg06081/dong/internal/external/fred"
	"github.com/ydg06081/dong/internal/external/yahoo"
	"github.com/ydg06081/dong/internal/metrics"
	"github.com/ydg06081/dong/internal/report"
	"github.com/ydg06081/dong/internal/timeseries"
	"github.com/ydg06081/dong/pkg/logger"
)

// price history is fetched a few days early so the first trading day
// inside the window is never cut off
const priceFetchLead = 7 * 24 * time.Hour

// Collector orchestrates data collection from external sources
// ⭐ SSOT: 데이터 수집 오케스트레이션은 이 패키지에서만
type Collector struct {
	yahooClient *yahoo.Client
	fredClient  *fred.Client
	logger      *logger.Logger
}

// Config holds collector configuration
type Config struct {
	Workers int // Number of concurrent workers
	DataDir string
	From    time.Time
	To      time.Time
}

// NewCollector creates a new Collector instance
func NewCollector(yahooClient *yahoo.Client, fredClient *fred.Client, log *logger.Logger) *Collector {
	return &Collector{
		yahooClient: yahooClient,
		fredClient:  fredClient,
		logger:      log.WithField("module", "collector"),
	}
}

// CollectResult represents the result of one company collection
type CollectResult struct {
	Symbol   string
	RowCount int
	Path     string
	Error    error
}

// CollectAll collects every company concurrently and writes one report
// CSV per symbol under cfg.DataDir
func (c *Collector) CollectAll(ctx context.Context, symbols []string, cfg Config) ([]CollectResult, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols configured")
	}

	c.logger.WithFields(map[string]interface{}{
		"symbols": len(symbols),
		"from":    cfg.From.Format("2006-01-02"),
		"to":      cfg.To.Format("2006-01-02"),
		"workers": cfg.Workers,
	}).Info("Starting company collection")

	results := make([]CollectResult, 0, len(symbols))
	resultCh := make(chan CollectResult, len(symbols))

	var wg sync.WaitGroup
	symbolCh := make(chan string, len(symbols))

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.companyWorker(ctx, workerID, symbolCh, resultCh, cfg)
		}(i)
	}

	for _, symbol := range symbols {
		symbolCh <- symbol
	}
	close(symbolCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	successCount := 0
	failCount := 0
	for result := range resultCh {
		results = append(results, result)
		if result.Error != nil {
			failCount++
		} else {
			successCount++
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"success": successCount,
		"failed":  failCount,
		"total":   len(results),
	}).Info("Company collection completed")

	return results, nil
}

// companyWorker processes company collection for symbols
func (c *Collector) companyWorker(ctx context.Context, workerID int, symbolCh <-chan string, resultCh chan<- CollectResult, cfg Config) {
	for symbol := range symbolCh {
		select {
		case <-ctx.Done():
			resultCh <- CollectResult{
				Symbol: symbol,
				Error:  ctx.Err(),
			}
			return
		default:
		}

		table, err := c.CollectCompany(ctx, symbol, cfg.From, cfg.To)
		if err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"worker": workerID,
				"symbol": symbol,
			}).Error("Failed to collect company")
			resultCh <- CollectResult{
				Symbol: symbol,
				Error:  err,
			}
			continue
		}

		path := filepath.Join(cfg.DataDir, fmt.Sprintf("%s_financials.csv", symbol))
		if err := report.WriteDailyTable(path, table, report.CompanyColumns); err != nil {
			c.logger.WithError(err).WithFields(map[string]interface{}{
				"worker": workerID,
				"symbol": symbol,
			}).Error("Failed to write report")
			resultCh <- CollectResult{
				Symbol:   symbol,
				RowCount: table.Len(),
				Error:    err,
			}
			continue
		}

		c.logger.WithFields(map[string]interface{}{
			"worker": workerID,
			"symbol": symbol,
			"rows":   table.Len(),
		}).Debug("Collected company")

		resultCh <- CollectResult{
			Symbol:   symbol,
			RowCount: table.Len(),
			Path:     path,
		}
	}
}

// CollectCompany builds the full daily report table for one company.
// The daily price index drives everything: quarterly data is aligned
// onto it, derived metrics are computed on top. Missing upstream data
// degrades the affected columns only.
func (c *Collector) CollectCompany(ctx context.Context, symbol string, from, to time.Time) (*timeseries.DailyTable, error) {
	prices, err := c.yahooClient.FetchDailyCloses(ctx, symbol, from.Add(-priceFetchLead), to)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	prices = prices.Between(from, to)
	if prices.Empty() {
		return nil, fmt.Errorf("no price data for %s", symbol)
	}

	index := prices.Index()
	table := timeseries.NewDailyTable(index)

	priceCol := make([]timeseries.Value, prices.Len())
	for i, v := range prices.Values() {
		priceCol[i] = timeseries.Num(v)
	}
	table.SetNum(report.ColPrice, priceCol)

	fundamentals := c.collectFundamentals(ctx, symbol, from, to)
	if !fundamentals.Empty() {
		c.applyFundamentals(table, fundamentals, index)
		c.applyValuation(ctx, table, fundamentals, priceCol, symbol, index)
	}

	c.applyEarnings(ctx, table, symbol, index)
	return table, nil
}

// collectFundamentals fetches the quarterly income and cashflow
// statement and computes the quarterly-resolution derived metrics on
// it (margin, YoY growth). Failures degrade to an empty table.
func (c *Collector) collectFundamentals(ctx context.Context, symbol string, from, to time.Time) *timeseries.QuarterlyTable {
	// YoY needs four quarters of history before the window
	fundamentals, err := c.yahooClient.FetchQuarterlyFundamentals(ctx, symbol, from.AddDate(-2, 0, 0), to)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Fundamentals unavailable")
		return nil
	}
	if fundamentals.Empty() {
		return fundamentals
	}

	revenue := fundamentals.Nums[yahoo.ColRevenue]
	operatingIncome := fundamentals.Nums[yahoo.ColOperatingIncome]
	netIncome := fundamentals.Nums[yahoo.ColNetIncome]

	fundamentals.SetNum(report.ColOperatingMargin, metrics.OperatingMargin(revenue, operatingIncome))
	fundamentals.SetNum(report.ColRevenueYoY, metrics.YoYGrowth(revenue))
	fundamentals.SetNum(report.ColNetIncomeYoY, metrics.YoYGrowth(netIncome))
	return fundamentals
}

// applyFundamentals aligns the quarterly table onto the daily index
// and copies the fundamentals columns into the report
func (c *Collector) applyFundamentals(table *timeseries.DailyTable, fundamentals *timeseries.QuarterlyTable, index []time.Time) {
	aligned := timeseries.AlignToDaily(fundamentals, index)

	table.SetNum(report.ColRevenue, aligned.Num(yahoo.ColRevenue))
	table.SetNum(report.ColOperatingIncome, aligned.Num(yahoo.ColOperatingIncome))
	table.SetNum(report.ColOperatingMargin, aligned.Num(report.ColOperatingMargin))
	table.SetNum(report.ColNetIncome, aligned.Num(yahoo.ColNetIncome))
	table.SetNum(report.ColRevenueYoY, aligned.Num(report.ColRevenueYoY))
	table.SetNum(report.ColNetIncomeYoY, aligned.Num(report.ColNetIncomeYoY))
	table.SetNum(report.ColBuyback, aligned.Num(yahoo.ColBuyback))
	table.SetNum(report.ColDividend, aligned.Num(yahoo.ColDividends))
}

// applyValuation computes TTM EPS on the quarterly net income, aligns
// it, and derives the daily PER
func (c *Collector) applyValuation(ctx context.Context, table *timeseries.DailyTable, fundamentals *timeseries.QuarterlyTable, prices []timeseries.Value, symbol string, index []time.Time) {
	shares, err := c.yahooClient.FetchSharesOutstanding(ctx, symbol)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Shares outstanding unavailable")
		return
	}

	ttm := timeseries.NewQuarterlyTable()
	ttm.Dates = fundamentals.Dates
	ttm.SetNum("ttm_eps", metrics.TrailingEPS(fundamentals.Nums[yahoo.ColNetIncome], shares))

	aligned := timeseries.AlignToDaily(ttm, index)
	table.SetNum(report.ColPER, metrics.DailyPER(prices, aligned.Num("ttm_eps")))
}

// applyEarnings aligns the EPS estimate/actual history and the derived
// consensus verdict onto the daily index
func (c *Collector) applyEarnings(ctx context.Context, table *timeseries.DailyTable, symbol string, index []time.Time) {
	earnings, err := c.yahooClient.FetchEarningsHistory(ctx, symbol)
	if err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Earnings history unavailable")
		return
	}
	if earnings.Empty() {
		return
	}

	earnings.AddTextColumn(report.ColConsensus)
	estimates := earnings.Nums[yahoo.ColEPSEstimate]
	actuals := earnings.Nums[yahoo.ColEPSActual]
	verdicts := earnings.Texts[report.ColConsensus]
	for i := range earnings.Dates {
		verdicts[i] = metrics.Consensus(estimates[i], actuals[i])
	}

	aligned := timeseries.AlignToDaily(earnings, index)
	table.SetNum(report.ColEPSEstimate, aligned.Num(yahoo.ColEPSEstimate))
	table.SetNum(report.ColEPSActual, aligned.Num(yahoo.ColEPSActual))
	table.SetNum(report.ColSurprise, aligned.Num(yahoo.ColSurprise))
	table.SetText(report.ColConsensus, aligned.Text(report.ColConsensus))
}

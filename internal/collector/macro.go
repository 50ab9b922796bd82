package collector

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ydg06081/dong/internal/external/fred"
	"github.com/ydg06081/dong/internal/report"
	"github.com/ydg06081/dong/internal/timeseries"
)

// bitcoinSymbol is the Yahoo ticker of the BTC/USD pair
const bitcoinSymbol = "BTC-USD"

// macroFileName is the macro report CSV written under DataDir
const macroFileName = "us_economic_data.csv"

// CollectMacro builds the daily macro report over the full calendar
// range [from, to]: bitcoin close, Fed funds effective rate and GDP,
// each forward-filled onto the calendar index. GDP is quarterly, so it
// is fetched from the start of the year to have a value to carry in.
func (c *Collector) CollectMacro(ctx context.Context, from, to time.Time) (*timeseries.DailyTable, error) {
	index := timeseries.CalendarIndex(from, to)
	table := timeseries.NewDailyTable(index)

	btc, err := c.yahooClient.FetchDailyCloses(ctx, bitcoinSymbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch bitcoin prices: %w", err)
	}
	table.SetNum(report.ColBitcoin, timeseries.FillForward(btc, index))

	fedFunds, err := c.fredClient.FetchSeries(ctx, fred.SeriesFedFunds, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch fed funds rate: %w", err)
	}
	table.SetNum(report.ColFedFunds, timeseries.FillForward(fedFunds, index))

	gdpFrom := time.Date(from.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	gdp, err := c.fredClient.FetchSeries(ctx, fred.SeriesGDP, gdpFrom, to)
	if err != nil {
		return nil, fmt.Errorf("fetch gdp: %w", err)
	}
	table.SetNum(report.ColGDP, timeseries.FillForward(gdp, index))

	c.logger.WithField("rows", table.Len()).Info("Macro collection completed")
	return table, nil
}

// CollectMacroToFile collects the macro report and writes it under
// dataDir
func (c *Collector) CollectMacroToFile(ctx context.Context, dataDir string, from, to time.Time) (string, error) {
	table, err := c.CollectMacro(ctx, from, to)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dataDir, macroFileName)
	if err := report.WriteDailyTable(path, table, report.MacroColumns); err != nil {
		return "", fmt.Errorf("write macro report: %w", err)
	}
	return path, nil
}

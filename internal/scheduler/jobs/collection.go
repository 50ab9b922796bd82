// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ydg06081/dong/internal/collector"
	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/logger"
)

// DailyCollectionJob refreshes the company and macro report CSVs once
// a day after the US market close
type DailyCollectionJob struct {
	collector *collector.Collector
	cfg       *config.Config
	logger    *logger.Logger
	schedule  string
	timeout   time.Duration
}

// NewDailyCollectionJob creates the daily collection job
func NewDailyCollectionJob(c *collector.Collector, cfg *config.Config, log *logger.Logger) *DailyCollectionJob {
	return &DailyCollectionJob{
		collector: c,
		cfg:       cfg,
		logger:    log.WithField("job", "daily_collection"),
		// 22:30 UTC, 미국 장 마감 후
		schedule: "0 30 22 * * *",
		timeout:  30 * time.Minute,
	}
}

// Name returns the job name
func (j *DailyCollectionJob) Name() string {
	return "daily_collection"
}

// Schedule returns the cron expression
func (j *DailyCollectionJob) Schedule() string {
	return j.schedule
}

// Run collects every configured company and the macro series. A
// partial company failure does not fail the run; a macro failure does.
func (j *DailyCollectionJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cfg := collector.Config{
		Workers: j.cfg.Workers,
		DataDir: j.cfg.DataDir,
		From:    j.cfg.StartDate,
		To:      j.cfg.EndDate,
	}

	results, err := j.collector.CollectAll(ctx, j.cfg.Companies, cfg)
	if err != nil {
		return fmt.Errorf("company collection: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
		}
	}
	if failed == len(results) {
		return fmt.Errorf("all %d companies failed", failed)
	}

	if _, err := j.collector.CollectMacroToFile(ctx, j.cfg.DataDir, j.cfg.StartDate, j.cfg.EndDate); err != nil {
		return fmt.Errorf("macro collection: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"companies": len(results),
		"failed":    failed,
	}).Info("Daily collection finished")
	return nil
}

package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/ydg06081/dong/internal/llm"
	"github.com/ydg06081/dong/pkg/logger"
)

// Task is one prompt to send, keyed by its report date
type Task struct {
	Date   time.Time
	Input  string
	Prompt string
}

// Result is the outcome for one task. Err is set when the model call
// failed; Answer is empty in that case.
type Result struct {
	Date   time.Time
	Input  string
	Answer string
	Err    error
}

// Dispatcher fans tasks out to the model in fixed-size concurrent
// batches with a pause between batches
// ⭐ SSOT: LLM 배치 처리 정책은 디스패처에서만
type Dispatcher struct {
	provider   llm.Provider
	logger     *logger.Logger
	batchSize  int
	batchDelay time.Duration
}

// NewDispatcher creates a dispatcher. batchSize must be at least 1.
func NewDispatcher(provider llm.Provider, batchSize int, batchDelay time.Duration, log *logger.Logger) *Dispatcher {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Dispatcher{
		provider:   provider,
		logger:     log,
		batchSize:  batchSize,
		batchDelay: batchDelay,
	}
}

// Run processes all tasks and returns one result per task in task
// order. Individual model failures are recorded on the result, not
// returned; Run only errors when the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context, tasks []Task) ([]Result, error) {
	results := make([]Result, len(tasks))
	successCount := 0
	errorCount := 0
	totalBatches := (len(tasks) + d.batchSize - 1) / d.batchSize

	for start := 0; start < len(tasks); start += d.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + d.batchSize
		if end > len(tasks) {
			end = len(tasks)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				task := tasks[i]
				answer, err := d.provider.Generate(ctx, task.Prompt)
				results[i] = Result{
					Date:   task.Date,
					Input:  task.Input,
					Answer: answer,
					Err:    err,
				}
			}(i)
		}
		wg.Wait()

		for i := start; i < end; i++ {
			if results[i].Err != nil {
				errorCount++
				d.logger.WithError(results[i].Err).
					WithField("date", results[i].Date.Format("2006-01-02")).
					Warn("Analysis request failed")
			} else {
				successCount++
			}
		}

		d.logger.WithFields(map[string]interface{}{
			"batch":   start/d.batchSize + 1,
			"batches": totalBatches,
			"success": successCount,
			"errors":  errorCount,
		}).Debug("Analysis batch finished")

		// pause between batches to stay under the API quota
		if end < len(tasks) {
			select {
			case <-time.After(d.batchDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	d.logger.WithFields(map[string]interface{}{
		"success": successCount,
		"errors":  errorCount,
	}).Info("Analysis run finished")
	return results, nil
}

package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

type fakeJob struct {
	name     string
	schedule string
	runs     int32
	fail     bool
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(ctx context.Context) error {
	atomic.AddInt32(&j.runs, 1)
	if j.fail {
		return fmt.Errorf("boom")
	}
	return nil
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(testLogger())
	job := &fakeJob{name: "collect", schedule: "0 30 22 * * *"}

	require.NoError(t, s.AddJob(job))
	err := s.AddJob(job)
	assert.Error(t, err)
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(testLogger())
	err := s.AddJob(&fakeJob{name: "bad", schedule: "not a schedule"})
	assert.Error(t, err)
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := New(testLogger())
	s.retryDelay = time.Millisecond

	job := &fakeJob{name: "collect", schedule: "0 30 22 * * *"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("collect"))

	require.Eventually(t, func() bool {
		stats := s.GetJobStats()
		return stats["collect"].TotalRuns == 1
	}, time.Second, 10*time.Millisecond)

	stats := s.GetJobStats()["collect"]
	assert.True(t, stats.LastSucceeded)
	assert.Equal(t, 1.0, stats.SuccessRate)
	assert.Equal(t, int32(1), atomic.LoadInt32(&job.runs))
}

func TestRunJobRetriesOnFailure(t *testing.T) {
	s := New(testLogger())
	s.retryDelay = time.Millisecond
	s.maxRetries = 2

	job := &fakeJob{name: "flaky", schedule: "0 30 22 * * *", fail: true}
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("flaky"))

	require.Eventually(t, func() bool {
		return s.GetJobStats()["flaky"].TotalRuns == 1
	}, time.Second, 10*time.Millisecond)

	stats := s.GetJobStats()["flaky"]
	assert.False(t, stats.LastSucceeded)
	// initial attempt plus two retries
	assert.Equal(t, int32(3), atomic.LoadInt32(&job.runs))
}

func TestRunJobUnknown(t *testing.T) {
	s := New(testLogger())
	assert.Error(t, s.RunJob("missing"))
}

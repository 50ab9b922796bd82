package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// 기본값만으로 로드
	os.Clearenv()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), cfg.EndDate)
	assert.Len(t, cfg.Companies, 10)
	assert.Contains(t, cfg.Companies, "BRK-B")
	assert.Equal(t, 5, cfg.Analysis.BatchSize)
	assert.Equal(t, 3*time.Second, cfg.Analysis.BatchDelay)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
}

func TestLoadOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("START_DATE", "2023-01-01")
	t.Setenv("END_DATE", "2023-06-30")
	t.Setenv("COMPANIES", "AAPL, MSFT ,")
	t.Setenv("ANALYSIS_BATCH_SIZE", "2")
	t.Setenv("ANALYSIS_BATCH_DELAY", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Companies)
	assert.Equal(t, 2, cfg.Analysis.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Analysis.BatchDelay)
	assert.Equal(t, "2023-01-01", cfg.StartDate.Format("2006-01-02"))
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad start date", "START_DATE", "01/10/2024"},
		{"end before start", "END_DATE", "2020-01-01"},
		{"bad env", "ENV", "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvHelpers(t *testing.T) {
	os.Clearenv()
	t.Setenv("X_INT", "not-a-number")
	t.Setenv("X_FLOAT", "2.5")

	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.Equal(t, 2.5, getEnvAsFloat("X_FLOAT", 1.0))
	assert.Equal(t, 10*time.Second, getEnvAsDuration("X_DUR", "10s"))
}

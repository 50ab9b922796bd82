package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the pipeline
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Collection period (inclusive, daily resolution)
	StartDate time.Time
	EndDate   time.Time

	// Output
	DataDir string

	// Target companies (ticker symbols)
	Companies []string

	// External APIs
	Yahoo  YahooConfig
	FRED   FREDConfig
	Gemini GeminiConfig
	Reddit RedditConfig

	// LLM batch dispatch
	Analysis AnalysisConfig

	// Collection worker pool
	Workers int

	// Logging
	LogLevel  string
	LogFormat string
}

// YahooConfig holds Yahoo Finance API configuration
type YahooConfig struct {
	BaseURL   string
	UserAgent string
	// Requests per second against query1.finance.yahoo.com
	RateLimit float64
}

// FREDConfig holds FRED (St. Louis Fed) configuration
type FREDConfig struct {
	BaseURL string
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string
	Model  string
}

// RedditConfig holds Reddit API configuration (password grant)
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
	Subreddit    string
	PostLimit    int
}

// AnalysisConfig holds LLM dispatch configuration
// 배치 크기만큼 동시 호출, 배치 사이에는 지연
type AnalysisConfig struct {
	BatchSize  int
	BatchDelay time.Duration
}

// Load reads configuration from environment variables. Explicit env
// file paths take precedence over the default .env lookup.
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load(envFiles ...string) (*Config, error) {
	loadEnvFile(envFiles)

	startDate, err := time.Parse("2006-01-02", getEnv("START_DATE", "2024-10-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid START_DATE: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", getEnv("END_DATE", "2025-10-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid END_DATE: %w", err)
	}

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		StartDate: startDate,
		EndDate:   endDate,

		DataDir: getEnv("DATA_DIR", "pro_data/results"),

		Companies: getEnvAsList("COMPANIES",
			"MSFT,META,BRK-B,AVGO,AMZN,GOOGL,AAPL,NVDA,WMT,TSLA"),

		Yahoo: YahooConfig{
			BaseURL:   getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			UserAgent: getEnv("YAHOO_USER_AGENT", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"),
			RateLimit: getEnvAsFloat("YAHOO_RATE_LIMIT", 2.0),
		},

		FRED: FREDConfig{
			BaseURL: getEnv("FRED_BASE_URL", "https://fred.stlouisfed.org"),
		},

		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},

		Reddit: RedditConfig{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			Username:     getEnv("REDDIT_USERNAME", ""),
			Password:     getEnv("REDDIT_PASSWORD", ""),
			UserAgent:    getEnv("REDDIT_USER_AGENT", "ydg06081"),
			Subreddit:    getEnv("REDDIT_SUBREDDIT", "machinelearning"),
			PostLimit:    getEnvAsInt("REDDIT_POST_LIMIT", 1),
		},

		Analysis: AnalysisConfig{
			BatchSize:  getEnvAsInt("ANALYSIS_BATCH_SIZE", 5),
			BatchDelay: getEnvAsDuration("ANALYSIS_BATCH_DELAY", "3s"),
		},

		Workers: getEnvAsInt("COLLECT_WORKERS", 3),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("END_DATE must not be before START_DATE")
	}

	if len(c.Companies) == 0 {
		return fmt.Errorf("COMPANIES must not be empty")
	}

	if c.Analysis.BatchSize < 1 {
		return fmt.Errorf("ANALYSIS_BATCH_SIZE must be >= 1")
	}

	if c.Workers < 1 {
		return fmt.Errorf("COLLECT_WORKERS must be >= 1")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile(explicit []string) {
	paths := make([]string, 0, len(explicit)+3)
	for _, p := range explicit {
		if p != "" {
			paths = append(paths, p)
		}
	}
	paths = append(paths, ".env")

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	var items []string
	for _, item := range strings.Split(valueStr, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/ydg06081/dong/internal/collector"
	"github.com/ydg06081/dong/internal/external/fred"
	"github.com/ydg06081/dong/internal/external/yahoo"
	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dong",
	Short: "dong - 미국 주식 재무/거시 데이터 파이프라인",
	Long: `dong Unified CLI

미국 빅테크 기업의 일별 재무 데이터와 거시경제 지표를 수집하고,
일자별 레코드를 LLM으로 분석해 CSV 리포트를 생성합니다.

Usage:
  go run ./cmd/dong [command]

Examples:
  go run ./cmd/dong collect
  go run ./cmd/dong macro
  go run ./cmd/dong analyze finance
  go run ./cmd/dong reddit
  go run ./cmd/dong schedule start`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration honoring the global flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds the process logger from the loaded config
func newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(cfg)
}

// newCollector wires the collector with its API clients
func newCollector(cfg *config.Config, log *logger.Logger) *collector.Collector {
	httpClient := httputil.New(log).WithRateLimit(cfg.Yahoo.RateLimit, 1)
	yahooClient := yahoo.NewClient(httpClient, cfg.Yahoo, log)
	fredClient := fred.NewClient(httputil.New(log), cfg.FRED, log)
	return collector.NewCollector(yahooClient, fredClient, log)
}

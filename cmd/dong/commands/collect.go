package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ydg06081/dong/internal/collector"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect [symbols...]",
	Short: "기업 재무 데이터 수집",
	Long: `Yahoo Finance에서 기업별 일별 재무 데이터를 수집합니다.

이 명령어는:
- 일별 종가 수집 (기준 인덱스)
- 분기 재무제표를 일별로 확장 (ffill + bfill)
- TTM EPS / 일별 PER / YoY 성장률 계산
- 기업별 CSV 리포트 저장

심볼을 지정하지 않으면 COMPANIES 설정을 사용합니다.

Example:
  go run ./cmd/dong collect
  go run ./cmd/dong collect MSFT NVDA`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	symbols := cfg.Companies
	if len(args) > 0 {
		symbols = args
	}

	PrintRunHeader("기업 재무 데이터 수집", &Period{
		StartDate: cfg.StartDate.Format("2006-01-02"),
		EndDate:   cfg.EndDate.Format("2006-01-02"),
	}, strings.Join(symbols, ", "))

	c := newCollector(cfg, log)
	start := time.Now()

	results, err := c.CollectAll(context.Background(), symbols, collector.Config{
		Workers: cfg.Workers,
		DataDir: cfg.DataDir,
		From:    cfg.StartDate,
		To:      cfg.EndDate,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			PrintError(fmt.Sprintf("%-6s %v", res.Symbol, res.Error))
			continue
		}
		PrintSuccess(fmt.Sprintf("%-6s %d일 -> %s", res.Symbol, res.RowCount, res.Path))
	}

	fmt.Println()
	PrintSeparator()
	fmt.Printf("완료: %d 성공 / %d 실패 (%.1fs)\n",
		len(results)-failed, failed, time.Since(start).Seconds())

	if failed == len(results) {
		return fmt.Errorf("all collections failed")
	}
	return nil
}

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// macroCmd represents the macro command
var macroCmd = &cobra.Command{
	Use:   "macro",
	Short: "거시경제 데이터 수집",
	Long: `미국 거시경제 지표를 수집해 하나의 일별 CSV로 병합합니다.

수집 지표:
- 비트코인 가격 (Yahoo Finance, BTC-USD)
- 미국 기준금리 (FRED, DFF)
- 미국 GDP (FRED, GDP - 분기별을 일별로 확장)

Example:
  go run ./cmd/dong macro`,
	RunE: runMacro,
}

func init() {
	rootCmd.AddCommand(macroCmd)
}

func runMacro(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	PrintRunHeader("거시경제 데이터 수집", &Period{
		StartDate: cfg.StartDate.Format("2006-01-02"),
		EndDate:   cfg.EndDate.Format("2006-01-02"),
	}, "BTC-USD, DFF, GDP")

	c := newCollector(cfg, log)
	path, err := c.CollectMacroToFile(context.Background(), cfg.DataDir, cfg.StartDate, cfg.EndDate)
	if err != nil {
		PrintError(err.Error())
		return err
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("저장 완료 -> %s", path))
	return nil
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ydg06081/dong/internal/report"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "데이터 디렉터리 상태",
	Long: `수집된 CSV 리포트의 상태를 보여줍니다.

기업별 리포트의 행 수와 기간, 거시경제/분석 결과 파일의 존재
여부를 확인합니다.

Example:
  go run ./cmd/dong status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	PrintRunHeader("데이터 상태", &Period{
		StartDate: cfg.StartDate.Format("2006-01-02"),
		EndDate:   cfg.EndDate.Format("2006-01-02"),
	}, cfg.DataDir)

	entries, err := os.ReadDir(cfg.DataDir)
	if err != nil {
		PrintWarning(fmt.Sprintf("데이터 디렉터리 없음: %s", cfg.DataDir))
		return nil
	}

	var companyFiles []string
	hasMacro := false
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, "_financials.csv"):
			companyFiles = append(companyFiles, name)
		case name == "us_economic_data.csv":
			hasMacro = true
		}
	}
	sort.Strings(companyFiles)

	fmt.Println()
	PrintTableHeader([]string{"FILE", "ROWS", "FROM", "TO"}, []int{28, 6, 12, 12})
	for _, name := range companyFiles {
		table, err := report.ReadDailyTable(filepath.Join(cfg.DataDir, name), report.TextColumns())
		if err != nil {
			PrintTableRow([]string{name, "-", "-", "-"}, []int{28, 6, 12, 12})
			continue
		}
		from, to := "-", "-"
		if table.Len() > 0 {
			from = table.Dates[0].Format("2006-01-02")
			to = table.Dates[table.Len()-1].Format("2006-01-02")
		}
		PrintTableRow([]string{name, fmt.Sprint(table.Len()), from, to}, []int{28, 6, 12, 12})
	}

	fmt.Println()
	if len(companyFiles) == 0 {
		PrintWarning("기업 리포트 없음 (collect 먼저 실행)")
	}
	if hasMacro {
		PrintSuccess("거시경제 리포트 있음 (us_economic_data.csv)")
	} else {
		PrintWarning("거시경제 리포트 없음 (macro 먼저 실행)")
	}

	for _, sub := range []string{"finance_gemini", "macro_gemini", "news_gemini"} {
		dir := filepath.Join(cfg.DataDir, sub)
		if files, err := os.ReadDir(dir); err == nil && len(files) > 0 {
			PrintSuccess(fmt.Sprintf("%s: %d개 결과", sub, len(files)))
		}
	}
	return nil
}

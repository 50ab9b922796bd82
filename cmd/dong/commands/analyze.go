package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ydg06081/dong/internal/analysis"
	"github.com/ydg06081/dong/internal/llm"
	"github.com/ydg06081/dong/internal/news"
	"github.com/ydg06081/dong/internal/report"
	"github.com/ydg06081/dong/pkg/config"
	"github.com/ydg06081/dong/pkg/httputil"
	"github.com/ydg06081/dong/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [finance|macro|news]",
	Short: "LLM 일자별 분석",
	Long: `수집된 CSV 데이터를 일자별로 Gemini에 보내 분석 결과를 저장합니다.

모드:
  finance - 기업 재무 리포트를 주식 애널리스트 관점으로 분석
  macro   - 거시경제 리포트를 매크로 전략가 관점으로 분석
  news    - 뉴스 기사를 투자 관점으로 요약

요청은 배치 단위로 동시 실행되고 배치 사이에 지연을 둡니다.

Example:
  go run ./cmd/dong analyze finance
  go run ./cmd/dong analyze finance --symbols MSFT,NVDA
  go run ./cmd/dong analyze macro
  go run ./cmd/dong analyze news --input pro_data/csv/news.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeSymbols string
	analyzeInput   string
	analyzeScrape  bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeSymbols, "symbols", "", "대상 심볼 (쉼표 구분, 기본: COMPANIES)")
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "뉴스 CSV 경로 (news 모드)")
	analyzeCmd.Flags().BoolVar(&analyzeScrape, "scrape", false, "본문 없는 기사를 URL에서 수집 (news 모드)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	ctx := context.Background()

	provider, err := llm.NewGeminiProvider(ctx, cfg.Gemini, log)
	if err != nil {
		return err
	}
	dispatcher := analysis.NewDispatcher(provider, cfg.Analysis.BatchSize, cfg.Analysis.BatchDelay, log)

	switch args[0] {
	case "finance":
		return analyzeFinance(ctx, cfg, log, dispatcher)
	case "macro":
		return analyzeMacro(ctx, cfg, dispatcher)
	case "news":
		return analyzeNews(ctx, cfg, log, dispatcher)
	default:
		return fmt.Errorf("unknown mode: %s (valid: finance, macro, news)", args[0])
	}
}

func analyzeFinance(ctx context.Context, cfg *config.Config, log *logger.Logger, dispatcher *analysis.Dispatcher) error {
	symbols := cfg.Companies
	if analyzeSymbols != "" {
		symbols = strings.Split(analyzeSymbols, ",")
	}

	PrintRunHeader("재무 데이터 Gemini 분석", &Period{
		StartDate: cfg.StartDate.Format("2006-01-02"),
		EndDate:   cfg.EndDate.Format("2006-01-02"),
	}, strings.Join(symbols, ", "))

	outDir := filepath.Join(cfg.DataDir, "finance_gemini")
	for _, symbol := range symbols {
		symbol = strings.TrimSpace(symbol)
		path := filepath.Join(cfg.DataDir, fmt.Sprintf("%s_financials.csv", symbol))

		table, err := report.ReadDailyTable(path, report.TextColumns())
		if err != nil {
			PrintError(fmt.Sprintf("%-6s %v", symbol, err))
			continue
		}

		tasks := make([]analysis.Task, 0, table.Len())
		for i := range table.Dates {
			if table.Dates[i].Before(cfg.StartDate) || table.Dates[i].After(cfg.EndDate) {
				continue
			}
			rowText := analysis.FormatFinanceRow(table, i)
			tasks = append(tasks, analysis.Task{
				Date:   table.Dates[i],
				Input:  rowText,
				Prompt: analysis.FinancePrompt(symbol, rowText),
			})
		}

		results, err := dispatcher.Run(ctx, tasks)
		if err != nil {
			return err
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("%s_finance_gemini_results.csv", symbol))
		if err := writeAnalysis(outPath, results); err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("%-6s %d일 분석 -> %s", symbol, len(results), outPath))
	}
	return nil
}

func analyzeMacro(ctx context.Context, cfg *config.Config, dispatcher *analysis.Dispatcher) error {
	path := filepath.Join(cfg.DataDir, "us_economic_data.csv")
	table, err := report.ReadDailyTable(path, nil)
	if err != nil {
		return err
	}

	PrintRunHeader("거시경제 데이터 Gemini 분석", &Period{
		StartDate: cfg.StartDate.Format("2006-01-02"),
		EndDate:   cfg.EndDate.Format("2006-01-02"),
	}, "us_economic_data.csv")

	tasks := make([]analysis.Task, 0, table.Len())
	for i := range table.Dates {
		rowText := analysis.FormatMacroRow(table, i)
		tasks = append(tasks, analysis.Task{
			Date:   table.Dates[i],
			Input:  rowText,
			Prompt: analysis.MacroPrompt(rowText),
		})
	}

	results, err := dispatcher.Run(ctx, tasks)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.DataDir, "macro_gemini", "us_economic_gemini_results.csv")
	if err := writeAnalysis(outPath, results); err != nil {
		return err
	}
	PrintSuccess(fmt.Sprintf("%d일 분석 -> %s", len(results), outPath))
	return nil
}

func analyzeNews(ctx context.Context, cfg *config.Config, log *logger.Logger, dispatcher *analysis.Dispatcher) error {
	if analyzeInput == "" {
		return fmt.Errorf("news mode requires --input")
	}

	articles, err := news.Load(analyzeInput)
	if err != nil {
		return err
	}

	PrintRunHeader("뉴스 Gemini 분석", nil, analyzeInput)

	if analyzeScrape {
		scraper := news.NewScraper(httputil.New(log), log)
		filled := scraper.FillBodies(ctx, articles)
		fmt.Printf("본문 수집: %d건\n", filled)
	}

	tasks := make([]analysis.Task, 0, len(articles))
	for _, a := range articles {
		text := a.Title
		if a.Body != "" {
			text += "\n\n" + a.Body
		}
		tasks = append(tasks, analysis.Task{
			Date:   a.Date,
			Input:  text,
			Prompt: analysis.NewsPrompt(text),
		})
	}

	results, err := dispatcher.Run(ctx, tasks)
	if err != nil {
		return err
	}

	outPath := filepath.Join(cfg.DataDir, "news_gemini",
		strings.TrimSuffix(filepath.Base(analyzeInput), ".csv")+"_gemini_results.csv")
	if err := writeAnalysis(outPath, results); err != nil {
		return err
	}
	PrintSuccess(fmt.Sprintf("%d건 분석 -> %s", len(results), outPath))
	return nil
}

// writeAnalysis converts dispatcher results to report rows, sorted by
// date, with failures recorded in the answer column
func writeAnalysis(path string, results []analysis.Result) error {
	rows := make([]report.AnalysisRow, 0, len(results))
	for _, res := range results {
		answer := res.Answer
		if res.Err != nil {
			answer = fmt.Sprintf("error: %v", res.Err)
		}
		rows = append(rows, report.AnalysisRow{
			Date:   res.Date,
			Input:  res.Input,
			Answer: answer,
		})
	}
	sort.Slice(rows, func(a, b int) bool {
		return rows[a].Date.Before(rows[b].Date)
	})
	return report.WriteAnalysisResults(path, rows)
}

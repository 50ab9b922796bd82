package commands

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ydg06081/dong/internal/scheduler"
	"github.com/ydg06081/dong/internal/scheduler/jobs"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 등록된 작업을 관리합니다.

등록되는 작업:
- daily_collection: 매일 22:30 UTC (미국 장 마감 후 전체 수집)

Subcommands:
  start  - 스케줄러 시작 (Ctrl+C로 종료)
  run    - 특정 작업 즉시 실행
  list   - 등록된 작업 목록

Example:
  go run ./cmd/dong schedule start
  go run ./cmd/dong schedule run daily_collection
  go run ./cmd/dong schedule list`,
}

var (
	scheduleStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		RunE:  runScheduleStart,
	}

	scheduleRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runScheduleOnce,
	}

	scheduleListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  runScheduleList,
	}
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleStartCmd)
	scheduleCmd.AddCommand(scheduleRunCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
}

// newScheduler wires the scheduler with every job registered
func newScheduler() (*scheduler.Scheduler, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg)

	s := scheduler.New(log)
	job := jobs.NewDailyCollectionJob(newCollector(cfg, log), cfg, log)
	if err := s.AddJob(job); err != nil {
		return nil, err
	}
	return s, nil
}

func runScheduleStart(cmd *cobra.Command, args []string) error {
	s, err := newScheduler()
	if err != nil {
		return err
	}

	PrintRunHeader("스케줄러 시작", nil, "daily_collection")
	s.Start()

	// Ctrl+C 까지 대기
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println()
	s.Stop()
	return nil
}

func runScheduleOnce(cmd *cobra.Command, args []string) error {
	s, err := newScheduler()
	if err != nil {
		return err
	}

	if err := s.RunJob(args[0]); err != nil {
		PrintError(err.Error())
		return err
	}

	PrintSuccess(fmt.Sprintf("작업 실행: %s", args[0]))

	// 작업이 고루틴에서 실행되므로 결과가 기록될 때까지 대기
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}

func runScheduleList(cmd *cobra.Command, args []string) error {
	s, err := newScheduler()
	if err != nil {
		return err
	}

	stats := s.GetJobStats()
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	PrintTableHeader([]string{"JOB", "SCHEDULE", "RUNS"}, []int{20, 18, 6})
	for _, name := range names {
		stat := stats[name]
		PrintTableRow([]string{stat.JobName, stat.Schedule, fmt.Sprint(stat.TotalRuns)}, []int{20, 18, 6})
	}
	return nil
}

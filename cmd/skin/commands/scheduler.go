package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/skinadvisor/backend/internal/scheduler"
	"github.com/wonny/skinadvisor/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `카탈로그 자동 갱신 스케줄러를 실행합니다.

등록되는 작업:
- catalog_refresh: CATALOG_REFRESH_SCHEDULE (기본 매일 04:00)

Subcommands:
  start   - 스케줄러 시작 (Ctrl+C로 종료)
  run     - 특정 작업 즉시 실행

Example:
  go run ./cmd/skin scheduler start
  go run ./cmd/skin scheduler run catalog_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		RunE:  runScheduler,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler wires the app and registers every job
func initScheduler(ctx context.Context) (*app, *scheduler.Scheduler, error) {
	a, err := bootstrap(ctx)
	if err != nil {
		return nil, nil, err
	}
	if a.refresher == nil {
		a.Close()
		return nil, nil, errors.New("NAVER_CLIENT_ID/NAVER_CLIENT_SECRET not set: nothing to schedule")
	}

	sched := scheduler.New(a.log, scheduler.DefaultOptions())
	if err := sched.AddJob(jobs.NewCatalogRefreshJob(a.refresher, a.cfg.Catalog.RefreshSchedule, a.log)); err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, sched, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.Close()

	sched.Start()

	PrintSuccess("Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, name := range sched.Jobs() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runJobNow(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler(context.Background())
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer a.Close()

	res, err := sched.RunNow(args[0])
	if err != nil {
		return err
	}

	PrintHeader("Job " + res.JobName)
	PrintKV("Attempts", res.Attempts)
	PrintKV("Duration", res.Duration)
	if !res.Success {
		PrintWarning(res.Error)
		return fmt.Errorf("job %s failed", res.JobName)
	}
	PrintSuccess("Job completed")
	return nil
}

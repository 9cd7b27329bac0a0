package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chenglinzhou/ashare-rotation/internal/api"
	"github.com/chenglinzhou/ashare-rotation/internal/api/handlers"
	"github.com/chenglinzhou/ashare-rotation/internal/scheduler"
	"github.com/chenglinzhou/ashare-rotation/internal/scheduler/jobs"
	"github.com/chenglinzhou/ashare-rotation/internal/store"
	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
	"github.com/chenglinzhou/ashare-rotation/pkg/config"
	"github.com/chenglinzhou/ashare-rotation/pkg/database"
)

// apiCmd starts the HTTP API with the nightly signal scheduler.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the HTTP API and nightly jobs",
	Long: `Starts the read-only HTTP API. With --task it also schedules
the nightly signal evaluation, and with DATABASE_URL set it serves
stored prices and syncs the CSV drop directory into PostgreSQL.

Example:
  go run ./cmd/rotation api
  go run ./cmd/rotation api --task tasks/momentum.yaml`,
	RunE: runAPI,
}

var apiTask string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiTask, "task", "", "task YAML file for the nightly signal job")
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	resultStore := handlers.NewResultStore()
	loader := store.NewCSVLoader(resolveDataDir(cfg))

	// Prices need a database; the rest of the API works without one.
	var pricesHandler *handlers.PricesHandler
	var repo *store.PriceRepository
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		repo = store.NewPriceRepository(db.Pool)
		pricesHandler = handlers.NewPricesHandler(repo, log)
	}

	sched := scheduler.New(log)
	var task *strategyconfig.Task
	if apiTask != "" {
		task, err = strategyconfig.Load(apiTask)
		if err != nil {
			return fmt.Errorf("load task: %w", err)
		}
		if err := sched.AddJob(jobs.NewDailySignalsJob(task, loader, resultStore, log)); err != nil {
			return err
		}
		if repo != nil {
			if err := sched.AddJob(jobs.NewPriceSyncJob(task.Symbols, loader, repo, log)); err != nil {
				return err
			}
		}
	}
	sched.Start()
	defer sched.Stop()

	backtestHandler := handlers.NewBacktestHandler(resultStore, log)
	signalsHandler := handlers.NewSignalsHandler(resultStore, log)
	router := api.NewRouter(backtestHandler, signalsHandler, pricesHandler, log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

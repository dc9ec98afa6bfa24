package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mujahedk/duraq"
	"github.com/mujahedk/duraq/clock"
	"github.com/mujahedk/duraq/config"
	"github.com/mujahedk/duraq/handlers"
	"github.com/mujahedk/duraq/httpapi"
	"github.com/mujahedk/duraq/job"
	"github.com/mujahedk/duraq/registry"
	"github.com/mujahedk/duraq/sqlstore"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

var version = "0.1.0-dev"

func openStore(cfg *config.Config) (*bun.DB, error) {
	if cfg.DSN != "" {
		return sqlstore.OpenPostgres(cfg.DSN)
	}
	return sqlstore.OpenSQLite(cfg.SQLitePath)
}

func newRegistry() *registry.Registry {
	reg := registry.New()
	reg.MustRegister(handlers.SleepType, handlers.Sleep)
	reg.MustRegister(handlers.FailNTimesType, handlers.FailNTimes)
	return reg
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := slog.Default()

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlstore.InitDB(ctx, db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	enqueuer := sqlstore.NewEnqueuer(db, clock.System())
	claimer := sqlstore.NewClaimer(db, clock.System())
	observer := sqlstore.NewObserver(db)
	reg := newRegistry()

	workers := make([]*duraq.Worker, 0, cfg.WorkerConcurrency)
	for i := 0; i < cfg.WorkerConcurrency; i++ {
		w := duraq.NewWorker(duraq.WorkerConfig{
			WorkerID:     fmt.Sprintf("%s-%d", cfg.WorkerID, i),
			PollInterval: cfg.PollInterval,
			LeaseSeconds: cfg.LeaseSeconds,
			Claimer:      claimer,
			Registry:     reg,
			Logger:       logger,
		})
		workers = append(workers, w)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	for _, w := range workers {
		if err := w.Start(runCtx); err != nil {
			return fmt.Errorf("start worker: %w", err)
		}
	}

	router := httpapi.NewRouter(enqueuer, observer, logger)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-runCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	for i, w := range workers {
		if err := w.Stop(5 * time.Second); err != nil {
			logger.Error("worker stop error", "worker_index", i, "err", err)
		}
	}
	return nil
}

func runEnqueue(cmd *cobra.Command, jobType string, payloadStr string, maxAttempts int) error {
	cfg := config.Load()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlstore.InitDB(ctx, db); err != nil {
		return err
	}

	var payload json.RawMessage
	if payloadStr != "" {
		payload = json.RawMessage(payloadStr)
	}

	enqueuer := sqlstore.NewEnqueuer(db, clock.System())
	jb, err := enqueuer.Enqueue(ctx, jobType, payload, maxAttempts)
	if err != nil {
		return err
	}
	return printJSON(jb)
}

func runList(cmd *cobra.Command, statusStr, typeStr string, limit int) error {
	cfg := config.Load()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlstore.InitDB(ctx, db); err != nil {
		return err
	}

	opts := duraq.ListOptions{Limit: limit, Type: typeStr}
	if statusStr != "" {
		status, err := job.ParseStatus(statusStr)
		if err != nil {
			return err
		}
		opts.Status = status
	}

	observer := sqlstore.NewObserver(db)
	jobs, err := observer.List(ctx, opts)
	if err != nil {
		return err
	}
	return printJSON(jobs)
}

func runGet(cmd *cobra.Command, idStr string) error {
	cfg := config.Load()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("invalid job id: %w", err)
	}

	ctx := context.Background()
	if err := sqlstore.InitDB(ctx, db); err != nil {
		return err
	}

	observer := sqlstore.NewObserver(db)
	jb, err := observer.Get(ctx, id)
	if err != nil {
		return err
	}
	if jb == nil {
		return fmt.Errorf("job %s not found", idStr)
	}
	return printJSON(jb)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlstore.InitDB(ctx, db); err != nil {
		return err
	}
	fmt.Println("schema ready")
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "duraqd",
		Short: "duraqd is a durable job queue daemon and admin CLI",
	}

	var (
		payload     string
		maxAttempts int
		statusFlag  string
		typeFlag    string
		limitFlag   int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP admission API and worker pool",
		RunE:  runServe,
	}

	enqueueCmd := &cobra.Command{
		Use:   "enqueue <type>",
		Short: "Enqueue a new job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnqueue(cmd, args[0], payload, maxAttempts)
		},
	}
	enqueueCmd.Flags().StringVar(&payload, "payload", "", "job payload as a JSON string")
	enqueueCmd.Flags().IntVar(&maxAttempts, "max-attempts", 5, "maximum delivery attempts before dead-lettering")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, statusFlag, typeFlag, limitFlag)
		},
	}
	listCmd.Flags().StringVar(&statusFlag, "status", "", "filter by status (Queued, Running, Succeeded, Dead)")
	listCmd.Flags().StringVar(&typeFlag, "type", "", "filter by job type")
	listCmd.Flags().IntVar(&limitFlag, "limit", 0, "maximum rows to return")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a single job by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0])
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the jobs table and indexes if they don't exist",
		RunE:  runMigrate,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(map[string]string{"version": version})
		},
	}

	rootCmd.AddCommand(serveCmd, enqueueCmd, listCmd, getCmd, migrateCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

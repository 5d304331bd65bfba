package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"plan2read/internal/api"
	"plan2read/internal/config"
	"plan2read/internal/db"
	httpx "plan2read/internal/http"
	"plan2read/internal/logger"
	"plan2read/internal/plan"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "plan2read:", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("plan2read", pflag.ContinueOnError)
	envFile := flags.String("env-file", "", "dotenv file to load (default .env)")
	addr := flags.String("addr", "", "listen address, overrides HTTP_ADDR")
	memory := flags.Bool("memory", false, "use the in-memory store even if DATABASE_URL is set")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: plan2read [flags]")
		fmt.Fprintln(os.Stderr, "\nRuns the Plan2Read action API.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store, closeStore, err := openStore(cfg, *memory, log)
	if err != nil {
		return err
	}
	defer closeStore()

	d := &api.Dispatcher{Store: store, Log: log}
	r := httpx.NewRouter(cfg, d, log)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-ch:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(cfg config.Config, memory bool, log *zap.Logger) (plan.Store, func(), error) {
	if memory || cfg.DatabaseURL == "" {
		log.Info("using in-memory store")
		return plan.NewMemoryStore(), func() {}, nil
	}

	gdb, err := db.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		return nil, nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, err
	}
	return &plan.PostgresStore{DB: gdb}, func() { _ = sqlDB.Close() }, nil
}

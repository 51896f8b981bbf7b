package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/searchlite/searchlite/pkg/config"
	"github.com/searchlite/searchlite/pkg/output"
	"github.com/searchlite/searchlite/pkg/registry"
	"github.com/searchlite/searchlite/pkg/server"
)

func main() {
	// Command line flags
	var (
		configFile  = flag.String("config", "searchlite.yaml", "Config file path")
		port        = flag.Int("port", 0, "Server port (overrides config)")
		logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
		queryEntity = flag.String("entity", "", "One-shot query: entity to search")
		queryField  = flag.String("field", "", "One-shot query: field to match")
		queryValue  = flag.String("value", "", "One-shot query: value to match")
		showHelp    = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nsearchlite is an offline exact-match search tool over JSON record files.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -config data.yaml                           # Serve the search API\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config data.yaml -port 9090                # Custom port\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config data.yaml -entity users \\\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "      -field name -value Alice                   # Query once and exit\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	reg, err := registry.LoadFromConfig(cfg)
	if err != nil {
		logger.Fatal("failed to load entities", zap.Error(err))
	}
	for _, name := range reg.Entities() {
		store, _ := reg.Get(name)
		logger.Info("entity loaded",
			zap.String("entity", name),
			zap.Int("records", store.Count()),
		)
	}

	if *queryEntity != "" {
		if err := runQuery(reg, *queryEntity, *queryField, *queryValue); err != nil {
			logger.Fatal("query failed", zap.Error(err))
		}
		return
	}

	serve(cfg, reg, logger)
}

// runQuery answers one search on stdout and exits.
func runQuery(reg *registry.Registry, entityName, field, value string) error {
	if field == "" {
		return fmt.Errorf("one-shot queries need -field")
	}

	results, err := reg.Search(entityName, field, registry.CoerceQueryTerm(value))
	if err != nil {
		return err
	}

	if err := output.RenderResults(os.Stdout, entityName, results); err != nil {
		return err
	}
	for _, record := range results {
		if sets := reg.Related(entityName, record); len(sets) > 0 {
			if err := output.RenderRelated(os.Stdout, sets); err != nil {
				return err
			}
		}
	}
	return nil
}

func serve(cfg *config.Config, reg *registry.Registry, logger *zap.Logger) {
	srv := server.NewServer(reg, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      srv.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("starting searchlite server", zap.Int("port", cfg.HTTP.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(parsed)
	return zapCfg.Build()
}

package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/vacancy-scanner/internal/config"
	"github.com/honeycarbs/vacancy-scanner/internal/mcp"
	"github.com/honeycarbs/vacancy-scanner/pkg/logging"
	"github.com/honeycarbs/vacancy-scanner/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	res, cleanup, err := mcp.InitializeResources(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	logger.Info("resources initialized",
		"sources", res.VacancyService.Sources(),
		"storage", cfg.StorageBackend,
		"check_urls", cfg.CheckURLs,
		"sheets_export", res.SheetsExporter != nil,
	)

	srv := mcp.NewServer(logger, cfg, *res)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}

func newLogger(cfg config.Config) *logging.Logger {
	if cfg.LogFormat == "console" {
		return logging.NewDevelopment(cfg.LogLevel)
	}
	return logging.New(cfg.LogLevel)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sam-maryland/court-league-server/internal/config"
	"github.com/sam-maryland/court-league-server/internal/mcp"
	"github.com/sam-maryland/court-league-server/internal/service"
	"github.com/sam-maryland/court-league-server/internal/store"
	"github.com/sam-maryland/court-league-server/internal/web"
	"github.com/sirupsen/logrus"
)

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(), nil
	case config.DriverRedis:
		return store.NewRedisStore(cfg.RedisURL)
	case config.DriverSQLite:
		return store.NewSQLiteStore(ctx, cfg.SQLitePath)
	case config.DriverPostgres:
		return store.NewPostgresStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func bootstrapLeagues(ctx context.Context, svc *service.LeagueService, path string) (int, error) {
	settings, err := config.LoadLeagueSettings(path)
	if err != nil {
		return 0, err
	}
	leagues := make([]store.League, 0, len(settings.Leagues))
	for _, s := range settings.Leagues {
		leagues = append(leagues, s.League())
	}
	return svc.Bootstrap(ctx, leagues)
}

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	// stdout carries the MCP protocol in stdio mode
	logger.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := openStore(ctx, cfg)
	if err != nil {
		cancel()
		logger.WithError(err).WithField("driver", cfg.StoreDriver).Fatal("Failed to open store")
	}
	defer st.Close()

	svc := service.NewLeagueService(st, logger)
	if _, err := bootstrapLeagues(ctx, svc, cfg.LeaguesFile); err != nil {
		cancel()
		logger.WithError(err).Fatal("Failed to bootstrap leagues")
	}
	cancel()

	switch cfg.Transport {
	case config.TransportHTTP:
		logger.WithField("addr", cfg.HTTPAddr).Info("Starting Court League HTTP server...")
		if err := http.ListenAndServe(cfg.HTTPAddr, web.NewServer(svc, logger).Routes()); err != nil {
			logger.WithError(err).Error("HTTP server stopped")
			os.Exit(1)
		}
	default:
		mcpServer := mcp.NewLeagueMCPServer(svc, logger)
		if mcpServer == nil {
			logger.Fatal("Failed to create MCP server")
		}

		logger.Info("Starting Court League MCP Server...")

		if err := server.ServeStdio(mcpServer); err != nil {
			logger.WithError(err).Error("Server failed to start")
			os.Exit(1)
		}
	}
}

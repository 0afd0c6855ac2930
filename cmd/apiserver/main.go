// Package main provides the API server binary that serves the game engine
// over HTTP JSON.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/LinLovee/quest-bot-webapp/internal/apiserver"
	"github.com/LinLovee/quest-bot-webapp/internal/config"
	"github.com/LinLovee/quest-bot-webapp/internal/game/catalog"
	"github.com/LinLovee/quest-bot-webapp/internal/game/dice"
	"github.com/LinLovee/quest-bot-webapp/internal/observability"
	"github.com/LinLovee/quest-bot-webapp/internal/server"
	"github.com/LinLovee/quest-bot-webapp/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "override for the catalog content directory")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Game.ContentDir = *contentDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting api server",
		zap.String("http_addr", cfg.HTTP.Addr()),
	)

	// Load catalog content
	catalogStart := time.Now()
	cat, err := catalog.Load(cfg.Game.ContentDir)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("classes", len(cat.Classes())),
		zap.Int("enemies", len(cat.Enemies())),
		zap.Int("items", len(cat.Items(""))),
		zap.Int("achievements", len(cat.Achievements())),
		zap.Int("quests", len(cat.Quests())),
		zap.Duration("elapsed", time.Since(catalogStart)),
	)

	// Connect to PostgreSQL for player persistence
	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	playerRepo := postgres.NewPlayerRepository(pool.DB())
	src := dice.NewLoggedSource(dice.NewCryptoSource(), logger)
	health := func(ctx context.Context) error {
		return pool.Health(ctx, 5*time.Second)
	}

	handler := apiserver.NewHandler(playerRepo, cat, src, cfg.Game, health, logger)
	httpServer := apiserver.NewServer(cfg.HTTP, handler.Routes(), logger)

	// The pool registers first so shutdown drains the HTTP server before the
	// database connections close underneath in-flight handlers.
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("postgres", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			}
		},
		StopFn: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	lifecycle.Add("http", httpServer)

	logger.Info("api server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("http_addr", cfg.HTTP.Addr()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

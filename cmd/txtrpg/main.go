package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/txt-rpg/internal/config"
	"github.com/KirkDiggler/txt-rpg/internal/dice"
	"github.com/KirkDiggler/txt-rpg/internal/logger"
	"github.com/KirkDiggler/txt-rpg/internal/metrics"
	"github.com/KirkDiggler/txt-rpg/internal/repositories/saves"
	"github.com/KirkDiggler/txt-rpg/internal/services"
	"github.com/KirkDiggler/txt-rpg/internal/services/game"
	"github.com/KirkDiggler/txt-rpg/internal/shell"
)

func main() {
	os.Exit(run())
}

func run() int {
	memory := flag.Bool("memory", false, "keep the save in memory only (nothing is written to disk or redis)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	// Game text owns stdout, so logs go to a file
	logFile, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		log.Printf("Failed to open log file %s: %v", cfg.Log.File, err)
		return 1
	}
	defer func() {
		if closeErr := logFile.Close(); closeErr != nil {
			log.Printf("Failed to close log file: %v", closeErr)
		}
	}()

	logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}, logFile)

	ctx := logger.WithSessionID(context.Background(), logger.NewSessionID(nil))
	slogger := logger.FromContext(ctx)

	repo, closeRepo := openRepository(ctx, cfg, *memory)
	defer closeRepo()

	var roller dice.Roller
	if cfg.Seed != nil {
		roller = dice.NewSeededRoller(*cfg.Seed)
		slogger.Info("using seeded dice", "seed", *cfg.Seed)
	}

	// Create service provider
	provider := services.NewProvider(&services.ProviderConfig{
		Roller: roller,
	})

	recorder := metrics.New()
	session := game.NewSession(ctx, &game.SessionConfig{
		Repository:     repo,
		Catalog:        provider.Catalog,
		ShopService:    provider.ShopService,
		DungeonService: provider.DungeonService,
		Metrics:        recorder,
	})
	slogger.Info("session started",
		"origin", session.Origin(),
		"character_id", session.Character().ID)

	runErr := shell.New(session, os.Stdin, os.Stdout).Run(ctx)

	if cfg.Metrics.File != "" {
		if err := recorder.WriteTextfile(cfg.Metrics.File); err != nil {
			slogger.Warn("failed to write metrics file", "path", cfg.Metrics.File, "error", err)
		}
	}

	if runErr != nil {
		slogger.Error("session ended without saving", "error", runErr)
		return 1
	}

	slogger.Info("session ended")
	return 0
}

// openRepository picks redis when REDIS_URL is set and reachable, the save file otherwise.
// The returned func releases whatever was opened.
func openRepository(ctx context.Context, cfg *config.Config, memory bool) (saves.Repository, func()) {
	slogger := logger.FromContext(ctx)
	noop := func() {}

	if memory {
		slogger.Info("using in-memory saves")
		return saves.NewInMemoryRepository(), noop
	}

	if cfg.Redis.URL == "" {
		slogger.Info("using file saves", "path", cfg.Save.Path)
		return saves.NewFile(cfg.Save.Path), noop
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slogger.Warn("failed to parse Redis URL, falling back to file saves", "error", err)
		return saves.NewFile(cfg.Save.Path), noop
	}

	client := redis.NewClient(opts)
	closeClient := func() {
		if err := client.Close(); err != nil {
			slogger.Warn("failed to close Redis client", "error", err)
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		closeClient()
		slogger.Warn("failed to connect to Redis, falling back to file saves", "error", err)
		fmt.Fprintln(os.Stderr, "Redis is unavailable, saving to", cfg.Save.Path)
		return saves.NewFile(cfg.Save.Path), noop
	}

	slogger.Info("using Redis saves", "slot", cfg.Save.Slot)
	return saves.NewRedis(client, cfg.Save.Slot), closeClient
}

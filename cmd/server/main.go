package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arena-server/internal/domain"
	"arena-server/internal/engine"
	"arena-server/internal/infrastructure/storage"
	"arena-server/internal/network"
	"arena-server/internal/server"
	"arena-server/internal/version"
	"arena-server/pkg/config"
	"arena-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	if err := config.Load(); err != nil {
		logger.Log.WithError(err).Warn("Failed to load .env")
	}

	// 1. Парсинг конфигурации: env, затем флаги
	var (
		seed     int64
		port     string
		tickRate int
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&port, "port", config.String("ARENA_PORT", "8080"), "HTTP port")
	flag.IntVar(&tickRate, "tick", config.Int("ARENA_TICK_RATE", 60), "Simulation tick rate, Hz")
	flag.Parse()

	logger.Log.Info("Starting Arena server...")
	logger.Log.Info(version.String())

	cfg := engine.NewConfig()
	cfg.TickRate = tickRate
	cfg.Arena.Width = config.Float("ARENA_WIDTH", domain.ArenaWidth)
	cfg.Arena.Height = config.Float("ARENA_HEIGHT", domain.ArenaHeight)
	cfg.GameOverDelay = config.Duration("ARENA_GAMEOVER_DELAY", cfg.GameOverDelay)
	cfg.SessionLinger = config.Duration("ARENA_SESSION_LINGER", cfg.SessionLinger)
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. История матчей
	recorder, history, closeStores := openRecorders(ctx)
	defer closeStores()

	// 3. Ядро и транспорт
	hub := network.NewBroadcaster()
	gameService := engine.NewService(cfg, hub, engine.WithRecorder(recorder))

	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		gameService.Run(ctx)
	}()

	srv := server.New(gameService, hub, port)
	srv.History = history
	srv.Debug = config.Bool("ARENA_DEBUG_ROUTES", true)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
		stop()
	}

	logger.Log.Info("Shutting down...")
	<-loopDone
	logger.Log.Info("Done.")
}

// openRecorders подключает все настроенные хранилища истории матчей.
// Недоступное хранилище пропускается: сервер работает и без истории.
// Для чтения берётся первое из PostgreSQL, MongoDB, файлов.
func openRecorders(ctx context.Context) (engine.MatchRecorder, storage.History, func()) {
	var (
		sinks   storage.Multi
		closers []func()
		history storage.History
		files   *storage.FileRecorder
	)

	if dir := config.String("MATCH_DIR", ""); dir != "" {
		var err error
		if files, err = storage.NewFileRecorder(dir); err != nil {
			logger.Log.WithError(err).Warn("Match files disabled")
			files = nil
		} else {
			sinks = append(sinks, files)
		}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if dsn := config.String("POSTGRES_DSN", ""); dsn != "" {
		db, err := storage.ConnectPostgres(connectCtx, dsn)
		if err != nil {
			logger.Log.WithError(err).Warn("PostgreSQL match history disabled")
		} else {
			pg := storage.NewPostgresRecorder(db)
			if err := pg.EnsureSchema(connectCtx); err != nil {
				logger.Log.WithError(err).Warn("PostgreSQL schema check failed")
			}
			sinks = append(sinks, pg)
			history = pg
			closers = append(closers, func() { db.Close() })
		}
	}

	if uri := config.String("MONGO_URI", ""); uri != "" {
		client, err := storage.ConnectMongo(connectCtx, uri)
		if err != nil {
			logger.Log.WithError(err).Warn("MongoDB match history disabled")
		} else {
			mg := storage.NewMongoRecorder(client, config.String("MONGO_DB", "arena"))
			sinks = append(sinks, mg)
			if history == nil {
				history = mg
			}
			closers = append(closers, func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			})
		}
	}

	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}
	if history == nil && files != nil {
		history = files
	}
	if len(sinks) == 0 {
		logger.Log.Info("Match history disabled")
		return storage.Nop{}, nil, closeAll
	}
	return sinks, history, closeAll
}

package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillswap/internal/board"
	"skillswap/internal/config"
	"skillswap/internal/db"
	"skillswap/internal/events"
	"skillswap/internal/handlers"
	"skillswap/internal/router"
	"skillswap/internal/search"
	"skillswap/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newKV opens the store selected by STORE_DRIVER.
func newKV(cfg *config.Config, logger *zap.Logger) (storage.KV, error) {
	var kv storage.KV
	switch cfg.StoreDriver {
	case config.DriverMemory:
		kv = storage.NewMemoryKV()
	case config.DriverRedis:
		r := storage.NewRedisKV(storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := r.Ping(context.Background()); err != nil {
			_ = r.Close()
			return nil, err
		}
		kv = r
	default:
		gdb, err := db.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		kv = storage.NewGormKV(gdb)
	}

	logger.Info("store opened", zap.String("driver", cfg.StoreDriver))
	return kv, nil
}

func newAdapter(lc fx.Lifecycle, kv storage.KV, logger *zap.Logger) *storage.Adapter {
	adapter := storage.NewAdapter(kv, logger)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return adapter.Close()
		},
	})
	return adapter
}

func newBoard(lc fx.Lifecycle, adapter *storage.Adapter, logger *zap.Logger) (*board.Board, error) {
	b, err := board.Open(context.Background(), adapter, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return b.Close()
		},
	})
	return b, nil
}

func newSearchCache(cfg *config.Config) (*search.Cache, error) {
	return search.NewCache(cfg.SearchCacheSize, cfg.SearchCacheTTL)
}

func newHub(lc fx.Lifecycle, b *board.Board) *events.Hub {
	hub := events.NewHub(16)
	unsubscribe := b.Subscribe(hub.Publish)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			unsubscribe()
			hub.Close()
			return nil
		},
	})
	return hub
}

// startNATS forwards board changes to NATS when NATS_URL is set.
func startNATS(lc fx.Lifecycle, cfg *config.Config, b *board.Board, logger *zap.Logger) error {
	if cfg.NATSURL == "" {
		return nil
	}
	conn, err := events.DialNATS(cfg.NATSURL, cfg.NATSConnTimeout)
	if err != nil {
		return err
	}
	publisher := events.NewNATSPublisher(conn, logger)
	unsubscribe := b.Subscribe(publisher.Publish)
	logger.Info("publishing board changes", zap.String("subject", events.ChangesSubject))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			unsubscribe()
			publisher.Close()
			return nil
		},
	})
	return nil
}

func newHandlers(cfg *config.Config, b *board.Board, cache *search.Cache, hub *events.Hub, adapter *storage.Adapter, logger *zap.Logger) router.Handlers {
	return router.Handlers{
		Board:      handlers.NewBoardHandler(b, cache, logger),
		Rating:     handlers.NewRatingHandler(b),
		Transfer:   handlers.NewTransferHandler(b, cfg.ImportMaxBytes, logger),
		Preference: handlers.NewPreferenceHandler(adapter),
		Events:     handlers.NewEventsHandler(hub, b),
	}
}

func newEngine(cfg *config.Config, logger *zap.Logger, adapter *storage.Adapter, h router.Handlers) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	return router.NewEngine(cfg, logger, adapter, h)
}

func startServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, hub *events.Hub, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Handler(cfg, engine),
	}
	// Open event streams would otherwise hold Shutdown until its deadline.
	srv.RegisterOnShutdown(hub.Close)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newKV,
			newAdapter,
			newBoard,
			newSearchCache,
			newHub,
			newHandlers,
			newEngine,
		),
		fx.Invoke(
			startNATS,
			startServer,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}

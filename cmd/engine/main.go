// Command engine runs the single-instrument matching engine: it consumes
// orders from Kafka, matches them against an in-memory book, publishes
// trades back to Kafka, checkpoints the book to Redis, and serves both a
// reference websocket feed and an HTTP health check.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/internal/dispatcher"
	"github.com/muhammadchandra19/matchcore/internal/healthcheck"
	"github.com/muhammadchandra19/matchcore/internal/orderfeed"
	"github.com/muhammadchandra19/matchcore/internal/snapshot"
	"github.com/muhammadchandra19/matchcore/internal/tradefeed"
	"github.com/muhammadchandra19/matchcore/internal/wsgateway"
	"github.com/muhammadchandra19/matchcore/pkg/config"
	"github.com/muhammadchandra19/matchcore/pkg/logger"
	"github.com/muhammadchandra19/matchcore/pkg/redis"
)

var (
	cfg *config.Config
	log *logger.Logger
)

func init() {
	cfg = config.MustLoad(&config.Config{})

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	redisConfig := redis.DefaultConfig()
	redisConfig.Addrs = cfg.RedisConfig.Addrs
	redisConfig.Password = cfg.RedisConfig.Password
	redisConfig.Username = cfg.RedisConfig.Username
	redisConfig.DB = cfg.RedisConfig.DB

	rclient := redis.NewClient(log, redisConfig)
	if err := rclient.Connect(ctx); err != nil {
		log.Error(err, logger.NewField("action", "connect_redis"))
		return
	}

	b := book.New()
	snapStore := snapshot.NewStore(rclient, cfg.Pair, log)
	if snap, err := snapStore.Load(ctx); err != nil {
		log.Error(err, logger.NewField("action", "load_snapshot"))
	} else if snap != nil {
		snapshot.Restore(b, snap)
		log.Info("restored book from snapshot",
			logger.NewField("pair", cfg.Pair), logger.NewField("orders", len(snap.Orders)))
	}

	d := dispatcher.New(b)

	tradePublisher := tradefeed.NewPublisher(cfg.KafkaConfig, log)
	hub := wsgateway.NewHub(256)
	wsServer := wsgateway.NewServer(hub, b, d, log)

	d.SetTradeCallback(func(trades []book.Trade) {
		tradePublisher.Publish(trades)
		wsServer.PublishTrades(trades)
	})
	d.SetBookUpdateCallback(wsServer.PublishBookUpdate)

	d.Start()

	reader := orderfeed.NewReader(cfg.KafkaConfig, d, log)
	go reader.Run(ctx)

	health := healthcheck.New(d)
	mux := http.NewServeMux()
	mux.Handle("/health", health)
	mux.Handle("/ws", wsServer)
	httpServer := &http.Server{Addr: ":8080", Handler: mux}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.NewField("action", "serve_http"))
		}
	}()

	log.Info("matching engine started successfully", logger.NewField("pair", cfg.Pair))

	sig := <-sigChan
	log.Info("received shutdown signal", logger.NewField("signal", sig.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "shutdown_http"))
	}

	d.Stop()

	if err := tradePublisher.Close(); err != nil {
		log.Error(err, logger.NewField("action", "close_trade_publisher"))
	}

	finalSnap := snapshot.Take(cfg.Pair, reader.LastOffset(), b)
	if err := snapStore.Store(shutdownCtx, finalSnap); err != nil {
		log.Error(err, logger.NewField("action", "store_final_snapshot"))
	}

	if err := rclient.Disconnect(shutdownCtx); err != nil {
		log.Error(err, logger.NewField("action", "disconnect_redis"))
	}

	log.Info("matching engine shutdown complete")
}

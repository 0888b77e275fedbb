package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/pflag"

	"github.com/curiousguyinhis30s/themepark-website/internal/app"
	"github.com/curiousguyinhis30s/themepark-website/internal/auth"
	"github.com/curiousguyinhis30s/themepark-website/internal/catalog"
	"github.com/curiousguyinhis30s/themepark-website/internal/chatbot"
	"github.com/curiousguyinhis30s/themepark-website/internal/checkout"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/config"
	"github.com/curiousguyinhis30s/themepark-website/internal/events"
	"github.com/curiousguyinhis30s/themepark-website/internal/logging"
	"github.com/curiousguyinhis30s/themepark-website/internal/storage/memory"
	"github.com/curiousguyinhis30s/themepark-website/internal/storage/postgres"
	redisstore "github.com/curiousguyinhis30s/themepark-website/internal/storage/redis"
	transporthttp "github.com/curiousguyinhis30s/themepark-website/internal/transport/http"
	"github.com/curiousguyinhis30s/themepark-website/migrations"
)

const (
	startupTimeout = 5 * time.Second
	sweepInterval  = time.Minute
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", config.DefaultPath, "path to the YAML config file")
		inMemory   = pflag.Bool("in-memory", false, "keep purchases and contact messages in memory instead of Postgres")
		printEnv   = pflag.Bool("print-env", false, "list the environment variables the service reads and exit")
	)
	pflag.Parse()

	if *printEnv {
		fmt.Println(config.Usage())
		return
	}

	envPath, envErr := config.LoadDotEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	switch {
	case envErr != nil:
		logger.Warn("failed to load .env", "path", envPath, "error", envErr)
	case envPath != "":
		logger.Info("loaded env file", "path", envPath)
	}

	if err := run(cfg, *inMemory, logger); err != nil {
		logger.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, inMemory bool, logger *slog.Logger) error {
	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	clk := clock.NewSystem()
	parkCatalog := catalog.New()

	kb, err := chatbot.LoadKnowledgeBaseFile(cfg.Chat.KnowledgeBase)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	var (
		purchases app.PurchaseRepository
		contacts  app.ContactRepository
	)
	if inMemory {
		logger.Warn("running without Postgres, purchases are lost on restart")
		purchases = memory.NewPurchaseRepository()
		contacts = memory.NewContactRepository()
	} else {
		pool, err := pgxpool.New(startupCtx, cfg.Postgres.URL)
		if err != nil {
			return fmt.Errorf("connect to db: %w", err)
		}
		defer pool.Close()

		if err := pool.Ping(startupCtx); err != nil {
			return fmt.Errorf("db ping: %w", err)
		}
		if err := migrations.Apply(startupCtx, pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		purchases = postgres.NewPurchaseRepository(pool)
		contacts = postgres.NewContactRepository(pool)
	}

	var (
		sessions    auth.SessionStore
		idempotency transporthttp.IdempotencyStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.NewClient(startupCtx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		sessions = redisstore.NewSessionStore(rdb, clk.Now)
		idempotency = redisstore.NewIdempotencyStore(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set, keeping sessions in memory")
		sessions = auth.NewMemoryStore(clk.Now)
		idempotency = memory.NewIdempotencyStore(clk.Now)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(events.Config{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Warn("close kafka publisher", "error", err)
			}
		}()
		publisher = kp
	} else {
		logger.Warn("KAFKA_BROKERS not set, purchase events are not published")
	}

	purchaseSvc := app.NewPurchaseService(purchases, parkCatalog, publisher, clk,
		app.WithPurchaseServiceFee(cfg.Checkout.ServiceFee),
		app.WithPurchaseLogger(logger),
	)
	chatSvc := app.NewChatService(kb, clk, clock.NewSystemScheduler(),
		app.WithChatDelay(cfg.Chat.MinDelay, cfg.Chat.MaxDelay),
		app.WithChatSessionTTL(cfg.Chat.SessionTTL),
		app.WithChatLogger(logger),
	)
	checkoutSvc := app.NewCheckoutService(parkCatalog,
		checkout.LatencyGateway{Next: purchaseSvc, Latency: cfg.Checkout.PaymentLatency, Sleep: checkout.Sleep},
		clk,
		app.WithCheckoutServiceFee(cfg.Checkout.ServiceFee),
		app.WithCheckoutSessionTTL(cfg.Checkout.SessionTTL),
		app.WithCheckoutLogger(logger),
	)

	handler := transporthttp.NewRouter(transporthttp.Deps{
		Service:     cfg.App.Name,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Logger:      logger,
		Park:        app.NewParkService(parkCatalog, clk),
		Purchases:   purchaseSvc,
		Contact:     app.NewContactService(contacts, clk, logger),
		Auth:        auth.NewService(sessions, clk),
		Chat:        chatSvc,
		Checkout:    checkoutSvc,
		Idempotency: idempotency,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go chatSvc.RunSweeper(stopCtx, sweepInterval)
	go checkoutSvc.RunSweeper(stopCtx, sweepInterval)

	logger.Info("api listening", "addr", server.Addr, "version", cfg.App.Version)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

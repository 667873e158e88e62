package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/config"
	"github.com/kailas-cloud/docsearch/internal/db"
	dbES "github.com/kailas-cloud/docsearch/internal/db/elasticsearch"
	dbRedis "github.com/kailas-cloud/docsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/docsearch/internal/logger"
	"github.com/kailas-cloud/docsearch/internal/metrics"
	documentrepo "github.com/kailas-cloud/docsearch/internal/repository/document"
	indexrepo "github.com/kailas-cloud/docsearch/internal/repository/index"
	searchrepo "github.com/kailas-cloud/docsearch/internal/repository/search"
	chiTransport "github.com/kailas-cloud/docsearch/internal/transport/chi"
	batchuc "github.com/kailas-cloud/docsearch/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
	indexuc "github.com/kailas-cloud/docsearch/internal/usecase/index"
	searchuc "github.com/kailas-cloud/docsearch/internal/usecase/search"
	"github.com/kailas-cloud/docsearch/internal/version"
)

func main() {
	envFlag := flag.String("env", "", "environment name selecting config/<env>.yaml (default: $ENV or local)")
	configFlag := flag.String("config", "", "explicit config file path (overrides --env lookup)")
	dotenvFlag := flag.String("dotenv", ".env", "optional .env file loaded before config expansion")
	versionFlag := flag.BoolP("version", "v", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.String())
		return
	}

	if err := config.LoadDotEnv(*dotenvFlag); err != nil {
		panic("failed to load dotenv: " + err.Error())
	}

	env := *envFlag
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if *configFlag != "" {
		cfg, err = config.LoadFile(*configFlag)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docsearch API server", append(logpkg.Startup(),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.Strings("engine_addrs", cfg.Engine.Addrs),
		zap.String("index", cfg.Index.Name),
	)...)

	engine, err := newStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create engine store", zap.Error(err))
	}
	defer engine.Close()

	ctx := context.Background()
	if err := engine.WaitForReady(ctx, time.Duration(cfg.Engine.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	metrics.RegisterEngineMetrics()
	store := db.NewInstrumentedStore(engine, time.Duration(cfg.Engine.RequestTimeoutSec)*time.Second)

	schema := cfg.Schema()
	idxRepo := indexrepo.New(store, schema)
	created, err := idxRepo.Ensure(ctx)
	if err != nil {
		logger.Fatal("Failed to ensure index", zap.String("index", schema.Name), zap.Error(err))
	}
	logger.Info("Index ready", zap.String("index", schema.Name), zap.Bool("created", created))

	docRepo := documentrepo.New(store, schema.Name)
	searchRepo := searchrepo.New(store, schema)

	refresh := cfg.RefreshPolicy()
	docSvc := documentuc.New(docRepo).WithRefresh(refresh)
	searchSvc := searchuc.New(searchRepo)
	batchSvc := batchuc.New(docRepo).WithMaxBatchSize(cfg.Batch.MaxSize).WithRefresh(refresh)
	indexSvc := indexuc.New(idxRepo)
	healthSvc := healthuc.New(store, store.Driver())

	server := chiTransport.NewServer(docSvc, searchSvc, batchSvc, indexSvc, healthSvc, logger).
		WithSearchLimits(cfg.Search.DefaultSize, cfg.Search.MaxSize)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys:        cfg.Auth.APIKeys,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newStore creates the engine store for the configured driver.
func newStore(cfg config.Config) (db.Store, error) {
	switch cfg.Engine.Driver {
	case config.DriverElasticsearch:
		s, err := dbES.NewStore(dbES.Config{
			Addrs:      cfg.Engine.Addrs,
			Username:   cfg.Engine.Username,
			Password:   cfg.Engine.Password,
			MaxRetries: cfg.Engine.MaxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("elasticsearch: %w", err)
		}
		return s, nil
	case config.DriverRedis:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Engine.Addrs,
			Username:   cfg.Engine.Username,
			Password:   cfg.Engine.Password,
			KeyPrefix:  cfg.Index.KeyPrefix,
			MaxRetries: cfg.Engine.MaxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown engine driver %q", cfg.Engine.Driver)
	}
}

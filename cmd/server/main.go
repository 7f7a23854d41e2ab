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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/minitracker/internal/activity"
	"github.com/rohits-web03/minitracker/internal/api"
	"github.com/rohits-web03/minitracker/internal/api/handlers"
	"github.com/rohits-web03/minitracker/internal/config"
	"github.com/rohits-web03/minitracker/internal/logger"
	"github.com/rohits-web03/minitracker/internal/metrics"
	"github.com/rohits-web03/minitracker/internal/profile"
	"github.com/rohits-web03/minitracker/internal/repositories"
	mongorepo "github.com/rohits-web03/minitracker/internal/repositories/mongo"
	"github.com/rohits-web03/minitracker/internal/swarm"
	"github.com/rohits-web03/minitracker/internal/telemetry"
)

// @title minitracker API
// @version 1.0
// @description Simulated BitTorrent tracker: files, swarms, progress ticks and activity.
// @BasePath /

// store is everything the server needs from a persistence backend.
type store interface {
	swarm.Store
	swarm.ActivityStore
	profile.Store
}

func main() {
	cfg, envLoaded := config.Load()
	log := logger.New(cfg.LogLevel, cfg.Environment)
	if !envLoaded {
		log.Debug().Msg("No env file found, using process environment")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: "minitracker",
		Endpoint:    cfg.OTelEndpoint,
		SampleRate:  cfg.OTelSampleRate,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Tracing disabled")
	}
	defer func() { _ = shutdownTracer(context.Background()) }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics.Register(reg)

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	sinks := activity.Fanout{activity.NewRecorder(st, log)}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, activity will not be published")
		}
		sinks = append(sinks, activity.NewRedisPublisher(client, cfg.ActivityChannel, log))
	}

	svc := swarm.NewService(st, st,
		swarm.WithNotifier(sinks),
		swarm.WithLogger(log),
		swarm.WithPieceSizeMB(cfg.PieceSizeMB),
	)

	var archive handlers.Archiver
	if cfg.R2.Enabled() {
		a, err := repositories.NewActivityArchive(repositories.R2Options{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			Bucket:          cfg.R2.BucketName,
			Region:          cfg.R2.Region,
			Endpoint:        cfg.R2.Endpoint,
		})
		if err != nil {
			return err
		}
		archive = a
		log.Info().Str("bucket", cfg.R2.BucketName).Msg("Activity archive enabled")
	}

	router := api.SetupRouter(api.Deps{
		Tracker:       svc,
		Profiles:      profile.NewService(st),
		Archive:       archive,
		Log:           log,
		Cors:          cfg.CorsConfig,
		Gatherer:      reg,
		TickRateLimit: cfg.TickRateLimit,
		TickRateBurst: cfg.TickRateBurst,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("driver", cfg.DBDriver).Msg("Starting tracker server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on port %s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("Shutting down")
		return server.Shutdown(shutdownCtx)
	})
	if cfg.TickInterval > 0 {
		g.Go(func() error {
			log.Info().Dur("interval", cfg.TickInterval).Msg("Auto tick enabled")
			return svc.RunTicker(gctx, cfg.TickInterval)
		})
	}
	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (store, func(), error) {
	if cfg.DBDriver == "mongo" {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongorepo.Connect(connectCtx, cfg.MongoURI, options.Client().SetMonitor(otelmongo.NewMonitor()))
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connect: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			return nil, nil, fmt.Errorf("mongo ping: %w", err)
		}
		st := mongorepo.NewStore(client, cfg.MongoDB)
		if err := st.EnsureIndexes(connectCtx); err != nil {
			log.Warn().Err(err).Msg("Mongo ensure indexes failed")
		}
		log.Info().Str("db", cfg.MongoDB).Msg("Connected to MongoDB")
		return st, func() { _ = client.Disconnect(context.Background()) }, nil
	}

	db, err := repositories.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, nil, err
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("Successfully connected to database")
	return repositories.NewStore(db), func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}

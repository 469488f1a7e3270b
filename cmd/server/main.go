package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"person-service/internal/bus/kafka"
	"person-service/internal/buslog"
	"person-service/internal/person/handler"
	"person-service/internal/person/service"
	personpg "person-service/internal/person/store/postgres"
	"person-service/internal/platform/config"
	"person-service/internal/platform/httpserver"
	"person-service/internal/platform/logger"
	"person-service/internal/platform/metrics"
	"person-service/internal/relay"
	"person-service/internal/relay/checkpoint"
	httptransport "person-service/internal/transport/http"
)

// main wires dependencies and runs the HTTP server and the relay worker
// side by side. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("service exited", "error", err)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("pgx", cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()
	if err := personpg.EnsureSchema(ctx, db); err != nil {
		return err
	}

	eventBus, err := kafka.New(ctx, cfg.KafkaBrokers, cfg.BusName)
	if err != nil {
		return err
	}
	defer eventBus.Close()

	cp, err := newCheckpoint(cfg, db)
	if err != nil {
		return err
	}

	m := metrics.New()
	personStore := personpg.New(db)
	personService := service.New(personStore, log)
	personHandler := handler.New(personService, log, m)
	router := httptransport.NewRouter(personHandler)
	srv := httpserver.New(cfg.Addr, router)

	rel := relay.New(relay.Config{
		BusName:      cfg.BusName,
		EventType:    cfg.EventType,
		Source:       cfg.EventSource,
		PollInterval: cfg.RelayPollInterval,
		BatchSize:    cfg.RelayBatchSize,
	}, personStore, eventBus, cp, log, m)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting person-service", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		log.Info("starting cdc relay",
			"bus", cfg.BusName,
			"event_type", cfg.EventType,
			"source", cfg.EventSource,
		)
		if err := rel.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if cfg.BusDebugLog {
		tap, err := buslog.New(cfg.KafkaBrokers, cfg.BusName, cfg.EventSource, cfg.EventType, log)
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := tap.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

func newCheckpoint(cfg config.Config, db *sql.DB) (checkpoint.Store, error) {
	switch cfg.CheckpointBackend {
	case "postgres":
		return checkpoint.NewPostgres(db, "person-created"), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return checkpoint.NewRedis(client, "person-created"), nil
	case "memory":
		return checkpoint.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown checkpoint backend %q", cfg.CheckpointBackend)
	}
}

// Command fleetd serves the transit fleet API.
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

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/alert"
	"github.com/ukydev/transit-fleet/internal/auth"
	"github.com/ukydev/transit-fleet/internal/config"
	"github.com/ukydev/transit-fleet/internal/db"
	"github.com/ukydev/transit-fleet/internal/fleet"
	"github.com/ukydev/transit-fleet/internal/handlers"
	"github.com/ukydev/transit-fleet/internal/middleware"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("fleetd stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("MongoDB disconnect failed")
		}
	}()
	log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")

	store := db.NewStore(client.Database(cfg.MongoDB), cfg.StoreTimeout)
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	notifier, closeListeners, err := buildNotifier(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeListeners()

	authService, err := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}
	monitor := alert.NewMonitor(store, notifier, cfg.Thresholds)
	service := fleet.NewService(store, monitor)
	lifecycle := alert.NewLifecycle(store, notifier)

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:            handlers.NewAuthHandler(authService, store),
		Fleet:           handlers.NewFleetHandler(service),
		Alerts:          handlers.NewAlertHandler(lifecycle),
		AuthMiddleware:  middleware.NewAuthMiddleware(authService),
		RateLimiter:     middleware.NewRateLimitMiddleware(),
		LoginRateLimit:  cfg.LoginRateLimit,
		LoginRateWindow: cfg.LoginRateWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return serve(ctx, srv)
}

// serve runs srv until ctx is cancelled, then drains it.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildNotifier subscribes the log listener plus MQTT and Redis when they are
// configured. The returned func releases their connections.
func buildNotifier(ctx context.Context, cfg *config.Config) (*alert.Notifier, func(), error) {
	notifier := alert.NewNotifier(alert.NewLogListener(log.StandardLogger()))
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.MQTTBroker != "" {
		mqttClient, err := alert.ConnectMQTT(cfg.MQTTBroker, cfg.MQTTClientID, cfg.StoreTimeout)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, func() { mqttClient.Disconnect(250) })
		notifier.Subscribe(alert.NewMQTTListener(mqttClient, cfg.MQTTTopicPrefix, cfg.MQTTQoS, cfg.StoreTimeout))
		log.WithField("broker", cfg.MQTTBroker).Info("Publishing alerts to MQTT")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			closeAll()
			return nil, func() {}, fmt.Errorf("redis ping: %w", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		notifier.Subscribe(alert.NewRedisListener(rdb, cfg.RedisChannel))
		log.WithField("addr", cfg.RedisAddr).Info("Publishing alerts to Redis")
	}

	return notifier, closeAll, nil
}

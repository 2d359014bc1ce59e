package main

import (
	"context"
	"crypto/rand"
	"os"
	"os/signal"
	"syscall"

	"cooling_control/internal/config"
	"cooling_control/internal/handlers"
	"cooling_control/internal/logger"
	"cooling_control/internal/notify"
	"cooling_control/internal/repository"
	"cooling_control/internal/repository/db"
	"cooling_control/internal/server"
	"cooling_control/internal/service"
)

const configDir = "configs"

func main() {
	// load configs/config.yml and COOLING_* overrides
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)

	// open DB
	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	publisher := newPublisher(cfg.MQTT, log)
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			log.Warnw("failed to close publisher", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		Simulation: cfg.Simulation,
		Auth: service.AuthConfig{
			SigningKey: signingKey(cfg.Auth.SigningKey, log),
			TokenTTL:   cfg.Auth.TokenTTL,
		},
		Stream: service.StreamConfig{
			DefaultInterval: cfg.Stream.DefaultInterval,
			MaxInterval:     cfg.Stream.MaxInterval,
		},
		Publisher: publisher,
		Logger:    log,
	})
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	timeouts := server.Timeouts{
		ReadHeader: cfg.HTTP.ReadHeaderTimeout,
		Write:      cfg.HTTP.WriteTimeout,
		Idle:       cfg.HTTP.IdleTimeout,
	}
	go func() {
		log.Infow("http_server_starting", "port", cfg.Port)
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes(), timeouts); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, cfg, log)
}

// newPublisher connects to the MQTT broker when one is configured. A broker
// that cannot be reached disables notifications instead of failing startup.
func newPublisher(cfg config.MQTT, log *logger.Logger) notify.Publisher {
	if cfg.Broker == "" {
		log.Infow("mqtt disabled; no broker configured")
		return notify.Nop{}
	}
	p, err := notify.NewMQTTPublisher(cfg.Broker, cfg.ClientID, cfg.Topic)
	if err != nil {
		log.Warnw("mqtt unavailable; notifications disabled", "broker", cfg.Broker, "err", err)
		return notify.Nop{}
	}
	log.Infow("mqtt connected", "broker", cfg.Broker, "topic", cfg.Topic)
	return p
}

// signingKey returns the configured key or a random per-process one.
func signingKey(configured string, log *logger.Logger) string {
	if configured != "" {
		return configured
	}
	log.Warnw("auth.signing_key is empty; tokens will not survive a restart")
	return rand.Text()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, cfg config.Config, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}

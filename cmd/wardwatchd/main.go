package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wardwatch/internal/alerts"
	"wardwatch/internal/api"
	"wardwatch/internal/auth"
	"wardwatch/internal/config"
	"wardwatch/internal/ingest"
	"wardwatch/internal/logging"
	"wardwatch/internal/model"
	"wardwatch/internal/storage"
	"wardwatch/internal/vitals"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (yaml or json); defaults apply when omitted")
	flag.Parse()

	var manager *config.Manager
	if *configPath != "" {
		m, err := config.NewManager(config.ResolvePath(*configPath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		manager = m
	} else {
		manager = config.NewStaticManager(config.DefaultConfig())
	}
	cfg := manager.Get()
	logger := logging.NewLogger(cfg.LogLevel)
	logger.Info("wardwatch starting", "version", version, "config", manager.Path())

	creds := auth.LoadCredentials(cfg.Auth.UsersFile, logger)
	sessions := auth.NewRegistry(cfg.Auth.SessionTTL)
	alertsStore := alerts.NewStore(cfg.Alerts.StoreLimit)

	store, err := storage.NewStore(cfg.Storage)
	if err != nil {
		logger.Error("storage init error", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if store != nil {
		if err := store.Init(ctx); err != nil {
			logger.Error("storage schema error", "err", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	engine, err := vitals.NewEngine(cfg, logger, alertsStore, store)
	if err != nil {
		logger.Error("engine init error", "err", err)
		os.Exit(1)
	}

	if cfg.Ingest.REST.Enabled || cfg.Ingest.Kafka.Enabled {
		readings := make(chan model.VitalReading, cfg.Ingest.ChannelBuffer)
		ingest.StartREST(ctx, manager, readings, logger)
		ingest.StartKafka(ctx, manager, readings, logger)
		engine.Start(ctx, readings)
	}

	// Host-driven tick cadence; the engine never paces itself.
	if cfg.Simulator.Enabled {
		go func() {
			ticker := time.NewTicker(cfg.Simulator.TickInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					engine.ProcessTick()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	api.Start(ctx, manager, engine, sessions, creds, alertsStore, logger, version)

	go manager.Watch(3*time.Second, func(next *config.Config) {
		engine.UpdateConfig(next)
		logger.Info("config reloaded", "path", manager.Path())
	}, func(err error) {
		logger.Warn("config reload error", "err", err)
	}, ctx.Done())

	<-ctx.Done()
	logger.Info("wardwatch stopping")
}
